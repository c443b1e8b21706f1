package render

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpriteBatchUnitAssignment(t *testing.T) {
	b := newSpriteBatch(newFakeDevice(2), 8, 2)

	steps := []struct {
		name string
		tex  int
		ok   bool
		unit int
	}{
		{"first_texture_takes_unit_0", 5, true, 0},
		{"second_texture_takes_unit_1", 7, true, 1},
		{"same_texture_reuses_unit_0", 5, true, 0},
		{"third_texture_saturates", 9, false, 0},
	}

	for i, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			slot, ok := b.TakeSlot(s.tex)
			require.Equal(t, s.ok, ok)
			if !s.ok {
				return
			}
			assert.Equal(t, i, slot)
			assert.Equal(t, s.unit, b.SlotUnit(slot))
		})
	}

	assert.Equal(t, TextureUnit{Texture: 5, RefCount: 2}, b.Units().Unit(0))
	assert.Equal(t, TextureUnit{Texture: 7, RefCount: 1}, b.Units().Unit(1))
	assert.Equal(t, 3, b.ActiveSlots())
}

func TestTextureUnitExactMatchBeatsLowerFreeUnit(t *testing.T) {
	b := newSpriteBatch(newFakeDevice(4), 8, 4)

	s0, _ := b.TakeSlot(1) // unit 0
	_, _ = b.TakeSlot(2)   // unit 1
	_, _ = b.TakeSlot(2)   // unit 1, refs 2
	b.ReleaseSlot(s0)      // unit 0 free again

	slot, ok := b.TakeSlot(2)
	require.True(t, ok)
	assert.Equal(t, 1, b.SlotUnit(slot), "bound unit wins over free unit 0")
	assert.Equal(t, 3, b.Units().Unit(1).RefCount)
	assert.True(t, b.Units().Unit(0).Free())
}

func TestSpriteBatchSaturationLeavesSlotsFree(t *testing.T) {
	const limit = 3
	b := newSpriteBatch(newFakeDevice(limit), 16, limit)
	for tex := 0; tex < limit; tex++ {
		_, ok := b.TakeSlot(tex)
		require.True(t, ok)
	}

	_, ok := b.TakeSlot(limit)
	assert.False(t, ok)
	assert.Equal(t, limit, b.ActiveSlots())
	assert.Equal(t, limit, b.Units().Distinct())

	_, ok = b.TakeSlot(1)
	assert.True(t, ok, "bound textures still get slots")
}

func TestSpriteBatchFullFails(t *testing.T) {
	b := newSpriteBatch(newFakeDevice(1), 8, 1)
	for i := 0; i < 8; i++ {
		_, ok := b.TakeSlot(3)
		require.True(t, ok)
	}
	_, ok := b.TakeSlot(3)
	assert.False(t, ok)
}

func TestSpriteBatchReleaseFreesUnit(t *testing.T) {
	b := newSpriteBatch(newFakeDevice(2), 8, 2)

	a, _ := b.TakeSlot(10)
	_, _ = b.TakeSlot(11)
	_, ok := b.TakeSlot(12)
	require.False(t, ok)

	b.ReleaseSlot(a)
	assert.True(t, b.Units().Unit(0).Free())

	slot, ok := b.TakeSlot(12)
	require.True(t, ok)
	assert.Equal(t, a, slot, "lowest free slot is reused")
	assert.Equal(t, 0, b.SlotUnit(slot))
	assert.Equal(t, TextureUnit{Texture: 12, RefCount: 1}, b.Units().Unit(0))
}

func TestSpriteBatchSlotsStayUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := newSpriteBatch(newFakeDevice(4), 32, 4)
	live := map[int]int{} // slot -> texture

	for step := 0; step < 2000; step++ {
		if len(live) > 0 && rng.Intn(3) == 0 {
			for slot := range live {
				b.ReleaseSlot(slot)
				delete(live, slot)
				break
			}
			continue
		}

		tex := rng.Intn(6)
		slot, ok := b.TakeSlot(tex)
		if !ok {
			continue
		}
		_, dup := live[slot]
		require.False(t, dup, "slot %d handed out twice", slot)
		live[slot] = tex

		unit := b.Units().Unit(b.SlotUnit(slot))
		require.Equal(t, tex, unit.Texture)
	}

	refs := map[int]int{}
	for slot := range live {
		refs[b.SlotUnit(slot)]++
	}
	for i := 0; i < b.Units().Len(); i++ {
		assert.Equal(t, refs[i], b.Units().Unit(i).RefCount, "unit %d", i)
	}
	assert.Equal(t, len(live), b.ActiveSlots())
}

func TestSpriteBatchWriteAndClearSlot(t *testing.T) {
	dev := newFakeDevice(2)
	b := newSpriteBatch(dev, 8, 2)
	_, _ = b.TakeSlot(0)
	slot, _ := b.TakeSlot(4) // unit 1

	w := SpriteWrite{
		Pos:      Vec2{100, 50},
		Src:      Rect{16, 8, 16, 8},
		Origin:   Vec2{0.5, 0.5},
		Rotation: 0.25,
		Scale:    Vec2{2, 2},
		Alpha:    0.5,
	}
	b.WriteSlot(slot, w, Vec2i{64, 32})

	buf := bufferOf(b.verts)
	quad := buf.data[slot*SpriteQuadFloats : (slot+1)*SpriteQuadFloats]
	assert.Equal(t, []float32{-1, -1, 100, 50, 16, 8, 0.25, 1, 0.25, 0.25, 0.5}, quad[0:11])
	assert.Equal(t, []float32{1, -1, 100, 50, 16, 8, 0.25, 1, 0.5, 0.25, 0.5}, quad[11:22])
	assert.Equal(t, []float32{1, 1, 100, 50, 16, 8, 0.25, 1, 0.5, 0.5, 0.5}, quad[22:33])
	assert.Equal(t, []float32{-1, 1, 100, 50, 16, 8, 0.25, 1, 0.25, 0.5, 0.5}, quad[33:44])

	for _, f := range buf.data[:SpriteQuadFloats] {
		require.Zero(t, f, "neighbouring slot untouched")
	}

	b.ReleaseSlot(slot)
	for _, f := range quad {
		require.Zero(t, f)
	}
}
