package render

import "github.com/milk9111/quadbatch/bitalloc"

// SpriteBatchSlotLimit is the largest slot count a sprite batch may have.
const SpriteBatchSlotLimit = 1024

// SpriteWrite is the display data for one sprite slot.
type SpriteWrite struct {
	Pos      Vec2
	Src      Rect
	Origin   Vec2 // normalized pivot within the quad, (0.5, 0.5) is the centre
	Rotation float32
	Scale    Vec2
	Alpha    float32
}

// NewSpriteWrite returns write data centred on pos at unit scale and full alpha.
func NewSpriteWrite(pos Vec2, src Rect) SpriteWrite {
	return SpriteWrite{
		Pos:    pos,
		Src:    src,
		Origin: Vec2{0.5, 0.5},
		Scale:  Vec2{1, 1},
		Alpha:  1,
	}
}

// SpriteBatch is a fixed number of quad slots sharing one vertex buffer and
// one texture unit table.
type SpriteBatch struct {
	capacity  int
	slots     *bitalloc.Allocator
	slotUnits []int
	units     *TextureUnitTable
	verts     VertexBuffer
}

func newSpriteBatch(dev Device, capacity, unitLimit int) *SpriteBatch {
	return &SpriteBatch{
		capacity:  capacity,
		slots:     bitalloc.New(capacity),
		slotUnits: make([]int, capacity),
		units:     NewTextureUnitTable(unitLimit),
		verts:     dev.NewVertexBuffer(SpriteQuadFloats, capacity),
	}
}

func (b *SpriteBatch) Capacity() int {
	return b.capacity
}

// ActiveSlots returns the number of taken slots.
func (b *SpriteBatch) ActiveSlots() int {
	return b.slots.Count()
}

func (b *SpriteBatch) IsSlotActive(slot int) bool {
	return slot >= 0 && slot < b.capacity && b.slots.IsSet(slot)
}

// SlotUnit returns the texture unit a taken slot samples through.
func (b *SpriteBatch) SlotUnit(slot int) int {
	return b.slotUnits[slot]
}

func (b *SpriteBatch) Units() *TextureUnitTable {
	return b.units
}

// TakeSlot takes the lowest free slot for a sprite using texture tex. It
// fails when the batch has no free slot, or when every texture unit is bound
// to a texture other than tex.
func (b *SpriteBatch) TakeSlot(tex int) (int, bool) {
	if b.slots.IsFull() {
		return 0, false
	}

	unit, ok := b.units.Find(tex)
	if !ok {
		return 0, false
	}

	slot, ok := b.slots.Take()
	if !ok {
		return 0, false
	}

	b.units.Acquire(unit, tex)
	b.slotUnits[slot] = unit
	return slot, true
}

// ReleaseSlot frees a taken slot and zeroes its vertices so nothing stale is
// drawn from it.
func (b *SpriteBatch) ReleaseSlot(slot int) {
	b.slots.Clear(slot)
	b.units.Release(b.slotUnits[slot])
	b.ClearSlot(slot)
}

// WriteSlot writes the quad for slot. texSize is the pixel size of the
// slot's texture and normalizes w.Src into UV space.
func (b *SpriteBatch) WriteSlot(slot int, w SpriteWrite, texSize Vec2i) {
	var verts [SpriteQuadFloats]float32
	fillSpriteQuad(verts[:], b.slotUnits[slot], w, texSize)
	b.verts.Write(slot*SpriteQuadFloats, verts[:])
}

// ClearSlot zeroes the quad for slot, leaving a degenerate zero-area quad.
func (b *SpriteBatch) ClearSlot(slot int) {
	var verts [SpriteQuadFloats]float32
	b.verts.Write(slot*SpriteQuadFloats, verts[:])
}

func (b *SpriteBatch) draw(dev Device, assets Assets, view, proj Mat4) {
	textures := make([]Texture, b.units.Len())
	for i := range textures {
		if u := b.units.Unit(i); !u.Free() {
			textures[i] = assets.Texture(u.Texture)
		}
	}

	dev.DrawSprites(SpriteDraw{
		Vertices:   b.verts,
		Textures:   textures,
		IndexCount: IndicesPerQuad * b.capacity,
		View:       view,
		Projection: proj,
	})
}

func (b *SpriteBatch) release() {
	if b.verts != nil {
		b.verts.Release()
		b.verts = nil
	}
}

// quadCorners lists the local corners in TL, TR, BR, BL order.
var quadCorners = [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func fillSpriteQuad(dst []float32, unit int, w SpriteWrite, texSize Vec2i) {
	tw, th := float32(texSize.X), float32(texSize.Y)
	for i, c := range quadCorners {
		u := float32(w.Src.X+int(c.X)*w.Src.Width) / tw
		v := float32(w.Src.Y+int(c.Y)*w.Src.Height) / th

		o := i * SpriteVertexFloats
		dst[o+0] = (c.X - w.Origin.X) * w.Scale.X
		dst[o+1] = (c.Y - w.Origin.Y) * w.Scale.Y
		dst[o+2] = w.Pos.X
		dst[o+3] = w.Pos.Y
		dst[o+4] = float32(w.Src.Width)
		dst[o+5] = float32(w.Src.Height)
		dst[o+6] = w.Rotation
		dst[o+7] = float32(unit)
		dst[o+8] = u
		dst[o+9] = v
		dst[o+10] = w.Alpha
	}
}
