package render

// TexUnitLimitCap bounds the number of texture units any batch uses,
// whatever the device reports.
const TexUnitLimitCap = 32

// TextureUnit is one shader texture binding within a sprite batch.
type TextureUnit struct {
	Texture  int
	RefCount int
}

// Free reports whether no slot references the unit.
func (u TextureUnit) Free() bool {
	return u.RefCount == 0
}

// TextureUnitTable maps unit indices to the texture bound there and the
// number of slots sampling through it.
type TextureUnitTable struct {
	units []TextureUnit
}

func NewTextureUnitTable(limit int) *TextureUnitTable {
	return &TextureUnitTable{units: make([]TextureUnit, limit)}
}

func (t *TextureUnitTable) Len() int {
	return len(t.units)
}

func (t *TextureUnitTable) Unit(i int) TextureUnit {
	return t.units[i]
}

// Find picks the unit a slot using texture tex should sample through. A unit
// already bound to tex wins over any free unit, even a lower-indexed one;
// otherwise the lowest free unit is returned. It fails when every unit is
// bound to some other texture.
func (t *TextureUnitTable) Find(tex int) (int, bool) {
	free := -1
	for i, u := range t.units {
		if u.Free() {
			if free == -1 {
				free = i
			}
			continue
		}
		if u.Texture == tex {
			return i, true
		}
	}
	return free, free != -1
}

// Acquire binds tex to unit and adds a reference.
func (t *TextureUnitTable) Acquire(unit, tex int) {
	t.units[unit].Texture = tex
	t.units[unit].RefCount++
}

// Release drops a reference. A unit whose count reaches zero is free to be
// bound to a different texture.
func (t *TextureUnitTable) Release(unit int) {
	if t.units[unit].RefCount <= 0 {
		panic("render: texture unit released more times than acquired")
	}
	t.units[unit].RefCount--
}

// Distinct returns how many units are currently bound.
func (t *TextureUnitTable) Distinct() int {
	n := 0
	for _, u := range t.units {
		if !u.Free() {
			n++
		}
	}
	return n
}
