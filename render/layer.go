package render

import "github.com/milk9111/quadbatch/bitalloc"

// DefaultCharBatchLimit is the char batch pool size of a layer when
// LayerOptions leaves it unset.
const DefaultCharBatchLimit = 24

// LayerOptions configures a render layer.
type LayerOptions struct {
	// SpriteBatchSlotCount is the capacity of every sprite batch in the
	// layer. It must be a positive multiple of 8.
	SpriteBatchSlotCount int
	// CharBatchLimit is how many char batches may be active at once.
	CharBatchLimit int
}

// RenderLayer owns the sprite and char batches drawn at one depth.
// Sprite batches are created on demand and never removed; char batches come
// from a fixed pool of indices.
type RenderLayer struct {
	name      string
	slotCount int

	spriteBatches     []*SpriteBatch
	spriteBatchActive *bitalloc.Allocator
	charBatches       []*CharBatch
	charBatchActive   *bitalloc.Allocator
}

func newRenderLayer(name string, opts LayerOptions) *RenderLayer {
	return &RenderLayer{
		name:              name,
		slotCount:         opts.SpriteBatchSlotCount,
		spriteBatchActive: bitalloc.New(0),
		charBatches:       make([]*CharBatch, opts.CharBatchLimit),
		charBatchActive:   bitalloc.New(opts.CharBatchLimit),
	}
}

func (l *RenderLayer) Name() string {
	return l.name
}

func (l *RenderLayer) SpriteBatchSlotCount() int {
	return l.slotCount
}

func (l *RenderLayer) SpriteBatchCount() int {
	return len(l.spriteBatches)
}

// SpriteBatch returns the sprite batch at index i, or nil.
func (l *RenderLayer) SpriteBatch(i int) *SpriteBatch {
	if i < 0 || i >= len(l.spriteBatches) {
		return nil
	}
	return l.spriteBatches[i]
}

// CharBatch returns the active char batch at index i, or nil.
func (l *RenderLayer) CharBatch(i int) *CharBatch {
	if i < 0 || i >= len(l.charBatches) || !l.charBatchActive.IsSet(i) {
		return nil
	}
	return l.charBatches[i]
}

// takeAnySpriteSlot tries each batch in creation order and, if none has room
// for tex, creates exactly one new batch.
func (l *RenderLayer) takeAnySpriteSlot(dev Device, unitLimit, tex int) (batch, slot int) {
	for i, b := range l.spriteBatches {
		if s, ok := b.TakeSlot(tex); ok {
			return i, s
		}
	}

	b := newSpriteBatch(dev, l.slotCount, unitLimit)
	batch = len(l.spriteBatches)
	l.spriteBatches = append(l.spriteBatches, b)
	l.spriteBatchActive.Grow(len(l.spriteBatches))
	l.spriteBatchActive.Set(batch)

	Logger().Debug("render: sprite batch created",
		"layer", l.name, "batch", batch, "slots", l.slotCount, "tex", tex)

	slot, ok := b.TakeSlot(tex)
	if !ok {
		panic("render: fresh sprite batch refused a slot")
	}
	return batch, slot
}

// activateCharBatch takes the lowest inactive char batch index. A batch
// previously at that index has its buffer released and replaced.
func (l *RenderLayer) activateCharBatch(dev Device, capacity, font int, pos Vec2) (int, bool) {
	i, ok := l.charBatchActive.Take()
	if !ok {
		return 0, false
	}
	if old := l.charBatches[i]; old != nil {
		Logger().Debug("render: char batch reused", "layer", l.name, "batch", i,
			"old_capacity", old.capacity, "capacity", capacity)
		old.release()
	}
	l.charBatches[i] = newCharBatch(dev, capacity, font, pos)
	return i, true
}

func (l *RenderLayer) deactivateCharBatch(i int) {
	l.charBatchActive.Clear(i)
}

func (l *RenderLayer) draw(dev Device, assets Assets, view, proj Mat4) {
	l.spriteBatchActive.Used(func(i int) {
		l.spriteBatches[i].draw(dev, assets, view, proj)
	})
	l.charBatchActive.Used(func(i int) {
		l.charBatches[i].draw(dev, assets, view, proj)
	})
}

func (l *RenderLayer) release() {
	for _, b := range l.spriteBatches {
		b.release()
	}
	for _, b := range l.charBatches {
		if b != nil {
			b.release()
		}
	}
	l.spriteBatches = nil
	l.spriteBatchActive = bitalloc.New(0)
	l.charBatchActive.Reset()
}
