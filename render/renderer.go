package render

import "fmt"

// LayerLimit is the maximum number of layers a renderer holds.
const LayerLimit = 16

// SlotKey identifies a sprite slot.
type SlotKey struct {
	Layer int
	Batch int
	Slot  int
}

// CharBatchKey identifies a char batch.
type CharBatchKey struct {
	Layer int
	Batch int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCamLayerCount makes the first n layers camera-transformed.
func WithCamLayerCount(n int) Option {
	return func(r *Renderer) {
		r.camLayerCount = n
	}
}

// WithBackground sets the colour the frame is cleared to.
func WithBackground(c Color) Option {
	return func(r *Renderer) {
		r.background = c
	}
}

// Renderer owns every render layer. Layers are declared first, then locked;
// slots and batches can only be used once the layers are locked, and no
// layer can be added afterwards.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	dev    Device
	assets Assets

	unitLimit     int
	camLayerCount int
	background    Color

	layers []*RenderLayer
	names  map[string]int
	locked bool

	Camera Camera
}

// NewRenderer creates a renderer drawing through dev with textures from
// assets. The texture unit limit is read from dev once.
func NewRenderer(dev Device, assets Assets, opts ...Option) *Renderer {
	r := &Renderer{
		dev:        dev,
		assets:     assets,
		unitLimit:  min(dev.MaxTextureUnits(), TexUnitLimitCap),
		background: Black,
		names:      map[string]int{},
		Camera:     NewCamera(Vec2{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.unitLimit < 1 {
		r.unitLimit = 1
	}
	return r
}

// TexUnitLimit returns the texture units available to each sprite batch.
func (r *Renderer) TexUnitLimit() int {
	return r.unitLimit
}

func (r *Renderer) Locked() bool {
	return r.locked
}

func (r *Renderer) LayerCount() int {
	return len(r.layers)
}

func (r *Renderer) CamLayerCount() int {
	return r.camLayerCount
}

// SetCamLayerCount changes how many leading layers are camera-transformed.
func (r *Renderer) SetCamLayerCount(n int) error {
	if r.locked {
		return fmt.Errorf("render: set camera layer count: %w", ErrLayersLocked)
	}
	r.camLayerCount = n
	return nil
}

func (r *Renderer) Background() Color {
	return r.background
}

func (r *Renderer) SetBackground(c Color) {
	r.background = c
}

// Layer returns the layer at index i, or nil.
func (r *Renderer) Layer(i int) *RenderLayer {
	if i < 0 || i >= len(r.layers) {
		return nil
	}
	return r.layers[i]
}

// LayerIndex resolves a layer name.
func (r *Renderer) LayerIndex(name string) (int, error) {
	i, ok := r.names[name]
	if !ok {
		return 0, fmt.Errorf("render: layer %q: %w", name, ErrUnknownLayer)
	}
	return i, nil
}

// AddLayer declares a layer after all previously added ones.
func (r *Renderer) AddLayer(name string, opts LayerOptions) error {
	if r.locked {
		return fmt.Errorf("render: add layer %q: %w", name, ErrLayersLocked)
	}
	if _, ok := r.names[name]; ok {
		return fmt.Errorf("render: add layer %q: %w", name, ErrDuplicateLayer)
	}
	if len(r.layers) >= LayerLimit {
		return fmt.Errorf("render: add layer %q: %w", name, ErrLayerLimit)
	}
	n := opts.SpriteBatchSlotCount
	if n <= 0 || n%8 != 0 || n > SpriteBatchSlotLimit {
		return fmt.Errorf("render: add layer %q with %d slots: %w", name, n, ErrSlotCount)
	}
	if opts.CharBatchLimit <= 0 {
		opts.CharBatchLimit = DefaultCharBatchLimit
	}

	r.names[name] = len(r.layers)
	r.layers = append(r.layers, newRenderLayer(name, opts))
	return nil
}

// LockLayers ends the declaration phase. It cannot be undone.
func (r *Renderer) LockLayers() error {
	if r.locked {
		return fmt.Errorf("render: lock layers: %w", ErrLayersLocked)
	}
	if r.camLayerCount < 0 || r.camLayerCount > len(r.layers) {
		return fmt.Errorf("render: lock layers with %d camera layers of %d: %w",
			r.camLayerCount, len(r.layers), ErrCamLayerCount)
	}
	r.locked = true

	Logger().Debug("render: layers locked",
		"layers", len(r.layers), "camera_layers", r.camLayerCount, "tex_units", r.unitLimit)
	return nil
}

func (r *Renderer) lockedLayer(name string) (int, *RenderLayer, error) {
	if !r.locked {
		return 0, nil, ErrLayersUnlocked
	}
	i, ok := r.names[name]
	if !ok {
		return 0, nil, fmt.Errorf("layer %q: %w", name, ErrUnknownLayer)
	}
	return i, r.layers[i], nil
}

// TakeSpriteSlot takes a slot for texture tex in the named layer, growing
// the layer by one sprite batch if no existing batch can host it.
func (r *Renderer) TakeSpriteSlot(layer string, tex int) (SlotKey, error) {
	li, l, err := r.lockedLayer(layer)
	if err != nil {
		return SlotKey{}, fmt.Errorf("render: take sprite slot: %w", err)
	}
	batch, slot := l.takeAnySpriteSlot(r.dev, r.unitLimit, tex)
	return SlotKey{Layer: li, Batch: batch, Slot: slot}, nil
}

func (r *Renderer) spriteBatch(key SlotKey) (*SpriteBatch, error) {
	if !r.locked {
		return nil, ErrLayersUnlocked
	}
	l := r.Layer(key.Layer)
	if l == nil {
		return nil, fmt.Errorf("%w: layer %d", ErrInvalidKey, key.Layer)
	}
	b := l.SpriteBatch(key.Batch)
	if b == nil || !b.IsSlotActive(key.Slot) {
		return nil, fmt.Errorf("%w: slot %+v", ErrInvalidKey, key)
	}
	return b, nil
}

// ReleaseSlot returns a sprite slot to its batch.
func (r *Renderer) ReleaseSlot(key SlotKey) error {
	b, err := r.spriteBatch(key)
	if err != nil {
		return fmt.Errorf("render: release slot: %w", err)
	}
	b.ReleaseSlot(key.Slot)
	return nil
}

// WriteSlot writes display data for a sprite slot.
func (r *Renderer) WriteSlot(key SlotKey, w SpriteWrite) error {
	b, err := r.spriteBatch(key)
	if err != nil {
		return fmt.Errorf("render: write slot: %w", err)
	}
	tex := b.units.Unit(b.SlotUnit(key.Slot)).Texture
	b.WriteSlot(key.Slot, w, r.assets.TextureSize(tex))
	return nil
}

// ClearSlot hides a sprite slot without releasing it.
func (r *Renderer) ClearSlot(key SlotKey) error {
	b, err := r.spriteBatch(key)
	if err != nil {
		return fmt.Errorf("render: clear slot: %w", err)
	}
	b.ClearSlot(key.Slot)
	return nil
}

// AddCharBatch activates a char batch of the given capacity in the named
// layer. Unlike sprite batches, char batches never grow past the layer's
// char batch limit.
func (r *Renderer) AddCharBatch(layer string, capacity, font int, pos Vec2) (CharBatchKey, error) {
	li, l, err := r.lockedLayer(layer)
	if err != nil {
		return CharBatchKey{}, fmt.Errorf("render: add char batch: %w", err)
	}
	if capacity < 1 || capacity > CharBatchSlotLimit {
		return CharBatchKey{}, fmt.Errorf("render: add char batch of %d: %w", capacity, ErrCharCapacity)
	}
	bi, ok := l.activateCharBatch(r.dev, capacity, font, pos)
	if !ok {
		return CharBatchKey{}, fmt.Errorf("render: add char batch to %q: %w", layer, ErrCharBatchLimit)
	}
	return CharBatchKey{Layer: li, Batch: bi}, nil
}

func (r *Renderer) charBatch(key CharBatchKey) (*CharBatch, error) {
	if !r.locked {
		return nil, ErrLayersUnlocked
	}
	l := r.Layer(key.Layer)
	if l == nil {
		return nil, fmt.Errorf("%w: layer %d", ErrInvalidKey, key.Layer)
	}
	b := l.CharBatch(key.Batch)
	if b == nil {
		return nil, fmt.Errorf("%w: char batch %+v", ErrInvalidKey, key)
	}
	return b, nil
}

// DeactivateCharBatch stops drawing a char batch and frees its index for
// reuse.
func (r *Renderer) DeactivateCharBatch(key CharBatchKey) error {
	if _, err := r.charBatch(key); err != nil {
		return fmt.Errorf("render: deactivate char batch: %w", err)
	}
	r.layers[key.Layer].deactivateCharBatch(key.Batch)
	return nil
}

// WriteText replaces the text of a char batch.
func (r *Renderer) WriteText(key CharBatchKey, text string, alignH HAlign, alignV VAlign) error {
	b, err := r.charBatch(key)
	if err != nil {
		return fmt.Errorf("render: write text: %w", err)
	}
	m := r.assets.FontMetrics(b.font)
	if m == nil {
		return fmt.Errorf("render: write text: no metrics for font %d", b.font)
	}
	return b.Write(text, alignH, alignV, m)
}

// ClearText removes the text of a char batch while keeping it active.
func (r *Renderer) ClearText(key CharBatchKey) error {
	b, err := r.charBatch(key)
	if err != nil {
		return fmt.Errorf("render: clear text: %w", err)
	}
	b.Clear()
	return nil
}

func (r *Renderer) CharBatchPosition(key CharBatchKey) (Vec2, error) {
	b, err := r.charBatch(key)
	if err != nil {
		return Vec2{}, fmt.Errorf("render: char batch position: %w", err)
	}
	return b.props.Pos, nil
}

func (r *Renderer) SetCharBatchPosition(key CharBatchKey, pos Vec2) error {
	b, err := r.charBatch(key)
	if err != nil {
		return fmt.Errorf("render: set char batch position: %w", err)
	}
	b.props.Pos = pos
	return nil
}

func (r *Renderer) CharBatchRotation(key CharBatchKey) (float32, error) {
	b, err := r.charBatch(key)
	if err != nil {
		return 0, fmt.Errorf("render: char batch rotation: %w", err)
	}
	return b.props.Rotation, nil
}

func (r *Renderer) SetCharBatchRotation(key CharBatchKey, rot float32) error {
	b, err := r.charBatch(key)
	if err != nil {
		return fmt.Errorf("render: set char batch rotation: %w", err)
	}
	b.props.Rotation = rot
	return nil
}

func (r *Renderer) CharBatchBlend(key CharBatchKey) (Color, error) {
	b, err := r.charBatch(key)
	if err != nil {
		return Color{}, fmt.Errorf("render: char batch blend: %w", err)
	}
	return b.props.Blend, nil
}

func (r *Renderer) SetCharBatchBlend(key CharBatchKey, c Color) error {
	b, err := r.charBatch(key)
	if err != nil {
		return fmt.Errorf("render: set char batch blend: %w", err)
	}
	b.props.Blend = c
	return nil
}

// Draw issues the frame: clear, then every layer in order. Sprite batches
// always draw their full capacity; char batches draw their active length.
func (r *Renderer) Draw(window Vec2i) {
	r.dev.Clear(r.background)

	proj := ScreenOrtho(window)
	camView := r.Camera.View(window)
	identity := Identity()

	for i, l := range r.layers {
		view := identity
		if i < r.camLayerCount {
			view = camView
		}
		l.draw(r.dev, r.assets, view, proj)
	}
}

// Close releases every vertex buffer. The renderer must not be used after.
func (r *Renderer) Close() {
	for _, l := range r.layers {
		l.release()
	}
	Logger().Debug("render: renderer closed", "layers", len(r.layers))
}
