// Package scene runs tengo scripts that drive a renderer through its public
// sprite, text and camera API.
//
// A scene script defines two functions:
//
//	init := func(gfx, state) { ... }
//	tick := func(gfx, state, frame) { ... }
//
// init runs before the first tick. state is a map that persists between
// calls; everything else in the script is re-evaluated each call. frame
// carries n, dt, t, w and h (frame number, seconds since the last tick,
// seconds since the first, window size).
package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/quadbatch/render"
)

var (
	ErrUnknownHandle  = errors.New("unknown handle")
	ErrUnknownTexture = errors.New("unknown texture")
	ErrBadAlign       = errors.New("unknown alignment")
)

// Catalog resolves the asset names scripts refer to.
type Catalog interface {
	TextureIndex(name string) (int, bool)
	TextureSize(i int) render.Vec2i
	FontIndex(name string) (int, error)
}

// Modules scene scripts may import.
var Modules = []string{"math", "text", "times", "rand", "fmt", "enum"}

const lifecycleDispatchScript = `
if __phase == "init" {
	init(__gfx, __state)
} else if __phase == "tick" {
	tick(__gfx, __state, __frame)
}
`

type sprite struct {
	key render.SlotKey
	tex int
}

// Scene is a compiled script bound to a renderer.
type Scene struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	gfx      *tengo.ImmutableMap

	r   *render.Renderer
	cat Catalog

	sprites    map[int]sprite
	texts      map[int]render.CharBatchKey
	nextHandle int

	window      render.Vec2i
	frame       int
	elapsed     float64
	initialized bool
}

// Load compiles the named scene script.
func Load(name string, r *render.Renderer, cat Catalog) (*Scene, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", name, err)
	}
	return Compile(name, src, r, cat)
}

// Compile compiles src as a scene script.
func Compile(name string, src []byte, r *render.Renderer, cat Catalog) (*Scene, error) {
	full := string(src) + "\n" + lifecycleDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__phase", "")
	_ = script.Add("__gfx", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__frame", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(Modules...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scene: compile %s: %w", name, err)
	}

	s := &Scene{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		r:        r,
		cat:      cat,
		sprites:  map[int]sprite{},
		texts:    map[int]render.CharBatchKey{},
	}
	s.gfx = s.buildGfx()
	return s, nil
}

func (s *Scene) Name() string { return s.name }

// Frame returns how many ticks have run.
func (s *Scene) Frame() int { return s.frame }

// SpriteCount and TextCount report the live handles the script holds.
func (s *Scene) SpriteCount() int { return len(s.sprites) }
func (s *Scene) TextCount() int   { return len(s.texts) }

// State returns the value the script stored under key in its state map.
func (s *Scene) State(key string) tengo.Object {
	return s.state.Value[key]
}

// Tick runs init on the first call and tick on every call.
func (s *Scene) Tick(ctx context.Context, dt float64, window render.Vec2i) error {
	s.window = window
	if !s.initialized {
		if err := s.run(ctx, "init", nil); err != nil {
			return fmt.Errorf("scene: %s init: %w", s.name, err)
		}
		s.initialized = true
	}

	s.elapsed += dt
	frame := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"n":  &tengo.Int{Value: int64(s.frame)},
		"dt": &tengo.Float{Value: dt},
		"t":  &tengo.Float{Value: s.elapsed},
		"w":  &tengo.Int{Value: int64(window.X)},
		"h":  &tengo.Int{Value: int64(window.Y)},
	}}
	if err := s.run(ctx, "tick", frame); err != nil {
		return fmt.Errorf("scene: %s tick %d: %w", s.name, s.frame, err)
	}
	s.frame++
	return nil
}

func (s *Scene) run(ctx context.Context, phase string, frame *tengo.ImmutableMap) error {
	if frame == nil {
		frame = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__gfx", s.gfx); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Set("__frame", frame); err != nil {
		return err
	}
	return s.compiled.RunContext(ctx)
}

// Close releases every sprite slot and char batch the script still holds.
// The renderer stays usable for the next scene.
func (s *Scene) Close() error {
	var errs []error
	for h, sp := range s.sprites {
		if err := s.r.ReleaseSlot(sp.key); err != nil {
			errs = append(errs, err)
		}
		delete(s.sprites, h)
	}
	for h, key := range s.texts {
		if err := s.r.DeactivateCharBatch(key); err != nil {
			errs = append(errs, err)
		}
		delete(s.texts, h)
	}
	return errors.Join(errs...)
}

func (s *Scene) newHandle() int {
	s.nextHandle++
	return s.nextHandle
}

func (s *Scene) spriteHandle(args []tengo.Object, i int) (int, sprite, error) {
	h, err := argInt("handle", args, i)
	if err != nil {
		return 0, sprite{}, err
	}
	sp, ok := s.sprites[h]
	if !ok {
		return 0, sprite{}, fmt.Errorf("%w: sprite %d", ErrUnknownHandle, h)
	}
	return h, sp, nil
}

func (s *Scene) textHandle(args []tengo.Object, i int) (int, render.CharBatchKey, error) {
	h, err := argInt("handle", args, i)
	if err != nil {
		return 0, render.CharBatchKey{}, err
	}
	key, ok := s.texts[h]
	if !ok {
		return 0, render.CharBatchKey{}, fmt.Errorf("%w: text %d", ErrUnknownHandle, h)
	}
	return h, key, nil
}

func (s *Scene) textureIndex(obj tengo.Object) (int, error) {
	if name, ok := obj.(*tengo.String); ok {
		i, ok := s.cat.TextureIndex(name.Value)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownTexture, name.Value)
		}
		return i, nil
	}
	i, ok := tengo.ToInt(obj)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: "texture", Expected: "string or int", Found: obj.TypeName()}
	}
	return i, nil
}

func (s *Scene) fontIndex(obj tengo.Object) (int, error) {
	if name, ok := obj.(*tengo.String); ok {
		return s.cat.FontIndex(name.Value)
	}
	i, ok := tengo.ToInt(obj)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: "font", Expected: "string or int", Found: obj.TypeName()}
	}
	return i, nil
}
