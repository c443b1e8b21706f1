package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/quadbatch/assets"
	"github.com/milk9111/quadbatch/render"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoLayers     = errors.New("no layers configured")
	ErrLayerName    = errors.New("layer without a name")
	ErrFormat       = errors.New("unsupported config format")
	ErrWindowSize   = errors.New("window size must be positive")
	ErrFontSize     = errors.New("font size must be positive")
	ErrDuplicateKey = errors.New("duplicate name")
)

type WindowSpec struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

type CameraSpec struct {
	X     float32 `yaml:"x" toml:"x"`
	Y     float32 `yaml:"y" toml:"y"`
	Scale float32 `yaml:"scale" toml:"scale"`
}

// DefaultSpriteBatchSlots is used for layers that leave sprite_batch_slots
// unset.
const DefaultSpriteBatchSlots = 64

type LayerSpec struct {
	Name             string `yaml:"name" toml:"name"`
	SpriteBatchSlots int    `yaml:"sprite_batch_slots" toml:"sprite_batch_slots"`
	CharBatchLimit   int    `yaml:"char_batch_limit" toml:"char_batch_limit"`
}

// FontSpec names a font to bake. An empty Path bakes Go Regular.
type FontSpec struct {
	Name string  `yaml:"name" toml:"name"`
	Path string  `yaml:"path" toml:"path"`
	Size float64 `yaml:"size" toml:"size"`
}

// RendererSpec describes a renderer's layers and the assets it starts with.
type RendererSpec struct {
	Window       WindowSpec  `yaml:"window" toml:"window"`
	Background   string      `yaml:"background" toml:"background"`
	CameraLayers int         `yaml:"camera_layers" toml:"camera_layers"`
	Camera       CameraSpec  `yaml:"camera" toml:"camera"`
	Layers       []LayerSpec `yaml:"layers" toml:"layers"`
	Fonts        []FontSpec  `yaml:"fonts" toml:"fonts"`
	// Textures lists image paths; empty loads the embedded textures.
	Textures []string `yaml:"textures" toml:"textures"`
}

// LoadRendererSpec loads and validates a renderer config. The format is
// picked by extension.
func LoadRendererSpec(name string) (*RendererSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", name, err)
	}
	return ParseRendererSpec(name, data)
}

// ParseRendererSpec decodes data as YAML or TOML depending on name's
// extension, then validates it.
func ParseRendererSpec(name string, data []byte) (*RendererSpec, error) {
	var spec RendererSpec
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("config: %w: %q", ErrFormat, ext)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return &spec, nil
}

// Validate checks what the renderer cannot check before layers are locked.
func (s *RendererSpec) Validate() error {
	if len(s.Layers) == 0 {
		return ErrNoLayers
	}
	if s.Window.Width < 0 || s.Window.Height < 0 {
		return ErrWindowSize
	}
	seen := map[string]bool{}
	for i, l := range s.Layers {
		if l.Name == "" {
			return fmt.Errorf("layer %d: %w", i, ErrLayerName)
		}
		if seen[l.Name] {
			return fmt.Errorf("layer %q: %w", l.Name, ErrDuplicateKey)
		}
		seen[l.Name] = true
	}
	fonts := map[string]bool{}
	for _, f := range s.Fonts {
		if f.Size <= 0 {
			return fmt.Errorf("font %q: %w", f.Name, ErrFontSize)
		}
		if fonts[f.Name] {
			return fmt.Errorf("font %q: %w", f.Name, ErrDuplicateKey)
		}
		fonts[f.Name] = true
	}
	if s.Background != "" {
		if _, err := render.ParseColor(s.Background); err != nil {
			return err
		}
	}
	return nil
}

// WindowSize returns the configured window size, defaulting to 960x540.
func (s *RendererSpec) WindowSize() render.Vec2i {
	w, h := s.Window.Width, s.Window.Height
	if w == 0 {
		w = 960
	}
	if h == 0 {
		h = 540
	}
	return render.Vec2i{X: w, Y: h}
}

// Apply adds the configured layers to an unlocked renderer and locks it.
func (s *RendererSpec) Apply(r *render.Renderer) error {
	if err := r.SetCamLayerCount(s.CameraLayers); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, l := range s.Layers {
		slots := l.SpriteBatchSlots
		if slots == 0 {
			slots = DefaultSpriteBatchSlots
		}
		err := r.AddLayer(l.Name, render.LayerOptions{
			SpriteBatchSlotCount: slots,
			CharBatchLimit:       l.CharBatchLimit,
		})
		if err != nil {
			return fmt.Errorf("config: layer %q: %w", l.Name, err)
		}
	}
	if err := r.LockLayers(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return s.ApplyLive(r)
}

// ApplyLive updates the settings that may change after layers are locked:
// the background colour and the camera.
func (s *RendererSpec) ApplyLive(r *render.Renderer) error {
	bg := render.Black
	if s.Background != "" {
		c, err := render.ParseColor(s.Background)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		bg = c
	}
	r.SetBackground(bg)
	r.Camera.Pos = render.Vec2{X: s.Camera.X, Y: s.Camera.Y}
	r.Camera.SetScale(s.Camera.Scale)
	return nil
}

// LoadAssets bakes the configured fonts and loads the configured textures
// into lib.
func (s *RendererSpec) LoadAssets(lib *assets.Library) error {
	if len(s.Textures) == 0 {
		if err := lib.LoadEmbeddedTextures(); err != nil {
			return fmt.Errorf("config: textures: %w", err)
		}
	}
	for _, p := range s.Textures {
		if _, err := lib.LoadTexture(p); err != nil {
			return fmt.Errorf("config: texture %s: %w", p, err)
		}
	}
	for _, fs := range s.Fonts {
		f, err := bakeFont(fs)
		if err != nil {
			return fmt.Errorf("config: font %q: %w", fs.Name, err)
		}
		lib.AddFont(fs.Name, f)
	}
	return nil
}

func bakeFont(fs FontSpec) (*assets.Font, error) {
	if fs.Path == "" {
		return assets.DefaultFont(fs.Size)
	}
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		return nil, err
	}
	return assets.LoadFont(data, fs.Size, 72)
}
