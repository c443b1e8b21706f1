package assets

import (
	"errors"
	"image"
	"testing"

	"github.com/milk9111/quadbatch/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

// keep returns the decoded image itself so tests never touch the GPU.
func keep(img image.Image) render.Texture { return img }

func TestLibraryEmbeddedTextures(t *testing.T) {
	l := NewLibrary(keep)
	require.NoError(t, l.LoadEmbeddedTextures())
	require.Equal(t, 3, l.TextureCount())

	cases := []struct {
		name string
		size render.Vec2i
	}{
		{"textures/ball.png", render.Vec2i{X: 16, Y: 16}},
		{"textures/crate.png", render.Vec2i{X: 32, Y: 32}},
		{"textures/tiles.png", render.Vec2i{X: 64, Y: 16}},
	}
	for want, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			i, ok := l.TextureIndex(tc.name)
			require.True(t, ok)
			assert.Equal(t, want, i)
			assert.Equal(t, tc.size, l.TextureSize(i))
			assert.NotNil(t, l.Texture(i))
		})
	}
}

func TestLibraryLoadTextureCaches(t *testing.T) {
	l := NewLibrary(keep)
	a, err := l.LoadTexture("assets/textures/crate.png")
	require.NoError(t, err)
	b, err := l.LoadTexture("assets/textures/crate.png")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, l.TextureCount())

	_, err = l.LoadTexture("textures/missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLibraryAddImageReplaces(t *testing.T) {
	l := NewLibrary(keep)
	i := l.AddImage("quad", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	j := l.AddImage("quad", image.NewRGBA(image.Rect(0, 0, 8, 2)))
	assert.Equal(t, i, j)
	assert.Equal(t, render.Vec2i{X: 8, Y: 2}, l.TextureSize(i))
}

func TestLibraryOutOfRange(t *testing.T) {
	l := NewLibrary(keep)
	assert.Nil(t, l.Texture(3))
	assert.Equal(t, render.Vec2i{}, l.TextureSize(-1))
	assert.Nil(t, l.FontTexture(0))
	assert.Nil(t, l.FontMetrics(0))
}

func TestLibraryFonts(t *testing.T) {
	f, err := BuildFont(basicfont.Face7x13)
	require.NoError(t, err)

	l := NewLibrary(keep)
	i := l.AddFont("fixed", f)
	assert.Equal(t, 0, i)
	assert.Same(t, f.Metrics, l.FontMetrics(i))
	assert.Same(t, f.Atlas, l.FontTexture(i))

	got, err := l.FontIndex("fixed")
	require.NoError(t, err)
	assert.Equal(t, i, got)

	_, err = l.FontIndex("serif")
	assert.True(t, errors.Is(err, ErrUnknownFont))
}

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"textures/ball.png", "textures/ball.png"},
		{"assets/textures/ball.png", "textures/ball.png"},
		{"/home/me/game/assets/textures/ball.png", "textures/ball.png"},
		{"/tmp/ball.png", "ball.png"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanAssetPath(tc.in), tc.in)
	}
}
