package scene

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/quadbatch/render"
)

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectFields(obj tengo.Object) (map[string]tengo.Object, bool) {
	switch v := obj.(type) {
	case *tengo.Map:
		return v.Value, true
	case *tengo.ImmutableMap:
		return v.Value, true
	}
	return nil, false
}

func objectItems(obj tengo.Object) ([]tengo.Object, bool) {
	switch v := obj.(type) {
	case *tengo.Array:
		return v.Value, true
	case *tengo.ImmutableArray:
		return v.Value, true
	}
	return nil, false
}

func argInt(name string, args []tengo.Object, i int) (int, error) {
	v, ok := tengo.ToInt(args[i])
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "int", Found: args[i].TypeName()}
	}
	return v, nil
}

func argFloat(name string, args []tengo.Object, i int) (float32, error) {
	v, ok := tengo.ToFloat64(args[i])
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "float", Found: args[i].TypeName()}
	}
	return float32(v), nil
}

func argString(name string, args []tengo.Object, i int) (string, error) {
	s, ok := args[i].(*tengo.String)
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: name, Expected: "string", Found: args[i].TypeName()}
	}
	return s.Value, nil
}

// floatsOf reads a number or an array of numbers. A single number fills
// every component.
func floatsOf(obj tengo.Object, n int) ([]float32, bool) {
	if v, ok := tengo.ToFloat64(obj); ok {
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(v)
		}
		return out, true
	}
	items, ok := objectItems(obj)
	if !ok || len(items) != n {
		return nil, false
	}
	out := make([]float32, n)
	for i, item := range items {
		v, ok := tengo.ToFloat64(item)
		if !ok {
			return nil, false
		}
		out[i] = float32(v)
	}
	return out, true
}

func colorOf(obj tengo.Object) (render.Color, error) {
	if s, ok := obj.(*tengo.String); ok {
		return render.ParseColor(s.Value)
	}
	c, ok := floatsOf(obj, 4)
	if !ok {
		return render.Color{}, tengo.ErrInvalidArgumentType{Name: "color", Expected: "string or [r, g, b, a]", Found: obj.TypeName()}
	}
	return render.Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

func vec2Object(v render.Vec2) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: float64(v.X)},
		&tengo.Float{Value: float64(v.Y)},
	}}
}

func parseHAlign(s string) (render.HAlign, bool) {
	switch s {
	case "", "left":
		return render.HAlignLeft, true
	case "center", "centre":
		return render.HAlignCenter, true
	case "right":
		return render.HAlignRight, true
	}
	return 0, false
}

func parseVAlign(s string) (render.VAlign, bool) {
	switch s {
	case "", "top":
		return render.VAlignTop, true
	case "center", "centre":
		return render.VAlignCenter, true
	case "bottom":
		return render.VAlignBottom, true
	}
	return 0, false
}
