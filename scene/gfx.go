package scene

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/quadbatch/render"
)

func userFunc(name string, minArgs int, f func(args []tengo.Object) (tengo.Object, error)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < minArgs {
			return nil, tengo.ErrWrongNumArguments
		}
		return f(args)
	}}
}

// buildGfx exposes the renderer to scripts. Renderer errors are returned to
// the VM and abort the running phase.
func (s *Scene) buildGfx() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	add := func(f *tengo.UserFunction) { values[f.Name] = f }

	add(userFunc("take_sprite", 2, func(args []tengo.Object) (tengo.Object, error) {
		layer, err := argString("layer", args, 0)
		if err != nil {
			return nil, err
		}
		tex, err := s.textureIndex(args[1])
		if err != nil {
			return nil, err
		}
		key, err := s.r.TakeSpriteSlot(layer, tex)
		if err != nil {
			return nil, err
		}
		h := s.newHandle()
		s.sprites[h] = sprite{key: key, tex: tex}
		return &tengo.Int{Value: int64(h)}, nil
	}))

	add(userFunc("release_sprite", 1, func(args []tengo.Object) (tengo.Object, error) {
		h, sp, err := s.spriteHandle(args, 0)
		if err != nil {
			return nil, err
		}
		// drop the handle only once the renderer has let go of the slot
		if err := s.r.ReleaseSlot(sp.key); err != nil {
			return nil, err
		}
		delete(s.sprites, h)
		return nil, nil
	}))

	add(userFunc("write_sprite", 2, func(args []tengo.Object) (tengo.Object, error) {
		_, sp, err := s.spriteHandle(args, 0)
		if err != nil {
			return nil, err
		}
		w, err := s.spriteWrite(sp, args[1])
		if err != nil {
			return nil, err
		}
		return nil, s.r.WriteSlot(sp.key, w)
	}))

	add(userFunc("clear_sprite", 1, func(args []tengo.Object) (tengo.Object, error) {
		_, sp, err := s.spriteHandle(args, 0)
		if err != nil {
			return nil, err
		}
		return nil, s.r.ClearSlot(sp.key)
	}))

	add(userFunc("add_text", 3, func(args []tengo.Object) (tengo.Object, error) {
		layer, err := argString("layer", args, 0)
		if err != nil {
			return nil, err
		}
		capacity, err := argInt("capacity", args, 1)
		if err != nil {
			return nil, err
		}
		font, err := s.fontIndex(args[2])
		if err != nil {
			return nil, err
		}
		var pos render.Vec2
		if len(args) >= 5 {
			if pos.X, err = argFloat("x", args, 3); err != nil {
				return nil, err
			}
			if pos.Y, err = argFloat("y", args, 4); err != nil {
				return nil, err
			}
		}
		key, err := s.r.AddCharBatch(layer, capacity, font, pos)
		if err != nil {
			return nil, err
		}
		h := s.newHandle()
		s.texts[h] = key
		return &tengo.Int{Value: int64(h)}, nil
	}))

	add(userFunc("remove_text", 1, func(args []tengo.Object) (tengo.Object, error) {
		h, key, err := s.textHandle(args, 0)
		if err != nil {
			return nil, err
		}
		if err := s.r.DeactivateCharBatch(key); err != nil {
			return nil, err
		}
		delete(s.texts, h)
		return nil, nil
	}))

	add(userFunc("write_text", 2, func(args []tengo.Object) (tengo.Object, error) {
		_, key, err := s.textHandle(args, 0)
		if err != nil {
			return nil, err
		}
		str, err := argString("text", args, 1)
		if err != nil {
			return nil, err
		}
		var hs, vs string
		if len(args) > 2 {
			hs = objectAsString(args[2])
		}
		if len(args) > 3 {
			vs = objectAsString(args[3])
		}
		ha, ok := parseHAlign(hs)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadAlign, hs)
		}
		va, ok := parseVAlign(vs)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadAlign, vs)
		}
		return nil, s.r.WriteText(key, str, ha, va)
	}))

	add(userFunc("clear_text", 1, func(args []tengo.Object) (tengo.Object, error) {
		_, key, err := s.textHandle(args, 0)
		if err != nil {
			return nil, err
		}
		return nil, s.r.ClearText(key)
	}))

	add(userFunc("set_text_pos", 3, func(args []tengo.Object) (tengo.Object, error) {
		_, key, err := s.textHandle(args, 0)
		if err != nil {
			return nil, err
		}
		x, err := argFloat("x", args, 1)
		if err != nil {
			return nil, err
		}
		y, err := argFloat("y", args, 2)
		if err != nil {
			return nil, err
		}
		return nil, s.r.SetCharBatchPosition(key, render.Vec2{X: x, Y: y})
	}))

	add(userFunc("text_pos", 1, func(args []tengo.Object) (tengo.Object, error) {
		_, key, err := s.textHandle(args, 0)
		if err != nil {
			return nil, err
		}
		pos, err := s.r.CharBatchPosition(key)
		if err != nil {
			return nil, err
		}
		return vec2Object(pos), nil
	}))

	add(userFunc("set_text_rot", 2, func(args []tengo.Object) (tengo.Object, error) {
		_, key, err := s.textHandle(args, 0)
		if err != nil {
			return nil, err
		}
		rot, err := argFloat("rot", args, 1)
		if err != nil {
			return nil, err
		}
		return nil, s.r.SetCharBatchRotation(key, rot)
	}))

	add(userFunc("set_text_color", 2, func(args []tengo.Object) (tengo.Object, error) {
		_, key, err := s.textHandle(args, 0)
		if err != nil {
			return nil, err
		}
		c, err := colorOf(args[1])
		if err != nil {
			return nil, err
		}
		return nil, s.r.SetCharBatchBlend(key, c)
	}))

	add(userFunc("set_camera", 2, func(args []tengo.Object) (tengo.Object, error) {
		x, err := argFloat("x", args, 0)
		if err != nil {
			return nil, err
		}
		y, err := argFloat("y", args, 1)
		if err != nil {
			return nil, err
		}
		s.r.Camera.Pos = render.Vec2{X: x, Y: y}
		if len(args) > 2 {
			scale, err := argFloat("scale", args, 2)
			if err != nil {
				return nil, err
			}
			s.r.Camera.SetScale(scale)
		}
		return nil, nil
	}))

	add(userFunc("camera", 0, func([]tengo.Object) (tengo.Object, error) {
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"x":     &tengo.Float{Value: float64(s.r.Camera.Pos.X)},
			"y":     &tengo.Float{Value: float64(s.r.Camera.Pos.Y)},
			"scale": &tengo.Float{Value: float64(s.r.Camera.Scale())},
		}}, nil
	}))

	add(userFunc("to_world", 2, func(args []tengo.Object) (tengo.Object, error) {
		p, err := pointArgs(args)
		if err != nil {
			return nil, err
		}
		return vec2Object(s.r.Camera.ToWorld(p, s.window)), nil
	}))

	add(userFunc("to_screen", 2, func(args []tengo.Object) (tengo.Object, error) {
		p, err := pointArgs(args)
		if err != nil {
			return nil, err
		}
		return vec2Object(s.r.Camera.ToScreen(p, s.window)), nil
	}))

	add(userFunc("set_background", 1, func(args []tengo.Object) (tengo.Object, error) {
		c, err := colorOf(args[0])
		if err != nil {
			return nil, err
		}
		s.r.SetBackground(c)
		return nil, nil
	}))

	add(userFunc("texture_size", 1, func(args []tengo.Object) (tengo.Object, error) {
		tex, err := s.textureIndex(args[0])
		if err != nil {
			return nil, err
		}
		size := s.cat.TextureSize(tex)
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Int{Value: int64(size.X)},
			&tengo.Int{Value: int64(size.Y)},
		}}, nil
	}))

	add(userFunc("log", 0, func(args []tengo.Object) (tengo.Object, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = objectAsString(a)
		}
		render.Logger().Info(strings.Join(parts, " "), "scene", s.name)
		return nil, nil
	}))

	return &tengo.ImmutableMap{Value: values}
}

func pointArgs(args []tengo.Object) (render.Vec2, error) {
	x, err := argFloat("x", args, 0)
	if err != nil {
		return render.Vec2{}, err
	}
	y, err := argFloat("y", args, 1)
	if err != nil {
		return render.Vec2{}, err
	}
	return render.Vec2{X: x, Y: y}, nil
}

// spriteWrite builds write data from a script map. Missing fields keep the
// defaults: the whole texture, centred, unrotated, unit scale, opaque.
func (s *Scene) spriteWrite(sp sprite, obj tengo.Object) (render.SpriteWrite, error) {
	fields, ok := objectFields(obj)
	if !ok {
		return render.SpriteWrite{}, tengo.ErrInvalidArgumentType{Name: "sprite", Expected: "map", Found: obj.TypeName()}
	}

	size := s.cat.TextureSize(sp.tex)
	w := render.NewSpriteWrite(render.Vec2{}, render.Rect{Width: size.X, Height: size.Y})

	for name, v := range fields {
		bad := func(expected string) error {
			return tengo.ErrInvalidArgumentType{Name: name, Expected: expected, Found: v.TypeName()}
		}
		switch name {
		case "x", "y", "rot", "alpha":
			f, ok := tengo.ToFloat64(v)
			if !ok {
				return w, bad("float")
			}
			switch name {
			case "x":
				w.Pos.X = float32(f)
			case "y":
				w.Pos.Y = float32(f)
			case "rot":
				w.Rotation = float32(f)
			case "alpha":
				w.Alpha = float32(f)
			}
		case "src":
			r, ok := floatsOf(v, 4)
			if !ok {
				return w, bad("[x, y, w, h]")
			}
			w.Src = render.Rect{X: int(r[0]), Y: int(r[1]), Width: int(r[2]), Height: int(r[3])}
		case "origin":
			o, ok := floatsOf(v, 2)
			if !ok {
				return w, bad("[x, y]")
			}
			w.Origin = render.Vec2{X: o[0], Y: o[1]}
		case "scale":
			sc, ok := floatsOf(v, 2)
			if !ok {
				return w, bad("float or [x, y]")
			}
			w.Scale = render.Vec2{X: sc[0], Y: sc[1]}
		default:
			return w, fmt.Errorf("scene: unknown sprite field %q", name)
		}
	}
	return w, nil
}
