package scene

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Material property keys understood by Material.Set and Material.Get.
const (
	MaterialName            = "name"
	MaterialColor           = "color"
	MaterialOpacity         = "opacity"
	MaterialTransparent     = "transparent"
	MaterialWireframe       = "wireframe"
	MaterialVisible         = "visible"
	MaterialBackfaceCulling = "backfaceCulling"
	MaterialEnableLighting  = "enableLighting"
)

// Material describes the surface appearance of a Node. Materials may be shared between Nodes; a cloned Node keeps
// referencing the Materials of the original.
type Material struct {
	Name            string // Name is the name of the Material.
	Color           Color  // The overall color of the Material.
	Opacity         float32
	Transparent     bool // If a material is transparent, it's rendered in a separate, back-to-front sorted pass.
	Wireframe       bool
	Visible         bool
	BackfaceCulling bool // If backface culling is enabled (which it is by default), faces turned away from the camera aren't rendered.
	EnableLighting  bool
	Properties      *Properties // Properties allows you to specify auxiliary data on the Material, loaded from glTF extras.
}

// NewMaterial creates a new Material with the name given.
func NewMaterial(name string) *Material {
	return &Material{
		Name:            name,
		Color:           NewColor(1, 1, 1, 1),
		Opacity:         1,
		Visible:         true,
		BackfaceCulling: true,
		EnableLighting:  true,
		Properties:      NewProperties(),
	}
}

// Clone creates a clone of the specified Material.
func (material *Material) Clone() *Material {
	newMat := *material
	newMat.Properties = material.Properties.Clone()
	return &newMat
}

// MaterialKeys returns the sorted list of property keys a Material understands.
func MaterialKeys() []string {
	keys := make([]string, 0, len(materialSetters))
	for k := range materialSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has returns true if key is a Material property key.
func (material *Material) Has(key string) bool {
	_, ok := materialSetters[key]
	return ok
}

// Set sets the Material property named by key to value. Colors may be given as a Color, a CSS color name or
// hex string, or a 24-bit integer. Set returns an error of type ErrTypeUnknownMaterialProperty if the key isn't
// a Material property, and ErrTypeInvalidMaterialValue if the value can't be converted.
func (material *Material) Set(key string, value any) error {
	setter, ok := materialSetters[key]
	if !ok {
		return errors.Newf("unknown material property %q", key).
			WithType(ErrTypeUnknownMaterialProperty).
			WithTag("property", key)
	}

	if err := setter(material, value); err != nil {
		return errors.Newf("invalid value for material property %q", key).
			WithType(ErrTypeInvalidMaterialValue).
			WithTag("property", key).
			WithTag("value", value).
			Wrap(err)
	}
	return nil
}

// Get returns the value of the Material property named by key, and whether the key is a Material property.
func (material *Material) Get(key string) (any, bool) {
	switch key {
	case MaterialName:
		return material.Name, true
	case MaterialColor:
		return material.Color, true
	case MaterialOpacity:
		return material.Opacity, true
	case MaterialTransparent:
		return material.Transparent, true
	case MaterialWireframe:
		return material.Wireframe, true
	case MaterialVisible:
		return material.Visible, true
	case MaterialBackfaceCulling:
		return material.BackfaceCulling, true
	case MaterialEnableLighting:
		return material.EnableLighting, true
	}
	return nil, false
}

var materialSetters = map[string]func(*Material, any) error{
	MaterialName: func(m *Material, v any) error {
		s, ok := v.(string)
		if !ok {
			return errors.Newf("%T is not a string", v)
		}
		m.Name = s
		return nil
	},
	MaterialColor: func(m *Material, v any) error {
		c, err := toColor(v)
		if err != nil {
			return err
		}
		m.Color = c
		return nil
	},
	MaterialOpacity: func(m *Material, v any) error {
		f, err := toFloat(v)
		if err != nil {
			return err
		}
		m.Opacity = float32(f)
		return nil
	},
	MaterialTransparent:     boolSetter(func(m *Material, b bool) { m.Transparent = b }),
	MaterialWireframe:       boolSetter(func(m *Material, b bool) { m.Wireframe = b }),
	MaterialVisible:         boolSetter(func(m *Material, b bool) { m.Visible = b }),
	MaterialBackfaceCulling: boolSetter(func(m *Material, b bool) { m.BackfaceCulling = b }),
	MaterialEnableLighting:  boolSetter(func(m *Material, b bool) { m.EnableLighting = b }),
}

func boolSetter(set func(*Material, bool)) func(*Material, any) error {
	return func(m *Material, v any) error {
		b, ok := v.(bool)
		if !ok {
			return errors.Newf("%T is not a bool", v)
		}
		set(m, b)
		return nil
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	}
	return 0, errors.Newf("%T is not a number", v)
}

func toColor(v any) (Color, error) {
	switch c := v.(type) {
	case Color:
		return c, nil
	case *Color:
		return *c, nil
	case string:
		return ParseColor(c)
	case uint32:
		return NewColorFromHex(c), nil
	case int:
		return NewColorFromHex(uint32(c)), nil
	case float64:
		// JSON numbers decode as float64.
		return NewColorFromHex(uint32(c)), nil
	}
	return Color{}, errors.Newf("%T is not a color", v)
}
