package meadow

import (
	"fmt"

	"github.com/gekko3d/meadow/field"
	"github.com/gekko3d/meadow/weather"
)

// Field is the immutable grass field: per-instance attributes plus the blade
// and ground meshes they are drawn with.
type Field struct {
	Attributes  *field.InstanceAttributeSet
	Blade       field.Mesh
	Ground      field.Mesh
	GroundColor weather.Color
	BladeHeight float32
}

// FieldModule generates the field once at install time. Rebuilding after a
// configuration change means building a new App.
type FieldModule struct {
	Grass   GrassConfig
	Ground  field.HeightFunc
	Options []field.Option
}

func (mod FieldModule) Install(app *App, cmd *Commands) {
	f, err := BuildField(mod.Grass, mod.Ground, mod.Options...)
	if err != nil {
		cmd.Logger().Errorf("Field generation failed: %v", err)
		panic(err)
	}
	cmd.Logger().Infof("Generated grass field: %d instances over %.1fx%.1f", f.Attributes.Count(), mod.Grass.Field.Width, mod.Grass.Field.Width)
	cmd.AddResources(f)
}

// BuildField runs the generator and both mesh builders.
func BuildField(cfg GrassConfig, ground field.HeightFunc, opts ...field.Option) (*Field, error) {
	if ground == nil {
		ground = field.Flat
	}
	attrs, err := field.Generate(cfg.Field.Instances, cfg.Field.Width, append([]field.Option{field.WithGround(ground)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("generate grass attributes: %w", err)
	}
	blade, err := field.BladeMesh(cfg.Blade.Width, cfg.Blade.Height, cfg.Blade.Joints)
	if err != nil {
		return nil, fmt.Errorf("build blade mesh: %w", err)
	}
	groundMesh, err := field.GroundMesh(cfg.Ground.Width, cfg.Ground.Segments, ground)
	if err != nil {
		return nil, fmt.Errorf("build ground mesh: %w", err)
	}
	return &Field{
		Attributes:  attrs,
		Blade:       blade,
		Ground:      groundMesh,
		GroundColor: cfg.Ground.Color,
		BladeHeight: cfg.Blade.Height,
	}, nil
}
