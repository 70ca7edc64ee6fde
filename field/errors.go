package field

import "fmt"

// InvalidConfigurationError is returned for geometry extents that cannot
// produce a field: zero or negative counts and widths, or meshes too large for
// 16-bit indices.
type InvalidConfigurationError struct {
	Field string
	Value any
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid field configuration: %s out of range, got %v", e.Field, e.Value)
}
