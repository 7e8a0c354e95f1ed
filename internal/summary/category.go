package summary

import (
	"encoding/json"
	"fmt"
)

// Category is one of the three tracked consumption types.
type Category int

const (
	// CategoryUnknown marks a record whose category is missing or unsupported.
	CategoryUnknown Category = iota
	// CategoryElectricity covers household electricity consumption.
	CategoryElectricity
	// CategoryHeating covers heating fuel consumption.
	CategoryHeating
	// CategoryTransportation covers travel.
	CategoryTransportation
)

// Categories lists the known categories in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Categories = []Category{CategoryElectricity, CategoryHeating, CategoryTransportation}

// ParseCategory maps the wire name to a Category.
func ParseCategory(s string) Category {
	switch s {
	case "electricity":
		return CategoryElectricity
	case "heating":
		return CategoryHeating
	case "transportation":
		return CategoryTransportation
	default:
		return CategoryUnknown
	}
}

// String returns the wire name.
func (c Category) String() string {
	switch c {
	case CategoryElectricity:
		return "electricity"
	case CategoryHeating:
		return "heating"
	case CategoryTransportation:
		return "transportation"
	case CategoryUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Known reports whether c is one of the tracked categories.
func (c Category) Known() bool {
	return c == CategoryElectricity || c == CategoryHeating || c == CategoryTransportation
}

// MarshalJSON encodes the category by name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a category name. Unsupported names decode to
// CategoryUnknown rather than failing.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding category: %w", err)
	}
	*c = ParseCategory(s)
	return nil
}
