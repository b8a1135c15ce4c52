package catalog

import (
	"fmt"
	"strings"

	"tailorshop/internal/pkg/errs"
)

// ErrUnknownMaterialType is returned for material types outside the closed set,
// or known types the active catalog has no path for.
var ErrUnknownMaterialType = fmt.Errorf("unknown material type: %w", errs.ErrValueIsInvalid)

// MaterialType is the category of garment or work item. Adding a category means
// adding a constant here and an entry in getMaterialTypeStrings; the catalog,
// the reconciler and the adapters all key off this type.
type MaterialType int

const (
	// UnknownMaterial is the zero value and never valid.
	UnknownMaterial MaterialType = iota
	Blouse
	Chudi
	Saree
	Works
	Others
	// Alteration covers repair jobs on garments the shop did not make.
	Alteration
)

func getMaterialTypeStrings() map[MaterialType]string {
	//nolint:exhaustive // UnknownMaterial has no wire name
	return map[MaterialType]string{
		Blouse:     "blouse",
		Chudi:      "chudi",
		Saree:      "saree",
		Works:      "works",
		Others:     "others",
		Alteration: "alteration",
	}
}

// AllMaterialTypes lists the valid material types in declaration order.
func AllMaterialTypes() []MaterialType {
	return []MaterialType{Blouse, Chudi, Saree, Works, Others, Alteration}
}

// ParseMaterialType accepts the wire name case-insensitively.
func ParseMaterialType(raw string) (MaterialType, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for m, name := range getMaterialTypeStrings() {
		if name == needle {
			return m, nil
		}
	}
	return UnknownMaterial, fmt.Errorf("%w: %q", ErrUnknownMaterialType, raw)
}

func (m MaterialType) String() string {
	if s, ok := getMaterialTypeStrings()[m]; ok {
		return s
	}
	return "unknown"
}

// Validate reports whether m belongs to the closed set.
func (m MaterialType) Validate() error {
	if _, ok := getMaterialTypeStrings()[m]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownMaterialType, int(m))
	}
	return nil
}
