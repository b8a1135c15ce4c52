package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"tailorshop/internal/pkg/errs"
)

// TerminalStage ends every material path. Reaching it means the order is delivered.
const TerminalStage = "Delivery"

var (
	ErrCatalogIsEmpty    = errs.NewValueIsRequiredError("catalog must define at least one material path")
	ErrPathIsEmpty       = errors.New("stage path is empty")
	ErrPathNotTerminated = fmt.Errorf("stage path must end in %q", TerminalStage)
	ErrDuplicateStage    = errors.New("stage name repeats within a path")
	ErrBlankStage        = errors.New("stage name is blank")
	ErrUnknownProduction = errors.New("production stage is not an interior stage of the path")
)

// PathDefinition is the raw configuration of one material path.
// Production may be left empty; it then defaults to every stage strictly
// between the first stage and the final check (the stage before Delivery).
type PathDefinition struct {
	Stages     []string
	Production []string
}

type path struct {
	stages     []string
	index      map[string]int
	production map[string]struct{}
}

// Catalog maps each material type to its ordered stage path. It is immutable
// after New returns and safe for concurrent use.
type Catalog struct {
	paths map[MaterialType]path
}

// New validates definitions and builds a Catalog.
// All violations are reported together.
func New(definitions map[MaterialType]PathDefinition) (*Catalog, error) {
	if len(definitions) == 0 {
		return nil, ErrCatalogIsEmpty
	}

	c := &Catalog{paths: make(map[MaterialType]path, len(definitions))}
	var problems []error
	for m, def := range definitions {
		if err := m.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		p, err := buildPath(def)
		if err != nil {
			problems = append(problems, fmt.Errorf("%w: %s path: %w", errs.ErrValueIsInvalid, m, err))
			continue
		}
		c.paths[m] = p
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is New for definitions known to be valid at compile time.
func MustNew(definitions map[MaterialType]PathDefinition) *Catalog {
	c, err := New(definitions)
	if err != nil {
		panic(err)
	}
	return c
}

func buildPath(def PathDefinition) (path, error) {
	if len(def.Stages) == 0 {
		return path{}, ErrPathIsEmpty
	}

	p := path{
		stages:     make([]string, len(def.Stages)),
		index:      make(map[string]int, len(def.Stages)),
		production: make(map[string]struct{}),
	}
	for i, raw := range def.Stages {
		stage := strings.TrimSpace(raw)
		if stage == "" {
			return path{}, fmt.Errorf("%w at position %d", ErrBlankStage, i)
		}
		if _, dup := p.index[stage]; dup {
			return path{}, fmt.Errorf("%w: %q", ErrDuplicateStage, stage)
		}
		p.stages[i] = stage
		p.index[stage] = i
	}

	last := len(p.stages) - 1
	if p.stages[last] != TerminalStage {
		return path{}, fmt.Errorf("%w, got %q", ErrPathNotTerminated, p.stages[last])
	}

	if len(def.Production) == 0 {
		for i := 1; i < last-1; i++ {
			p.production[p.stages[i]] = struct{}{}
		}
		return p, nil
	}

	for _, raw := range def.Production {
		stage := strings.TrimSpace(raw)
		i, ok := p.index[stage]
		if !ok || i == last {
			return path{}, fmt.Errorf("%w: %q", ErrUnknownProduction, stage)
		}
		p.production[stage] = struct{}{}
	}
	return p, nil
}

func (c *Catalog) path(m MaterialType) (path, error) {
	p, ok := c.paths[m]
	if !ok {
		return path{}, fmt.Errorf("%w: %s", ErrUnknownMaterialType, m)
	}
	return p, nil
}

// StagesFor returns a copy of the ordered stage names for m.
func (c *Catalog) StagesFor(m MaterialType) ([]string, error) {
	p, err := c.path(m)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.stages), nil
}

// Len is the number of stages in m's path.
func (c *Catalog) Len(m MaterialType) (int, error) {
	p, err := c.path(m)
	if err != nil {
		return 0, err
	}
	return len(p.stages), nil
}

// IndexOf looks stage up in m's path. The boolean is false when the name is not
// part of the path; no sentinel index is ever returned.
func (c *Catalog) IndexOf(m MaterialType, stage string) (int, bool, error) {
	p, err := c.path(m)
	if err != nil {
		return 0, false, err
	}
	i, ok := p.index[stage]
	return i, ok, nil
}

// StageAt returns the stage name at index i of m's path.
func (c *Catalog) StageAt(m MaterialType, i int) (string, error) {
	p, err := c.path(m)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(p.stages) {
		return "", errs.NewValueIsOutOfRangeError("stage index", i, 0, len(p.stages)-1)
	}
	return p.stages[i], nil
}

// TerminalIndex is the index of Delivery in m's path.
func (c *Catalog) TerminalIndex(m MaterialType) (int, error) {
	n, err := c.Len(m)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// InitialCheckIndex is where a freshly received order starts.
func (c *Catalog) InitialCheckIndex(m MaterialType) (int, error) {
	if _, err := c.path(m); err != nil {
		return 0, err
	}
	return 0, nil
}

// FinalCheckIndex is the stage right before Delivery: the order is finished
// and waiting for the customer.
func (c *Catalog) FinalCheckIndex(m MaterialType) (int, error) {
	n, err := c.Len(m)
	if err != nil {
		return 0, err
	}
	return max(n-2, 0), nil
}

// IsProductionStage reports whether stage is one of m's production stages
// (cutting, stitching and the like).
func (c *Catalog) IsProductionStage(m MaterialType, stage string) bool {
	p, err := c.path(m)
	if err != nil {
		return false
	}
	_, ok := p.production[stage]
	return ok
}

// MaterialTypes lists the material types this catalog has paths for.
func (c *Catalog) MaterialTypes() []MaterialType {
	out := make([]MaterialType, 0, len(c.paths))
	for _, m := range AllMaterialTypes() {
		if _, ok := c.paths[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Default is the shop's built-in catalog.
func Default() *Catalog {
	return MustNew(map[MaterialType]PathDefinition{
		Blouse: {
			Stages: []string{"Initial Checking", "Cutting", "Stitching", "Hemming", "Final Checking", TerminalStage},
		},
		Chudi: {
			Stages: []string{"Initial Checking", "Cutting", "Stitching", "Final Checking", TerminalStage},
		},
		Saree: {
			Stages: []string{"Initial Checking", "Falls Stitching", "Pico", "Final Checking", TerminalStage},
		},
		Works: {
			Stages: []string{"Initial Checking", "Marking", "Embroidery Work", "Final Checking", TerminalStage},
		},
		Others: {
			Stages: []string{"Initial Checking", "Work In Progress", "Final Checking", TerminalStage},
		},
		Alteration: {
			Stages: []string{"Initial Checking", "Alteration Work", "Final Checking", TerminalStage},
		},
	})
}
