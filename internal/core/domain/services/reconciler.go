package services

import (
	"errors"
	"fmt"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/order"
)

// ErrUnresolvedLegacyStatus is attached as a warning when a status could not be
// matched and the order was treated as freshly started. It never aborts an operation.
var ErrUnresolvedLegacyStatus = errors.New("unresolved legacy status")

// legacyCheckingStage is the single checking label used before checking was
// split into an initial and a final stage.
const legacyCheckingStage = "Checking"

// getLegacyStageNames maps obsolete stage labels onto current ones.
// A mapping only applies when the target exists in the order's path.
func getLegacyStageNames() map[string]string {
	return map[string]string{
		"Received":           "Initial Checking",
		"Order Received":     "Initial Checking",
		"Pending":            "Initial Checking",
		"Cut":                "Cutting",
		"Stitched":           "Stitching",
		"Hemmed":             "Hemming",
		"Falls":              "Falls Stitching",
		"Embroidery":         "Embroidery Work",
		"In Progress":        "Work In Progress",
		"Altering":           "Alteration Work",
		"Ready":              "Final Checking",
		"Ready for Delivery": "Final Checking",
		"Delivered":          "Delivery",
	}
}

// ResolutionMethod tells how a raw status was mapped to an index.
type ResolutionMethod int

const (
	ResolvedDirect ResolutionMethod = iota + 1
	ResolvedByRename
	ResolvedByHistory
	ResolvedByFallback
)

func (m ResolutionMethod) String() string {
	switch m {
	case ResolvedDirect:
		return "direct"
	case ResolvedByRename:
		return "rename"
	case ResolvedByHistory:
		return "history"
	case ResolvedByFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// StageResolution is the derived position of an order in its path.
type StageResolution struct {
	Index  int
	Stage  string
	Total  int
	Method ResolutionMethod
	// Warning wraps ErrUnresolvedLegacyStatus for fallback resolutions, nil otherwise.
	Warning error
}

// IsTerminal reports whether the resolved stage is Delivery.
func (r StageResolution) IsTerminal() bool {
	return r.Index == r.Total-1
}

// NeedsMigration reports whether the stored status differs from the canonical
// name and can be rewritten safely.
func (r StageResolution) NeedsMigration() bool {
	return r.Method == ResolvedByRename || r.Method == ResolvedByHistory
}

// StatusReconciler maps raw status strings onto the current catalog.
type StatusReconciler struct {
	catalog *catalog.Catalog
}

func NewStatusReconciler(c *catalog.Catalog) StatusReconciler {
	return StatusReconciler{catalog: c}
}

// Resolve finds the index of o's current status. Order of attempts:
//  1. exact match in the material path
//  2. legacy rename table
//  3. the ambiguous "Checking" label, decided by whether any production
//     stage appears in the history
//  4. index 0 with an ErrUnresolvedLegacyStatus warning
//
// The only error is catalog.ErrUnknownMaterialType.
func (r StatusReconciler) Resolve(o *order.Order) (StageResolution, error) {
	m := o.MaterialType()
	if m == catalog.UnknownMaterial {
		return StageResolution{}, fmt.Errorf("%w: %q", catalog.ErrUnknownMaterialType, o.MaterialName())
	}
	total, err := r.catalog.Len(m)
	if err != nil {
		return StageResolution{}, err
	}

	raw := o.CurrentStatus()
	if i, ok, _ := r.catalog.IndexOf(m, raw); ok {
		return r.resolution(m, i, total, ResolvedDirect, nil)
	}

	if i, ok := r.renamedIndex(m, raw); ok {
		return r.resolution(m, i, total, ResolvedByRename, nil)
	}

	if raw == legacyCheckingStage {
		i, idxErr := r.checkingIndex(m, o.History())
		if idxErr != nil {
			return StageResolution{}, idxErr
		}
		return r.resolution(m, i, total, ResolvedByHistory, nil)
	}

	warning := fmt.Errorf("%w: %q for %s order %s", ErrUnresolvedLegacyStatus, raw, m, o.ID())
	return r.resolution(m, 0, total, ResolvedByFallback, warning)
}

func (r StatusReconciler) resolution(
	m catalog.MaterialType,
	i, total int,
	method ResolutionMethod,
	warning error,
) (StageResolution, error) {
	stage, err := r.catalog.StageAt(m, i)
	if err != nil {
		return StageResolution{}, err
	}
	return StageResolution{Index: i, Stage: stage, Total: total, Method: method, Warning: warning}, nil
}

func (r StatusReconciler) renamedIndex(m catalog.MaterialType, raw string) (int, bool) {
	current, ok := getLegacyStageNames()[raw]
	if !ok {
		return 0, false
	}
	i, ok, _ := r.catalog.IndexOf(m, current)
	return i, ok
}

// checkingIndex decides between the initial and the final check. Any
// production stage in the history, under its current or legacy name, means
// the garment already went through production.
func (r StatusReconciler) checkingIndex(m catalog.MaterialType, history []order.HistoryEntry) (int, error) {
	for _, entry := range history {
		stage := entry.Stage()
		if current, ok := getLegacyStageNames()[stage]; ok {
			stage = current
		}
		if r.catalog.IsProductionStage(m, stage) {
			return r.catalog.FinalCheckIndex(m)
		}
	}
	return r.catalog.InitialCheckIndex(m)
}
