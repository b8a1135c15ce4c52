package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/order"
	"tailorshop/internal/pkg/errs"
)

var (
	// ErrAlreadyAtFinalStage is returned when an order at Delivery is asked to advance.
	ErrAlreadyAtFinalStage = errors.New("order is already at its final stage")

	// ErrInvalidTransitionTarget is returned for an explicit target that is not a
	// later stage of the order's own path.
	ErrInvalidTransitionTarget = fmt.Errorf("invalid transition target: %w", errs.ErrValueIsInvalid)
)

// AdvanceRequest carries the optional inputs of a transition.
// An empty Target means "the stage after the current one".
type AdvanceRequest struct {
	Target string
	Notes  string
}

// AdvanceResult is what a successful transition produced.
type AdvanceResult struct {
	// Order is a new value; the order passed to Advance is left unchanged.
	Order         *order.Order
	PreviousStage string
	NextStage     string
	IsFinalStage  bool
	// Resolution describes how the pre-transition status was resolved.
	Resolution StageResolution
}

// StatusEngine moves orders along their material path.
//
// Transitions are strictly forward: with no target the order moves one
// stage, with a target it may skip stages but never go back or stay put.
// Delivery is absorbing.
type StatusEngine struct {
	catalog    *catalog.Catalog
	reconciler StatusReconciler
	now        func() time.Time
}

// NewStatusEngine builds an engine over c. A nil clock defaults to time.Now.
func NewStatusEngine(c *catalog.Catalog, clock func() time.Time) StatusEngine {
	if clock == nil {
		clock = time.Now
	}
	return StatusEngine{
		catalog:    c,
		reconciler: NewStatusReconciler(c),
		now:        clock,
	}
}

// ResolveIndex resolves o's current stage; see StatusReconciler.Resolve.
func (e StatusEngine) ResolveIndex(o *order.Order) (StageResolution, error) {
	if err := o.Validate(); err != nil {
		return StageResolution{}, err
	}
	return e.reconciler.Resolve(o)
}

// Advance computes the next stage of o and returns an updated copy with one more
// history entry. All validation happens before the copy is touched.
//
// Example:
//
//	res, err := engine.Advance(o, services.AdvanceRequest{})
//	if errors.Is(err, services.ErrAlreadyAtFinalStage) {
//	    // nothing left to do for this order
//	}
//	if res.IsFinalStage {
//	    // notify the customer
//	}
func (e StatusEngine) Advance(o *order.Order, req AdvanceRequest) (AdvanceResult, error) {
	current, err := e.ResolveIndex(o)
	if err != nil {
		return AdvanceResult{}, err
	}

	if current.IsTerminal() {
		return AdvanceResult{}, fmt.Errorf("%w: order %s is at %q", ErrAlreadyAtFinalStage, o.ID(), current.Stage)
	}

	next, err := e.nextIndex(o.MaterialType(), current, strings.TrimSpace(req.Target))
	if err != nil {
		return AdvanceResult{}, err
	}

	stage, err := e.catalog.StageAt(o.MaterialType(), next)
	if err != nil {
		return AdvanceResult{}, err
	}

	isFinal := next == current.Total-1
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = "Moved to " + stage
	}

	updated := o.Clone()
	if err = updated.RecordStage(stage, e.now(), notes, isFinal); err != nil {
		return AdvanceResult{}, err
	}

	return AdvanceResult{
		Order:         updated,
		PreviousStage: current.Stage,
		NextStage:     stage,
		IsFinalStage:  isFinal,
		Resolution:    current,
	}, nil
}

func (e StatusEngine) nextIndex(m catalog.MaterialType, current StageResolution, target string) (int, error) {
	if target == "" {
		return current.Index + 1, nil
	}

	i, ok, err := e.catalog.IndexOf(m, target)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s stage", ErrInvalidTransitionTarget, target, m)
	}
	if i <= current.Index {
		return 0, fmt.Errorf("%w: %q does not come after %q", ErrInvalidTransitionTarget, target, current.Stage)
	}
	return i, nil
}
