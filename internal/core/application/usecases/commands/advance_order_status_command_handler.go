package commands

import (
	"context"
	"log/slog"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/services"
	"tailorshop/internal/core/ports"
)

// AdvanceOrderStatusResult summarizes a committed transition.
type AdvanceOrderStatusResult struct {
	OrderID       kernel.UUID
	PreviousStage string
	CurrentStage  string
	IsFinalStage  bool
	IsDelivered   bool
}

// AdvanceOrderStatusCommandHandler runs one transition as a locked
// read-modify-write cycle:
//
//	lock, begin, load, engine.Advance, conditional update, commit, unlock
//
// and publishes an event once the commit succeeded.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	engine     services.StatusEngine
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	engine services.StatusEngine,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		engine:     engine,
		publisher:  publisher,
		logger:     logger.With("component", "AdvanceOrderStatusCommandHandler"),
	}
}

// Handle advances the order named by cmd.
//
// services.ErrAlreadyAtFinalStage and services.ErrInvalidTransitionTarget are
// returned before anything is written. A concurrent writer that committed first
// surfaces as errs.ErrVersionIsInvalid.
func (h *AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderStatusCommand,
) (AdvanceOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	res, err := h.engine.Advance(current, services.AdvanceRequest{
		Target: cmd.Target(),
		Notes:  cmd.Notes(),
	})
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	if res.Resolution.Warning != nil {
		h.logger.WarnContext(ctx, "advancing order from unresolved status",
			"order_id", current.ID().String(),
			"material_type", current.MaterialName(),
			"raw_status", current.CurrentStatus(),
			"error", res.Resolution.Warning,
		)
	}

	if err = orderRepo.Update(ctx, res.Order); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	h.logger.InfoContext(ctx, "order advanced",
		"order_id", res.Order.ID().String(),
		"from", res.PreviousStage,
		"to", res.NextStage,
	)

	publishStageAdvanced(ctx, h.publisher, h.logger, res)

	return AdvanceOrderStatusResult{
		OrderID:       res.Order.ID(),
		PreviousStage: res.PreviousStage,
		CurrentStage:  res.NextStage,
		IsFinalStage:  res.IsFinalStage,
		IsDelivered:   res.Order.IsDelivered(),
	}, nil
}
