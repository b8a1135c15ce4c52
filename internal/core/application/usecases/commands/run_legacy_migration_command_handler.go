package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/model/order"
	"tailorshop/internal/core/domain/services"
	"tailorshop/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// LegacyMigrationReport counts what one migration run did.
type LegacyMigrationReport struct {
	Scanned    int
	Migrated   int
	Unresolved int
	Failed     int
}

// RunLegacyMigrationCommandHandler rewrites resolvable legacy statuses in place.
//
// Only statuses resolved through the rename table or the "Checking" rule are
// rewritten, together with orders whose delivered flag disagrees with their
// resolved stage. Unresolved ones are logged and left as they are. History is
// never touched, so a second run finds nothing to migrate.
type RunLegacyMigrationCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	reconciler services.StatusReconciler
	logger     *slog.Logger
}

func NewRunLegacyMigrationCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	stages *catalog.Catalog,
	logger *slog.Logger,
) RunLegacyMigrationCommandHandler {
	return RunLegacyMigrationCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		reconciler: services.NewStatusReconciler(stages),
		logger:     logger.With("component", "RunLegacyMigrationCommandHandler"),
	}
}

// Handle scans every order and migrates candidates in parallel. A failure on
// one order does not stop the others; all failures are joined into the
// returned error next to a complete report.
func (h *RunLegacyMigrationCommandHandler) Handle(
	ctx context.Context,
	cmd RunLegacyMigrationCommand,
) (LegacyMigrationReport, error) {
	if err := cmd.Validate(); err != nil {
		return LegacyMigrationReport{}, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().GetAll(ctx)
	if err != nil {
		return LegacyMigrationReport{}, err
	}

	report := LegacyMigrationReport{Scanned: len(orders)}
	candidates := make([]kernel.UUID, 0)
	for _, o := range orders {
		res, resolveErr := h.reconciler.Resolve(o)
		if resolveErr != nil {
			h.logger.WarnContext(ctx, "skipping order with unknown material type",
				"order_id", o.ID().String(),
				"error", resolveErr,
			)
			report.Unresolved++
			continue
		}

		switch {
		case res.Warning != nil:
			h.logger.WarnContext(ctx, "legacy status left unresolved",
				"order_id", o.ID().String(),
				"material_type", o.MaterialName(),
				"raw_status", o.CurrentStatus(),
			)
			report.Unresolved++
		case needsRewrite(o, res):
			candidates = append(candidates, o.ID())
		}
	}

	var (
		mu       sync.Mutex
		failures []error
	)

	g := new(errgroup.Group)
	g.SetLimit(cmd.Workers())
	for _, id := range candidates {
		g.Go(func() error {
			migrated, migrateErr := h.migrate(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case migrateErr != nil:
				report.Failed++
				failures = append(failures, fmt.Errorf("order %s: %w", id, migrateErr))
			case migrated:
				report.Migrated++
			}
			return nil
		})
	}
	_ = g.Wait()

	h.logger.InfoContext(ctx, "legacy migration finished",
		"scanned", report.Scanned,
		"migrated", report.Migrated,
		"unresolved", report.Unresolved,
		"failed", report.Failed,
	)

	return report, errors.Join(failures...)
}

// migrate re-reads the order under its lock, so a status advanced since the
// scan is not overwritten.
func (h *RunLegacyMigrationCommandHandler) migrate(ctx context.Context, id kernel.UUID) (bool, error) {
	unlock, err := h.locker.Lock(ctx, id)
	if err != nil {
		return false, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return false, err
	}

	res, err := h.reconciler.Resolve(o)
	if err != nil {
		return false, err
	}
	if !needsRewrite(o, res) {
		return false, nil
	}

	if err = o.Rename(res.Stage, res.IsTerminal()); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// needsRewrite reports whether o's stored status or delivered flag differs from
// what res derives. Fallback resolutions are never rewritten.
func needsRewrite(o *order.Order, res services.StageResolution) bool {
	if res.Warning != nil {
		return false
	}
	return res.NeedsMigration() || res.IsTerminal() != o.IsDelivered()
}
