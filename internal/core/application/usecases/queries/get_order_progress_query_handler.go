package queries

import (
	"context"
	"log/slog"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/services"
)

// GetOrderProgressQueryHandler answers GetOrderProgressQuery.
type GetOrderProgressQueryHandler struct {
	reader  OrderReader
	buckets services.BucketQueries
	logger  *slog.Logger
}

func NewGetOrderProgressQueryHandler(
	reader OrderReader,
	stages *catalog.Catalog,
	logger *slog.Logger,
) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{
		reader:  reader,
		buckets: services.NewBucketQueries(stages),
		logger:  logger.With("component", "GetOrderProgressQueryHandler"),
	}
}

// Handle fails with errs.ErrObjectNotFound for an unknown id and with
// catalog.ErrUnknownMaterialType when the order's material has no path.
func (h GetOrderProgressQueryHandler) Handle(
	ctx context.Context,
	query GetOrderProgressQuery,
) (GetOrderProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	pct, res, err := h.buckets.ProgressPercent(o)
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	response := GetOrderProgressQueryResponse{
		ID:              o.ID(),
		MaterialType:    o.MaterialName(),
		CurrentStatus:   o.CurrentStatus(),
		ResolvedStage:   res.Stage,
		StageIndex:      res.Index,
		StageCount:      res.Total,
		ProgressPercent: pct,
		IsDelivered:     o.IsDelivered(),
		History:         make([]HistoryItemResponse, 0, len(o.History())),
	}
	for _, e := range o.History() {
		response.History = append(response.History, HistoryItemResponse{
			Stage:       e.Stage(),
			CompletedAt: e.CompletedAt(),
			Notes:       e.Notes(),
		})
	}

	if res.Warning != nil {
		h.logger.WarnContext(ctx, "progress computed from unresolved status",
			"order_id", o.ID().String(),
			"material_type", o.MaterialName(),
			"raw_status", o.CurrentStatus(),
		)
		response.Warning = res.Warning.Error()
	}

	return response, nil
}
