package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tailorshop/internal/core/application/usecases/commands"
	"tailorshop/internal/core/application/usecases/queries"
	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/services"
	"tailorshop/internal/core/ports"
	"tailorshop/internal/generated/servers"
	"tailorshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler
	runLegacyMigrationHandler commands.RunLegacyMigrationCommandHandler

	// Query handlers
	getDeliveredOrdersHandler        queries.GetDeliveredOrdersQueryHandler
	getReadyForDeliveryOrdersHandler queries.GetReadyForDeliveryOrdersQueryHandler
	getOrderProgressHandler          queries.GetOrderProgressQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler,
	runLegacyMigrationHandler commands.RunLegacyMigrationCommandHandler,
	getDeliveredOrdersHandler queries.GetDeliveredOrdersQueryHandler,
	getReadyForDeliveryOrdersHandler queries.GetReadyForDeliveryOrdersQueryHandler,
	getOrderProgressHandler queries.GetOrderProgressQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:               createOrderHandler,
		advanceOrderStatusHandler:        advanceOrderStatusHandler,
		runLegacyMigrationHandler:        runLegacyMigrationHandler,
		getDeliveredOrdersHandler:        getDeliveredOrdersHandler,
		getReadyForDeliveryOrdersHandler: getReadyForDeliveryOrdersHandler,
		getOrderProgressHandler:          getOrderProgressHandler,
		logger:                           logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, string(body.MaterialType))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.errorResponse(ctx, handleErr, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{Id: orderID.Bytes()})
}

// AdvanceOrderStatus handles POST /api/v1/orders/{orderId}/advance - moves an
// order to its next stage, or to an explicit later one.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.AdvanceOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	id, err := kernel.UUIDFromString(orderID.String())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(id, deref(body.Target), deref(body.Notes))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid advance request: " + err.Error(),
		})
	}

	result, err := s.advanceOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to advance order")
	}

	return ctx.JSON(http.StatusOK, servers.AdvanceResult{
		OrderId:       result.OrderID.Bytes(),
		PreviousStage: result.PreviousStage,
		CurrentStage:  result.CurrentStage,
		IsFinalStage:  result.IsFinalStage,
		IsDelivered:   result.IsDelivered,
	})
}

// GetDeliveredOrders handles GET /api/v1/orders/delivered.
func (s *Server) GetDeliveredOrders(ctx echo.Context) error {
	orders, err := s.getDeliveredOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetDeliveredOrdersQuery())
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve delivered orders")
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(orders))
}

// GetReadyForDeliveryOrders handles GET /api/v1/orders/ready-for-delivery.
func (s *Server) GetReadyForDeliveryOrders(ctx echo.Context) error {
	result, err := s.getReadyForDeliveryOrdersHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetReadyForDeliveryOrdersQuery(),
	)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve orders ready for delivery")
	}

	response := servers.ReadyForDelivery{
		Orders:  toOrderSummaries(result.Orders),
		Flagged: make([]servers.FlaggedOrder, len(result.Flagged)),
	}
	for i, f := range result.Flagged {
		response.Flagged[i] = servers.FlaggedOrder{
			Id:            f.ID.Bytes(),
			MaterialType:  f.MaterialType,
			CurrentStatus: f.CurrentStatus,
			IsDelivered:   f.IsDelivered,
			Reason:        f.Reason,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderProgress handles GET /api/v1/orders/{orderId}/progress.
func (s *Server) GetOrderProgress(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromString(orderID.String())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderProgressQuery(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	progress, err := s.getOrderProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve order progress")
	}

	response := servers.OrderProgress{
		Id:              progress.ID.Bytes(),
		MaterialType:    progress.MaterialType,
		CurrentStatus:   progress.CurrentStatus,
		ResolvedStage:   progress.ResolvedStage,
		StageIndex:      progress.StageIndex,
		StageCount:      progress.StageCount,
		ProgressPercent: progress.ProgressPercent,
		IsDelivered:     progress.IsDelivered,
		History:         make([]servers.HistoryItem, len(progress.History)),
	}
	for i, h := range progress.History {
		response.History[i] = servers.HistoryItem{
			Stage:       h.Stage,
			CompletedAt: h.CompletedAt,
			Notes:       h.Notes,
		}
	}
	if progress.Warning != "" {
		response.Warning = &progress.Warning
	}

	return ctx.JSON(http.StatusOK, response)
}

// RunLegacyMigration handles POST /api/v1/migrations/legacy-status. Per-order
// failures are part of a 200 report; only a failed scan is an error response.
func (s *Server) RunLegacyMigration(ctx echo.Context) error {
	var body servers.RunLegacyMigrationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	workers := commands.DefaultMigrationWorkers
	if body.Workers != nil {
		workers = *body.Workers
	}

	cmd, err := commands.NewRunLegacyMigrationCommand(workers)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid migration request: " + err.Error(),
		})
	}

	report, err := s.runLegacyMigrationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && report.Failed == 0 {
		return s.errorResponse(ctx, err, "Failed to run legacy migration")
	}

	return ctx.JSON(http.StatusOK, servers.MigrationReport{
		Scanned:    report.Scanned,
		Migrated:   report.Migrated,
		Unresolved: report.Unresolved,
		Failed:     report.Failed,
		Failures:   failureMessages(err),
	})
}

// errorResponse maps an application error onto a status code. Anything not
// recognized is logged and reported as 500 with the generic message.
func (s *Server) errorResponse(ctx echo.Context, err error, message string) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message, "error", err)
		return ctx.JSON(status, servers.Error{Code: int32(status), Message: message})
	}
	return ctx.JSON(status, servers.Error{Code: int32(status), Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyAtFinalStage),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, ports.ErrLockNotAcquired):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func toOrderSummaries(orders []queries.OrderSummaryResponse) []servers.OrderSummary {
	response := make([]servers.OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = servers.OrderSummary{
			Id:            o.ID.Bytes(),
			MaterialType:  o.MaterialType,
			CurrentStatus: o.CurrentStatus,
			IsDelivered:   o.IsDelivered,
		}
	}
	return response
}

func failureMessages(err error) []string {
	out := make([]string, 0)
	if err == nil {
		return out
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return append(out, err.Error())
	}
	for _, e := range joined.Unwrap() {
		out = append(out, e.Error())
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
