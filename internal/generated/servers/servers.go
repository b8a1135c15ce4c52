// Package servers holds the HTTP contract of the service: the embedded OpenAPI
// document, the request and response types it defines, and the echo routing
// that binds path parameters before calling a ServerInterface.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var swaggerSpec []byte

// Defines values for NewOrderMaterialType.
const (
	Alteration NewOrderMaterialType = "alteration"
	Blouse     NewOrderMaterialType = "blouse"
	Chudi      NewOrderMaterialType = "chudi"
	Others     NewOrderMaterialType = "others"
	Saree      NewOrderMaterialType = "saree"
	Works      NewOrderMaterialType = "works"
)

// AdvanceRequest defines model for AdvanceRequest.
type AdvanceRequest struct {
	Notes *string `json:"notes,omitempty"`

	// Target Stage to move to; defaults to the next stage
	Target *string `json:"target,omitempty"`
}

// AdvanceResult defines model for AdvanceResult.
type AdvanceResult struct {
	CurrentStage  string             `json:"currentStage"`
	IsDelivered   bool               `json:"isDelivered"`
	IsFinalStage  bool               `json:"isFinalStage"`
	OrderId       openapi_types.UUID `json:"orderId"`
	PreviousStage string             `json:"previousStage"`
}

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	Id openapi_types.UUID `json:"id"`
}

// Error defines model for Error.
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// FlaggedOrder defines model for FlaggedOrder.
type FlaggedOrder struct {
	CurrentStatus string             `json:"currentStatus"`
	Id            openapi_types.UUID `json:"id"`
	IsDelivered   bool               `json:"isDelivered"`
	MaterialType  string             `json:"materialType"`
	Reason        string             `json:"reason"`
}

// HistoryItem defines model for HistoryItem.
type HistoryItem struct {
	CompletedAt time.Time `json:"completedAt"`
	Notes       string    `json:"notes"`
	Stage       string    `json:"stage"`
}

// MigrationReport defines model for MigrationReport.
type MigrationReport struct {
	Failed     int      `json:"failed"`
	Failures   []string `json:"failures"`
	Migrated   int      `json:"migrated"`
	Scanned    int      `json:"scanned"`
	Unresolved int      `json:"unresolved"`
}

// MigrationRequest defines model for MigrationRequest.
type MigrationRequest struct {
	Workers *int `json:"workers,omitempty"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	MaterialType NewOrderMaterialType `json:"materialType"`
}

// NewOrderMaterialType defines model for NewOrder.MaterialType.
type NewOrderMaterialType string

// OrderProgress defines model for OrderProgress.
type OrderProgress struct {
	CurrentStatus   string             `json:"currentStatus"`
	History         []HistoryItem      `json:"history"`
	Id              openapi_types.UUID `json:"id"`
	IsDelivered     bool               `json:"isDelivered"`
	MaterialType    string             `json:"materialType"`
	ProgressPercent int                `json:"progressPercent"`
	ResolvedStage   string             `json:"resolvedStage"`
	StageCount      int                `json:"stageCount"`
	StageIndex      int                `json:"stageIndex"`
	Warning         *string            `json:"warning,omitempty"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	CurrentStatus string             `json:"currentStatus"`
	Id            openapi_types.UUID `json:"id"`
	IsDelivered   bool               `json:"isDelivered"`
	MaterialType  string             `json:"materialType"`
}

// ReadyForDelivery defines model for ReadyForDelivery.
type ReadyForDelivery struct {
	Flagged []FlaggedOrder `json:"flagged"`
	Orders  []OrderSummary `json:"orders"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// AdvanceOrderStatusJSONRequestBody defines body for AdvanceOrderStatus for application/json ContentType.
type AdvanceOrderStatusJSONRequestBody = AdvanceRequest

// RunLegacyMigrationJSONRequestBody defines body for RunLegacyMigration for application/json ContentType.
type RunLegacyMigrationJSONRequestBody = MigrationRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Rewrite resolvable legacy statuses to their current names
	// (POST /api/v1/migrations/legacy-status)
	RunLegacyMigration(ctx echo.Context) error
	// Register a new order at the first stage of its path
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// List delivered orders
	// (GET /api/v1/orders/delivered)
	GetDeliveredOrders(ctx echo.Context) error
	// List orders waiting one stage before delivery
	// (GET /api/v1/orders/ready-for-delivery)
	GetReadyForDeliveryOrders(ctx echo.Context) error
	// Move an order forward along its path
	// (POST /api/v1/orders/{orderId}/advance)
	AdvanceOrderStatus(ctx echo.Context, orderId OrderId) error
	// Show an order's resolved stage, completion and history
	// (GET /api/v1/orders/{orderId}/progress)
	GetOrderProgress(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// RunLegacyMigration converts echo context to params.
func (w *ServerInterfaceWrapper) RunLegacyMigration(ctx echo.Context) error {
	return w.Handler.RunLegacyMigration(ctx)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetDeliveredOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetDeliveredOrders(ctx echo.Context) error {
	return w.Handler.GetDeliveredOrders(ctx)
}

// GetReadyForDeliveryOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetReadyForDeliveryOrders(ctx echo.Context) error {
	return w.Handler.GetReadyForDeliveryOrders(ctx)
}

// AdvanceOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) AdvanceOrderStatus(ctx echo.Context) error {
	var orderId OrderId

	err := runtime.BindStyledParameterWithLocation("simple", false, "orderId", runtime.ParamLocationPath, ctx.Param("orderId"), &orderId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.AdvanceOrderStatus(ctx, orderId)
}

// GetOrderProgress converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderProgress(ctx echo.Context) error {
	var orderId OrderId

	err := runtime.BindStyledParameterWithLocation("simple", false, "orderId", runtime.ParamLocationPath, ctx.Param("orderId"), &orderId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.GetOrderProgress(ctx, orderId)
}

// EchoRouter is implemented by both echo.Echo and echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/migrations/legacy-status", wrapper.RunLegacyMigration)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/delivered", wrapper.GetDeliveredOrders)
	router.GET(baseURL+"/api/v1/orders/ready-for-delivery", wrapper.GetReadyForDeliveryOrders)
	router.POST(baseURL+"/api/v1/orders/:orderId/advance", wrapper.AdvanceOrderStatus)
	router.GET(baseURL+"/api/v1/orders/:orderId/progress", wrapper.GetOrderProgress)
}

// GetSwagger returns the parsed OpenAPI document the routes above implement.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
