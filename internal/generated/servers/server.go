package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List catalog items ordered by id
	// (GET /api/v1/catalog)
	ListCatalogItems(ctx echo.Context, params ListCatalogItemsParams) error
	// Remove a catalog item
	// (DELETE /api/v1/catalog/{itemId})
	DeleteCatalogItem(ctx echo.Context, itemId ItemId) error
	// Get a catalog item
	// (GET /api/v1/catalog/{itemId})
	GetCatalogItem(ctx echo.Context, itemId ItemId) error
	// Create or replace a catalog item
	// (PUT /api/v1/catalog/{itemId})
	UpsertCatalogItem(ctx echo.Context, itemId ItemId) error
	// Statistics together with the active order queue
	// (GET /api/v1/dashboard)
	GetDashboard(ctx echo.Context, params GetDashboardParams) error
	// List orders in one status, newest first
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Place an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// List orders that are not completed or cancelled
	// (GET /api/v1/orders/active)
	ListActiveOrders(ctx echo.Context) error
	// List orders placed today
	// (GET /api/v1/orders/today)
	ListTodayOrders(ctx echo.Context) error
	// Get an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// List the status changes of an order, oldest first
	// (GET /api/v1/orders/{orderId}/history)
	GetOrderHistory(ctx echo.Context, orderId OrderId) error
	// Move an order to another status
	// (PUT /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId OrderId) error
	// Derive statistics over all orders
	// (GET /api/v1/statistics)
	GetStatistics(ctx echo.Context, params GetStatisticsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListCatalogItems converts echo context to params.
func (w *ServerInterfaceWrapper) ListCatalogItems(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListCatalogItemsParams
	// ------------- Optional query parameter "category" -------------

	err = runtime.BindQueryParameter("form", true, false, "category", ctx.QueryParams(), &params.Category)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter category: %s", err))
	}

	// ------------- Optional query parameter "available_only" -------------

	err = runtime.BindQueryParameter("form", true, false, "available_only", ctx.QueryParams(), &params.AvailableOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter available_only: %s", err))
	}

	// ------------- Optional query parameter "q" -------------

	err = runtime.BindQueryParameter("form", true, false, "q", ctx.QueryParams(), &params.Q)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter q: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListCatalogItems(ctx, params)
	return err
}

// DeleteCatalogItem converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteCatalogItem(ctx echo.Context) error {
	itemId, err := bindItemID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.DeleteCatalogItem(ctx, itemId)
	return err
}

// GetCatalogItem converts echo context to params.
func (w *ServerInterfaceWrapper) GetCatalogItem(ctx echo.Context) error {
	itemId, err := bindItemID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetCatalogItem(ctx, itemId)
	return err
}

// UpsertCatalogItem converts echo context to params.
func (w *ServerInterfaceWrapper) UpsertCatalogItem(ctx echo.Context) error {
	itemId, err := bindItemID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.UpsertCatalogItem(ctx, itemId)
	return err
}

// GetDashboard converts echo context to params.
func (w *ServerInterfaceWrapper) GetDashboard(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetDashboardParams
	// ------------- Optional query parameter "popular_limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "popular_limit", ctx.QueryParams(), &params.PopularLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter popular_limit: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetDashboard(ctx, params)
	return err
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListOrdersParams
	// ------------- Required query parameter "status" -------------

	err = runtime.BindQueryParameter("form", true, true, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListOrders(ctx, params)
	return err
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params CreateOrderParams

	headers := ctx.Request().Header
	// ------------- Optional header parameter "Idempotency-Key" -------------
	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var IdempotencyKey string
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &IdempotencyKey,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}

		params.IdempotencyKey = &IdempotencyKey
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateOrder(ctx, params)
	return err
}

// ListActiveOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListActiveOrders(ctx echo.Context) error {
	// Invoke the callback with all the unmarshaled arguments
	return w.Handler.ListActiveOrders(ctx)
}

// ListTodayOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListTodayOrders(ctx echo.Context) error {
	// Invoke the callback with all the unmarshaled arguments
	return w.Handler.ListTodayOrders(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrder(ctx, orderId)
	return err
}

// GetOrderHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrderHistory(ctx, orderId)
	return err
}

// ChangeOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ChangeOrderStatus(ctx, orderId)
	return err
}

// GetStatistics converts echo context to params.
func (w *ServerInterfaceWrapper) GetStatistics(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetStatisticsParams
	// ------------- Optional query parameter "popular_limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "popular_limit", ctx.QueryParams(), &params.PopularLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter popular_limit: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetStatistics(ctx, params)
	return err
}

func bindItemID(ctx echo.Context) (ItemId, error) {
	// ------------- Path parameter "itemId" -------------
	var itemId ItemId

	err := runtime.BindStyledParameterWithOptions("simple", "itemId", ctx.Param("itemId"), &itemId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return itemId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter itemId: %s", err))
	}
	return itemId, nil
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
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

	router.GET(baseURL+"/api/v1/catalog", wrapper.ListCatalogItems)
	router.DELETE(baseURL+"/api/v1/catalog/:itemId", wrapper.DeleteCatalogItem)
	router.GET(baseURL+"/api/v1/catalog/:itemId", wrapper.GetCatalogItem)
	router.PUT(baseURL+"/api/v1/catalog/:itemId", wrapper.UpsertCatalogItem)
	router.GET(baseURL+"/api/v1/dashboard", wrapper.GetDashboard)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/active", wrapper.ListActiveOrders)
	router.GET(baseURL+"/api/v1/orders/today", wrapper.ListTodayOrders)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/history", wrapper.GetOrderHistory)
	router.PUT(baseURL+"/api/v1/orders/:orderId/status", wrapper.ChangeOrderStatus)
	router.GET(baseURL+"/api/v1/statistics", wrapper.GetStatistics)
}
