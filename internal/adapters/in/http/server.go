package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	PlaceOrder        commands.PlaceOrderCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	UpsertCatalogItem commands.UpsertCatalogItemCommandHandler
	DeleteCatalogItem commands.DeleteCatalogItemCommandHandler

	ListCatalogItems queries.ListCatalogItemsQueryHandler
	GetCatalogItem   queries.GetCatalogItemQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	GetOrderHistory  queries.GetOrderHistoryQueryHandler
	GetStatistics    queries.GetStatisticsQueryHandler
	GetDashboard     queries.GetDashboardQueryHandler
}

// Server implements servers.ServerInterface. It translates transport models
// into commands and queries and domain objects back into transport models.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{handlers: handlers, logger: logger.With("component", "http")}
}

// ListCatalogItems handles GET /api/v1/catalog.
func (s *Server) ListCatalogItems(ctx echo.Context, params servers.ListCatalogItemsParams) error {
	var filter ports.CatalogFilter
	if params.Category != nil {
		category, err := catalog.ParseCategory(string(*params.Category))
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.Category = &category
	}
	if params.AvailableOnly != nil {
		filter.AvailableOnly = *params.AvailableOnly
	}
	filter.Query = deref(params.Q)

	query, err := queries.NewListCatalogItemsQuery(filter)
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.handlers.ListCatalogItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.CatalogItem, len(items))
	for i, item := range items {
		response[i] = toCatalogItem(item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetCatalogItem handles GET /api/v1/catalog/{itemId}.
func (s *Server) GetCatalogItem(ctx echo.Context, itemID servers.ItemId) error {
	query, err := queries.NewGetCatalogItemQuery(itemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.handlers.GetCatalogItem.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCatalogItem(item))
}

// UpsertCatalogItem handles PUT /api/v1/catalog/{itemId}. A new item is
// answered with 201, a replaced one with 200.
func (s *Server) UpsertCatalogItem(ctx echo.Context, itemID servers.ItemId) error {
	var body servers.UpsertCatalogItemJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	details, err := toCatalogDetails(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpsertCatalogItemCommand(itemID, details)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, created, err := s.handlers.UpsertCatalogItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return ctx.JSON(status, toCatalogItem(item))
}

// DeleteCatalogItem handles DELETE /api/v1/catalog/{itemId}.
func (s *Server) DeleteCatalogItem(ctx echo.Context, itemID servers.ItemId) error {
	cmd, err := commands.NewDeleteCatalogItemCommand(itemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteCatalogItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders. A replayed idempotency key is
// answered with 200 and the original order.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	deliveryType, deliveryErr := order.ParseDeliveryType(string(body.DeliveryType))
	paymentMethod, paymentErr := order.ParsePaymentMethod(string(body.PaymentMethod))
	if err := errors.Join(deliveryErr, paymentErr); err != nil {
		return s.fail(ctx, err)
	}

	items := make([]commands.OrderItem, len(body.Items))
	for i, item := range body.Items {
		items[i] = commands.OrderItem{CatalogItemID: item.CatalogItemId, Quantity: item.Quantity}
	}

	cmd, err := commands.NewPlaceOrderCommand(commands.PlaceOrderParams{
		Customer: customer.Contact{
			Name:    body.Customer.Name,
			Phone:   body.Customer.Phone,
			Email:   deref(body.Customer.Email),
			Address: deref(body.Customer.Address),
		},
		Items:           items,
		DeliveryType:    deliveryType,
		DeliveryAddress: deref(body.DeliveryAddress),
		Notes:           deref(body.Notes),
		PaymentMethod:   paymentMethod,
		IdempotencyKey:  deref(params.IdempotencyKey),
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return ctx.JSON(status, toOrder(result.Order))
}

// ListOrders handles GET /api/v1/orders?status=.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	status, err := order.ParseStatus(string(params.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListOrdersByStatusQuery(status)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listOrders(ctx, query)
}

// ListActiveOrders handles GET /api/v1/orders/active.
func (s *Server) ListActiveOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.NewListActiveOrdersQuery())
}

// ListTodayOrders handles GET /api/v1/orders/today.
func (s *Server) ListTodayOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.NewListTodayOrdersQuery())
}

func (s *Server) listOrders(ctx echo.Context, query queries.ListOrdersQuery) error {
	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := toOrderID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderID servers.OrderId) error {
	id, err := toOrderID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	history, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.HistoryEntry, len(history))
	for i, entry := range history {
		response[i] = servers.HistoryEntry{
			To:        servers.OrderStatus(entry.To.String()),
			ChangedAt: entry.ChangedAt.UTC(),
		}
		if entry.From != order.Unknown {
			from := servers.OrderStatus(entry.From.String())
			response[i].From = &from
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.ChangeOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	id, idErr := toOrderID(orderID)
	status, statusErr := order.ParseStatus(string(body.Status))
	if err := errors.Join(idErr, statusErr); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(result.Order))
}

// GetStatistics handles GET /api/v1/statistics.
func (s *Server) GetStatistics(ctx echo.Context, params servers.GetStatisticsParams) error {
	query, err := queries.NewGetStatisticsQuery(derefInt(params.PopularLimit))
	if err != nil {
		return s.fail(ctx, err)
	}

	stats, err := s.handlers.GetStatistics.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toStatistics(stats))
}

// GetDashboard handles GET /api/v1/dashboard.
func (s *Server) GetDashboard(ctx echo.Context, params servers.GetDashboardParams) error {
	query, err := queries.NewGetDashboardQuery(derefInt(params.PopularLimit))
	if err != nil {
		return s.fail(ctx, err)
	}

	dashboard, err := s.handlers.GetDashboard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Dashboard{
		Statistics:   toStatistics(dashboard.Statistics),
		ActiveOrders: toOrders(dashboard.ActiveOrders),
	})
}

func toOrderID(id servers.OrderId) (kernel.UUID, error) {
	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, wrapInvalid("order id", err)
	}
	return converted, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}
