package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "pizzeria/internal/adapters/in/http"
	postgres_adapter "pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/adapters/out/postgres/idempotencyrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
	"pizzeria/internal/pkg/keylock"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type unitOfWorks struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

type placeOrderUoWs struct{ unitOfWorks }

func (f placeOrderUoWs) Create() commands.PlaceOrderUoW { return f.factory.Create() }

type orderUoWs struct{ unitOfWorks }

func (f orderUoWs) Create() commands.OrderUoW { return f.factory.Create() }

type catalogUoWs struct{ unitOfWorks }

func (f catalogUoWs) Create() commands.CatalogUoW { return f.factory.Create() }

type testAPI struct {
	echo    *echo.Echo
	db      *gorm.DB
	metrics *metrics.Metrics
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := postgres_adapter.Open(postgres_adapter.DBConfig{
		Driver:     postgres_adapter.DriverSQLite,
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, postgres_adapter.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	clock := ports.ClockFunc(func() time.Time { return testNow })
	uows := unitOfWorks{factory: postgres_adapter.NewGormUnitOfWorkFactory(db)}
	orders := orderrepo.NewGormOrderRepository(db, nil)
	menu := catalogrepo.NewGormCatalogRepository(db)

	statistics := queries.NewGetStatisticsQueryHandler(orders, services.NewStatisticsAggregator(time.UTC), clock, 0)
	listOrders := queries.NewListOrdersQueryHandler(orders, clock, time.UTC, 0)

	server := httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder: commands.NewPlaceOrderCommandHandler(
			placeOrderUoWs{uows},
			idempotencyrepo.NewGormIdempotencyStore(db, time.Hour, clock),
			clock,
			0,
			nil,
		),
		ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(orderUoWs{uows}, keylock.New(), clock, 0),
		UpsertCatalogItem: commands.NewUpsertCatalogItemCommandHandler(catalogUoWs{uows}, 0),
		DeleteCatalogItem: commands.NewDeleteCatalogItemCommandHandler(catalogUoWs{uows}, 0),
		ListCatalogItems:  queries.NewListCatalogItemsQueryHandler(menu, 0),
		GetCatalogItem:    queries.NewGetCatalogItemQueryHandler(menu, 0),
		GetOrder:          queries.NewGetOrderQueryHandler(orders, 0),
		ListOrders:        listOrders,
		GetOrderHistory:   queries.NewGetOrderHistoryQueryHandler(db, 0),
		GetStatistics:     statistics,
		GetDashboard:      queries.NewGetDashboardQueryHandler(statistics, listOrders),
	}, nil)

	m := metrics.New()
	e, err := httpadapter.NewRouter(server, m, nil)
	require.NoError(t, err)

	return &testAPI{echo: e, db: db, metrics: m}
}

func (a *testAPI) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) seedMenu(t *testing.T) {
	t.Helper()
	for _, item := range []struct{ id, body string }{
		{"P001", `{"name":"Margherita","ingredients":["tomato","mozzarella"],"size":"MEDIUM",` +
			`"price":"2500","preparation_minutes":20,"category":"CLASSIC","available":true}`},
		{"P002", `{"name":"Pepperoni","size":"LARGE","price":"3000",` +
			`"preparation_minutes":35,"category":"SPICY","available":true}`},
		{"P003", `{"name":"Truffle","description":"Seasonal","size":"XXL","price":"5200.50",` +
			`"preparation_minutes":40,"category":"PREMIUM","available":false}`},
	} {
		rec := a.do(t, http.MethodPut, "/api/v1/catalog/"+item.id, item.body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
