package http

import (
	"log/slog"
	"net/http"

	"pizzeria/api"
	"pizzeria/internal/generated/docs"
	"pizzeria/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// MetricsSource serves the scrape endpoint and records requests.
type MetricsSource interface {
	RequestObserver
	Handler() http.Handler
}

// NewRouter builds the echo instance: the API under /api/v1 guarded by the
// contract validator, plus /health, /metrics and /swagger/*.
func NewRouter(server servers.ServerInterface, metrics MetricsSource, logger *slog.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := api.Spec()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = docs.Register(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(Metrics(metrics))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}
