package http

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fulfillment/pkg/log"
	"fulfillment/search"
)

func NewHttpRouter(
	eventBus *cqrs.EventBus,
	cmdBus *cqrs.CommandBus,
	orderRepo OrderRepository,
	productRepo ProductRepository,
	failureRepo FailureRepository,
	indexer search.LoggingIndexer,
	metricsRegistry *prometheus.Registry,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})))

	handler := Handler{
		eventBus:    eventBus,
		cmdBus:      cmdBus,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		failureRepo: failureRepo,
		indexer:     indexer,
	}

	e.POST("/orders", handler.PostOrders)
	e.GET("/orders/:order_id", handler.GetOrderByID)
	e.POST("/orders/:order_id/pay", handler.PostOrderPayment)
	e.PUT("/orders/:order_id/cancel", handler.PutOrderCancel)
	e.POST("/products", handler.PostProducts)
	e.GET("/products", handler.GetProducts)
	e.GET("/products/:product_id", handler.GetProductByID)
	e.PUT("/ops/orders/:order_id/retry-stock-update", handler.PutRetryStockUpdate)
	e.GET("/ops/failures", handler.GetFailures)

	return e
}

// correlationMiddleware mirrors the message-router middleware: every request
// gets a correlation ID and a logger carrying it in its context.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get("Correlation-ID")
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := log.ContextWithCorrelationID(c.Request().Context(), correlationID)
		ctx = log.ToContext(ctx, log.FromContext(ctx).WithField("correlation_id", correlationID))
		c.SetRequest(c.Request().WithContext(ctx))

		c.Response().Header().Set("Correlation-ID", correlationID)

		return next(c)
	}
}
