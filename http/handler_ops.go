package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/entities"
)

// PutRetryStockUpdate is the operator remediation path for quarantined
// facts: the command handler republishes OrderPaid with a fresh event ID.
func (h *Handler) PutRetryStockUpdate(c echo.Context) error {
	cmd := entities.RetryStockUpdate{
		Header:  entities.NewEventHeader(),
		OrderID: c.Param("order_id"),
	}

	err := h.cmdBus.Send(c.Request().Context(), cmd)
	if err != nil {
		return fmt.Errorf("failed sending retry command: %w", err)
	}

	return c.NoContent(http.StatusAccepted)
}

func (h *Handler) GetFailures(c echo.Context) error {
	failures, err := h.failureRepo.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed listing order failures: %w", err)
	}

	return c.JSON(http.StatusOK, failures)
}
