package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fulfillment/entities"
)

func (h *Handler) PostOrders(c echo.Context) error {
	var orderReq createOrderRequest

	err := c.Bind(&orderReq)
	if err != nil {
		return err
	}

	items := make([]entities.OrderItem, 0, len(orderReq.Items))
	for _, itemReq := range orderReq.Items {
		price, err := entities.NewMoneyFromString(itemReq.UnitPrice)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		item, err := entities.NewOrderItem(itemReq.ProductID, itemReq.ProductName, price, itemReq.Quantity)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		items = append(items, item)
	}

	order, err := entities.NewOrder(uuid.NewString(), orderReq.UserID, items)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.orderRepo.Create(c.Request().Context(), order)
	if err != nil {
		return fmt.Errorf("failed creating order: %w", err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrderByID(c echo.Context) error {
	order, err := h.orderRepo.FindByID(c.Request().Context(), c.Param("order_id"))
	if errors.Is(err, entities.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed getting order: %w", err)
	}

	return c.JSON(http.StatusOK, order)
}

// PostOrderPayment flips the order to PAID and hands the fact to the async
// publisher. A 202 means the event was accepted for delivery, not delivered.
func (h *Handler) PostOrderPayment(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderRepo.FindByID(ctx, c.Param("order_id"))
	if errors.Is(err, entities.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed getting order: %w", err)
	}

	paidOrder, err := order.MarkAsPaid()
	if errors.Is(err, entities.ErrInvalidState) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return err
	}

	err = h.orderRepo.Save(ctx, paidOrder)
	if err != nil {
		return fmt.Errorf("failed saving paid order: %w", err)
	}

	err = h.eventBus.Publish(ctx, entities.NewOrderPaid(paidOrder))
	if err != nil {
		return fmt.Errorf("failed publishing OrderPaid: %w", err)
	}

	return c.JSON(http.StatusAccepted, paidOrder)
}

func (h *Handler) PutOrderCancel(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderRepo.FindByID(ctx, c.Param("order_id"))
	if errors.Is(err, entities.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed getting order: %w", err)
	}

	cancelledOrder, err := order.Cancel()
	if errors.Is(err, entities.ErrInvalidState) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return err
	}

	err = h.orderRepo.Save(ctx, cancelledOrder)
	if err != nil {
		return fmt.Errorf("failed saving cancelled order: %w", err)
	}

	return c.JSON(http.StatusOK, cancelledOrder)
}
