package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fulfillment/entities"
)

func (h *Handler) PostProducts(c echo.Context) error {
	var productReq createProductRequest

	err := c.Bind(&productReq)
	if err != nil {
		return err
	}

	price, err := entities.NewMoneyFromString(productReq.Price)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if productReq.Stock < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "stock must not be negative")
	}

	if productReq.ProductID == "" {
		productReq.ProductID = uuid.NewString()
	}

	product := entities.Product{
		ProductID: productReq.ProductID,
		Name:      productReq.Name,
		Price:     price,
		Stock:     productReq.Stock,
	}

	err = h.productRepo.Save(c.Request().Context(), product)
	if err != nil {
		return fmt.Errorf("failed saving product: %w", err)
	}

	h.indexer.IndexProduct(c.Request().Context(), product)

	return c.JSON(http.StatusCreated, product)
}

func (h *Handler) GetProducts(c echo.Context) error {
	products, err := h.productRepo.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed listing products: %w", err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProductByID(c echo.Context) error {
	product, err := h.productRepo.FindByID(c.Request().Context(), c.Param("product_id"))
	if errors.Is(err, entities.ErrProductNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed getting product: %w", err)
	}

	return c.JSON(http.StatusOK, product)
}
