package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jterrell/freightplan/internal/store"
)

// Supply and demand records: what is available where, and what is needed.

func (h *PlanningHandler) ListSupply(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Supply(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateSupply(c echo.Context) error {
	var in store.NewSupply
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.EntityID == 0 || in.LocationID == 0 || in.ProductCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entity_id, location_id and product_code are required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddSupply(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "supply_id", id)
}

func (h *PlanningHandler) DeleteSupply(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supply id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteSupply(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanningHandler) ListDemand(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Demand(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateDemand(c echo.Context) error {
	var in store.NewDemand
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.LocationID == 0 || in.ProductCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id and product_code are required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddDemand(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "demand_id", id)
}

func (h *PlanningHandler) DeleteDemand(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid demand id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteDemand(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
