package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jterrell/freightplan/internal/store"
)

// Vehicles and drivers: the fleet side of a scenario's cost model.

func (h *PlanningHandler) ListVehicles(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Vehicles(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateVehicle(c echo.Context) error {
	var in store.NewVehicle
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddVehicle(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "vehicle_id", id)
}

func (h *PlanningHandler) DeleteVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteVehicle(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanningHandler) ListDrivers(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Drivers(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateDriver(c echo.Context) error {
	var in store.NewDriver
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddDriver(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "driver_id", id)
}

func (h *PlanningHandler) DeleteDriver(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid driver id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteDriver(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
