package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jterrell/freightplan/internal/store"
)

// Locations and routes: the physical network scenarios run over.

func (h *PlanningHandler) ListLocations(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Locations(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateLocation(c echo.Context) error {
	var in store.NewLocation
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddLocation(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "location_id", id)
}

func (h *PlanningHandler) DeleteLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteLocation(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanningHandler) ListRoutes(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Routes(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateRoute(c echo.Context) error {
	var in store.NewRoute
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddRoute(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "route_id", id)
}

func (h *PlanningHandler) DeleteRoute(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteRoute(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
