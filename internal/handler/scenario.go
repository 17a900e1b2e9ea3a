package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jterrell/freightplan/internal/store"
)

// Scenarios are trip plans; manifest items are their cost/revenue lines.
// A "plan" is a scenario together with its manifest, deleted as a unit.

func (h *PlanningHandler) ListScenarios(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Scenarios(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateScenario(c echo.Context) error {
	var in store.NewScenario
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddScenario(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "scenario_id", id)
}

func (h *PlanningHandler) UpdateScenario(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid scenario id"})
	}
	var in store.ScenarioUpdate
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	updated, err := h.Store.UpdateScenario(ctx, id, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *PlanningHandler) DeleteScenario(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid scenario id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteScenario(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePlan removes a scenario and its manifest items together.
func (h *PlanningHandler) DeletePlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid scenario id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeletePlan(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanningHandler) ListManifestItems(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.ManifestItems(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateManifestItem(c echo.Context) error {
	scenarioID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid scenario id"})
	}
	var in store.NewManifestItem
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.ItemName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_name is required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddManifestItem(ctx, scenarioID, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "manifest_item_id", id)
}

func (h *PlanningHandler) DeleteManifestItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid manifest item id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteManifestItem(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
