package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jterrell/freightplan/internal/store"
)

// Products and trading entities: what gets hauled and for whom.

func (h *PlanningHandler) ListProducts(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Products(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateProduct(c echo.Context) error {
	var in store.NewProduct
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.Code == "" || in.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_code and name are required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddProduct(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "product_id", id)
}

// DeleteProduct keys on the product code, the products table's natural
// identifier.
func (h *PlanningHandler) DeleteProduct(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product code required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteProduct(ctx, code); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanningHandler) ListEntities(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Store.Entities(ctx, parseViewQuery(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanningHandler) CreateEntity(c echo.Context) error {
	var in store.NewEntity
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if in.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	id, err := h.Store.AddEntity(ctx, in)
	if err != nil {
		return h.storeError(c, err)
	}
	return h.created(c, "entity_id", id)
}

func (h *PlanningHandler) DeleteEntity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entity id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Store.DeleteEntity(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
