package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jterrell/freightplan/internal/auth"
	"github.com/jterrell/freightplan/internal/store"
)

// PlanningHandler serves the tenant-scoped planning entities. Every data
// call goes through the scoping adapter, so no method here ever sees or
// forwards a tenant id; the verified request identity is the only source.
type PlanningHandler struct {
	Store *store.Scoped
	Log   *zap.SugaredLogger
}

func NewPlanningHandler(sc *store.Scoped, log *zap.SugaredLogger) *PlanningHandler {
	if sc == nil {
		panic("nil scoped store passed to NewPlanningHandler")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PlanningHandler{Store: sc, Log: log}
}

// parseViewQuery reads the common list filters: columns (CSV projection),
// limit, and ids (CSV row filter).
func parseViewQuery(c echo.Context) store.ViewQuery {
	var q store.ViewQuery
	if cols := c.QueryParam("columns"); cols != "" {
		q.Columns = splitCSV(cols)
	}
	if l := c.QueryParam("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			q.Limit = n
		}
	}
	if ids := c.QueryParam("ids"); ids != "" {
		q.IDs = splitCSV(ids)
	}
	return q
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dbCtx bounds a storage call to the request plus a hard ceiling.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// storeError maps store and adapter failures onto HTTP responses.
func (h *PlanningHandler) storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrNoIdentity):
		// A scoped call ran on a route the gatekeeper never touched.
		// Surface loudly; this is a wiring bug, not a client mistake.
		h.Log.Errorw("scoped call without identity", "path", c.Request().URL.Path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no identity established"})
	case errors.Is(err, store.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateEntry):
		return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate entry"})
	case errors.Is(err, store.ErrReferentialIntegrity):
		// Also what a cross-tenant foreign key reference trips; the body
		// deliberately does not distinguish the two.
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid reference"})
	}
	h.Log.Errorw("storage call failed", "path", c.Request().URL.Path, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage failure"})
}

func (h *PlanningHandler) created(c echo.Context, key string, id uint64) error {
	return c.JSON(http.StatusCreated, echo.Map{key: id})
}
