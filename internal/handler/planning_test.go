package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jterrell/freightplan/internal/auth"
	"github.com/jterrell/freightplan/internal/store"
)

func newTestPlanningHandler(t *testing.T) (*PlanningHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPlanningHandler(store.NewScoped(store.New(db, nil)), nil), mock
}

// identified builds an echo context whose request carries a verified
// identity, the way the gatekeeper leaves it.
func identified(t *testing.T, method, target, body string, tenantID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: 1, TenantID: tenantID}))
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestListLocationsReturnsTenantRows(t *testing.T) {
	h, mock := newTestPlanningHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL view_locations(?, ?, ?, ?)")).
		WithArgs(uint64(7), nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"location_id", "name", "type"}).
			AddRow(3, "North Hub", "Hub"))

	c, rec := identified(t, http.MethodGet, "/api/locations", "", 7)
	require.NoError(t, h.ListLocations(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var locs []store.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locs))
	require.Len(t, locs, 1)
	assert.Equal(t, "North Hub", locs[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLocationsForwardsQueryFilters(t *testing.T) {
	h, mock := newTestPlanningHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL view_locations(?, ?, ?, ?)")).
		WithArgs(uint64(7), "name, city", 5, "3,4").
		WillReturnRows(sqlmock.NewRows([]string{"name", "city"}).AddRow("North Hub", "Madison"))

	c, rec := identified(t, http.MethodGet, "/api/locations?columns=name,city&limit=5&ids=3,4", "", 7)
	require.NoError(t, h.ListLocations(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLocationInvalidEnum(t *testing.T) {
	h, mock := newTestPlanningHandler(t)

	c, rec := identified(t, http.MethodPost, "/api/locations",
		`{"name":"Depot","type":"Warehouse"}`, 7)
	require.NoError(t, h.CreateLocation(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDriverMapsID(t *testing.T) {
	h, mock := newTestPlanningHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL add_driver(?, ?, ?, ?)")).
		WithArgs(uint64(7), "Pat", 28.5, 19.0).
		WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow(12))

	c, rec := identified(t, http.MethodPost, "/api/drivers",
		`{"name":"Pat","hourly_drive_wage":28.5,"hourly_load_wage":19}`, 7)
	require.NoError(t, h.CreateDriver(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(12), body["driver_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateMapsToConflict(t *testing.T) {
	h, mock := newTestPlanningHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL add_product_master(?, ?, ?, ?)")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	c, rec := identified(t, http.MethodPost, "/api/products",
		`{"product_code":"APPLE_CRATE","name":"Apple Crate","storage_type":"Dry"}`, 7)
	require.NoError(t, h.CreateProduct(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingIdentityIsServerError(t *testing.T) {
	h, mock := newTestPlanningHandler(t)

	// No identity in the request context; the scoped store must fail
	// closed and the handler must answer 500, never leak another
	// tenant's rows.
	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.ListLocations(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRouteNoContent(t *testing.T) {
	h, mock := newTestPlanningHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL delete_route(?, ?)")).
		WithArgs(uint64(7), uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"deleted"}).AddRow(1))

	c, rec := identified(t, http.MethodDelete, "/api/routes/4", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.DeleteRoute(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
