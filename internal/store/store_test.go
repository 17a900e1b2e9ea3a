package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, nil), mock
}

func TestViewLocationsMapsRows(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL view_locations(?, ?, ?, ?)")).
		WithArgs(uint64(7), nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"location_id", "name", "type", "city"}).
			AddRow(3, "North Hub", "Hub", "Madison").
			AddRow(4, "Farm Stand", "Farm", "Verona"))

	locs, err := st.ViewLocations(context.Background(), 7, ViewQuery{})
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, uint64(3), locs[0].ID)
	assert.Equal(t, "North Hub", locs[0].Name)
	assert.Equal(t, "Hub", locs[0].Type)
	assert.Equal(t, "Madison", locs[0].City)
	// Projected-out columns stay at zero values.
	assert.Zero(t, locs[0].Latitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewLocationsForwardsFilters(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL view_locations(?, ?, ?, ?)")).
		WithArgs(uint64(7), "name, city", 10, "3,4").
		WillReturnRows(sqlmock.NewRows([]string{"name", "city"}).AddRow("North Hub", "Madison"))

	locs, err := st.ViewLocations(context.Background(), 7,
		ViewQuery{Columns: []string{"name", "city"}, Limit: 10, IDs: []string{"3", "4"}})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "North Hub", locs[0].Name)
	assert.Zero(t, locs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLocationRejectsUnknownType(t *testing.T) {
	st, mock := newTestStore(t)

	_, err := st.AddLocation(context.Background(), 7, NewLocation{Name: "X", Type: "Warehouse"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddDriverReturnsID(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL add_driver(?, ?, ?, ?)")).
		WithArgs(uint64(7), "Pat", 28.5, 19.0).
		WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow(12))

	id, err := st.AddDriver(context.Background(), 7, NewDriver{
		Name: "Pat", HourlyDriveWage: 28.5, HourlyLoadWage: 19.0,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateEntryClassified(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL add_product_master(?, ?, ?, ?)")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := st.AddProduct(context.Background(), 7, NewProduct{
		Code: "APPLE_CRATE", Name: "Apple Crate", StorageType: "Dry",
	})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrossTenantReferenceClassified(t *testing.T) {
	st, mock := newTestStore(t)

	// A supply row referencing another tenant's location trips the
	// composite foreign key, which surfaces as MySQL 1452.
	mock.ExpectQuery(regexp.QuoteMeta("CALL add_supply(?, ?, ?, ?, ?, ?, ?, ?, ?)")).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	_, err := st.AddSupply(context.Background(), 7, NewSupply{
		EntityID: 1, LocationID: 99, ProductCode: "APPLE_CRATE",
	})
	assert.ErrorIs(t, err, ErrReferentialIntegrity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageErrorsAreGeneric(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL view_drivers(?, ?, ?, ?)")).
		WillReturnError(&mysql.MySQLError{Number: 2013, Message: "Lost connection during query"})

	_, err := st.ViewDrivers(context.Background(), 7, ViewQuery{})
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotContains(t, err.Error(), "Lost connection")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddScenarioRequiresRoute(t *testing.T) {
	st, mock := newTestStore(t)

	_, err := st.AddScenario(context.Background(), 7, NewScenario{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateScenarioReturnsUpdatedRow(t *testing.T) {
	st, mock := newTestStore(t)
	gas := 3.45

	mock.ExpectQuery(regexp.QuoteMeta("CALL update_scenario(?, ?, ?, ?, ?, ?, ?, ?)")).
		WithArgs(uint64(7), uint64(5), nil, nil, nil, nil, gas, nil).
		WillReturnRows(sqlmock.NewRows([]string{"scenario_id", "route_id", "snapshot_gas_price"}).
			AddRow(5, 2, 3.45))

	sc, err := st.UpdateScenario(context.Background(), 7, 5, ScenarioUpdate{GasPrice: &gas})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), sc.ID)
	assert.Equal(t, uint64(2), sc.RouteID)
	assert.Equal(t, 3.45, sc.SnapshotGasPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePlanCallsCascadeProcedure(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL delete_plan(?, ?)")).
		WithArgs(uint64(7), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"deleted"}).AddRow(1))

	require.NoError(t, st.DeletePlan(context.Background(), 7, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
