package store

import (
	"context"
	"fmt"
)

// Enumerations enforced before a stored call is attempted, mirroring the
// planning schema's CHECK-style constraints.
var (
	locationTypes       = map[string]bool{"Hub": true, "Store": true, "Farm": true}
	storageTypes        = map[string]bool{"Dry": true, "Ref": true, "Frz": true}
	vehicleStorageTypes = map[string]bool{"Dry": true, "Ref": true, "Frz": true, "Multi": true}
)

// ---- creation inputs ----
// Pointer fields are optional and travel to the procedure as NULL.

type NewLocation struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	AddressStreet    *string  `json:"address_street"`
	City             *string  `json:"city"`
	State            *string  `json:"state"`
	ZipCode          *string  `json:"zip_code"`
	Phone            *string  `json:"phone"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	AvgLoadMinutes   *int     `json:"avg_load_minutes"`
	AvgUnloadMinutes *int     `json:"avg_unload_minutes"`
}

type NewProduct struct {
	Code        string `json:"product_code"`
	Name        string `json:"name"`
	StorageType string `json:"storage_type"`
}

type NewDriver struct {
	Name            string  `json:"name"`
	HourlyDriveWage float64 `json:"hourly_drive_wage"`
	HourlyLoadWage  float64 `json:"hourly_load_wage"`
}

type NewVehicle struct {
	Name                  string   `json:"name"`
	MPG                   float64  `json:"mpg"`
	DepreciationPerMile   float64  `json:"depreciation_per_mile"`
	AnnualInsuranceCost   float64  `json:"annual_insurance_cost"`
	AnnualMaintenanceCost float64  `json:"annual_maintenance_cost"`
	MaxWeightLbs          *float64 `json:"max_weight_lbs"`
	MaxVolumeCubicFt      *float64 `json:"max_volume_cubic_ft"`
	StorageType           string   `json:"storage_type"`
}

type NewEntity struct {
	Name      string  `json:"name"`
	MinProfit float64 `json:"entity_min_profit"`
}

type NewSupply struct {
	EntityID             uint64  `json:"entity_id"`
	LocationID           uint64  `json:"location_id"`
	ProductCode          string  `json:"product_code"`
	QuantityAvailable    float64 `json:"quantity_available"`
	UnitWeightLbs        float64 `json:"unit_weight_lbs"`
	UnitVolumeCuFt       float64 `json:"unit_volume_cu_ft"`
	ItemsPerHandlingUnit int     `json:"items_per_handling_unit"`
	CostPerItem          float64 `json:"cost_per_item"`
}

type NewDemand struct {
	LocationID     uint64  `json:"location_id"`
	ProductCode    string  `json:"product_code"`
	QuantityNeeded float64 `json:"quantity_needed"`
	MaxPrice       float64 `json:"max_price"`
}

type NewRoute struct {
	Name             *string `json:"name"`
	OriginLocationID *uint64 `json:"origin_location_id"`
	DestLocationID   *uint64 `json:"dest_location_id"`
}

type NewScenario struct {
	RouteID                      uint64   `json:"route_id"`
	VehicleID                    *uint64  `json:"vehicle_id"`
	DriverID                     *uint64  `json:"driver_id"`
	RunDate                      *string  `json:"run_date"`
	SnapshotDriverWage           *float64 `json:"snapshot_driver_wage"`
	SnapshotDriverLoadWage       *float64 `json:"snapshot_driver_load_wage"`
	SnapshotVehicleMPG           *float64 `json:"snapshot_vehicle_mpg"`
	SnapshotGasPrice             *float64 `json:"snapshot_gas_price"`
	SnapshotDailyInsurance       *float64 `json:"snapshot_daily_insurance"`
	SnapshotDailyMaintenance     *float64 `json:"snapshot_daily_maintenance_cost"`
	SnapshotPlannedLoadMinutes   *int     `json:"snapshot_planned_load_minutes"`
	SnapshotPlannedUnloadMinutes *int     `json:"snapshot_planned_unload_minutes"`
	ActualLoadMinutes            int      `json:"actual_load_minutes"`
	ActualUnloadMinutes          int      `json:"actual_unload_minutes"`
	TotalRevenue                 float64  `json:"snapshot_total_revenue"`
}

// ScenarioUpdate carries partial updates for a scenario header; nil
// fields are left unchanged by the procedure.
type ScenarioUpdate struct {
	RouteID      *uint64  `json:"route_id"`
	VehicleID    *uint64  `json:"vehicle_id"`
	DriverID     *uint64  `json:"driver_id"`
	RunDate      *string  `json:"run_date"`
	GasPrice     *float64 `json:"snapshot_gas_price"`
	TotalRevenue *float64 `json:"snapshot_total_revenue"`
}

type NewManifestItem struct {
	ItemName          string  `json:"item_name"`
	QuantityLoaded    float64 `json:"quantity_loaded"`
	SupplyID          *uint64 `json:"supply_id"`
	DemandID          *uint64 `json:"demand_id"`
	SnapshotCost      float64 `json:"snapshot_cost_per_item"`
	SnapshotPerUnit   int     `json:"snapshot_items_per_unit"`
	SnapshotWeight    float64 `json:"snapshot_unit_weight"`
	SnapshotVolume    float64 `json:"snapshot_unit_volume"`
	SnapshotUnitPrice float64 `json:"snapshot_price_per_item"`
}

// ---- locations ----

func (s *Store) ViewLocations(ctx context.Context, tenantID uint64, q ViewQuery) ([]Location, error) {
	rows, err := s.callView(ctx, "view_locations", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, locationFromRow), nil
}

func (s *Store) AddLocation(ctx context.Context, tenantID uint64, in NewLocation) (uint64, error) {
	if !locationTypes[in.Type] {
		return 0, fmt.Errorf("%w: invalid location type %q", ErrValidation, in.Type)
	}
	return s.callID(ctx, "add_location",
		tenantID, in.Name, in.Type, in.AddressStreet, in.City, in.State,
		in.ZipCode, in.Phone, in.Latitude, in.Longitude,
		in.AvgLoadMinutes, in.AvgUnloadMinutes)
}

func (s *Store) DeleteLocation(ctx context.Context, tenantID, locationID uint64) error {
	return s.callExec(ctx, "delete_location", tenantID, locationID)
}

// ---- products ----

func (s *Store) ViewProducts(ctx context.Context, tenantID uint64, q ViewQuery) ([]Product, error) {
	rows, err := s.callView(ctx, "view_products_master", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, productFromRow), nil
}

func (s *Store) AddProduct(ctx context.Context, tenantID uint64, in NewProduct) (uint64, error) {
	if !storageTypes[in.StorageType] {
		return 0, fmt.Errorf("%w: invalid storage type %q", ErrValidation, in.StorageType)
	}
	return s.callID(ctx, "add_product_master", tenantID, in.Code, in.Name, in.StorageType)
}

func (s *Store) DeleteProduct(ctx context.Context, tenantID uint64, productCode string) error {
	return s.callExec(ctx, "delete_product_master", tenantID, productCode)
}

// ---- drivers ----

func (s *Store) ViewDrivers(ctx context.Context, tenantID uint64, q ViewQuery) ([]Driver, error) {
	rows, err := s.callView(ctx, "view_drivers", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, driverFromRow), nil
}

func (s *Store) AddDriver(ctx context.Context, tenantID uint64, in NewDriver) (uint64, error) {
	return s.callID(ctx, "add_driver", tenantID, in.Name, in.HourlyDriveWage, in.HourlyLoadWage)
}

func (s *Store) DeleteDriver(ctx context.Context, tenantID, driverID uint64) error {
	return s.callExec(ctx, "delete_driver", tenantID, driverID)
}

// ---- vehicles ----

func (s *Store) ViewVehicles(ctx context.Context, tenantID uint64, q ViewQuery) ([]Vehicle, error) {
	rows, err := s.callView(ctx, "view_vehicles", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, vehicleFromRow), nil
}

func (s *Store) AddVehicle(ctx context.Context, tenantID uint64, in NewVehicle) (uint64, error) {
	if !vehicleStorageTypes[in.StorageType] {
		return 0, fmt.Errorf("%w: invalid vehicle storage type %q", ErrValidation, in.StorageType)
	}
	return s.callID(ctx, "add_vehicle",
		tenantID, in.Name, in.MPG, in.DepreciationPerMile, in.AnnualInsuranceCost,
		in.AnnualMaintenanceCost, in.MaxWeightLbs, in.MaxVolumeCubicFt, in.StorageType)
}

func (s *Store) DeleteVehicle(ctx context.Context, tenantID, vehicleID uint64) error {
	return s.callExec(ctx, "delete_vehicle", tenantID, vehicleID)
}

// ---- entities (trading partners) ----

func (s *Store) ViewEntities(ctx context.Context, tenantID uint64, q ViewQuery) ([]Entity, error) {
	rows, err := s.callView(ctx, "view_entities", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, entityFromRow), nil
}

func (s *Store) AddEntity(ctx context.Context, tenantID uint64, in NewEntity) (uint64, error) {
	return s.callID(ctx, "add_entity", tenantID, in.Name, in.MinProfit)
}

func (s *Store) DeleteEntity(ctx context.Context, tenantID, entityID uint64) error {
	return s.callExec(ctx, "delete_entity", tenantID, entityID)
}

// ---- supply ----

func (s *Store) ViewSupply(ctx context.Context, tenantID uint64, q ViewQuery) ([]Supply, error) {
	rows, err := s.callView(ctx, "view_supply", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, supplyFromRow), nil
}

func (s *Store) AddSupply(ctx context.Context, tenantID uint64, in NewSupply) (uint64, error) {
	return s.callID(ctx, "add_supply",
		tenantID, in.EntityID, in.LocationID, in.ProductCode, in.QuantityAvailable,
		in.UnitWeightLbs, in.UnitVolumeCuFt, in.ItemsPerHandlingUnit, in.CostPerItem)
}

func (s *Store) DeleteSupply(ctx context.Context, tenantID, supplyID uint64) error {
	return s.callExec(ctx, "delete_supply", tenantID, supplyID)
}

// ---- demand ----

func (s *Store) ViewDemand(ctx context.Context, tenantID uint64, q ViewQuery) ([]Demand, error) {
	rows, err := s.callView(ctx, "view_demand", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, demandFromRow), nil
}

func (s *Store) AddDemand(ctx context.Context, tenantID uint64, in NewDemand) (uint64, error) {
	return s.callID(ctx, "add_demand",
		tenantID, in.LocationID, in.ProductCode, in.QuantityNeeded, in.MaxPrice)
}

func (s *Store) DeleteDemand(ctx context.Context, tenantID, demandID uint64) error {
	return s.callExec(ctx, "delete_demand", tenantID, demandID)
}

// ---- routes ----

func (s *Store) ViewRoutes(ctx context.Context, tenantID uint64, q ViewQuery) ([]Route, error) {
	rows, err := s.callView(ctx, "view_routes", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, routeFromRow), nil
}

func (s *Store) AddRoute(ctx context.Context, tenantID uint64, in NewRoute) (uint64, error) {
	return s.callID(ctx, "add_route", tenantID, in.Name, in.OriginLocationID, in.DestLocationID)
}

func (s *Store) DeleteRoute(ctx context.Context, tenantID, routeID uint64) error {
	return s.callExec(ctx, "delete_route", tenantID, routeID)
}

// ---- scenarios ----

func (s *Store) ViewScenarios(ctx context.Context, tenantID uint64, q ViewQuery) ([]Scenario, error) {
	rows, err := s.callView(ctx, "view_scenarios", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, scenarioFromRow), nil
}

func (s *Store) AddScenario(ctx context.Context, tenantID uint64, in NewScenario) (uint64, error) {
	if in.RouteID == 0 {
		return 0, fmt.Errorf("%w: route_id is required", ErrValidation)
	}
	return s.callID(ctx, "add_scenario",
		tenantID, in.RouteID, in.VehicleID, in.DriverID, in.RunDate,
		in.SnapshotDriverWage, in.SnapshotDriverLoadWage, in.SnapshotVehicleMPG,
		in.SnapshotGasPrice, in.SnapshotDailyInsurance, in.SnapshotDailyMaintenance,
		in.SnapshotPlannedLoadMinutes, in.SnapshotPlannedUnloadMinutes,
		in.ActualLoadMinutes, in.ActualUnloadMinutes, in.TotalRevenue)
}

// UpdateScenario applies a partial update to a scenario header; the
// procedure returns the updated row.
func (s *Store) UpdateScenario(ctx context.Context, tenantID, scenarioID uint64, in ScenarioUpdate) (Scenario, error) {
	if scenarioID == 0 {
		return Scenario{}, fmt.Errorf("%w: scenario_id is required", ErrValidation)
	}
	rows, err := s.callRows(ctx, "update_scenario",
		tenantID, scenarioID, in.RouteID, in.VehicleID, in.DriverID,
		in.RunDate, in.GasPrice, in.TotalRevenue)
	if err != nil {
		return Scenario{}, err
	}
	if len(rows) == 0 {
		return Scenario{}, fmt.Errorf("update_scenario: %w", ErrStorage)
	}
	return scenarioFromRow(rows[0]), nil
}

func (s *Store) DeleteScenario(ctx context.Context, tenantID, scenarioID uint64) error {
	return s.callExec(ctx, "delete_scenario", tenantID, scenarioID)
}

// DeletePlan removes a scenario header together with its manifest items.
func (s *Store) DeletePlan(ctx context.Context, tenantID, scenarioID uint64) error {
	return s.callExec(ctx, "delete_plan", tenantID, scenarioID)
}

// ---- manifest items ----

func (s *Store) ViewManifestItems(ctx context.Context, tenantID uint64, q ViewQuery) ([]ManifestItem, error) {
	rows, err := s.callView(ctx, "view_manifest_items", tenantID, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, manifestItemFromRow), nil
}

func (s *Store) AddManifestItem(ctx context.Context, tenantID, scenarioID uint64, in NewManifestItem) (uint64, error) {
	if scenarioID == 0 {
		return 0, fmt.Errorf("%w: scenario_id is required", ErrValidation)
	}
	return s.callID(ctx, "add_manifest_item",
		tenantID, scenarioID, in.ItemName, in.QuantityLoaded, in.SupplyID, in.DemandID,
		in.SnapshotCost, in.SnapshotPerUnit, in.SnapshotWeight, in.SnapshotVolume,
		in.SnapshotUnitPrice)
}

func (s *Store) DeleteManifestItem(ctx context.Context, tenantID, itemID uint64) error {
	return s.callExec(ctx, "delete_manifest_item", tenantID, itemID)
}
