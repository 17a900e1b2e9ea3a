package store

import "strconv"

// Typed records for each tenant-owned entity, built from view-call rows
// at the store boundary. When a caller projects a subset of columns the
// unselected fields stay at their zero values.

type Location struct {
	ID               uint64  `json:"location_id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	AddressStreet    string  `json:"address_street"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zip_code"`
	Phone            string  `json:"phone"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	AvgLoadMinutes   int     `json:"avg_load_minutes"`
	AvgUnloadMinutes int     `json:"avg_unload_minutes"`
}

type Product struct {
	Code        string `json:"product_code"`
	Name        string `json:"name"`
	StorageType string `json:"storage_type"`
}

type Driver struct {
	ID              uint64  `json:"driver_id"`
	Name            string  `json:"name"`
	HourlyDriveWage float64 `json:"hourly_drive_wage"`
	HourlyLoadWage  float64 `json:"hourly_load_wage"`
}

type Vehicle struct {
	ID                    uint64  `json:"vehicle_id"`
	Name                  string  `json:"name"`
	MPG                   float64 `json:"mpg"`
	DepreciationPerMile   float64 `json:"depreciation_per_mile"`
	AnnualInsuranceCost   float64 `json:"annual_insurance_cost"`
	AnnualMaintenanceCost float64 `json:"annual_maintenance_cost"`
	MaxWeightLbs          float64 `json:"max_weight_lbs"`
	MaxVolumeCubicFt      float64 `json:"max_volume_cubic_ft"`
	StorageType           string  `json:"storage_type"`
}

// Entity is a trading partner (supplier or buyer) that supply records
// reference.
type Entity struct {
	ID        uint64  `json:"entity_id"`
	Name      string  `json:"name"`
	MinProfit float64 `json:"entity_min_profit"`
}

type Supply struct {
	ID                   uint64  `json:"supply_id"`
	EntityID             uint64  `json:"entity_id"`
	LocationID           uint64  `json:"location_id"`
	ProductCode          string  `json:"product_code"`
	QuantityAvailable    float64 `json:"quantity_available"`
	UnitWeightLbs        float64 `json:"unit_weight_lbs"`
	UnitVolumeCuFt       float64 `json:"unit_volume_cu_ft"`
	ItemsPerHandlingUnit int     `json:"items_per_handling_unit"`
	CostPerItem          float64 `json:"cost_per_item"`
}

type Demand struct {
	ID             uint64  `json:"demand_id"`
	LocationID     uint64  `json:"location_id"`
	ProductCode    string  `json:"product_code"`
	QuantityNeeded float64 `json:"quantity_needed"`
	MaxPrice       float64 `json:"max_price"`
}

type Route struct {
	ID               uint64 `json:"route_id"`
	Name             string `json:"name"`
	OriginLocationID uint64 `json:"origin_location_id"`
	DestLocationID   uint64 `json:"dest_location_id"`
}

type Scenario struct {
	ID                           uint64  `json:"scenario_id"`
	RouteID                      uint64  `json:"route_id"`
	VehicleID                    uint64  `json:"vehicle_id"`
	DriverID                     uint64  `json:"driver_id"`
	RunDate                      string  `json:"run_date"`
	SnapshotDriverWage           float64 `json:"snapshot_driver_wage"`
	SnapshotDriverLoadWage       float64 `json:"snapshot_driver_load_wage"`
	SnapshotVehicleMPG           float64 `json:"snapshot_vehicle_mpg"`
	SnapshotGasPrice             float64 `json:"snapshot_gas_price"`
	SnapshotDailyInsurance       float64 `json:"snapshot_daily_insurance"`
	SnapshotDailyMaintenance     float64 `json:"snapshot_daily_maintenance_cost"`
	SnapshotPlannedLoadMinutes   int     `json:"snapshot_planned_load_minutes"`
	SnapshotPlannedUnloadMinutes int     `json:"snapshot_planned_unload_minutes"`
	ActualLoadMinutes            int     `json:"actual_load_minutes"`
	ActualUnloadMinutes          int     `json:"actual_unload_minutes"`
	TotalRevenue                 float64 `json:"snapshot_total_revenue"`
}

type ManifestItem struct {
	ID                uint64  `json:"manifest_item_id"`
	ScenarioID        uint64  `json:"scenario_id"`
	ItemName          string  `json:"item_name"`
	QuantityLoaded    float64 `json:"quantity_loaded"`
	SupplyID          uint64  `json:"supply_id"`
	DemandID          uint64  `json:"demand_id"`
	SnapshotCost      float64 `json:"snapshot_cost_per_item"`
	SnapshotPerUnit   int     `json:"snapshot_items_per_unit"`
	SnapshotWeight    float64 `json:"snapshot_unit_weight"`
	SnapshotVolume    float64 `json:"snapshot_unit_volume"`
	SnapshotUnitPrice float64 `json:"snapshot_price_per_item"`
}

// ---- row coercion helpers ----

func rowString(r Row, col string) string {
	if v, ok := r[col]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func rowUint(r Row, col string) uint64 {
	v, ok := r[col]
	if !ok || v == nil {
		return 0
	}
	if n, ok := toUint64(v); ok {
		return n
	}
	return 0
}

func rowInt(r Row, col string) int {
	return int(rowUint(r, col))
}

func rowFloat(r Row, col string) float64 {
	v, ok := r[col]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}

// ---- record constructors ----

func locationFromRow(r Row) Location {
	return Location{
		ID:               rowUint(r, "location_id"),
		Name:             rowString(r, "name"),
		Type:             rowString(r, "type"),
		AddressStreet:    rowString(r, "address_street"),
		City:             rowString(r, "city"),
		State:            rowString(r, "state"),
		ZipCode:          rowString(r, "zip_code"),
		Phone:            rowString(r, "phone"),
		Latitude:         rowFloat(r, "latitude"),
		Longitude:        rowFloat(r, "longitude"),
		AvgLoadMinutes:   rowInt(r, "avg_load_minutes"),
		AvgUnloadMinutes: rowInt(r, "avg_unload_minutes"),
	}
}

func productFromRow(r Row) Product {
	return Product{
		Code:        rowString(r, "product_code"),
		Name:        rowString(r, "name"),
		StorageType: rowString(r, "storage_type"),
	}
}

func driverFromRow(r Row) Driver {
	return Driver{
		ID:              rowUint(r, "driver_id"),
		Name:            rowString(r, "name"),
		HourlyDriveWage: rowFloat(r, "hourly_drive_wage"),
		HourlyLoadWage:  rowFloat(r, "hourly_load_wage"),
	}
}

func vehicleFromRow(r Row) Vehicle {
	return Vehicle{
		ID:                    rowUint(r, "vehicle_id"),
		Name:                  rowString(r, "name"),
		MPG:                   rowFloat(r, "mpg"),
		DepreciationPerMile:   rowFloat(r, "depreciation_per_mile"),
		AnnualInsuranceCost:   rowFloat(r, "annual_insurance_cost"),
		AnnualMaintenanceCost: rowFloat(r, "annual_maintenance_cost"),
		MaxWeightLbs:          rowFloat(r, "max_weight_lbs"),
		MaxVolumeCubicFt:      rowFloat(r, "max_volume_cubic_ft"),
		StorageType:           rowString(r, "storage_type"),
	}
}

func entityFromRow(r Row) Entity {
	return Entity{
		ID:        rowUint(r, "entity_id"),
		Name:      rowString(r, "name"),
		MinProfit: rowFloat(r, "entity_min_profit"),
	}
}

func supplyFromRow(r Row) Supply {
	return Supply{
		ID:                   rowUint(r, "supply_id"),
		EntityID:             rowUint(r, "entity_id"),
		LocationID:           rowUint(r, "location_id"),
		ProductCode:          rowString(r, "product_code"),
		QuantityAvailable:    rowFloat(r, "quantity_available"),
		UnitWeightLbs:        rowFloat(r, "unit_weight_lbs"),
		UnitVolumeCuFt:       rowFloat(r, "unit_volume_cu_ft"),
		ItemsPerHandlingUnit: rowInt(r, "items_per_handling_unit"),
		CostPerItem:          rowFloat(r, "cost_per_item"),
	}
}

func demandFromRow(r Row) Demand {
	return Demand{
		ID:             rowUint(r, "demand_id"),
		LocationID:     rowUint(r, "location_id"),
		ProductCode:    rowString(r, "product_code"),
		QuantityNeeded: rowFloat(r, "quantity_needed"),
		MaxPrice:       rowFloat(r, "max_price"),
	}
}

func routeFromRow(r Row) Route {
	return Route{
		ID:               rowUint(r, "route_id"),
		Name:             rowString(r, "name"),
		OriginLocationID: rowUint(r, "origin_location_id"),
		DestLocationID:   rowUint(r, "dest_location_id"),
	}
}

func scenarioFromRow(r Row) Scenario {
	return Scenario{
		ID:                           rowUint(r, "scenario_id"),
		RouteID:                      rowUint(r, "route_id"),
		VehicleID:                    rowUint(r, "vehicle_id"),
		DriverID:                     rowUint(r, "driver_id"),
		RunDate:                      rowString(r, "run_date"),
		SnapshotDriverWage:           rowFloat(r, "snapshot_driver_wage"),
		SnapshotDriverLoadWage:       rowFloat(r, "snapshot_driver_load_wage"),
		SnapshotVehicleMPG:           rowFloat(r, "snapshot_vehicle_mpg"),
		SnapshotGasPrice:             rowFloat(r, "snapshot_gas_price"),
		SnapshotDailyInsurance:       rowFloat(r, "snapshot_daily_insurance"),
		SnapshotDailyMaintenance:     rowFloat(r, "snapshot_daily_maintenance_cost"),
		SnapshotPlannedLoadMinutes:   rowInt(r, "snapshot_planned_load_minutes"),
		SnapshotPlannedUnloadMinutes: rowInt(r, "snapshot_planned_unload_minutes"),
		ActualLoadMinutes:            rowInt(r, "actual_load_minutes"),
		ActualUnloadMinutes:          rowInt(r, "actual_unload_minutes"),
		TotalRevenue:                 rowFloat(r, "snapshot_total_revenue"),
	}
}

func manifestItemFromRow(r Row) ManifestItem {
	return ManifestItem{
		ID:                rowUint(r, "manifest_item_id"),
		ScenarioID:        rowUint(r, "scenario_id"),
		ItemName:          rowString(r, "item_name"),
		QuantityLoaded:    rowFloat(r, "quantity_loaded"),
		SupplyID:          rowUint(r, "supply_id"),
		DemandID:          rowUint(r, "demand_id"),
		SnapshotCost:      rowFloat(r, "snapshot_cost_per_item"),
		SnapshotPerUnit:   rowInt(r, "snapshot_items_per_unit"),
		SnapshotWeight:    rowFloat(r, "snapshot_unit_weight"),
		SnapshotVolume:    rowFloat(r, "snapshot_unit_volume"),
		SnapshotUnitPrice: rowFloat(r, "snapshot_price_per_item"),
	}
}

func mapRows[T any](rows []Row, f func(Row) T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, f(r))
	}
	return out
}
