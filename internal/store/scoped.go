package store

import (
	"context"

	"github.com/jterrell/freightplan/internal/auth"
)

// Scoped is the tenant-scoping adapter. It exposes the same operations
// as Store minus the tenant argument, which it reads from the verified
// identity in the request context. A missing identity fails the call
// before any database round-trip: a scoped operation outside a
// gatekeepered request is a programming error, and defaulting to some
// fallback tenant would be a data breach, not a convenience.
type Scoped struct {
	st *Store
}

func NewScoped(st *Store) *Scoped {
	return &Scoped{st: st}
}

func (s *Scoped) tenant(ctx context.Context) (uint64, error) {
	id, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return id.TenantID, nil
}

func (s *Scoped) Locations(ctx context.Context, q ViewQuery) ([]Location, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewLocations(ctx, tid, q)
}

func (s *Scoped) AddLocation(ctx context.Context, in NewLocation) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddLocation(ctx, tid, in)
}

func (s *Scoped) DeleteLocation(ctx context.Context, locationID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteLocation(ctx, tid, locationID)
}

func (s *Scoped) Products(ctx context.Context, q ViewQuery) ([]Product, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewProducts(ctx, tid, q)
}

func (s *Scoped) AddProduct(ctx context.Context, in NewProduct) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddProduct(ctx, tid, in)
}

func (s *Scoped) DeleteProduct(ctx context.Context, productCode string) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteProduct(ctx, tid, productCode)
}

func (s *Scoped) Drivers(ctx context.Context, q ViewQuery) ([]Driver, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewDrivers(ctx, tid, q)
}

func (s *Scoped) AddDriver(ctx context.Context, in NewDriver) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddDriver(ctx, tid, in)
}

func (s *Scoped) DeleteDriver(ctx context.Context, driverID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteDriver(ctx, tid, driverID)
}

func (s *Scoped) Vehicles(ctx context.Context, q ViewQuery) ([]Vehicle, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewVehicles(ctx, tid, q)
}

func (s *Scoped) AddVehicle(ctx context.Context, in NewVehicle) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddVehicle(ctx, tid, in)
}

func (s *Scoped) DeleteVehicle(ctx context.Context, vehicleID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteVehicle(ctx, tid, vehicleID)
}

func (s *Scoped) Entities(ctx context.Context, q ViewQuery) ([]Entity, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewEntities(ctx, tid, q)
}

func (s *Scoped) AddEntity(ctx context.Context, in NewEntity) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddEntity(ctx, tid, in)
}

func (s *Scoped) DeleteEntity(ctx context.Context, entityID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteEntity(ctx, tid, entityID)
}

func (s *Scoped) Supply(ctx context.Context, q ViewQuery) ([]Supply, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewSupply(ctx, tid, q)
}

func (s *Scoped) AddSupply(ctx context.Context, in NewSupply) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddSupply(ctx, tid, in)
}

func (s *Scoped) DeleteSupply(ctx context.Context, supplyID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteSupply(ctx, tid, supplyID)
}

func (s *Scoped) Demand(ctx context.Context, q ViewQuery) ([]Demand, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewDemand(ctx, tid, q)
}

func (s *Scoped) AddDemand(ctx context.Context, in NewDemand) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddDemand(ctx, tid, in)
}

func (s *Scoped) DeleteDemand(ctx context.Context, demandID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteDemand(ctx, tid, demandID)
}

func (s *Scoped) Routes(ctx context.Context, q ViewQuery) ([]Route, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewRoutes(ctx, tid, q)
}

func (s *Scoped) AddRoute(ctx context.Context, in NewRoute) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddRoute(ctx, tid, in)
}

func (s *Scoped) DeleteRoute(ctx context.Context, routeID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteRoute(ctx, tid, routeID)
}

func (s *Scoped) Scenarios(ctx context.Context, q ViewQuery) ([]Scenario, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewScenarios(ctx, tid, q)
}

func (s *Scoped) AddScenario(ctx context.Context, in NewScenario) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddScenario(ctx, tid, in)
}

func (s *Scoped) UpdateScenario(ctx context.Context, scenarioID uint64, in ScenarioUpdate) (Scenario, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return Scenario{}, err
	}
	return s.st.UpdateScenario(ctx, tid, scenarioID, in)
}

func (s *Scoped) DeleteScenario(ctx context.Context, scenarioID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteScenario(ctx, tid, scenarioID)
}

func (s *Scoped) DeletePlan(ctx context.Context, scenarioID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeletePlan(ctx, tid, scenarioID)
}

func (s *Scoped) ManifestItems(ctx context.Context, q ViewQuery) ([]ManifestItem, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.st.ViewManifestItems(ctx, tid, q)
}

func (s *Scoped) AddManifestItem(ctx context.Context, scenarioID uint64, in NewManifestItem) (uint64, error) {
	tid, err := s.tenant(ctx)
	if err != nil {
		return 0, err
	}
	return s.st.AddManifestItem(ctx, tid, scenarioID, in)
}

func (s *Scoped) DeleteManifestItem(ctx context.Context, itemID uint64) error {
	tid, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return s.st.DeleteManifestItem(ctx, tid, itemID)
}
