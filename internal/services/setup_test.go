package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper"
	"github.com/ehealth-ke/facility-registry/internal/repository"
)

// capturedEvent is one message handed to the fake producer.
type capturedEvent struct {
	Key   string
	Value []byte
}

type fakeProducer struct {
	events []capturedEvent
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.events = append(p.events, capturedEvent{Key: string(key), Value: value})
	return nil
}

func (p *fakeProducer) keys() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Key)
	}
	return out
}

// testEnv wires every service against one in-memory database, the way
// the server does at boot.
type testEnv struct {
	db         *gorm.DB
	producer   *fakeProducer
	auth       helper.Auth
	users      UserService
	regions    RegionService
	catalogs   CatalogService
	facilities FacilityService
	dashboards DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.RegistryModels()...))

	floors := repository.CodeFloors{domain.SequenceFacility: 10000}

	userRepo := repository.NewUserRepository(db)
	regionRepo := repository.NewRegionRepository(db, floors)
	catalogRepo := repository.NewCatalogRepository(db, floors)
	facilityRepo := repository.NewFacilityRepository(db, floors)
	updateRepo := repository.NewFacilityUpdateRepository(db)
	dashRepo := repository.NewDashboardRepository(db)

	log := zerolog.Nop()
	auth := helper.SetupAuth("test-secret")
	producer := &fakeProducer{}

	return &testEnv{
		db:         db,
		producer:   producer,
		auth:       auth,
		users:      NewUserService(userRepo, regionRepo, catalogRepo, auth, log),
		regions:    NewRegionService(regionRepo, userRepo, log),
		catalogs:   NewCatalogService(catalogRepo, log),
		facilities: NewFacilityService(facilityRepo, updateRepo, userRepo, regionRepo, catalogRepo, producer, log),
		dashboards: NewDashboardService(dashRepo, userRepo, log),
	}
}

// world is the reference data most service tests need: one region
// chain plus the catalog rows a facility hangs off.
type world struct {
	admin        *dto.UserResponse
	county       *dto.CountyResponse
	constituency *dto.ConstituencyResponse
	ward         *dto.WardResponse
	ownerType    *domain.OwnerType
	owner        *domain.Owner
	facilityType *domain.FacilityType
	status       *domain.FacilityStatus
	category     *domain.ServiceCategory
	service      *domain.Service
	contactType  *domain.ContactType
	regStatus    *domain.RegulationStatus
	body         *domain.RegulatingBody
}

func seedWorld(t *testing.T, env *testEnv) *world {
	t.Helper()

	admin := registerUser(t, env, "admin@ehealth.or.ke", true)
	actor := admin.ID

	county, err := env.regions.CreateCounty(dto.CreateCountyRequest{Name: "Nakuru"}, actor)
	require.NoError(t, err)
	constituency, err := env.regions.CreateConstituency(dto.CreateConstituencyRequest{Name: "Naivasha", County: county.ID}, actor)
	require.NoError(t, err)
	ward, err := env.regions.CreateWard(dto.CreateWardRequest{Name: "Biashara", Constituency: constituency.ID}, actor)
	require.NoError(t, err)

	ownerType, err := env.catalogs.CreateOwnerType(dto.CreateCatalogEntryRequest{Name: "Ministry of Health"}, actor)
	require.NoError(t, err)
	owner, err := env.catalogs.CreateOwner(dto.CreateOwnerRequest{Name: "County Government of Nakuru", OwnerType: ownerType.ID}, actor)
	require.NoError(t, err)
	facilityType, err := env.catalogs.CreateFacilityType(dto.CreateFacilityTypeRequest{Name: "Dispensary"}, actor)
	require.NoError(t, err)
	status, err := env.catalogs.CreateFacilityStatus(dto.CreateCatalogEntryRequest{Name: "Operational"}, actor)
	require.NoError(t, err)
	category, err := env.catalogs.CreateServiceCategory(dto.CreateCatalogEntryRequest{Name: "Outpatient"}, actor)
	require.NoError(t, err)
	service, err := env.catalogs.CreateService(dto.CreateServiceRequest{Name: "General consultation", Category: category.ID}, actor)
	require.NoError(t, err)
	contactType, err := env.catalogs.CreateContactType(dto.CreateCatalogEntryRequest{Name: "Mobile"}, actor)
	require.NoError(t, err)
	regStatus, err := env.catalogs.CreateRegulationStatus(dto.CreateCatalogEntryRequest{Name: "Fully licensed"}, actor)
	require.NoError(t, err)
	body, err := env.catalogs.CreateRegulatingBody(dto.CreateRegulatingBodyRequest{Name: "Medical Practitioners Board", Abbreviation: "MPDB"}, actor)
	require.NoError(t, err)

	return &world{
		admin:        admin,
		county:       county,
		constituency: constituency,
		ward:         ward,
		ownerType:    ownerType,
		owner:        owner,
		facilityType: facilityType,
		status:       status,
		category:     category,
		service:      service,
		contactType:  contactType,
		regStatus:    regStatus,
		body:         body,
	}
}

func registerUser(t *testing.T, env *testEnv, email string, national bool) *dto.UserResponse {
	t.Helper()
	u, err := env.users.Register(dto.CreateUserRequest{
		Email:      email,
		Password:   "changeme1",
		FirstName:  "Test",
		LastName:   "User",
		IsNational: national,
	}, uuid.Nil)
	require.NoError(t, err)
	return u
}

// countyUser registers a non-national user and scopes them to a county.
func countyUser(t *testing.T, env *testEnv, email string, countyID, actorID uuid.UUID) *dto.UserResponse {
	t.Helper()
	u := registerUser(t, env, email, false)
	_, err := env.users.AssignCounty(dto.AssignCountyRequest{User: u.ID, County: countyID}, actorID)
	require.NoError(t, err)
	return u
}

func createFacility(t *testing.T, env *testEnv, w *world, name string, actorID uuid.UUID) *dto.FacilityResponse {
	t.Helper()
	fac, err := env.facilities.Create(dto.CreateFacilityRequest{
		Name:            name,
		Ward:            w.ward.ID,
		Owner:           w.owner.ID,
		FacilityType:    &w.facilityType.ID,
		OperationStatus: &w.status.ID,
	}, actorID)
	require.NoError(t, err)
	return fac
}

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }
func boolp(b bool) *bool    { return &b }
