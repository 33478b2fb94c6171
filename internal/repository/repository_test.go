package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

// testFloors mirrors the production facility code floor so tests catch
// codes leaking below it.
var testFloors = CodeFloors{
	domain.SequenceFacility: 10000,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.RegistryModels()...))
	return db
}

// regionSeed is one county -> constituency -> ward chain.
type regionSeed struct {
	County       domain.County
	Constituency domain.Constituency
	Ward         domain.Ward
}

func seedRegionChain(t *testing.T, db *gorm.DB, actor uuid.UUID, name string) regionSeed {
	t.Helper()
	regions := NewRegionRepository(db, testFloors)

	county := domain.County{Name: name + " County"}
	county.Stamp(actor)
	require.NoError(t, regions.CreateCounty(&county))

	cons := domain.Constituency{Name: name + " Constituency", CountyID: county.ID}
	cons.Stamp(actor)
	require.NoError(t, regions.CreateConstituency(&cons))

	ward := domain.Ward{Name: name + " Ward", ConstituencyID: cons.ID}
	ward.Stamp(actor)
	require.NoError(t, regions.CreateWard(&ward))

	return regionSeed{County: county, Constituency: cons, Ward: ward}
}

// catalogSeed is the minimum reference data a facility needs.
type catalogSeed struct {
	OwnerType        domain.OwnerType
	Owner            domain.Owner
	FacilityType     domain.FacilityType
	OperationStatus  domain.FacilityStatus
	RegulationStatus domain.RegulationStatus
	RegulatoryBody   domain.RegulatingBody
}

func seedCatalog(t *testing.T, db *gorm.DB, actor uuid.UUID, prefix string) catalogSeed {
	t.Helper()
	catalogs := NewCatalogRepository(db, testFloors)

	ownerType := domain.OwnerType{Name: prefix + " Ministry"}
	ownerType.Stamp(actor)
	require.NoError(t, catalogs.CreateOwnerType(&ownerType))

	owner := domain.Owner{Name: prefix + " Owner", OwnerTypeID: ownerType.ID}
	owner.Stamp(actor)
	require.NoError(t, catalogs.CreateOwner(&owner))

	facilityType := domain.FacilityType{Name: prefix + " Dispensary"}
	facilityType.Stamp(actor)
	require.NoError(t, catalogs.CreateFacilityType(&facilityType))

	status := domain.FacilityStatus{Name: prefix + " Operational"}
	status.Stamp(actor)
	require.NoError(t, catalogs.CreateFacilityStatus(&status))

	regStatus := domain.RegulationStatus{Name: prefix + " Licensed"}
	regStatus.Stamp(actor)
	require.NoError(t, catalogs.CreateRegulationStatus(&regStatus))

	body := domain.RegulatingBody{Name: prefix + " Board"}
	body.Stamp(actor)
	require.NoError(t, catalogs.CreateRegulatingBody(&body))

	return catalogSeed{
		OwnerType:        ownerType,
		Owner:            owner,
		FacilityType:     facilityType,
		OperationStatus:  status,
		RegulationStatus: regStatus,
		RegulatoryBody:   body,
	}
}

func seedFacility(t *testing.T, db *gorm.DB, actor uuid.UUID, name string, wardID, ownerID uuid.UUID) *domain.Facility {
	t.Helper()
	facilities := NewFacilityRepository(db, testFloors)

	fac := &domain.Facility{Name: name, WardID: wardID, OwnerID: ownerID}
	fac.Stamp(actor)
	require.NoError(t, facilities.Create(fac, nil))
	return fac
}

func seedUser(t *testing.T, db *gorm.DB, email string, national bool) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", IsNational: national}
	u.Stamp(uuid.New())
	require.NoError(t, db.Create(u).Error)
	return u
}
