package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

func TestDashboardRepository_FacilityCounts(t *testing.T) {
	db := openTestDB(t)
	dash := NewDashboardRepository(db)
	actor := uuid.New()

	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	kisumu := seedRegionChain(t, db, actor, "Kisumu")
	cat := seedCatalog(t, db, actor, "Shared")

	old := seedFacility(t, db, actor, "Old Dispensary", nakuru.Ward.ID, cat.Owner.ID)
	seedFacility(t, db, actor, "Fresh Dispensary", nakuru.Ward.ID, cat.Owner.ID)
	seedFacility(t, db, actor, "Lakeside Clinic", kisumu.Ward.ID, cat.Owner.ID)

	require.NoError(t, db.Model(&domain.Facility{}).
		Where("id = ?", old.ID).
		UpdateColumn("created", time.Now().UTC().Add(-48*time.Hour)).Error)

	national := domain.Scope{National: true}
	countyScope := domain.Scope{CountyID: &nakuru.County.ID}

	total, err := dash.TotalFacilities(national)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	total, err = dash.TotalFacilities(countyScope)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	recent, err := dash.RecentlyCreated(national, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 2, recent)

	recent, err = dash.RecentlyCreated(countyScope, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, recent)
}

func TestDashboardRepository_CountySummary(t *testing.T) {
	db := openTestDB(t)
	dash := NewDashboardRepository(db)
	actor := uuid.New()

	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	seedRegionChain(t, db, actor, "Kisumu")
	cat := seedCatalog(t, db, actor, "Shared")

	seedFacility(t, db, actor, "Biashara Dispensary", nakuru.Ward.ID, cat.Owner.ID)
	seedFacility(t, db, actor, "Milimani Clinic", nakuru.Ward.ID, cat.Owner.ID)

	rows, err := dash.CountySummary()
	require.NoError(t, err)

	// counties without a single facility still get a row
	require.Len(t, rows, 2)
	assert.Equal(t, NameCount{Name: "Kisumu County", Count: 0}, rows[0])
	assert.Equal(t, NameCount{Name: "Nakuru County", Count: 2}, rows[1])
}

func TestDashboardRepository_ConstituenciesSummary(t *testing.T) {
	db := openTestDB(t)
	dash := NewDashboardRepository(db)
	regions := NewRegionRepository(db, testFloors)
	actor := uuid.New()

	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	kisumu := seedRegionChain(t, db, actor, "Kisumu")
	cat := seedCatalog(t, db, actor, "Shared")

	molo := domain.Constituency{Name: "Molo Constituency", CountyID: nakuru.County.ID}
	molo.Stamp(actor)
	require.NoError(t, regions.CreateConstituency(&molo))

	seedFacility(t, db, actor, "Biashara Dispensary", nakuru.Ward.ID, cat.Owner.ID)
	seedFacility(t, db, actor, "Lakeside Clinic", kisumu.Ward.ID, cat.Owner.ID)

	rows, err := dash.ConstituenciesSummary(nakuru.County.ID, domain.Scope{National: true})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, NameCount{Name: "Molo Constituency", Count: 0}, rows[0])
	assert.Equal(t, NameCount{Name: "Nakuru Constituency", Count: 1}, rows[1])
}

func TestDashboardRepository_WardsSummary(t *testing.T) {
	db := openTestDB(t)
	dash := NewDashboardRepository(db)
	regions := NewRegionRepository(db, testFloors)
	actor := uuid.New()

	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	cat := seedCatalog(t, db, actor, "Shared")

	molo := domain.Ward{Name: "Molo Ward", ConstituencyID: nakuru.Constituency.ID}
	molo.Stamp(actor)
	require.NoError(t, regions.CreateWard(&molo))

	seedFacility(t, db, actor, "Biashara Dispensary", nakuru.Ward.ID, cat.Owner.ID)

	rows, err := dash.WardsSummary(nakuru.Constituency.ID, domain.Scope{National: true})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, NameCount{Name: "Molo Ward", Count: 0}, rows[0])
	assert.Equal(t, NameCount{Name: "Nakuru Ward", Count: 1}, rows[1])
}

func TestDashboardRepository_OwnersSummary(t *testing.T) {
	db := openTestDB(t)
	dash := NewDashboardRepository(db)
	facilities := NewFacilityRepository(db, testFloors)
	catalogs := NewCatalogRepository(db, testFloors)
	actor := uuid.New()

	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	kisumu := seedRegionChain(t, db, actor, "Kisumu")
	cat := seedCatalog(t, db, actor, "Shared")

	mission := domain.Owner{Name: "Mission Owner", OwnerTypeID: cat.OwnerType.ID}
	mission.Stamp(actor)
	require.NoError(t, catalogs.CreateOwner(&mission))

	seedFacility(t, db, actor, "Biashara Dispensary", nakuru.Ward.ID, cat.Owner.ID)

	regulated := &domain.Facility{
		Name:             "Lakeside Clinic",
		WardID:           kisumu.Ward.ID,
		OwnerID:          mission.ID,
		RegulatoryBodyID: &cat.RegulatoryBody.ID,
	}
	regulated.Stamp(actor)
	require.NoError(t, facilities.Create(regulated, nil))

	t.Run("national sees every owner", func(t *testing.T) {
		rows, err := dash.OwnersSummary(domain.Scope{National: true})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, NameCount{Name: "Mission Owner", Count: 1}, rows[0])
		assert.Equal(t, NameCount{Name: "Shared Owner", Count: 1}, rows[1])
	})

	t.Run("county scope zeroes owners outside it", func(t *testing.T) {
		// the restriction lives in the join, so the owner keeps its row
		rows, err := dash.OwnersSummary(domain.Scope{CountyID: &nakuru.County.ID})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, NameCount{Name: "Mission Owner", Count: 0}, rows[0])
		assert.Equal(t, NameCount{Name: "Shared Owner", Count: 1}, rows[1])
	})

	t.Run("regulatory body scope counts only its facilities", func(t *testing.T) {
		rows, err := dash.OwnersSummary(domain.Scope{RegulatoryBodyID: &cat.RegulatoryBody.ID})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, NameCount{Name: "Mission Owner", Count: 1}, rows[0])
		assert.Equal(t, NameCount{Name: "Shared Owner", Count: 0}, rows[1])
	})
}

func TestDashboardRepository_OwnerTypesSummary(t *testing.T) {
	db := openTestDB(t)
	dash := NewDashboardRepository(db)
	catalogs := NewCatalogRepository(db, testFloors)
	actor := uuid.New()

	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	cat := seedCatalog(t, db, actor, "Public")

	faith := domain.OwnerType{Name: "Faith Based"}
	faith.Stamp(actor)
	require.NoError(t, catalogs.CreateOwnerType(&faith))

	seedFacility(t, db, actor, "Biashara Dispensary", nakuru.Ward.ID, cat.Owner.ID)

	rows, err := dash.OwnerTypesSummary(domain.Scope{National: true})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, NameCount{Name: "Faith Based", Count: 0}, rows[0])
	assert.Equal(t, NameCount{Name: "Public Ministry", Count: 1}, rows[1])
}

func TestDashboardRepository_TypeAndStatusSummaries(t *testing.T) {
	db := openTestDB(t)
	dash := NewDashboardRepository(db)
	facilities := NewFacilityRepository(db, testFloors)
	catalogs := NewCatalogRepository(db, testFloors)
	actor := uuid.New()

	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	cat := seedCatalog(t, db, actor, "Main")

	referral := domain.FacilityType{Name: "Referral Hospital"}
	referral.Stamp(actor)
	require.NoError(t, catalogs.CreateFacilityType(&referral))

	closed := domain.FacilityStatus{Name: "Closed"}
	closed.Stamp(actor)
	require.NoError(t, catalogs.CreateFacilityStatus(&closed))

	fac := &domain.Facility{
		Name:              "Biashara Dispensary",
		WardID:            nakuru.Ward.ID,
		OwnerID:           cat.Owner.ID,
		FacilityTypeID:    &cat.FacilityType.ID,
		OperationStatusID: &cat.OperationStatus.ID,
	}
	fac.Stamp(actor)
	require.NoError(t, facilities.Create(fac, nil))

	types, err := dash.TypesSummary(domain.Scope{National: true})
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, NameCount{Name: "Main Dispensary", Count: 1}, types[0])
	assert.Equal(t, NameCount{Name: "Referral Hospital", Count: 0}, types[1])

	statuses, err := dash.StatusSummary(domain.Scope{National: true})
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, NameCount{Name: "Closed", Count: 0}, statuses[0])
	assert.Equal(t, NameCount{Name: "Main Operational", Count: 1}, statuses[1])
}
