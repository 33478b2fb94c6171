package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

func TestRegionRepository_CreateCounty_AssignsSequentialCodes(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)
	actor := uuid.New()

	first := domain.County{Name: "Nakuru"}
	first.Stamp(actor)
	require.NoError(t, regions.CreateCounty(&first))

	second := domain.County{Name: "Kisumu"}
	second.Stamp(actor)
	require.NoError(t, regions.CreateCounty(&second))

	assert.Equal(t, int64(1), first.Code)
	assert.Equal(t, int64(2), second.Code)
}

func TestRegionRepository_CreateCounty_KeepsExplicitCode(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)

	county := domain.County{Name: "Mombasa", Code: 1}
	county.Stamp(uuid.New())
	require.NoError(t, regions.CreateCounty(&county))

	assert.Equal(t, int64(1), county.Code)
}

func TestRegionRepository_FindWard_PreloadsChain(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)
	actor := uuid.New()
	seed := seedRegionChain(t, db, actor, "Naivasha")

	ward, err := regions.FindWard(seed.Ward.ID)
	require.NoError(t, err)

	require.NotNil(t, ward.Constituency)
	require.NotNil(t, ward.Constituency.County)
	assert.Equal(t, "Naivasha Constituency", ward.Constituency.Name)
	assert.Equal(t, "Naivasha County", ward.Constituency.County.Name)

	countyID := ward.CountyID()
	require.NotNil(t, countyID)
	assert.Equal(t, seed.County.ID, *countyID)
}

func TestRegionRepository_ListCounties_ScopeNarrows(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)
	actor := uuid.New()

	home := seedRegionChain(t, db, actor, "Nakuru")
	seedRegionChain(t, db, actor, "Kisumu")

	national, err := regions.ListCounties(domain.Scope{National: true})
	require.NoError(t, err)
	assert.Len(t, national, 2)

	scoped, err := regions.ListCounties(domain.Scope{CountyID: &home.County.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, home.County.ID, scoped[0].ID)
}

func TestRegionRepository_ListConstituencies_Filters(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)
	actor := uuid.New()

	home := seedRegionChain(t, db, actor, "Nakuru")
	away := seedRegionChain(t, db, actor, "Kisumu")

	byCounty, err := regions.ListConstituencies(domain.Scope{National: true}, &home.County.ID)
	require.NoError(t, err)
	require.Len(t, byCounty, 1)
	assert.Equal(t, home.Constituency.ID, byCounty[0].ID)

	countyScoped, err := regions.ListConstituencies(domain.Scope{CountyID: &away.County.ID}, nil)
	require.NoError(t, err)
	require.Len(t, countyScoped, 1)
	assert.Equal(t, away.Constituency.ID, countyScoped[0].ID)

	consScoped, err := regions.ListConstituencies(domain.Scope{ConstituencyID: &home.Constituency.ID}, nil)
	require.NoError(t, err)
	require.Len(t, consScoped, 1)
	assert.Equal(t, home.Constituency.ID, consScoped[0].ID)
}

func TestRegionRepository_ListWards_ScopeByCounty(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)
	actor := uuid.New()

	home := seedRegionChain(t, db, actor, "Nakuru")
	seedRegionChain(t, db, actor, "Kisumu")

	wards, err := regions.ListWards(domain.Scope{CountyID: &home.County.ID}, nil)
	require.NoError(t, err)
	require.Len(t, wards, 1)
	assert.Equal(t, home.Ward.ID, wards[0].ID)

	all, err := regions.ListWards(domain.Scope{National: true}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegionRepository_UpdateCounty_Rename(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)
	actor := uuid.New()
	seed := seedRegionChain(t, db, actor, "Nakuru")

	renamed, err := regions.UpdateCounty(seed.County.ID, map[string]any{
		"name":          "Nakuru County Government",
		"updated_by_id": actor,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nakuru County Government", renamed.Name)
	assert.Equal(t, seed.County.Code, renamed.Code)
}

func TestRegionRepository_UpdateWard_MissingRow(t *testing.T) {
	db := openTestDB(t)
	regions := NewRegionRepository(db, nil)

	_, err := regions.UpdateWard(uuid.New(), map[string]any{"name": "Ghost Ward"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
