package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

func TestUserRepository_AssignCounty_OneActiveAtATime(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	actor := uuid.New()

	user := seedUser(t, db, "sccho@nakuru.go.ke", false)
	nakuru := seedRegionChain(t, db, actor, "Nakuru")
	kisumu := seedRegionChain(t, db, actor, "Kisumu")

	first := &domain.UserCounty{UserID: user.ID, CountyID: nakuru.County.ID, IsActive: true}
	first.Stamp(actor)
	require.NoError(t, users.AssignCounty(first))

	second := &domain.UserCounty{UserID: user.ID, CountyID: kisumu.County.ID, IsActive: true}
	second.Stamp(actor)
	err := users.AssignCounty(second)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "county")

	// retiring the active assignment opens the slot
	require.NoError(t, users.UpdateUserCounty(first.ID, map[string]any{
		"is_active":     false,
		"updated_by_id": actor,
	}))
	second.ID = uuid.Nil
	second.Stamp(actor)
	require.NoError(t, users.AssignCounty(second))

	assignments, err := users.ListUserCounties(&user.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}

func TestUserRepository_AssignConstituency_OneActiveAtATime(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	actor := uuid.New()

	user := seedUser(t, db, "dhrio@naivasha.go.ke", false)
	seed := seedRegionChain(t, db, actor, "Nakuru")

	first := &domain.UserConstituency{UserID: user.ID, ConstituencyID: seed.Constituency.ID, IsActive: true}
	first.Stamp(actor)
	require.NoError(t, users.AssignConstituency(first))

	second := &domain.UserConstituency{UserID: user.ID, ConstituencyID: seed.Constituency.ID, IsActive: true}
	second.Stamp(actor)
	err := users.AssignConstituency(second)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "constituency")
}

func TestUserRepository_ScopeFor_National(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	user := seedUser(t, db, "registrar@ehealth.or.ke", true)

	scope, err := users.ScopeFor(user.ID)
	require.NoError(t, err)
	assert.True(t, scope.National)
	assert.Nil(t, scope.CountyID)
}

func TestUserRepository_ScopeFor_CountyAssignment(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	actor := uuid.New()

	user := seedUser(t, db, "sccho@nakuru.go.ke", false)
	seed := seedRegionChain(t, db, actor, "Nakuru")

	uc := &domain.UserCounty{UserID: user.ID, CountyID: seed.County.ID, IsActive: true}
	uc.Stamp(actor)
	require.NoError(t, users.AssignCounty(uc))

	scope, err := users.ScopeFor(user.ID)
	require.NoError(t, err)
	assert.False(t, scope.National)
	require.NotNil(t, scope.CountyID)
	assert.Equal(t, seed.County.ID, *scope.CountyID)
}

func TestUserRepository_ScopeFor_RetiredAssignmentIgnored(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	actor := uuid.New()

	user := seedUser(t, db, "former@nakuru.go.ke", false)
	seed := seedRegionChain(t, db, actor, "Nakuru")

	uc := &domain.UserCounty{UserID: user.ID, CountyID: seed.County.ID, IsActive: true}
	uc.Stamp(actor)
	require.NoError(t, users.AssignCounty(uc))
	require.NoError(t, users.UpdateUserCounty(uc.ID, map[string]any{"is_active": false}))

	scope, err := users.ScopeFor(user.ID)
	require.NoError(t, err)
	assert.True(t, scope.Empty())
}

func TestUserRepository_ScopeFor_RegulatoryBody(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	actor := uuid.New()

	user := seedUser(t, db, "inspector@mpdb.or.ke", false)
	cat := seedCatalog(t, db, actor, "Nairobi")

	ru := &domain.RegulatoryBodyUser{UserID: user.ID, RegulatoryBodyID: cat.RegulatoryBody.ID, IsActive: true}
	ru.Stamp(actor)
	require.NoError(t, users.AssignRegulatoryBody(ru))

	scope, err := users.ScopeFor(user.ID)
	require.NoError(t, err)
	require.NotNil(t, scope.RegulatoryBodyID)
	assert.Equal(t, cat.RegulatoryBody.ID, *scope.RegulatoryBodyID)
}

func TestUserRepository_ScopeFor_NoAssignmentsGrantsNothing(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	user := seedUser(t, db, "newhire@ehealth.or.ke", false)

	scope, err := users.ScopeFor(user.ID)
	require.NoError(t, err)
	assert.True(t, scope.Empty())
}

func TestUserRepository_FindUserByEmail(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	seedUser(t, db, "jane@ehealth.or.ke", false)

	found, err := users.FindUserByEmail("jane@ehealth.or.ke")
	require.NoError(t, err)
	assert.Equal(t, "jane@ehealth.or.ke", found.Email)

	_, err = users.FindUserByEmail("missing@ehealth.or.ke")
	require.Error(t, err)
}
