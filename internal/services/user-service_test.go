package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehealth-ke/facility-registry/internal/domain"
	"github.com/ehealth-ke/facility-registry/internal/dto"
)

func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)

	t.Run("rejects a bad email", func(t *testing.T) {
		_, err := env.users.Register(dto.CreateUserRequest{Email: "not-an-email", Password: "changeme1"}, uuid.Nil)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
	})

	t.Run("rejects a short password", func(t *testing.T) {
		_, err := env.users.Register(dto.CreateUserRequest{Email: "a@ehealth.or.ke", Password: "short"}, uuid.Nil)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "password")
	})

	t.Run("normalizes email and trims names", func(t *testing.T) {
		resp, err := env.users.Register(dto.CreateUserRequest{
			Email:     "  Amina.Odhiambo@Ehealth.OR.KE ",
			Password:  "changeme1",
			FirstName: " Amina ",
			LastName:  " Odhiambo ",
		}, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, "amina.odhiambo@ehealth.or.ke", resp.Email)
		assert.Equal(t, "Amina Odhiambo", resp.FullName)
		assert.True(t, resp.Active)

		// the stored hash is not the raw password
		var stored domain.User
		require.NoError(t, env.db.First(&stored, "email = ?", resp.Email).Error)
		assert.NotEqual(t, "changeme1", stored.PasswordHash)
		require.NoError(t, env.auth.VerifyPassword("changeme1", stored.PasswordHash))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		_, err := env.users.Register(dto.CreateUserRequest{Email: "amina.odhiambo@ehealth.or.ke", Password: "changeme1"}, uuid.Nil)
		require.Error(t, err)
	})
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "amina@ehealth.or.ke", false)

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.users.Login(dto.LoginRequest{Email: "amina@ehealth.or.ke", Password: "not-it"})
		require.EqualError(t, err, "invalid email or password")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.users.Login(dto.LoginRequest{Email: "nobody@ehealth.or.ke", Password: "changeme1"})
		require.EqualError(t, err, "invalid email or password")
	})

	t.Run("deactivated account", func(t *testing.T) {
		deactivated := registerUser(t, env, "gone@ehealth.or.ke", false)
		require.NoError(t, env.db.Model(&domain.User{}).
			Where("id = ?", deactivated.ID).
			UpdateColumn("active", false).Error)

		_, err := env.users.Login(dto.LoginRequest{Email: "gone@ehealth.or.ke", Password: "changeme1"})
		require.EqualError(t, err, "invalid email or password")
	})

	t.Run("issues a verifiable token", func(t *testing.T) {
		resp, err := env.users.Login(dto.LoginRequest{Email: "Amina@ehealth.or.ke", Password: "changeme1"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User)
		assert.Equal(t, "amina@ehealth.or.ke", resp.Email)

		claims, err := env.auth.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "amina@ehealth.or.ke", claims.Email)
	})
}

func TestUserService_List(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "a@ehealth.or.ke", false)
	registerUser(t, env, "b@ehealth.or.ke", true)

	users, err := env.users.List()
	require.NoError(t, err)

	// the lazily created system account shows up too
	require.Len(t, users, 3)
	assert.Equal(t, "a@ehealth.or.ke", users[0].Email)
	assert.Equal(t, "b@ehealth.or.ke", users[1].Email)
	assert.Equal(t, domain.SystemUserEmail, users[2].Email)
	assert.True(t, users[1].IsNational)
}

func TestUserService_AssignCounty(t *testing.T) {
	env := newTestEnv(t)
	w := seedWorld(t, env)
	actor := w.admin.ID
	user := registerUser(t, env, "amina@ehealth.or.ke", false)

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.users.AssignCounty(dto.AssignCountyRequest{User: uuid.New(), County: w.county.ID}, actor)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "user")
	})

	t.Run("unknown county", func(t *testing.T) {
		_, err := env.users.AssignCounty(dto.AssignCountyRequest{User: user.ID, County: uuid.New()}, actor)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "county")
	})

	t.Run("one active assignment at a time", func(t *testing.T) {
		first, err := env.users.AssignCounty(dto.AssignCountyRequest{User: user.ID, County: w.county.ID}, actor)
		require.NoError(t, err)
		assert.True(t, first.IsActive)

		_, err = env.users.AssignCounty(dto.AssignCountyRequest{User: user.ID, County: w.county.ID}, actor)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "county")

		// retiring the active assignment opens the slot again
		require.NoError(t, env.users.RetireUserCounty(first.ID, actor))
		_, err = env.users.AssignCounty(dto.AssignCountyRequest{User: user.ID, County: w.county.ID}, actor)
		require.NoError(t, err)

		history, err := env.users.ListUserCounties(&user.ID)
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})
}

func TestUserService_AssignRegulatoryBody(t *testing.T) {
	env := newTestEnv(t)
	w := seedWorld(t, env)
	user := registerUser(t, env, "inspector@ehealth.or.ke", false)

	_, err := env.users.AssignRegulatoryBody(dto.AssignRegulatoryBodyRequest{
		User:           user.ID,
		RegulatoryBody: w.body.ID,
	}, w.admin.ID)
	require.NoError(t, err)

	scope, err := env.users.ScopeFor(user.ID)
	require.NoError(t, err)
	require.NotNil(t, scope.RegulatoryBodyID)
	assert.Equal(t, w.body.ID, *scope.RegulatoryBodyID)
	assert.False(t, scope.National)

	members, err := env.users.ListRegulatoryBodyUsers(&w.body.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, user.ID, members[0].UserID)

	link, err := env.users.GetRegulatoryBodyUser(members[0].ID)
	require.NoError(t, err)
	require.NotNil(t, link.RegulatoryBody)
	assert.Equal(t, "Medical Practitioners Board", link.RegulatoryBody.Name)
	require.NotNil(t, link.User)
	assert.Equal(t, "inspector@ehealth.or.ke", link.User.Email)
}
