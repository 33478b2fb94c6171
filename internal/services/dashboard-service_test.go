package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehealth-ke/facility-registry/internal/dto"
)

func TestDashboardService_EmptyScope(t *testing.T) {
	env := newTestEnv(t)
	w := seedWorld(t, env)
	createFacility(t, env, w, "Biashara Dispensary", w.admin.ID)

	outsider := registerUser(t, env, "outsider@ehealth.or.ke", false)

	resp, err := env.dashboards.Build(outsider.ID)
	require.NoError(t, err)

	assert.Zero(t, resp.TotalFacilities)
	assert.Zero(t, resp.RecentlyCreated)

	// empty slices, not nils, so the JSON renders [] rather than null
	for name, rows := range map[string][]dto.SummaryRow{
		"county":         resp.CountySummary,
		"constituencies": resp.ConstituenciesSummary,
		"wards":          resp.WardsSummary,
		"owners":         resp.OwnersSummary,
		"owner types":    resp.OwnerTypes,
		"types":          resp.TypesSummary,
		"statuses":       resp.StatusSummary,
	} {
		require.NotNil(t, rows, name)
		assert.Empty(t, rows, name)
	}
}

func TestDashboardService_NationalHorizon(t *testing.T) {
	env := newTestEnv(t)
	w := seedWorld(t, env)
	createFacility(t, env, w, "Biashara Dispensary", w.admin.ID)

	resp, err := env.dashboards.Build(w.admin.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, resp.TotalFacilities)
	assert.EqualValues(t, 1, resp.RecentlyCreated)

	require.Len(t, resp.CountySummary, 1)
	assert.Equal(t, dto.SummaryRow{Name: "Nakuru", Count: 1}, resp.CountySummary[0])
	assert.Empty(t, resp.ConstituenciesSummary)
	assert.Empty(t, resp.WardsSummary)

	require.Len(t, resp.OwnersSummary, 1)
	assert.Equal(t, dto.SummaryRow{Name: "County Government of Nakuru", Count: 1}, resp.OwnersSummary[0])
	require.Len(t, resp.OwnerTypes, 1)
	assert.Equal(t, dto.SummaryRow{Name: "Ministry of Health", Count: 1}, resp.OwnerTypes[0])
	require.Len(t, resp.TypesSummary, 1)
	assert.Equal(t, dto.SummaryRow{Name: "Dispensary", Count: 1}, resp.TypesSummary[0])
	require.Len(t, resp.StatusSummary, 1)
	assert.Equal(t, dto.SummaryRow{Name: "Operational", Count: 1}, resp.StatusSummary[0])
}

func TestDashboardService_CountyHorizon(t *testing.T) {
	env := newTestEnv(t)
	w := seedWorld(t, env)
	createFacility(t, env, w, "Biashara Dispensary", w.admin.ID)

	scoped := countyUser(t, env, "nakuru@ehealth.or.ke", w.county.ID, w.admin.ID)

	resp, err := env.dashboards.Build(scoped.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, resp.TotalFacilities)

	// the breakdown sits one level below the user's own horizon
	assert.Empty(t, resp.CountySummary)
	require.Len(t, resp.ConstituenciesSummary, 1)
	assert.Equal(t, dto.SummaryRow{Name: "Naivasha", Count: 1}, resp.ConstituenciesSummary[0])
	assert.Empty(t, resp.WardsSummary)
}

func TestDashboardService_ConstituencyHorizon(t *testing.T) {
	env := newTestEnv(t)
	w := seedWorld(t, env)
	createFacility(t, env, w, "Biashara Dispensary", w.admin.ID)

	user := registerUser(t, env, "naivasha@ehealth.or.ke", false)
	_, err := env.users.AssignConstituency(dto.AssignConstituencyRequest{
		User:         user.ID,
		Constituency: w.constituency.ID,
	}, w.admin.ID)
	require.NoError(t, err)

	resp, err := env.dashboards.Build(user.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, resp.TotalFacilities)
	assert.Empty(t, resp.CountySummary)
	assert.Empty(t, resp.ConstituenciesSummary)
	require.Len(t, resp.WardsSummary, 1)
	assert.Equal(t, dto.SummaryRow{Name: "Biashara", Count: 1}, resp.WardsSummary[0])
}
