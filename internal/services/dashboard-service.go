package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehealth-ke/facility-registry/internal/domain"
	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/repository"
)

type DashboardService interface {
	Build(actorID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	dashboards repository.DashboardRepository
	users      repository.UserRepository
	log        zerolog.Logger
}

func NewDashboardService(dashboards repository.DashboardRepository, users repository.UserRepository, log zerolog.Logger) DashboardService {
	return &dashboardService{dashboards: dashboards, users: users, log: log}
}

// Build assembles the dashboard for one user. The region breakdown goes
// one level below the user's horizon: counties for national users,
// constituencies for county users, wards for constituency users. A user
// with no scope gets an all-zero dashboard.
func (s *dashboardService) Build(actorID uuid.UUID) (*dto.DashboardResponse, error) {
	scope, err := s.users.ScopeFor(actorID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		CountySummary:         []dto.SummaryRow{},
		ConstituenciesSummary: []dto.SummaryRow{},
		WardsSummary:          []dto.SummaryRow{},
		OwnersSummary:         []dto.SummaryRow{},
		OwnerTypes:            []dto.SummaryRow{},
		TypesSummary:          []dto.SummaryRow{},
		StatusSummary:         []dto.SummaryRow{},
	}
	if scope.Empty() {
		return resp, nil
	}

	total, err := s.dashboards.TotalFacilities(scope)
	if err != nil {
		return nil, err
	}
	resp.TotalFacilities = total

	recent, err := s.dashboards.RecentlyCreated(scope, domain.RecentCutoff(time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	resp.RecentlyCreated = recent

	switch {
	case scope.National:
		rows, err := s.dashboards.CountySummary()
		if err != nil {
			return nil, err
		}
		resp.CountySummary = summaryRows(rows)
	case scope.CountyID != nil:
		rows, err := s.dashboards.ConstituenciesSummary(*scope.CountyID, scope)
		if err != nil {
			return nil, err
		}
		resp.ConstituenciesSummary = summaryRows(rows)
	case scope.ConstituencyID != nil:
		rows, err := s.dashboards.WardsSummary(*scope.ConstituencyID, scope)
		if err != nil {
			return nil, err
		}
		resp.WardsSummary = summaryRows(rows)
	}

	owners, err := s.dashboards.OwnersSummary(scope)
	if err != nil {
		return nil, err
	}
	resp.OwnersSummary = summaryRows(owners)

	ownerTypes, err := s.dashboards.OwnerTypesSummary(scope)
	if err != nil {
		return nil, err
	}
	resp.OwnerTypes = summaryRows(ownerTypes)

	types, err := s.dashboards.TypesSummary(scope)
	if err != nil {
		return nil, err
	}
	resp.TypesSummary = summaryRows(types)

	statuses, err := s.dashboards.StatusSummary(scope)
	if err != nil {
		return nil, err
	}
	resp.StatusSummary = summaryRows(statuses)

	return resp, nil
}

func summaryRows(rows []repository.NameCount) []dto.SummaryRow {
	out := make([]dto.SummaryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.SummaryRow{Name: row.Name, Count: row.Count})
	}
	return out
}
