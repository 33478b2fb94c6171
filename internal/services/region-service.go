package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehealth-ke/facility-registry/internal/domain"
	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper"
	"github.com/ehealth-ke/facility-registry/internal/repository"
)

type RegionService interface {
	CreateCounty(req dto.CreateCountyRequest, actorID uuid.UUID) (*dto.CountyResponse, error)
	GetCounty(id uuid.UUID) (*dto.CountyResponse, error)
	ListCounties(actorID uuid.UUID) ([]dto.CountyResponse, error)
	RenameCounty(id uuid.UUID, req dto.UpdateRegionRequest, actorID uuid.UUID) (*dto.CountyResponse, error)

	CreateConstituency(req dto.CreateConstituencyRequest, actorID uuid.UUID) (*dto.ConstituencyResponse, error)
	GetConstituency(id uuid.UUID) (*dto.ConstituencyResponse, error)
	ListConstituencies(actorID uuid.UUID, countyID *uuid.UUID) ([]dto.ConstituencyResponse, error)
	RenameConstituency(id uuid.UUID, req dto.UpdateRegionRequest, actorID uuid.UUID) (*dto.ConstituencyResponse, error)

	CreateWard(req dto.CreateWardRequest, actorID uuid.UUID) (*dto.WardResponse, error)
	GetWard(id uuid.UUID) (*dto.WardResponse, error)
	ListWards(actorID uuid.UUID, constituencyID *uuid.UUID) ([]dto.WardResponse, error)
	RenameWard(id uuid.UUID, req dto.UpdateRegionRequest, actorID uuid.UUID) (*dto.WardResponse, error)
}

type regionService struct {
	regions repository.RegionRepository
	users   repository.UserRepository
	log     zerolog.Logger
}

func NewRegionService(regions repository.RegionRepository, users repository.UserRepository, log zerolog.Logger) RegionService {
	return &regionService{regions: regions, users: users, log: log}
}

// ---------- County ----------

func (s *regionService) CreateCounty(req dto.CreateCountyRequest, actorID uuid.UUID) (*dto.CountyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}

	c := &domain.County{Name: name, Code: req.Code}
	c.Stamp(actorID)

	if err := s.regions.CreateCounty(c); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	resp := buildCountyResponse(c)
	return &resp, nil
}

func (s *regionService) GetCounty(id uuid.UUID) (*dto.CountyResponse, error) {
	c, err := s.regions.FindCounty(id)
	if err != nil {
		return nil, err
	}
	resp := buildCountyResponse(c)
	return &resp, nil
}

func (s *regionService) ListCounties(actorID uuid.UUID) ([]dto.CountyResponse, error) {
	scope, err := s.users.ScopeFor(actorID)
	if err != nil {
		return nil, err
	}
	counties, err := s.regions.ListCounties(scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CountyResponse, 0, len(counties))
	for i := range counties {
		out = append(out, buildCountyResponse(&counties[i]))
	}
	return out, nil
}

func (s *regionService) RenameCounty(id uuid.UUID, req dto.UpdateRegionRequest, actorID uuid.UUID) (*dto.CountyResponse, error) {
	cols, err := renameCols(req, actorID)
	if err != nil {
		return nil, err
	}
	c, err := s.regions.UpdateCounty(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	resp := buildCountyResponse(c)
	return &resp, nil
}

// ---------- Constituency ----------

func (s *regionService) CreateConstituency(req dto.CreateConstituencyRequest, actorID uuid.UUID) (*dto.ConstituencyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if _, err := s.regions.FindCounty(req.County); err != nil {
		return nil, domain.NewValidationError("county", "county does not exist")
	}

	c := &domain.Constituency{Name: name, Code: req.Code, CountyID: req.County}
	c.Stamp(actorID)

	if err := s.regions.CreateConstituency(c); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return s.GetConstituency(c.ID)
}

func (s *regionService) GetConstituency(id uuid.UUID) (*dto.ConstituencyResponse, error) {
	c, err := s.regions.FindConstituency(id)
	if err != nil {
		return nil, err
	}
	resp := buildConstituencyResponse(c)
	return &resp, nil
}

func (s *regionService) ListConstituencies(actorID uuid.UUID, countyID *uuid.UUID) ([]dto.ConstituencyResponse, error) {
	scope, err := s.users.ScopeFor(actorID)
	if err != nil {
		return nil, err
	}
	constituencies, err := s.regions.ListConstituencies(scope, countyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConstituencyResponse, 0, len(constituencies))
	for i := range constituencies {
		out = append(out, buildConstituencyResponse(&constituencies[i]))
	}
	return out, nil
}

func (s *regionService) RenameConstituency(id uuid.UUID, req dto.UpdateRegionRequest, actorID uuid.UUID) (*dto.ConstituencyResponse, error) {
	cols, err := renameCols(req, actorID)
	if err != nil {
		return nil, err
	}
	c, err := s.regions.UpdateConstituency(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	resp := buildConstituencyResponse(c)
	return &resp, nil
}

// ---------- Ward ----------

func (s *regionService) CreateWard(req dto.CreateWardRequest, actorID uuid.UUID) (*dto.WardResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if _, err := s.regions.FindConstituency(req.Constituency); err != nil {
		return nil, domain.NewValidationError("constituency", "constituency does not exist")
	}

	w := &domain.Ward{Name: name, Code: req.Code, ConstituencyID: req.Constituency}
	w.Stamp(actorID)

	if err := s.regions.CreateWard(w); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return s.GetWard(w.ID)
}

func (s *regionService) GetWard(id uuid.UUID) (*dto.WardResponse, error) {
	w, err := s.regions.FindWard(id)
	if err != nil {
		return nil, err
	}
	resp := buildWardResponse(w)
	return &resp, nil
}

func (s *regionService) ListWards(actorID uuid.UUID, constituencyID *uuid.UUID) ([]dto.WardResponse, error) {
	scope, err := s.users.ScopeFor(actorID)
	if err != nil {
		return nil, err
	}
	wards, err := s.regions.ListWards(scope, constituencyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WardResponse, 0, len(wards))
	for i := range wards {
		out = append(out, buildWardResponse(&wards[i]))
	}
	return out, nil
}

func (s *regionService) RenameWard(id uuid.UUID, req dto.UpdateRegionRequest, actorID uuid.UUID) (*dto.WardResponse, error) {
	cols, err := renameCols(req, actorID)
	if err != nil {
		return nil, err
	}
	w, err := s.regions.UpdateWard(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	resp := buildWardResponse(w)
	return &resp, nil
}

// ---------- helpers ----------

func renameCols(req dto.UpdateRegionRequest, actorID uuid.UUID) (map[string]any, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	return map[string]any{
		"name":          strings.TrimSpace(*req.Name),
		"updated":       time.Now().UTC(),
		"updated_by_id": actorID,
	}, nil
}

func buildCountyResponse(c *domain.County) dto.CountyResponse {
	return dto.CountyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Code:    c.Code,
		Created: c.Created,
		Updated: c.Updated,
		Active:  c.Active,
	}
}

func buildConstituencyResponse(c *domain.Constituency) dto.ConstituencyResponse {
	resp := dto.ConstituencyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Code:    c.Code,
		County:  c.CountyID,
		Created: c.Created,
		Updated: c.Updated,
		Active:  c.Active,
	}
	if c.County != nil {
		resp.CountyName = c.County.Name
	}
	return resp
}

func buildWardResponse(w *domain.Ward) dto.WardResponse {
	resp := dto.WardResponse{
		ID:           w.ID,
		Name:         w.Name,
		Code:         w.Code,
		Constituency: w.ConstituencyID,
		County:       w.CountyID(),
		Created:      w.Created,
		Updated:      w.Updated,
		Active:       w.Active,
	}
	if w.Constituency != nil {
		resp.ConstituencyName = w.Constituency.Name
		if w.Constituency.County != nil {
			resp.CountyName = w.Constituency.County.Name
		}
	}
	return resp
}
