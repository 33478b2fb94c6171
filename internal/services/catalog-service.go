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

// CatalogService manages the reference tables. The name/description
// entities share one request shape; owners, facility types, regulating
// bodies and services carry extra columns.
type CatalogService interface {
	CreateOwnerType(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.OwnerType, error)
	GetOwnerType(id uuid.UUID) (*domain.OwnerType, error)
	ListOwnerTypes() ([]domain.OwnerType, error)
	UpdateOwnerType(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.OwnerType, error)

	CreateOwner(req dto.CreateOwnerRequest, actorID uuid.UUID) (*domain.Owner, error)
	GetOwner(id uuid.UUID) (*domain.Owner, error)
	ListOwners(ownerTypeID *uuid.UUID) ([]domain.Owner, error)
	UpdateOwner(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.Owner, error)

	CreateFacilityType(req dto.CreateFacilityTypeRequest, actorID uuid.UUID) (*domain.FacilityType, error)
	GetFacilityType(id uuid.UUID) (*domain.FacilityType, error)
	ListFacilityTypes() ([]domain.FacilityType, error)
	UpdateFacilityType(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.FacilityType, error)

	CreateFacilityStatus(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.FacilityStatus, error)
	GetFacilityStatus(id uuid.UUID) (*domain.FacilityStatus, error)
	ListFacilityStatuses() ([]domain.FacilityStatus, error)
	UpdateFacilityStatus(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.FacilityStatus, error)

	CreateKephLevel(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.KephLevel, error)
	GetKephLevel(id uuid.UUID) (*domain.KephLevel, error)
	ListKephLevels() ([]domain.KephLevel, error)
	UpdateKephLevel(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.KephLevel, error)

	CreateRegulationStatus(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.RegulationStatus, error)
	GetRegulationStatus(id uuid.UUID) (*domain.RegulationStatus, error)
	ListRegulationStatuses() ([]domain.RegulationStatus, error)
	UpdateRegulationStatus(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.RegulationStatus, error)

	CreateRegulatingBody(req dto.CreateRegulatingBodyRequest, actorID uuid.UUID) (*domain.RegulatingBody, error)
	GetRegulatingBody(id uuid.UUID) (*domain.RegulatingBody, error)
	ListRegulatingBodies() ([]domain.RegulatingBody, error)
	UpdateRegulatingBody(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.RegulatingBody, error)

	CreateContactType(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.ContactType, error)
	GetContactType(id uuid.UUID) (*domain.ContactType, error)
	ListContactTypes() ([]domain.ContactType, error)
	UpdateContactType(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.ContactType, error)

	CreateServiceCategory(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.ServiceCategory, error)
	GetServiceCategory(id uuid.UUID) (*domain.ServiceCategory, error)
	ListServiceCategories() ([]domain.ServiceCategory, error)
	UpdateServiceCategory(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.ServiceCategory, error)

	CreateService(req dto.CreateServiceRequest, actorID uuid.UUID) (*domain.Service, error)
	GetService(id uuid.UUID) (*domain.Service, error)
	ListServices(categoryID *uuid.UUID) ([]domain.Service, error)
	UpdateService(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.Service, error)
}

type catalogService struct {
	catalogs repository.CatalogRepository
	log      zerolog.Logger
}

func NewCatalogService(catalogs repository.CatalogRepository, log zerolog.Logger) CatalogService {
	return &catalogService{catalogs: catalogs, log: log}
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("name", "name is required")
	}
	return name, nil
}

// patchCols turns an update request into a column map; empty requests
// are rejected.
func patchCols(req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (map[string]any, error) {
	cols := map[string]any{}
	if req.Name != nil {
		name, err := requireName(*req.Name)
		if err != nil {
			return nil, err
		}
		cols["name"] = name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if req.Abbreviation != nil {
		cols["abbreviation"] = *req.Abbreviation
	}
	if req.SubDivision != nil {
		cols["sub_division"] = *req.SubDivision
	}
	if req.Active != nil {
		cols["active"] = *req.Active
	}
	if len(cols) == 0 {
		return nil, domain.NewValidationError("request", "nothing to update")
	}
	cols["updated"] = time.Now().UTC()
	cols["updated_by_id"] = actorID
	return cols, nil
}

// ---------- Owner types ----------

func (s *catalogService) CreateOwnerType(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.OwnerType, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	t := &domain.OwnerType{Name: name, Description: req.Description}
	t.Stamp(actorID)
	if err := s.catalogs.CreateOwnerType(t); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return t, nil
}

func (s *catalogService) GetOwnerType(id uuid.UUID) (*domain.OwnerType, error) {
	return s.catalogs.FindOwnerType(id)
}

func (s *catalogService) ListOwnerTypes() ([]domain.OwnerType, error) {
	return s.catalogs.ListOwnerTypes()
}

func (s *catalogService) UpdateOwnerType(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.OwnerType, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	t, err := s.catalogs.UpdateOwnerType(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return t, nil
}

// ---------- Owners ----------

func (s *catalogService) CreateOwner(req dto.CreateOwnerRequest, actorID uuid.UUID) (*domain.Owner, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalogs.FindOwnerType(req.OwnerType); err != nil {
		return nil, domain.NewValidationError("owner_type", "owner type does not exist")
	}
	o := &domain.Owner{
		Name:         name,
		Code:         req.Code,
		Abbreviation: req.Abbreviation,
		Description:  req.Description,
		OwnerTypeID:  req.OwnerType,
	}
	o.Stamp(actorID)
	if err := s.catalogs.CreateOwner(o); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return s.catalogs.FindOwner(o.ID)
}

func (s *catalogService) GetOwner(id uuid.UUID) (*domain.Owner, error) {
	return s.catalogs.FindOwner(id)
}

func (s *catalogService) ListOwners(ownerTypeID *uuid.UUID) ([]domain.Owner, error) {
	return s.catalogs.ListOwners(ownerTypeID)
}

func (s *catalogService) UpdateOwner(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.Owner, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	o, err := s.catalogs.UpdateOwner(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return o, nil
}

// ---------- Facility types ----------

func (s *catalogService) CreateFacilityType(req dto.CreateFacilityTypeRequest, actorID uuid.UUID) (*domain.FacilityType, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	t := &domain.FacilityType{Name: name, SubDivision: req.SubDivision}
	t.Stamp(actorID)
	if err := s.catalogs.CreateFacilityType(t); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return t, nil
}

func (s *catalogService) GetFacilityType(id uuid.UUID) (*domain.FacilityType, error) {
	return s.catalogs.FindFacilityType(id)
}

func (s *catalogService) ListFacilityTypes() ([]domain.FacilityType, error) {
	return s.catalogs.ListFacilityTypes()
}

func (s *catalogService) UpdateFacilityType(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.FacilityType, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	t, err := s.catalogs.UpdateFacilityType(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return t, nil
}

// ---------- Facility statuses ----------

func (s *catalogService) CreateFacilityStatus(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.FacilityStatus, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	st := &domain.FacilityStatus{Name: name, Description: req.Description}
	st.Stamp(actorID)
	if err := s.catalogs.CreateFacilityStatus(st); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return st, nil
}

func (s *catalogService) GetFacilityStatus(id uuid.UUID) (*domain.FacilityStatus, error) {
	return s.catalogs.FindFacilityStatus(id)
}

func (s *catalogService) ListFacilityStatuses() ([]domain.FacilityStatus, error) {
	return s.catalogs.ListFacilityStatuses()
}

func (s *catalogService) UpdateFacilityStatus(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.FacilityStatus, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	st, err := s.catalogs.UpdateFacilityStatus(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return st, nil
}

// ---------- KEPH levels ----------

func (s *catalogService) CreateKephLevel(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.KephLevel, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	l := &domain.KephLevel{Name: name, Description: req.Description}
	l.Stamp(actorID)
	if err := s.catalogs.CreateKephLevel(l); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return l, nil
}

func (s *catalogService) GetKephLevel(id uuid.UUID) (*domain.KephLevel, error) {
	return s.catalogs.FindKephLevel(id)
}

func (s *catalogService) ListKephLevels() ([]domain.KephLevel, error) {
	return s.catalogs.ListKephLevels()
}

func (s *catalogService) UpdateKephLevel(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.KephLevel, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	l, err := s.catalogs.UpdateKephLevel(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return l, nil
}

// ---------- Regulation statuses ----------

func (s *catalogService) CreateRegulationStatus(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.RegulationStatus, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	st := &domain.RegulationStatus{Name: name, Description: req.Description}
	st.Stamp(actorID)
	if err := s.catalogs.CreateRegulationStatus(st); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return st, nil
}

func (s *catalogService) GetRegulationStatus(id uuid.UUID) (*domain.RegulationStatus, error) {
	return s.catalogs.FindRegulationStatus(id)
}

func (s *catalogService) ListRegulationStatuses() ([]domain.RegulationStatus, error) {
	return s.catalogs.ListRegulationStatuses()
}

func (s *catalogService) UpdateRegulationStatus(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.RegulationStatus, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	st, err := s.catalogs.UpdateRegulationStatus(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return st, nil
}

// ---------- Regulating bodies ----------

func (s *catalogService) CreateRegulatingBody(req dto.CreateRegulatingBodyRequest, actorID uuid.UUID) (*domain.RegulatingBody, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	b := &domain.RegulatingBody{Name: name, Abbreviation: req.Abbreviation}
	b.Stamp(actorID)
	if err := s.catalogs.CreateRegulatingBody(b); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return b, nil
}

func (s *catalogService) GetRegulatingBody(id uuid.UUID) (*domain.RegulatingBody, error) {
	return s.catalogs.FindRegulatingBody(id)
}

func (s *catalogService) ListRegulatingBodies() ([]domain.RegulatingBody, error) {
	return s.catalogs.ListRegulatingBodies()
}

func (s *catalogService) UpdateRegulatingBody(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.RegulatingBody, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	b, err := s.catalogs.UpdateRegulatingBody(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return b, nil
}

// ---------- Contact types ----------

func (s *catalogService) CreateContactType(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.ContactType, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	t := &domain.ContactType{Name: name, Description: req.Description}
	t.Stamp(actorID)
	if err := s.catalogs.CreateContactType(t); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return t, nil
}

func (s *catalogService) GetContactType(id uuid.UUID) (*domain.ContactType, error) {
	return s.catalogs.FindContactType(id)
}

func (s *catalogService) ListContactTypes() ([]domain.ContactType, error) {
	return s.catalogs.ListContactTypes()
}

func (s *catalogService) UpdateContactType(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.ContactType, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	t, err := s.catalogs.UpdateContactType(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return t, nil
}

// ---------- Service categories ----------

func (s *catalogService) CreateServiceCategory(req dto.CreateCatalogEntryRequest, actorID uuid.UUID) (*domain.ServiceCategory, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	c := &domain.ServiceCategory{Name: name, Description: req.Description}
	c.Stamp(actorID)
	if err := s.catalogs.CreateServiceCategory(c); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return c, nil
}

func (s *catalogService) GetServiceCategory(id uuid.UUID) (*domain.ServiceCategory, error) {
	return s.catalogs.FindServiceCategory(id)
}

func (s *catalogService) ListServiceCategories() ([]domain.ServiceCategory, error) {
	return s.catalogs.ListServiceCategories()
}

func (s *catalogService) UpdateServiceCategory(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.ServiceCategory, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	c, err := s.catalogs.UpdateServiceCategory(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return c, nil
}

// ---------- Services ----------

func (s *catalogService) CreateService(req dto.CreateServiceRequest, actorID uuid.UUID) (*domain.Service, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalogs.FindServiceCategory(req.Category); err != nil {
		return nil, domain.NewValidationError("category", "service category does not exist")
	}
	svc := &domain.Service{
		Name:        name,
		Code:        req.Code,
		Description: req.Description,
		CategoryID:  req.Category,
	}
	svc.Stamp(actorID)
	if err := s.catalogs.CreateService(svc); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return s.catalogs.FindService(svc.ID)
}

func (s *catalogService) GetService(id uuid.UUID) (*domain.Service, error) {
	return s.catalogs.FindService(id)
}

func (s *catalogService) ListServices(categoryID *uuid.UUID) ([]domain.Service, error) {
	return s.catalogs.ListServices(categoryID)
}

func (s *catalogService) UpdateService(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actorID uuid.UUID) (*domain.Service, error) {
	cols, err := patchCols(req, actorID)
	if err != nil {
		return nil, err
	}
	svc, err := s.catalogs.UpdateService(id, cols)
	if err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return svc, nil
}
