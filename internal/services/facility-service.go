package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper"
	"github.com/ehealth-ke/facility-registry/internal/interfaces"
	"github.com/ehealth-ke/facility-registry/internal/repository"
)

const (
	EventFacilityCreated = "facility.created"
	EventUpdateApproved  = "facility_update.approved"
	EventUpdateCancelled = "facility_update.cancelled"
)

type FacilityService interface {
	Create(req dto.CreateFacilityRequest, actorID uuid.UUID) (*dto.FacilityResponse, error)
	Get(id uuid.UUID, actorID uuid.UUID) (*dto.FacilityResponse, error)
	List(q dto.FacilityListQuery, actorID uuid.UUID) ([]dto.FacilityListItem, error)
	Update(id uuid.UUID, req dto.UpdateFacilityRequest, actorID uuid.UUID) (*dto.FacilityResponse, error)
	Delete(id uuid.UUID, actorID uuid.UUID) error

	Approve(id uuid.UUID, req dto.CreateApprovalRequest, actorID uuid.UUID) (*dto.FacilityResponse, error)
	ListApprovals(facilityID uuid.UUID) ([]domain.FacilityApproval, error)

	ListUpdates(facilityID *uuid.UUID, pending *bool) ([]dto.FacilityUpdateResponse, error)
	GetUpdate(id uuid.UUID) (*dto.FacilityUpdateResponse, error)
	ResolveUpdate(id uuid.UUID, req dto.ResolveUpdateRequest, actorID uuid.UUID) (*dto.FacilityUpdateResponse, error)

	AddContact(facilityID uuid.UUID, req dto.CreateFacilityContactRequest, actorID uuid.UUID) (*dto.FacilityContactResponse, error)
	ListContacts(facilityID uuid.UUID) ([]dto.FacilityContactResponse, error)

	AddUnit(facilityID uuid.UUID, req dto.CreateFacilityUnitRequest, actorID uuid.UUID) (*domain.FacilityUnit, error)
	ListUnits(facilityID uuid.UUID) ([]domain.FacilityUnit, error)
	AddUnitRegulation(unitID uuid.UUID, req dto.CreateUnitRegulationRequest, actorID uuid.UUID) (*domain.FacilityUnitRegulation, error)
	ListUnitRegulations(unitID uuid.UUID) ([]domain.FacilityUnitRegulation, error)

	AddService(facilityID uuid.UUID, req dto.CreateFacilityServiceRequest, actorID uuid.UUID) (*dto.FacilityServiceResponse, error)
	ListFacilityServices(facilityID uuid.UUID) ([]dto.FacilityServiceResponse, error)
}

type facilityService struct {
	facilities repository.FacilityRepository
	updates    repository.FacilityUpdateRepository
	users      repository.UserRepository
	regions    repository.RegionRepository
	catalogs   repository.CatalogRepository
	producer   interfaces.ProducerHandler
	log        zerolog.Logger
}

func NewFacilityService(
	facilities repository.FacilityRepository,
	updates repository.FacilityUpdateRepository,
	users repository.UserRepository,
	regions repository.RegionRepository,
	catalogs repository.CatalogRepository,
	producer interfaces.ProducerHandler,
	log zerolog.Logger,
) FacilityService {
	return &facilityService{
		facilities: facilities,
		updates:    updates,
		users:      users,
		regions:    regions,
		catalogs:   catalogs,
		producer:   producer,
		log:        log,
	}
}

func (s *facilityService) Create(req dto.CreateFacilityRequest, actorID uuid.UUID) (*dto.FacilityResponse, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "name is required")
	}
	if req.Ward == uuid.Nil {
		verr.Add("ward", "ward is required")
	}
	if req.Owner == uuid.Nil {
		verr.Add("owner", "owner is required")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if _, err := s.regions.FindWard(req.Ward); err != nil {
		return nil, domain.NewValidationError("ward", "ward does not exist")
	}
	if _, err := s.catalogs.FindOwner(req.Owner); err != nil {
		return nil, domain.NewValidationError("owner", "owner does not exist")
	}

	fac := &domain.Facility{
		Name:                strings.TrimSpace(req.Name),
		OfficialName:        strings.TrimSpace(req.OfficialName),
		Code:                req.Code,
		Description:         req.Description,
		NumberOfBeds:        req.NumberOfBeds,
		NumberOfCots:        req.NumberOfCots,
		OpenWholeDay:        req.OpenWholeDay,
		OpenWholeWeek:       req.OpenWholeWeek,
		LocationDescription: req.LocationDescription,
		IsClassified:        req.IsClassified,
		WardID:              req.Ward,
		OwnerID:             req.Owner,
		FacilityTypeID:      req.FacilityType,
		OperationStatusID:   req.OperationStatus,
		KephLevelID:         req.KephLevel,
		RegulatoryBodyID:    req.RegulatoryBody,
	}
	fac.Stamp(actorID)

	var addr *domain.PhysicalAddress
	if req.PhysicalAddress != nil {
		addr = &domain.PhysicalAddress{
			Town:            req.PhysicalAddress.Town,
			PostalCode:      req.PhysicalAddress.PostalCode,
			Address:         req.PhysicalAddress.Address,
			NearestLandmark: req.PhysicalAddress.NearestLandmark,
			PlotNumber:      req.PhysicalAddress.PlotNumber,
		}
	}

	if err := s.facilities.Create(fac, addr); err != nil {
		return nil, helper.TranslateDBError(err)
	}

	s.publish(EventFacilityCreated, map[string]any{
		"id":   fac.ID.String(),
		"code": fac.Code,
		"name": fac.Name,
		"ward": fac.WardID.String(),
	})

	return s.respond(fac.ID)
}

func (s *facilityService) Get(id uuid.UUID, actorID uuid.UUID) (*dto.FacilityResponse, error) {
	fac, err := s.facilities.Find(id)
	if err != nil {
		return nil, err
	}

	scope, err := s.users.ScopeFor(actorID)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(fac) {
		// out-of-scope rows are indistinguishable from missing ones
		return nil, gorm.ErrRecordNotFound
	}

	resp := buildFacilityResponse(fac)
	return &resp, nil
}

func (s *facilityService) List(q dto.FacilityListQuery, actorID uuid.UUID) ([]dto.FacilityListItem, error) {
	scope, err := s.users.ScopeFor(actorID)
	if err != nil {
		return nil, err
	}

	filters, err := parseFacilityFilters(q)
	if err != nil {
		return nil, err
	}

	facilities, err := s.facilities.List(filters, scope)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FacilityListItem, 0, len(facilities))
	for i := range facilities {
		items = append(items, buildFacilityListItem(&facilities[i]))
	}
	return items, nil
}

// Update applies field edits. Before a facility is first approved the
// write lands directly; afterwards the delta is queued as a pending
// FacilityUpdate and the row stays untouched until review.
func (s *facilityService) Update(id uuid.UUID, req dto.UpdateFacilityRequest, actorID uuid.UUID) (*dto.FacilityResponse, error) {
	fac, err := s.facilities.Find(id)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	var changes []domain.FieldChange
	for _, edit := range req.Changed() {
		field, ok := domain.EditableFacilityField(edit.Field)
		if !ok {
			verr.Add(edit.Field, "field cannot be updated")
			continue
		}
		current := domain.FieldValue(fac, edit.Field)
		if current == edit.Value {
			continue
		}
		changes = append(changes, domain.FieldChange{
			FieldName:      edit.Field,
			HumanFieldName: field.Human,
			CurrentValue:   current,
			ProposedValue:  edit.Value,
		})
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	if len(changes) == 0 {
		return s.respond(fac.ID)
	}

	// dry-run against a copy so bad values are rejected before anything
	// is queued or written
	probe := *fac
	for _, ch := range changes {
		if err := domain.ApplyChange(&probe, ch); err != nil {
			return nil, err
		}
	}

	if fac.Approved {
		raw, err := json.Marshal(changes)
		if err != nil {
			return nil, err
		}
		upd := &domain.FacilityUpdate{
			FacilityID: fac.ID,
			Changes:    datatypes.JSON(raw),
		}
		upd.Stamp(actorID)
		if err := s.facilities.QueueUpdate(upd); err != nil {
			return nil, helper.TranslateDBError(err)
		}
		return s.respond(fac.ID)
	}

	probe.Stamp(actorID)
	if err := s.facilities.Save(&probe); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return s.respond(fac.ID)
}

func (s *facilityService) Delete(id uuid.UUID, actorID uuid.UUID) error {
	return s.facilities.SoftDelete(id, actorID)
}

func (s *facilityService) Approve(id uuid.UUID, req dto.CreateApprovalRequest, actorID uuid.UUID) (*dto.FacilityResponse, error) {
	ap := &domain.FacilityApproval{
		FacilityID:  id,
		Comment:     req.Comment,
		IsCancelled: req.IsCancelled,
	}
	ap.Stamp(actorID)

	if err := s.facilities.CreateApproval(ap); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return s.respond(id)
}

func (s *facilityService) ListApprovals(facilityID uuid.UUID) ([]domain.FacilityApproval, error) {
	return s.facilities.ListApprovals(facilityID)
}

// ---------- Update workflow ----------

func (s *facilityService) ListUpdates(facilityID *uuid.UUID, pending *bool) ([]dto.FacilityUpdateResponse, error) {
	updates, err := s.updates.List(facilityID, pending)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FacilityUpdateResponse, 0, len(updates))
	for i := range updates {
		resp, err := buildUpdateResponse(&updates[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *facilityService) GetUpdate(id uuid.UUID) (*dto.FacilityUpdateResponse, error) {
	upd, err := s.updates.Find(id)
	if err != nil {
		return nil, err
	}
	resp, err := buildUpdateResponse(upd)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResolveUpdate approves or cancels a pending update. Both flags in one
// request, or neither, is a validation error; resolving a resolved
// update conflicts.
func (s *facilityService) ResolveUpdate(id uuid.UUID, req dto.ResolveUpdateRequest, actorID uuid.UUID) (*dto.FacilityUpdateResponse, error) {
	approve := req.Approved != nil && *req.Approved
	cancel := req.Cancelled != nil && *req.Cancelled
	if approve == cancel {
		return nil, domain.NewValidationError("approved", "set exactly one of approved or cancelled")
	}

	upd, err := s.updates.Resolve(id, approve, actorID)
	if err != nil {
		return nil, err
	}

	event := EventUpdateCancelled
	if approve {
		event = EventUpdateApproved
	}
	s.publish(event, map[string]any{
		"id":       upd.ID.String(),
		"facility": upd.FacilityID.String(),
	})

	resp, err := buildUpdateResponse(upd)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ---------- Contacts ----------

func (s *facilityService) AddContact(facilityID uuid.UUID, req dto.CreateFacilityContactRequest, actorID uuid.UUID) (*dto.FacilityContactResponse, error) {
	if strings.TrimSpace(req.Contact) == "" {
		return nil, domain.NewValidationError("contact", "contact is required")
	}
	if _, err := s.catalogs.FindContactType(req.ContactType); err != nil {
		return nil, domain.NewValidationError("contact_type", "contact type does not exist")
	}
	if _, err := s.facilities.Find(facilityID); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		Contact:       strings.TrimSpace(req.Contact),
		ContactTypeID: req.ContactType,
	}
	contact.Stamp(actorID)

	fc := &domain.FacilityContact{FacilityID: facilityID}
	fc.Stamp(actorID)

	if err := s.facilities.AddContact(fc, contact); err != nil {
		return nil, helper.TranslateDBError(err)
	}

	resp := dto.FacilityContactResponse{
		ID:          fc.ID,
		Facility:    fc.FacilityID,
		Contact:     contact.Contact,
		ContactType: contact.ContactTypeID,
	}
	if ct, err := s.catalogs.FindContactType(contact.ContactTypeID); err == nil {
		resp.ContactTypeName = ct.Name
	}
	return &resp, nil
}

func (s *facilityService) ListContacts(facilityID uuid.UUID) ([]dto.FacilityContactResponse, error) {
	contacts, err := s.facilities.ListContacts(facilityID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FacilityContactResponse, 0, len(contacts))
	for _, fc := range contacts {
		resp := dto.FacilityContactResponse{
			ID:       fc.ID,
			Facility: fc.FacilityID,
		}
		if fc.Contact != nil {
			resp.Contact = fc.Contact.Contact
			resp.ContactType = fc.Contact.ContactTypeID
			if fc.Contact.ContactType != nil {
				resp.ContactTypeName = fc.Contact.ContactType.Name
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// ---------- Units ----------

func (s *facilityService) AddUnit(facilityID uuid.UUID, req dto.CreateFacilityUnitRequest, actorID uuid.UUID) (*domain.FacilityUnit, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if _, err := s.facilities.Find(facilityID); err != nil {
		return nil, err
	}

	unit := &domain.FacilityUnit{
		FacilityID:  facilityID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	unit.Stamp(actorID)

	if err := s.facilities.AddUnit(unit); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return unit, nil
}

func (s *facilityService) ListUnits(facilityID uuid.UUID) ([]domain.FacilityUnit, error) {
	return s.facilities.ListUnits(facilityID)
}

func (s *facilityService) AddUnitRegulation(unitID uuid.UUID, req dto.CreateUnitRegulationRequest, actorID uuid.UUID) (*domain.FacilityUnitRegulation, error) {
	if _, err := s.catalogs.FindRegulationStatus(req.RegulationStatus); err != nil {
		return nil, domain.NewValidationError("regulation_status", "regulation status does not exist")
	}

	ur := &domain.FacilityUnitRegulation{
		UnitID:             unitID,
		RegulationStatusID: req.RegulationStatus,
	}
	ur.Stamp(actorID)

	if err := s.facilities.AddUnitRegulation(ur); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return ur, nil
}

func (s *facilityService) ListUnitRegulations(unitID uuid.UUID) ([]domain.FacilityUnitRegulation, error) {
	return s.facilities.ListUnitRegulations(unitID)
}

// ---------- Facility services ----------

func (s *facilityService) AddService(facilityID uuid.UUID, req dto.CreateFacilityServiceRequest, actorID uuid.UUID) (*dto.FacilityServiceResponse, error) {
	svc, err := s.catalogs.FindService(req.Service)
	if err != nil {
		return nil, domain.NewValidationError("service", "service does not exist")
	}
	if _, err := s.facilities.Find(facilityID); err != nil {
		return nil, err
	}

	fs := &domain.FacilityService{
		FacilityID: facilityID,
		ServiceID:  req.Service,
	}
	fs.Stamp(actorID)

	if err := s.facilities.AddService(fs); err != nil {
		return nil, helper.TranslateDBError(err)
	}

	resp := dto.FacilityServiceResponse{
		ID:          fs.ID,
		Facility:    fs.FacilityID,
		Service:     fs.ServiceID,
		ServiceName: svc.Name,
	}
	if svc.Category != nil {
		resp.CategoryName = svc.Category.Name
	}
	return &resp, nil
}

func (s *facilityService) ListFacilityServices(facilityID uuid.UUID) ([]dto.FacilityServiceResponse, error) {
	links, err := s.facilities.ListFacilityServices(facilityID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FacilityServiceResponse, 0, len(links))
	for _, fs := range links {
		resp := dto.FacilityServiceResponse{
			ID:       fs.ID,
			Facility: fs.FacilityID,
			Service:  fs.ServiceID,
		}
		if fs.Service != nil {
			resp.ServiceName = fs.Service.Name
			if fs.Service.Category != nil {
				resp.CategoryName = fs.Service.Category.Name
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// ---------- helpers ----------

func (s *facilityService) respond(id uuid.UUID) (*dto.FacilityResponse, error) {
	fac, err := s.facilities.Find(id)
	if err != nil {
		return nil, err
	}
	resp := buildFacilityResponse(fac)
	return &resp, nil
}

func (s *facilityService) publish(event string, payload map[string]any) {
	if s.producer == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(event), raw); err != nil {
		s.log.Warn().Err(err).Str("event", event).Msg("event publish failed")
	}
}

func buildFacilityResponse(f *domain.Facility) dto.FacilityResponse {
	resp := dto.FacilityResponse{
		ID:                  f.ID,
		Name:                f.Name,
		OfficialName:        f.OfficialName,
		Code:                f.Code,
		Description:         f.Description,
		NumberOfBeds:        f.NumberOfBeds,
		NumberOfCots:        f.NumberOfCots,
		OpenWholeDay:        f.OpenWholeDay,
		OpenWholeWeek:       f.OpenWholeWeek,
		LocationDescription: f.LocationDescription,
		IsClassified:        f.IsClassified,
		IsPublished:         f.IsPublished,
		Ward:                f.WardID,
		Owner:               f.OwnerID,
		FacilityType:        f.FacilityTypeID,
		OperationStatus:     f.OperationStatusID,
		KephLevel:           f.KephLevelID,
		RegulatoryBody:      f.RegulatoryBodyID,
		RegulationStatus:    f.RegulationStatusID,
		IsRegulated:         f.IsRegulated(),
		IsApproved:          f.Approved,
		Rejected:            f.Rejected,
		HasEdits:            f.HasEdits,
		LatestUpdate:        f.LatestUpdateID,
		Created:             f.Created,
		Updated:             f.Updated,
		Active:              f.Active,
	}
	if f.Ward != nil {
		resp.WardName = f.Ward.Name
		if f.Ward.Constituency != nil {
			resp.Constituency = f.Ward.Constituency.Name
			if f.Ward.Constituency.County != nil {
				resp.County = f.Ward.Constituency.County.Name
			}
		}
	}
	if f.Owner != nil {
		resp.OwnerName = f.Owner.Name
	}
	if f.FacilityType != nil {
		resp.FacilityTypeName = f.FacilityType.Name
	}
	if f.OperationStatus != nil {
		resp.OperationStatusName = f.OperationStatus.Name
	}
	if f.KephLevel != nil {
		resp.KephLevelName = f.KephLevel.Name
	}
	if f.RegulatoryBody != nil {
		resp.RegulatoryBodyName = f.RegulatoryBody.Name
	}
	if f.PhysicalAddress != nil {
		resp.PhysicalAddress = &dto.PhysicalAddressInput{
			Town:            f.PhysicalAddress.Town,
			PostalCode:      f.PhysicalAddress.PostalCode,
			Address:         f.PhysicalAddress.Address,
			NearestLandmark: f.PhysicalAddress.NearestLandmark,
			PlotNumber:      f.PhysicalAddress.PlotNumber,
		}
	}
	return resp
}

func buildFacilityListItem(f *domain.Facility) dto.FacilityListItem {
	item := dto.FacilityListItem{
		ID:         f.ID,
		Code:       f.Code,
		Name:       f.Name,
		Ward:       f.WardID,
		IsApproved: f.Approved,
		Rejected:   f.Rejected,
		HasEdits:   f.HasEdits,
	}
	if f.Ward != nil {
		item.WardName = f.Ward.Name
		if f.Ward.Constituency != nil {
			item.Constituency = f.Ward.Constituency.Name
			if f.Ward.Constituency.County != nil {
				item.County = f.Ward.Constituency.County.Name
			}
		}
	}
	if f.Owner != nil {
		item.OwnerName = f.Owner.Name
	}
	if f.FacilityType != nil {
		item.FacilityTypeName = f.FacilityType.Name
	}
	if f.OperationStatus != nil {
		item.OperationStatusName = f.OperationStatus.Name
	}
	return item
}

func buildUpdateResponse(u *domain.FacilityUpdate) (dto.FacilityUpdateResponse, error) {
	resp := dto.FacilityUpdateResponse{
		ID:        u.ID,
		Facility:  u.FacilityID,
		Approved:  u.Approved,
		Cancelled: u.Cancelled,
		Created:   u.Created,
		CreatedBy: u.CreatedByID,
		Updated:   u.Updated,
	}
	if u.Facility != nil {
		resp.FacilityName = u.Facility.Name
	}
	if len(u.Changes) > 0 {
		if err := json.Unmarshal(u.Changes, &resp.Changes); err != nil {
			return dto.FacilityUpdateResponse{}, err
		}
	}
	return resp, nil
}

func parseFacilityFilters(q dto.FacilityListQuery) (repository.FacilityFilters, error) {
	var filters repository.FacilityFilters
	verr := &domain.ValidationError{}

	parseBool := func(field, raw string) *bool {
		if raw == "" {
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Add(field, "expected true or false")
			return nil
		}
		return &b
	}
	parseID := func(field, raw string) *uuid.UUID {
		if raw == "" {
			return nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			verr.Add(field, "expected a valid id")
			return nil
		}
		return &id
	}

	filters.OwnerTypeID = parseID("owner_type", q.OwnerType)
	filters.IsRegulated = parseBool("is_regulated", q.IsRegulated)
	filters.IsApproved = parseBool("is_approved", q.IsApproved)
	filters.Rejected = parseBool("rejected", q.Rejected)
	filters.HasEdits = parseBool("has_edits", q.HasEdits)
	filters.CountyID = parseID("county", q.County)
	filters.ConstituencyID = parseID("constituency", q.Constituency)
	filters.WardID = parseID("ward", q.Ward)

	if q.ServiceCategory != "" {
		for _, raw := range strings.Split(q.ServiceCategory, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				verr.Add("service_category", "expected a comma separated list of ids")
				break
			}
			filters.ServiceCategories = append(filters.ServiceCategories, id)
		}
	}

	filters.Limit = q.Limit
	filters.Offset = q.Offset

	if len(verr.Fields) > 0 {
		return repository.FacilityFilters{}, verr
	}
	return filters, nil
}
