package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

// FacilityFilters narrows the facility list. Pointer fields are skipped
// when nil so filters compose freely.
type FacilityFilters struct {
	OwnerTypeID       *uuid.UUID
	IsRegulated       *bool
	IsApproved        *bool
	Rejected          *bool
	HasEdits          *bool
	ServiceCategories []uuid.UUID
	CountyID          *uuid.UUID
	ConstituencyID    *uuid.UUID
	WardID            *uuid.UUID
	IncludeDeleted    bool
	Limit             int
	Offset            int
}

type FacilityRepository interface {
	Create(f *domain.Facility, addr *domain.PhysicalAddress) error
	Find(id uuid.UUID) (*domain.Facility, error)
	List(filters FacilityFilters, scope domain.Scope) ([]domain.Facility, error)
	Save(f *domain.Facility) error
	ApplyPatch(id uuid.UUID, cols map[string]any) error
	SoftDelete(id uuid.UUID, actorID uuid.UUID) error

	QueueUpdate(upd *domain.FacilityUpdate) error

	CreateApproval(ap *domain.FacilityApproval) error
	ListApprovals(facilityID uuid.UUID) ([]domain.FacilityApproval, error)

	AddContact(fc *domain.FacilityContact, contact *domain.Contact) error
	ListContacts(facilityID uuid.UUID) ([]domain.FacilityContact, error)

	AddUnit(u *domain.FacilityUnit) error
	ListUnits(facilityID uuid.UUID) ([]domain.FacilityUnit, error)
	AddUnitRegulation(ur *domain.FacilityUnitRegulation) error
	ListUnitRegulations(unitID uuid.UUID) ([]domain.FacilityUnitRegulation, error)

	AddService(fs *domain.FacilityService) error
	ListFacilityServices(facilityID uuid.UUID) ([]domain.FacilityService, error)
}

type facilityRepository struct {
	db     *gorm.DB
	floors CodeFloors
}

func NewFacilityRepository(db *gorm.DB, floors CodeFloors) FacilityRepository {
	return &facilityRepository{db: db, floors: floors}
}

// Create persists the facility, its optional physical address and its
// sequence code in one transaction; a counter failure leaves no row
// behind.
func (r *facilityRepository) Create(f *domain.Facility, addr *domain.PhysicalAddress) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if addr != nil {
			addr.CreatedByID = f.CreatedByID
			addr.UpdatedByID = f.UpdatedByID
			if err := tx.Create(addr).Error; err != nil {
				return err
			}
			f.PhysicalAddressID = &addr.ID
		}
		if f.Code == 0 {
			code, err := NextCode(tx, domain.SequenceFacility, r.floors)
			if err != nil {
				return err
			}
			f.Code = code
		}
		return tx.Create(f).Error
	})
}

func (r *facilityRepository) Find(id uuid.UUID) (*domain.Facility, error) {
	var f domain.Facility
	err := r.db.Scopes(notDeleted).
		Preload("Ward").
		Preload("Ward.Constituency").
		Preload("Ward.Constituency.County").
		Preload("Owner").
		Preload("FacilityType").
		Preload("OperationStatus").
		Preload("KephLevel").
		Preload("RegulatoryBody").
		Preload("RegulationStatus").
		Preload("PhysicalAddress").
		First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facilityRepository) List(filters FacilityFilters, scope domain.Scope) ([]domain.Facility, error) {
	q := r.db.Model(&domain.Facility{}).
		Preload("Ward").
		Preload("Ward.Constituency").
		Preload("Ward.Constituency.County").
		Preload("Owner").
		Preload("FacilityType").
		Preload("OperationStatus").
		Order("facilities.code ASC")

	if !filters.IncludeDeleted {
		q = q.Where("facilities.deleted = ?", false)
	}
	q = applyFacilityScope(q, r.db, scope)

	if filters.OwnerTypeID != nil {
		q = q.Joins("JOIN owners ON owners.id = facilities.owner_id").
			Where("owners.owner_type_id = ?", *filters.OwnerTypeID)
	}
	if filters.IsRegulated != nil {
		if *filters.IsRegulated {
			q = q.Where("facilities.regulation_status_id IS NOT NULL")
		} else {
			q = q.Where("facilities.regulation_status_id IS NULL")
		}
	}
	if filters.IsApproved != nil {
		q = q.Where("facilities.approved = ?", *filters.IsApproved)
	}
	if filters.Rejected != nil {
		q = q.Where("facilities.rejected = ?", *filters.Rejected)
	}
	if filters.HasEdits != nil {
		q = q.Where("facilities.has_edits = ?", *filters.HasEdits)
	}
	if len(filters.ServiceCategories) > 0 {
		sub := r.db.Session(&gorm.Session{NewDB: true}).
			Model(&domain.FacilityService{}).
			Select("facility_services.facility_id").
			Joins("JOIN services ON services.id = facility_services.service_id").
			Where("facility_services.deleted = ?", false).
			Where("services.category_id IN ?", filters.ServiceCategories)
		q = q.Where("facilities.id IN (?)", sub)
	}
	if filters.WardID != nil {
		q = q.Where("facilities.ward_id = ?", *filters.WardID)
	}
	if filters.ConstituencyID != nil {
		sub := r.db.Session(&gorm.Session{NewDB: true}).
			Model(&domain.Ward{}).
			Select("wards.id").
			Where("wards.constituency_id = ?", *filters.ConstituencyID)
		q = q.Where("facilities.ward_id IN (?)", sub)
	}
	if filters.CountyID != nil {
		sub := r.db.Session(&gorm.Session{NewDB: true}).
			Model(&domain.Ward{}).
			Select("wards.id").
			Joins("JOIN constituencies ON constituencies.id = wards.constituency_id").
			Where("constituencies.county_id = ?", *filters.CountyID)
		q = q.Where("facilities.ward_id IN (?)", sub)
	}
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		q = q.Offset(filters.Offset)
	}

	var facilities []domain.Facility
	if err := q.Find(&facilities).Error; err != nil {
		return nil, err
	}
	return facilities, nil
}

// Save rewrites the whole facility row. Callers load the row first;
// direct edits to unapproved facilities come through here. Preloaded
// associations are left alone.
func (r *facilityRepository) Save(f *domain.Facility) error {
	return r.db.Omit(clause.Associations).Save(f).Error
}

func (r *facilityRepository) ApplyPatch(id uuid.UUID, cols map[string]any) error {
	res := r.db.Model(&domain.Facility{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *facilityRepository) SoftDelete(id uuid.UUID, actorID uuid.UUID) error {
	return r.ApplyPatch(id, map[string]any{
		"deleted":       true,
		"updated":       time.Now().UTC(),
		"updated_by_id": actorID,
	})
}

// QueueUpdate stores the pending change list and flips the facility's
// pending markers in the same transaction, so a reader never sees an
// update without the facility flagging it.
func (r *facilityRepository) QueueUpdate(upd *domain.FacilityUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var fac domain.Facility
		if err := tx.Scopes(notDeleted).First(&fac, "id = ?", upd.FacilityID).Error; err != nil {
			return err
		}
		if err := tx.Create(upd).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Facility{}).
			Where("id = ?", fac.ID).
			Updates(map[string]any{
				"has_edits":        true,
				"latest_update_id": upd.ID,
				"updated":          time.Now().UTC(),
				"updated_by_id":    upd.CreatedByID,
			}).Error
	})
}

// CreateApproval records a sign-off or rejection and synchronizes the
// facility's standing with it.
func (r *facilityRepository) CreateApproval(ap *domain.FacilityApproval) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var fac domain.Facility
		if err := tx.Scopes(notDeleted).First(&fac, "id = ?", ap.FacilityID).Error; err != nil {
			return err
		}
		if err := tx.Create(ap).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Facility{}).
			Where("id = ?", fac.ID).
			Updates(map[string]any{
				"approved":      !ap.IsCancelled,
				"rejected":      ap.IsCancelled,
				"updated":       time.Now().UTC(),
				"updated_by_id": ap.CreatedByID,
			}).Error
	})
}

func (r *facilityRepository) ListApprovals(facilityID uuid.UUID) ([]domain.FacilityApproval, error) {
	var out []domain.FacilityApproval
	err := r.db.Scopes(notDeleted).
		Where("facility_id = ?", facilityID).
		Order("created DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddContact links a contact to a facility; when the contact row is
// supplied it is created in the same transaction.
func (r *facilityRepository) AddContact(fc *domain.FacilityContact, contact *domain.Contact) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if contact != nil {
			if err := tx.Create(contact).Error; err != nil {
				return err
			}
			fc.ContactID = contact.ID
		}
		return tx.Create(fc).Error
	})
}

func (r *facilityRepository) ListContacts(facilityID uuid.UUID) ([]domain.FacilityContact, error) {
	var out []domain.FacilityContact
	err := r.db.Scopes(notDeleted).
		Preload("Contact").
		Preload("Contact.ContactType").
		Where("facility_id = ?", facilityID).
		Order("created ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *facilityRepository) AddUnit(u *domain.FacilityUnit) error {
	return r.db.Create(u).Error
}

func (r *facilityRepository) ListUnits(facilityID uuid.UUID) ([]domain.FacilityUnit, error) {
	var out []domain.FacilityUnit
	err := r.db.Scopes(notDeleted).
		Where("facility_id = ?", facilityID).
		Order("created ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *facilityRepository) AddUnitRegulation(ur *domain.FacilityUnitRegulation) error {
	return r.db.Create(ur).Error
}

func (r *facilityRepository) ListUnitRegulations(unitID uuid.UUID) ([]domain.FacilityUnitRegulation, error) {
	var out []domain.FacilityUnitRegulation
	err := r.db.Scopes(notDeleted).
		Preload("RegulationStatus").
		Where("unit_id = ?", unitID).
		Order("created DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *facilityRepository) AddService(fs *domain.FacilityService) error {
	return r.db.Create(fs).Error
}

func (r *facilityRepository) ListFacilityServices(facilityID uuid.UUID) ([]domain.FacilityService, error) {
	var out []domain.FacilityService
	err := r.db.Scopes(notDeleted).
		Preload("Service").
		Preload("Service.Category").
		Where("facility_id = ?", facilityID).
		Order("created ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
