package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

// CatalogRepository persists the reference tables facilities are
// classified with.
type CatalogRepository interface {
	CreateOwnerType(t *domain.OwnerType) error
	FindOwnerType(id uuid.UUID) (*domain.OwnerType, error)
	ListOwnerTypes() ([]domain.OwnerType, error)
	UpdateOwnerType(id uuid.UUID, cols map[string]any) (*domain.OwnerType, error)

	CreateOwner(o *domain.Owner) error
	FindOwner(id uuid.UUID) (*domain.Owner, error)
	ListOwners(ownerTypeID *uuid.UUID) ([]domain.Owner, error)
	UpdateOwner(id uuid.UUID, cols map[string]any) (*domain.Owner, error)

	CreateFacilityType(t *domain.FacilityType) error
	FindFacilityType(id uuid.UUID) (*domain.FacilityType, error)
	ListFacilityTypes() ([]domain.FacilityType, error)
	UpdateFacilityType(id uuid.UUID, cols map[string]any) (*domain.FacilityType, error)

	CreateFacilityStatus(s *domain.FacilityStatus) error
	FindFacilityStatus(id uuid.UUID) (*domain.FacilityStatus, error)
	ListFacilityStatuses() ([]domain.FacilityStatus, error)
	UpdateFacilityStatus(id uuid.UUID, cols map[string]any) (*domain.FacilityStatus, error)

	CreateKephLevel(l *domain.KephLevel) error
	FindKephLevel(id uuid.UUID) (*domain.KephLevel, error)
	ListKephLevels() ([]domain.KephLevel, error)
	UpdateKephLevel(id uuid.UUID, cols map[string]any) (*domain.KephLevel, error)

	CreateRegulationStatus(s *domain.RegulationStatus) error
	FindRegulationStatus(id uuid.UUID) (*domain.RegulationStatus, error)
	ListRegulationStatuses() ([]domain.RegulationStatus, error)
	UpdateRegulationStatus(id uuid.UUID, cols map[string]any) (*domain.RegulationStatus, error)

	CreateRegulatingBody(b *domain.RegulatingBody) error
	FindRegulatingBody(id uuid.UUID) (*domain.RegulatingBody, error)
	ListRegulatingBodies() ([]domain.RegulatingBody, error)
	UpdateRegulatingBody(id uuid.UUID, cols map[string]any) (*domain.RegulatingBody, error)

	CreateContactType(t *domain.ContactType) error
	FindContactType(id uuid.UUID) (*domain.ContactType, error)
	ListContactTypes() ([]domain.ContactType, error)
	UpdateContactType(id uuid.UUID, cols map[string]any) (*domain.ContactType, error)

	CreateContact(c *domain.Contact) error
	FindContact(id uuid.UUID) (*domain.Contact, error)

	CreateServiceCategory(c *domain.ServiceCategory) error
	FindServiceCategory(id uuid.UUID) (*domain.ServiceCategory, error)
	ListServiceCategories() ([]domain.ServiceCategory, error)
	UpdateServiceCategory(id uuid.UUID, cols map[string]any) (*domain.ServiceCategory, error)

	CreateService(s *domain.Service) error
	FindService(id uuid.UUID) (*domain.Service, error)
	ListServices(categoryID *uuid.UUID) ([]domain.Service, error)
	UpdateService(id uuid.UUID, cols map[string]any) (*domain.Service, error)
}

type catalogRepository struct {
	db     *gorm.DB
	floors CodeFloors
}

func NewCatalogRepository(db *gorm.DB, floors CodeFloors) CatalogRepository {
	return &catalogRepository{db: db, floors: floors}
}

// patch applies a column map to one live row of the given model.
func (r *catalogRepository) patch(model any, id uuid.UUID, cols map[string]any) error {
	res := r.db.Model(model).
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

// ---------- Owner types ----------

func (r *catalogRepository) CreateOwnerType(t *domain.OwnerType) error {
	return r.db.Create(t).Error
}

func (r *catalogRepository) FindOwnerType(id uuid.UUID) (*domain.OwnerType, error) {
	var t domain.OwnerType
	if err := r.db.Scopes(notDeleted).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *catalogRepository) ListOwnerTypes() ([]domain.OwnerType, error) {
	var out []domain.OwnerType
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateOwnerType(id uuid.UUID, cols map[string]any) (*domain.OwnerType, error) {
	if err := r.patch(&domain.OwnerType{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindOwnerType(id)
}

// ---------- Owners ----------

func (r *catalogRepository) CreateOwner(o *domain.Owner) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if o.Code == 0 {
			code, err := NextCode(tx, domain.SequenceOwner, r.floors)
			if err != nil {
				return err
			}
			o.Code = code
		}
		return tx.Create(o).Error
	})
}

func (r *catalogRepository) FindOwner(id uuid.UUID) (*domain.Owner, error) {
	var o domain.Owner
	if err := r.db.Scopes(notDeleted).Preload("OwnerType").First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *catalogRepository) ListOwners(ownerTypeID *uuid.UUID) ([]domain.Owner, error) {
	q := r.db.Scopes(notDeleted).Preload("OwnerType").Order("code ASC")
	if ownerTypeID != nil {
		q = q.Where("owner_type_id = ?", *ownerTypeID)
	}
	var out []domain.Owner
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateOwner(id uuid.UUID, cols map[string]any) (*domain.Owner, error) {
	if err := r.patch(&domain.Owner{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindOwner(id)
}

// ---------- Facility types ----------

func (r *catalogRepository) CreateFacilityType(t *domain.FacilityType) error {
	return r.db.Create(t).Error
}

func (r *catalogRepository) FindFacilityType(id uuid.UUID) (*domain.FacilityType, error) {
	var t domain.FacilityType
	if err := r.db.Scopes(notDeleted).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *catalogRepository) ListFacilityTypes() ([]domain.FacilityType, error) {
	var out []domain.FacilityType
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateFacilityType(id uuid.UUID, cols map[string]any) (*domain.FacilityType, error) {
	if err := r.patch(&domain.FacilityType{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindFacilityType(id)
}

// ---------- Facility statuses ----------

func (r *catalogRepository) CreateFacilityStatus(s *domain.FacilityStatus) error {
	return r.db.Create(s).Error
}

func (r *catalogRepository) FindFacilityStatus(id uuid.UUID) (*domain.FacilityStatus, error) {
	var s domain.FacilityStatus
	if err := r.db.Scopes(notDeleted).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepository) ListFacilityStatuses() ([]domain.FacilityStatus, error) {
	var out []domain.FacilityStatus
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateFacilityStatus(id uuid.UUID, cols map[string]any) (*domain.FacilityStatus, error) {
	if err := r.patch(&domain.FacilityStatus{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindFacilityStatus(id)
}

// ---------- KEPH levels ----------

func (r *catalogRepository) CreateKephLevel(l *domain.KephLevel) error {
	return r.db.Create(l).Error
}

func (r *catalogRepository) FindKephLevel(id uuid.UUID) (*domain.KephLevel, error) {
	var l domain.KephLevel
	if err := r.db.Scopes(notDeleted).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *catalogRepository) ListKephLevels() ([]domain.KephLevel, error) {
	var out []domain.KephLevel
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateKephLevel(id uuid.UUID, cols map[string]any) (*domain.KephLevel, error) {
	if err := r.patch(&domain.KephLevel{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindKephLevel(id)
}

// ---------- Regulation statuses ----------

func (r *catalogRepository) CreateRegulationStatus(s *domain.RegulationStatus) error {
	return r.db.Create(s).Error
}

func (r *catalogRepository) FindRegulationStatus(id uuid.UUID) (*domain.RegulationStatus, error) {
	var s domain.RegulationStatus
	if err := r.db.Scopes(notDeleted).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepository) ListRegulationStatuses() ([]domain.RegulationStatus, error) {
	var out []domain.RegulationStatus
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateRegulationStatus(id uuid.UUID, cols map[string]any) (*domain.RegulationStatus, error) {
	if err := r.patch(&domain.RegulationStatus{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindRegulationStatus(id)
}

// ---------- Regulating bodies ----------

func (r *catalogRepository) CreateRegulatingBody(b *domain.RegulatingBody) error {
	return r.db.Create(b).Error
}

func (r *catalogRepository) FindRegulatingBody(id uuid.UUID) (*domain.RegulatingBody, error) {
	var b domain.RegulatingBody
	if err := r.db.Scopes(notDeleted).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *catalogRepository) ListRegulatingBodies() ([]domain.RegulatingBody, error) {
	var out []domain.RegulatingBody
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateRegulatingBody(id uuid.UUID, cols map[string]any) (*domain.RegulatingBody, error) {
	if err := r.patch(&domain.RegulatingBody{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindRegulatingBody(id)
}

// ---------- Contact types ----------

func (r *catalogRepository) CreateContactType(t *domain.ContactType) error {
	return r.db.Create(t).Error
}

func (r *catalogRepository) FindContactType(id uuid.UUID) (*domain.ContactType, error) {
	var t domain.ContactType
	if err := r.db.Scopes(notDeleted).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *catalogRepository) ListContactTypes() ([]domain.ContactType, error) {
	var out []domain.ContactType
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateContactType(id uuid.UUID, cols map[string]any) (*domain.ContactType, error) {
	if err := r.patch(&domain.ContactType{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindContactType(id)
}

// ---------- Contacts ----------

func (r *catalogRepository) CreateContact(c *domain.Contact) error {
	return r.db.Create(c).Error
}

func (r *catalogRepository) FindContact(id uuid.UUID) (*domain.Contact, error) {
	var c domain.Contact
	if err := r.db.Scopes(notDeleted).Preload("ContactType").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ---------- Service categories ----------

func (r *catalogRepository) CreateServiceCategory(c *domain.ServiceCategory) error {
	return r.db.Create(c).Error
}

func (r *catalogRepository) FindServiceCategory(id uuid.UUID) (*domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	if err := r.db.Scopes(notDeleted).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogRepository) ListServiceCategories() ([]domain.ServiceCategory, error) {
	var out []domain.ServiceCategory
	if err := r.db.Scopes(notDeleted).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateServiceCategory(id uuid.UUID, cols map[string]any) (*domain.ServiceCategory, error) {
	if err := r.patch(&domain.ServiceCategory{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindServiceCategory(id)
}

// ---------- Services ----------

func (r *catalogRepository) CreateService(s *domain.Service) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if s.Code == 0 {
			code, err := NextCode(tx, domain.SequenceService, r.floors)
			if err != nil {
				return err
			}
			s.Code = code
		}
		return tx.Create(s).Error
	})
}

func (r *catalogRepository) FindService(id uuid.UUID) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.Scopes(notDeleted).Preload("Category").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepository) ListServices(categoryID *uuid.UUID) ([]domain.Service, error) {
	q := r.db.Scopes(notDeleted).Preload("Category").Order("code ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var out []domain.Service
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepository) UpdateService(id uuid.UUID, cols map[string]any) (*domain.Service, error) {
	if err := r.patch(&domain.Service{}, id, cols); err != nil {
		return nil, err
	}
	return r.FindService(id)
}
