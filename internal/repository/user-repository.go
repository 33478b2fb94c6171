package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

type UserRepository interface {
	CreateUser(u *domain.User) error
	FindUser(id uuid.UUID) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	ListUsers() ([]domain.User, error)

	AssignCounty(uc *domain.UserCounty) error
	ListUserCounties(userID *uuid.UUID) ([]domain.UserCounty, error)
	UpdateUserCounty(id uuid.UUID, cols map[string]any) error

	AssignConstituency(uc *domain.UserConstituency) error
	ListUserConstituencies(userID *uuid.UUID) ([]domain.UserConstituency, error)
	UpdateUserConstituency(id uuid.UUID, cols map[string]any) error

	AssignRegulatoryBody(ru *domain.RegulatoryBodyUser) error
	FindRegulatoryBodyUser(id uuid.UUID) (*domain.RegulatoryBodyUser, error)
	ListRegulatoryBodyUsers(bodyID *uuid.UUID) ([]domain.RegulatoryBodyUser, error)

	ScopeFor(userID uuid.UUID) (domain.Scope, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(u *domain.User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) FindUser(id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := r.db.Scopes(notDeleted).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.Scopes(notDeleted).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListUsers() ([]domain.User, error) {
	var users []domain.User
	if err := r.db.Scopes(notDeleted).Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ---------- County assignment ----------

func (r *userRepository) AssignCounty(uc *domain.UserCounty) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&domain.UserCounty{}).
			Where("user_id = ? AND is_active = ?", uc.UserID, true).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.NewValidationError("county", "user already has an active county; retire it first")
		}
		return tx.Create(uc).Error
	})
}

func (r *userRepository) ListUserCounties(userID *uuid.UUID) ([]domain.UserCounty, error) {
	q := r.db.Scopes(notDeleted).Preload("County").Order("created DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var out []domain.UserCounty
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userRepository) UpdateUserCounty(id uuid.UUID, cols map[string]any) error {
	res := r.db.Model(&domain.UserCounty{}).
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

// ---------- Constituency assignment ----------

func (r *userRepository) AssignConstituency(uc *domain.UserConstituency) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&domain.UserConstituency{}).
			Where("user_id = ? AND is_active = ?", uc.UserID, true).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.NewValidationError("constituency", "user already has an active constituency; retire it first")
		}
		return tx.Create(uc).Error
	})
}

func (r *userRepository) ListUserConstituencies(userID *uuid.UUID) ([]domain.UserConstituency, error) {
	q := r.db.Scopes(notDeleted).Preload("Constituency").Order("created DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var out []domain.UserConstituency
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userRepository) UpdateUserConstituency(id uuid.UUID, cols map[string]any) error {
	res := r.db.Model(&domain.UserConstituency{}).
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

// ---------- Regulatory body assignment ----------

func (r *userRepository) AssignRegulatoryBody(ru *domain.RegulatoryBodyUser) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&domain.RegulatoryBodyUser{}).
			Where("user_id = ? AND is_active = ?", ru.UserID, true).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.NewValidationError("regulatory_body", "user already belongs to an active regulatory body")
		}
		return tx.Create(ru).Error
	})
}

func (r *userRepository) FindRegulatoryBodyUser(id uuid.UUID) (*domain.RegulatoryBodyUser, error) {
	var ru domain.RegulatoryBodyUser
	err := r.db.Scopes(notDeleted).
		Preload("RegulatoryBody").
		Preload("User").
		First(&ru, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ru, nil
}

func (r *userRepository) ListRegulatoryBodyUsers(bodyID *uuid.UUID) ([]domain.RegulatoryBodyUser, error) {
	q := r.db.Scopes(notDeleted).Preload("RegulatoryBody").Preload("User").Order("created DESC")
	if bodyID != nil {
		q = q.Where("regulatory_body_id = ?", *bodyID)
	}
	var out []domain.RegulatoryBodyUser
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ScopeFor resolves what the user may see. National users short-circuit
// to everything; otherwise each active assignment narrows the scope and
// a user with none gets an empty one.
func (r *userRepository) ScopeFor(userID uuid.UUID) (domain.Scope, error) {
	user, err := r.FindUser(userID)
	if err != nil {
		return domain.Scope{}, err
	}
	if user.IsNational {
		return domain.Scope{National: true}, nil
	}

	var scope domain.Scope

	var uc domain.UserCounty
	err = r.db.Where("user_id = ? AND is_active = ? AND deleted = ?", userID, true, false).First(&uc).Error
	switch {
	case err == nil:
		id := uc.CountyID
		scope.CountyID = &id
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Scope{}, err
	}

	var ucon domain.UserConstituency
	err = r.db.Where("user_id = ? AND is_active = ? AND deleted = ?", userID, true, false).First(&ucon).Error
	switch {
	case err == nil:
		id := ucon.ConstituencyID
		scope.ConstituencyID = &id
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Scope{}, err
	}

	var ru domain.RegulatoryBodyUser
	err = r.db.Where("user_id = ? AND is_active = ? AND deleted = ?", userID, true, false).First(&ru).Error
	switch {
	case err == nil:
		id := ru.RegulatoryBodyID
		scope.RegulatoryBodyID = &id
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Scope{}, err
	}

	return scope, nil
}
