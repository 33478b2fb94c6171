package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SystemUserEmail identifies the fallback record owner. The account is
// created lazily the first time a write arrives without an actor.
const SystemUserEmail = "system@ehealth.or.ke"

// AuditFields is embedded by every registry model. Rows are never
// removed; Deleted marks them and default reads filter on it.
type AuditFields struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Created     time.Time `gorm:"not null;index" json:"created"`
	Updated     time.Time `gorm:"not null" json:"updated"`
	CreatedByID uuid.UUID `gorm:"type:uuid" json:"created_by"`
	UpdatedByID uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	Deleted     bool      `gorm:"not null;default:false;index" json:"deleted"`
}

// Stamp records the acting user ahead of a write.
func (a *AuditFields) Stamp(actorID uuid.UUID) {
	now := time.Now().UTC()
	if a.ID == uuid.Nil {
		a.CreatedByID = actorID
		a.Created = now
	}
	a.UpdatedByID = actorID
	a.Updated = now
}

func (a *AuditFields) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now().UTC()
	if a.Created.IsZero() {
		a.Created = now
	}
	if a.Updated.IsZero() {
		a.Updated = now
	}
	if a.Updated.Before(a.Created) {
		return ErrUpdatedPrecedesCreated
	}

	if a.CreatedByID == uuid.Nil || a.UpdatedByID == uuid.Nil {
		sys, err := SystemUserID(tx)
		if err != nil {
			return err
		}
		if a.CreatedByID == uuid.Nil {
			a.CreatedByID = sys
		}
		if a.UpdatedByID == uuid.Nil {
			a.UpdatedByID = sys
		}
	}
	return nil
}

func (a *AuditFields) BeforeSave(tx *gorm.DB) error {
	if !a.Created.IsZero() && !a.Updated.IsZero() && a.Updated.Before(a.Created) {
		return ErrUpdatedPrecedesCreated
	}
	return nil
}

// SystemUserID returns the id of the system account, creating it on
// first use. Runs inside the caller's transaction.
func SystemUserID(tx *gorm.DB) (uuid.UUID, error) {
	db := tx.Session(&gorm.Session{NewDB: true})

	var u User
	err := db.Where("email = ?", SystemUserEmail).First(&u).Error
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	hash, err := unusablePassword()
	if err != nil {
		return uuid.Nil, err
	}

	// Self-owned so the create hook does not recurse into this lookup.
	id := uuid.New()
	now := time.Now().UTC()
	u = User{
		AuditFields: AuditFields{
			ID:          id,
			Created:     now,
			Updated:     now,
			CreatedByID: id,
			UpdatedByID: id,
			Active:      true,
		},
		Email:        SystemUserEmail,
		FirstName:    "System",
		LastName:     "User",
		PasswordHash: hash,
	}
	if err := db.Create(&u).Error; err != nil {
		// lost the race to a concurrent writer; the row exists now
		var existing User
		if ferr := db.Where("email = ?", SystemUserEmail).First(&existing).Error; ferr == nil {
			return existing.ID, nil
		}
		return uuid.Nil, err
	}
	return u.ID, nil
}

// unusablePassword hashes random bytes so the system account can never
// authenticate.
func unusablePassword() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(raw)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
