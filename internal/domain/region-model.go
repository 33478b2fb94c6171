package domain

import "github.com/google/uuid"

// Administrative units form a fixed three-level tree. Each level keeps
// its own table and an explicit parent key; a ward reaches its county
// through its constituency.

type County struct {
	AuditFields
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Code int64  `gorm:"uniqueIndex;not null" json:"code"`
}

type Constituency struct {
	AuditFields
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Code     int64     `gorm:"uniqueIndex;not null" json:"code"`
	CountyID uuid.UUID `gorm:"type:uuid;not null;index" json:"county"`

	County *County `gorm:"foreignKey:CountyID" json:"-"`
}

type Ward struct {
	AuditFields
	Name           string    `gorm:"uniqueIndex;not null" json:"name"`
	Code           int64     `gorm:"uniqueIndex;not null" json:"code"`
	ConstituencyID uuid.UUID `gorm:"type:uuid;not null;index" json:"constituency"`

	Constituency *Constituency `gorm:"foreignKey:ConstituencyID" json:"-"`
}

// CountyID returns the county reached through the preloaded
// constituency, or nil when the chain is not loaded.
func (w Ward) CountyID() *uuid.UUID {
	if w.Constituency == nil {
		return nil
	}
	id := w.Constituency.CountyID
	return &id
}
