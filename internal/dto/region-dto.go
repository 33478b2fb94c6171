package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCountyRequest struct {
	Name string `json:"name"`
	Code int64  `json:"code"` // assigned from the sequence when 0
}

type CreateConstituencyRequest struct {
	Name   string    `json:"name"`
	Code   int64     `json:"code"`
	County uuid.UUID `json:"county"`
}

type CreateWardRequest struct {
	Name         string    `json:"name"`
	Code         int64     `json:"code"`
	Constituency uuid.UUID `json:"constituency"`
}

// UpdateRegionRequest renames a region. Codes are immutable.
type UpdateRegionRequest struct {
	Name *string `json:"name,omitempty"`
}

type CountyResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Code    int64     `json:"code"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	Active  bool      `json:"active"`
}

type ConstituencyResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Code       int64     `json:"code"`
	County     uuid.UUID `json:"county"`
	CountyName string    `json:"county_name"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
	Active     bool      `json:"active"`
}

type WardResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Code             int64      `json:"code"`
	Constituency     uuid.UUID  `json:"constituency"`
	ConstituencyName string     `json:"constituency_name"`
	County           *uuid.UUID `json:"county"`
	CountyName       string     `json:"county_name"`
	Created          time.Time  `json:"created"`
	Updated          time.Time  `json:"updated"`
	Active           bool       `json:"active"`
}
