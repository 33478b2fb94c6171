package dto

import "github.com/google/uuid"

// CreateCatalogEntryRequest covers the plain name/description reference
// tables (owner types, facility statuses, KEPH levels, regulation
// statuses, contact types, service categories).
type CreateCatalogEntryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateOwnerRequest struct {
	Name         string    `json:"name"`
	Code         int64     `json:"code"` // assigned from the sequence when 0
	Abbreviation string    `json:"abbreviation"`
	Description  string    `json:"description"`
	OwnerType    uuid.UUID `json:"owner_type"`
}

type CreateFacilityTypeRequest struct {
	Name        string `json:"name"`
	SubDivision string `json:"sub_division"`
}

type CreateRegulatingBodyRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type CreateServiceRequest struct {
	Name        string    `json:"name"`
	Code        int64     `json:"code"`
	Description string    `json:"description"`
	Category    uuid.UUID `json:"category"`
}

// UpdateCatalogEntryRequest patches any reference table row; absent
// fields are left alone.
type UpdateCatalogEntryRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Abbreviation *string `json:"abbreviation,omitempty"`
	SubDivision  *string `json:"sub_division,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}
