package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	OtherNames     string `json:"other_names"`
	EmployeeNumber string `json:"employee_number"`
	IsNational     bool   `json:"is_national"`
	IsStaff        bool   `json:"is_staff"`
}

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	EmployeeNumber string    `json:"employee_number"`
	IsNational     bool      `json:"is_national"`
	IsStaff        bool      `json:"is_staff"`
	Active         bool      `json:"active"`
}

// AssignCountyRequest gives a user county-level visibility. An active
// assignment must be retired before another is created.
type AssignCountyRequest struct {
	User   uuid.UUID `json:"user"`
	County uuid.UUID `json:"county"`
}

type AssignConstituencyRequest struct {
	User         uuid.UUID `json:"user"`
	Constituency uuid.UUID `json:"constituency"`
}

type AssignRegulatoryBodyRequest struct {
	User           uuid.UUID `json:"user"`
	RegulatoryBody uuid.UUID `json:"regulatory_body"`
}
