package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ehealth-ke/facility-registry/internal/domain"
	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper"
	"github.com/ehealth-ke/facility-registry/internal/repository"
)

type UserService interface {
	Register(req dto.CreateUserRequest, actorID uuid.UUID) (*dto.UserResponse, error)
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	Get(id uuid.UUID) (*dto.UserResponse, error)
	List() ([]dto.UserResponse, error)

	AssignCounty(req dto.AssignCountyRequest, actorID uuid.UUID) (*domain.UserCounty, error)
	ListUserCounties(userID *uuid.UUID) ([]domain.UserCounty, error)
	RetireUserCounty(id uuid.UUID, actorID uuid.UUID) error

	AssignConstituency(req dto.AssignConstituencyRequest, actorID uuid.UUID) (*domain.UserConstituency, error)
	ListUserConstituencies(userID *uuid.UUID) ([]domain.UserConstituency, error)
	RetireUserConstituency(id uuid.UUID, actorID uuid.UUID) error

	AssignRegulatoryBody(req dto.AssignRegulatoryBodyRequest, actorID uuid.UUID) (*domain.RegulatoryBodyUser, error)
	GetRegulatoryBodyUser(id uuid.UUID) (*domain.RegulatoryBodyUser, error)
	ListRegulatoryBodyUsers(bodyID *uuid.UUID) ([]domain.RegulatoryBodyUser, error)

	ScopeFor(userID uuid.UUID) (domain.Scope, error)
}

type userService struct {
	users    repository.UserRepository
	regions  repository.RegionRepository
	catalogs repository.CatalogRepository
	auth     helper.Auth
	log      zerolog.Logger
}

func NewUserService(
	users repository.UserRepository,
	regions repository.RegionRepository,
	catalogs repository.CatalogRepository,
	auth helper.Auth,
	log zerolog.Logger,
) UserService {
	return &userService{
		users:    users,
		regions:  regions,
		catalogs: catalogs,
		auth:     auth,
		log:      log,
	}
}

func (s *userService) Register(req dto.CreateUserRequest, actorID uuid.UUID) (*dto.UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	verr := &domain.ValidationError{}
	if email == "" || !strings.Contains(email, "@") {
		verr.Add("email", "a valid email is required")
	}
	if len(req.Password) < 6 {
		verr.Add("password", "password must be at least 6 characters")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &domain.User{
		Email:          email,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		OtherNames:     strings.TrimSpace(req.OtherNames),
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		PasswordHash:   string(hashed),
		IsNational:     req.IsNational,
		IsStaff:        req.IsStaff,
	}
	user.Stamp(actorID)

	if err := s.users.CreateUser(user); err != nil {
		return nil, helper.TranslateDBError(err)
	}

	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *userService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return nil, errors.New("invalid email or password")
	}

	user, err := s.users.FindUserByEmail(email)
	if err != nil || user == nil || !user.Active {
		return nil, errors.New("invalid email or password")
	}
	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		Token: token,
		User:  user.ID,
		Email: user.Email,
	}, nil
}

func (s *userService) Get(id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindUser(id)
	if err != nil {
		return nil, err
	}
	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *userService) List() ([]dto.UserResponse, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, buildUserResponse(&users[i]))
	}
	return out, nil
}

// ---------- Scope assignments ----------

func (s *userService) AssignCounty(req dto.AssignCountyRequest, actorID uuid.UUID) (*domain.UserCounty, error) {
	if _, err := s.users.FindUser(req.User); err != nil {
		return nil, domain.NewValidationError("user", "user does not exist")
	}
	if _, err := s.regions.FindCounty(req.County); err != nil {
		return nil, domain.NewValidationError("county", "county does not exist")
	}

	uc := &domain.UserCounty{
		UserID:   req.User,
		CountyID: req.County,
		IsActive: true,
	}
	uc.Stamp(actorID)

	if err := s.users.AssignCounty(uc); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return uc, nil
}

func (s *userService) ListUserCounties(userID *uuid.UUID) ([]domain.UserCounty, error) {
	return s.users.ListUserCounties(userID)
}

func (s *userService) RetireUserCounty(id uuid.UUID, actorID uuid.UUID) error {
	return s.users.UpdateUserCounty(id, map[string]any{
		"is_active":     false,
		"updated":       time.Now().UTC(),
		"updated_by_id": actorID,
	})
}

func (s *userService) AssignConstituency(req dto.AssignConstituencyRequest, actorID uuid.UUID) (*domain.UserConstituency, error) {
	if _, err := s.users.FindUser(req.User); err != nil {
		return nil, domain.NewValidationError("user", "user does not exist")
	}
	if _, err := s.regions.FindConstituency(req.Constituency); err != nil {
		return nil, domain.NewValidationError("constituency", "constituency does not exist")
	}

	uc := &domain.UserConstituency{
		UserID:         req.User,
		ConstituencyID: req.Constituency,
		IsActive:       true,
	}
	uc.Stamp(actorID)

	if err := s.users.AssignConstituency(uc); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return uc, nil
}

func (s *userService) ListUserConstituencies(userID *uuid.UUID) ([]domain.UserConstituency, error) {
	return s.users.ListUserConstituencies(userID)
}

func (s *userService) RetireUserConstituency(id uuid.UUID, actorID uuid.UUID) error {
	return s.users.UpdateUserConstituency(id, map[string]any{
		"is_active":     false,
		"updated":       time.Now().UTC(),
		"updated_by_id": actorID,
	})
}

func (s *userService) AssignRegulatoryBody(req dto.AssignRegulatoryBodyRequest, actorID uuid.UUID) (*domain.RegulatoryBodyUser, error) {
	if _, err := s.users.FindUser(req.User); err != nil {
		return nil, domain.NewValidationError("user", "user does not exist")
	}
	if _, err := s.catalogs.FindRegulatingBody(req.RegulatoryBody); err != nil {
		return nil, domain.NewValidationError("regulatory_body", "regulatory body does not exist")
	}

	ru := &domain.RegulatoryBodyUser{
		UserID:           req.User,
		RegulatoryBodyID: req.RegulatoryBody,
		IsActive:         true,
	}
	ru.Stamp(actorID)

	if err := s.users.AssignRegulatoryBody(ru); err != nil {
		return nil, helper.TranslateDBError(err)
	}
	return ru, nil
}

func (s *userService) GetRegulatoryBodyUser(id uuid.UUID) (*domain.RegulatoryBodyUser, error) {
	return s.users.FindRegulatoryBodyUser(id)
}

func (s *userService) ListRegulatoryBodyUsers(bodyID *uuid.UUID) ([]domain.RegulatoryBodyUser, error) {
	return s.users.ListRegulatoryBodyUsers(bodyID)
}

func (s *userService) ScopeFor(userID uuid.UUID) (domain.Scope, error) {
	return s.users.ScopeFor(userID)
}

func buildUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName(),
		EmployeeNumber: u.EmployeeNumber,
		IsNational:     u.IsNational,
		IsStaff:        u.IsStaff,
		Active:         u.Active,
	}
}
