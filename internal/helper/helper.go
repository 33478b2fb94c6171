package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

const pgUniqueViolation = "23505"

// constraint name -> field the violation should be reported against
var uniqueConstraintFields = map[string]string{
	"uidx_user_counties_one_active":         "county",
	"uidx_user_constituencies_one_active":   "constituency",
	"uidx_regulatory_body_users_one_active": "regulatory_body",
	"uidx_facility_contacts_pair":           "contact",
	"uidx_facility_services_pair":           "service",
}

// TranslateDBError turns Postgres unique violations into the same
// validation shape the pre-write checks produce, so the losing side of
// a race surfaces a field error instead of a 500.
func TranslateDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}

	if field, ok := uniqueConstraintFields[pgErr.ConstraintName]; ok {
		return domain.NewValidationError(field, "an active record already exists")
	}
	if strings.Contains(pgErr.ConstraintName, "name") {
		return domain.NewValidationError("name", "a record with this name already exists")
	}
	if strings.Contains(pgErr.ConstraintName, "code") {
		return domain.NewValidationError("code", "a record with this code already exists")
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return domain.NewValidationError("email", "a user with this email already exists")
	}
	return domain.NewValidationError("detail", "duplicate record")
}
