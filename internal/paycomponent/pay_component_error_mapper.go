package paycomponent

import (
	"errors"
	"strings"

	paycomponenterrors "tl-payroll/internal/paycomponent/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if isComponentSlotViolation(err) {
		return paycomponenterrors.ErrComponentSlotTaken
	}
	return err
}

func isComponentSlotViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_pay_component_slot"
	}

	// GORM may wrap the driver error in a plain string.
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_pay_component_slot")
}
