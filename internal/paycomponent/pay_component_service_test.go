package paycomponent_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"tl-payroll/internal/paycomponent"
	paycomponenterrors "tl-payroll/internal/paycomponent/errors"
	"tl-payroll/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeComponentRepository struct {
	withTxFn                   func(tx *sql.Tx) paycomponent.Repository
	createFn                   func(ctx context.Context, comp *paycomponent.PayComponent) error
	findByEmployeeFn           func(ctx context.Context, companyID, employeeID string) ([]paycomponent.PayComponent, error)
	findByIDAndCompanyFn       func(ctx context.Context, companyID, id string) (*paycomponent.PayComponent, error)
	updateFn                   func(ctx context.Context, comp *paycomponent.PayComponent) error
	deleteFn                   func(ctx context.Context, companyID, id string) error
	findActiveByCompanyFn      func(ctx context.Context, companyID string, asOf time.Time) ([]paycomponent.PayComponent, error)
	employeeBelongsToCompanyFn func(ctx context.Context, companyID, employeeID string) (bool, error)
}

func (f *fakeComponentRepository) WithTx(tx *sql.Tx) paycomponent.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeComponentRepository) Create(ctx context.Context, comp *paycomponent.PayComponent) error {
	if f.createFn != nil {
		return f.createFn(ctx, comp)
	}
	return nil
}

func (f *fakeComponentRepository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]paycomponent.PayComponent, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeComponentRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*paycomponent.PayComponent, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeComponentRepository) Update(ctx context.Context, comp *paycomponent.PayComponent) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, comp)
	}
	return nil
}

func (f *fakeComponentRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeComponentRepository) FindActiveByCompany(ctx context.Context, companyID string, asOf time.Time) ([]paycomponent.PayComponent, error) {
	if f.findActiveByCompanyFn != nil {
		return f.findActiveByCompanyFn(ctx, companyID, asOf)
	}
	return nil, nil
}

func (f *fakeComponentRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.employeeBelongsToCompanyFn != nil {
		return f.employeeBelongsToCompanyFn(ctx, companyID, employeeID)
	}
	return true, nil
}

func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectCommit()
	return db
}

func TestCreateComponent_DerivesKindFromCode(t *testing.T) {
	db := newTxDB(t)

	var created *paycomponent.PayComponent
	repo := &fakeComponentRepository{
		createFn: func(ctx context.Context, comp *paycomponent.PayComponent) error {
			created = comp
			return nil
		},
	}

	svc := paycomponent.NewService(db, repo)
	resp, err := svc.Create(context.Background(), uuid.NewString(), paycomponent.CreateComponentRequest{
		EmployeeID:    uuid.NewString(),
		Code:          paycomponent.CodeLoanRepayment,
		AmountCents:   25000,
		EffectiveFrom: "2026-08-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, paycomponent.KindDeduction, resp.Kind)
	assert.Equal(t, paycomponent.CodeLoanRepayment, resp.Code)
	assert.Equal(t, "2026-08-01", resp.EffectiveFrom)
	assert.Nil(t, resp.EffectiveTo)
	if assert.NotNil(t, created) {
		assert.Equal(t, paycomponent.KindDeduction, created.Kind)
		assert.Equal(t, int64(25000), created.AmountCents)
	}
}

func TestCreateComponent_RejectsUnknownCode(t *testing.T) {
	svc := paycomponent.NewService(nil, &fakeComponentRepository{})
	_, err := svc.Create(context.Background(), uuid.NewString(), paycomponent.CreateComponentRequest{
		EmployeeID:    uuid.NewString(),
		Code:          "THIRTEENTH_MONTH",
		AmountCents:   10000,
		EffectiveFrom: "2026-08-01",
	})

	assert.ErrorIs(t, err, paycomponenterrors.ErrUnknownComponentCode)
}

func TestCreateComponent_RejectsMalformedEffectiveFrom(t *testing.T) {
	svc := paycomponent.NewService(nil, &fakeComponentRepository{})
	_, err := svc.Create(context.Background(), uuid.NewString(), paycomponent.CreateComponentRequest{
		EmployeeID:    uuid.NewString(),
		Code:          paycomponent.CodeBonus,
		AmountCents:   10000,
		EffectiveFrom: "01/08/2026",
	})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestCreateComponent_RejectsEmployeeOutsideCompany(t *testing.T) {
	db := newTxDB(t)

	repo := &fakeComponentRepository{
		employeeBelongsToCompanyFn: func(ctx context.Context, companyID, employeeID string) (bool, error) {
			return false, nil
		},
	}

	svc := paycomponent.NewService(db, repo)
	_, err := svc.Create(context.Background(), uuid.NewString(), paycomponent.CreateComponentRequest{
		EmployeeID:    uuid.NewString(),
		Code:          paycomponent.CodeBonus,
		AmountCents:   10000,
		EffectiveFrom: "2026-08-01",
	})

	assert.ErrorIs(t, err, paycomponenterrors.ErrEmployeeNotInCompany)
}

func TestCreateComponent_MapsSlotUniqueViolation(t *testing.T) {
	db := newTxDB(t)

	repo := &fakeComponentRepository{
		createFn: func(ctx context.Context, comp *paycomponent.PayComponent) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_pay_component_slot"}
		},
	}

	svc := paycomponent.NewService(db, repo)
	_, err := svc.Create(context.Background(), uuid.NewString(), paycomponent.CreateComponentRequest{
		EmployeeID:    uuid.NewString(),
		Code:          paycomponent.CodeFoodAllowance,
		AmountCents:   5000,
		EffectiveFrom: "2026-08-01",
	})

	assert.ErrorIs(t, err, paycomponenterrors.ErrComponentSlotTaken)
}

func TestActiveTotals_BucketsPerEmployeeSlot(t *testing.T) {
	emplA := uuid.New()
	emplB := uuid.New()

	repo := &fakeComponentRepository{
		findActiveByCompanyFn: func(ctx context.Context, companyID string, asOf time.Time) ([]paycomponent.PayComponent, error) {
			return []paycomponent.PayComponent{
				{EmployeeID: emplA, Code: paycomponent.CodeBonus, AmountCents: 10000},
				{EmployeeID: emplA, Code: paycomponent.CodeBonus, AmountCents: 2500},
				{EmployeeID: emplA, Code: paycomponent.CodeLoanRepayment, AmountCents: 7500},
				{EmployeeID: emplB, Code: paycomponent.CodeTransportAllowance, AmountCents: 3000},
			}, nil
		},
	}

	svc := paycomponent.NewService(nil, repo)
	totals, err := svc.ActiveTotals(context.Background(), uuid.NewString(), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	if assert.Len(t, totals, 2) {
		assert.Equal(t, emplA.String(), totals[0].EmployeeID)
		assert.Equal(t, int64(12500), totals[0].BonusCents)
		assert.Equal(t, int64(7500), totals[0].LoanRepaymentCents)
		assert.Zero(t, totals[0].TransportAllowanceCents)

		assert.Equal(t, emplB.String(), totals[1].EmployeeID)
		assert.Equal(t, int64(3000), totals[1].TransportAllowanceCents)
	}
}

func TestUpdateComponent_ClearsEffectiveTo(t *testing.T) {
	db := newTxDB(t)

	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	existing := &paycomponent.PayComponent{
		ID:            uuid.New(),
		CompanyID:     uuid.New(),
		EmployeeID:    uuid.New(),
		Kind:          paycomponent.KindEarning,
		Code:          paycomponent.CodeBonus,
		AmountCents:   10000,
		EffectiveFrom: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTo:   &to,
	}

	var updated *paycomponent.PayComponent
	repo := &fakeComponentRepository{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*paycomponent.PayComponent, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, comp *paycomponent.PayComponent) error {
			updated = comp
			return nil
		},
	}

	svc := paycomponent.NewService(db, repo)
	resp, err := svc.Update(context.Background(), existing.CompanyID.String(), existing.ID.String(), paycomponent.UpdateComponentRequest{
		AmountCents: 15000,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(15000), resp.AmountCents)
	assert.Nil(t, resp.EffectiveTo)
	if assert.NotNil(t, updated) {
		assert.Nil(t, updated.EffectiveTo)
	}
}
