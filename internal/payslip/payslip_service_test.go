package payslip_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tl-payroll/internal/company"
	"tl-payroll/internal/payroll"
	"tl-payroll/internal/payslip"
	paysliperrors "tl-payroll/internal/payslip/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayslipRepository struct {
	upsertFn             func(ctx context.Context, slip *payslip.Payslip) error
	findByRunFn          func(ctx context.Context, companyID, runID string) ([]payslip.Payslip, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*payslip.Payslip, error)
}

func (f *fakePayslipRepository) Upsert(ctx context.Context, slip *payslip.Payslip) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, slip)
	}
	return nil
}

func (f *fakePayslipRepository) FindByRun(ctx context.Context, companyID, runID string) ([]payslip.Payslip, error) {
	if f.findByRunFn != nil {
		return f.findByRunFn(ctx, companyID, runID)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payslip.Payslip, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRunSource struct {
	run     *payroll.PayrollRun
	records []payroll.PayrollRecord
}

func (f *fakeRunSource) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
	return f.run, nil
}

func (f *fakeRunSource) FindRecordsByRun(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error) {
	return f.records, nil
}

type fakeCompanySource struct{}

func (f *fakeCompanySource) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return &company.Company{ID: uuid.New(), Name: "Timor Coffee Lda"}, nil
}

func paidRun() *payroll.PayrollRun {
	paidAt := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	return &payroll.PayrollRun{
		ID:          uuid.New(),
		CompanyID:   uuid.New(),
		RunNumber:   "RUN-000012",
		PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:      payroll.StatusPaid,
		PaidAt:      &paidAt,
	}
}

func paidRecord(runID uuid.UUID) payroll.PayrollRecord {
	return payroll.PayrollRecord{
		ID:                     uuid.New(),
		RunID:                  runID,
		CompanyID:              uuid.New(),
		EmployeeID:             uuid.New(),
		EmployeeNumber:         "EMP-0001",
		EmployeeName:           "Ana Ximenes",
		PaymentReference:       "RUN-000012-EMP-0001",
		BankCode:               "BNU",
		BankAccountNumber:      "1111",
		RegularPayCents:        80000,
		GrossPayCents:          80000,
		IncomeTaxCents:         3000,
		INSSEmployeeCents:      3200,
		INSSEmployerCents:      4800,
		TotalDeductionCents:    6200,
		NetPayCents:            73800,
		TotalEmployerCostCents: 84800,
	}
}

func TestGenerateForRun_IssuesOnePayslipPerRecord(t *testing.T) {
	run := paidRun()
	records := []payroll.PayrollRecord{paidRecord(run.ID), paidRecord(run.ID)}
	records[1].EmployeeNumber = "EMP-0002"
	records[1].EmployeeName = "Joao Belo"

	var saved []*payslip.Payslip
	repo := &fakePayslipRepository{
		upsertFn: func(ctx context.Context, slip *payslip.Payslip) error {
			saved = append(saved, slip)
			return nil
		},
	}

	svc := payslip.NewService(repo, &fakeRunSource{run: run, records: records}, &fakeCompanySource{})
	count, err := svc.GenerateForRun(context.Background(), run.CompanyID.String(), run.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, saved, 2)
	assert.Equal(t, "payslip_RUN-000012_EMP-0001.pdf", saved[0].Filename)
	assert.Equal(t, int64(73800), saved[0].NetPayCents)
	assert.True(t, bytes.HasPrefix(saved[0].Content, []byte("%PDF")))
	assert.Equal(t, run.PaidAt.UTC(), saved[0].IssuedAt.UTC())
}

func TestGenerateForRun_RejectsUnpaidRun(t *testing.T) {
	run := paidRun()
	run.Status = payroll.StatusProcessed

	svc := payslip.NewService(&fakePayslipRepository{}, &fakeRunSource{run: run}, &fakeCompanySource{})
	_, err := svc.GenerateForRun(context.Background(), run.CompanyID.String(), run.ID.String())
	assert.ErrorIs(t, err, paysliperrors.ErrRunNotPaid)
}

func TestDownload_NotFound(t *testing.T) {
	svc := payslip.NewService(&fakePayslipRepository{}, &fakeRunSource{}, &fakeCompanySource{})
	_, err := svc.Download(context.Background(), "company-1", uuid.NewString())
	assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
}
