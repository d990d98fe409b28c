package bankfile_test

import (
	"context"
	"testing"

	"tl-payroll/internal/bankfile"
	bankfileerrors "tl-payroll/internal/bankfile/errors"
	"tl-payroll/internal/company"
	companyerrors "tl-payroll/internal/company/errors"
	"tl-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRunSource struct {
	findRunFn     func(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error)
	findRecordsFn func(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error)
}

func (f *fakeRunSource) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
	return f.findRunFn(ctx, companyID, id)
}

func (f *fakeRunSource) FindRecordsByRun(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error) {
	return f.findRecordsFn(ctx, companyID, runID)
}

type fakeCompanySource struct {
	findByIDFn func(ctx context.Context, id string) (*company.Company, error)
}

func (f *fakeCompanySource) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return f.findByIDFn(ctx, id)
}

func processedRun() *payroll.PayrollRun {
	return &payroll.PayrollRun{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		RunNumber: "RUN-000007",
		Status:    payroll.StatusProcessed,
	}
}

func record(name, bankCode, account string, netCents int64) payroll.PayrollRecord {
	return payroll.PayrollRecord{
		ID:                uuid.New(),
		EmployeeID:        uuid.New(),
		EmployeeName:      name,
		PaymentReference:  "RUN-000007-EMP-0001",
		BankCode:          bankCode,
		BankAccountNumber: account,
		NetPayCents:       netCents,
	}
}

func completeCompany() *company.Company {
	return &company.Company{
		ID:                   uuid.New(),
		Name:                 "Timor Coffee Lda",
		PayrollBankCode:      "BNU",
		PayrollAccountNumber: "0011223344",
		PayrollAccountName:   "Timor Coffee Lda",
	}
}

func TestSummarize_GroupsRecordsAndReportsUnassigned(t *testing.T) {
	run := processedRun()
	runs := &fakeRunSource{
		findRunFn: func(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
			return run, nil
		},
		findRecordsFn: func(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error) {
			return []payroll.PayrollRecord{
				record("Ana Ximenes", "BNU", "1111", 73800),
				record("Joao Belo", "BNU", "2222", 43200),
				record("Rui Pereira", "MANDIRI", "3333", 50000),
				record("Lia Gusmao", "KANGAROO", "4444", 60000),
				record("Zito Amaral", "", "", 55000),
			}, nil
		},
	}

	svc := bankfile.NewService(runs, &fakeCompanySource{})
	resp, err := svc.Summarize(context.Background(), run.CompanyID.String(), run.ID.String())
	assert.NoError(t, err)

	assert.Equal(t, run.RunNumber, resp.RunNumber)
	assert.Len(t, resp.Banks, 2)
	assert.Equal(t, "BNU", resp.Banks[0].Bank)
	assert.Equal(t, 2, resp.Banks[0].RecordCount)
	assert.Equal(t, "1170.00", resp.Banks[0].TotalAmount)
	assert.Equal(t, "MANDIRI", resp.Banks[1].Bank)
	assert.Equal(t, "500.00", resp.Banks[1].TotalAmount)

	assert.Len(t, resp.Unassigned, 2)
	assert.Equal(t, "unsupported bank code: KANGAROO", resp.Unassigned[0].Reason)
	assert.Equal(t, "employee has no bank code", resp.Unassigned[1].Reason)
}

func TestSummarize_RejectsDraftRun(t *testing.T) {
	run := processedRun()
	run.Status = payroll.StatusDraft
	runs := &fakeRunSource{
		findRunFn: func(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
			return run, nil
		},
	}

	svc := bankfile.NewService(runs, &fakeCompanySource{})
	_, err := svc.Summarize(context.Background(), run.CompanyID.String(), run.ID.String())
	assert.ErrorIs(t, err, bankfileerrors.ErrRunNotPayable)
}

func TestGenerateFile_Success(t *testing.T) {
	run := processedRun()
	runs := &fakeRunSource{
		findRunFn: func(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
			return run, nil
		},
		findRecordsFn: func(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error) {
			return []payroll.PayrollRecord{
				record("Ana Ximenes", "BNU", "1111", 73800),
				record("Joao Belo", "BNU", "2222", 43200),
			}, nil
		},
	}
	companies := &fakeCompanySource{
		findByIDFn: func(ctx context.Context, id string) (*company.Company, error) {
			return completeCompany(), nil
		},
	}

	svc := bankfile.NewService(runs, companies)
	result, err := svc.GenerateFile(context.Background(), run.CompanyID.String(), run.ID.String(), "bnu", bankfile.GenerateFileRequest{
		ValueDate: "2026-08-28",
	})

	assert.NoError(t, err)
	assert.Equal(t, bankfile.BankBNU, result.Bank)
	assert.Equal(t, 2, result.RecordCount)
	assert.Equal(t, "1170.00", result.Total.StringFixed(2))
	assert.NotEmpty(t, result.Content)
	assert.Contains(t, result.Filename, "bnu_salary_")
	assert.Contains(t, result.Filename, "20260828")
}

func TestGenerateFile_IncompleteCompanyAccount(t *testing.T) {
	run := processedRun()
	runs := &fakeRunSource{
		findRunFn: func(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
			return run, nil
		},
		findRecordsFn: func(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error) {
			return []payroll.PayrollRecord{record("Ana Ximenes", "BNU", "1111", 73800)}, nil
		},
	}
	companies := &fakeCompanySource{
		findByIDFn: func(ctx context.Context, id string) (*company.Company, error) {
			comp := completeCompany()
			comp.PayrollAccountNumber = ""
			return comp, nil
		},
	}

	svc := bankfile.NewService(runs, companies)
	_, err := svc.GenerateFile(context.Background(), run.CompanyID.String(), run.ID.String(), "BNU", bankfile.GenerateFileRequest{
		ValueDate: "2026-08-28",
	})
	assert.ErrorIs(t, err, companyerrors.ErrPayrollAccountIncomplete)
}

func TestGenerateFile_UnsupportedBank(t *testing.T) {
	svc := bankfile.NewService(&fakeRunSource{}, &fakeCompanySource{})
	_, err := svc.GenerateFile(context.Background(), "company-1", "run-1", "HSBC", bankfile.GenerateFileRequest{
		ValueDate: "2026-08-28",
	})
	assert.ErrorIs(t, err, bankfileerrors.ErrUnsupportedBank)
}

func TestGenerateFile_NoRecordsForBank(t *testing.T) {
	run := processedRun()
	runs := &fakeRunSource{
		findRunFn: func(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
			return run, nil
		},
		findRecordsFn: func(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error) {
			return []payroll.PayrollRecord{record("Ana Ximenes", "BNU", "1111", 73800)}, nil
		},
	}

	svc := bankfile.NewService(runs, &fakeCompanySource{})
	_, err := svc.GenerateFile(context.Background(), run.CompanyID.String(), run.ID.String(), "BRI", bankfile.GenerateFileRequest{
		ValueDate: "2026-08-28",
	})
	assert.ErrorIs(t, err, bankfileerrors.ErrNoRecordsForBank)
}
