package bankfile

import (
	"context"
	"errors"
	"strings"
	"time"

	bankfileerrors "tl-payroll/internal/bankfile/errors"
	"tl-payroll/internal/company"
	companyerrors "tl-payroll/internal/company/errors"
	"tl-payroll/internal/payroll"
	payrollerrors "tl-payroll/internal/payroll/errors"
	"tl-payroll/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunSource reads the processed payroll data a bank file is built from.
// payroll.Repository satisfies it.
type RunSource interface {
	FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error)
	FindRecordsByRun(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error)
}

// CompanySource reads the tenant's debit account details.
// company.Repository satisfies it.
type CompanySource interface {
	FindByID(ctx context.Context, id string) (*company.Company, error)
}

//go:generate mockgen -source=bankfile_service.go -destination=mock/bankfile_service_mock.go -package=mock
type Service interface {
	Summarize(ctx context.Context, companyID, runID string) (*RunSummaryResponse, error)
	GenerateFile(ctx context.Context, companyID, runID, bankCode string, req GenerateFileRequest) (BankFileResult, error)
}

type service struct {
	runs      RunSource
	companies CompanySource
	logger    *zap.Logger
}

func NewService(runs RunSource, companies CompanySource, logger ...*zap.Logger) Service {
	l := zap.L().Named("bankfile-service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bankfile-service")
	}
	return &service{runs: runs, companies: companies, logger: l}
}

func (s *service) Summarize(ctx context.Context, companyID, runID string) (*RunSummaryResponse, error) {
	run, grouping, err := s.loadGrouping(ctx, companyID, runID)
	if err != nil {
		return nil, err
	}

	resp := &RunSummaryResponse{
		RunID:      run.ID.String(),
		RunNumber:  run.RunNumber,
		Status:     run.Status,
		Banks:      make([]BankSummaryResponse, 0, len(grouping.Buckets)),
		Unassigned: make([]UnassignedResponse, 0, len(grouping.Unassigned)),
	}

	for _, bank := range grouping.BanksWithRecords() {
		total := decimal.Zero
		for _, record := range grouping.Buckets[bank] {
			total = total.Add(record.Amount.Round(2))
		}
		resp.Banks = append(resp.Banks, BankSummaryResponse{
			Bank:        string(bank),
			RecordCount: len(grouping.Buckets[bank]),
			TotalAmount: total.StringFixed(2),
		})
	}

	for _, unassigned := range grouping.Unassigned {
		resp.Unassigned = append(resp.Unassigned, UnassignedResponse{
			RecordID:     unassigned.Record.RecordID,
			EmployeeID:   unassigned.Record.EmployeeID,
			EmployeeName: unassigned.Record.EmployeeName,
			NetPay:       unassigned.Record.Amount.StringFixed(2),
			Reason:       unassigned.Reason,
		})
	}

	return resp, nil
}

func (s *service) GenerateFile(ctx context.Context, companyID, runID, bankCode string, req GenerateFileRequest) (BankFileResult, error) {
	bank, ok := ParseBankCode(strings.ToUpper(strings.TrimSpace(bankCode)))
	if !ok {
		return BankFileResult{}, bankfileerrors.ErrUnsupportedBank
	}

	valueDate, err := time.Parse("2006-01-02", req.ValueDate)
	if err != nil {
		return BankFileResult{}, apperror.InvalidField("value_date")
	}

	run, grouping, err := s.loadGrouping(ctx, companyID, runID)
	if err != nil {
		return BankFileResult{}, err
	}

	records := grouping.Buckets[bank]
	if len(records) == 0 {
		return BankFileResult{}, bankfileerrors.ErrNoRecordsForBank
	}

	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BankFileResult{}, companyerrors.ErrCompanyNotFound
		}
		return BankFileResult{}, err
	}
	if strings.TrimSpace(comp.PayrollBankCode) == "" ||
		strings.TrimSpace(comp.PayrollAccountNumber) == "" ||
		strings.TrimSpace(comp.PayrollAccountName) == "" {
		return BankFileResult{}, companyerrors.ErrPayrollAccountIncomplete
	}

	result, err := Generate(bank, GenerateRequest{
		RunNumber:            run.RunNumber,
		PeriodLabel:          run.PeriodEnd.Format("2006-01"),
		ValueDate:            valueDate,
		CompanyName:          comp.PayrollAccountName,
		CompanyAccountNumber: comp.PayrollAccountNumber,
		Records:              records,
	})
	if err != nil {
		s.logger.Error("bank file generation failed",
			zap.String("run_id", runID),
			zap.String("bank", string(bank)),
			zap.Error(err),
		)
		return BankFileResult{}, apperror.Wrap(err,
			bankfileerrors.ErrFileGenerationFailed.Code,
			bankfileerrors.ErrFileGenerationFailed.Message,
			bankfileerrors.ErrFileGenerationFailed.HTTPStatus,
		)
	}

	s.logger.Info("bank file generated",
		zap.String("run_id", runID),
		zap.String("bank", string(bank)),
		zap.Int("records", result.RecordCount),
		zap.String("total", result.Total.StringFixed(2)),
	)
	return result, nil
}

func (s *service) loadGrouping(ctx context.Context, companyID, runID string) (*payroll.PayrollRun, Grouping, error) {
	run, err := s.runs.FindRunByIDAndCompany(ctx, companyID, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Grouping{}, payrollerrors.ErrRunNotFound
		}
		return nil, Grouping{}, err
	}
	if run.Status != payroll.StatusProcessed && run.Status != payroll.StatusPaid {
		return nil, Grouping{}, bankfileerrors.ErrRunNotPayable
	}

	rows, err := s.runs.FindRecordsByRun(ctx, companyID, runID)
	if err != nil {
		return nil, Grouping{}, err
	}

	// Processing snapshots each employee's name and bank details onto the
	// record, so the grouping reads the snapshot and never the live
	// employee row.
	records := make([]RecordView, 0, len(rows))
	employees := make([]EmployeeView, 0, len(rows))
	for _, row := range rows {
		records = append(records, RecordView{
			RecordID:   row.ID.String(),
			EmployeeID: row.EmployeeID.String(),
			NetPay:     decimal.NewFromInt(row.NetPayCents).Shift(-2),
			Reference:  row.PaymentReference,
		})
		employees = append(employees, EmployeeView{
			EmployeeID:    row.EmployeeID.String(),
			FullName:      row.EmployeeName,
			BankCode:      row.BankCode,
			AccountNumber: row.BankAccountNumber,
		})
	}

	return run, GroupRecordsByBank(records, employees), nil
}
