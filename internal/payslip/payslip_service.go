package payslip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tl-payroll/internal/company"
	companyerrors "tl-payroll/internal/company/errors"
	"tl-payroll/internal/payroll"
	payrollerrors "tl-payroll/internal/payroll/errors"
	paysliperrors "tl-payroll/internal/payslip/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunSource reads the paid run a payslip batch renders from.
// payroll.Repository satisfies it.
type RunSource interface {
	FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error)
	FindRecordsByRun(ctx context.Context, companyID, runID string) ([]payroll.PayrollRecord, error)
}

// CompanySource reads the issuing company's display name.
// company.Repository satisfies it.
type CompanySource interface {
	FindByID(ctx context.Context, id string) (*company.Company, error)
}

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	GenerateForRun(ctx context.Context, companyID, runID string) (int, error)
	GetByRun(ctx context.Context, companyID, runID string) ([]PayslipResponse, error)
	Download(ctx context.Context, companyID, payslipID string) (*Payslip, error)
}

type service struct {
	repo      Repository
	runs      RunSource
	companies CompanySource
	logger    *zap.Logger
}

func NewService(repo Repository, runs RunSource, companies CompanySource, logger ...*zap.Logger) Service {
	l := zap.L().Named("payslip-service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip-service")
	}
	return &service{repo: repo, runs: runs, companies: companies, logger: l}
}

// GenerateForRun renders one payslip per record of a paid run. It is
// idempotent: rerunning replaces the stored PDFs for the same run.
func (s *service) GenerateForRun(ctx context.Context, companyID, runID string) (int, error) {
	run, err := s.runs.FindRunByIDAndCompany(ctx, companyID, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, payrollerrors.ErrRunNotFound
		}
		return 0, err
	}
	if run.Status != payroll.StatusPaid {
		return 0, paysliperrors.ErrRunNotPaid
	}

	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, companyerrors.ErrCompanyNotFound
		}
		return 0, err
	}

	records, err := s.runs.FindRecordsByRun(ctx, companyID, runID)
	if err != nil {
		return 0, err
	}

	paidAt := time.Now().UTC()
	if run.PaidAt != nil {
		paidAt = *run.PaidAt
	}

	issued := 0
	for _, record := range records {
		content, err := Render(RenderInput{
			CompanyName: comp.Name,
			RunNumber:   run.RunNumber,
			PeriodStart: run.PeriodStart,
			PeriodEnd:   run.PeriodEnd,
			PaidAt:      paidAt,
			Record:      record,
		})
		if err != nil {
			s.logger.Error("payslip render failed",
				zap.String("run_id", runID),
				zap.String("employee_id", record.EmployeeID.String()),
				zap.Error(err),
			)
			return issued, paysliperrors.ErrRenderFailed
		}

		slip := &Payslip{
			ID:           uuid.New(),
			CompanyID:    record.CompanyID,
			RunID:        record.RunID,
			RecordID:     record.ID,
			EmployeeID:   record.EmployeeID,
			EmployeeName: record.EmployeeName,
			Filename: fmt.Sprintf("payslip_%s_%s.pdf",
				run.RunNumber, record.EmployeeNumber),
			Content:     content,
			NetPayCents: record.NetPayCents,
			IssuedAt:    paidAt,
		}
		if err := s.repo.Upsert(ctx, slip); err != nil {
			return issued, err
		}
		issued++
	}

	s.logger.Info("payslips issued",
		zap.String("run_id", runID),
		zap.Int("count", issued),
	)
	return issued, nil
}

func (s *service) GetByRun(ctx context.Context, companyID, runID string) ([]PayslipResponse, error) {
	slips, err := s.repo.FindByRun(ctx, companyID, runID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, 0, len(slips))
	for i := range slips {
		resp = append(resp, mapToResponse(&slips[i]))
	}
	return resp, nil
}

func (s *service) Download(ctx context.Context, companyID, payslipID string) (*Payslip, error) {
	slip, err := s.repo.FindByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paysliperrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return slip, nil
}

func mapToResponse(slip *Payslip) PayslipResponse {
	return PayslipResponse{
		ID:           slip.ID.String(),
		RunID:        slip.RunID.String(),
		EmployeeID:   slip.EmployeeID.String(),
		EmployeeName: slip.EmployeeName,
		Filename:     slip.Filename,
		NetPay:       decimal.NewFromInt(slip.NetPayCents).Shift(-2).StringFixed(2),
		IssuedAt:     slip.IssuedAt,
	}
}
