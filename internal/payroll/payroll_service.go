package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tl-payroll/internal/attendance"
	"tl-payroll/internal/employee"
	"tl-payroll/internal/events"
	"tl-payroll/internal/leave"
	"tl-payroll/internal/messaging/kafka"
	"tl-payroll/internal/paycomponent"
	payrollerrors "tl-payroll/internal/payroll/errors"
	"tl-payroll/internal/payrollcalc"
	"tl-payroll/internal/shared/contextutil"
	"tl-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeSource supplies the active employees of a company at processing
// time. Satisfied by the employee repository.
type EmployeeSource interface {
	FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
}

// HoursSource supplies per-employee hour buckets for the run period.
// Satisfied by the attendance service.
type HoursSource interface {
	SummarizePeriod(ctx context.Context, companyID string, from, to time.Time) ([]attendance.PeriodSummary, error)
}

// LeaveSource supplies approved leave usage. Satisfied by the leave service.
type LeaveSource interface {
	SummarizeUsage(ctx context.Context, companyID string, from, to time.Time) ([]leave.UsageSummary, error)
}

// ComponentsSource supplies recurring earnings and deductions. Satisfied
// by the paycomponent service.
type ComponentsSource interface {
	ActiveTotals(ctx context.Context, companyID string, asOf time.Time) ([]paycomponent.Totals, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CreateRun(ctx context.Context, companyID, actorID string, req CreateRunRequest) (RunResponse, error)
	GetAll(ctx context.Context, companyID string) ([]RunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RunDetailResponse, error)
	Process(ctx context.Context, companyID, actorID, id string) (RunResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string) (RunResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (RunResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EmployeeSource
	hours      HoursSource
	leaves     LeaveSource
	components ComponentsSource
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	rules      payrollcalc.Rules
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeSource,
	hours HoursSource,
	leaves LeaveSource,
	components ComponentsSource,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		hours:      hours,
		leaves:     leaves,
		components: components,
		counter:    counterRepo,
		outbox:     outboxRepo,
		rules:      payrollcalc.TimorLesteRules(),
		logger:     l,
	}
}

func (s *service) CreateRun(
	ctx context.Context,
	companyID, actorID string,
	req CreateRunRequest,
) (RunResponse, error) {
	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidPeriod
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidPeriod
	}
	if periodEnd.Before(periodStart) {
		return RunResponse{}, payrollerrors.ErrInvalidPeriod
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingRun(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return RunResponse{}, err
	}
	if overlap {
		return RunResponse{}, payrollerrors.ErrRunOverlap
	}

	seq, err := s.counter.GetNextValue(ctx, companyID, counter.TypePayrollRunNumber)
	if err != nil {
		return RunResponse{}, err
	}

	run := &PayrollRun{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		RunNumber:   fmt.Sprintf("RUN-%06d", seq),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Frequency:   req.Frequency,
		Status:      StatusDraft,
		CreatedBy:   uuid.MustParse(actorID),
	}

	if err := qtx.CreateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	s.logger.Info("payroll run created",
		zap.String("run_id", run.ID.String()),
		zap.String("run_number", run.RunNumber),
		zap.String("company_id", companyID),
		zap.String("period_start", req.PeriodStart),
		zap.String("period_end", req.PeriodEnd),
	)
	return mapToRunResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]RunResponse, error) {
	runs, err := s.repo.FindRunsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]RunResponse, len(runs))
	for i, r := range runs {
		res[i] = mapToRunResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RunDetailResponse, error) {
	run, err := s.repo.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunDetailResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunDetailResponse{}, err
	}

	records, err := s.repo.FindRecordsByRun(ctx, companyID, id)
	if err != nil {
		return RunDetailResponse{}, err
	}

	detail := RunDetailResponse{
		RunResponse: mapToRunResponse(*run),
		Records:     make([]RecordResponse, len(records)),
	}
	for i, rec := range records {
		detail.Records[i] = mapToRecordResponse(rec)
	}
	return detail, nil
}

// Process recalculates every active employee for the run period and
// freezes the results as records. The records are persisted even when some
// net pays are negative so the operator can inspect the offenders, but the
// run only advances to PROCESSED when the count is zero.
func (s *service) Process(ctx context.Context, companyID, actorID, id string) (RunResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunResponse{}, err
	}
	if run.Status != StatusDraft && run.Status != StatusProcessed {
		return RunResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	employees, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return RunResponse{}, err
	}
	if len(employees) == 0 {
		return RunResponse{}, payrollerrors.ErrNoActiveEmployees
	}

	inputs, err := s.buildInputs(ctx, companyID, run, employees)
	if err != nil {
		return RunResponse{}, err
	}

	records := make([]PayrollRecord, 0, len(employees))
	var totalGross, totalNet, totalCost int64
	negatives := 0

	for i, empl := range employees {
		result, err := payrollcalc.Calculate(inputs[i], s.rules)
		if err != nil {
			s.logger.Error("payroll calculation failed",
				zap.String("run_id", id),
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return RunResponse{}, err
		}

		rec := buildRecord(run, empl, result)
		if rec.NetPayCents < 0 {
			negatives++
			s.logger.Warn("negative net pay computed",
				zap.String("run_id", id),
				zap.String("employee_number", empl.EmployeeNumber),
				zap.Int64("net_pay_cents", rec.NetPayCents),
			)
		}
		totalGross += rec.GrossPayCents
		totalNet += rec.NetPayCents
		totalCost += rec.TotalEmployerCostCents
		records = append(records, rec)
	}

	if err := qtx.ReplaceRecords(ctx, id, records); err != nil {
		return RunResponse{}, err
	}

	run.EmployeeCount = len(records)
	run.NegativeNetCount = negatives
	run.TotalGrossCents = totalGross
	run.TotalNetCents = totalNet
	run.TotalEmployerCostCents = totalCost

	if negatives == 0 {
		now := time.Now().UTC()
		run.Status = StatusProcessed
		run.ProcessedAt = &now
	} else {
		run.Status = StatusDraft
		run.ProcessedAt = nil
	}

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	if negatives > 0 {
		return RunResponse{}, payrollerrors.ErrNegativeNetPay
	}

	s.logger.Info("payroll run processed",
		zap.String("run_id", id),
		zap.String("run_number", run.RunNumber),
		zap.Int("employee_count", run.EmployeeCount),
		zap.Int64("total_net_cents", run.TotalNetCents),
	)
	return mapToRunResponse(*run), nil
}

func (s *service) MarkPaid(ctx context.Context, companyID, actorID, id string) (RunResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunResponse{}, err
	}
	if run.Status != StatusProcessed {
		return RunResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	paidBy := uuid.MustParse(actorID)
	run.Status = StatusPaid
	run.PaidBy = &paidBy
	run.PaidAt = &now

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}

	if s.outbox != nil {
		event := events.PayrollRunPaidEvent{
			EventType:  "payroll.run.paid",
			RunID:      run.ID.String(),
			CompanyID:  companyID,
			PaidBy:     actorID,
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return RunResponse{}, err
		}
		err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "payroll_run",
			AggregateID:   run.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollRunPaidTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
		if err != nil {
			return RunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	s.logger.Info("payroll run marked paid",
		zap.String("run_id", id),
		zap.String("run_number", run.RunNumber),
		zap.String("paid_by", actorID),
	)
	return mapToRunResponse(*run), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (RunResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunResponse{}, err
	}
	if run.Status == StatusPaid || run.Status == StatusCancelled {
		return RunResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	run.Status = StatusCancelled
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	s.logger.Info("payroll run cancelled",
		zap.String("run_id", id),
		zap.String("cancelled_by", actorID),
	)
	return mapToRunResponse(*run), nil
}

// buildInputs assembles one engine input per employee, in the same order
// as the employees slice.
func (s *service) buildInputs(
	ctx context.Context,
	companyID string,
	run *PayrollRun,
	employees []employee.Employee,
) ([]payrollcalc.PayrollInput, error) {
	hourSummaries, err := s.hours.SummarizePeriod(ctx, companyID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return nil, err
	}
	hoursByEmployee := make(map[string]attendance.PeriodSummary, len(hourSummaries))
	for _, hs := range hourSummaries {
		hoursByEmployee[hs.EmployeeID] = hs
	}

	periodLeave, err := s.leaves.SummarizeUsage(ctx, companyID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return nil, err
	}
	leaveByEmployee := make(map[string]leave.UsageSummary, len(periodLeave))
	for _, lu := range periodLeave {
		leaveByEmployee[lu.EmployeeID] = lu
	}

	yearStart := time.Date(run.PeriodStart.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	ytdLeave, err := s.leaves.SummarizeUsage(ctx, companyID, yearStart, run.PeriodEnd)
	if err != nil {
		return nil, err
	}
	ytdSickByEmployee := make(map[string]int, len(ytdLeave))
	for _, lu := range ytdLeave {
		ytdSickByEmployee[lu.EmployeeID] = lu.SickLeaveDays
	}

	componentTotals, err := s.components.ActiveTotals(ctx, companyID, run.PeriodEnd)
	if err != nil {
		return nil, err
	}
	componentsByEmployee := make(map[string]paycomponent.Totals, len(componentTotals))
	for _, ct := range componentTotals {
		componentsByEmployee[ct.EmployeeID] = ct
	}

	ytdTotals, err := s.repo.SumPaidYearToDate(ctx, companyID, run.PeriodStart.Year(), run.PeriodStart)
	if err != nil {
		return nil, err
	}
	ytdByEmployee := make(map[string]YTDTotals, len(ytdTotals))
	for _, yt := range ytdTotals {
		ytdByEmployee[yt.EmployeeID] = yt
	}

	inputs := make([]payrollcalc.PayrollInput, len(employees))
	for i, empl := range employees {
		emplID := empl.ID.String()
		hs, hasHours := hoursByEmployee[emplID]
		lu := leaveByEmployee[emplID]
		ct := componentsByEmployee[emplID]
		yt := ytdByEmployee[emplID]

		regularHours := decimal.NewFromFloat(hs.RegularHours)
		if !hasHours && !empl.IsHourly {
			// Salaried employees without timesheet rows are paid the full
			// standard period; only hourly staff require recorded hours.
			regularHours = s.defaultRegularHours(empl.PayFrequency)
		}

		inputs[i] = payrollcalc.PayrollInput{
			EmployeeID: emplID,

			MonthlySalary: centsToDecimal(empl.MonthlySalaryCents),
			HourlyRate:    centsToDecimal(empl.HourlyRateCents),
			IsHourly:      empl.IsHourly,
			Frequency:     payrollcalc.PayFrequency(empl.PayFrequency),

			Hours: payrollcalc.HourBuckets{
				Regular:     regularHours,
				Overtime:    decimal.NewFromFloat(hs.OvertimeHours),
				NightShift:  decimal.NewFromFloat(hs.NightHours),
				Holiday:     decimal.NewFromFloat(hs.HolidayHours),
				RestDay:     decimal.NewFromFloat(hs.RestDayHours),
				Absence:     decimal.NewFromFloat(hs.AbsenceHours),
				LateMinutes: int64(hs.LateMinutes),
			},
			Leave: payrollcalc.LeaveUsage{
				SickDaysUsed:    lu.SickLeaveDays,
				SickDaysUsedYTD: ytdSickByEmployee[emplID],
			},
			Supplemental: payrollcalc.SupplementalPay{
				Bonus:              centsToDecimal(ct.BonusCents),
				Commission:         centsToDecimal(ct.CommissionCents),
				PerDiem:            centsToDecimal(ct.PerDiemCents),
				FoodAllowance:      centsToDecimal(ct.FoodAllowanceCents),
				TransportAllowance: centsToDecimal(ct.TransportAllowanceCents),
				Other:              centsToDecimal(ct.OtherEarningCents),
			},
			Tax: payrollcalc.TaxProfile{
				Resident: empl.Resident,
				Exempt:   empl.TaxExempt,
			},
			Deductions: payrollcalc.DeductionInputs{
				LoanRepayment:    centsToDecimal(ct.LoanRepaymentCents),
				AdvanceRepayment: centsToDecimal(ct.AdvanceRepaymentCents),
				CourtOrdered:     centsToDecimal(ct.CourtOrderedCents),
				Other:            centsToDecimal(ct.OtherDeductionCents),
			},
			YTD: payrollcalc.YearToDate{
				GrossPay:     centsToDecimal(yt.GrossPayCents),
				IncomeTax:    centsToDecimal(yt.IncomeTaxCents),
				INSSEmployee: centsToDecimal(yt.INSSEmployeeCents),
			},

			MonthsWorkedThisYear: monthsWorkedThisYear(empl.HireDate, run.PeriodEnd),
			HireDate:             empl.HireDate,
		}
	}
	return inputs, nil
}

func buildRecord(run *PayrollRun, empl employee.Employee, result payrollcalc.PayrollResult) PayrollRecord {
	return PayrollRecord{
		ID:         uuid.New(),
		RunID:      run.ID,
		CompanyID:  run.CompanyID,
		EmployeeID: empl.ID,

		EmployeeNumber:   empl.EmployeeNumber,
		EmployeeName:     empl.FullName,
		PaymentReference: fmt.Sprintf("%s-%s", run.RunNumber, empl.EmployeeNumber),

		BankCode:          empl.BankCode,
		BankAccountNumber: empl.BankAccountNumber,

		HourlyRateCents: toCents(result.HourlyRate),

		RegularPayCents:   toCents(result.RegularPay),
		OvertimePayCents:  toCents(result.OvertimePay),
		NightShiftCents:   toCents(result.NightShiftPay),
		HolidayPayCents:   toCents(result.HolidayPay),
		RestDayPayCents:   toCents(result.RestDayPay),
		OtherEarningCents: toCents(result.OtherEarnings),

		GrossPayCents:      toCents(result.GrossPay),
		TaxableIncomeCents: toCents(result.TaxableIncome),
		IncomeTaxCents:     toCents(result.IncomeTax),

		INSSBaseCents:     toCents(result.INSSBase),
		INSSEmployeeCents: toCents(result.INSSEmployee),
		INSSEmployerCents: toCents(result.INSSEmployer),

		OtherDeductionCents:    toCents(result.OtherDeductions),
		TotalDeductionCents:    toCents(result.TotalDeductions),
		NetPayCents:            toCents(result.NetPay),
		TotalEmployerCostCents: toCents(result.TotalEmployerCost),
	}
}

// defaultRegularHours is the standard worked hours for one period of the
// given frequency.
func (s *service) defaultRegularHours(frequency string) decimal.Decimal {
	rule, ok := s.rules.Frequencies[payrollcalc.PayFrequency(frequency)]
	if !ok || rule.PeriodsPerMonth.Sign() <= 0 {
		return s.rules.StandardMonthlyHours()
	}
	return s.rules.StandardMonthlyHours().Div(rule.PeriodsPerMonth)
}

// monthsWorkedThisYear counts calendar months from the later of the hire
// date and January 1st through the period end, inclusive.
func monthsWorkedThisYear(hireDate, periodEnd time.Time) int {
	start := time.Date(periodEnd.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	if hireDate.After(start) {
		start = hireDate
	}
	if start.After(periodEnd) {
		return 0
	}
	return int(periodEnd.Month()) - int(start.Month()) + 1
}

func toCents(v decimal.Decimal) int64 {
	return v.Shift(2).Round(0).IntPart()
}

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

func mapToRunResponse(run PayrollRun) RunResponse {
	resp := RunResponse{
		ID:          run.ID.String(),
		RunNumber:   run.RunNumber,
		PeriodStart: run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   run.PeriodEnd.Format("2006-01-02"),
		Frequency:   run.Frequency,
		Status:      run.Status,

		EmployeeCount:    run.EmployeeCount,
		NegativeNetCount: run.NegativeNetCount,

		TotalGrossCents:        run.TotalGrossCents,
		TotalNetCents:          run.TotalNetCents,
		TotalEmployerCostCents: run.TotalEmployerCostCents,
	}
	if run.ProcessedAt != nil {
		v := run.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	if run.PaidAt != nil {
		v := run.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToRecordResponse(rec PayrollRecord) RecordResponse {
	return RecordResponse{
		ID:               rec.ID.String(),
		EmployeeID:       rec.EmployeeID.String(),
		EmployeeNumber:   rec.EmployeeNumber,
		EmployeeName:     rec.EmployeeName,
		PaymentReference: rec.PaymentReference,

		BankCode:          rec.BankCode,
		BankAccountNumber: rec.BankAccountNumber,

		RegularPayCents:   rec.RegularPayCents,
		OvertimePayCents:  rec.OvertimePayCents,
		NightShiftCents:   rec.NightShiftCents,
		HolidayPayCents:   rec.HolidayPayCents,
		RestDayPayCents:   rec.RestDayPayCents,
		OtherEarningCents: rec.OtherEarningCents,

		GrossPayCents:      rec.GrossPayCents,
		TaxableIncomeCents: rec.TaxableIncomeCents,
		IncomeTaxCents:     rec.IncomeTaxCents,

		INSSBaseCents:     rec.INSSBaseCents,
		INSSEmployeeCents: rec.INSSEmployeeCents,
		INSSEmployerCents: rec.INSSEmployerCents,

		OtherDeductionCents:    rec.OtherDeductionCents,
		TotalDeductionCents:    rec.TotalDeductionCents,
		NetPayCents:            rec.NetPayCents,
		TotalEmployerCostCents: rec.TotalEmployerCostCents,
	}
}
