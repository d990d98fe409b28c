package payroll

import (
	"context"
	"database/sql"
	"time"

	"tl-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	FindRunsByCompany(ctx context.Context, companyID string) ([]PayrollRun, error)
	FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error)
	UpdateRun(ctx context.Context, run *PayrollRun) error
	HasOverlappingRun(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (bool, error)
	ReplaceRecords(ctx context.Context, runID string, records []PayrollRecord) error
	FindRecordsByRun(ctx context.Context, companyID, runID string) ([]PayrollRecord, error)
	SumPaidYearToDate(ctx context.Context, companyID string, year int, before time.Time) ([]YTDTotals, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindRunsByCompany(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("period_start DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *repository) HasOverlappingRun(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Scopes(tenant.Scope(companyID)).
		Where("status <> ?", StatusCancelled).
		Where("NOT (period_end < ? OR period_start > ?)",
			periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

// ReplaceRecords drops and rewrites the run's records so reprocessing a
// draft is idempotent.
func (r *repository) ReplaceRecords(ctx context.Context, runID string, records []PayrollRecord) error {
	db := r.db.WithContext(ctx)
	if err := db.Unscoped().Delete(&PayrollRecord{}, "run_id = ?", runID).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return db.CreateInBatches(records, 100).Error
}

func (r *repository) FindRecordsByRun(ctx context.Context, companyID, runID string) ([]PayrollRecord, error) {
	var records []PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("run_id = ?", runID).
		Order("employee_number ASC").
		Find(&records).Error
	return records, err
}

// SumPaidYearToDate aggregates the paid records of the calendar year whose
// run period ended before the given date. The result feeds the engine's
// year-to-date accumulators.
func (r *repository) SumPaidYearToDate(ctx context.Context, companyID string, year int, before time.Time) ([]YTDTotals, error) {
	var totals []YTDTotals
	err := r.db.WithContext(ctx).
		Table("payroll_records").
		Select(`payroll_records.employee_id,
			COALESCE(SUM(payroll_records.gross_pay_cents), 0)     AS gross_pay_cents,
			COALESCE(SUM(payroll_records.income_tax_cents), 0)    AS income_tax_cents,
			COALESCE(SUM(payroll_records.inss_employee_cents), 0) AS inss_employee_cents`).
		Joins("JOIN payroll_runs ON payroll_runs.id = payroll_records.run_id").
		Where("payroll_records.company_id = ?", companyID).
		Where("payroll_runs.status = ?", StatusPaid).
		Where("EXTRACT(YEAR FROM payroll_runs.period_start) = ?", year).
		Where("payroll_runs.period_end < ?", before.Format("2006-01-02")).
		Group("payroll_records.employee_id").
		Scan(&totals).Error
	return totals, err
}
