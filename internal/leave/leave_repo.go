package leave

import (
	"context"
	"database/sql"
	"time"

	"tl-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	SumApprovedDays(ctx context.Context, companyID, employeeID, leaveType string, from, to time.Time) (int, error)
	SummarizeUsage(ctx context.Context, companyID string, from, to time.Time) ([]UsageSummary, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusRejected, StatusCanceled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

// SumApprovedDays totals the approved days of one leave type whose start
// falls inside the window. Payroll uses it with a January 1st lower bound
// to obtain year-to-date sick usage.
func (r *repository) SumApprovedDays(ctx context.Context, companyID, employeeID, leaveType string, from, to time.Time) (int, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("COALESCE(SUM(total_days), 0)").
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", leaveType).
		Where("status = ?", StatusApproved).
		Where("start_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Scan(&total).Error
	return int(total.Int64), err
}

func (r *repository) SummarizeUsage(ctx context.Context, companyID string, from, to time.Time) ([]UsageSummary, error) {
	var summaries []UsageSummary
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select(`employee_id,
			COALESCE(SUM(total_days) FILTER (WHERE leave_type <> 'UNPAID'), 0) AS paid_leave_days,
			COALESCE(SUM(total_days) FILTER (WHERE leave_type = 'SICK'), 0)    AS sick_leave_days,
			COALESCE(SUM(total_days) FILTER (WHERE leave_type = 'UNPAID'), 0)  AS unpaid_leave_days`).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusApproved).
		Where("start_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Group("employee_id").
		Scan(&summaries).Error
	return summaries, err
}
