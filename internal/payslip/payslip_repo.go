package payslip

import (
	"context"

	"tl-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	Upsert(ctx context.Context, slip *Payslip) error
	FindByRun(ctx context.Context, companyID, runID string) ([]Payslip, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert replaces an existing payslip for the same run and employee so a
// redelivered event regenerates instead of failing.
func (r *repository) Upsert(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "run_id"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"record_id", "employee_name", "filename", "content", "net_pay_cents", "issued_at", "updated_at",
			}),
		}).
		Create(slip).Error
}

func (r *repository) FindByRun(ctx context.Context, companyID, runID string) ([]Payslip, error) {
	var slips []Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Select("id", "company_id", "run_id", "record_id", "employee_id",
			"employee_name", "filename", "net_pay_cents", "issued_at").
		Where("run_id = ?", runID).
		Order("employee_name ASC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error) {
	var slip Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&slip, "id = ?", id).Error
	return &slip, err
}
