package paycomponent

import (
	"context"
	"database/sql"
	"time"

	"tl-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=pay_component_repo.go -destination=mock/pay_component_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, comp *PayComponent) error
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]PayComponent, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayComponent, error)
	Update(ctx context.Context, comp *PayComponent) error
	Delete(ctx context.Context, companyID, id string) error
	FindActiveByCompany(ctx context.Context, companyID string, asOf time.Time) ([]PayComponent, error)
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, comp *PayComponent) error {
	return r.db.WithContext(ctx).Create(comp).Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]PayComponent, error) {
	var comps []PayComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC, code ASC").
		Find(&comps).Error
	return comps, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayComponent, error) {
	var comp PayComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&comp, "id = ?", id).Error
	return &comp, err
}

func (r *repository) Update(ctx context.Context, comp *PayComponent) error {
	return r.db.WithContext(ctx).Save(comp).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayComponent{}, "id = ?", id).Error
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string, asOf time.Time) ([]PayComponent, error) {
	day := asOf.Format("2006-01-02")
	var comps []PayComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("effective_from <= ?", day).
		Where("effective_to IS NULL OR effective_to >= ?", day).
		Find(&comps).Error
	return comps, err
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
