package company

import (
	"context"
	"database/sql"
	"errors"

	companyerrors "tl-payroll/internal/company/errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, companyID string) (CompanyResponse, error)
	Update(ctx context.Context, companyID string, req UpdateCompanyRequest) (CompanyResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Get(ctx context.Context, companyID string) (CompanyResponse, error) {
	comp, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID string,
	req UpdateCompanyRequest,
) (CompanyResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp, err := qtx.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	comp.Name = req.Name
	comp.Email = req.Email
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}
	comp.PayrollBankCode = req.PayrollBankCode
	comp.PayrollAccountNumber = req.PayrollAccountNumber
	comp.PayrollAccountName = req.PayrollAccountName

	if err := qtx.Update(ctx, comp); err != nil {
		return CompanyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CompanyResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func mapToResponse(comp Company) CompanyResponse {
	return CompanyResponse{
		ID:       comp.ID.String(),
		Name:     comp.Name,
		Email:    comp.Email,
		IsActive: comp.IsActive,

		PayrollBankCode:      comp.PayrollBankCode,
		PayrollAccountNumber: comp.PayrollAccountNumber,
		PayrollAccountName:   comp.PayrollAccountName,
	}
}
