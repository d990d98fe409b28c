package paycomponent

import (
	"context"
	"database/sql"
	"errors"
	"time"

	paycomponenterrors "tl-payroll/internal/paycomponent/errors"
	"tl-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=pay_component_service.go -destination=mock/pay_component_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateComponentRequest) (ComponentResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]ComponentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateComponentRequest) (ComponentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	ActiveTotals(ctx context.Context, companyID string, asOf time.Time) ([]Totals, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateComponentRequest,
) (ComponentResponse, error) {
	kind := KindForCode(req.Code)
	if kind == "" {
		return ComponentResponse{}, paycomponenterrors.ErrUnknownComponentCode
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return ComponentResponse{}, apperror.InvalidField("effective_from")
	}
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		t, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return ComponentResponse{}, apperror.InvalidField("effective_to")
		}
		effectiveTo = &t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return ComponentResponse{}, err
	}
	if !belongs {
		return ComponentResponse{}, paycomponenterrors.ErrEmployeeNotInCompany
	}

	comp := &PayComponent{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EmployeeID:    uuid.MustParse(req.EmployeeID),
		Kind:          kind,
		Code:          req.Code,
		AmountCents:   req.AmountCents,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
	}

	if err := qtx.Create(ctx, comp); err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]ComponentResponse, error) {
	comps, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]ComponentResponse, len(comps))
	for i, c := range comps {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateComponentRequest,
) (ComponentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComponentResponse{}, paycomponenterrors.ErrComponentNotFound
		}
		return ComponentResponse{}, err
	}

	comp.AmountCents = req.AmountCents
	if req.EffectiveTo != nil {
		t, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return ComponentResponse{}, apperror.InvalidField("effective_to")
		}
		comp.EffectiveTo = &t
	} else {
		comp.EffectiveTo = nil
	}

	if err := qtx.Update(ctx, comp); err != nil {
		return ComponentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ActiveTotals buckets every component active on the as-of date into the
// engine's earning and deduction slots, one row per employee.
func (s *service) ActiveTotals(ctx context.Context, companyID string, asOf time.Time) ([]Totals, error) {
	comps, err := s.repo.FindActiveByCompany(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]*Totals)
	order := make([]string, 0)
	for _, c := range comps {
		emplID := c.EmployeeID.String()
		t, ok := byEmployee[emplID]
		if !ok {
			t = &Totals{EmployeeID: emplID}
			byEmployee[emplID] = t
			order = append(order, emplID)
		}

		switch c.Code {
		case CodeBonus:
			t.BonusCents += c.AmountCents
		case CodeCommission:
			t.CommissionCents += c.AmountCents
		case CodePerDiem:
			t.PerDiemCents += c.AmountCents
		case CodeFoodAllowance:
			t.FoodAllowanceCents += c.AmountCents
		case CodeTransportAllowance:
			t.TransportAllowanceCents += c.AmountCents
		case CodeOtherEarning:
			t.OtherEarningCents += c.AmountCents
		case CodeLoanRepayment:
			t.LoanRepaymentCents += c.AmountCents
		case CodeAdvanceRepayment:
			t.AdvanceRepaymentCents += c.AmountCents
		case CodeCourtOrdered:
			t.CourtOrderedCents += c.AmountCents
		case CodeOtherDeduction:
			t.OtherDeductionCents += c.AmountCents
		}
	}

	res := make([]Totals, len(order))
	for i, id := range order {
		res[i] = *byEmployee[id]
	}
	return res, nil
}

func mapToResponse(c PayComponent) ComponentResponse {
	resp := ComponentResponse{
		ID:            c.ID.String(),
		EmployeeID:    c.EmployeeID.String(),
		Kind:          c.Kind,
		Code:          c.Code,
		AmountCents:   c.AmountCents,
		EffectiveFrom: c.EffectiveFrom.Format("2006-01-02"),
	}
	if c.EffectiveTo != nil {
		v := c.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	return resp
}
