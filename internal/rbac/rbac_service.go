package rbac

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"tl-payroll/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req EnforceRequest) (bool, error)

	ListRoles(ctx context.Context, companyID string) ([]RoleResponse, error)
	GetRole(ctx context.Context, companyID, id string) (RoleResponse, error)
	CreateRole(ctx context.Context, companyID string, req CreateRoleRequest) (RoleResponse, error)
	UpdateRole(ctx context.Context, companyID, id string, req UpdateRoleRequest) (RoleResponse, error)
	DeleteRole(ctx context.Context, companyID, id string) error
	AssignRole(ctx context.Context, companyID string, req AssignRoleRequest) error
	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCompanyPolicyUnlocked(companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	ctx := context.Background()
	s.enforcer.ClearPolicy()

	userRoles, err := s.repo.GetUserRoles(ctx, companyID)
	if err != nil {
		return err
	}
	for _, ur := range userRoles {
		if _, err := s.enforcer.AddGroupingPolicy(ur.UserID, ur.RoleID, companyID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(ctx, companyID)
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("company policy loaded",
		zap.String("company_id", companyID),
		zap.Int("user_roles", len(userRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

// Enforce reloads the company's policy before checking, so role changes
// take effect without a restart. The policy set per company is small
// enough for that to be cheap.
func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("user_id", req.UserID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles(ctx context.Context, companyID string) ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]RoleResponse, len(roles))
	for i, role := range roles {
		res[i] = RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description}
	}
	return res, nil
}

func (s *service) GetRole(ctx context.Context, companyID, id string) (RoleResponse, error) {
	role, err := s.repo.GetRoleByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, apperror.ErrNotFound
		}
		return RoleResponse{}, err
	}

	perms, err := s.repo.GetPermissionsByRoleID(ctx, role.ID)
	if err != nil {
		return RoleResponse{}, err
	}

	resp := RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: make([]PermissionResponse, len(perms)),
	}
	for i, p := range perms {
		resp.Permissions[i] = PermissionResponse{ID: p.ID, Resource: p.Resource, Action: p.Action, Label: p.Label}
	}
	return resp, nil
}

func (s *service) CreateRole(ctx context.Context, companyID string, req CreateRoleRequest) (RoleResponse, error) {
	role := &RoleRow{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return RoleResponse{}, err
	}
	return RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description}, nil
}

func (s *service) UpdateRole(ctx context.Context, companyID, id string, req UpdateRoleRequest) (RoleResponse, error) {
	role, err := s.repo.GetRoleByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, apperror.ErrNotFound
		}
		return RoleResponse{}, err
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return RoleResponse{}, err
	}
	if req.PermissionIDs != nil {
		if err := s.repo.ReplaceRolePermissions(ctx, role.ID, req.PermissionIDs); err != nil {
			return RoleResponse{}, err
		}
	}
	return s.GetRole(ctx, companyID, id)
}

func (s *service) DeleteRole(ctx context.Context, companyID, id string) error {
	return s.repo.DeleteRole(ctx, companyID, id)
}

func (s *service) AssignRole(ctx context.Context, companyID string, req AssignRoleRequest) error {
	// Role must belong to the caller's company.
	if _, err := s.repo.GetRoleByID(ctx, companyID, req.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.AssignRole(ctx, req.UserID, req.RoleID)
}

func (s *service) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		res[i] = PermissionResponse{ID: p.ID, Resource: p.Resource, Action: p.Action, Label: p.Label}
	}
	return res, nil
}
