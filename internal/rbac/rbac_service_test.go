package rbac_test

import (
	"context"
	"testing"

	"tl-payroll/internal/rbac"
	"tl-payroll/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

type fakeRBACRepository struct {
	userRolesFn       func(ctx context.Context, companyID string) ([]rbac.UserRoleRow, error)
	rolePermissionsFn func(ctx context.Context, companyID string) ([]rbac.RolePermissionRow, error)
}

func (f *fakeRBACRepository) GetUserRoles(ctx context.Context, companyID string) ([]rbac.UserRoleRow, error) {
	if f.userRolesFn != nil {
		return f.userRolesFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeRBACRepository) GetRolePermissions(ctx context.Context, companyID string) ([]rbac.RolePermissionRow, error) {
	if f.rolePermissionsFn != nil {
		return f.rolePermissionsFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeRBACRepository) ListRoles(ctx context.Context, companyID string) ([]rbac.RoleRow, error) {
	return nil, nil
}

func (f *fakeRBACRepository) GetRoleByID(ctx context.Context, companyID, id string) (*rbac.RoleRow, error) {
	return nil, nil
}

func (f *fakeRBACRepository) CreateRole(ctx context.Context, role *rbac.RoleRow) error { return nil }
func (f *fakeRBACRepository) UpdateRole(ctx context.Context, role *rbac.RoleRow) error { return nil }
func (f *fakeRBACRepository) DeleteRole(ctx context.Context, companyID, id string) error {
	return nil
}

func (f *fakeRBACRepository) ListPermissions(ctx context.Context) ([]rbac.PermissionRow, error) {
	return nil, nil
}

func (f *fakeRBACRepository) GetPermissionsByRoleID(ctx context.Context, roleID string) ([]rbac.PermissionRow, error) {
	return nil, nil
}

func (f *fakeRBACRepository) ReplaceRolePermissions(ctx context.Context, roleID string, permIDs []string) error {
	return nil
}

func (f *fakeRBACRepository) AssignRole(ctx context.Context, userID, roleID string) error {
	return nil
}

func newServiceWithPolicy(t *testing.T, repo rbac.Repository) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(repo, enforcer)
}

func TestEnforce_AllowsGrantedPermission(t *testing.T) {
	repo := &fakeRBACRepository{
		userRolesFn: func(ctx context.Context, companyID string) ([]rbac.UserRoleRow, error) {
			return []rbac.UserRoleRow{{UserID: "user-1", RoleID: "role-finance"}}, nil
		},
		rolePermissionsFn: func(ctx context.Context, companyID string) ([]rbac.RolePermissionRow, error) {
			return []rbac.RolePermissionRow{
				{RoleID: "role-finance", Resource: "payroll", Action: "process"},
				{RoleID: "role-finance", Resource: "bankfile", Action: "generate"},
			}, nil
		},
	}

	svc := newServiceWithPolicy(t, repo)

	allowed, err := svc.Enforce(rbac.EnforceRequest{
		UserID:    "user-1",
		CompanyID: "company-1",
		Resource:  "payroll",
		Action:    "process",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestEnforce_DeniesMissingPermission(t *testing.T) {
	repo := &fakeRBACRepository{
		userRolesFn: func(ctx context.Context, companyID string) ([]rbac.UserRoleRow, error) {
			return []rbac.UserRoleRow{{UserID: "user-1", RoleID: "role-hr"}}, nil
		},
		rolePermissionsFn: func(ctx context.Context, companyID string) ([]rbac.RolePermissionRow, error) {
			return []rbac.RolePermissionRow{
				{RoleID: "role-hr", Resource: "employee", Action: "read"},
			}, nil
		},
	}

	svc := newServiceWithPolicy(t, repo)

	allowed, err := svc.Enforce(rbac.EnforceRequest{
		UserID:    "user-1",
		CompanyID: "company-1",
		Resource:  "payroll",
		Action:    "pay",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforce_DeniesUserWithoutRoles(t *testing.T) {
	svc := newServiceWithPolicy(t, &fakeRBACRepository{})

	allowed, err := svc.Enforce(rbac.EnforceRequest{
		UserID:    "user-unknown",
		CompanyID: "company-1",
		Resource:  "payroll",
		Action:    "read",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
