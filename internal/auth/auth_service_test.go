package auth_test

import (
	"context"
	"testing"

	"tl-payroll/internal/auth"
	autherrors "tl-payroll/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func newActiveUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Maria Soares",
		Email:     "maria@example.tl",
		Password:  string(hashed),
		Role:      "FINANCE",
		IsActive:  true,
	}
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := newActiveUser(t, "s3cret-password")
	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
	}

	svc := auth.NewService(repo)
	resp, tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria@example.tl",
		Password: "s3cret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, "FINANCE", resp.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := newActiveUser(t, "s3cret-password")
	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
	}

	svc := auth.NewService(repo)
	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria@example.tl",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := auth.NewService(&fakeAuthRepository{})

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.tl",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := newActiveUser(t, "s3cret-password")
	user.IsActive = false
	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
	}

	svc := auth.NewService(repo)
	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria@example.tl",
		Password: "s3cret-password",
	})

	assert.ErrorIs(t, err, autherrors.ErrUserInactive)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := newActiveUser(t, "s3cret-password")
	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}

	svc := auth.NewService(repo)
	_, tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria@example.tl",
		Password: "s3cret-password",
	})
	assert.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := newActiveUser(t, "s3cret-password")
	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
	}

	svc := auth.NewService(repo)
	_, tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria@example.tl",
		Password: "s3cret-password",
	})
	assert.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := newActiveUser(t, "s3cret-password")
	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
	}

	svc := auth.NewService(repo)
	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		CompanyID: user.CompanyID.String(),
		Email:     "maria@example.tl",
		Name:      "Maria Soares",
		Password:  "another-password",
	})

	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
}
