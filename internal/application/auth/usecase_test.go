package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-pos-ar/internal/application/auth"
	"github.com/jhoicas/ventas-pos-ar/internal/application/dto"
	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-pos-ar/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{ID: testCompanyID, Name: "Sur SRL", CUIT: "30-71432198-2"}))
	return auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "ventas-pos-ar-test",
	}).WithHashCost(bcrypt.MinCost)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Caja@Sur.com.ar", Password: "secreto123", CompanyID: testCompanyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)
	assert.Equal(t, "caja@sur.com.ar", user.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "caja@sur.com.ar", Password: "secreto123", CompanyID: testCompanyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "caja@sur.com.ar", Password: "secreto123"})
	require.NoError(t, err)
	id, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, testCompanyID, id.CompanyID)
	assert.Equal(t, entity.RoleVendedor, id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caja@sur.com.ar", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@sur.com.ar", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_UnknownCompany(t *testing.T) {
	uc := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "a@b.com", Password: "secreto123", CompanyID: "00000000-0000-0000-0000-000000000099",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
