package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/almacen-pro/internal/application/auth"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/infrastructure/memory"
	pkgjwt "github.com/tu-usuario/almacen-pro/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuthUC(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "almacen-pro-test",
	})
}

func TestRegisterYLogin_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "ana@tienda.com",
		Password: "secreta123",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role, "rol por defecto: vendedor")

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@tienda.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	// El token lleva el usuario y el rol.
	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestRegister_EmailTomado(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@tienda.com", Password: "x1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@tienda.com", Password: "x2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolInvalido(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "ana@tienda.com",
		Password: "x",
		Role:     "superusuario",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_CamposObligatorios(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.com", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@tienda.com", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@tienda.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@tienda.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.DefaultCost)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, store.Users().Create(&entity.User{
		Email:        "baja@tienda.com",
		PasswordHash: string(hash),
		Role:         entity.RoleVendedor,
		Status:       "disabled",
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "baja@tienda.com", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
