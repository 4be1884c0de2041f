package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/auth"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/memory"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/pkg/jwt"
)

const secret = "segredo-de-teste"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.New().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "agrotrack-test"})
}

func register(t *testing.T, uc *auth.AuthUseCase, email, role string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name:     "Operador Teste",
		Email:    email,
		Password: "senha-forte-1",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterUser_NormalizaEmailERolePadrao(t *testing.T) {
	uc := newAuth()

	u := register(t, uc, "  Operador@AgroTrack.com ", "")

	assert.Equal(t, "operador@agrotrack.com", u.Email)
	assert.Equal(t, entity.RoleOperator, u.Role)
	assert.True(t, u.Active)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuth()
	register(t, uc, "admin@agrotrack.com", entity.RoleAdmin)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name:     "Outro",
		Email:    "ADMIN@agrotrack.com",
		Password: "outra-senha-1",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_TokenComIdentidade(t *testing.T) {
	uc := newAuth()
	u := register(t, uc, "admin@agrotrack.com", entity.RoleAdmin)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "Admin@AgroTrack.com", Password: "senha-forte-1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.User.ID)

	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, entity.RoleAdmin, id.Role)
}

func TestLogin_SenhaErrada(t *testing.T) {
	uc := newAuth()
	register(t, uc, "admin@agrotrack.com", entity.RoleAdmin)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@agrotrack.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuth()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ninguem@agrotrack.com", Password: "qualquer"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc := newAuth()

	_, err := uc.Me(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
