package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/MatheusVRibeiro/AgroTrack-Backend/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate("segredo", 42, "ana@caramello.com.br", "admin", "agrotrack-test", 5)
	require.NoError(t, err)

	id, err := pkgjwt.Parse("segredo", tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, "ana@caramello.com.br", id.Email)
	assert.Equal(t, "admin", id.Role)
}

func TestParse_SegredoErrado(t *testing.T) {
	tok, err := pkgjwt.Generate("segredo", 1, "x@y.z", "operador", "agrotrack-test", 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("outro", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate("segredo", 1, "x@y.z", "operador", "agrotrack-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("segredo", tok)
	assert.Error(t, err)
}

func TestGenerate_SemSegredo(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "x@y.z", "admin", "agrotrack-test", 5)
	assert.Error(t, err)
}
