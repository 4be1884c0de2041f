package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// O relatório de pendentes alimenta a tela de pagamentos; o formato fica fixado no golden.
// Atualizar com: go test ./internal/interfaces/http -run TestPendentes -update
func TestPendentes_AgrupadosPorProprietario_Golden(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)

	env.createShipment(t, token, shipmentJoao)
	env.createShipment(t, token, shipmentAna)
	resp, out := env.do(t, http.MethodPost, "/api/custos", token,
		`{"frete_id":1,"tipo":"combustivel","valor":300,"data":"2026-02-20"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)

	resp, out = env.do(t, http.MethodGet, "/api/fretes/pendentes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)

	var groups []dto.PendingOwnerResponse
	require.NoError(t, json.Unmarshal(out.Data, &groups))
	for i := range groups {
		for j := range groups[i].Shipments {
			groups[i].Shipments[j].CreatedAt = nil
			groups[i].Shipments[j].UpdatedAt = nil
		}
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.AssertJson(t, "pendentes_por_proprietario", groups)
}
