package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/analytics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/auth"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/logistics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/usecase"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/cache"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/memory"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/pdf"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/xlsx"
	apphttp "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App de teste sobre o armazenamento em memória
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	authUC *auth.AuthUseCase
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Campo    string `json:"campo"`
		Mensagem string `json:"mensagem"`
	} `json:"errors"`
}

// newTestEnv monta o router completo com dois motoristas, dois caminhões e uma fazenda.
func newTestEnv(t *testing.T, ping func(context.Context) error) *testEnv {
	t.Helper()
	store := memory.New()
	store.SetClock(func() time.Time { return time.Date(2026, 2, 23, 10, 0, 0, 0, time.UTC) })
	seed(t, store)

	repos := store.Repositories()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New()
	app.Use(apphttp.RequestID(), apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		ShipmentUC:  logistics.NewShipmentUseCase(store, repos.Shipments, xlsx.NewExporter()),
		CostUC:      logistics.NewCostUseCase(store, repos.Costs),
		PaymentUC:   logistics.NewPaymentUseCase(store, repos.Payments, repos.Shipments, repos.Drivers, pdf.NewReceiptGenerator()),
		FarmUC:      usecase.NewFarmUseCase(store, repos.Farms),
		DriverUC:    usecase.NewDriverUseCase(store, repos.Drivers, repos.Vehicles, repos.Shipments),
		VehicleUC:   usecase.NewVehicleUseCase(store, repos.Vehicles, repos.Shipments),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Dashboard(), cache.NewTTLCache(), time.Minute),
		JWTSecret:   testJWTSecret,
		ServiceName: "agrotrack-test",
		Ping:        ping,
	})
	return &testEnv{app: app, store: store, authUC: authUC}
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()
	pixType, pixKey := "cpf", "12345678901"
	model := "Volvo FH 540"

	require.NoError(t, repos.Drivers.Create(ctx, &entity.Driver{
		Name:          "JOÃO SILVA",
		Phone:         "(66) 99999-0001",
		Status:        entity.DriverStatusActive,
		Type:          entity.DriverTypeOutsourced,
		PaymentMethod: entity.PaymentMethodPix,
		PixKeyType:    &pixType,
		PixKey:        &pixKey,
	}))
	require.NoError(t, repos.Drivers.Create(ctx, &entity.Driver{
		Name:          "ANA SOUZA",
		Phone:         "(66) 99999-0002",
		Status:        entity.DriverStatusActive,
		Type:          entity.DriverTypeOwn,
		PaymentMethod: entity.PaymentMethodBank,
	}))
	require.NoError(t, repos.Vehicles.Create(ctx, &entity.Vehicle{Plate: "ABC1D23", Model: &model, Type: "carreta"}))
	require.NoError(t, repos.Vehicles.Create(ctx, &entity.Vehicle{Plate: "XYZ9E87", Type: "truck"}))
	require.NoError(t, repos.Farms.Create(ctx, &entity.Farm{
		Name:        "Fazenda Santa Rita",
		State:       "MT",
		Owner:       "Carlos Mendes",
		Commodity:   "Soja",
		PricePerTon: decimal.NewFromInt(150),
	}))
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out apiResponse
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

const (
	shipmentJoao = `{"origem":"Fazenda Santa Rita","destino":"Porto de Paranaguá","motorista_id":1,"caminhao_id":1,"fazenda_id":1,"data_frete":"2026-02-20","quantidade_sacas":200,"toneladas":12,"valor_por_tonelada":150}`
	shipmentAna  = `{"origem":"Armazém Central","destino":"Porto de Santos","motorista_id":"2","caminhao_id":2,"data_frete":"2026-02-18","quantidade_sacas":100,"toneladas":6.5,"valor_por_tonelada":100,"ticket":"T-77"}`
)

func (e *testEnv) createShipment(t *testing.T, token, body string) int64 {
	t.Helper()
	resp, out := e.do(t, http.MethodPost, "/api/fretes", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)
	var created dto.CreateShipmentResponse
	require.NoError(t, json.Unmarshal(out.Data, &created))
	return created.ID
}

func (e *testEnv) getShipment(t *testing.T, token string, id int64) dto.ShipmentResponse {
	t.Helper()
	resp, out := e.do(t, http.MethodGet, "/api/fretes/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	var s dto.ShipmentResponse
	require.NoError(t, json.Unmarshal(out.Data, &s))
	return s
}

func itoa(id int64) string {
	return decimal.NewFromInt(id).String()
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: esperado %s, obtido %s", msg, want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_BancoDisponivel(t *testing.T) {
	env := newTestEnv(t, func(context.Context) error { return nil })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "up", body["database"])
	assert.Equal(t, "agrotrack-test", body["service"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestHealth_BancoIndisponivel_Retorna503(t *testing.T) {
	env := newTestEnv(t, func(context.Context) error { return errors.New("conexão recusada") })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fretes
// ──────────────────────────────────────────────────────────────────────────────

func TestFretes_SemToken_Retorna401(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, out := env.do(t, http.MethodGet, "/api/fretes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", out.Code)
}

func TestFretes_CriarCalculaReceitaEPreencheReferencias(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)

	id := env.createShipment(t, token, shipmentJoao)
	s := env.getShipment(t, token, id)

	assert.Equal(t, "FRT-2026-001", s.Code)
	require.NotNil(t, s.DriverName)
	assert.Equal(t, "JOÃO SILVA", *s.DriverName)
	require.NotNil(t, s.VehiclePlate)
	assert.Equal(t, "ABC1D23", *s.VehiclePlate)
	require.NotNil(t, s.Commodity)
	assert.Equal(t, "Soja", *s.Commodity)
	assertDecimal(t, "1800", s.Revenue, "receita")
	assertDecimal(t, "0", s.Costs, "custos")
	assertDecimal(t, "1800", s.Result, "resultado")
	assert.Nil(t, s.PaymentID)
}

func TestFretes_CorpoVazio_RetornaErrosDeValidacao(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, out := env.do(t, http.MethodPost, "/api/fretes", tokenForRole(t, entity.RoleOperator), `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
	fields := make([]string, 0, len(out.Errors))
	for _, e := range out.Errors {
		fields = append(fields, e.Campo)
	}
	assert.Contains(t, fields, "origem")
	assert.Contains(t, fields, "motorista_id")
	assert.Contains(t, fields, "toneladas")
}

func TestFretes_MotoristaInexistente_Retorna400ComCampo(t *testing.T) {
	env := newTestEnv(t, nil)
	body := strings.Replace(shipmentJoao, `"motorista_id":1`, `"motorista_id":99`, 1)
	resp, out := env.do(t, http.MethodPost, "/api/fretes", tokenForRole(t, entity.RoleOperator), body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "motorista_id", out.Field)
}

func TestFretes_Inexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, out := env.do(t, http.MethodGet, "/api/fretes/99", tokenForRole(t, entity.RoleOperator), nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
	assert.False(t, out.Success)
}

func TestFretes_IDNaoNumerico_Retorna400(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, _ := env.do(t, http.MethodGet, "/api/fretes/abc", tokenForRole(t, entity.RoleOperator), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFretes_ListarPaginaEnormeDevolveVazio(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodGet, "/api/fretes?page=1844674407370955162&limit=10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	var list []dto.ShipmentResponse
	require.NoError(t, json.Unmarshal(out.Data, &list))
	assert.Empty(t, list)
}

func TestFretes_AtualizarFazendaNullDesvincula(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	id := env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodPut, "/api/fretes/"+itoa(id), token, `{"fazenda_id":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	assert.Nil(t, env.getShipment(t, token, id).FarmID)

	resp, out = env.do(t, http.MethodGet, "/api/fazendas/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	var farm dto.FarmResponse
	require.NoError(t, json.Unmarshal(out.Data, &farm))
	assertDecimal(t, "0", farm.TotalTonnage, "toneladas da fazenda")
	assert.Zero(t, farm.TotalSacks)
	assertDecimal(t, "0", farm.TotalRevenue, "faturamento da fazenda")
}

func TestFretes_AtualizarSemFazendaMantemVinculo(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	id := env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodPut, "/api/fretes/"+itoa(id), token, `{"ticket":"T-1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	s := env.getShipment(t, token, id)
	require.NotNil(t, s.FarmID)
	assert.Equal(t, int64(1), *s.FarmID)
}

func TestFretes_ExportarDevolvePlanilha(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	env.createShipment(t, token, shipmentJoao)

	req := httptest.NewRequest(http.MethodGet, "/api/fretes/exportar", nil)
	req.Header.Set("Authorization", token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsx.ContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx é um zip")
}

// ──────────────────────────────────────────────────────────────────────────────
// Custos
// ──────────────────────────────────────────────────────────────────────────────

func TestCustos_AvulsoRecalculaFrete(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	id := env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodPost, "/api/custos", token,
		`{"frete_id":1,"tipo":"combustivel","valor":300,"data":"2026-02-20"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)
	assert.JSONEq(t, `{"id":1}`, string(out.Data))

	s := env.getShipment(t, token, id)
	assertDecimal(t, "300", s.Costs, "custos")
	assertDecimal(t, "1500", s.Result, "resultado")
}

func TestCustos_LoteHerdaFreteERecalculaUmaVez(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	id := env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodPost, "/api/custos", token, `{
		"frete_id": 1,
		"custos": [
			{"tipo":"pedagio","valor":50,"data":"2026-02-20"},
			{"tipo":"diaria","valor":"120.50","data":"2026-02-21"}
		]
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)

	var res dto.CreateCostsResult
	require.NoError(t, json.Unmarshal(out.Data, &res))
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, []int64{1, 2}, res.IDs)
	assert.Equal(t, id, res.ShipmentID)

	s := env.getShipment(t, token, id)
	assertDecimal(t, "170.5", s.Costs, "custos")
	assertDecimal(t, "1629.5", s.Result, "resultado")
}

func TestCustos_LoteComItemInvalido_IndicaPosicao(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodPost, "/api/custos", token,
		`{"frete_id":1,"custos":[{"tipo":"pedagio","valor":50,"data":"2026-02-20"},{"tipo":"diaria","valor":0,"data":"2026-02-21"}]}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, out.Errors)
	assert.Equal(t, "custos[1].valor", out.Errors[0].Campo)
}

func TestCustos_FretePago_RetornaRegraDeNegocio(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodPost, "/api/pagamentos", token,
		`{"motorista_id":1,"fretes_incluidos":"1","valor_total":1800,"data_pagamento":"2026-02-23"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)

	resp, out = env.do(t, http.MethodPost, "/api/custos", token,
		`{"frete_id":1,"tipo":"combustivel","valor":300,"data":"2026-02-20"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BUSINESS_RULE", out.Code)

	resp, out = env.do(t, http.MethodPut, "/api/fretes/1", token, `{"toneladas":20}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BUSINESS_RULE", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagamentos
// ──────────────────────────────────────────────────────────────────────────────

func TestPagamentos_RemoverLiberaFretes(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	id := env.createShipment(t, token, shipmentJoao)

	resp, out := env.do(t, http.MethodPost, "/api/pagamentos", token,
		`{"motorista_id":1,"fretes_incluidos":[1],"valor_total":1800,"data_pagamento":"2026-02-23"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)
	var p dto.PaymentResponse
	require.NoError(t, json.Unmarshal(out.Data, &p))
	require.NotNil(t, env.getShipment(t, token, id).PaymentID)

	resp, out = env.do(t, http.MethodGet, "/api/pagamentos/"+p.Code, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)

	resp, out = env.do(t, http.MethodDelete, "/api/pagamentos/"+itoa(p.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	assert.Nil(t, env.getShipment(t, token, id).PaymentID)
}

func TestPagamentos_ComprovantePDF(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)
	env.createShipment(t, token, shipmentJoao)
	resp, out := env.do(t, http.MethodPost, "/api/pagamentos", token,
		`{"motorista_id":1,"fretes_incluidos":[1],"valor_total":1800,"data_pagamento":"2026-02-23"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)

	req := httptest.NewRequest(http.MethodGet, "/api/pagamentos/1/pdf", nil)
	req.Header.Set("Authorization", token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_SegundaChamadaVemDoCache(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenForRole(t, entity.RoleOperator)

	resp, first := env.do(t, http.MethodGet, "/api/dashboard/kpis", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, first.Message)
	assert.False(t, strings.HasSuffix(first.Message, "(cache)"))

	resp, second := env.do(t, http.MethodGet, "/api/dashboard/kpis", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasSuffix(second.Message, " (cache)"), second.Message)
	assert.JSONEq(t, string(first.Data), string(second.Data))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_LoginEMe(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.authUC.RegisterUser(context.Background(), dto.RegisterRequest{
		Name:     "Administrador",
		Email:    "Admin@AgroTrack.test",
		Password: "senha-segura-123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, out := env.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"admin@agrotrack.test","senha":"senha-segura-123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(out.Data, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, entity.RoleAdmin, login.User.Role)

	resp, out = env.do(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out.Message)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(out.Data, &me))
	assert.Equal(t, "admin@agrotrack.test", me.Email)
}

func TestAuth_SenhaErrada_Retorna401(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.authUC.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Operador", Email: "op@agrotrack.test", Password: "senha-segura-123",
	})
	require.NoError(t, err)

	resp, out := env.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"op@agrotrack.test","senha":"outra-senha"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Credenciais inválidas", out.Message)
}

func TestAuth_RegistrarExigeAdmin(t *testing.T) {
	env := newTestEnv(t, nil)
	body := `{"nome":"Novo Operador","email":"novo@agrotrack.test","senha":"senha-segura-123"}`

	resp, out := env.do(t, http.MethodPost, "/api/auth/registrar", tokenForRole(t, entity.RoleOperator), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", out.Code)

	resp, out = env.do(t, http.MethodPost, "/api/auth/registrar", tokenForRole(t, entity.RoleAdmin), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out.Message)

	resp, out = env.do(t, http.MethodPost, "/api/auth/registrar", tokenForRole(t, entity.RoleAdmin), body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", out.Code)
}
