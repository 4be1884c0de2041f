package dto_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// PageQuery
// ──────────────────────────────────────────────────────────────────────────────

func TestNewPageQuery_Padroes(t *testing.T) {
	assert.Equal(t, dto.PageQuery{Page: 1, Limit: 10}, dto.NewPageQuery(0, 0))
	assert.Equal(t, dto.PageQuery{Page: 1, Limit: 1}, dto.NewPageQuery(-3, -5))
	assert.Equal(t, 20, dto.NewPageQuery(3, 10).Offset())
}

func TestPageQuery_OffsetSaturaSemEstourar(t *testing.T) {
	q := dto.NewPageQuery(1844674407370955162, 10)
	assert.Equal(t, math.MaxInt, q.Offset())

	q = dto.NewPageQuery(2, math.MaxInt)
	assert.Equal(t, math.MaxInt, q.Offset())

	q = dto.NewPageQuery(math.MaxInt, math.MaxInt)
	assert.Equal(t, math.MaxInt, q.Offset())
}

// ──────────────────────────────────────────────────────────────────────────────
// OptionalID
// ──────────────────────────────────────────────────────────────────────────────

func TestOptionalID_AusenteNullEValor(t *testing.T) {
	var in dto.UpdateShipmentRequest

	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	assert.False(t, in.FarmID.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"fazenda_id":null}`), &in))
	assert.True(t, in.FarmID.Set)
	assert.Nil(t, in.FarmID.Value)

	in = dto.UpdateShipmentRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"fazenda_id":"7"}`), &in))
	assert.True(t, in.FarmID.Set)
	require.NotNil(t, in.FarmID.Value)
	assert.Equal(t, int64(7), *in.FarmID.Value)
}
