package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var loc struct {
		A Decimal `json:"a"`
		B Decimal `json:"b"`
		C Decimal `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12.50","b":7,"c":null}`), &loc))
	assert.InDelta(t, 12.5, loc.A.Float64(), 1e-9)
	assert.InDelta(t, 7.0, loc.B.Float64(), 1e-9)
	assert.Zero(t, loc.C.Float64())

	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &loc))
}

func TestDelivery_NullableFields(t *testing.T) {
	t.Parallel()

	var d Delivery
	raw := `{"id":3,"transport_number":null,"is_processed":null,"location":null,"services_details":[]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.EqualValues(t, 3, d.ID)
	assert.Empty(t, d.TransportNumber)
	assert.False(t, d.IsProcessed)
	assert.Nil(t, d.Location)
}
