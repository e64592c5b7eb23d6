package handlers

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReturnQuery_Khalti(t *testing.T) {
	q, err := parseReturnQuery("khalti", "pidx-abc", "req-123", "")

	require.NoError(t, err)
	assert.Equal(t, "req-123", q.OrderID)
	assert.Equal(t, "pidx-abc", q.Token)
}

func TestParseReturnQuery_Esewa(t *testing.T) {
	data := base64.StdEncoding.EncodeToString([]byte(`{"transaction_uuid":"req-123","status":"COMPLETE","total_amount":"500.0"}`))

	q, err := parseReturnQuery("esewa", "", "", data)

	require.NoError(t, err)
	assert.Equal(t, "req-123", q.OrderID)
	assert.Empty(t, q.Token)
}

func TestParseReturnQuery_EsewaBadBase64(t *testing.T) {
	_, err := parseReturnQuery("esewa", "", "", "%%%not-base64%%%")
	assert.Error(t, err)
}

func TestParseReturnQuery_EsewaBadJSON(t *testing.T) {
	data := base64.StdEncoding.EncodeToString([]byte("not json"))

	_, err := parseReturnQuery("esewa", "", "", data)
	assert.Error(t, err)
}

func TestParseReturnQuery_EsewaWithoutDataFallsThrough(t *testing.T) {
	q, err := parseReturnQuery("esewa", "", "req-123", "")

	require.NoError(t, err)
	assert.Equal(t, "req-123", q.OrderID)
}
