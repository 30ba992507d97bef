package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, 201, map[string]int{"id": 7})

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body["id"])
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, 400, "bad input")

	assert.Equal(t, 400, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body["error"])
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8h", FormatHours(8))
	assert.Equal(t, "7h 30m", FormatHours(7.5))
	assert.Equal(t, "0h", FormatHours(0))
	assert.Equal(t, "1h 59m", FormatHours(1.98)) // 1.98h is 118.8 min, rounded to 119
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$123.45", FormatCurrency(123.45))
	assert.Equal(t, "$0.00", FormatCurrency(0))
}
