package plans

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vtv-streaming/internal/models"
)

type staticPlans []models.PlanPrice

func (s staticPlans) Plans() []models.PlanPrice { return s }

func TestPlansHandler(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), staticPlans(models.PlanPrices()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			Plans []models.PlanPrice `json:"plans"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data.Plans, 3)
	assert.Equal(t, models.PlanBasic, body.Data.Plans[0].Plan)
	assert.Equal(t, 5000, body.Data.Plans[0].Price)
	assert.Equal(t, 15000, body.Data.Plans[2].Price)
	assert.Equal(t, "FCFA", body.Data.Plans[2].Currency)
}
