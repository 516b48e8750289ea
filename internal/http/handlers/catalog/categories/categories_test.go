package categories

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

type staticCategories []string

func (s staticCategories) Categories() []string { return s }

func TestCategoriesHandler(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), staticCategories(models.Categories))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			Categories []string `json:"categories"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, models.Categories, body.Data.Categories)
}
