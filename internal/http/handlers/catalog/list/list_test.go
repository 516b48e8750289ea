package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vtv-streaming/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]*models.ContentItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*models.ContentItem)
	return items, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	items := []*models.ContentItem{
		{ID: "c1", Title: "Cyber Africa", Category: "Action"},
		{ID: "c2", Title: "Savannah Kings", Category: "Séries populaires", IsSeries: true},
		{ID: "c3", Title: "Neon Nights", Category: "Action"},
	}

	tests := []struct {
		name           string
		query          string
		listErr        error
		expectedStatus int
		expectedIDs    []string
	}{
		{name: "all contents", expectedStatus: http.StatusOK, expectedIDs: []string{"c1", "c2", "c3"}},
		{name: "filtered by category", query: "?category=Action", expectedStatus: http.StatusOK, expectedIDs: []string{"c1", "c3"}},
		{name: "empty category", query: "?category=Nope", expectedStatus: http.StatusOK, expectedIDs: []string{}},
		{name: "service error", listErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.listErr != nil {
				svc.On("List", mock.Anything).Return(nil, tt.listErr).Once()
			} else {
				svc.On("List", mock.Anything).Return(items, nil).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/contents"+tt.query, nil)
			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

			if tt.expectedIDs != nil {
				data := body["data"].(map[string]any)
				contents := data["contents"].([]any)
				ids := make([]string, 0, len(contents))
				for _, c := range contents {
					ids = append(ids, c.(map[string]any)["id"].(string))
				}
				assert.Equal(t, tt.expectedIDs, ids)
			}
			svc.AssertExpectations(t)
		})
	}
}
