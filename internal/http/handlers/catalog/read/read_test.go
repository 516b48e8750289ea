package read

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/catalog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id string) (*models.ContentItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*models.ContentItem)
	return item, args.Error(1)
}

func requestWithID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/contents/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		id             string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "found",
			id:   "c2",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "c2").
					Return(&models.ContentItem{ID: "c2", Title: "Savannah Kings", IsSeries: true}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Savannah Kings"`,
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "missing").
					Return(nil, fmt.Errorf("catalog.Get: %w", catalog.ErrContentNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"content not found"`,
		},
		{
			name: "storage failure",
			id:   "c1",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "c1").Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, requestWithID(tt.id))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			svc.AssertExpectations(t)
		})
	}
}
