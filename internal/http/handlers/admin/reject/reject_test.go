package reject

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) RejectAccount(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestRejectHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		id             string
		result         *models.Account
		err            error
		expectedStatus int
	}{
		{name: "banned", id: "user-new", result: &models.Account{ID: "user-new", Status: models.StatusBanned}, expectedStatus: http.StatusOK},
		{name: "unknown", id: "ghost", err: entitlement.ErrAccountNotFound, expectedStatus: http.StatusNotFound},
		{name: "admin", id: "admin", err: entitlement.ErrAdminAccount, expectedStatus: http.StatusConflict},
		{name: "failure", id: "user-new", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("RejectAccount", mock.Anything, tt.id).Return(tt.result, tt.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/admin/accounts/"+tt.id+"/reject", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			if tt.result != nil {
				assert.Equal(t, "BANNED", body["data"].(map[string]any)["status"])
			}
			svc.AssertExpectations(t)
		})
	}
}
