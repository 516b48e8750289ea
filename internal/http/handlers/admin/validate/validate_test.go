package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

func (m *MockService) ValidateApproval(ctx context.Context, accountID string, isRenewal bool) (*models.Account, error) {
	args := m.Called(ctx, accountID, isRenewal)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestValidateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	activated := &models.Account{
		ID:           "user-new",
		Status:       models.StatusActive,
		Subscription: &models.SubscriptionTerm{Plan: models.PlanStandard, ExpiresAt: time.Date(2026, 4, 9, 12, 0, 0, 0, time.UTC)},
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "signup with empty body",
			body: "",
			setupMock: func(m *MockService) {
				m.On("ValidateApproval", mock.Anything, "user-new", false).Return(activated, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ACTIVE"`,
		},
		{
			name: "renewal",
			body: `{"is_renewal":true}`,
			setupMock: func(m *MockService) {
				m.On("ValidateApproval", mock.Anything, "user-new", true).Return(activated, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed body",
			body:           `{"is_renewal":`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown account",
			body: `{}`,
			setupMock: func(m *MockService) {
				m.On("ValidateApproval", mock.Anything, "user-new", false).
					Return(nil, fmt.Errorf("entitlement.ValidateApproval: %w", entitlement.ErrAccountNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "banned account",
			body: `{}`,
			setupMock: func(m *MockService) {
				m.On("ValidateApproval", mock.Anything, "user-new", false).Return(nil, entitlement.ErrAccountBanned).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"account is banned"`,
		},
		{
			name: "admin account",
			body: `{}`,
			setupMock: func(m *MockService) {
				m.On("ValidateApproval", mock.Anything, "user-new", false).Return(nil, entitlement.ErrAdminAccount).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "storage failure",
			body: `{}`,
			setupMock: func(m *MockService) {
				m.On("ValidateApproval", mock.Anything, "user-new", false).Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/admin/accounts/user-new/validate", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "user-new")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

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
