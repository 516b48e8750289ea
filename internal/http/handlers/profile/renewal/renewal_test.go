package renewal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) RequestRenewal(ctx context.Context, accountID string, plan models.Plan) (*models.Account, error) {
	args := m.Called(ctx, accountID, plan)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestRenewalHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	premium := models.PlanPremium

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "renewal requested",
			body: `{"plan":"PREMIUM"}`,
			setupMock: func(m *MockService) {
				m.On("RequestRenewal", mock.Anything, "user-expired", models.PlanPremium).
					Return(&models.Account{ID: "user-expired", PendingRenewalPlan: &premium}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"pending_renewal_plan":"PREMIUM"`,
		},
		{
			name:           "bad json",
			body:           `{"plan":`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "unknown plan",
			body:           `{"plan":"GOLD"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `must be one of`,
		},
		{
			name: "banned account",
			body: `{"plan":"BASIC"}`,
			setupMock: func(m *MockService) {
				m.On("RequestRenewal", mock.Anything, "user-expired", models.PlanBasic).
					Return(nil, entitlement.ErrSuspended).Once()
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"error":"account has been suspended"`,
		},
		{
			name: "account not found",
			body: `{"plan":"BASIC"}`,
			setupMock: func(m *MockService) {
				m.On("RequestRenewal", mock.Anything, "user-expired", models.PlanBasic).
					Return(nil, entitlement.ErrAccountNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "service error",
			body: `{"plan":"BASIC"}`,
			setupMock: func(m *MockService) {
				m.On("RequestRenewal", mock.Anything, "user-expired", models.PlanBasic).
					Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/profile/renewal", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.AccountID, "user-expired"))
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
