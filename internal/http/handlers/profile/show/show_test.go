package show

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func (m *MockService) Account(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *MockService) IsEntitled(acc *models.Account) bool {
	return m.Called(acc).Bool(0)
}

func (m *MockService) HasAccess(acc *models.Account) bool {
	return m.Called(acc).Bool(0)
}

func (m *MockService) DaysRemaining(expiresAt time.Time) int {
	return m.Called(expiresAt).Int(0)
}

func TestShowHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	expires := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	acc := &models.Account{
		ID:           "user-active",
		Role:         models.RoleClient,
		Status:       models.StatusActive,
		Subscription: &models.SubscriptionTerm{Plan: models.PlanPremium, ExpiresAt: expires},
	}

	tests := []struct {
		name           string
		accountID      string
		setupMock      func(m *MockService)
		expectedStatus int
		check          func(t *testing.T, body map[string]any)
	}{
		{
			name:      "active client",
			accountID: "user-active",
			setupMock: func(m *MockService) {
				m.On("Account", mock.Anything, "user-active").Return(acc, nil).Once()
				m.On("IsEntitled", acc).Return(true).Once()
				m.On("HasAccess", acc).Return(true).Once()
				m.On("DaysRemaining", expires).Return(15).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				data := body["data"].(map[string]any)
				assert.Equal(t, true, data["entitled"])
				assert.Equal(t, float64(15), data["days_remaining"])
			},
		},
		{
			name:      "admin without subscription",
			accountID: "admin",
			setupMock: func(m *MockService) {
				admin := &models.Account{ID: "admin", Role: models.RoleAdmin, Status: models.StatusActive}
				m.On("Account", mock.Anything, "admin").Return(admin, nil).Once()
				m.On("IsEntitled", admin).Return(false).Once()
				m.On("HasAccess", admin).Return(true).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				data := body["data"].(map[string]any)
				assert.Equal(t, false, data["entitled"])
				assert.Equal(t, true, data["has_access"])
				assert.Equal(t, float64(0), data["days_remaining"])
			},
		},
		{
			name:           "missing account in context",
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:      "account not found",
			accountID: "ghost",
			setupMock: func(m *MockService) {
				m.On("Account", mock.Anything, "ghost").Return(nil, entitlement.ErrAccountNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:      "service error",
			accountID: "user-active",
			setupMock: func(m *MockService) {
				m.On("Account", mock.Anything, "user-active").Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.accountID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.AccountID, tt.accountID))
			}
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			if tt.check != nil {
				tt.check(t, body)
			}
			svc.AssertExpectations(t)
		})
	}
}
