package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
)

// Мок сервиса с методом Register
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, email, credential, phone string, plan models.Plan) (*models.Account, error) {
	args := m.Called(ctx, email, credential, phone, plan)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	valid := Request{Email: "new@vtv.com", Password: "secret", Phone: "+24101", Plan: "STANDARD"}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid registration",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "new@vtv.com", "secret", "+24101", models.PlanStandard).
					Return(&models.Account{ID: "acc-1", Status: models.StatusPending}, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing phone",
			requestBody:    Request{Email: "new@vtv.com", Password: "secret", Plan: "BASIC"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Phone is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - unknown plan",
			requestBody:    Request{Email: "new@vtv.com", Password: "secret", Phone: "+1", Plan: "GOLD"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Plan must be one of [BASIC STANDARD PREMIUM]",
			wantStatus:     "Error",
		},
		{
			name:        "blank phone rejected by service",
			requestBody: Request{Email: "new@vtv.com", Password: "secret", Phone: "  ", Plan: "BASIC"},
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "new@vtv.com", "secret", "  ", models.PlanBasic).
					Return(nil, entitlement.ErrMissingField).Once()
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      entitlement.ErrMissingField.Error(),
			wantStatus:     "Error",
		},
		{
			name:        "duplicate email",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "new@vtv.com", "secret", "+24101", models.PlanStandard).
					Return(nil, entitlement.ErrDuplicateEmail).Once()
			},
			wantStatusCode: http.StatusConflict,
			wantError:      "email already exists",
			wantStatus:     "Error",
		},
		{
			name:        "service error",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "new@vtv.com", "secret", "+24101", models.PlanStandard).
					Return(nil, errors.New("storage down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register account",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			handler := New(newNoopLogger(), svc)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "acc-1", data["account_id"])
				assert.Equal(t, "PENDING", data["status"])
			}
			svc.AssertExpectations(t)
		})
	}
}
