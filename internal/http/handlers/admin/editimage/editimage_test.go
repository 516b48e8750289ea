package editimage

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vtv-streaming/internal/imageedit"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Edit(ctx context.Context, image, instruction string) (string, error) {
	args := m.Called(ctx, image, instruction)
	return args.String(0), args.Error(1)
}

func TestEditImageHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	const body = `{"image":"aGVsbG8=","instruction":"add a sunset"}`

	tests := []struct {
		name           string
		body           string
		result         string
		err            error
		callsService   bool
		expectedStatus int
		expectedError  string
	}{
		{name: "edited", body: body, result: "data:image/png;base64,AAAA", callsService: true, expectedStatus: http.StatusOK},
		{name: "missing instruction", body: `{"image":"aGVsbG8="}`, expectedStatus: http.StatusUnprocessableEntity, expectedError: "field Instruction is a required field"},
		{name: "bad json", body: `{`, expectedStatus: http.StatusBadRequest, expectedError: "invalid request body"},
		{name: "not configured", body: body, err: fmt.Errorf("imageedit.Edit: %w", imageedit.ErrNotConfigured), callsService: true, expectedStatus: http.StatusServiceUnavailable, expectedError: "image edit service is not configured"},
		{name: "busy", body: body, err: imageedit.ErrBusy, callsService: true, expectedStatus: http.StatusConflict, expectedError: "another image edit is in progress"},
		{name: "invalid image", body: body, err: imageedit.ErrInvalidImage, callsService: true, expectedStatus: http.StatusUnprocessableEntity},
		{name: "no image returned", body: body, err: imageedit.ErrNoImage, callsService: true, expectedStatus: http.StatusBadGateway},
		{name: "upstream failure", body: body, err: fmt.Errorf("imageedit.Edit: %w: %w", imageedit.ErrServiceFailure, errors.New("quota")), callsService: true, expectedStatus: http.StatusBadGateway, expectedError: "image edit service failed"},
		{name: "unexpected", body: body, err: errors.New("boom"), callsService: true, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.callsService {
				svc.On("Edit", mock.Anything, "aGVsbG8=", "add a sunset").Return(tt.result, tt.err).Once()
			}
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/images/edit", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, got["error"])
			}
			if tt.result != "" {
				assert.Equal(t, tt.result, got["data"].(map[string]any)["image"])
			}
			svc.AssertExpectations(t)
		})
	}
}
