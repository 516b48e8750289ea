// Package validate подтверждает регистрацию или оплату продления.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/response"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
)

// Request — тело запроса. Пустое тело означает подтверждение регистрации.
type Request struct {
	IsRenewal bool `json:"is_renewal"`
}

type Service interface {
	ValidateApproval(ctx context.Context, accountID string, isRenewal bool) (*models.Account, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтверждение аккаунта
// @Description Активирует аккаунт на 30 дней. При is_renewal=true применяет запрошенный тариф.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID аккаунта"
// @Param request body Request false "Признак продления"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Аккаунт заблокирован или администратор"
// @Router /admin/accounts/{id}/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.validate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountID := chi.URLParam(r, "id")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	acc, err := h.service.ValidateApproval(r.Context(), accountID, req.IsRenewal)
	switch {
	case errors.Is(err, entitlement.ErrAccountNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(entitlement.ErrAccountNotFound.Error()))
		return
	case errors.Is(err, entitlement.ErrAccountBanned):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(entitlement.ErrAccountBanned.Error()))
		return
	case errors.Is(err, entitlement.ErrAdminAccount):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(entitlement.ErrAdminAccount.Error()))
		return
	case err != nil:
		log.Error("failed to validate account", sl.AccountID(accountID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate account"))
		return
	}

	log.Info("account validated", sl.AccountID(accountID), slog.Bool("renewal", req.IsRenewal))
	render.JSON(w, r, response.StatusOKWithData(acc))
}
