// Package reject блокирует аккаунт клиента.
package reject

import (
	"context"
	"errors"
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

type Service interface {
	RejectAccount(ctx context.Context, accountID string) (*models.Account, error)
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
// @Summary Блокировка аккаунта
// @Description Переводит аккаунт в BANNED. Повторная блокировка ничего не меняет.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID аккаунта"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/accounts/{id}/reject [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.reject"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountID := chi.URLParam(r, "id")
	acc, err := h.service.RejectAccount(r.Context(), accountID)
	switch {
	case errors.Is(err, entitlement.ErrAccountNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(entitlement.ErrAccountNotFound.Error()))
		return
	case errors.Is(err, entitlement.ErrAdminAccount):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(entitlement.ErrAdminAccount.Error()))
		return
	case err != nil:
		log.Error("failed to reject account", sl.AccountID(accountID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reject account"))
		return
	}

	log.Info("account rejected", sl.AccountID(accountID))
	render.JSON(w, r, response.StatusOKWithData(acc))
}
