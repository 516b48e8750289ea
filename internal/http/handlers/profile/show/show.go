// Package show отдаёт профиль текущего аккаунта: статус подписки,
// признак действующего доступа и число оставшихся дней.
package show

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/response"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
)

// Service описывает чтение аккаунта и вычисление права доступа.
// IsEntitled отвечает только за подписку, HasAccess учитывает и роль администратора.
type Service interface {
	Account(ctx context.Context, accountID string) (*models.Account, error)
	IsEntitled(acc *models.Account) bool
	HasAccess(acc *models.Account) bool
	DaysRemaining(expiresAt time.Time) int
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
// @Summary Профиль
// @Description Возвращает аккаунт, признак действующей подписки (entitled), право на просмотр (has_access) и число оставшихся дней.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.show"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountID, ok := middlewarectx.AccountIDFrom(r.Context())
	if !ok {
		log.Error("account id missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	acc, err := h.service.Account(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, entitlement.ErrAccountNotFound) {
			log.Warn("account not found", sl.AccountID(accountID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to read account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read profile"))
		return
	}

	days := 0
	if acc.Subscription != nil {
		days = h.service.DaysRemaining(acc.Subscription.ExpiresAt)
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account":        acc,
		"entitled":       h.service.IsEntitled(acc),
		"has_access":     h.service.HasAccess(acc),
		"days_remaining": days,
	}))
}
