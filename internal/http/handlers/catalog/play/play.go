// Package play выдаёт адрес потока, если у аккаунта есть право на просмотр.
package play

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/response"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/catalog"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
)

// Service проверяет доступ и возвращает параметры воспроизведения.
type Service interface {
	Play(ctx context.Context, accountID, contentID string) (*catalog.Playback, error)
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
// @Summary Воспроизведение
// @Description Проверяет подписку текущего аккаунта и возвращает адрес потока.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID элемента"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Подписка не активна"
// @Failure 404 {object} response.ErrorResponse
// @Router /contents/{id}/play [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.play"

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
	contentID := chi.URLParam(r, "id")

	pb, err := h.service.Play(r.Context(), accountID, contentID)
	switch {
	case errors.Is(err, catalog.ErrContentNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(catalog.ErrContentNotFound.Error()))
		return
	case errors.Is(err, entitlement.ErrAccountNotFound):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	case errors.Is(err, catalog.ErrNotEntitled):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error(catalog.ErrNotEntitled.Error()))
		return
	case err != nil:
		log.Error("failed to start playback", sl.AccountID(accountID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not start playback"))
		return
	}

	log.Debug("playback allowed", sl.AccountID(accountID), slog.String("content_id", contentID))
	render.JSON(w, r, response.StatusOKWithData(pb))
}
