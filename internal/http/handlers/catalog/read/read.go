// Package read отдаёт карточку одного элемента каталога.
package read

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
	"github.com/magabrotheeeer/vtv-streaming/internal/services/catalog"
)

type Service interface {
	Get(ctx context.Context, id string) (*models.ContentItem, error)
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
// @Summary Элемент каталога
// @Tags Catalog
// @Produce json
// @Param id path string true "ID элемента"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /contents/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("content id is required"))
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrContentNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(catalog.ErrContentNotFound.Error()))
			return
		}
		log.Error("failed to read content", slog.String("content_id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read content"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(item))
}
