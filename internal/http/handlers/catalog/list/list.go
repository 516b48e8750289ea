// Package list отдаёт каталог контента, при необходимости отфильтрованный по рубрике.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/response"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
)

// Service описывает чтение каталога.
type Service interface {
	List(ctx context.Context) ([]*models.ContentItem, error)
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
// @Summary Каталог
// @Description Возвращает элементы каталога, новые первыми. Параметр category оставляет только одну рубрику.
// @Tags Catalog
// @Produce json
// @Param category query string false "Рубрика"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse
// @Router /contents [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list contents", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list contents"))
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := make([]*models.ContentItem, 0, len(items))
		for _, it := range items {
			if it.Category == category {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contents": items,
	}))
}
