// Package publish добавляет новый элемент в начало каталога.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/response"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/catalog"
)

// Request — карточка публикуемого элемента.
type Request struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	ThumbnailURL string `json:"thumbnail_url"`
	VideoURL     string `json:"video_url"`
	Duration     int    `json:"duration" validate:"gte=0"`
	ReleaseYear  int    `json:"release_year" validate:"gte=0"`
}

type Service interface {
	Publish(ctx context.Context, req catalog.PublishRequest) (*models.ContentItem, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Публикация контента
// @Description Добавляет фильм в начало каталога. Пустые обложка, рубрика и год заполняются значениями по умолчанию.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Карточка"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/contents [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.publish"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	item, err := h.service.Publish(r.Context(), catalog.PublishRequest{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Duration:     req.Duration,
		ReleaseYear:  req.ReleaseYear,
	})
	if err != nil {
		for _, known := range []error{catalog.ErrMissingTitle, catalog.ErrUnknownCategory, catalog.ErrInvalidValue} {
			if errors.Is(err, known) {
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error(known.Error()))
				return
			}
		}
		log.Error("failed to publish content", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not publish content"))
		return
	}

	log.Info("content published", slog.String("content_id", item.ID), slog.String("title", item.Title))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(item))
}
