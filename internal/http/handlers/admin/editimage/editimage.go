// Package editimage редактирует обложку по текстовой инструкции администратора.
package editimage

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
	"github.com/magabrotheeeer/vtv-streaming/internal/imageedit"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
)

// Request — исходное изображение в base64 и инструкция.
type Request struct {
	Image       string `json:"image" validate:"required"`
	Instruction string `json:"instruction" validate:"required"`
}

type Service interface {
	Edit(ctx context.Context, image, instruction string) (string, error)
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
// @Summary Редактирование обложки
// @Description Отправляет изображение и инструкцию в модель и возвращает результат как data URI PNG.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Изображение и инструкция"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Уже выполняется другой запрос"
// @Failure 422 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Сервис не настроен"
// @Router /admin/images/edit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.editimage"

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
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	image, err := h.service.Edit(r.Context(), req.Image, req.Instruction)
	if err != nil {
		status, msg := editFailure(err)
		log.Warn("image edit failed", slog.Int("status", status), sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, response.Error(msg))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"image": image,
	}))
}

func editFailure(err error) (int, string) {
	switch {
	case errors.Is(err, imageedit.ErrNotConfigured):
		return http.StatusServiceUnavailable, imageedit.ErrNotConfigured.Error()
	case errors.Is(err, imageedit.ErrBusy):
		return http.StatusConflict, imageedit.ErrBusy.Error()
	case errors.Is(err, imageedit.ErrMissingInput):
		return http.StatusUnprocessableEntity, imageedit.ErrMissingInput.Error()
	case errors.Is(err, imageedit.ErrInvalidImage):
		return http.StatusUnprocessableEntity, imageedit.ErrInvalidImage.Error()
	case errors.Is(err, imageedit.ErrNoImage):
		return http.StatusBadGateway, imageedit.ErrNoImage.Error()
	case errors.Is(err, imageedit.ErrServiceFailure):
		return http.StatusBadGateway, imageedit.ErrServiceFailure.Error()
	}
	return http.StatusInternalServerError, "image edit failed"
}
