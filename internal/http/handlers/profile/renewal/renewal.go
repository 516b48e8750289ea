// Package renewal принимает запрос клиента на продление подписки.
// Запрос только запоминает тариф; доступ продлевает администратор после оплаты.
package renewal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/response"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
)

// Request — желаемый тариф продления.
type Request struct {
	Plan string `json:"plan" validate:"required,oneof=BASIC STANDARD PREMIUM"`
}

// Service описывает запрос продления.
type Service interface {
	RequestRenewal(ctx context.Context, accountID string, plan models.Plan) (*models.Account, error)
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
// @Summary Запрос продления
// @Description Запоминает тариф, который клиент оплатил для продления. Статус не меняется.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Тариф"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Аккаунт заблокирован или администратор"
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /profile/renewal [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.renewal"

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

	acc, err := h.service.RequestRenewal(r.Context(), accountID, models.Plan(req.Plan))
	switch {
	case errors.Is(err, entitlement.ErrAccountNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found"))
		return
	case errors.Is(err, entitlement.ErrSuspended):
		log.Info("renewal refused", sl.AccountID(accountID), sl.Err(err))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error(entitlement.ErrSuspended.Error()))
		return
	case errors.Is(err, entitlement.ErrAdminAccount):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error(entitlement.ErrAdminAccount.Error()))
		return
	case errors.Is(err, entitlement.ErrInvalidPlan):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(entitlement.ErrInvalidPlan.Error()))
		return
	case err != nil:
		log.Error("failed to request renewal", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not request renewal"))
		return
	}

	log.Info("renewal requested", sl.AccountID(accountID), slog.String("plan", req.Plan))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"pending_renewal_plan": acc.PendingRenewalPlan,
		"message":              "renewal request sent, awaiting payment validation",
	}))
}
