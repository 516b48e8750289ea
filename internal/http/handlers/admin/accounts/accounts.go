// Package accounts отдаёт администратору списки аккаунтов:
// ожидающие регистрации, запросы продления и все клиенты.
package accounts

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/response"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
)

// Представления списка, значения параметра view.
const (
	ViewPending  = "pending"
	ViewRenewals = "renewals"
	ViewClients  = "clients"
)

// Service описывает административные выборки аккаунтов.
type Service interface {
	PendingSignups(ctx context.Context) ([]*models.Account, error)
	RenewalRequests(ctx context.Context) ([]*models.Account, error)
	Clients(ctx context.Context) ([]*models.Account, error)
	IsEntitled(acc *models.Account) bool
	DaysRemaining(expiresAt time.Time) int
}

// Entry — строка административной таблицы.
type Entry struct {
	*models.Account
	Entitled      bool `json:"entitled"`
	DaysRemaining int  `json:"days_remaining"`
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
// @Summary Аккаунты
// @Description Списки для панели администратора. view: pending, renewals или clients (по умолчанию).
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param view query string false "Представление" Enums(pending, renewals, clients)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin/accounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.accounts"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	view := r.URL.Query().Get("view")
	if view == "" {
		view = ViewClients
	}

	var (
		list []*models.Account
		err  error
	)
	switch view {
	case ViewPending:
		list, err = h.service.PendingSignups(r.Context())
	case ViewRenewals:
		list, err = h.service.RenewalRequests(r.Context())
	case ViewClients:
		list, err = h.service.Clients(r.Context())
	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown view, expected pending, renewals or clients"))
		return
	}
	if err != nil {
		log.Error("failed to list accounts", slog.String("view", view), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list accounts"))
		return
	}

	entries := make([]Entry, 0, len(list))
	for _, acc := range list {
		e := Entry{Account: acc, Entitled: h.service.IsEntitled(acc)}
		if acc.Subscription != nil {
			e.DaysRemaining = h.service.DaysRemaining(acc.Subscription.ExpiresAt)
		}
		entries = append(entries, e)
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"view":     view,
		"accounts": entries,
	}))
}
