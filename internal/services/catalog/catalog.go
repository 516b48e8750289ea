// Package catalog управляет каталогом контента и доступом к воспроизведению.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/metrics"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/storage"
)

const (
	// DefaultThumbnailURL подставляется, если обложка не загружена.
	DefaultThumbnailURL = "https://picsum.photos/300/450"
	// DefaultVideoURL — демонстрационный ролик для элементов без видео.
	DefaultVideoURL = "https://sample-videos.com/video321/mp4/720/big_buck_bunny_720p_1mb.mp4"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrNotEntitled     = errors.New("subscription is not active")
	ErrMissingTitle    = errors.New("title is required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidValue    = errors.New("duration and release year must not be negative")
)

// ContentRepository описывает хранилище каталога.
type ContentRepository interface {
	// Add публикует элемент в начало каталога.
	Add(ctx context.Context, item models.ContentItem) error
	// Get возвращает элемент по ID; storage.ErrNotFound, если его нет.
	Get(ctx context.Context, id string) (*models.ContentItem, error)
	// List возвращает каталог, новые элементы первыми.
	List(ctx context.Context) ([]*models.ContentItem, error)
}

// AccessChecker отвечает на вопрос, может ли аккаунт смотреть контент.
type AccessChecker interface {
	Account(ctx context.Context, accountID string) (*models.Account, error)
	HasAccess(acc *models.Account) bool
}

// PublishRequest — данные нового элемента каталога от администратора.
type PublishRequest struct {
	Title        string
	Description  string
	Category     string
	ThumbnailURL string
	VideoURL     string
	Duration     int
	ReleaseYear  int
}

// Playback — разрешение на просмотр с адресом потока.
type Playback struct {
	ContentID string           `json:"content_id"`
	Title     string           `json:"title"`
	StreamURL string           `json:"stream_url"`
	IsSeries  bool             `json:"is_series"`
	Episodes  []models.Episode `json:"episodes,omitempty"`
}

// ContentService реализует чтение каталога, публикацию и проверку доступа.
type ContentService struct {
	contents ContentRepository
	access   AccessChecker
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
}

// Option настраивает ContentService.
type Option func(*ContentService)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *ContentService) { s.now = now }
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(gen func() string) Option {
	return func(s *ContentService) { s.newID = gen }
}

// NewContentService создает новый экземпляр ContentService.
func NewContentService(contents ContentRepository, access AccessChecker, log *slog.Logger, opts ...Option) *ContentService {
	s := &ContentService{
		contents: contents,
		access:   access,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List возвращает весь каталог.
func (s *ContentService) List(ctx context.Context) ([]*models.ContentItem, error) {
	const op = "catalog.List"
	items, err := s.contents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// Get возвращает элемент каталога.
func (s *ContentService) Get(ctx context.Context, id string) (*models.ContentItem, error) {
	const op = "catalog.Get"
	item, err := s.contents.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrContentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// Categories возвращает фиксированный список рубрик.
func (s *ContentService) Categories() []string {
	return append([]string(nil), models.Categories...)
}

// Plans возвращает прайс-лист тарифов.
func (s *ContentService) Plans() []models.PlanPrice {
	return models.PlanPrices()
}

// Publish добавляет новый фильм в начало каталога, подставляя значения по умолчанию.
func (s *ContentService) Publish(ctx context.Context, req PublishRequest) (*models.ContentItem, error) {
	const op = "catalog.Publish"

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingTitle)
	}
	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}
	if !models.IsKnownCategory(category) {
		return nil, fmt.Errorf("%s: %q: %w", op, category, ErrUnknownCategory)
	}
	if req.Duration < 0 || req.ReleaseYear < 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidValue)
	}

	item := models.ContentItem{
		ID:           s.newID(),
		Title:        title,
		Description:  req.Description,
		Category:     category,
		ThumbnailURL: orDefault(req.ThumbnailURL, DefaultThumbnailURL),
		VideoURL:     orDefault(req.VideoURL, DefaultVideoURL),
		Duration:     req.Duration,
		ReleaseYear:  req.ReleaseYear,
	}
	if item.ReleaseYear == 0 {
		item.ReleaseYear = s.now().Year()
	}

	if err := s.contents.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("content published", slog.String("content_id", item.ID), slog.String("category", category))
	return item.Clone(), nil
}

// Play проверяет право аккаунта на просмотр и возвращает адрес потока.
// Решение принимает только AccessChecker.HasAccess, статус берётся свежим из хранилища.
func (s *ContentService) Play(ctx context.Context, accountID, contentID string) (*Playback, error) {
	const op = "catalog.Play"

	item, err := s.Get(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	acc, err := s.access.Account(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !s.access.HasAccess(acc) {
		metrics.Playbacks.WithLabelValues("denied").Inc()
		s.log.Info("playback denied", sl.AccountID(accountID), slog.String("content_id", contentID))
		return nil, fmt.Errorf("%s: %w", op, ErrNotEntitled)
	}

	metrics.Playbacks.WithLabelValues("allowed").Inc()
	return &Playback{
		ContentID: item.ID,
		Title:     item.Title,
		StreamURL: orDefault(item.VideoURL, DefaultVideoURL),
		IsSeries:  item.IsSeries,
		Episodes:  item.Episodes,
	}, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
