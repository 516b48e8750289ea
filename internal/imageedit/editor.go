// Package imageedit редактирует обложки каталога через модель Gemini.
//
// Изображение приходит как base64 (с префиксом data URI или без него) вместе
// с текстовой инструкцией; результат — первая картинка из ответа модели в
// виде data URI PNG. Одновременно выполняется не больше одного запроса.
package imageedit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/metrics"
)

// DefaultModel — модель редактирования изображений по умолчанию.
const DefaultModel = "gemini-2.5-flash-image"

var (
	ErrNotConfigured  = errors.New("image edit service is not configured")
	ErrBusy           = errors.New("another image edit is in progress")
	ErrMissingInput   = errors.New("image and instruction are required")
	ErrInvalidImage   = errors.New("image is not valid base64")
	ErrNoImage        = errors.New("model response contains no image")
	ErrServiceFailure = errors.New("image edit service failed")
)

const (
	inputMIMEType = "image/png"
	resultPrefix  = "data:image/png;base64,"
)

var dataURIPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

// Generator — часть клиента genai, которой пользуется редактор.
// *genai.Models удовлетворяет этому интерфейсу.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Editor отправляет изображение с инструкцией в модель.
type Editor struct {
	gen   Generator
	model string
	log   *slog.Logger
	mu    sync.Mutex
}

// New создаёт редактор поверх Generator. При gen == nil редактор выключен
// и каждый вызов Edit возвращает ErrNotConfigured.
func New(gen Generator, model string, log *slog.Logger) *Editor {
	if model == "" {
		model = DefaultModel
	}
	return &Editor{gen: gen, model: model, log: log}
}

// NewGemini создаёт клиента Gemini API по ключу. Пустой ключ даёт выключенный редактор.
func NewGemini(ctx context.Context, apiKey, model string, log *slog.Logger) (*Editor, error) {
	const op = "imageedit.NewGemini"
	if apiKey == "" {
		log.Warn("gemini api key is not set, image editing is disabled")
		return New(nil, model, log), nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return New(client.Models, model, log), nil
}

// Enabled сообщает, настроен ли внешний сервис.
func (e *Editor) Enabled() bool {
	return e.gen != nil
}

// Edit применяет инструкцию к изображению. Выполняется одна попытка без повторов;
// параллельный вызов сразу получает ErrBusy.
func (e *Editor) Edit(ctx context.Context, image, instruction string) (string, error) {
	const op = "imageedit.Edit"

	if !e.Enabled() {
		return "", fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}
	if image == "" || strings.TrimSpace(instruction) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingInput)
	}

	raw, err := decodeImage(image)
	if err != nil {
		metrics.ImageEdits.WithLabelValues("invalid_image").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !e.mu.TryLock() {
		metrics.ImageEdits.WithLabelValues("busy").Inc()
		return "", fmt.Errorf("%s: %w", op, ErrBusy)
	}
	defer e.mu.Unlock()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(raw, inputMIMEType),
		}, genai.RoleUser),
	}

	resp, err := e.gen.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		metrics.ImageEdits.WithLabelValues("failure").Inc()
		e.log.Error("image edit request failed", slog.String("model", e.model), sl.Err(err))
		return "", fmt.Errorf("%s: %w: %w", op, ErrServiceFailure, err)
	}

	data, ok := firstInlineImage(resp)
	if !ok {
		metrics.ImageEdits.WithLabelValues("no_image").Inc()
		return "", fmt.Errorf("%s: %w", op, ErrNoImage)
	}

	metrics.ImageEdits.WithLabelValues("ok").Inc()
	return resultPrefix + base64.StdEncoding.EncodeToString(data), nil
}

func decodeImage(image string) ([]byte, error) {
	clean := dataURIPrefix.ReplaceAllString(image, "")
	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil || len(raw) == 0 {
		return nil, ErrInvalidImage
	}
	return raw, nil
}

// firstInlineImage берёт первую часть с данными из первого кандидата.
func firstInlineImage(resp *genai.GenerateContentResponse) ([]byte, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil, false
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, true
		}
	}
	return nil, false
}
