// Package sl содержит вспомогательные атрибуты для логгера slog,
// чтобы ошибки и идентификаторы аккаунтов выводились единообразно.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to validate account", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// AccountID возвращает атрибут с идентификатором аккаунта.
func AccountID(id string) slog.Attr {
	return slog.String("account_id", id)
}
