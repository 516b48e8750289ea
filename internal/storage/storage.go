// Package storage содержит общие ошибки слоя хранения.
// Реализации хранилищ расположены во вложенных пакетах.
package storage

import "errors"

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken — аккаунт с таким email уже существует.
	ErrEmailTaken = errors.New("email already taken")
	// ErrDuplicateID — запись с таким идентификатором уже существует.
	ErrDuplicateID = errors.New("duplicate id")
)
