package service

import "errors"

var (
	// ErrValidation - некорректные координаты, серьезность или статус. Фатальна только для одного запроса.
	ErrValidation = errors.New("validation error")
	// ErrNotFound - сущность отсутствует в хранилище
	ErrNotFound = errors.New("not found")
	// ErrPersistence - ошибка записи конкретной тревоги
	ErrPersistence = errors.New("persistence error")
	// ErrInvalidTransition - недопустимый переход статуса тревоги
	ErrInvalidTransition = errors.New("invalid status transition")
)
