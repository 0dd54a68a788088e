package store

import "errors"

var (
	// ErrHalted возвращается любым изменяющим вызовом после того, как Store
	// встретил тип события без редьюсера. Журнал не меняется, воспроизвести его
	// сможет только обновленная сборка.
	ErrHalted = errors.New("store halted after unrecoverable replay error")

	// ErrDuplicateEvent означает, что событие уже есть в журнале
	ErrDuplicateEvent = errors.New("duplicate event")

	// ErrReplayRejected означает, что событие пакета отвергнуто при воспроизведении
	// в порядке timestamp
	ErrReplayRejected = errors.New("event rejected in replay order")
)
