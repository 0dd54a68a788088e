package transport

import "errors"

// Ошибки протокола: соединение закрывается без ответа.
var (
	// ErrEmptyFrame кадр с нулевой длиной
	ErrEmptyFrame = errors.New("frame length is zero")

	// ErrFrameTooLarge кадр больше настроенного предела
	ErrFrameTooLarge = errors.New("frame exceeds maximum length")

	// ErrIncompleteFrame в буфере еще нет целого кадра
	ErrIncompleteFrame = errors.New("incomplete frame")

	// ErrMalformedAuth аутентифицированный payload не разбирается
	ErrMalformedAuth = errors.New("malformed authenticated payload")

	// ErrTokenLength длина токена вне 1..MaxTokenLength байт
	ErrTokenLength = errors.New("invalid token length")

	// ErrEmptyPayload аутентифицированный payload без inner данных
	ErrEmptyPayload = errors.New("empty inner payload")

	// ErrUnauthorized токен отвергнут аутентификатором
	ErrUnauthorized = errors.New("token rejected")
)

// Ошибки транспорта: синхронизация завершается ошибкой, ее можно повторить в новом соединении.
var (
	// ErrTimeout полный ответ не пришел вовремя
	ErrTimeout = errors.New("sync timed out")

	// ErrConnectionClosed ошибка сокета или преждевременное закрытие
	ErrConnectionClosed = errors.New("connection closed")

	// ErrNoPeerAddress адрес пира не разрешен в host:port
	ErrNoPeerAddress = errors.New("peer address is not resolved")
)

// Ошибки жизненного цикла сервера
var (
	// ErrServerStarted возвращается Start на уже запущенном сервере
	ErrServerStarted = errors.New("server already started")

	// ErrNoHandler обмен пришел до вызова SetSyncHandler
	ErrNoHandler = errors.New("sync handler not set")
)
