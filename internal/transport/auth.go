package transport

import (
	"encoding/binary"
	"fmt"
)

const (
	tokenHeaderSize = 2

	// MaxTokenLength наибольшая длина токена в аутентифицированном payload
	MaxTokenLength = 256
)

// EncodeAuthPayload собирает [длина токена 2 байта BE][token][inner]
func EncodeAuthPayload(token string, inner []byte) ([]byte, error) {
	if len(token) == 0 || len(token) > MaxTokenLength {
		return nil, fmt.Errorf("%w: %d", ErrTokenLength, len(token))
	}
	if len(inner) == 0 {
		return nil, ErrEmptyPayload
	}

	out := make([]byte, tokenHeaderSize+len(token)+len(inner))
	binary.BigEndian.PutUint16(out, uint16(len(token)))
	n := copy(out[tokenHeaderSize:], token)
	copy(out[tokenHeaderSize+n:], inner)
	return out, nil
}

// DecodeAuthPayload разделяет аутентифицированный payload на токен и inner.
// inner ссылается на b.
func DecodeAuthPayload(b []byte) (string, []byte, error) {
	if len(b) < tokenHeaderSize {
		return "", nil, fmt.Errorf("%w: %d bytes", ErrMalformedAuth, len(b))
	}

	n := int(binary.BigEndian.Uint16(b))
	if n == 0 || n > MaxTokenLength {
		return "", nil, fmt.Errorf("%w: %d", ErrTokenLength, n)
	}
	if len(b) < tokenHeaderSize+n {
		return "", nil, fmt.Errorf("%w: token truncated", ErrMalformedAuth)
	}

	inner := b[tokenHeaderSize+n:]
	if len(inner) == 0 {
		return "", nil, ErrEmptyPayload
	}
	return string(b[tokenHeaderSize : tokenHeaderSize+n]), inner, nil
}
