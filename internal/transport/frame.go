// Package transport передает payload синхронизации между устройствами: кадры с
// префиксом длины поверх TCP, проверка общего токена и контроль допуска соединений.
package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// FrameHeaderSize размер префикса длины
	FrameHeaderSize = 4

	// DefaultMaxFrameBytes предел кадра по умолчанию (16 MiB)
	DefaultMaxFrameBytes = 16 << 20
)

// EncodeFrame добавляет перед payload его длину, 4 байта big-endian
func EncodeFrame(payload []byte, maxLen int) ([]byte, error) {
	if err := checkFrameLen(len(payload), maxLen); err != nil {
		return nil, err
	}

	frame := make([]byte, FrameHeaderSize+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[FrameHeaderSize:], payload)
	return frame, nil
}

// DecodeFrame читает один кадр из начала buf. Возвращает payload и число
// прочитанных байт или ErrIncompleteFrame, если buf слишком короткий.
// payload ссылается на buf.
func DecodeFrame(buf []byte, maxLen int) ([]byte, int, error) {
	if len(buf) < FrameHeaderSize {
		return nil, 0, ErrIncompleteFrame
	}

	n := binary.BigEndian.Uint32(buf)
	if err := checkFrameLen(int(n), maxLen); err != nil {
		return nil, 0, err
	}

	total := FrameHeaderSize + int(n)
	if len(buf) < total {
		return nil, 0, ErrIncompleteFrame
	}
	return buf[FrameHeaderSize:total], total, nil
}

// ReadFrame читает ровно один кадр из r. Длина проверяется до выделения памяти
// под payload.
func ReadFrame(r io.Reader, maxLen int) ([]byte, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint32(header[:])
	if err := checkFrameLen(int(n), maxLen); err != nil {
		return nil, err
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return payload, nil
}

// WriteFrame пишет payload одним кадром
func WriteFrame(w io.Writer, payload []byte, maxLen int) error {
	frame, err := EncodeFrame(payload, maxLen)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

func checkFrameLen(n, maxLen int) error {
	if n == 0 {
		return ErrEmptyFrame
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxFrameBytes
	}
	if n > maxLen {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, maxLen)
	}
	return nil
}
