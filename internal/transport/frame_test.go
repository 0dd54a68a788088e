package transport

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_RoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}

	frame, err := EncodeFrame(payload, DefaultMaxFrameBytes)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 5, 1, 2, 3, 4, 5}, frame)

	got, consumed, err := DecodeFrame(frame, DefaultMaxFrameBytes)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, 9, consumed)
}

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name     string
		wantErr  error
		buf      []byte
		want     []byte
		maxLen   int
		consumed int
	}{
		{
			name:    "short header",
			buf:     []byte{0, 0},
			maxLen:  10,
			wantErr: ErrIncompleteFrame,
		},
		{
			name:    "short payload",
			buf:     []byte{0, 0, 0, 3, 'a'},
			maxLen:  10,
			wantErr: ErrIncompleteFrame,
		},
		{
			name:    "zero length",
			buf:     []byte{0, 0, 0, 0},
			maxLen:  10,
			wantErr: ErrEmptyFrame,
		},
		{
			name:    "over ceiling",
			buf:     []byte{0, 0, 0, 11},
			maxLen:  10,
			wantErr: ErrFrameTooLarge,
		},
		{
			name:     "trailing bytes stay unconsumed",
			buf:      []byte{0, 0, 0, 2, 'h', 'i', 0, 0},
			maxLen:   10,
			want:     []byte("hi"),
			consumed: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consumed, err := DecodeFrame(tt.buf, tt.maxLen)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, consumed)
		})
	}
}

func TestEncodeFrame_Limits(t *testing.T) {
	_, err := EncodeFrame(nil, 10)
	assert.ErrorIs(t, err, ErrEmptyFrame)

	_, err = EncodeFrame(make([]byte, 11), 10)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello"), 0))
	require.NoError(t, WriteFrame(&buf, []byte("world"), 0))

	first, err := ReadFrame(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(first))

	second, err := ReadFrame(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "world", string(second))

	_, err = ReadFrame(&buf, 0)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrame_Errors(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 5, 'a'}), 10)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadFrame(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}), 10)
	assert.ErrorIs(t, err, ErrFrameTooLarge)

	_, err = ReadFrame(bytes.NewReader([]byte{0, 0, 0, 0}), 10)
	assert.ErrorIs(t, err, ErrEmptyFrame)
}
