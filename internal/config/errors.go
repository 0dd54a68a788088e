package config

import "errors"

var ErrInvalidPort = errors.New("invalid port")
var ErrInvalidTimeout = errors.New("timeout must be positive")
var ErrInvalidLimit = errors.New("limit must not be negative")
var ErrTokenTooLong = errors.New("token is longer than 256 bytes")
var ErrUnknownAdapter = errors.New("unknown merge adapter")
var ErrUnknownLogLevel = errors.New("unknown log level")
var ErrMissingStoragePath = errors.New("missing storage path")
