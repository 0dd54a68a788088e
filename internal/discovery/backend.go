// Package discovery advertises this device and tracks other devices on the
// local network.
package discovery

import (
	"context"
	"net"
)

// Advertisement - то, что публикует устройство
type Advertisement struct {
	Instance string
	Service  string
	Domain   string
	Text     []string
	Port     int
}

// Announcement - разрешенное объявление другого устройства.
// TTL 0 означает, что объявление отозвано.
type Announcement struct {
	Instance string
	Text     []string
	IPs      []net.IP
	Port     int
	TTL      uint32
}

//go:generate moq -out backend_mock.go . Backend

// Backend - механизм service discovery (mDNS/DNS-SD)
type Backend interface {
	// Advertise публикует объявление и возвращает функцию его отзыва
	Advertise(ad Advertisement) (stop func(), err error)

	// Browse сообщает объявления через found до отмены ctx или ошибки
	Browse(ctx context.Context, service, domain string, found func(Announcement)) error
}
