package models

import (
	"net"
	"strconv"
	"time"
)

// DeviceInfo представляет присутствие пира в локальной сети.
// Не сохраняется на диск, пересобирается в каждой сессии.
type DeviceInfo struct {
	LastSeen   time.Time `json:"lastSeen"`            // LastSeen время последнего обнаружения
	DeviceID   string    `json:"deviceId"`            // DeviceID идентификатор устройства
	DeviceName string    `json:"deviceName"`          // DeviceName человекочитаемое имя
	IPAddress  string    `json:"ipAddress,omitempty"` // IPAddress адрес, на котором слушает пир
	Protocol   string    `json:"protocol,omitempty"`  // Protocol версия протокола синхронизации из TXT записи
	Port       int       `json:"port,omitempty"`      // Port порт sync транспорта
}

// Addr returns host:port or an empty string when the peer has not resolved yet.
func (d *DeviceInfo) Addr() string {
	if d.IPAddress == "" || d.Port == 0 {
		return ""
	}
	return net.JoinHostPort(d.IPAddress, strconv.Itoa(d.Port))
}

// DispatchResult is what collaborators receive from Dispatch. Expected validation
// failures are reported here, never as a panic or a Go error.
type DispatchResult struct {
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}
