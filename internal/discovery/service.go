package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/crmsync/internal/models"
)

const (
	// ServiceType - тип DNS-SD сервиса crmsync
	ServiceType = "_crmsync._tcp"
	// Domain - домен mDNS
	Domain = "local."
	// DefaultPort - порт sync транспорта по умолчанию
	DefaultPort = 8765

	txtDeviceID   = "deviceId"
	txtDeviceName = "deviceName"
	txtProtocol   = "proto"

	subscriberBuffer = 16
)

// ErrNoDeviceID означает, что сервису не передан идентификатор устройства
var ErrNoDeviceID = errors.New("device id is required")

// Config - параметры discovery
type Config struct {
	DeviceID   string
	DeviceName string
	Protocol   string
	Service    string
	Domain     string
	Port       int
	// PeerTTL - через сколько пир без повторного объявления удаляется, 0 отключает
	PeerTTL time.Duration
}

// PeerEventType - вид изменения таблицы пиров
type PeerEventType int

const (
	PeerFound PeerEventType = iota
	PeerUpdated
	PeerLost
)

func (t PeerEventType) String() string {
	switch t {
	case PeerFound:
		return "found"
	case PeerUpdated:
		return "updated"
	case PeerLost:
		return "lost"
	default:
		return "unknown"
	}
}

// PeerEvent уведомляет подписчиков об изменении таблицы пиров
type PeerEvent struct {
	Peer models.DeviceInfo
	Type PeerEventType
}

// Service публикует устройство и ведет таблицу обнаруженных пиров.
// Реклама и сканирование включаются независимо, Start/Stop идемпотентны.
type Service struct {
	backend       Backend
	logger        *slog.Logger
	now           func() time.Time
	peers         map[string]models.DeviceInfo
	subscribers   map[int]chan PeerEvent
	stopAdvertise func()
	stopScan      context.CancelFunc
	scanDone      chan struct{}
	cfg           Config
	nextSub       int
	mu            sync.Mutex
}

// NewService создает сервис discovery
func NewService(cfg Config, backend Backend, logger *slog.Logger) (*Service, error) {
	if cfg.DeviceID == "" {
		return nil, ErrNoDeviceID
	}
	if cfg.Service == "" {
		cfg.Service = ServiceType
	}
	if cfg.Domain == "" {
		cfg.Domain = Domain
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.DeviceName == "" {
		cfg.DeviceName = cfg.DeviceID
	}

	return &Service{
		backend:     backend,
		logger:      logger.With("device_id", cfg.DeviceID),
		now:         time.Now,
		peers:       make(map[string]models.DeviceInfo),
		subscribers: make(map[int]chan PeerEvent),
		cfg:         cfg,
	}, nil
}

// StartAdvertising публикует объявление этого устройства
func (s *Service) StartAdvertising(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopAdvertise != nil {
		return nil
	}

	text := []string{
		txtDeviceID + "=" + s.cfg.DeviceID,
		txtDeviceName + "=" + s.cfg.DeviceName,
	}
	if s.cfg.Protocol != "" {
		text = append(text, txtProtocol+"="+s.cfg.Protocol)
	}

	stop, err := s.backend.Advertise(Advertisement{
		Instance: s.cfg.DeviceID,
		Service:  s.cfg.Service,
		Domain:   s.cfg.Domain,
		Port:     s.cfg.Port,
		Text:     text,
	})
	if err != nil {
		s.logger.Error("Failed to start advertising", "error", err)
		return fmt.Errorf("failed to advertise: %w", err)
	}

	s.stopAdvertise = stop
	s.logger.Info("Advertising started", "service", s.cfg.Service, "port", s.cfg.Port)
	return nil
}

// StopAdvertising отзывает объявление
func (s *Service) StopAdvertising() {
	s.mu.Lock()
	stop := s.stopAdvertise
	s.stopAdvertise = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
		s.logger.Info("Advertising stopped")
	}
}

// Advertising сообщает, опубликовано ли объявление
func (s *Service) Advertising() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopAdvertise != nil
}

// StartScanning начинает слушать объявления других устройств.
// Ошибки backend логируются; после ошибки сканирование можно запустить снова.
func (s *Service) StartScanning(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopScan != nil {
		return nil
	}

	scanCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	s.stopScan = cancel
	s.scanDone = done

	go s.browse(scanCtx, done)
	if s.cfg.PeerTTL > 0 {
		go s.expireLoop(scanCtx)
	}

	s.logger.Info("Scanning started", "service", s.cfg.Service)
	return nil
}

// StopScanning прекращает сканирование. Таблица пиров сохраняется.
func (s *Service) StopScanning() {
	s.mu.Lock()
	cancel := s.stopScan
	done := s.scanDone
	s.stopScan = nil
	s.scanDone = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Scanning stopped")
}

// Scanning сообщает, идет ли сканирование
func (s *Service) Scanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopScan != nil
}

func (s *Service) browse(ctx context.Context, done chan struct{}) {
	defer close(done)

	err := s.backend.Browse(ctx, s.cfg.Service, s.cfg.Domain, s.handle)
	if err == nil || ctx.Err() != nil {
		return
	}

	s.logger.Error("Discovery browse failed", "error", err)

	// Возвращаемся в Idle, чтобы StartScanning мог перезапустить сканирование
	s.mu.Lock()
	if s.scanDone == done {
		s.stopScan()
		s.stopScan = nil
		s.scanDone = nil
	}
	s.mu.Unlock()
}

// handle применяет одно объявление к таблице пиров
func (s *Service) handle(a Announcement) {
	txt := parseText(a.Text)
	deviceID := txt[txtDeviceID]
	if deviceID == "" {
		s.logger.Debug("Ignoring announcement without device id", "instance", a.Instance)
		return
	}
	if deviceID == s.cfg.DeviceID {
		return
	}

	if a.TTL == 0 {
		s.remove(deviceID)
		return
	}

	peer := models.DeviceInfo{
		DeviceID:   deviceID,
		DeviceName: txt[txtDeviceName],
		Protocol:   txt[txtProtocol],
		LastSeen:   s.now(),
		IPAddress:  pickIP(a.IPs),
		Port:       a.Port,
	}
	if peer.DeviceName == "" {
		peer.DeviceName = deviceID
	}

	s.mu.Lock()
	_, known := s.peers[deviceID]
	s.peers[deviceID] = peer
	s.mu.Unlock()

	eventType := PeerUpdated
	if !known {
		eventType = PeerFound
		s.logger.Info("Peer discovered", "peer", deviceID, "addr", peer.Addr())
	}
	s.publish(PeerEvent{Type: eventType, Peer: peer})
}

func (s *Service) remove(deviceID string) {
	s.mu.Lock()
	peer, ok := s.peers[deviceID]
	delete(s.peers, deviceID)
	s.mu.Unlock()

	if ok {
		s.logger.Info("Peer lost", "peer", deviceID)
		s.publish(PeerEvent{Type: PeerLost, Peer: peer})
	}
}

func (s *Service) expireLoop(ctx context.Context) {
	interval := s.cfg.PeerTTL / 2
	if interval <= 0 {
		interval = s.cfg.PeerTTL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.ExpirePeers()
		case <-ctx.Done():
			return
		}
	}
}

// ExpirePeers удаляет пиров, не объявлявшихся дольше PeerTTL
func (s *Service) ExpirePeers() {
	if s.cfg.PeerTTL <= 0 {
		return
	}

	cutoff := s.now().Add(-s.cfg.PeerTTL)
	var stale []string

	s.mu.Lock()
	for id, peer := range s.peers {
		if peer.LastSeen.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		s.remove(id)
	}
}

// Peers возвращает снимок таблицы пиров, отсортированный по DeviceID
func (s *Service) Peers() []models.DeviceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	peers := make([]models.DeviceInfo, 0, len(s.peers))
	for _, p := range s.peers {
		peers = append(peers, p)
	}
	slices.SortFunc(peers, func(a, b models.DeviceInfo) int {
		return strings.Compare(a.DeviceID, b.DeviceID)
	})
	return peers
}

// Peer возвращает пира по идентификатору
func (s *Service) Peer(deviceID string) (models.DeviceInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.peers[deviceID]
	return p, ok
}

// Subscribe возвращает канал изменений таблицы пиров и функцию отписки.
// Медленный подписчик теряет события, а не блокирует discovery.
func (s *Service) Subscribe() (<-chan PeerEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan PeerEvent, subscriberBuffer)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(c)
			}
		})
	}
}

func (s *Service) publish(ev PeerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			s.logger.Warn("Dropping peer event for slow subscriber", "peer", ev.Peer.DeviceID)
		}
	}
}

// Close останавливает рекламу и сканирование и закрывает подписки
func (s *Service) Close() {
	s.StopAdvertising()
	s.StopScanning()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

func parseText(records []string) map[string]string {
	out := make(map[string]string, len(records))
	for _, r := range records {
		k, v, ok := strings.Cut(r, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

// pickIP предпочитает IPv4: link-local IPv6 без зоны непригоден для dial
func pickIP(ips []net.IP) string {
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String()
		}
	}
	if len(ips) > 0 {
		return ips[0].String()
	}
	return ""
}
