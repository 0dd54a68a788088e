package crdt

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// IDPrefix постоянный префикс id события.
const IDPrefix = "evt-"

// IDGenerator выдает локально монотонные идентификаторы событий вида
// evt-<epoch>-<counter> для одного устройства.
// Epoch берется из часов в миллисекундах и никогда не уменьшается,
// counter растет внутри одного epoch и сбрасывается при его смене.
type IDGenerator struct {
	now     func() time.Time
	epoch   int64
	counter int64
	mu      sync.Mutex
}

// NewIDGenerator создает генератор, продолжающий с сохраненного состояния.
// lastEpoch/lastCounter - последний выданный идентификатор (0, 0 для нового устройства).
func NewIDGenerator(lastEpoch, lastCounter int64) *IDGenerator {
	return &IDGenerator{
		now:     time.Now,
		epoch:   lastEpoch,
		counter: lastCounter,
	}
}

// WithClock подменяет источник времени (для тестов).
func (g *IDGenerator) WithClock(now func() time.Time) *IDGenerator {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.now = now
	return g
}

// Next возвращает следующий id вместе с его числовыми частями.
func (g *IDGenerator) Next() (id string, epoch, counter int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	wall := g.now().UnixMilli()
	if wall > g.epoch {
		// Часы ушли вперед - новый epoch, счетчик с нуля
		g.epoch = wall
		g.counter = 0
	} else {
		// Часы стоят или отстали - остаемся в сохраненном epoch
		g.counter++
	}

	return FormatID(g.epoch, g.counter), g.epoch, g.counter
}

// State возвращает последнюю выданную пару (epoch, counter) для сохранения.
func (g *IDGenerator) State() (epoch, counter int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.epoch, g.counter
}

// Observe сдвигает генератор за id, выданный не им, например за собственное
// событие, восстановленное из журнала.
func (g *IDGenerator) Observe(id string) {
	epoch, counter, ok := ParseID(id)
	if !ok {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if epoch > g.epoch || (epoch == g.epoch && counter > g.counter) {
		g.epoch = epoch
		g.counter = counter
	}
}

// FormatID собирает id из частей.
func FormatID(epoch, counter int64) string {
	return fmt.Sprintf("%s%d-%d", IDPrefix, epoch, counter)
}

// ParseID извлекает (epoch, counter) из id. ok равен false для id не в формате
// evt-<epoch>-<counter> или с отрицательными числами.
func ParseID(id string) (epoch, counter int64, ok bool) {
	rest, found := strings.CutPrefix(id, IDPrefix)
	if !found {
		return 0, 0, false
	}
	epochStr, counterStr, found := strings.Cut(rest, "-")
	if !found {
		return 0, 0, false
	}

	epoch, err := strconv.ParseInt(epochStr, 10, 64)
	if err != nil || epoch < 0 {
		return 0, 0, false
	}
	counter, err = strconv.ParseInt(counterStr, 10, 64)
	if err != nil || counter < 0 {
		return 0, 0, false
	}

	return epoch, counter, true
}
