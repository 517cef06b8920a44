package network

import (
	"sync"

	"vicecity-server/pkg/api"
	"vicecity-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SubscriberBuffer - сколько кадров может отстать медленный клиент
const SubscriberBuffer = 16

// Broadcaster занимается только рассылкой кадров подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.Snapshot
	dropped     map[string]uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.Snapshot),
		dropped:     make(map[string]uint64),
	}
}

// Register создает личный канал для сессии (клиента или бота)
func (b *Broadcaster) Register(sessionID string) chan api.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.Snapshot, SubscriberBuffer)
	b.subscribers[sessionID] = ch
	b.dropped[sessionID] = 0
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
		delete(b.dropped, sessionID)
	}
}

// SendTo отправляет кадр конкретной сессии (Unicast)
func (b *Broadcaster) SendTo(sessionID string, msg api.Snapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[sessionID]
	if !ok {
		return false
	}
	return b.offer(sessionID, ch, msg)
}

// Broadcast отправляет кадр всем. Полный канал означает медленного клиента: кадр пропускается.
func (b *Broadcaster) Broadcast(msg api.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		b.offer(id, ch, msg)
	}
}

func (b *Broadcaster) offer(sessionID string, ch chan api.Snapshot, msg api.Snapshot) bool {
	select {
	case ch <- msg:
		return true
	default:
		b.dropped[sessionID]++
		if b.dropped[sessionID]%100 == 1 {
			logger.Log.WithFields(logrus.Fields{
				"component": "hub",
				"session":   sessionID,
				"dropped":   b.dropped[sessionID],
			}).Warn("Subscriber channel full, dropping frames")
		}
		return false
	}
}

// HasSubscriber проверяет, подключена ли сессия
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped - сколько кадров пропустила сессия
func (b *Broadcaster) Dropped(sessionID string) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped[sessionID]
}
