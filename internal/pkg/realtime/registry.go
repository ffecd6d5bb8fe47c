package realtime

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

const DefaultBufferSize = 32

// Event именованное событие для SSE клиентов.
// Пустой TargetUserIDs означает рассылку всем подключенным клиентам.
type Event struct {
	Name          string
	Payload       any
	TargetUserIDs []int64
}

func (e Event) targets(userID int64) bool {
	return len(e.TargetUserIDs) == 0 || slices.Contains(e.TargetUserIDs, userID)
}

type Subscription struct {
	id     uint64
	userID int64
	frames chan Frame
}

func (s *Subscription) UserID() int64 {
	return s.userID
}

// Frames закрывается когда подписка удалена из реестра (Unregister или prune).
func (s *Subscription) Frames() <-chan Frame {
	return s.frames
}

// Registry реестр живых SSE подключений процесса.
// Publish никогда не блокирует: подписка с переполненным буфером удаляется.
type Registry struct {
	mu         sync.RWMutex
	subs       map[uint64]*Subscription
	nextID     uint64
	bufferSize int
}

func NewRegistry(bufferSize int) *Registry {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Registry{
		subs:       make(map[uint64]*Subscription),
		bufferSize: bufferSize,
	}
}

func (r *Registry) Register(userID int64) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sub := &Subscription{
		id:     r.nextID,
		userID: userID,
		frames: make(chan Frame, r.bufferSize),
	}
	r.subs[sub.id] = sub

	ConnectionsActive.Inc()
	return sub
}

func (r *Registry) Unregister(sub *Subscription) {
	if sub == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(sub.id)
}

// Publish кодирует payload один раз и раскладывает кадр по целевым подпискам.
// Возвращает число подписок, получивших кадр.
func (r *Registry) Publish(event Event) (int, error) {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return 0, fmt.Errorf("encode %s payload: %w", event.Name, err)
	}
	frame := Frame{Name: event.Name, Data: data}

	delivered, stale := r.fanOut(frame, event.targets)
	r.prune(stale)

	EventsPublishedTotal.WithLabelValues(event.Name).Inc()
	return delivered, nil
}

// Heartbeat отправляет комментарий всем подпискам, попутно удаляя зависшие.
func (r *Registry) Heartbeat() (alive, pruned int) {
	frame := Frame{Comment: "ping"}

	delivered, stale := r.fanOut(frame, func(int64) bool { return true })
	r.prune(stale)

	return delivered, len(stale)
}

// CloseAll закрывает все подписки, обработчики потоков после этого завершаются сами.
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed := 0
	for id := range r.subs {
		if r.removeLocked(id) {
			closed++
		}
	}
	return closed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs)
}

// fanOut отправка идет под RLock, закрытие каналов только под Lock,
// поэтому запись в закрытый канал невозможна.
func (r *Registry) fanOut(frame Frame, match func(userID int64) bool) (int, []uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		delivered int
		stale     []uint64
	)
	for id, sub := range r.subs {
		if !match(sub.userID) {
			continue
		}

		select {
		case sub.frames <- frame:
			delivered++
		default:
			stale = append(stale, id)
		}
	}
	return delivered, stale
}

func (r *Registry) prune(ids []uint64) {
	if len(ids) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if r.removeLocked(id) {
			ConnectionsPrunedTotal.Inc()
		}
	}
}

func (r *Registry) removeLocked(id uint64) bool {
	sub, ok := r.subs[id]
	if !ok {
		return false
	}
	delete(r.subs, id)
	close(sub.frames)

	ConnectionsActive.Dec()
	return true
}
