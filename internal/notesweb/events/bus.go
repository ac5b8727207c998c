// Package events содержит синхронную шину уведомлений между контроллером и виджетами.
package events

import (
	"context"
	"sync"
)

// Handler получает событие с полезной нагрузкой T.
type Handler[T any] func(ctx context.Context, payload T)

// Bus доставляет события подписчикам синхронно, в порядке подписки.
type Bus[T any] struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers []subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn Handler[T]
}

// NewBus создает пустую шину.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe регистрирует обработчик и возвращает функцию отписки.
func (b *Bus[T]) Subscribe(fn Handler[T]) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription[T]{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish вызывает всех подписчиков. Обработчики могут подписываться и публиковать повторно.
func (b *Bus[T]) Publish(ctx context.Context, payload T) {
	b.mu.RLock()
	handlers := make([]subscription[T], len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, s := range handlers {
		s.fn(ctx, payload)
	}
}

// Len возвращает число подписчиков.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
