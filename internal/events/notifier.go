// Package events публикует доменные события синхронно внутри процесса.
package events

import (
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/recyhub/recy-backend/internal/logger"
)

// Name — имя доменного события.
type Name string

const (
	ResourceAdded     Name = "resource-added"
	ResourceCompleted Name = "resource-completed"
	ResourceRequested Name = "resource-requested"
	RequestUpdated    Name = "request-updated"
	ChatCreated       Name = "chat-created"
	ChatMessage       Name = "chat-message"
	ChatMessageStatus Name = "chat-message-status"
	ProductPosted     Name = "product-posted"
	RatingPosted      Name = "rating"
)

type Event struct {
	Name    Name
	Payload any
}

type Handler func(Event)

// Publisher — то, что нужно use case'ам для отправки событий.
type Publisher interface {
	Publish(name Name, payload any)
}

// Notifier хранит подписчиков и вызывает их в момент Publish в порядке подписки.
type Notifier struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscriber
}

type subscriber struct {
	id      uint64
	name    Name // пустое имя — подписка на все события
	handler Handler
}

// Subscription — ручка для отписки.
type Subscription struct {
	notifier *Notifier
	id       uint64
	once     sync.Once
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe подписывает handler на событие name.
func (n *Notifier) Subscribe(name Name, handler Handler) *Subscription {
	return n.add(name, handler)
}

// SubscribeAll подписывает handler на все события.
func (n *Notifier) SubscribeAll(handler Handler) *Subscription {
	return n.add("", handler)
}

func (n *Notifier) add(name Name, handler Handler) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.subs = append(n.subs, subscriber{id: n.nextID, name: name, handler: handler})
	return &Subscription{notifier: n, id: n.nextID}
}

// Unsubscribe снимает подписку. Повторный вызов ничего не делает.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		n := s.notifier
		n.mu.Lock()
		defer n.mu.Unlock()

		for i, sub := range n.subs {
			if sub.id == s.id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	})
}

// Publish синхронно доставляет событие подписчикам. Паника подписчика логируется
// и не мешает остальным.
func (n *Notifier) Publish(name Name, payload any) {
	n.mu.RLock()
	targets := make([]Handler, 0, len(n.subs))
	for _, sub := range n.subs {
		if sub.name == "" || sub.name == name {
			targets = append(targets, sub.handler)
		}
	}
	n.mu.RUnlock()

	evt := Event{Name: name, Payload: payload}
	for _, h := range targets {
		deliver(h, evt)
	}
}

func deliver(h Handler, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Component("events").WithFields(logrus.Fields{
				"event": evt.Name,
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("подписчик упал при обработке события")
		}
	}()
	h(evt)
}

// On подписывает типизированный обработчик. События с полезной нагрузкой другого типа пропускаются.
func On[T any](n *Notifier, name Name, fn func(T)) *Subscription {
	return n.Subscribe(name, func(evt Event) {
		if payload, ok := evt.Payload.(T); ok {
			fn(payload)
		}
	})
}
