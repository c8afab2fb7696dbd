package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_DeliversToNamedAndWildcardSubscribers(t *testing.T) {
	n := NewNotifier()

	var named, all []Name
	n.Subscribe(ResourceAdded, func(e Event) { named = append(named, e.Name) })
	n.SubscribeAll(func(e Event) { all = append(all, e.Name) })

	n.Publish(ResourceAdded, "r1")
	n.Publish(RatingPosted, "x")

	assert.Equal(t, []Name{ResourceAdded}, named)
	assert.Equal(t, []Name{ResourceAdded, RatingPosted}, all)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()

	calls := 0
	sub := n.Subscribe(ChatCreated, func(Event) { calls++ })
	n.Publish(ChatCreated, nil)
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.Publish(ChatCreated, nil)

	assert.Equal(t, 1, calls)
}

func TestNotifier_UnsubscribeInsideHandler(t *testing.T) {
	n := NewNotifier()

	calls := 0
	var sub *Subscription
	sub = n.Subscribe(ChatMessage, func(Event) {
		calls++
		sub.Unsubscribe()
	})

	n.Publish(ChatMessage, nil)
	n.Publish(ChatMessage, nil)

	assert.Equal(t, 1, calls)
}

func TestNotifier_PanickingSubscriberDoesNotStopOthers(t *testing.T) {
	n := NewNotifier()

	delivered := false
	n.Subscribe(RequestUpdated, func(Event) { panic("boom") })
	n.Subscribe(RequestUpdated, func(Event) { delivered = true })

	assert.NotPanics(t, func() { n.Publish(RequestUpdated, nil) })
	assert.True(t, delivered)
}

func TestOn_TypedPayload(t *testing.T) {
	n := NewNotifier()

	var got []ChatMessagePayload
	On(n, ChatMessage, func(p ChatMessagePayload) { got = append(got, p) })

	n.Publish(ChatMessage, ChatMessagePayload{ChatID: "chat_1"})
	n.Publish(ChatMessage, "not a payload")

	assert.Len(t, got, 1)
	assert.Equal(t, "chat_1", got[0].ChatID)
}
