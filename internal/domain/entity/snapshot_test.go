package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatRoomSnapshot_OwnsMessages(t *testing.T) {
	room := NewChatRoom("", "a@example.com", "b@example.com")
	room.Messages = make([]Message, 0, 4)
	room.Post("a@example.com", "hi")

	snap := room.Snapshot()
	room.Messages[0].Text = "edited"
	room.Post("b@example.com", "yo")

	assert.Len(t, snap.Messages, 1)
	assert.Equal(t, "hi", snap.Messages[0].Text)
}

func TestProductSnapshot_OwnsSlices(t *testing.T) {
	p, err := NewProduct("m@example.com", "", "Лампа", []string{"a.jpg"}, []string{"собрать"}, 0)
	assert.NoError(t, err)

	snap := p.Snapshot()
	p.Images[0] = "b.jpg"
	p.Steps[0] = "разобрать"

	assert.Equal(t, []string{"a.jpg"}, snap.Images)
	assert.Equal(t, []string{"собрать"}, snap.Steps)
}
