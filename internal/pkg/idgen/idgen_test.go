package idgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextID_Format(t *testing.T) {
	fixed := time.UnixMilli(1760000000123)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	id := NextID(KindResource)

	assert.True(t, strings.HasPrefix(id, "res_1760000000123_"), id)
	assert.True(t, Valid(id))
}

func TestNextID_UniqueWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1760000000000)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NextID(KindChat)
		_, dup := seen[id]
		assert.False(t, dup, "повтор идентификатора %s", id)
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("req_1_0a1b2c3d"))
	assert.True(t, Valid("res_1760000000123_9998"), "старый формат с числовым суффиксом")
	assert.True(t, Valid("not-an-id"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("../etc/passwd"))
	assert.False(t, Valid("res 1"))
	assert.False(t, Valid(strings.Repeat("a", 129)))
}
