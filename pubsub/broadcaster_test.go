package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_Chaining(t *testing.T) {
	var got []string
	record := func(prefix string) *Listener[string] {
		return Func(func(payload string) { got = append(got, prefix+":"+payload) })
	}

	removed := record("removed")
	b := NewBroadcaster[string]().
		On("1", record("a")).
		Once("1", record("b")).
		On("1", record("c")).
		On("2", removed).
		RemoveChannel("2").
		Emit("1", "data1").
		Emit("2", "data2").
		Emit("1", "again")

	require.NoError(t, b.Err())
	assert.Equal(t, []string{"a:data1", "b:data1", "c:data1", "a:again", "c:again"}, got)
}

func TestBroadcaster_Off(t *testing.T) {
	var calls int
	l := Func(func(int) { calls++ })

	b := NewBroadcaster[int]().On("n", l).Emit("n", 1).Off("n", l).Emit("n", 2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Ledger().Len("n"))
}

func TestBroadcaster_ErrKeepsFirstFailure(t *testing.T) {
	l := Func(func(string) {})

	b := NewBroadcaster[string]().
		On("x", l).
		On("x", l).
		Once("y", nil)

	err := b.Err()
	require.ErrorIs(t, err, ErrDuplicateListener)

	var subErr *SubscribeError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "x", subErr.Channel)
	assert.Equal(t, 1, b.Ledger().Len("x"))
}

func TestBroadcaster_EmitWithAck(t *testing.T) {
	b := NewBroadcaster[string]()
	b.On("job", NewListener(func(payload string, ack Ack) {
		ack("done:" + payload)
	}))

	var acked []any
	b.EmitWithAck("job", "build", func(result any) { acked = append(acked, result) })

	assert.Equal(t, []any{"done:build"}, acked)
}
