package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("worker-1")
	defer cleanup()

	hub.Publish("worker-1", Event{Event: "notification", Data: "hello"})

	select {
	case got := <-ch:
		assert.Equal(t, "notification", got.Event)
		assert.Equal(t, "hello", got.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PublishToOtherRecipientIsInvisible(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("worker-1")
	defer cleanup()

	hub.Publish("worker-2", Event{Event: "notification"})

	select {
	case <-ch:
		t.Fatal("event leaked across recipients")
	default:
	}
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()
	ch1, cleanup1 := hub.Subscribe("worker-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("worker-2")
	defer cleanup2()

	hub.PublishToMany([]string{"worker-1", "worker-2"}, Event{Event: "alert"})

	got1 := <-ch1
	assert.Equal(t, "worker-1", got1.RecipientID)
	got2 := <-ch2
	assert.Equal(t, "worker-2", got2.RecipientID)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("worker-1")
	_, cleanup2 := hub.Subscribe("worker-1")
	require.Equal(t, 2, hub.SubscriberCount("worker-1"))

	cleanup()
	assert.Equal(t, 1, hub.SubscriberCount("worker-1"))

	cleanup2()
	assert.Equal(t, 0, hub.SubscriberCount("worker-1"))
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("worker-1")
	defer cleanup()

	// The channel buffers 10; the excess is dropped rather than blocking the
	// publisher.
	for i := 0; i < 25; i++ {
		hub.Publish("worker-1", Event{Event: "notification"})
	}

	assert.Len(t, ch, 10)
}
