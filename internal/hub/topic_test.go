package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicPublishWithoutSubscribers(t *testing.T) {
	topic := NewTopic[int]("orphan", 8)

	// Must not block or panic.
	for i := range 10 {
		topic.Publish(i)
	}
}

func TestTopicDeliversInPublishOrder(t *testing.T) {
	topic := NewTopic[int]("ordered", 8)
	sub := topic.Subscribe()
	defer sub.Unsubscribe()

	for i := range 5 {
		topic.Publish(i)
	}

	for want := range 5 {
		select {
		case got := <-sub.C():
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for message %d", want)
		}
	}
	assert.Zero(t, sub.Missed())
}

func TestTopicDoesNotReplayHistory(t *testing.T) {
	topic := NewTopic[int]("no-replay", 8)
	topic.Publish(1)
	topic.Publish(2)

	sub := topic.Subscribe()
	defer sub.Unsubscribe()

	select {
	case got := <-sub.C():
		t.Fatalf("received pre-subscription message %d", got)
	default:
	}

	topic.Publish(3)
	select {
	case got := <-sub.C():
		assert.Equal(t, 3, got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for post-subscription message")
	}
}

func TestTopicEvictsOldestForLaggingSubscriber(t *testing.T) {
	const capacity = 8
	topic := NewTopic[int]("lagging", capacity)
	sub := topic.Subscribe()
	defer sub.Unsubscribe()

	// Publish 12 without reading: the first 4 must be evicted.
	for i := range 12 {
		topic.Publish(i)
	}

	assert.EqualValues(t, 4, sub.Missed())

	var got []int
	for range capacity {
		select {
		case v := <-sub.C():
			got = append(got, v)
		case <-time.After(time.Second):
			t.Fatal("timed out draining subscription")
		}
	}
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10, 11}, got)

	select {
	case v := <-sub.C():
		t.Fatalf("unexpected extra message %d", v)
	default:
	}

	// Missed resets on read.
	assert.Zero(t, sub.Missed())
}

func TestTopicSlowSubscriberDoesNotAffectPeers(t *testing.T) {
	const capacity = 8
	topic := NewTopic[int]("peers", capacity)
	slow := topic.Subscribe()
	defer slow.Unsubscribe()
	fast := topic.Subscribe()
	defer fast.Unsubscribe()

	for i := range 12 {
		topic.Publish(i)

		// Keep pace on one subscription only.
		select {
		case v := <-fast.C():
			assert.Equal(t, i, v)
		case <-time.After(time.Second):
			t.Fatalf("fast subscriber starved on message %d", i)
		}
	}
	assert.Zero(t, fast.Missed())

	// The slow subscriber lagged on its own; its peer keeping pace did not
	// shield it from eviction.
	assert.EqualValues(t, 4, slow.Missed())

	var got []int
	for range capacity {
		select {
		case v := <-slow.C():
			got = append(got, v)
		case <-time.After(time.Second):
			t.Fatal("timed out draining slow subscription")
		}
	}
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10, 11}, got)
}

func TestSubscriptionUnsubscribeIsIdempotent(t *testing.T) {
	topic := NewTopic[int]("unsub", 4)
	sub := topic.Subscribe()

	sub.Unsubscribe()
	sub.Unsubscribe()

	_, open := <-sub.C()
	assert.False(t, open, "channel should be closed after Unsubscribe")

	// Publishing after detach must not panic or deliver.
	topic.Publish(42)
}

func TestHubNewWiresBothTopics(t *testing.T) {
	h := New(100)
	require.NotNil(t, h.Heartbeats)
	require.NotNil(t, h.Transactions)
	assert.Equal(t, 100, h.Transactions.capacity)
	assert.Equal(t, heartbeatBufferSize, h.Heartbeats.capacity)
}

func TestNewTopicClampsCapacity(t *testing.T) {
	topic := NewTopic[int]("clamped", 0)
	assert.Equal(t, 1, topic.capacity)
}
