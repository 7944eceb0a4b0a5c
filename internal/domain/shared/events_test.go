package shared

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster(t *testing.T) {
	var b Broadcaster[int]
	var first, second []int

	unsubFirst := b.Subscribe(func(v int) { first = append(first, v) })
	b.Subscribe(func(v int) { second = append(second, v) })
	assert.Equal(t, 2, b.Len())

	b.Publish(1)
	unsubFirst()
	unsubFirst()
	b.Publish(2)

	assert.Equal(t, []int{1}, first)
	assert.Equal(t, []int{1, 2}, second)
	assert.Equal(t, 1, b.Len())
}

func TestBroadcasterListenerMayUnsubscribeItself(t *testing.T) {
	var b Broadcaster[string]
	calls := 0

	var unsub func()
	unsub = b.Subscribe(func(string) {
		calls++
		unsub()
	})

	b.Publish("a")
	b.Publish("b")
	assert.Equal(t, 1, calls)
}

func TestBroadcasterDeliversOneAtATime(t *testing.T) {
	var b Broadcaster[int]
	// unguarded on purpose: delivery is serialized
	sum, calls := 0, 0
	b.Subscribe(func(v int) {
		sum += v
		calls++
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			b.Publish(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, calls)
	assert.Equal(t, 1275, sum)
}

func TestPublishVersionDropsStaleValues(t *testing.T) {
	var b Broadcaster[string]
	var seen []string
	b.Subscribe(func(v string) { seen = append(seen, v) })

	assert.True(t, b.PublishVersion(1, "loading"))
	assert.True(t, b.PublishVersion(3, "refreshed matches"))
	assert.False(t, b.PublishVersion(2, "refreshed inventory"))
	assert.False(t, b.PublishVersion(3, "duplicate"))
	assert.True(t, b.PublishVersion(4, "done"))

	assert.Equal(t, []string{"loading", "refreshed matches", "done"}, seen)
}

func TestPublishVersionUnderRacingPublishers(t *testing.T) {
	var b Broadcaster[uint64]
	var last uint64
	ordered := true
	b.Subscribe(func(v uint64) {
		if v <= last {
			ordered = false
		}
		last = v
	})

	var wg sync.WaitGroup
	for i := uint64(1); i <= 100; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			b.PublishVersion(v, v)
		}(i)
	}
	wg.Wait()

	assert.True(t, ordered)
	assert.Equal(t, uint64(100), last)
}
