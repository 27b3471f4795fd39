package tui

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
)

func TestNotificationBuffer_Drain_empty_returnsNil(t *testing.T) {
	b := NewNotificationBuffer()
	assert.Nil(t, b.Drain())
}

func TestNotificationBuffer_PushDrain_orderAndClear(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(push.Message{Title: "first", Category: notify.CategoryMessage})
	b.Push(push.Message{Title: "second", Category: notify.CategoryCall})

	items := b.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Nil(t, b.Drain())
}

func TestNotificationBuffer_WaitForSignal_singleSignalDrainsAll(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(push.Message{Title: "one"})
	b.Push(push.Message{Title: "two"})

	msg := b.WaitForSignal()()
	_, ok := msg.(drainNotificationsMsg)
	require.True(t, ok)

	items := b.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "one", items[0].Title)
	assert.Equal(t, "two", items[1].Title)
}

func TestNotificationBuffer_platform_delivery(t *testing.T) {
	b := NewNotificationBuffer()
	platform := push.NewLocalPlatform(push.PermissionGranted, false)
	platform.OnDeliver(b.Push)

	svc := push.NewService(platform, nil)
	require.NoError(t, svc.SendLocal(t.Context(), push.Message{Title: "hello"}))

	items := b.Drain()
	require.Len(t, items, 1)
	assert.Equal(t, "hello", items[0].Title)
}

func TestNotificationBuffer_ConcurrentPush_noLoss(t *testing.T) {
	b := NewNotificationBuffer()
	const count = 200

	var wg sync.WaitGroup
	for i := range count {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Push(push.Message{Title: fmt.Sprintf("n%d", i)})
		}(i)
	}
	wg.Wait()

	items := b.Drain()
	assert.Len(t, items, count)
}
