package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftkerja/shiftclient/pkg/broadcast"
)

func TestMemoryBroadcaster(t *testing.T) {
	t.Parallel()

	t.Run("delivers messages in order to every subscriber", func(t *testing.T) {
		t.Parallel()

		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		ctx := context.Background()
		s1 := b.Subscribe(ctx)
		s2 := b.Subscribe(ctx)

		for _, v := range []string{"a", "b", "c"} {
			require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: v}))
		}

		for _, s := range []broadcast.Subscriber[string]{s1, s2} {
			ch := s.Receive(ctx)
			assert.Equal(t, "a", (<-ch).Data)
			assert.Equal(t, "b", (<-ch).Data)
			assert.Equal(t, "c", (<-ch).Data)
		}
	})

	t.Run("drops messages for a full subscriber", func(t *testing.T) {
		t.Parallel()

		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		ctx := context.Background()
		s := b.Subscribe(ctx)

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 2}))

		ch := s.Receive(ctx)
		assert.Equal(t, 1, (<-ch).Data)
		select {
		case m := <-ch:
			t.Fatalf("unexpected message %d", m.Data)
		default:
		}
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		t.Parallel()

		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		s := b.Subscribe(ctx)
		require.Equal(t, 1, b.Len())

		cancel()

		require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
		_, ok := <-s.Receive(context.Background())
		assert.False(t, ok)
	})

	t.Run("close is idempotent and closes subscribers", func(t *testing.T) {
		t.Parallel()

		b := broadcast.NewMemoryBroadcaster[int](1)
		s := b.Subscribe(context.Background())

		require.NoError(t, b.Close())
		require.NoError(t, b.Close())
		require.NoError(t, s.Close())

		_, ok := <-s.Receive(context.Background())
		assert.False(t, ok)
		assert.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: 1}))

		late := b.Subscribe(context.Background())
		_, ok = <-late.Receive(context.Background())
		assert.False(t, ok)
	})
}
