// Package broadcast fans typed messages out to any number of subscribers.
//
// MemoryBroadcaster is the in-process implementation. Delivery never blocks
// the publisher: a subscriber whose buffer is full misses the message. A
// subscription ends when its context is cancelled, when Close is called on it,
// or when the broadcaster itself is closed; in every case its channel is closed.
//
//	b := broadcast.NewMemoryBroadcaster[realtime.Status](16)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	go func() {
//		for msg := range sub.Receive(ctx) {
//			log.Println(msg.Data.State)
//		}
//	}()
//
//	_ = b.Broadcast(ctx, broadcast.Message[realtime.Status]{Data: st})
//
// Broadcasting on, or subscribing to, a closed broadcaster is a no-op.
// ErrBroadcasterClosed and ErrSubscriberClosed are available to other
// implementations that prefer to report it.
package broadcast
