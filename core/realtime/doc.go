// Package realtime manages the client's single websocket channel to the backend.
//
// A Connection is an explicit state machine:
//
//	Disconnected --Connect--> Connecting --open--> Open
//	Connecting   --error/close--> Closed(reason)
//	Open         --close--> Closed(reason)
//	Closed       --Connect--> Connecting
//
// Connect is a no-op while Open or Connecting, so repeated calls never create a
// second transport. Inbound text frames are appended to the inbox unparsed and
// in delivery order. Send writes JSON only while Open and otherwise returns
// false without queuing anything. Transport errors are logged; the close that
// follows is what moves the state to Closed.
//
//	conn := realtime.NewFromConfig(cfg, realtime.WithLogger(log))
//	conn.Connect(ctx)
//
//	for st := range conn.Subscribe(ctx) {
//		if st.IsConnected() {
//			conn.Send(map[string]any{"type": "location", "lat": -6.2, "lng": 106.8})
//		}
//	}
//
// # Reconnection
//
// Nothing reconnects by default. WithReconnect installs a bounded exponential
// backoff that runs after unexpected closes only; Close never triggers it.
//
// # Timeouts
//
// The handshake has no deadline unless the ctx passed to Connect carries one or
// the dialer was built WithHandshakeTimeout. Without either, an unanswered
// handshake leaves the connection Connecting.
package realtime
