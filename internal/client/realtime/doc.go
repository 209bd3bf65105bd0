// Package realtime keeps the local document cache in step with the two
// server push channels.
//
// # Channels
//
// The list channel (/ws/document/list/) streams document_created,
// document_updated and document_deleted events for the account. The detail
// channel (/ws/document/{id}/) streams analysis progress for one document.
// Each is driven by its own Channel, a Disconnected → Connecting → Connected
// state machine over a Dialer. A channel never reconnects by itself: after a
// transport close or error it stays Disconnected until Open is called again.
//
// # Reducers
//
// ApplyListEvent and ApplyDetailEvent apply one decoded event to state
// owned by the caller's event loop. They do no I/O and can be tested
// without a socket.
package realtime
