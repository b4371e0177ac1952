// Package participant implements one party of the KDC protocol.
//
// A Participant holds the long-term key it shares with the KDC and, after a
// successful exchange, one session key scoped to one peer. It moves between
// two states:
//
//	Unkeyed --ReceiveSessionKey--> Keyed --ReceiveSessionKey--> Keyed (overwritten)
//	   ^                                                           |
//	   +--------------------------- Reset -------------------------+
//
// SendMessage and ReceiveMessage require Keyed and an unexpired session. A
// new grant always replaces the previous session; there is no resumption.
package participant
