// Package messages defines the wire schemas carried inside the protocol's
// encrypted blobs: the KeyRequest a participant sends to the KDC and the
// SessionKeyGrant the KDC sends back to each side.
//
// # Encoding
//
// Both records are CBOR maps with string keys:
//
//	KeyRequest       { v, receiver, timestamp }
//	SessionKeyGrant  { v, sessionKey, peer, role, issuedAt, validUntil }
//
// Timestamps are Unix seconds. The session key is a 32-byte byte string.
//
// # Validation
//
// Decoding is strict. Unknown keys, duplicate keys, trailing bytes, an
// unsupported version or a missing required field are all rejected, with
// domain.ErrMalformedRequest or domain.ErrMalformedGrant respectively. A
// decoded record is therefore always complete; callers never see a zero
// field standing in for an absent one.
package messages
