// Package transport carries protocol blobs between participants and the KDC.
//
// Local is the in-process implementation of domain.KDCChannel: it hands the
// sealed request straight to a KDC service and returns the sealed grants.
// Blobs are copied at the boundary so neither side can observe the other
// mutating a buffer after it was "sent", as would be the case on a wire.
// A network transport can replace Local without touching protocol code.
package transport
