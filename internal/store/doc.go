// Package store holds the KDC's key material.
//
// KeyRegistry maps each participant identity to the long-term key it shares
// with the KDC. It is in-memory only: keys are generated at registration and
// vanish with the process. All methods are concurrency-safe; the registry is
// read-mostly once registration is over, so lookups take a read lock.
package store
