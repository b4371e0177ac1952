// Package domain defines core data models, error kinds and interfaces shared
// across the KDC and its participants.
//
// It contains plain types (wire/state), sentinel errors and contracts
// (interfaces) only. Callers match errors with errors.Is; every layer wraps
// with %w so the sentinel survives.
package domain
