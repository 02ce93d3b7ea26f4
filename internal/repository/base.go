// Package repository implements the data access layer for the application.
package repository

import (
	"strings"

	"globetrotter/internal/models"
)

// classify wraps a raw gorm error into the application taxonomy.
func classify(err error) error {
	if isConnectivityError(err) {
		return models.NewUpstreamError(err)
	}
	return models.NewInternalError(err)
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite uses "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isConnectivityError checks if a DB error indicates the store is unreachable.
// Classified once here so handlers never match on message text.
func isConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "failed to connect")
}
