// Package errors provides unified error handling for streamkit.
// It implements structured error types with machine-readable codes,
// cause chains, and retryable detection.
package errors
