// Package errs provides standardized error types for the dispatch coordinator.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the repositories and the peer transports.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a numeric value falls outside its bounds
//   - ObjectNotFoundError: For when a persisted object cannot be found
//   - RetryExhaustedError: For when a peer exchange failed on every attempt
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrValueIsRequired) returned by Unwrap
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//
// Callers classify errors with errors.Is against the sentinels and extract
// details with errors.As against the struct types.
package errs
