// Package errs provides standardized error types for the pizzeria application.
//
// Every error type follows the same pattern: a sentinel error variable, a struct
// carrying the details, constructors with and without a cause, and an Unwrap method
// so callers can classify failures with errors.Is / errors.As.
//
// Error families:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - lookup: ObjectNotFoundError
//   - lifecycle: InvalidTransitionError
//   - storage: PersistenceError
//
// Validation errors are produced before any storage call is made. PersistenceError
// wraps driver, transaction and context failures; its cause stays reachable through
// errors.Is so callers can detect timeouts.
package errs
