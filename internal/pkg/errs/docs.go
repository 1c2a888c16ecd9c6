// Package errs provides the error types shared by the back-office core.
//
// Every error kind follows the same pattern:
//   - a sentinel (ErrObjectNotFound, ErrForbidden, ...) for errors.Is checks
//   - a struct carrying the details, built by New<Kind>Error constructors
//     (with a WithCause variant where a cause makes sense)
//   - Unwrap returning the sentinel
//
// The order engine taxonomy maps one to one onto these kinds:
//   - NotFound: ObjectNotFoundError
//   - Forbidden: ForbiddenError (role or ownership violation)
//   - InvalidTransition: InvalidTransitionError
//   - InsufficientStock: InsufficientStockError
//   - ItemNotInOrder: ItemNotInOrderError
//   - StorageFailure: StorageFailureError
//
// Input validation uses ValueIsRequiredError, ValueIsInvalidError and
// ValueIsOutOfRangeError.
package errs
