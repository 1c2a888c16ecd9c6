package errs

import "fmt"

// ForbiddenError reports a role or ownership violation.
type ForbiddenError struct {
	Reason string
	Cause  error
}

func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func NewForbiddenErrorWithCause(reason string, cause error) *ForbiddenError {
	return &ForbiddenError{Reason: reason, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrForbidden, e.Reason), e.Cause)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError reports a status change the requester's role may not perform.
type InvalidTransitionError struct {
	From string
	To   string
	Role string
}

func NewInvalidTransitionError(from, to, role string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s → %s (role: %s)", ErrInvalidTransition, e.From, e.To, e.Role)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InsufficientStockError reports a deduction larger than the stock on hand.
type InsufficientStockError struct {
	ProductID int64
	StoreID   int64
	Available int
	Required  int
}

func NewInsufficientStockError(productID, storeID int64, available, required int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		StoreID:   storeID,
		Available: available,
		Required:  required,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s for product %d at location %d: %d available, %d required",
		ErrInsufficientStock, e.ProductID, e.StoreID, e.Available, e.Required)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ItemNotInOrderError reports an order item id that is not part of the order being updated.
type ItemNotInOrderError struct {
	OrderItemID int64
	OrderID     int64
}

func NewItemNotInOrderError(orderItemID, orderID int64) *ItemNotInOrderError {
	return &ItemNotInOrderError{OrderItemID: orderItemID, OrderID: orderID}
}

func (e *ItemNotInOrderError) Error() string {
	return fmt.Sprintf("order item %d does not belong to this order (order %d)", e.OrderItemID, e.OrderID)
}

func (e *ItemNotInOrderError) Unwrap() error {
	return ErrItemNotInOrder
}

// StorageFailureError wraps an error raised by the underlying store.
// Retryable is set for serialization failures and deadlocks; callers decide whether to resubmit.
type StorageFailureError struct {
	Operation string
	Retryable bool
	Cause     error
}

func NewStorageFailureError(operation string, cause error) *StorageFailureError {
	return &StorageFailureError{Operation: operation, Cause: cause}
}

func NewRetryableStorageFailureError(operation string, cause error) *StorageFailureError {
	return &StorageFailureError{Operation: operation, Retryable: true, Cause: cause}
}

func (e *StorageFailureError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStorageFailure, e.Operation), e.Cause)
}

func (e *StorageFailureError) Unwrap() error {
	return ErrStorageFailure
}
