package service

// Every public cart operation converts failures into one of these fixed
// user-facing strings. The underlying cause never crosses the operation
// boundary; it is kept on the OpError and logged for operators.
const (
	MsgMissingCartID    = "Missing cart ID"
	MsgErrorFetching    = "Error fetching cart"
	MsgItemNotFound     = "Item not found in cart"
	MsgCartEmpty        = "Cart is empty"
	MsgErrorAdding      = "Error adding item to cart"
	MsgErrorCreating    = "Error creating cart"
	MsgErrorRemoving    = "Error removing item from cart"
	MsgErrorUpdating    = "Error updating item quantity"
	MsgErrorCheckingOut = "Error redirecting to checkout"
)

// Kind classifies an operation failure for logging and tests.
type Kind int

const (
	KindIdentity Kind = iota
	KindValidation
	KindNotFound
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// OpError is the typed failure of one cart operation. Error() is exactly
// the user-facing message; the cause stays internal.
type OpError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *OpError) Error() string { return e.Message }
func (e *OpError) Unwrap() error { return e.Cause }
