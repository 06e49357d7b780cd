package errs

import "errors"

// Sentinel errors shared by the transaction workflows, the sweeper and the HTTP layer.
// Callers attach them with Mark and branch with errors.Is.
var (
	// Precondition failures: nothing was changed
	ErrNotFound          = errors.New("listing not found")
	ErrNotActive         = errors.New("listing is not active")
	ErrUnauthorized      = errors.New("caller is not the seller")
	ErrSelfTradeRejected = errors.New("seller cannot buy their own listing")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Listing validation
	ErrInvalidListing      = errors.New("invalid listing")
	ErrListingLimitReached = errors.New("active listing limit reached")

	// Collaborator failures
	ErrPersistenceFailure  = errors.New("persistence failure")
	ErrSellerPayoutFailed  = errors.New("seller payout failed, buyer refunded")
	ErrCompensationFailure = errors.New("buyer refund failed after seller payout failure")

	// Lifecycle
	ErrShuttingDown = errors.New("engine is shutting down")
)
