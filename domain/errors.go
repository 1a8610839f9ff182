package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// authorization errors, always fail the whole operation
	ErrNotOwner     = errors.New("caller is not the asset owner")
	ErrNotBidder    = errors.New("caller is not the current bidder")
	ErrNotCustodian = errors.New("caller is not the revenue custodian")
	ErrNotAdmin     = errors.New("caller is not an administrator")
	ErrNotMinter    = errors.New("caller is not allowed to mint")

	// state errors, fail fast before any mutation
	ErrNoOwner           = errors.New("asset has no owner")
	ErrBidTooLow         = errors.New("bid does not exceed the current bid")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPaymentBelowPrice = errors.New("payment below unit price")
	ErrSaleInactive      = errors.New("sale engine is deactivated")
	ErrSaleNotStarted    = errors.New("sale has not started")
	ErrAssetEncumbered   = errors.New("asset has a live ask or bid")

	// timing errors
	ErrBidLocked = errors.New("bid lock period has not elapsed")

	// payment-delivery errors, reported per payout leg
	ErrPaymentRejected = errors.New("payment rejected by recipient")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")

	ErrImmutableProperty = errors.New("property slot is immutable")
)
