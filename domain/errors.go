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
	ErrBadParamInput = errors.New("Given Param is not valid")

	// auction lookup
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidCategory = errors.New("invalid auction category")

	// bid preconditions
	ErrAuctionNotStarted = errors.New("auction has not started")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrSelfBid           = errors.New("sellers cannot bid on their own auction")
	ErrBidOutOfRange     = errors.New("bid amount out of allowed range")

	// token economy
	ErrNoTokens      = errors.New("insufficient token balance")
	ErrMaxExtensions = errors.New("auction reached the extension limit")

	// finalization
	ErrAuctionNotEnded  = errors.New("auction has not ended yet")
	ErrAlreadyFinalized = errors.New("auction already finalized")

	// ErrContention surfaces after the bounded transactional retries are exhausted
	ErrContention = errors.New("too much contention, retry later")
)
