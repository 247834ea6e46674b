package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredentials indicates a failed login or password check.
// It deliberately carries no detail about whether the user exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrPasswordMismatch indicates that a new password and its confirmation disagree.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ErrSymbolNotFound indicates the quote provider does not know the symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrQuoteUnavailable indicates the quote provider could not be reached or
// answered with a non-404 failure. Kept distinct from ErrSymbolNotFound so
// callers can tell a bad symbol from a bad provider.
var ErrQuoteUnavailable = errors.New("quote currently unavailable")

// ErrInsufficientFunds indicates a buy whose cost exceeds the account's cash.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidShares indicates a share count that is not a positive integer or,
// on a sell, exceeds the account's current net holding of the symbol.
var ErrInvalidShares = errors.New("invalid share count")
