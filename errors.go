package gbce

import "errors"

// Errors returned by the market operations. They are wrapped with context, use errors.Is to test them.
var (
	ErrInvalidStock   = errors.New("invalid stock")
	ErrUnknownStock   = errors.New("unknown stock")
	ErrInvalidTrade   = errors.New("invalid trade")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrInvalidWindow  = errors.New("invalid window")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUndefinedRatio = errors.New("undefined ratio")
	ErrEmptyMarket    = errors.New("empty market")
)
