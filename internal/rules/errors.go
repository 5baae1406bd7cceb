package rules

type staticErr string

func (e staticErr) Error() string { return string(e) }

// Failure kinds. Errors returned by this package wrap one or more of these;
// test with errors.Is.
var (
	ErrNoLegalSource    error = staticErr("no legal source")
	ErrIllegalMove      error = staticErr("illegal move")
	ErrIllegalCastling  error = staticErr("illegal castling")
	ErrIllegalPromotion error = staticErr("illegal promotion")
)
