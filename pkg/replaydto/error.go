package replaydto

// Error codes carried by DomainError and TurnFailure.
const (
	CodeNoLegalSource    = "no_legal_source"
	CodeIllegalMove      = "illegal_move"
	CodeIllegalCastling  = "illegal_castling"
	CodeIllegalPromotion = "illegal_promotion"
	CodeNotFound         = "not_found"
	CodeBadRequest       = "bad_request"
	CodeInternal         = "internal"
)

type DomainError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "replay service error"
}
