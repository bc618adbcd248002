package escrow

// Error is a program-defined failure with the numeric code the host logs
// on abort. Program codes start at 6000; 6001 stays reserved for the
// invalid-discriminator convention.
type Error struct {
	Code uint32
	Msg  string
}

// Error implements error.
func (e *Error) Error() string {
	return e.Msg
}

// ErrorCode surfaces the numeric code at the dispatch boundary.
func (e *Error) ErrorCode() uint32 {
	return e.Code
}

// Escrow program errors.
var (
	// ErrBadEscrowAddress indicates the escrow account is not the PDA
	// derived from the maker and the stored bump.
	ErrBadEscrowAddress = &Error{Code: 6002, Msg: "escrow account does not match derived address"}

	// ErrMakerMismatch indicates the maker account does not match the
	// maker recorded in escrow state.
	ErrMakerMismatch = &Error{Code: 6003, Msg: "maker does not match escrow state"}

	// ErrZeroAmount indicates an escrow was opened with a zero amount.
	ErrZeroAmount = &Error{Code: 6004, Msg: "escrow amount must be non-zero"}
)
