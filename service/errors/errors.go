package errors

import "fmt"

type NilConfigError struct{}

func (e *NilConfigError) Error() string {
	return "MainConfig can not be nil"
}

// Kind groups errors by how a caller is expected to react to them.
type Kind uint

const (
	KindValidation Kind = iota + 1
	KindArithmetic
	KindAuthorization
	KindState
	KindFunds
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindArithmetic:
		return "arithmetic"
	case KindAuthorization:
		return "authorization"
	case KindState:
		return "state"
	case KindFunds:
		return "funds"
	default:
		return "unknown"
	}
}

// Error is a domain error value. Two errors are considered equal by
// errors.Is when their codes match, so wrapped copies still compare.
type Error struct {
	Kind    Kind
	Code    uint32
	Name    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) String() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Message)
}

func newError(kind Kind, code uint32, name, msg string) *Error {
	return &Error{Kind: kind, Code: code, Name: name, Message: msg}
}

// Codes start at 6000 like on-chain custom program errors.
var (
	ErrInvalidAuthority      = newError(KindAuthorization, 6000, "InvalidAuthority", "invalid authority to perform this operation")
	ErrInvalidTransferAmount = newError(KindValidation, 6006, "InvalidTransferAmount", "invalid transfer amount")
	ErrAlreadyMintedToday    = newError(KindState, 6017, "AlreadyMintedToday", "tokens have already been minted today")
	ErrInsufficientAmount    = newError(KindFunds, 6019, "InsufficientAmount", "cannot transfer zero or insufficient amount")
	ErrInsufficientFunds     = newError(KindFunds, 6020, "InsufficientFunds", "insufficient funds in source account")

	ErrNoRecipients                 = newError(KindValidation, 6100, "NoRecipients", "distribution needs at least one recipient")
	ErrTooManyRecipients            = newError(KindValidation, 6101, "TooManyRecipients", "too many recipients for a single distribution")
	ErrInvalidWeightTotal           = newError(KindValidation, 6102, "InvalidWeightTotal", "total weight must be greater than zero")
	ErrInvalidGemCount              = newError(KindValidation, 6103, "InvalidGemCount", "recipient weight must be greater than zero and at most the total weight")
	ErrInvalidPercentage            = newError(KindValidation, 6104, "InvalidPercentage", "percentage out of range")
	ErrInvalidSourceAccount         = newError(KindValidation, 6105, "InvalidSourceAccount", "invalid source account")
	ErrInvalidDestination           = newError(KindValidation, 6106, "InvalidDestination", "invalid destination account")
	ErrDistributionAlreadyFinalized = newError(KindState, 6107, "DistributionAlreadyFinalized", "distribution has already been finalized")
	ErrRecipientAlreadyPaid         = newError(KindState, 6108, "RecipientAlreadyPaid", "recipient has already been paid in this distribution")

	ErrMathOverflow   = newError(KindArithmetic, 6200, "MathOverflow", "arithmetic overflow")
	ErrDivisionByZero = newError(KindArithmetic, 6201, "DivisionByZero", "division by zero")
)

// KindOf returns the kind of a domain error anywhere in err's chain,
// or zero when err is not a domain error.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}
		err = u.Unwrap()
	}
	return 0
}

// As returns the domain error in err's chain, if any.
func As(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
