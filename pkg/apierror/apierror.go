// Package apierror defines the typed errors surfaced by the raffle SDK to its
// callers, each carrying a stable numeric code and a user displayable message.
package apierror

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type ApiErrorCode int

const (
	GeneralServerError ApiErrorCode = iota
	GeneralClientError
	MissingParameterError
	SolanaTxErrorCode
	SolanaQueryErrorCode
)

func (c ApiErrorCode) String() string {
	switch c {
	case GeneralServerError:
		return "GENERAL_SERVER_ERROR"
	case GeneralClientError:
		return "GENERAL_CLIENT_ERROR"
	case MissingParameterError:
		return "MISSING_PARAMETER"
	case SolanaTxErrorCode:
		return "SOLANA_TX_ERROR"
	case SolanaQueryErrorCode:
		return "SOLANA_QUERY_ERROR"
	}
	return fmt.Sprintf("ApiErrorCode(%d)", int(c))
}

type ApiResponseStatus int

const (
	StatusSuccess ApiResponseStatus = iota + 1
	StatusClientError
	StatusServerError
)

// SolanaTxType identifies the stage of the build, sign, submit and confirm
// cycle that failed.
type SolanaTxType int

const (
	FailedToConfirm SolanaTxType = iota
	FailedToGenerateIx
)

func (t SolanaTxType) String() string {
	switch t {
	case FailedToConfirm:
		return "FAILED_TO_CONFIRM"
	case FailedToGenerateIx:
		return "FAILED_TO_GENERATE_IX"
	}
	return fmt.Sprintf("SolanaTxType(%d)", int(t))
}

// SolanaQueryType identifies why a chain read failed or could not happen.
type SolanaQueryType int

const (
	InvalidArgument SolanaQueryType = iota
	UnableToFindCurrentRaffle
	NoWalletConnected
	UnableToFindRaffle
)

func (t SolanaQueryType) String() string {
	switch t {
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case UnableToFindCurrentRaffle:
		return "UNABLE_TO_FIND_CURRENT_RAFFLE"
	case NoWalletConnected:
		return "NO_WALLET_CONNECTED"
	case UnableToFindRaffle:
		return "UNABLE_TO_FIND_RAFFLE"
	}
	return fmt.Sprintf("SolanaQueryType(%d)", int(t))
}

// ApiError is a categorized SDK error. Type holds the SolanaTxType or
// SolanaQueryType for the Solana categories and is zero otherwise.
type ApiError struct {
	Code       ApiErrorCode
	Status     ApiResponseStatus
	HttpStatus int
	Message    string
	Type       int

	cause error
}

func (e *ApiError) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.cause)
}

func (e *ApiError) Unwrap() error {
	return e.cause
}

// Cause returns the underlying error, if any.
func (e *ApiError) Cause() error {
	return e.cause
}

// WithCause returns a copy of e wrapping cause.
func (e *ApiError) WithCause(cause error) *ApiError {
	cloned := *e
	cloned.cause = cause
	return &cloned
}

// Is matches another ApiError with the same code and type so that
// errors.Is(err, SolanaQueryError(NoWalletConnected)) works on wrapped errors.
func (e *ApiError) Is(target error) bool {
	other, ok := target.(*ApiError)
	if !ok {
		return false
	}
	return e.Code == other.Code && e.Type == other.Type
}

func ServerError(message string) *ApiError {
	return &ApiError{
		Code:       GeneralServerError,
		Status:     StatusServerError,
		HttpStatus: http.StatusInternalServerError,
		Message:    message,
	}
}

func ClientError(message string) *ApiError {
	return &ApiError{
		Code:       GeneralClientError,
		Status:     StatusClientError,
		HttpStatus: http.StatusBadRequest,
		Message:    message,
	}
}

func MissingParameter(name string) *ApiError {
	return &ApiError{
		Code:       MissingParameterError,
		Status:     StatusClientError,
		HttpStatus: http.StatusBadRequest,
		Message:    fmt.Sprintf("Missing parameter: %s", name),
	}
}

func SolanaTxError(txType SolanaTxType) *ApiError {
	return &ApiError{
		Code:       SolanaTxErrorCode,
		Status:     StatusServerError,
		HttpStatus: http.StatusInternalServerError,
		Message:    fmt.Sprintf("Solana transaction Error: %d", int(txType)),
		Type:       int(txType),
	}
}

// SolanaQueryError builds a query error. InvalidArgument is raised before any
// network call and is the caller's to fix, so it carries a client status.
func SolanaQueryError(queryType SolanaQueryType) *ApiError {
	status, httpStatus := StatusServerError, http.StatusInternalServerError
	if queryType == InvalidArgument {
		status, httpStatus = StatusClientError, http.StatusBadRequest
	}

	return &ApiError{
		Code:       SolanaQueryErrorCode,
		Status:     status,
		HttpStatus: httpStatus,
		Message:    fmt.Sprintf("Solana query Error: %d", int(queryType)),
		Type:       int(queryType),
	}
}

// As returns the first ApiError in err's chain.
func As(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsCode returns whether err's chain contains an ApiError with the code.
func IsCode(err error, code ApiErrorCode) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == code
}

// IsSolanaTxError returns whether err's chain contains a transaction error of
// the given type.
func IsSolanaTxError(err error, txType SolanaTxType) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == SolanaTxErrorCode && apiErr.Type == int(txType)
}

// IsSolanaQueryError returns whether err's chain contains a query error of
// the given type.
func IsSolanaQueryError(err error, queryType SolanaQueryType) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == SolanaQueryErrorCode && apiErr.Type == int(queryType)
}
