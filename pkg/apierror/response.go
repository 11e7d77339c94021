package apierror

import (
	"github.com/pkg/errors"
)

var ErrNotAnErrorResponse = errors.New("api response is not an error")

type ResponseError struct {
	Code    ApiErrorCode `json:"code"`
	Message string       `json:"message"`
}

// ApiResponse is the JSON envelope used by the CLI's machine readable output.
type ApiResponse[T any] struct {
	Result *T                `json:"result,omitempty"`
	Error  *ResponseError    `json:"error,omitempty"`
	Status ApiResponseStatus `json:"status"`
}

func (r *ApiResponse[T]) IsError() bool {
	return r.Error != nil
}

func Success[T any](result T) *ApiResponse[T] {
	return &ApiResponse[T]{
		Result: &result,
		Status: StatusSuccess,
	}
}

// ToApiResponse converts err into a response envelope. Errors outside the
// taxonomy are reported as general server errors.
func ToApiResponse[T any](err error) *ApiResponse[T] {
	apiErr, ok := As(err)
	if !ok {
		apiErr = ServerError(err.Error())
	}

	return &ApiResponse[T]{
		Error: &ResponseError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
		Status: apiErr.Status,
	}
}

// FromApiResponse rebuilds the ApiError carried by an error response.
func FromApiResponse[T any](response *ApiResponse[T], httpStatus int) (*ApiError, error) {
	if !response.IsError() {
		return nil, ErrNotAnErrorResponse
	}

	return &ApiError{
		Code:       response.Error.Code,
		Status:     response.Status,
		HttpStatus: httpStatus,
		Message:    response.Error.Message,
	}, nil
}
