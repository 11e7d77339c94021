package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/apierror"
)

// AssertApiErrorWithCode verifies that the provided error chain contains an
// apierror.ApiError with the provided code.
func AssertApiErrorWithCode(t *testing.T, err error, code apierror.ApiErrorCode) *apierror.ApiError {
	require.Error(t, err)
	apiErr, ok := apierror.As(err)
	require.True(t, ok, "expected an api error, got: %v", err)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

// AssertSolanaQueryError verifies err is a Solana query error of the given type.
func AssertSolanaQueryError(t *testing.T, err error, queryType apierror.SolanaQueryType) {
	apiErr := AssertApiErrorWithCode(t, err, apierror.SolanaQueryErrorCode)
	assert.Equal(t, int(queryType), apiErr.Type)
}

// AssertSolanaTxError verifies err is a Solana transaction error of the given type.
func AssertSolanaTxError(t *testing.T, err error, txType apierror.SolanaTxType) {
	apiErr := AssertApiErrorWithCode(t, err, apierror.SolanaTxErrorCode)
	assert.Equal(t, int(txType), apiErr.Type)
}
