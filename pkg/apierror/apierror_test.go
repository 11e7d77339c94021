package apierror

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	for _, tc := range []struct {
		err        *ApiError
		code       ApiErrorCode
		status     ApiResponseStatus
		httpStatus int
		message    string
	}{
		{ServerError("boom"), GeneralServerError, StatusServerError, http.StatusInternalServerError, "boom"},
		{ClientError("bad"), GeneralClientError, StatusClientError, http.StatusBadRequest, "bad"},
		{MissingParameter("raffleId"), MissingParameterError, StatusClientError, http.StatusBadRequest, "Missing parameter: raffleId"},
		{SolanaTxError(FailedToConfirm), SolanaTxErrorCode, StatusServerError, http.StatusInternalServerError, "Solana transaction Error: 0"},
		{SolanaTxError(FailedToGenerateIx), SolanaTxErrorCode, StatusServerError, http.StatusInternalServerError, "Solana transaction Error: 1"},
		{SolanaQueryError(InvalidArgument), SolanaQueryErrorCode, StatusClientError, http.StatusBadRequest, "Solana query Error: 0"},
		{SolanaQueryError(UnableToFindCurrentRaffle), SolanaQueryErrorCode, StatusServerError, http.StatusInternalServerError, "Solana query Error: 1"},
		{SolanaQueryError(NoWalletConnected), SolanaQueryErrorCode, StatusServerError, http.StatusInternalServerError, "Solana query Error: 2"},
	} {
		assert.Equal(t, tc.code, tc.err.Code, tc.message)
		assert.Equal(t, tc.status, tc.err.Status, tc.message)
		assert.Equal(t, tc.httpStatus, tc.err.HttpStatus, tc.message)
		assert.Equal(t, tc.message, tc.err.Error())
	}
}

func TestCodeValues(t *testing.T) {
	assert.EqualValues(t, 0, GeneralServerError)
	assert.EqualValues(t, 1, GeneralClientError)
	assert.EqualValues(t, 2, MissingParameterError)
	assert.EqualValues(t, 3, SolanaTxErrorCode)
	assert.EqualValues(t, 4, SolanaQueryErrorCode)

	assert.EqualValues(t, 1, StatusSuccess)
	assert.EqualValues(t, 2, StatusClientError)
	assert.EqualValues(t, 3, StatusServerError)

	assert.Equal(t, "SOLANA_QUERY_ERROR", SolanaQueryErrorCode.String())
	assert.Equal(t, "FAILED_TO_GENERATE_IX", FailedToGenerateIx.String())
	assert.Equal(t, "NO_WALLET_CONNECTED", NoWalletConnected.String())
	assert.Equal(t, "UNABLE_TO_FIND_RAFFLE", UnableToFindRaffle.String())
}

func TestWrapping(t *testing.T) {
	cause := errors.New("account not found")
	err := errors.Wrap(SolanaQueryError(UnableToFindCurrentRaffle).WithCause(cause), "failed to get current raffle id")

	apiErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, SolanaQueryErrorCode, apiErr.Code)
	assert.Equal(t, cause, apiErr.Cause())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Solana query Error: 1: account not found", apiErr.Error())

	assert.True(t, IsCode(err, SolanaQueryErrorCode))
	assert.False(t, IsCode(err, SolanaTxErrorCode))
	assert.True(t, IsSolanaQueryError(err, UnableToFindCurrentRaffle))
	assert.False(t, IsSolanaQueryError(err, NoWalletConnected))
	assert.False(t, IsSolanaTxError(err, FailedToConfirm))

	assert.True(t, errors.Is(err, SolanaQueryError(UnableToFindCurrentRaffle)))
	assert.False(t, errors.Is(err, SolanaQueryError(InvalidArgument)))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsCode(nil, GeneralServerError))
}

func TestIsBenign(t *testing.T) {
	assert.True(t, IsBenign(errors.New("User rejected the request.")))
	assert.True(t, IsBenign(errors.Wrap(errors.New("MetaMask: User denied transaction signature"), "sign")))
	assert.False(t, IsBenign(errors.New("blockhash not found")))
	assert.False(t, IsBenign(nil))
}

func TestNotify(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	logger := logrus.New()
	logger.Out = buf
	log := logger.WithField("type", "test")

	assert.False(t, Notify(log, errors.New("user rejected the request")))
	assert.False(t, Notify(log, nil))
	assert.Empty(t, buf.String())

	assert.True(t, Notify(log, SolanaTxError(FailedToConfirm)))
	assert.Contains(t, buf.String(), "Solana transaction Error: 0")
	assert.Contains(t, buf.String(), "SOLANA_TX_ERROR")
}

func TestApiResponse(t *testing.T) {
	success := Success(42)
	assert.False(t, success.IsError())
	assert.Equal(t, StatusSuccess, success.Status)

	response := ToApiResponse[int](errors.Wrap(SolanaQueryError(NoWalletConnected), "fetch nfts"))
	require.True(t, response.IsError())
	assert.Equal(t, StatusServerError, response.Status)

	b, err := json.Marshal(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":4,"message":"Solana query Error: 2"},"status":3}`, string(b))

	var decoded ApiResponse[int]
	require.NoError(t, json.Unmarshal(b, &decoded))
	apiErr, err := FromApiResponse(&decoded, http.StatusInternalServerError)
	require.NoError(t, err)
	assert.Equal(t, SolanaQueryErrorCode, apiErr.Code)
	assert.Equal(t, "Solana query Error: 2", apiErr.Message)

	_, err = FromApiResponse(success, http.StatusOK)
	assert.Equal(t, ErrNotAnErrorResponse, err)

	generic := ToApiResponse[int](errors.New("unexpected"))
	assert.Equal(t, GeneralServerError, generic.Error.Code)
	assert.Equal(t, "unexpected", generic.Error.Message)
}
