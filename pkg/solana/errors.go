package solana

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
)

// TransactionErrorKey is the string key returned in a transaction error.
//
// Source: https://github.com/solana-labs/solana/blob/fc2bf2d3b669d1c6655ae48b0a05f470938f3676/sdk/src/transaction/mod.rs#L37
type TransactionErrorKey string

const (
	TransactionErrorAccountInUse            TransactionErrorKey = "AccountInUse"
	TransactionErrorAccountNotFound         TransactionErrorKey = "AccountNotFound"
	TransactionErrorProgramAccountNotFound  TransactionErrorKey = "ProgramAccountNotFound"
	TransactionErrorInsufficientFundsForFee TransactionErrorKey = "InsufficientFundsForFee"
	TransactionErrorDuplicateSignature      TransactionErrorKey = "DuplicateSignature"
	TransactionErrorBlockhashNotFound       TransactionErrorKey = "BlockhashNotFound"
	TransactionErrorInstructionError        TransactionErrorKey = "InstructionError"
	TransactionErrorSignatureFailure        TransactionErrorKey = "SignatureFailure"
	TransactionErrorSanitizeFailure         TransactionErrorKey = "SanitizeFailure"
)

// InstructionErrorKey is the string key returned in an instruction error.
//
// Source: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
type InstructionErrorKey string

const (
	InstructionErrorInvalidArgument          InstructionErrorKey = "InvalidArgument"
	InstructionErrorInvalidInstructionData   InstructionErrorKey = "InvalidInstructionData"
	InstructionErrorInvalidAccountData       InstructionErrorKey = "InvalidAccountData"
	InstructionErrorInsufficientFunds        InstructionErrorKey = "InsufficientFunds"
	InstructionErrorMissingRequiredSignature InstructionErrorKey = "MissingRequiredSignature"
	InstructionErrorAccountAlreadyInUse      InstructionErrorKey = "AccountAlreadyInitialized"
	InstructionErrorUninitializedAccount     InstructionErrorKey = "UninitializedAccount"
	InstructionErrorNotEnoughAccountKeys     InstructionErrorKey = "NotEnoughAccountKeys"
	InstructionErrorCustom                   InstructionErrorKey = "Custom"
)

// CustomError is the numerical error returned by a non-system program.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x", int(c))
}

// InstructionError indicates an instruction returned an error in a transaction.
type InstructionError struct {
	Index int
	Err   error
}

func (i InstructionError) Error() string {
	return fmt.Sprintf("Error processing Instruction %d: %v", i.Index, i.Err)
}

func (i InstructionError) Unwrap() error {
	return i.Err
}

func (i InstructionError) ErrorKey() InstructionErrorKey {
	if i.Err == nil {
		return ""
	}
	if i.CustomError() != nil {
		return InstructionErrorCustom
	}
	return InstructionErrorKey(i.Err.Error())
}

func (i InstructionError) CustomError() *CustomError {
	if ce, ok := i.Err.(CustomError); ok {
		return &ce
	}
	return nil
}

// TransactionError contains the transaction error details.
type TransactionError struct {
	transactionError error
	instructionError *InstructionError
	raw              interface{}
}

func NewTransactionError(key TransactionErrorKey) *TransactionError {
	return &TransactionError{
		transactionError: errors.New(string(key)),
		raw:              string(key),
	}
}

// NewInstructionTransactionError builds a TransactionError wrapping a
// program's custom error code at the given instruction index.
func NewInstructionTransactionError(index int, code CustomError) *TransactionError {
	return &TransactionError{
		transactionError: errors.New(string(TransactionErrorInstructionError)),
		instructionError: &InstructionError{Index: index, Err: code},
		raw: map[string]interface{}{
			string(TransactionErrorInstructionError): []interface{}{index, map[string]interface{}{"Custom": int(code)}},
		},
	}
}

func (t TransactionError) Error() string {
	if t.instructionError != nil {
		return t.instructionError.Error()
	}
	if t.transactionError != nil {
		return t.transactionError.Error()
	}
	return ""
}

func (t TransactionError) Unwrap() error {
	if t.instructionError != nil {
		return *t.instructionError
	}
	return nil
}

func (t TransactionError) ErrorKey() TransactionErrorKey {
	if t.transactionError == nil {
		return ""
	}
	return TransactionErrorKey(t.transactionError.Error())
}

func (t TransactionError) InstructionError() *InstructionError {
	return t.instructionError
}

func (t TransactionError) JSONString() (string, error) {
	b, err := json.Marshal(t.raw)
	return string(b), err
}

// CustomErrorFrom extracts a program custom error code from anywhere in err's
// chain.
func CustomErrorFrom(err error) (CustomError, bool) {
	var ce CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return 0, false
}

// ParseRPCError parses the transaction error carried in a jsonrpc.RPCError, if
// any.
func ParseRPCError(err *jsonrpc.RPCError) (*TransactionError, error) {
	if err == nil {
		return nil, nil
	}

	data, ok := err.Data.(map[string]interface{})
	if !ok {
		return nil, errors.New("expected map type")
	}

	if txErr, ok := data["err"]; ok && txErr != nil {
		return ParseTransactionError(txErr)
	}
	return nil, nil
}

// ParseTransactionError parses the JSON "err" field returned by various RPC
// methods.
func ParseTransactionError(raw interface{}) (*TransactionError, error) {
	if raw == nil {
		return nil, nil
	}

	unhandled := &TransactionError{
		transactionError: errors.New("unhandled transaction error"),
		raw:              raw,
	}

	switch t := raw.(type) {
	case string:
		return &TransactionError{transactionError: errors.New(t), raw: raw}, nil
	case map[string]interface{}:
		key, value, err := singleEntry(t)
		if err != nil {
			return unhandled, err
		}

		if key != string(TransactionErrorInstructionError) {
			return &TransactionError{transactionError: errors.New(key), raw: raw}, nil
		}

		instructionErr, err := parseInstructionError(value)
		if err != nil {
			return unhandled, errors.Wrap(err, "failed to parse instruction error")
		}

		return &TransactionError{
			transactionError: errors.New(string(TransactionErrorInstructionError)),
			instructionError: &instructionErr,
			raw:              raw,
		}, nil
	default:
		return nil, errors.New("unhandled error type")
	}
}

func parseInstructionError(v interface{}) (e InstructionError, err error) {
	values, ok := v.([]interface{})
	if !ok {
		return e, errors.New("unexpected instruction error format")
	}
	if len(values) != 2 {
		return e, errors.Errorf("unexpected entries in InstructionError tuple: %d", len(values))
	}

	if e.Index, err = parseJSONNumber(values[0]); err != nil {
		return e, err
	}

	switch t := values[1].(type) {
	case string:
		e.Err = errors.New(t)
	case map[string]interface{}:
		key, value, err := singleEntry(t)
		if err != nil {
			e.Err = errors.New("unhandled InstructionError")
			return e, err
		}
		if key != string(InstructionErrorCustom) {
			e.Err = errors.New(key)
			break
		}

		code, err := parseJSONNumber(value)
		if err != nil {
			e.Err = errors.New("unhandled CustomError")
			break
		}
		e.Err = CustomError(code)
	default:
		e.Err = errors.New("unhandled InstructionError")
	}

	return e, nil
}

func singleEntry(m map[string]interface{}) (string, interface{}, error) {
	if len(m) != 1 {
		return "", nil, errors.Errorf("invalid result size: %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, nil
}

func parseJSONNumber(v interface{}) (int, error) {
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, errors.Errorf("non int64 value: %v", v)
		}
		return int(n), nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, errors.Errorf("non numeric value: %v", v)
		}
		return int(n), nil
	case float64:
		return int(t), nil
	case int:
		return t, nil
	}
	return 0, errors.Errorf("non numeric value: %v", v)
}
