package jsonrpc

import "encoding/json"

// Version is the only protocol version the server accepts.
const Version = "2.0"

// Request is one decoded request line.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// Response carries either Result or Error for the request with the same ID.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// NewResult answers id with v.
func NewResult(id json.RawMessage, v any) *Response {
	return &Response{JSONRPC: Version, Result: v, ID: id}
}

// NewErrorResponse answers id with e. A nil id is sent as null.
func NewErrorResponse(id json.RawMessage, e *Error) *Response {
	if id == nil {
		id = json.RawMessage("null")
	}
	return &Response{JSONRPC: Version, Error: e, ID: id}
}

// Error is a JSON-RPC error object. It also satisfies the error interface.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// CodeValidationFailed means the params parsed but broke the schema of
	// the analysis they were sent to.
	CodeValidationFailed = -32001
	// CodeAnalysisFailed means valid input produced no usable result, for
	// example a simulation that yielded non-finite scores.
	CodeAnalysisFailed = -32002
)

var messages = map[int]string{
	CodeParseError:       "Parse error",
	CodeInvalidRequest:   "Invalid request",
	CodeMethodNotFound:   "Method not found",
	CodeInvalidParams:    "Invalid params",
	CodeInternalError:    "Internal error",
	CodeValidationFailed: "Validation failed",
	CodeAnalysisFailed:   "Analysis failed",
}

// NewError builds an Error with the standard message for code.
func NewError(code int, data any) *Error {
	msg, ok := messages[code]
	if !ok {
		msg = "Server error"
	}
	return &Error{Code: code, Message: msg, Data: data}
}

// ValidationData is the Data of a CodeValidationFailed error.
type ValidationData struct {
	Kind   string   `json:"kind"`
	Errors []string `json:"errors"`
}

func ErrParseError(data any) *Error {
	return NewError(CodeParseError, data)
}

func ErrInvalidRequest(data any) *Error {
	return NewError(CodeInvalidRequest, data)
}

func ErrMethodNotFound(method string) *Error {
	return NewError(CodeMethodNotFound, method)
}

func ErrInvalidParams(data any) *Error {
	return NewError(CodeInvalidParams, data)
}

func ErrInternalError(data any) *Error {
	return NewError(CodeInternalError, data)
}

func ErrAnalysisFailed(data any) *Error {
	return NewError(CodeAnalysisFailed, data)
}

// ErrValidationFailed reports the schema violations of a kind document.
func ErrValidationFailed(kind string, errs []string) *Error {
	return NewError(CodeValidationFailed, ValidationData{Kind: kind, Errors: errs})
}
