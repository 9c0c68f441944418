package apperr

// Generic codes shared by every package. Client kinds live next to the
// code that raises them and are built with NewErrorCode.
var (
	ErrorCodeInvalidInput   = NewErrorCode("invalid_input", "Invalid input", 20, 0)
	ErrorCodeValidationFail = NewErrorCode("validation_failed", "Validation failed", 30, 0)
	ErrorCodeInternal       = NewErrorCode("internal_error", "Internal error", 100, 0)
)

// ErrorCode describes a canonical error code.
// It carries a numeric severity/priority (Value) and an optional HTTP status.
type ErrorCode struct {
	code       string
	message    string
	value      int
	httpStatus int
}

func NewErrorCode(code, message string, value, httpStatus int) *ErrorCode {
	return &ErrorCode{code: code, message: message, value: value, httpStatus: httpStatus}
}

func (ec *ErrorCode) Code() string    { return ec.code }
func (ec *ErrorCode) Message() string { return ec.message }
func (ec *ErrorCode) Value() int      { return ec.value }
func (ec *ErrorCode) HTTPStatus() int { return ec.httpStatus }

// Err returns a fresh AppError for the code, handy for sentinels.
func (ec *ErrorCode) Err() *AppError { return New(ec) }
