package http

import (
	"errors"

	"github.com/milan604/apinet/pkg/apperr"
)

// Error kinds raised by the client. Every failure is returned as an
// *apperr.AppError built from one of these codes.
var (
	ErrorCodeInvalidURL      = apperr.NewErrorCode("invalid_url", "Invalid url", 200, 0)
	ErrorCodeUnableToProcess = apperr.NewErrorCode("unable_to_process", "Unable to process at the moment", 210, 0)
	ErrorCodeInvalidResponse = apperr.NewErrorCode("invalid_response", "Invalid response", 220, 0)
	ErrorCodeDecoding        = apperr.NewErrorCode("json_decoding", "Json decoding error", 230, 0)
	ErrorCodeNoResponse      = apperr.NewErrorCode("no_response", "No response from server", 240, 0)
	ErrorCodeEmptyBody       = apperr.NewErrorCode("empty_body", "Empty body in request", 250, 0)
	ErrorCodeAPI             = apperr.NewErrorCode("api_error", "Request rejected", 260, 0)
)

// Sentinels for errors.Is. They match any error of the same kind.
var (
	ErrInvalidURL      = ErrorCodeInvalidURL.Err()
	ErrUnableToProcess = ErrorCodeUnableToProcess.Err()
	ErrInvalidResponse = ErrorCodeInvalidResponse.Err()
	ErrDecoding        = ErrorCodeDecoding.Err()
	ErrNoResponse      = ErrorCodeNoResponse.Err()
	ErrEmptyBody       = ErrorCodeEmptyBody.Err()
	ErrAPI             = ErrorCodeAPI.Err()
)

func invalidURLError(cause error) error {
	return apperr.New(ErrorCodeInvalidURL).Wrap(cause)
}

func invalidResponseError(status int) error {
	return apperr.Newf(ErrorCodeInvalidResponse, "Invalid Response. (Status Code: %d)", status).WithStatus(status)
}

func decodingError(cause error) error {
	return apperr.New(ErrorCodeDecoding).Wrap(cause)
}

func noResponseError(cause error) error {
	return apperr.New(ErrorCodeNoResponse).Wrap(cause)
}

// APIError builds an error of the APIError kind whose message is reason.
func APIError(reason string) error {
	return apperr.New(ErrorCodeAPI).WithMessage(reason)
}

// StatusCode returns the status code carried by an InvalidResponse error.
func StatusCode(err error) (int, bool) {
	var ae *apperr.AppError
	if !errors.As(err, &ae) || ae.Code != ErrorCodeInvalidResponse.Code() {
		return 0, false
	}
	return ae.HTTPStatus, true
}
