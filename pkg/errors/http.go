package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CodePair maps an error code across frameworks.
type CodePair struct {
	HTTPStatus int
	GRPCCode   int
}

var codeMapping = map[string]CodePair{
	ErrInternal:           {500, 13}, // Internal Server Error, INTERNAL
	ErrNotFound:           {404, 5},  // Not Found, NOT_FOUND
	ErrInvalidArgument:    {400, 3},  // Bad Request, INVALID_ARGUMENT
	ErrUnauthenticated:    {401, 16}, // Unauthorized, UNAUTHENTICATED
	ErrUnauthorized:       {403, 7},  // Forbidden, PERMISSION_DENIED
	ErrConflict:           {409, 6},  // Conflict, ALREADY_EXISTS
	ErrInvalidState:       {409, 9},  // Conflict, FAILED_PRECONDITION
	ErrPreconditionFailed: {412, 9},  // Precondition Failed, FAILED_PRECONDITION
	ErrStorage:            {500, 14}, // Internal Server Error, UNAVAILABLE
	ErrTimeout:            {504, 4},  // Gateway Timeout, DEADLINE_EXCEEDED
	ErrNotImplemented:     {501, 12}, // Not Implemented, UNIMPLEMENTED
}

// GetCodeMapping returns the HTTP and gRPC mapping for an error code.
func GetCodeMapping(code string) (int, int) {
	if pair, ok := codeMapping[code]; ok {
		return pair.HTTPStatus, pair.GRPCCode
	}
	return 500, 13
}

// ToHTTPStatus converts an error code to an HTTP status code.
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToHTTPError converts an error into an Echo HTTP error.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		httpStatus := ToHTTPStatus(appErr.Code())
		return echo.NewHTTPError(httpStatus, appErr.Error())
	}

	if echoErr, ok := err.(*echo.HTTPError); ok {
		return echoErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
