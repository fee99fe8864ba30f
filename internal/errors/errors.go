package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPlanNotFound is returned when a plan is not found.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrThemeNotFound is returned when a theme is not found.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrRoundNotFound is returned when a round is not found.
	ErrRoundNotFound = errors.New("round not found")
	// ErrReportNotFound is returned when a report is not found.
	ErrReportNotFound = errors.New("report not found")
	// ErrForbidden is returned when the requester lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrSuperAdminProtected is returned when a super admin is targeted by a role change.
	ErrSuperAdminProtected = errors.New("super admin role cannot be changed")
	// ErrRoundCompleted is returned when submitting a report for an already completed round.
	ErrRoundCompleted = errors.New("round already completed")
	// ErrReportObsolete is returned when amending a report that is already obsolete.
	ErrReportObsolete = errors.New("report is already obsolete")
	// ErrCorruptedRoundData is returned when stored round target ids fail to parse.
	ErrCorruptedRoundData = errors.New("corrupted round equipment data")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrPlanNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PLAN_NOT_FOUND")
	case ErrThemeNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "THEME_NOT_FOUND")
	case ErrRoundNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ROUND_NOT_FOUND")
	case ErrReportNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "REPORT_NOT_FOUND")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrSuperAdminProtected:
		return NewHTTPError(http.StatusForbidden, err.Error(), "SUPER_ADMIN_PROTECTED")
	case ErrRoundCompleted:
		return NewHTTPError(http.StatusConflict, err.Error(), "ROUND_COMPLETED")
	case ErrReportObsolete:
		return NewHTTPError(http.StatusConflict, err.Error(), "REPORT_OBSOLETE")
	case ErrCorruptedRoundData:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "CORRUPTED_ROUND_DATA")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
