package wix

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
)

// UnknownErrorMessage is reported when no message can be extracted from a failure.
const UnknownErrorMessage = "An unknown error occurred"

// Facade error kinds.
var (
	ErrUninitialized   = errors.New("wix SDK not initialized: provide a valid wix client")
	ErrOperationFailed = errors.New("wix backend operation failed")
	ErrBackendRequired = errors.New("wix backend is required")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired            = errors.New("config is required")
	ErrInvalidConfig             = errors.New("invalid config")
	ErrClientIDRequired          = errors.New("client ID or access token is required")
	ErrUnknownFramework          = errors.New("unknown framework")
	ErrUnknownSolution           = errors.New("unknown solution")
	ErrInvalidCurrency           = errors.New("invalid currency code")
	ErrInvalidDate               = errors.New("invalid date")
	ErrTemplateNotFound          = errors.New("template not found")
	ErrAmbiguousTemplate         = errors.New("template name matches more than one framework")
	ErrDestinationNotEmpty       = errors.New("destination directory is not empty")
	ErrDestinationInsideTemplate = errors.New("destination directory is inside the template")
	ErrNoTemplateSpecified       = errors.New("specify --all or --template <name>")
	ErrEmptyResponse             = errors.New("empty response body")
	ErrLoginRequiresAction       = errors.New("login requires additional action")
	ErrMissingSessionToken       = errors.New("login succeeded without a session token")
)

// OperationError is returned when a backend call made through the facade fails.
type OperationError struct {
	// Op is the "<Domain>.<operation>" context, e.g. "Stores.createCart".
	Op string
	// Message is the message extracted from the backend failure.
	Message string
	// Err is the original backend failure.
	Err error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	return e.Op + ": " + e.Message
}

// Unwrap returns the original backend failure.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrOperationFailed.
func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}

// APIError represents an error response from the Wix REST API.
type APIError struct {
	StatusCode int                    `json:"-"                 yaml:"status_code"`
	Text       string                 `json:"message"           yaml:"message"`
	Code       string                 `json:"error,omitempty"   yaml:"error,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e == nil:
		return "wix API error"
	case e.Text != "":
		return fmt.Sprintf("%s (status: %d)", e.Text, e.StatusCode)
	case e.Code != "":
		return fmt.Sprintf("%s (status: %d)", e.Code, e.StatusCode)
	default:
		return fmt.Sprintf("wix API error (status: %d)", e.StatusCode)
	}
}

// Message returns the bare API message without the status suffix.
func (e *APIError) Message() string {
	if e == nil {
		return ""
	}

	return e.Text
}

// ErrorField returns the "error" code some endpoints send instead of a
// message, e.g. "invalid_grant" from the OAuth endpoint.
func (e *APIError) ErrorField() string {
	if e == nil {
		return ""
	}

	return e.Code
}

// ApplicationCode returns details.applicationError.code when present.
func (e *APIError) ApplicationCode() string {
	if e == nil {
		return ""
	}

	app, ok := e.Details["applicationError"].(map[string]interface{})
	if !ok {
		return ""
	}

	code, _ := app["code"].(string)

	return code
}

// ParseAPIError parses an error response body from JSON.
func ParseAPIError(statusCode int, data []byte) (*APIError, error) {
	apiErr := APIError{StatusCode: statusCode}

	err := json.Unmarshal(data, &apiErr)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal API error: %w", err)
	}

	return &apiErr, nil
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.StatusCode == status
	}

	return false
}

type messager interface {
	Message() string
}

type errorFielder interface {
	ErrorField() string
}

// ErrorMessage extracts a human readable message from an arbitrary failure
// value. Precedence: a string is used verbatim; then a message (Message()
// method or "message" map key, searched through wrapped errors); then an
// error field (ErrorField() method or "error" map key, also searched through
// wrapped errors); then the text of a non-empty error; then
// UnknownErrorMessage. Nil pointers yield UnknownErrorMessage.
func ErrorMessage(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}

	if isNilPointer(v) {
		return UnknownErrorMessage
	}

	if msg := messageOf(v); msg != "" {
		return msg
	}

	if msg := errorFieldOf(v); msg != "" {
		return msg
	}

	if err, ok := v.(error); ok && err.Error() != "" {
		return err.Error()
	}

	return UnknownErrorMessage
}

func isNilPointer(v interface{}) bool {
	if v == nil {
		return false
	}

	value := reflect.ValueOf(v)

	return value.Kind() == reflect.Ptr && value.IsNil()
}

func messageOf(v interface{}) string {
	switch val := v.(type) {
	case messager:
		return val.Message()
	case map[string]interface{}:
		return stringField(val["message"])
	case map[string]string:
		return val["message"]
	case error:
		var inner messager
		if errors.As(val, &inner) {
			return inner.Message()
		}
	}

	return ""
}

func errorFieldOf(v interface{}) string {
	switch val := v.(type) {
	case errorFielder:
		return val.ErrorField()
	case map[string]interface{}:
		return stringField(val["error"])
	case map[string]string:
		return val["error"]
	case error:
		var inner errorFielder
		if errors.As(val, &inner) {
			return inner.ErrorField()
		}
	}

	return ""
}

func stringField(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
