package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes exposed to API clients.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidQuantity  = "INVALID_QUANTITY"
	CodeNotFound         = "NOT_FOUND"
	CodeGenerationFailed = "GENERATION_FAILED"
	CodeDatabase         = "DB_ERROR"
	CodeInternal         = "INTERNAL"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is reports a match when type and code are equal, so a freshly built
// error matches the predefined sentinel of the same kind.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

func newAt(skip int, errorType ErrorType, code, message string, internal error) *AppError {
	_, file, line, _ := runtime.Caller(skip)
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: internal,
		Source:   fmt.Sprintf("%s:%d", file, line),
		Context:  make(map[string]interface{}),
	}
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return newAt(2, errorType, code, message, nil)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	if appErr, ok := As(err); ok {
		h.handleAppError(ctx, appErr)
	} else {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation:
		h.logger.WarnContext(ctx, "Validation error", err.LogFields()...)
	case ErrorTypeNotFound:
		h.logger.WarnContext(ctx, "Not found", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeExternal, ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// LogAndReturn logs an error and returns it
func (h *Handler) LogAndReturn(ctx context.Context, err error) error {
	h.Handle(ctx, err)
	return err
}

// Predefined errors, for use with errors.Is
var (
	ErrInvalidInput     = New(ErrorTypeValidation, CodeInvalidInput, "Invalid input provided")
	ErrInvalidQuantity  = New(ErrorTypeValidation, CodeInvalidQuantity, "Quantity must be positive")
	ErrNotFound         = New(ErrorTypeNotFound, CodeNotFound, "Resource not found")
	ErrGenerationFailed = New(ErrorTypeExternal, CodeGenerationFailed, "Recipe generation failed")
	ErrInternalServer   = New(ErrorTypeInternal, CodeInternal, "Internal server error")
)

// Convenience functions for common errors
func NewValidationError(format string, args ...any) *AppError {
	return newAt(2, ErrorTypeValidation, CodeInvalidInput, fmt.Sprintf(format, args...), nil)
}

func NewInvalidQuantityError(quantity any) *AppError {
	return newAt(2, ErrorTypeValidation, CodeInvalidQuantity,
		fmt.Sprintf("quantity must be greater than zero, got %v", quantity), nil).
		WithContext("quantity", quantity)
}

func NewNotFoundError(entity string, id any) *AppError {
	return newAt(2, ErrorTypeNotFound, CodeNotFound, fmt.Sprintf("%s %v not found", entity, id), nil).
		WithContext("entity", entity).
		WithContext("id", id)
}

func NewGenerationError(err error, reason string) *AppError {
	return newAt(2, ErrorTypeExternal, CodeGenerationFailed, "Failed to generate recipe: "+reason, err)
}

func NewDatabaseError(err error) *AppError {
	return newAt(2, ErrorTypeDatabase, CodeDatabase, "Database operation failed", err)
}

func NewInternalError(err error) *AppError {
	return newAt(2, ErrorTypeInternal, CodeInternal, "Internal server error", err)
}
