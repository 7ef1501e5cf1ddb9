// Package errors provides structured error handling with user-friendly messages.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors for better user experience.
type ErrorType string

const (
	// Component construction errors
	InvalidItemType ErrorType = "invalid_item_type"
	OptionMissing   ErrorType = "option_missing"
	OptionConflict  ErrorType = "option_conflict"

	// Render lifecycle errors
	RenderFrozen ErrorType = "render_frozen"

	// Configuration errors
	ConfigNotFound ErrorType = "config_not_found"
	ConfigInvalid  ErrorType = "config_invalid"

	// Terminal errors
	ScreenInit ErrorType = "screen_init"

	// Validation errors
	ValidationFailed ErrorType = "validation_failed"

	// Internal errors
	InternalError ErrorType = "internal_error"
)

// MenukitError represents a structured error with user-friendly messaging.
type MenukitError struct {
	Type        ErrorType `json:"type"`
	Message     string    `json:"message"`
	Details     string    `json:"details,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Cause       error     `json:"-"`
}

func (e *MenukitError) Error() string {
	var parts []string

	parts = append(parts, e.Message)

	if e.Details != "" {
		parts = append(parts, fmt.Sprintf("Details: %s", e.Details))
	}

	if len(e.Suggestions) > 0 {
		parts = append(parts, fmt.Sprintf("Suggestions:\n  • %s", strings.Join(e.Suggestions, "\n  • ")))
	}

	return strings.Join(parts, "\n\n")
}

func (e *MenukitError) Unwrap() error {
	return e.Cause
}

// New creates a new MenukitError with the given type and message.
func New(errorType ErrorType, message string) *MenukitError {
	return &MenukitError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap creates a new MenukitError that wraps an existing error.
func Wrap(err error, errorType ErrorType, message string) *MenukitError {
	return &MenukitError{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}

// WithDetails adds detailed information to an error.
func (e *MenukitError) WithDetails(details string) *MenukitError {
	e.Details = details
	return e
}

// WithSuggestion adds a helpful suggestion to an error.
func (e *MenukitError) WithSuggestion(suggestion string) *MenukitError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions to an error.
func (e *MenukitError) WithSuggestions(suggestions []string) *MenukitError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently encountered issues

// InvalidItemTypeError creates an error for an unrecognized menu item type.
func InvalidItemTypeError(value any) *MenukitError {
	return New(InvalidItemType, "Invalid menu item type").
		WithDetails(fmt.Sprintf("Unrecognized type value: %v", value)).
		WithSuggestion("Use one of: ItemTypeItem, ItemTypeCheckbox, ItemTypeRadio, ItemTypeSeparator, ItemTypeHeader")
}

// OptionMissingError creates an error for a required construction option that was not supplied.
func OptionMissingError(component, option string) *MenukitError {
	return New(OptionMissing, fmt.Sprintf("Missing required option '%s'", option)).
		WithDetails(fmt.Sprintf("%s cannot be constructed without '%s'", component, option))
}

// OptionConflictError creates an error for an inconsistent option pairing.
func OptionConflictError(component, given, missing string) *MenukitError {
	return New(OptionConflict, fmt.Sprintf("Inconsistent options for %s", component)).
		WithDetails(fmt.Sprintf("'%s' was supplied without '%s'; the two must be set together", given, missing))
}

// RenderFrozenError creates an error for structural mutation after first render.
func RenderFrozenError(component string) *MenukitError {
	return New(RenderFrozen, "Cannot declare new children after the first render").
		WithDetails(fmt.Sprintf("%s has already completed its initial render", component)).
		WithSuggestion("Declare all children before the component is rendered")
}

// ConfigInvalidError creates an error for a malformed toolkit configuration.
func ConfigInvalidError(reason string) *MenukitError {
	return New(ConfigInvalid, "Invalid toolkit configuration").
		WithDetails(reason).
		WithSuggestion("Check the YAML config for unknown theme names or malformed durations")
}

// ValidationError creates an error for validation failures.
func ValidationError(field string, value string, reason string) *MenukitError {
	return New(ValidationFailed, fmt.Sprintf("Validation failed for '%s'", field)).
		WithDetails(fmt.Sprintf("Value '%s' is invalid: %s", value, reason))
}

// ScreenInitError creates an error for terminal screen initialization failures.
func ScreenInitError(err error) *MenukitError {
	return Wrap(err, ScreenInit, "Failed to initialize terminal screen").
		WithSuggestions([]string{
			"Ensure the program is running in a real terminal",
			"Check the TERM environment variable",
		})
}

// IsType checks if an error is of a specific MenukitError type.
func IsType(err error, errorType ErrorType) bool {
	if uiErr, ok := err.(*MenukitError); ok {
		return uiErr.Type == errorType
	}
	return false
}

// GetType returns the ErrorType of a MenukitError, or InternalError for other errors.
func GetType(err error) ErrorType {
	if uiErr, ok := err.(*MenukitError); ok {
		return uiErr.Type
	}
	return InternalError
}
