package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name:     "layout error with path",
			appError: NewLayoutError("root.tabs[1].sideMenu", ErrMissingCenter),
			expected: "layout: at root.tabs[1].sideMenu: sideMenu requires a center entry",
		},
		{
			name:     "validation error",
			appError: NewValidationError(`node "ContainerStack+1"`, ErrArity),
			expected: `validation: node "ContainerStack+1": wrong number of children`,
		},
		{
			name:     "input error with wrapped error",
			appError: NewInputError("file 'layout.json' not found", ErrFileNotFound),
			expected: "input: file 'layout.json' not found: file not found",
		},
		{
			name:     "no wrapped error",
			appError: NewOutputError("failed to write to stdout", nil),
			expected: "output: failed to write to stdout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := NewConfigError(`unknown id provider "sequence"`, ErrUnknownProvider)
	assert.Equal(t, ErrUnknownProvider, appErr.Unwrap())
	assert.Nil(t, NewOutputError("nothing to format", nil).Unwrap())
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{
			name:     "same type",
			err:      NewLayoutError("root", ErrNoStructuralKey),
			target:   &AppError{Type: ErrorTypeLayout},
			expected: true,
		},
		{
			name:     "different type",
			err:      NewLayoutError("root", ErrNoStructuralKey),
			target:   &AppError{Type: ErrorTypeValidation},
			expected: false,
		},
		{
			name:     "wrapped sentinel",
			err:      NewValidationError(`node "Tabs+1"`, ErrUnexpectedData),
			target:   ErrUnexpectedData,
			expected: true,
		},
		{
			name:     "other sentinel",
			err:      NewValidationError(`node "Tabs+1"`, ErrUnexpectedData),
			target:   ErrDuplicateID,
			expected: false,
		},
		{
			name:     "wrapped again with fmt",
			err:      fmt.Errorf("normalize: %w", NewLayoutError("root.tabs", ErrTabsNotSequence)),
			target:   &AppError{Type: ErrorTypeLayout},
			expected: true,
		},
		{
			name:     "not an AppError",
			err:      NewInputError("no input provided", ErrNoInput),
			target:   errors.New("no input provided"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(tt.err, tt.target))
		})
	}
}

func TestLayoutSentinels_KeepTheirMessage(t *testing.T) {
	sentinels := []error{
		ErrNoStructuralKey,
		ErrMultipleStructuralKeys,
		ErrUnknownKey,
		ErrInvalidShorthand,
		ErrInvalidContainer,
		ErrInvalidSideMenu,
		ErrMissingCenter,
		ErrTabsNotSequence,
	}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			err := NewLayoutError("root.center", sentinel)
			assert.ErrorIs(t, err, sentinel)
			assert.Equal(t, "Layout error at root.center: "+sentinel.Error(), UserFriendlyError(err))
		})
	}
}

func TestValidationSentinels_KeepTheirMessage(t *testing.T) {
	sentinels := []error{
		ErrDuplicateID,
		ErrIDPrefix,
		ErrUnexpectedData,
		ErrArity,
		ErrChildOrder,
		ErrUnknownType,
	}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			err := NewValidationError(`node "Container+2"`, sentinel)
			assert.ErrorIs(t, err, sentinel)
			assert.ErrorIs(t, err, &AppError{Type: ErrorTypeValidation})
			assert.Equal(t, `Validation error: node "Container+2": `+sentinel.Error(), UserFriendlyError(err))
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("JSON syntax error at offset 3", nil),
			expected: "Parsing error: JSON syntax error at offset 3",
		},
		{
			name:     "layout error",
			err:      NewLayoutError("root.sideMenu", ErrMissingCenter),
			expected: "Layout error at root.sideMenu: sideMenu requires a center entry",
		},
		{
			name:     "validation error",
			err:      NewValidationError("node Tabs+1", ErrDuplicateID),
			expected: "Validation error: node Tabs+1: duplicate node id",
		},
		{
			name:     "config error",
			err:      NewConfigError("unknown id provider \"nope\"", nil),
			expected: "Config error: unknown id provider \"nope\"",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide a layout description.",
		},
		{
			name:     "standard error - invalid JSON",
			err:      ErrInvalidJSON,
			expected: "Error: The input contains invalid JSON. Please check your JSON syntax.",
		},
		{
			name:     "standard error - invalid YAML",
			err:      fmt.Errorf("decode: %w", ErrInvalidYAML),
			expected: "Error: The input contains invalid YAML. Please check your YAML syntax.",
		},
		{
			name:     "standard error - no input",
			err:      ErrNoInput,
			expected: "Error: No input provided. Please specify a file with -i or pipe a layout to stdin.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserFriendlyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLayoutError_WrapsSentinel(t *testing.T) {
	err := NewLayoutError("root.tabs", ErrTabsNotSequence)

	assert.True(t, errors.Is(err, ErrTabsNotSequence))
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeLayout}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeInput}))
	assert.Equal(t, "layout: at root.tabs: tabs value must be a list", err.Error())
}
