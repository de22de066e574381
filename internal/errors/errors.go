// Package errors defines the coded error taxonomy shared by the thanks bot
// components. Every error carries a code that callers can inspect with Code
// without knowing the concrete type.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown = "UNKNOWN"
	CodeConfig  = "CONFIG"
	CodeSchema  = "SCHEMA"
	CodeParse   = "PARSE"
	CodeStore   = "STORE"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if it doesn't contain one.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// ConfigError is returned when required startup configuration is missing or invalid.
type ConfigError struct {
	base Error
}

func (e *ConfigError) Error() string {
	return e.base.Error()
}

func (e *ConfigError) Code() string {
	return e.base.Code()
}

func (e *ConfigError) Unwrap() error {
	return e.base.Unwrap()
}

func NewConfigError(message string, cause error) error {
	return &ConfigError{
		base: Error{
			code:    CodeConfig,
			message: message,
			err:     cause,
		},
	}
}

// SchemaError is returned when the persistent schema cannot be created.
type SchemaError struct {
	base Error
}

func (e *SchemaError) Error() string {
	return e.base.Error()
}

func (e *SchemaError) Code() string {
	return e.base.Code()
}

func (e *SchemaError) Unwrap() error {
	return e.base.Unwrap()
}

func NewSchemaError(message string, cause error) error {
	return &SchemaError{
		base: Error{
			code:    CodeSchema,
			message: message,
			err:     cause,
		},
	}
}

// ParseError is returned when an inbound message does not have the
// "@handle text" shape.
type ParseError struct {
	base Error
}

func (e *ParseError) Error() string {
	return e.base.Error()
}

func (e *ParseError) Code() string {
	return e.base.Code()
}

func (e *ParseError) Unwrap() error {
	return e.base.Unwrap()
}

func NewParseError(message string) error {
	return &ParseError{
		base: Error{
			code:    CodeParse,
			message: message,
		},
	}
}

// StoreError covers every failure of a single store operation: connection
// loss, constraint violations and rejected writes.
type StoreError struct {
	base Error
}

func (e *StoreError) Error() string {
	return e.base.Error()
}

func (e *StoreError) Code() string {
	return e.base.Code()
}

func (e *StoreError) Unwrap() error {
	return e.base.Unwrap()
}

func NewStoreError(message string, cause error) error {
	return &StoreError{
		base: Error{
			code:    CodeStore,
			message: message,
			err:     cause,
		},
	}
}
