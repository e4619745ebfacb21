package models

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable machine-readable classification carried by every
// domain error so transport layers can map it without string matching.
type ErrorCode string

const (
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeEmailExists ErrorCode = "EMAIL_EXISTS"
	ErrCodeInvalidData ErrorCode = "INVALID_DATA"
)

// NotFoundError signals that an operation targeted an unknown user.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with id %q not found", e.ID)
}

func (e *NotFoundError) Code() ErrorCode { return ErrCodeNotFound }

// EmailAlreadyExistsError signals that a create or update would duplicate a
// normalized email address.
type EmailAlreadyExistsError struct {
	Email string
}

func (e *EmailAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email %q already exists", e.Email)
}

func (e *EmailAlreadyExistsError) Code() ErrorCode { return ErrCodeEmailExists }

// InvalidDataError signals a request-shape violation, e.g. pagination
// bounds. Message names the violated constraint.
type InvalidDataError struct {
	Message string
}

func (e *InvalidDataError) Error() string { return e.Message }

func (e *InvalidDataError) Code() ErrorCode { return ErrCodeInvalidData }

// CodeOf extracts the domain error code, or "" for non-domain errors.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
