package domain

import (
	"errors"
	"fmt"
)

// Business-rule failures are returned as typed errors and recovered at the
// handler boundary; they are never panicked and never cross the store
// boundary as exceptions.

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

type ConflictError struct {
	Resource string
	Msg      string
}

func (e ConflictError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	}
	return fmt.Sprintf("%s conflict", e.Resource)
}

// PaymentDeclinedError carries the processor's decline reason. The charge was
// attempted and refused; nothing was persisted.
type PaymentDeclinedError struct {
	Reason string
}

func (e PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Reason)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsPaymentDeclined(err error) bool {
	var target PaymentDeclinedError
	return errors.As(err, &target)
}
