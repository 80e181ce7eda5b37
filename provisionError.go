package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorReason int

const (
	ReasonUnknown ErrorReason = iota
	ReasonAlreadyExists
	ReasonPermissionDenied
	ReasonInvalidArgument
	ReasonResourceExhausted
	ReasonNotFound
)

func (r ErrorReason) String() string {
	switch r {
	case ReasonAlreadyExists:
		return "AlreadyExists"
	case ReasonPermissionDenied:
		return "PermissionDenied"
	case ReasonInvalidArgument:
		return "InvalidArgument"
	case ReasonResourceExhausted:
		return "ResourceExhausted"
	case ReasonNotFound:
		return "NotFound"
	}
	return "Unknown"
}

var _ error = new(ProvisionError)

type ProvisionError struct {
	Reason ErrorReason
	Op     string
	Object string

	cause error
}

// Error implements error.
func (e *ProvisionError) Error() string {
	return fmt.Sprintf("%s %s '%s': %v", e.Reason, e.Op, e.Object, e.cause)
}

func (e *ProvisionError) Unwrap() error {
	return e.cause
}

func NewProvisionError(op string, object string, cause error) *ProvisionError {
	return &ProvisionError{
		Reason: classifyError(cause),
		Op:     op,
		Object: object,
		cause:  cause,
	}
}

func newInvalidArgumentError(op string, object string, cause error) *ProvisionError {
	return &ProvisionError{
		Reason: ReasonInvalidArgument,
		Op:     op,
		Object: object,
		cause:  cause,
	}
}

func classifyError(err error) ErrorReason {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ReasonUnknown
	}

	switch pgErr.Code {
	case __PG_ERRCODE_DUPLICATE_OBJECT:
		return ReasonAlreadyExists
	case __PG_ERRCODE_UNDEFINED_OBJECT:
		return ReasonNotFound
	case __PG_ERRCODE_INSUFFICIENT_PRIVILEGE:
		return ReasonPermissionDenied
	case __PG_ERRCODE_SYNTAX_ERROR,
		__PG_ERRCODE_INVALID_NAME,
		__PG_ERRCODE_RESERVED_NAME,
		__PG_ERRCODE_INVALID_PARAMETER_VALUE,
		__PG_ERRCODE_INVALID_PASSWORD:
		return ReasonInvalidArgument
	case __PG_ERRCODE_CONFIGURATION_LIMIT_EXCEED:
		return ReasonResourceExhausted
	}
	if strings.HasPrefix(pgErr.Code, __PG_ERRCLASS_INSUFFICIENT_RESOURCES) {
		return ReasonResourceExhausted
	}
	return ReasonUnknown
}

func reasonOf(err error) ErrorReason {
	var verr *ProvisionError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return classifyError(err)
}

func IsAlreadyExistsError(err error) bool {
	return reasonOf(err) == ReasonAlreadyExists
}

func IsPermissionDeniedError(err error) bool {
	return reasonOf(err) == ReasonPermissionDenied
}

func IsInvalidArgumentError(err error) bool {
	return reasonOf(err) == ReasonInvalidArgument
}

func IsResourceExhaustedError(err error) bool {
	return reasonOf(err) == ReasonResourceExhausted
}

func IsNotFoundError(err error) bool {
	return reasonOf(err) == ReasonNotFound
}

func IsDuplicateObjectError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == __PG_ERRCODE_DUPLICATE_OBJECT
	}
	return false
}
