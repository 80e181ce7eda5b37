package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyError(t *testing.T) {
	var cases = []struct {
		code     string
		expected ErrorReason
	}{
		{"42710", ReasonAlreadyExists},
		{"42704", ReasonNotFound},
		{"42501", ReasonPermissionDenied},
		{"42601", ReasonInvalidArgument},
		{"42602", ReasonInvalidArgument},
		{"42939", ReasonInvalidArgument},
		{"22023", ReasonInvalidArgument},
		{"28P01", ReasonInvalidArgument},
		{"53400", ReasonResourceExhausted},
		{"53100", ReasonResourceExhausted},
		{"53300", ReasonResourceExhausted},
		{"XX000", ReasonUnknown},
	}

	for _, c := range cases {
		err := &pgconn.PgError{Code: c.code}
		if reason := classifyError(err); reason != c.expected {
			t.Errorf("code %s: expected %v, got %v", c.code, c.expected, reason)
		}
	}
}

func TestClassifyError_NotPgError(t *testing.T) {
	if reason := classifyError(errors.New("boom")); reason != ReasonUnknown {
		t.Errorf("expected %v, got %v", ReasonUnknown, reason)
	}
}

func TestProvisionError(t *testing.T) {
	cause := &pgconn.PgError{Code: "42710", Message: "role \"replicator\" already exists"}
	err := NewProvisionError("create role", "replicator", cause)

	if !IsAlreadyExistsError(err) {
		t.Error("expected IsAlreadyExistsError")
	}
	if IsPermissionDeniedError(err) {
		t.Error("unexpected IsPermissionDeniedError")
	}
	if !IsDuplicateObjectError(err) {
		t.Error("expected IsDuplicateObjectError")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatal("expected the cause to unwrap")
	}
	if pgErr.Code != "42710" {
		t.Errorf("expected code 42710, got %s", pgErr.Code)
	}
}

func TestProvisionError_Wrapped(t *testing.T) {
	cause := &pgconn.PgError{Code: "53400"}
	err := fmt.Errorf("apply: %w", NewProvisionError("create replication slot", "replication_slot", cause))

	if !IsResourceExhaustedError(err) {
		t.Error("expected IsResourceExhaustedError")
	}
}

func TestErrorReason_String(t *testing.T) {
	var cases = []struct {
		reason   ErrorReason
		expected string
	}{
		{ReasonAlreadyExists, "AlreadyExists"},
		{ReasonPermissionDenied, "PermissionDenied"},
		{ReasonInvalidArgument, "InvalidArgument"},
		{ReasonResourceExhausted, "ResourceExhausted"},
		{ReasonNotFound, "NotFound"},
		{ReasonUnknown, "Unknown"},
	}
	for _, c := range cases {
		if s := c.reason.String(); s != c.expected {
			t.Errorf("expected %s, got %s", c.expected, s)
		}
	}
}
