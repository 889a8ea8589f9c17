package core

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

var (
	ErrMalformedVersion               = errors.New("malformed version")
	ErrCorruptInstallation            = errors.New("corrupt installation")
	ErrInstallationFailed             = errors.New("installation failed")
	ErrInstallationVerificationFailed = errors.New("installation verification failed")
)

// Error is a domain failure. Kind is one of the sentinels above and
// matches with errors.Is; Cause is kept unmodified for errors.Unwrap.
type Error struct {
	Kind  error
	Code  errbuilder.ErrCode
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func malformedVersion(text string) error {
	return &Error{
		Kind: ErrMalformedVersion,
		Code: errbuilder.CodeInvalidArgument,
		Msg:  fmt.Sprintf("%q", text),
	}
}

func corruptInstallation(location string, cause error) error {
	return &Error{
		Kind:  ErrCorruptInstallation,
		Code:  errbuilder.CodeFailedPrecondition,
		Msg:   location,
		Cause: cause,
	}
}

func installationFailed(version Version, target string, cause error) error {
	return &Error{
		Kind:  ErrInstallationFailed,
		Code:  errbuilder.CodeInternal,
		Msg:   fmt.Sprintf("%s at %s", version, target),
		Cause: cause,
	}
}

func verificationFailed(version Version, target string, status string) error {
	return &Error{
		Kind: ErrInstallationVerificationFailed,
		Code: errbuilder.CodeInternal,
		Msg:  fmt.Sprintf("%s at %s resolved as %s after install", version, target, status),
	}
}
