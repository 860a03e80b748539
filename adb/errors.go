package adb

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error families, one per operation
const (
	OpListDevices     = "DeviceListingError"
	OpConnect         = "AdbConnectError"
	OpOpenDeepLink    = "OpenDeepLinkError"
	OpCheckExecutable = "CheckExecutableError"
)

type Kind string

const (
	KindCannotRunProcess              Kind = "CannotRunProcess"
	KindBadExitCode                   Kind = "BadExitCode"
	KindDebugBridgePathMissing        Kind = "DebugBridgePathMissing"
	KindUnrecognizedDebugBridgeOutput Kind = "UnrecognizedDebugBridgeOutput"
	KindDeviceUnresponsive            Kind = "DeviceUnresponsive"
	KindCannotSwitchAdbMode           Kind = "CannotSwitchAdbMode"
	KindCannotConnectToDevice         Kind = "CannotConnectToDevice"
	KindCommandFailed                 Kind = "CommandFailed"
	KindNotAFile                      Kind = "NotAFile"
	KindNotAnExecutable               Kind = "NotAnExecutable"
	KindCheckFileError                Kind = "CheckFileError"
	KindProcessExecutionError         Kind = "ProcessExecutionError"
	KindCannotCheckVersion            Kind = "CannotCheckVersion"
	KindDeviceServiceUnavailable      Kind = "DeviceServiceUnavailable"
)

// Error is returned by every operation of the package.
// Op names the error family, Kind is the discriminant clients switch on.
type Error struct {
	Op       string
	Kind     Kind
	Message  string
	ExitCode *int
}

func (e *Error) Error() string {
	switch {
	case e.ExitCode != nil:
		return fmt.Sprintf("%s: %s (exit code %d)", e.Op, e.Kind, *e.ExitCode)
	case e.Message != "":
		return fmt.Sprintf("%s: %s - %s", e.Op, e.Kind, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     Kind   `json:"kind"`
		Message  string `json:"message,omitempty"`
		ExitCode *int   `json:"exit_code,omitempty"`
	}{e.Kind, e.Message, e.ExitCode})
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var adbErr *Error
	return errors.As(err, &adbErr) && adbErr.Kind == kind
}

func newError(op string, kind Kind, message string) *Error {
	return &Error{Op: op, Kind: kind, Message: message}
}

func badExitCode(op string, code int) *Error {
	return &Error{Op: op, Kind: KindBadExitCode, ExitCode: &code}
}
