package adb

import (
	"context"
	"errors"
	"time"

	"github.com/shamanec/umdb/models"
	"github.com/shamanec/umdb/process"
)

const (
	defaultStepTimeout = time.Second
	defaultSettleDelay = time.Second
)

// Client runs the `adb` executable named by a Configuration
type Client struct {
	Runner process.Runner
	// Timeout for each of the two connect steps
	StepTimeout time.Duration
	// Pause between switching to TCP/IP mode and connecting
	SettleDelay time.Duration
}

func NewClient(runner process.Runner) *Client {
	return &Client{
		Runner:      runner,
		StepTimeout: defaultStepTimeout,
		SettleDelay: defaultSettleDelay,
	}
}

func adbCommand(op string, configuration models.Configuration) (string, error) {
	if !configuration.HasAdbCommand() {
		return "", newError(op, KindDebugBridgePathMissing, "")
	}
	return configuration.AdbCommand, nil
}

// Started adb commands run to completion, a cancelled request does not stop them.
// Only the connect steps are bounded, by StepTimeout.
func detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// Map a runner failure onto the error family of op
func runFailure(op string, err error) error {
	if errors.Is(err, process.ErrTimeout) {
		return newError(op, KindDeviceUnresponsive, "")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	kind := KindCannotRunProcess
	if op == OpCheckExecutable {
		kind = KindProcessExecutionError
	}
	return newError(op, kind, err.Error())
}
