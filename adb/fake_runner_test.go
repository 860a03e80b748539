package adb

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/shamanec/umdb/process"
)

type fakeResponse struct {
	stdout   string
	stderr   string
	exitCode int
	err      error
}

// fakeRunner answers commands by their space joined arguments
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
	timeouts  []time.Duration
	ctxErrs   []error
}

func newFakeRunner(responses map[string]fakeResponse) *fakeRunner {
	return &fakeRunner{responses: responses}
}

func (r *fakeRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*process.Output, error) {
	key := strings.Join(args, " ")

	r.mu.Lock()
	r.calls = append(r.calls, key)
	r.timeouts = append(r.timeouts, timeout)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	response, ok := r.responses[key]
	r.mu.Unlock()

	if !ok {
		return nil, &process.SpawnError{Name: name, Err: fmt.Errorf("unexpected call `%s`", key)}
	}
	if response.err != nil {
		return nil, response.err
	}
	return &process.Output{
		Stdout:   []byte(response.stdout),
		Stderr:   []byte(response.stderr),
		ExitCode: response.exitCode,
	}, nil
}

func (r *fakeRunner) called(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, call := range r.calls {
		if call == key {
			return true
		}
	}
	return false
}

func addrs(values ...string) []netip.Addr {
	result := make([]netip.Addr, len(values))
	for i, value := range values {
		result[i] = netip.MustParseAddr(value)
	}
	return result
}
