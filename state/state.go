package state

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
)

// ErrPoisoned is returned by every access after a holder of the lock panicked
var ErrPoisoned = errors.New("umdb state is poisoned")

// FatalError is published when the state can no longer be trusted
type FatalError struct {
	Reason string
	Stack  []byte
}

func (e *FatalError) Error() string {
	return "fatal umdb state error: " + e.Reason
}

// Umdb is the mutable state shared by the request handlers
type Umdb struct {
	Configuration models.Configuration
	EnableLogs    bool
}

func New() *Umdb {
	return &Umdb{EnableLogs: true}
}

// Handle owns the Umdb behind a read/write lock
type Handle struct {
	mu       sync.RWMutex
	umdb     *Umdb
	poisoned atomic.Bool
	fatal    chan *FatalError
}

func NewHandle(umdb *Umdb) *Handle {
	return &Handle{
		umdb:  umdb,
		fatal: make(chan *FatalError, 1),
	}
}

// Fatal delivers at most one FatalError, when the state gets poisoned
func (h *Handle) Fatal() <-chan *FatalError {
	return h.fatal
}

// Read runs fn while holding the read lock
func (h *Handle) Read(fn func(umdb *Umdb) error) (err error) {
	if h.poisoned.Load() {
		return ErrPoisoned
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	defer h.recoverPanic(&err)

	return fn(h.umdb)
}

// Write runs fn while holding the write lock
func (h *Handle) Write(fn func(umdb *Umdb) error) (err error) {
	if h.poisoned.Load() {
		return ErrPoisoned
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.recoverPanic(&err)

	return fn(h.umdb)
}

// Configuration returns a copy of the current configuration
func (h *Handle) Configuration() (models.Configuration, error) {
	var configuration models.Configuration
	err := h.Read(func(umdb *Umdb) error {
		configuration = umdb.Configuration
		return nil
	})
	return configuration, err
}

func (h *Handle) SetConfiguration(configuration models.Configuration) error {
	return h.Write(func(umdb *Umdb) error {
		umdb.Configuration = configuration
		return nil
	})
}

func (h *Handle) recoverPanic(err *error) {
	recovered := recover()
	if recovered == nil {
		return
	}

	fatalErr := &FatalError{Reason: fmt.Sprint(recovered), Stack: debug.Stack()}
	h.poisoned.Store(true)
	logger.UmdbLogger.LogError("umdb_state", fmt.Sprintf("State lock holder panicked, state is poisoned - %s", fatalErr.Reason))

	// The receiver may already be gone, never block on it
	select {
	case h.fatal <- fatalErr:
	default:
	}

	*err = ErrPoisoned
}
