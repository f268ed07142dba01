// pkg/cli/signals.go
//
// Signal handling for in-flight package operations. Cancelling the context
// kills the running child process via exec.CommandContext; a second signal
// forces exit.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"go.uber.org/zap"
)

// SignalHandler cancels a context on SIGINT/SIGTERM.
type SignalHandler struct {
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.Logger
	sigChan chan os.Signal
}

// NewSignalHandler installs handlers for SIGINT and SIGTERM.
func NewSignalHandler(rc *stage_io.RuntimeContext) *SignalHandler {
	ctx, cancel := context.WithCancel(rc.Ctx)

	handler := &SignalHandler{
		ctx:     ctx,
		cancel:  cancel,
		log:     rc.Log,
		sigChan: make(chan os.Signal, 2),
	}

	signal.Notify(handler.sigChan, os.Interrupt, syscall.SIGTERM)
	go handler.handleSignals()

	return handler
}

// Context returns the cancellable context; operations run under it so child
// processes die with the operator's interrupt.
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

func (h *SignalHandler) handleSignals() {
	sig, ok := <-h.sigChan
	if !ok {
		return
	}
	h.log.Warn("Received signal, cancelling current step", zap.String("signal", sig.String()))
	fmt.Fprintf(os.Stderr, "\nReceived %v, stopping...\n", sig)
	h.cancel()

	if sig, ok := <-h.sigChan; ok {
		h.log.Error("Received second signal, forcing exit", zap.String("signal", sig.String()))
		os.Exit(130)
	}
}

// Stop uninstalls the handlers. Called once the command body returns.
func (h *SignalHandler) Stop() {
	signal.Stop(h.sigChan)
	close(h.sigChan)
	h.cancel()
}
