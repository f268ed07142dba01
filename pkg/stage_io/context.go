// pkg/stage_io/context.go

package stage_io

import (
	"context"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/kaleshlabs/stagehand/pkg/shared"
	"github.com/kaleshlabs/stagehand/pkg/stage_err"
	"github.com/kaleshlabs/stagehand/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries everything a command body needs: a cancellable
// context, a scoped logger, the telemetry span, and attributes accumulated
// for the final span.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Span       trace.Span
	Timestamp  time.Time
	Command    string
	Component  string
	Attributes map[string]string
}

// NewContext sets up tracing and scoped logging for a command invocation.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := telemetry.Start(ctx, cmdName)
	traceID := span.SpanContext().TraceID().String()

	comp, action := resolveCallContext(3)
	logger := zap.L().With(
		zap.String("component", comp),
		zap.String("action", action),
		zap.String("trace_id", traceID),
	).Named(comp)

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        logger,
		Timestamp:  time.Now(),
		Command:    cmdName,
		Component:  comp,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts them to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome, records the final span attributes, and flushes.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	duration := time.Since(rc.Timestamp)
	success := (*errPtr == nil)

	if success {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	} else {
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(*errPtr))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", strings.Join(os.Args[1:], " ")),
		attribute.String("version", shared.Version),
		attribute.String("error_type", classifyError(*errPtr)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)

	shared.SafeSync()
}

// LogRuntimeExecutionContext records who is running the command and from
// which binary, which matters when sudo is in play.
func LogRuntimeExecutionContext(rc *RuntimeContext) {
	if u, err := user.Current(); err == nil {
		rc.Log.Debug("user context",
			zap.String("username", u.Username),
			zap.String("uid", u.Uid),
			zap.String("gid", u.Gid),
			zap.Int("effective_uid", os.Geteuid()),
		)
	}
	if exe, err := os.Executable(); err == nil {
		rc.Log.Debug("executable path", zap.String("path", exe))
	}
}

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	component = parts[len(parts)-2]
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields := strings.Split(fn.Name(), ".")
		action = fields[len(fields)-1]
	} else {
		action = "unknown"
	}
	return
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if stage_err.IsExpectedUserError(err) {
		return "user"
	}
	return "system"
}
