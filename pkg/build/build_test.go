package build

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kaleshlabs/stagehand/pkg/config"
	"github.com/kaleshlabs/stagehand/pkg/stage_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testContext(t *testing.T) *stage_io.RuntimeContext {
	t.Helper()
	return &stage_io.RuntimeContext{
		Ctx: context.Background(),
		Log: zap.NewNop(),
	}
}

func TestStepsOrdering(t *testing.T) {
	t.Parallel()

	opts := Options{Settings: config.Load()}
	steps := Steps(opts)

	require.Len(t, steps, 3)
	assert.Equal(t, "refresh package index", steps[0].Name)
	assert.Equal(t, "install media tooling", steps[1].Name)
	assert.Equal(t, "install python dependencies", steps[2].Name)
}

func TestStepsSkipUpdate(t *testing.T) {
	t.Parallel()

	opts := Options{Settings: config.Load(), SkipUpdate: true}
	steps := Steps(opts)

	require.Len(t, steps, 2)
	assert.Equal(t, "install media tooling", steps[0].Name)
}

func TestRunStepsFailFast(t *testing.T) {
	t.Parallel()

	var ran []string
	boom := errors.New("mirror unreachable")
	steps := []Step{
		{Name: "one", Run: func(rc *stage_io.RuntimeContext) error { ran = append(ran, "one"); return nil }},
		{Name: "two", Run: func(rc *stage_io.RuntimeContext) error { ran = append(ran, "two"); return boom }},
		{Name: "three", Run: func(rc *stage_io.RuntimeContext) error { ran = append(ran, "three"); return nil }},
	}

	var out bytes.Buffer
	err := runSteps(testContext(t), steps, false, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `build step "two"`)
	// The failing step halts the run and withholds the completion line.
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Empty(t, out.String())
}

func TestRunStepsKeepGoing(t *testing.T) {
	t.Parallel()

	var ran []string
	boom := errors.New("mirror unreachable")
	steps := []Step{
		{Name: "one", Run: func(rc *stage_io.RuntimeContext) error { ran = append(ran, "one"); return boom }},
		{Name: "two", Run: func(rc *stage_io.RuntimeContext) error { ran = append(ran, "two"); return nil }},
	}

	var out bytes.Buffer
	err := runSteps(testContext(t), steps, true, &out)

	require.Error(t, err)
	assert.Equal(t, []string{"one", "two"}, ran)

	// Legacy semantics: the completion line is still the final stdout line.
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, config.CompletionMessage, lines[len(lines)-1])
}

func TestRunStepsSuccess(t *testing.T) {
	t.Parallel()

	steps := []Step{
		{Name: "one", Run: func(rc *stage_io.RuntimeContext) error { return nil }},
	}

	var out bytes.Buffer
	err := runSteps(testContext(t), steps, false, &out)

	require.NoError(t, err)
	assert.Equal(t, config.CompletionMessage+"\n", out.String())
}

func TestRunStepsCompletionPrintedOnce(t *testing.T) {
	t.Parallel()

	steps := []Step{
		{Name: "one", Run: func(rc *stage_io.RuntimeContext) error { return nil }},
		{Name: "two", Run: func(rc *stage_io.RuntimeContext) error { return nil }},
	}

	var out bytes.Buffer
	err := runSteps(testContext(t), steps, true, &out)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), config.CompletionMessage))
}
