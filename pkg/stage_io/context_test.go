package stage_io

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	t.Parallel()

	rc := NewContext(context.Background(), "build")

	require.NotNil(t, rc.Ctx)
	require.NotNil(t, rc.Log)
	assert.Equal(t, "build", rc.Command)
	assert.NotNil(t, rc.Attributes)
	assert.False(t, rc.Timestamp.IsZero())
}

func TestNewContextNilParent(t *testing.T) {
	t.Parallel()

	rc := NewContext(nil, "check")
	require.NotNil(t, rc.Ctx)
}

func TestHandlePanic(t *testing.T) {
	t.Parallel()

	rc := NewContext(context.Background(), "build")

	var err error
	func() {
		defer rc.HandlePanic(&err)
		panic("step blew up")
	}()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "step blew up")
}

func TestEndWithError(t *testing.T) {
	t.Parallel()

	rc := NewContext(context.Background(), "build")
	rc.Attributes["requirements"] = "requirements.txt"

	err := assert.AnError
	// End must not panic with a populated attribute map and a failed run.
	rc.End(&err)
}
