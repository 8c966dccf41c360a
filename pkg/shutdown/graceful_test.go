package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-browser/pkg/logging"
)

type stoppable struct {
	err      error
	deadline bool
}

func (s *stoppable) Shutdown(ctx context.Context) error {
	_, s.deadline = ctx.Deadline()
	return s.err
}

func TestRunExecutesEveryStepInOrder(t *testing.T) {
	var order []string
	srv := &stoppable{err: errors.New("listener busy")}

	err := Run(time.Second, logging.NewNop(),
		Server("http", srv),
		Func("store", func() { order = append(order, "store") }),
		Func("storage", func() { order = append(order, "storage") }),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, srv.err)
	assert.Contains(t, err.Error(), "http: listener busy")
	assert.True(t, srv.deadline)
	assert.Equal(t, []string{"store", "storage"}, order)
}

func TestRunWithoutFailures(t *testing.T) {
	assert.NoError(t, Run(time.Second, logging.NewNop(), Server("http", &stoppable{})))
}
