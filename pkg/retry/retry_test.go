package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(retries int) Config {
	return Config{MaxRetries: retries, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond, Multiplier: 2}
}

func TestDo(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		failWith  error
		retries   int
		wantCalls int
		wantErr   bool
	}{
		{name: "first attempt succeeds", failures: 0, retries: 3, wantCalls: 1},
		{name: "succeeds after transient failures", failures: 2, failWith: errBoom, retries: 3, wantCalls: 3},
		{name: "gives up after max retries", failures: 10, failWith: errBoom, retries: 2, wantCalls: 3, wantErr: true},
		{name: "permanent error stops immediately", failures: 10, failWith: &Permanent{Err: errBoom}, retries: 5, wantCalls: 1, wantErr: true},
		{name: "canceled context is not retried", failures: 10, failWith: context.Canceled, retries: 5, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), fastConfig(tt.retries), nil, func(ctx context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errBoomOr(tt.failWith))
				return
			}
			require.NoError(t, err)
		})
	}
}

func errBoomOr(err error) error {
	var p *Permanent
	if errors.As(err, &p) {
		return p.Err
	}
	return err
}

func TestDo_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxRetries: 5, InitialBackoff: time.Hour, MaxBackoff: time.Hour}

	calls := 0
	err := Do(ctx, cfg, nil, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
