package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestRunSchedule_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := &Bot{logger: zap.NewNop()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- b.RunSchedule(ctx, "0 9 * * 1") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RunSchedule did not return after cancel")
	}
}
