package postgresql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAfterCommitOutsideTransaction(t *testing.T) {
	ran := false
	AfterCommit(context.Background(), func() { ran = true })
	assert.True(t, ran, "without a transaction the hook runs immediately")
}

func TestAfterCommitBuffersUntilRun(t *testing.T) {
	ctx, hooks := collectAfterCommit(context.Background())

	var order []int
	AfterCommit(ctx, func() { order = append(order, 1) })
	AfterCommit(ctx, func() { order = append(order, 2) })
	assert.Empty(t, order, "hooks must not fire before the commit")

	hooks.run()
	assert.Equal(t, []int{1, 2}, order)
}
