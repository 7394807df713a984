package goroutine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverableGo(t *testing.T) {
	req := require.New(t)

	done := make(chan struct{})
	ch := RecoverableGo(func() {
		close(done)
	})
	<-done
	_, ok := <-ch
	req.False(ok, "channel should close without panic event")
}

func TestRecoverableGoRecovers(t *testing.T) {
	req := require.New(t)

	recovered := make(chan interface{}, 1)
	ch := RecoverableGo(
		func() { panic("boom") },
		WithAfterRecovered(func(p interface{}, stack []byte) {
			recovered <- p
		}),
	)

	evt := <-ch
	req.NotNil(evt)
	req.Equal("boom", evt.Panic)
	req.Equal("boom", <-recovered)
	req.NotEmpty(evt.Stack)
}
