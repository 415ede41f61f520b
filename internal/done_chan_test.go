package internal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWrapWaitGroupClosesAfterWait(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	done := WrapWaitGroup(&wg)

	select {
	case <-done:
		t.Fatal("done closed before wg.Done")
	case <-time.After(20 * time.Millisecond):
	}

	wg.Done()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done not closed after wg.Done")
	}
}
