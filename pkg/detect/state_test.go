// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// blockingObserver holds every OnUpdate until release is closed
type blockingObserver struct {
	entered chan int
	release chan struct{}
	found   []int
}

func (o *blockingObserver) OnStart(string)      {}
func (o *blockingObserver) OnComplete([]string) {}

func (o *blockingObserver) OnUpdate(percentage int) {
	o.entered <- percentage
	<-o.release
}

func (o *blockingObserver) OnProgress(_ int, found int) {
	o.found = append(o.found, found)
}

func TestScanState(t *testing.T) {
	t.Run("records without a transition while observer is busy", func(st *testing.T) {
		observer := &blockingObserver{
			entered: make(chan int, 1),
			release: make(chan struct{}),
		}

		state := newScanState(100)

		firstDone := make(chan struct{})

		go func() {
			state.record(Target{Address: "10.0.0.0", Index: 0}, true, observer)
			close(firstDone)
		}()

		assert.Equal(st, 10, <-observer.entered)

		secondDone := make(chan struct{})

		go func() {
			_, found, ok := state.record(Target{Address: "10.0.0.1", Index: 1}, true, observer)
			assert.False(st, ok)
			assert.Equal(st, 2, found)
			close(secondDone)
		}()

		select {
		case <-secondDone:
		case <-time.After(time.Second * 5):
			st.Fatal("record waited on a busy observer")
		}

		close(observer.release)

		<-firstDone

		assert.ElementsMatch(st, []string{"10.0.0.0", "10.0.0.1"}, state.snapshot())
	})

	t.Run("pairs each transition with the reachable count", func(st *testing.T) {
		observer := &blockingObserver{
			entered: make(chan int, len(Buckets)),
			release: make(chan struct{}),
		}

		close(observer.release)

		state := newScanState(10)

		for i := 0; i < 10; i++ {
			state.record(Target{Address: "10.0.0.1", Index: i}, i%2 == 0, observer)
		}

		// indexes 0, 2, 4, 6, 8 and 9 move progress, evens are reachable
		assert.Equal(st, []int{1, 2, 3, 4, 5, 5}, observer.found)
	})
}
