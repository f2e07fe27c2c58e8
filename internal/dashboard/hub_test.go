package dashboard

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHubMergesPerSubColonyChannels(t *testing.T) {
	Convey("Given a Hub for 3 sub-colonies", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := NewHub(ctx, 3)

		Convey("Publishing on each sub-colony's slot surfaces on the merged stream", func() {
			hub.Publish(0, Snapshot{SubColonyID: 0, Iteration: 1, BestScore: 10, NumCells: 81})
			hub.Publish(2, Snapshot{SubColonyID: 2, Iteration: 1, BestScore: 20, NumCells: 81})

			seen := map[int]Snapshot{}
			for i := 0; i < 2; i++ {
				select {
				case s := <-hub.Updates():
					seen[s.SubColonyID] = s
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for merged update")
				}
			}
			So(seen[0].BestScore, ShouldEqual, 10)
			So(seen[2].BestScore, ShouldEqual, 20)
		})

		Convey("Publishing with an out-of-range id is a no-op, not a panic", func() {
			So(func() { hub.Publish(99, Snapshot{}) }, ShouldNotPanic)
		})
	})
}
