package atomicfloat

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a Float64 initialized to 3.5", t, func() {
		af := New(3.5)
		Convey("Load returns the initial value", func() {
			So(af.Load(), ShouldEqual, 3.5)
		})
	})
}

func TestCompareAndSwap(t *testing.T) {
	Convey("Given a Float64 initialized to 1.0", t, func() {
		af := New(1.0)

		Convey("A swap against the current value succeeds and stores newVal", func() {
			ok := af.CompareAndSwap(1.0, 2.0)
			So(ok, ShouldBeTrue)
			So(af.Load(), ShouldEqual, 2.0)
		})

		Convey("A swap against a stale value fails and leaves the value untouched", func() {
			ok := af.CompareAndSwap(0.0, 2.0)
			So(ok, ShouldBeFalse)
			So(af.Load(), ShouldEqual, 1.0)
		})

		Convey("Many goroutines retrying CompareAndSwap converge on the correct total", func() {
			af.CompareAndSwap(1.0, 0.0)

			const numWriters = 100
			const opsPerWriter = 2000

			var wg sync.WaitGroup
			wg.Add(numWriters)
			for i := 0; i < numWriters; i++ {
				go func() {
					defer wg.Done()
					for n := 0; n < opsPerWriter; n++ {
						for {
							old := af.Load()
							if af.CompareAndSwap(old, old+1.0) {
								break
							}
						}
					}
				}()
			}
			wg.Wait()

			So(af.Load(), ShouldEqual, float64(numWriters*opsPerWriter))
		})
	})
}
