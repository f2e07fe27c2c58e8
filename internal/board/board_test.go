package board

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func emptyPuzzle(n int) []int {
	return make([]int, n*n)
}

func TestNew(t *testing.T) {
	Convey("Given an empty 9x9 puzzle", t, func() {
		b, err := New(Size9, emptyPuzzle(Size9))
		So(err, ShouldBeNil)

		Convey("All cells start unfixed with every digit a candidate", func() {
			So(b.CellsFilled(), ShouldEqual, 0)
			for i := 0; i < b.NumCells(); i++ {
				So(b.CellIsFixed(i), ShouldBeFalse)
				So(len(b.Candidates(i)), ShouldEqual, 9)
			}
		})
	})

	Convey("A conflicting pair of fixed cells in the same row is rejected", t, func() {
		initial := emptyPuzzle(Size9)
		initial[0] = 5
		initial[1] = 5
		_, err := New(Size9, initial)
		So(err, ShouldNotBeNil)
	})

	Convey("An unsupported size is rejected", t, func() {
		_, err := New(7, emptyPuzzle(7))
		So(err, ShouldNotBeNil)
	})
}

func TestSetCell(t *testing.T) {
	Convey("Given a fresh 9x9 board", t, func() {
		b, err := New(Size9, emptyPuzzle(Size9))
		So(err, ShouldBeNil)

		Convey("SetCell fixes the cell and removes the value from every peer's candidates", func() {
			b.SetCell(0, 5)
			So(b.CellIsFixed(0), ShouldBeTrue)
			So(b.CellValue(0), ShouldEqual, 5)
			So(b.CellsFilled(), ShouldEqual, 1)

			// row peer
			So(b.CandidateMask(8)&bitFor(5), ShouldEqual, uint32(0))
			// column peer
			So(b.CandidateMask(9)&bitFor(5), ShouldEqual, uint32(0))
			// block peer
			So(b.CandidateMask(10)&bitFor(5), ShouldEqual, uint32(0))
			// a cell outside row/col/block keeps 5 as a candidate
			So(b.CandidateMask(40)&bitFor(5), ShouldNotEqual, uint32(0))
		})

		Convey("SetCell with a value outside the candidate set panics", func() {
			b.SetCell(0, 5)
			So(func() { b.SetCell(8, 5) }, ShouldPanic)
		})

		Convey("SetCell on an already-fixed cell panics", func() {
			b.SetCell(0, 5)
			So(func() { b.SetCell(0, 3) }, ShouldPanic)
		})
	})
}

func TestCopyAndClone(t *testing.T) {
	Convey("Given a board with one fixed cell", t, func() {
		b, _ := New(Size9, emptyPuzzle(Size9))
		b.SetCell(4, 7)

		Convey("CopyFrom reproduces the source board exactly", func() {
			dst, _ := New(Size9, emptyPuzzle(Size9))
			dst.CopyFrom(b)
			So(dst.CellsFilled(), ShouldEqual, 1)
			So(dst.CellValue(4), ShouldEqual, 7)
			So(dst.CandidateMask(5), ShouldEqual, b.CandidateMask(5))
		})

		Convey("Clone is independent of the source", func() {
			clone := b.Clone()
			clone.SetCell(0, 1)
			So(b.CellIsFixed(0), ShouldBeFalse)
			So(clone.CellIsFixed(0), ShouldBeTrue)
		})
	})
}

func TestSize16And25(t *testing.T) {
	Convey("16x16 and 25x25 boards build with the right subgrid side", t, func() {
		b16, err := New(Size16, emptyPuzzle(Size16))
		So(err, ShouldBeNil)
		So(b16.SubSide(), ShouldEqual, 4)

		b25, err := New(Size25, emptyPuzzle(Size25))
		So(err, ShouldBeNil)
		So(b25.SubSide(), ShouldEqual, 5)
	})
}
