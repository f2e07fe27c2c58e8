package puzzle

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const validNineByNine = `9
5 3 . . 7 . . . .
6 . . 1 9 5 . . .
. 9 8 . . . . 6 .
8 . . . 6 . . . 3
4 . . 8 . 3 . . 1
7 . . . 2 . . . 6
. 6 . . . . 2 8 .
. . . 4 1 9 . . 5
. . . . 8 . . 7 9
`

func TestParseValidPuzzle(t *testing.T) {
	Convey("Given a well-formed 9x9 puzzle", t, func() {
		b, err := Parse(strings.NewReader(validNineByNine))

		Convey("it parses without error", func() {
			So(err, ShouldBeNil)
			So(b.N(), ShouldEqual, 9)
		})

		Convey("fixed cells match the input and unfixed cells are open", func() {
			So(b.CellIsFixed(0), ShouldBeTrue)
			So(b.CellValue(0), ShouldEqual, 5)
			So(b.CellIsFixed(1), ShouldBeTrue)
			So(b.CellValue(1), ShouldEqual, 3)
			So(b.CellIsFixed(2), ShouldBeFalse)
		})
	})
}

func TestParseRejectsMalformedInput(t *testing.T) {
	Convey("Given various malformed puzzle texts", t, func() {
		cases := []string{
			"",
			"9\n1 2 3\n",
			"7\n" + strings.Repeat("1 2 3 4 5 6 7\n", 7),
			"9\n" + strings.Repeat(". . . . . . . . .\n", 8) + "X . . . . . . . .\n",
		}
		for _, c := range cases {
			_, err := Parse(strings.NewReader(c))
			So(err, ShouldNotBeNil)
		}
	})
}

func TestFormatWritesSizeLineAndGrid(t *testing.T) {
	Convey("Given a parsed puzzle", t, func() {
		b, err := Parse(strings.NewReader(validNineByNine))
		So(err, ShouldBeNil)

		Convey("Format produces N+1 lines with N tokens each", func() {
			out := Format(b)
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			So(len(lines), ShouldEqual, 10)
			for _, line := range lines[1:] {
				So(len(strings.Fields(line)), ShouldEqual, 9)
			}
		})
	})
}
