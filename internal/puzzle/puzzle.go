// Package puzzle loads the textual Sudoku instance format consumed by the
// engine: first line N, then N lines of N whitespace-separated tokens, with
// "0" or "." marking an unfixed cell.
package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/board"
)

// Load reads a puzzle file at path and returns the parsed Board. This is an
// external collaborator to the engine core: it never gets called from
// inside the coordinator/colony/ant packages.
func Load(path string) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("puzzle: opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the puzzle format from r.
func Parse(r io.Reader) (*board.Board, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n, err := readSize(scanner)
	if err != nil {
		return nil, err
	}

	values := make([]int, 0, n*n)
	for row := 0; row < n; row++ {
		tokens, err := nextTokenLine(scanner)
		if err != nil {
			return nil, fmt.Errorf("puzzle: row %d: %w", row, err)
		}
		if len(tokens) != n {
			return nil, fmt.Errorf("puzzle: row %d has %d tokens, want %d", row, len(tokens), n)
		}
		for col, tok := range tokens {
			v, err := parseCell(tok, n)
			if err != nil {
				return nil, fmt.Errorf("puzzle: row %d, col %d: %w", row, col, err)
			}
			values = append(values, v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("puzzle: reading file: %w", err)
	}

	b, err := board.New(n, values)
	if err != nil {
		return nil, fmt.Errorf("puzzle: %w", err)
	}
	return b, nil
}

func readSize(scanner *bufio.Scanner) (int, error) {
	tokens, err := nextTokenLine(scanner)
	if err != nil {
		return 0, fmt.Errorf("puzzle: reading size line: %w", err)
	}
	if len(tokens) != 1 {
		return 0, fmt.Errorf("puzzle: size line must contain exactly one token, got %d", len(tokens))
	}
	n, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, fmt.Errorf("puzzle: invalid size %q: %w", tokens[0], err)
	}
	if n != board.Size9 && n != board.Size16 && n != board.Size25 {
		return 0, fmt.Errorf("puzzle: unsupported size N=%d (want 9, 16, or 25)", n)
	}
	return n, nil
}

// nextTokenLine returns the next non-blank line's whitespace-separated
// tokens, skipping blank lines so trailing newlines don't trip up callers.
func nextTokenLine(scanner *bufio.Scanner) ([]string, error) {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		return fields, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected end of file")
}

func parseCell(tok string, n int) (int, error) {
	if tok == "0" || tok == "." {
		return 0, nil
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid cell value %q", tok)
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("cell value %d out of range [1,%d]", v, n)
	}
	return v, nil
}

// Format renders b back into the textual puzzle format, with all cells
// (including ones the engine filled in) written as plain digits.
func Format(b *board.Board) string {
	n := b.N()
	var sb strings.Builder
	fmt.Fprintln(&sb, n)
	values := b.Values()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", values[row*n+col])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
