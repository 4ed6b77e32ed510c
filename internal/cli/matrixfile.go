package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// errImaginaryPart rejects an imaginary part in a file declared real.
var errImaginaryPart = errors.New("imaginary part in a real matrix")

type entry struct {
	row, col int
	value    float64
	imag     float64
}

// matrixFile is a test matrix in the Sparse 1.3 file format:
//
//	[Starting ...]
//	description
//	size [real|complex]
//	row col value [imag]
//	...
//	0 0 0
//	[Beginning rhs]
//	value [imag]
//	...
//
// The imaginary columns are only allowed in complex files.
type matrixFile struct {
	Description string
	Size        int
	Complex     bool
	Entries     []entry
	RHS         []float64 // [1...Size]
	IRHS        []float64 // imaginary parts of RHS
}

func readMatrixFile(path string, rhsColumn int) (*matrixFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mf, err := parseMatrixFile(f, rhsColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mf, nil
}

// parseMatrixFile reads a test matrix. A positive rhsColumn takes the right
// hand side from that column of the matrix instead of the trailing block.
func parseMatrixFile(r io.Reader, rhsColumn int) (*matrixFile, error) {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNumber++
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}

	line, ok := next()
	if !ok {
		return nil, errors.New("empty file")
	}
	complexFile := false
	if strings.HasPrefix(line, "Starting") {
		complexFile = strings.HasPrefix(line, "Starting complex")
		if line, ok = next(); !ok {
			return nil, errors.New("missing description")
		}
	}
	mf := &matrixFile{Description: line, Complex: complexFile}

	if line, ok = next(); !ok {
		return nil, errors.New("missing size information")
	}
	fields := strings.Fields(line)
	size, err := strconv.Atoi(fields[0])
	if err != nil || size < 0 {
		return nil, fmt.Errorf("line %d: invalid size %q", lineNumber, fields[0])
	}
	if len(fields) > 1 && strings.EqualFold(fields[1], "complex") {
		mf.Complex = true
	}
	mf.Size = size
	mf.RHS = make([]float64, size+1)
	mf.IRHS = make([]float64, size+1)
	if rhsColumn > 0 {
		rhsColumn = min(rhsColumn, size)
	}

	for {
		line, ok = next()
		if !ok {
			return nil, fmt.Errorf("line %d: missing terminating 0 0 0", lineNumber)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected row, column and value", lineNumber)
		}
		if len(fields) > 3 && !mf.Complex {
			return nil, fmt.Errorf("line %d: %w", lineNumber, errImaginaryPart)
		}

		row, err1 := strconv.Atoi(fields[0])
		col, err2 := strconv.Atoi(fields[1])
		value, err3 := strconv.ParseFloat(fields[2], 64)
		var imag float64
		var err4 error
		if len(fields) > 3 {
			imag, err4 = strconv.ParseFloat(fields[3], 64)
		}
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if row == 0 && col == 0 {
			break
		}
		if row < 0 || col < 0 || row > size || col > size {
			return nil, fmt.Errorf("line %d: element (%d, %d) outside %d x %d matrix", lineNumber, row, col, size, size)
		}

		mf.Entries = append(mf.Entries, entry{row: row, col: col, value: value, imag: imag})
		if col == rhsColumn {
			mf.RHS[row], mf.IRHS[row] = value, imag
		}
	}

	if rhsColumn <= 0 {
		i := 1
		for i <= size {
			line, ok = next()
			if !ok {
				break
			}
			if strings.HasPrefix(line, "Beginning") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) > 1 && !mf.Complex {
				return nil, fmt.Errorf("line %d: %w", lineNumber, errImaginaryPart)
			}
			value, err := strconv.ParseFloat(fields[0], 64)
			var imag float64
			if err == nil && len(fields) > 1 {
				imag, err = strconv.ParseFloat(fields[1], 64)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			mf.RHS[i], mf.IRHS[i] = value, imag
			i++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mf, nil
}
