package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func parseSolution(t *testing.T, out string) []float64 {
	t.Helper()
	var solution []float64
	for _, field := range strings.Fields(out) {
		v, err := strconv.ParseFloat(field, 64)
		require.NoError(t, err)
		solution = append(solution, v)
	}
	return solution
}

func TestSolveCommand(t *testing.T) {
	path := writeMatrix(t, tridiagonal)

	for _, args := range [][]string{
		{"solve", "-s", path},
		{"solve", "-s", "--dense", path},
		{"solve", "-s", "--transpose", path},
		{"solve", "-s", "-i", "3", path},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err, "%v", args)

		solution := parseSolution(t, out)
		require.Len(t, solution, 3)
		for _, v := range solution {
			assert.InDelta(t, 1, v, 1e-12)
		}
	}
}

func parseComplexSolution(t *testing.T, out string) []complex128 {
	t.Helper()
	var solution []complex128
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		require.Len(t, fields, 3, line)
		require.Equal(t, "j", fields[2])
		re, err := strconv.ParseFloat(fields[0], 64)
		require.NoError(t, err)
		im, err := strconv.ParseFloat(fields[1], 64)
		require.NoError(t, err)
		solution = append(solution, complex(re, im))
	}
	return solution
}

func TestSolveCommandComplex(t *testing.T) {
	path := writeMatrix(t, complexUpper)

	for _, tt := range []struct {
		args []string
		want []complex128
	}{
		{[]string{"solve", "-s", path}, []complex128{1 + 1i, 2}},
		{[]string{"solve", "-s", "-i", "2", path}, []complex128{1 + 1i, 2}},
		{[]string{"solve", "-s", "--transpose", path}, []complex128{1 - 1i, 1.5 + 0.5i}},
	} {
		out, err := execute(t, tt.args...)
		require.NoError(t, err, "%v", tt.args)

		solution := parseComplexSolution(t, out)
		require.Len(t, solution, len(tt.want))
		for i, want := range tt.want {
			assert.InDelta(t, real(want), real(solution[i]), 1e-12, "%v", tt.args)
			assert.InDelta(t, imag(want), imag(solution[i]), 1e-12, "%v", tt.args)
		}
	}

	out, err := execute(t, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Matrix is 2 x 2 and complex.")
	assert.Contains(t, out, "Complex solution:")
	assert.Contains(t, out, "Residual")

	_, err = execute(t, "solve", "--dense", path)
	assert.ErrorIs(t, err, errComplexDense)
}

func TestSolveCommandReport(t *testing.T) {
	path := writeMatrix(t, tridiagonal)

	out, err := execute(t, "solve", "-n", "2", "-r", "0.5", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Test tridiagonal")
	assert.Contains(t, out, "Matrix is 3 x 3 and real.")
	assert.Contains(t, out, "Solution:")
	assert.Contains(t, out, "Fill-ins")
	assert.Contains(t, out, "Residual")
	assert.Contains(t, out, "1 refactor runs")
}

func TestSolveCommandErrors(t *testing.T) {
	_, err := execute(t, "solve", filepath.Join(t.TempDir(), "missing.mat"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	singular := writeMatrix(t, "singular\n2\n1 1 1\n1 2 2\n2 1 2\n2 2 4\n0 0 0\n1\n1\n")
	_, err = execute(t, "solve", "--dense", singular)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order and factor")

	_, err = execute(t, "solve", "-r", "2", writeMatrix(t, tridiagonal))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relative pivot threshold")
}

func TestSolveCommandConfig(t *testing.T) {
	config := filepath.Join(t.TempDir(), "sparse.toml")
	require.NoError(t, os.WriteFile(config, []byte("partition = \"direct\"\nties_multiplier = 2\n"), 0o644))

	out, err := execute(t, "--config", config, "solve", "-s", writeMatrix(t, tridiagonal))
	require.NoError(t, err)
	assert.Len(t, parseSolution(t, out), 3)

	require.NoError(t, os.WriteFile(config, []byte("bogus = 1\n"), 0o644))
	_, err = execute(t, "--config", config, "solve", "-s", writeMatrix(t, tridiagonal))
	assert.Error(t, err)
}

func TestPrintCommand(t *testing.T) {
	out, err := execute(t, "print", writeMatrix(t, tridiagonal))
	require.NoError(t, err)
	assert.Contains(t, out, "Matrix before factorization:")
	assert.Contains(t, out, "Matrix after factorization:")
	assert.Contains(t, out, "Number of fill-ins = 0.")

	out, err = execute(t, "print", "--pattern", "--mna", writeMatrix(t, tridiagonal))
	require.NoError(t, err)
	assert.Contains(t, out, "Columns 1 to 3.")
	assert.NotContains(t, out, "...")

	out, err = execute(t, "print", writeMatrix(t, complexUpper))
	require.NoError(t, err)
	assert.Contains(t, out, "Matrix is complex.")
	assert.Contains(t, out, "+1j")
}

func TestResidual(t *testing.T) {
	mf := &matrixFile{
		Size:    2,
		Entries: []entry{{1, 1, 2, 0}, {2, 2, 4, 0}, {1, 2, 1, 0}, {0, 1, 9, 0}},
		RHS:     []float64{0, 3, 4},
	}
	assert.Zero(t, residual(mf, []float64{0, 1, 1}, false))
	assert.Greater(t, residual(mf, []float64{0, 1, 1}, true), 0.0)
	assert.Zero(t, residual(&matrixFile{}, nil, false))
}

func TestComplexResidual(t *testing.T) {
	mf := &matrixFile{
		Size:    2,
		Complex: true,
		Entries: []entry{{1, 1, 0, 1}, {1, 2, 1, 0}, {2, 2, 2, 0}, {2, 0, 5, 5}},
		RHS:     []float64{0, 1, 4},
		IRHS:    []float64{0, 1, 0},
	}
	assert.InDelta(t, 0, complexResidual(mf, []complex128{0, 1 + 1i, 2}, false), 1e-15)
	assert.InDelta(t, 0, complexResidual(mf, []complex128{0, 1 - 1i, 1.5 + 0.5i}, true), 1e-15)
	assert.Greater(t, complexResidual(mf, []complex128{0, 1 - 1i, 2}, false), 0.0)
	assert.Zero(t, complexResidual(&matrixFile{}, nil, false))
}
