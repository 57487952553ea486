package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeRequests(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "ctcgo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	registered := map[string]bool{}
	for _, sub := range cmd.Commands() {
		registered[sub.Name()] = true
	}
	for _, name := range []string{"calculate", "validate", "compare", "solve", "presets", "cities", "version"} {
		assert.True(t, registered[name], "expected command %q", name)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
	assert.Contains(t, out, "--log-level")
}

func TestCalculate_Formats(t *testing.T) {
	t.Run("explicit amount and city win over the preset", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--ctc", "1500000", "--city-type", "non-metro",
			"--preset", "senior", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "Basic Salary,600000,40\n")
		assert.Contains(t, out, "HRA,240000,16\n")
	})

	t.Run("preset fills what the flags leave out", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--city", "Shimla", "--preset", "senior", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "Basic Salary,800000,40\n")
		assert.Contains(t, out, "HRA,320000,16\n")
	})

	t.Run("revision preset applies on top of the explicit amount", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--ctc", "1000000", "--preset", "raise_10pct", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "Basic Salary,440000,40\n")
	})

	t.Run("csv metro defaults", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--ctc", "1000000", "--format", "csv")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Component,Amount,Percentage\n"))
		assert.Contains(t, out, "Basic Salary,400000,40\n")
		assert.Contains(t, out, "HRA,200000,20\n")
		assert.Contains(t, out, "Special Allowance,182760,18.28\n")
	})

	t.Run("lpa with non-metro city", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--lpa", "10", "--city", "Shimla", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "HRA,160000,16\n")
		assert.Contains(t, out, "Special Allowance,222760,22.28\n")
	})

	t.Run("percentage overrides", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--ctc", "1000000", "--basic", "50", "--hra", "40", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "Basic Salary,500000,50\n")
		assert.Contains(t, out, "HRA,200000,20\n")
	})

	t.Run("preset", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--preset", "entry_level", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "CTC BREAKUP REPORT")
		assert.Contains(t, out, "Name: entry_level")
		assert.Contains(t, out, "City Type: Non-Metro")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--lpa", "12", "--name", "Asha", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"name": "Asha"`)
		assert.Contains(t, out, `"ctc_amount": 1200000`)
	})
}

func TestCalculate_Errors(t *testing.T) {
	t.Run("validation failure", func(t *testing.T) {
		_, stderr, err := execute(t, "calculate", "--ctc", "5000")
		require.Error(t, err)
		assert.True(t, errors.Is(err, calculation.ErrValidationFailed))
		assert.Contains(t, stderr, "Please fix the following errors:")
		assert.Contains(t, stderr, "• CTC amount seems too low (minimum ₹10,000)")
	})

	t.Run("missing amount", func(t *testing.T) {
		_, stderr, err := execute(t, "calculate")
		require.Error(t, err)
		assert.Contains(t, stderr, "CTC amount must be greater than 0")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execute(t, "calculate", "--ctc", "1000000", "--format", "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported format "pdf"`)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, _, err := execute(t, "calculate", "--preset", "intern")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "preset intern not found")
	})

	t.Run("bad decimal", func(t *testing.T) {
		_, _, err := execute(t, "calculate", "--ctc", "ten lakh")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid --ctc value "ten lakh"`)
	})

	t.Run("ctc and lpa together", func(t *testing.T) {
		_, _, err := execute(t, "calculate", "--ctc", "1000000", "--lpa", "10")
		require.Error(t, err)
	})

	t.Run("strict promotes range warnings", func(t *testing.T) {
		_, stderr, err := execute(t, "calculate", "--ctc", "1000000", "--basic", "70", "--strict")
		require.Error(t, err)
		assert.Contains(t, stderr, "Basic salary 70.00% is outside the typical range 30.0-60.0%")
	})
}

func TestCalculate_OutputDir(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "calculate", "--ctc", "1000000", "--format", "json", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to ")

	matches, err := filepath.Glob(filepath.Join(dir, "ctc_data_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRequestDir(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, filepath.Join("out", "a_b"), requestDir("out", "A B", 0, used))
	assert.Equal(t, filepath.Join("out", "a_b_2"), requestDir("out", "a_b", 1, used))
	assert.Equal(t, filepath.Join("out", "a_b_2_3"), requestDir("out", "a_b_2", 2, used))
	assert.Equal(t, filepath.Join("out", "request"), requestDir("out", "???", 3, used))
}

func TestCalculate_BatchSimilarNames(t *testing.T) {
	path := writeRequests(t, `
requests:
  - name: A B
    ctc_amount: 1000000
  - name: a_b
    ctc_amount: 1200000
`)
	dir := t.TempDir()
	_, _, err := execute(t, "calculate", "--input", path, "--format", "csv", "--output-dir", dir)
	require.NoError(t, err)

	for _, sub := range []string{"a_b", "a_b_2"} {
		matches, err := filepath.Glob(filepath.Join(dir, sub, "ctc_breakup_*.csv"))
		require.NoError(t, err)
		assert.Len(t, matches, 1, "reports for %s", sub)
	}
}

func TestCalculate_Batch(t *testing.T) {
	path := writeRequests(t, `
requests:
  - name: Asha
    ctc_amount: 1000000
  - name: Ravi Kumar
    lpa: 6
    city: Shimla
`)

	t.Run("stdout", func(t *testing.T) {
		out, _, err := execute(t, "calculate", "--input", path, "--format", "csv")
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "Component,Amount,Percentage"))
		assert.Contains(t, out, "Basic Salary,240000,40\n")
	})

	t.Run("output dir", func(t *testing.T) {
		dir := t.TempDir()
		_, _, err := execute(t, "calculate", "--input", path, "--format", "csv", "--output-dir", dir)
		require.NoError(t, err)

		for _, sub := range []string{"asha", "ravi_kumar"} {
			matches, err := filepath.Glob(filepath.Join(dir, sub, "ctc_breakup_*.csv"))
			require.NoError(t, err)
			assert.Len(t, matches, 1, "reports for %s", sub)
		}
	})

	t.Run("partial failure", func(t *testing.T) {
		bad := writeRequests(t, `
requests:
  - name: ok
    lpa: 10
  - name: tiny
    ctc_amount: 500
`)
		out, stderr, err := execute(t, "calculate", "--input", bad, "--format", "csv")
		require.Error(t, err)
		assert.Equal(t, "1 of 2 request(s) failed", err.Error())
		assert.Contains(t, out, "Basic Salary,400000,40")
		assert.Contains(t, stderr, "tiny:")
	})

	t.Run("structurally invalid file", func(t *testing.T) {
		bad := writeRequests(t, "requests:\n  - name: x\n")
		_, _, err := execute(t, "calculate", "--input", bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ctc_amount or lpa is required")
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid with advisory warning", func(t *testing.T) {
		out, _, err := execute(t, "validate", "--ctc", "1000000", "--basic", "70")
		require.NoError(t, err)
		assert.Contains(t, out, "✓ valid")
		assert.Contains(t, out, "! Basic salary 70.00% is outside the typical range 30.0-60.0%")
	})

	t.Run("strict", func(t *testing.T) {
		_, _, err := execute(t, "validate", "--ctc", "1000000", "--basic", "70", "--strict")
		require.Error(t, err)
		assert.True(t, errors.Is(err, calculation.ErrValidationFailed))
	})

	t.Run("invalid", func(t *testing.T) {
		_, stderr, err := execute(t, "validate", "--ctc", "1000000", "--pf", "50")
		require.Error(t, err)
		assert.Contains(t, stderr, "PF percentage cannot exceed Basic salary percentage")
	})

	t.Run("file", func(t *testing.T) {
		path := writeRequests(t, `
requests:
  - name: good
    lpa: 10
  - name: bad
    lpa: 10
    basic_percent: 110
`)
		out, stderr, err := execute(t, "validate", "--input", path)
		require.Error(t, err)
		assert.Equal(t, "1 of 2 request(s) invalid", err.Error())
		assert.Contains(t, out, "good: ✓ valid")
		assert.Contains(t, stderr, "bad:")
		assert.Contains(t, stderr, "Basic salary percentage must be between 0-100%")
	})
}

func TestCompare(t *testing.T) {
	t.Run("presets and transforms", func(t *testing.T) {
		out, _, err := execute(t, "compare", "--ctc", "1000000", "--name", "offer",
			"--with", "high_basic,set_percent:component=basic,value=45", "--format", "csv")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[1], "offer,base,"))
		assert.True(t, strings.HasPrefix(lines[2], "high_basic,alternative,"))
		assert.True(t, strings.HasPrefix(lines[3], `"set_percent:component=basic,value=45",alternative,`))
	})

	t.Run("amounts", func(t *testing.T) {
		out, _, err := execute(t, "compare", "--lpa", "10", "--amounts", "5, 15", "--format", "compact")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Base: ₹10.00 L | ₹5.00 L: -₹"))
		assert.Contains(t, out, "₹15.00 L: +₹")
	})

	t.Run("sample amounts by default", func(t *testing.T) {
		out, _, err := execute(t, "compare", "--lpa", "10", "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "CTC COMPARISON")
		assert.Contains(t, out, "₹3.00 L")
		assert.Contains(t, out, "₹20.00 L")
	})

	t.Run("with and amounts together", func(t *testing.T) {
		_, _, err := execute(t, "compare", "--lpa", "10", "--with", "metro", "--amounts", "5")
		require.Error(t, err)
	})

	t.Run("bad amounts", func(t *testing.T) {
		_, _, err := execute(t, "compare", "--lpa", "10", "--amounts", "five")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid --amounts entry "five"`)
	})
}

func TestSolve(t *testing.T) {
	t.Run("monthly take home", func(t *testing.T) {
		out, _, err := execute(t, "solve", "--monthly-take-home", "65230")
		require.NoError(t, err)
		assert.Contains(t, out, "CTC SOLVER RESULTS")
		assert.Contains(t, out, "Status:       ✓ Converged")
		assert.Contains(t, out, "Target:     ₹782760.00")
	})

	t.Run("max basic json", func(t *testing.T) {
		out, _, err := execute(t, "solve", "--max-basic", "--lpa", "10", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"optimal_basic_percent": "50.95"`)
	})

	t.Run("no goal", func(t *testing.T) {
		_, _, err := execute(t, "solve", "--lpa", "10")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "specify --take-home, --monthly-take-home or --max-basic")
	})

	t.Run("conflicting goals", func(t *testing.T) {
		_, _, err := execute(t, "solve", "--take-home", "800000", "--max-basic", "--lpa", "10")
		require.Error(t, err)
	})
}

func TestPresets(t *testing.T) {
	out, _, err := execute(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Presets:")
	assert.Contains(t, out, "entry_level")
	assert.Contains(t, out, "set_percent")

	out, _, err = execute(t, "presets", "--dump-config")
	require.NoError(t, err)
	assert.Contains(t, out, "basic_percent:")
	assert.Contains(t, out, "metro_cities:")
	assert.Contains(t, out, "- Mumbai")
}

func TestPresets_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metro_cities: [Gurgaon]\n"), 0o644))

	out, _, err := execute(t, "--config", path, "cities", "--name", "gurgaon")
	require.NoError(t, err)
	assert.Equal(t, "gurgaon: Metro (HRA 50% of Basic)\n", out)
}

func TestCities(t *testing.T) {
	out, _, err := execute(t, "cities")
	require.NoError(t, err)
	assert.Contains(t, out, "Metro cities (18):")
	assert.Contains(t, out, "Visakhapatnam")

	out, _, err = execute(t, "cities", "--name", "Shimla")
	require.NoError(t, err)
	assert.Equal(t, "Shimla: Non-Metro (HRA 40% of Basic)\n", out)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ctcgo dev (commit none, built unknown)"))
}

func TestLogging(t *testing.T) {
	_, _, err := execute(t, "--log-level", "verbose", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level: verbose")

	logger, err := initializeLogger("debug", "json")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = initializeLogger("info", "xml")
	assert.Error(t, err)
}
