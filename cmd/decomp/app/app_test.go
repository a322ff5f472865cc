package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/massdecomp/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ethanol = 46.04186481198 // C2H6O with DefaultAlphabet

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()

	return out.String(), err
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no search", func(c *Config) { c.Search = nil }},
		{"no logging", func(c *Config) { c.Logging = nil }},
		{"negative ppm", func(c *Config) { c.Search.PPM = -1 }},
		{"empty alphabet", func(c *Config) { c.Search.Alphabet = "" }},
		{"zero precision", func(c *Config) { c.Search.Precision = 0 }},
		{"no workers", func(c *Config) { c.Search.Workers = 0 }},
		{"unknown ion", func(c *Config) { c.Search.Ion = "[M+Xe]+" }},
		{"unknown filter", func(c *Config) { c.Search.Filter = "strict" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decomp.yaml")
	yml := "search:\n  ppm: 5\n  workers: 2\n  mass_errors: true\n  ion: \"[M-H]-\"\n  filter: rdbe\nlogging:\n  level: debug\n  is_json: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Search.PPM)
	assert.Equal(t, 2, cfg.Search.Workers)
	assert.True(t, cfg.Search.MassErrors)
	assert.Equal(t, "[M-H]-", cfg.Search.Ion)
	assert.Equal(t, FilterRDBE, cfg.Search.Filter)
	assert.Equal(t, DefaultAlphabet, cfg.Search.Alphabet, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.IsJSON)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("search: [1, 2"), 0o600))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestBuildBounds(t *testing.T) {
	a, err := alphabet.ParseWeights(DefaultAlphabet)
	require.NoError(t, err)

	got, err := buildBounds(a, "C[1-]H", "C2H6O")
	require.NoError(t, err)
	assert.Equal(t, alphabet.Interval{Min: 1, Max: 2}, got["C"])
	assert.Equal(t, alphabet.AtMost(6), got["H"])
	assert.Equal(t, alphabet.AtMost(1), got["O"])
	assert.Equal(t, alphabet.AtMost(0), got["S"])

	_, err = buildBounds(a, "C[3-]", "C2H6O")
	assert.ErrorIs(t, err, alphabet.ErrInvalidInterval)
	_, err = buildBounds(a, "Q", "")
	assert.ErrorIs(t, err, alphabet.ErrUnknownSymbol)
	_, err = buildBounds(a, "", "C2Xe")
	assert.ErrorIs(t, err, alphabet.ErrUnknownSymbol)
}

func TestParseIon(t *testing.T) {
	tests := []struct {
		name string
		mz   float64
	}{
		{"[M]", ethanol},
		{"[M+H]+", ethanol + protonMass},
		{"[M-H]-", ethanol - protonMass},
		{"[M]+", ethanol - electronMass},
		{"[M + Na]+", ethanol + 22.98976928 - electronMass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ion, err := ParseIon(tt.name)
			require.NoError(t, err)
			assert.InDelta(t, ethanol, ion.Neutral(tt.mz), 1e-9)
		})
	}

	_, err := ParseIon("[M+Xe]+")
	assert.ErrorContains(t, err, "[M+H]+")
}

func TestValidatorFor(t *testing.T) {
	a, err := buildAlphabet(DefaultAlphabet, FilterRDBE)
	require.NoError(t, err)
	assert.Equal(t, 4, a.ValenceOf(a.IndexOf("C")))

	v, err := validatorFor(FilterNone, a)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = validatorFor(FilterRDBE, a)
	require.NoError(t, err)
	assert.NotNil(t, v)

	_, err = validatorFor("strict", a)
	assert.Error(t, err)

	_, err = buildAlphabet("A=7,B=11", FilterRDBE)
	assert.ErrorContains(t, err, "no valence known for A")
}

func TestRunner_Query(t *testing.T) {
	cfg := DefaultConfig().Search
	cfg.PPM, cfg.Absolute, cfg.Ion = 5, 0, "[M]"
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	hits, err := r.Query(context.Background(), ethanol)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "C2H6O", hits[0].Formula)
	assert.InDelta(t, 0, hits[0].Error, 1e-6)
	for i := 1; i < len(hits); i++ {
		assert.LessOrEqual(t, abs(hits[i-1].Error), abs(hits[i].Error))
	}

	_, err = r.Query(context.Background(), -1)
	assert.Error(t, err)
}

func TestRunner_QueryIon(t *testing.T) {
	cfg := DefaultConfig().Search
	cfg.PPM, cfg.Absolute = 5, 0
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	hits, err := r.Query(context.Background(), ethanol+protonMass)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "C2H6O", hits[0].Formula)
	assert.InDelta(t, 0, hits[0].Error, 1e-6, "errors refer to the neutral mass")

	hits, err = r.Query(context.Background(), ethanol)
	require.NoError(t, err)
	for _, h := range hits {
		assert.NotEqual(t, "C2H6O", h.Formula, "m/z of the protonated ion is not the neutral mass")
	}
}

func TestRunner_QueryFilter(t *testing.T) {
	formulas := func(filter string) []string {
		cfg := DefaultConfig().Search
		cfg.PPM, cfg.Absolute, cfg.Ion, cfg.Filter = 0, 0.1, "[M]", filter
		r, err := NewRunner(cfg)
		require.NoError(t, err)

		hits, err := r.Query(context.Background(), ethanol)
		require.NoError(t, err)
		out := make([]string, len(hits))
		for i, h := range hits {
			out[i] = h.Formula
		}
		return out
	}

	all := formulas(FilterNone)
	assert.Contains(t, all, "C2H6O")
	assert.Contains(t, all, "NO2")

	valid := formulas(FilterRDBE)
	assert.Contains(t, valid, "C2H6O")
	assert.NotContains(t, valid, "NO2")
	assert.Less(t, len(valid), len(all))
}

func TestRunner_Run(t *testing.T) {
	cfg := DefaultConfig().Search
	cfg.PPM, cfg.Absolute, cfg.MassErrors, cfg.Workers = 5, 0, true, 2
	cfg.Ion = "[M]"
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, r.Run(context.Background(), []float64{ethanol, 12, ethanol}, &out))

	blocks := strings.Split(strings.TrimSpace(out.String()), "# ")
	require.Len(t, blocks, 4)
	assert.True(t, strings.HasPrefix(blocks[1], "46.04186481198\nC2H6O\t"), blocks[1])
	assert.True(t, strings.HasPrefix(blocks[2], "12\nC\t0.000000\t0.00"), blocks[2])
	assert.Equal(t, strings.TrimSpace(blocks[1]), strings.TrimSpace(blocks[3]))
}

func TestRunner_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig().Search
	cfg.Alphabet = "C=12,C=13"
	_, err := NewRunner(cfg)
	assert.ErrorIs(t, err, alphabet.ErrDuplicateSymbol)

	cfg = DefaultConfig().Search
	cfg.Bounds = "C[2-1]"
	_, err = NewRunner(cfg)
	assert.ErrorIs(t, err, alphabet.ErrInvalidInterval)

	cfg = DefaultConfig().Search
	cfg.Alphabet, cfg.Filter = "A=7,B=11", FilterRDBE
	_, err = NewRunner(cfg)
	assert.Error(t, err)
}

func TestCommand(t *testing.T) {
	out, err := execute(t, "-p", "5", "-a", "0", "47.04914127886")
	require.NoError(t, err)
	assert.Equal(t, "C2H6O", strings.SplitN(out, "\n", 2)[0], "default ion is [M+H]+")

	out, err = execute(t, "-p", "5", "-a", "0", "--ion", "[M-H]-", "45.0345883451")
	require.NoError(t, err)
	assert.Equal(t, "C2H6O", strings.SplitN(out, "\n", 2)[0])

	out, err = execute(t, "-p", "5", "-a", "0", "-i", "[M]", "46.04186481198")
	require.NoError(t, err)
	assert.Equal(t, "C2H6O", strings.SplitN(out, "\n", 2)[0])

	out, err = execute(t, "-p", "5", "-a", "0", "-i", "[M]", "--parent", "CH4", "46.04186481198")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, "--alphabet", "A=7,B=11", "-i", "[M]", "-a", "0", "-p", "0", "-m", "154")
	require.NoError(t, err)
	assert.Equal(t, "A11B7\t0.000000\t0.00\nA22\t0.000000\t0.00\nB14\t0.000000\t0.00\n", out)
}

func TestCommand_Filter(t *testing.T) {
	lines := func(t *testing.T, args ...string) []string {
		t.Helper()
		out, err := execute(t, append([]string{"-i", "[M]", "-p", "0", "-a", "0.1"}, args...)...)
		require.NoError(t, err)
		return strings.Fields(out)
	}

	assert.Contains(t, lines(t, "46.04186481198"), "NO2", "no filter by default")

	rdbe := lines(t, "--filter", "rdbe", "46.04186481198")
	assert.Contains(t, rdbe, "C2H6O")
	assert.NotContains(t, rdbe, "NO2")

	assert.Contains(t, lines(t, "--nofilter", "46.04186481198"), "NO2")
	assert.Contains(t, lines(t, "--nofilter", "--filter", "none", "46.04186481198"), "NO2")
}

func TestCommand_Errors(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, "abc")
	assert.Error(t, err)

	_, err = execute(t, "-w", "0", "46")
	assert.Error(t, err)

	_, err = execute(t, "-c", filepath.Join(t.TempDir(), "none.yaml"), "46")
	assert.Error(t, err)

	_, err = execute(t, "--ion", "[M+Xe]+", "46")
	assert.ErrorContains(t, err, "unknown ion")

	_, err = execute(t, "--filter", "strict", "46")
	assert.ErrorContains(t, err, "unknown filter")

	_, err = execute(t, "--nofilter", "--filter", "rdbe", "46")
	assert.ErrorContains(t, err, "conflicting options")

	_, err = execute(t, "--alphabet", "A=7,B=11", "--filter", "rdbe", "46")
	assert.ErrorContains(t, err, "no valence known")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
