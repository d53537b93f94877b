package transmission

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/bitsctl/internal/bits"
	"github.com/danmuck/bitsctl/internal/eval"
	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/danmuck/bitsctl/internal/testutil/testlog"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestDecoder(limits Limits) *Decoder {
	return NewDecoder(limits, zerolog.Nop())
}

func TestDecodeReportsBothReductions(t *testing.T) {
	testlog.Start(t)
	d := newTestDecoder(DefaultLimits())

	report, err := d.Decode(context.Background(), "test", "9C0141080250320F1802104A08\n")
	require.NoError(t, err)
	require.Equal(t, uint64(1), report.Value)
	require.Equal(t, 26*4, report.Bits)
	require.LessOrEqual(t, report.Consumed, report.Bits)
	require.Equal(t, "test", report.Source)
	_, err = uuid.Parse(report.ID)
	require.NoError(t, err)

	sum, err := d.Decode(context.Background(), "test", "C0015000016115A2E0802F182340")
	require.NoError(t, err)
	require.Equal(t, uint64(23), sum.VersionSum)
	require.Equal(t, uint64(46), sum.Value)
	require.Greater(t, sum.Stats.Nodes, 1)
}

func TestDecodeErrorsAreClassified(t *testing.T) {
	testlog.Start(t)
	d := newTestDecoder(Limits{MaxHexDigits: 16, MaxDepth: 4})
	cases := []struct {
		hex  string
		kind string
		err  error
	}{
		{"", "empty_input", bits.ErrEmptyInput},
		{"D2FEXX", "invalid_digit", bits.ErrInvalidDigit},
		{"D2FE", "out_of_bits", bits.ErrOutOfBits},
		{strings.Repeat("0", 17), "too_large", ErrInputTooLarge},
		{"C2000000", "empty_operator", packet.ErrEmptyOperator},
	}
	for _, tc := range cases {
		_, err := d.Decode(context.Background(), "test", tc.hex)
		require.ErrorIs(t, err, tc.err, tc.hex)
		require.Equal(t, tc.kind, ErrorKind(err), tc.hex)
	}
	require.Equal(t, "ok", ErrorKind(nil))
}

func TestDecodeHonorsCanceledContext(t *testing.T) {
	testlog.Start(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestDecoder(DefaultLimits()).Decode(ctx, "test", "D2FE28")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "canceled", ErrorKind(err))
}

func TestLimitsDefaults(t *testing.T) {
	d := newTestDecoder(Limits{})
	require.Equal(t, DefaultLimits(), d.Limits())
}

func TestRenderModes(t *testing.T) {
	testlog.Start(t)
	report, err := newTestDecoder(DefaultLimits()).Decode(context.Background(), "test", "C200B40A82")
	require.NoError(t, err)

	out, err := report.Render(ModeVersions)
	require.NoError(t, err)
	require.Equal(t, "14", out)

	out, err = report.Render(ModeValue)
	require.NoError(t, err)
	require.Equal(t, "3", out)

	out, err = report.Render(ModeTree)
	require.NoError(t, err)
	require.Equal(t, "v6 sum (count, 2 children)\n  v6 literal 1\n  v2 literal 2", out)

	out, err = report.Render(ModeJSON)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, float64(3), doc["value"])
	tree, ok := doc["tree"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "sum", tree["type"])

	_, err = report.Render(Mode("bogus"))
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	for raw, want := range map[string]Mode{
		"1": ModeVersions, "versions": ModeVersions,
		"2": ModeValue, "VALUE": ModeValue,
		"tree": ModeTree, " json ": ModeJSON,
	} {
		got, err := ParseMode(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
	_, err := ParseMode("3")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  D2FE28  \nignored\n"), 0o600))

	got, err := ReadInput(path)
	require.NoError(t, err)
	require.Equal(t, "D2FE28", got)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o600))
	_, err = ReadInput(empty)
	require.ErrorIs(t, err, ErrNoInput)

	_, err = ReadInput(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestReducerFailuresStayIndependent(t *testing.T) {
	testlog.Start(t)
	d := newTestDecoder(DefaultLimits())
	cases := []struct {
		hex      string
		versions string
		kind     string
		err      error
	}{
		// greater_than with three operands
		{"3600D40B81902", "10", "invariant_violation", eval.ErrInvariantViolation},
		// sum of 2^64-1 and 1
		{"220094FFFFFFFFFFFFFFFFFFEF702", "6", "overflow", eval.ErrOverflow},
	}
	for _, tc := range cases {
		report, err := d.Decode(context.Background(), "test", tc.hex)
		require.NoError(t, err, tc.hex)
		require.NoError(t, report.Err(ModeVersions), tc.hex)

		out, err := report.Render(ModeVersions)
		require.NoError(t, err, tc.hex)
		require.Equal(t, tc.versions, out, tc.hex)

		for _, mode := range []Mode{ModeValue, ModeTree, ModeJSON} {
			_, err = report.Render(mode)
			require.ErrorIs(t, err, tc.err, "%s %s", tc.hex, mode)
			require.Equal(t, tc.kind, ErrorKind(err), "%s %s", tc.hex, mode)
		}
		_, err = report.Document()
		require.ErrorIs(t, err, tc.err, tc.hex)
	}
}
