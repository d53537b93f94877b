package transmission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/bitsctl/internal/bits"
	"github.com/danmuck/bitsctl/internal/eval"
	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of one decoded transmission.
type Report struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Bits       int            `json:"bits"`
	Consumed   int            `json:"consumed"`
	VersionSum uint64         `json:"version_sum"`
	Value      uint64         `json:"value"`
	Stats      packet.Stats   `json:"stats"`
	Root       *packet.Packet `json:"-"`

	// Each reducer fails on its own; a tree may have a version sum and
	// still be unevaluable.
	versionErr error
	valueErr   error
}

// Err reports the reducer failure that mode depends on. Tree and JSON
// output need both reducers.
func (r *Report) Err(mode Mode) error {
	switch mode {
	case ModeVersions:
		return r.versionErr
	case ModeValue:
		return r.valueErr
	default:
		return errors.Join(r.versionErr, r.valueErr)
	}
}

// Decoder decodes transmissions under fixed limits.
type Decoder struct {
	limits Limits
	logger zerolog.Logger
}

func NewDecoder(limits Limits, logger zerolog.Logger) *Decoder {
	return &Decoder{limits: limits.withDefaults(), logger: logger}
}

func (d *Decoder) Limits() Limits {
	return d.limits
}

// Decode parses one root packet from hex and runs both reducers over it.
// A decode failure invalidates the whole transmission; reducer failures are
// kept on the report and surface through Err and Render.
func (d *Decoder) Decode(ctx context.Context, source, hex string) (*Report, error) {
	start := time.Now()
	report, err := d.decode(ctx, source, hex)

	consumed := 0
	if report != nil {
		consumed = report.Consumed
	}
	kind := ErrorKind(err)
	observability.RecordDecode(source, kind, consumed, time.Since(start))
	if err != nil {
		d.logger.Warn().Str("source", source).Str("kind", kind).Err(err).Msg("transmission.Decode failed")
		return nil, err
	}
	if rerr := report.Err(ModeJSON); rerr != nil {
		d.logger.Warn().
			Str("id", report.ID).
			Str("source", source).
			Str("kind", ErrorKind(rerr)).
			Err(rerr).
			Msg("transmission.Decode reducer failed")
		return report, nil
	}
	d.logger.Info().
		Str("id", report.ID).
		Str("source", source).
		Int("consumed", report.Consumed).
		Int("nodes", report.Stats.Nodes).
		Uint64("version_sum", report.VersionSum).
		Uint64("value", report.Value).
		Msg("transmission.Decode ok")
	return report, nil
}

func (d *Decoder) decode(ctx context.Context, source, hex string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hex = strings.TrimSpace(hex)
	if len(hex) > d.limits.MaxHexDigits {
		return nil, fmt.Errorf("%w: %d digits, limit %d", ErrInputTooLarge, len(hex), d.limits.MaxHexDigits)
	}

	r, err := bits.FromHex(hex)
	if err != nil {
		return nil, err
	}
	root, err := packet.DecodeWith(r, packet.Options{MaxDepth: d.limits.MaxDepth})
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:       uuid.NewString(),
		Source:   source,
		Bits:     r.Len(),
		Consumed: r.Position(),
		Root:     root,
	}

	var g errgroup.Group
	g.Go(func() error {
		report.VersionSum, report.versionErr = eval.SumVersions(root)
		return nil
	})
	g.Go(func() error {
		report.Value, report.valueErr = eval.Evaluate(root)
		return nil
	})
	g.Go(func() error {
		s, err := packet.CollectStats(root)
		report.Stats = s
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
