// Package convert moves statements between formats through the canonical
// model.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/stmtconv/internal/id"
	"github.com/cleared-dev/stmtconv/internal/model"
)

var ErrSameFormat = errors.New("input and output formats are the same")

// Options configures a Converter. The zero value is usable.
type Options struct {
	Logger         zerolog.Logger
	StrictBalances bool
	Now            func() time.Time
	IDs            id.Generator
	// Registry overrides the built-in codecs.
	Registry *Registry
}

// Converter converts one document from one format to another per call.
type Converter struct {
	from     Format
	to       Format
	route    []Format
	log      zerolog.Logger
	ids      id.Generator
	registry *Registry
}

// NewConverter validates the format pair and returns a Converter.
// Failures are *ConvertError with ConvertKindArgument.
func NewConverter(from, to Format, opts Options) (*Converter, error) {
	if from.Codec() == "" {
		return nil, &ConvertError{Kind: ConvertKindArgument, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, from)}
	}
	if to.Codec() == "" {
		return nil, &ConvertError{Kind: ConvertKindArgument, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, to)}
	}
	if from.Codec() == to.Codec() {
		return nil, &ConvertError{Kind: ConvertKindArgument, Err: fmt.Errorf("%w: %s and %s", ErrSameFormat, from, to)}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ids := opts.IDs
	if ids == nil {
		ids = id.NewULIDGenerator()
	}
	registry := opts.Registry
	if registry == nil {
		registry = NewDefaultRegistry(opts.Logger, opts.StrictBalances, now)
	}
	for _, f := range []Format{from, to} {
		if registry.Get(f.Codec()) == nil {
			return nil, &ConvertError{Kind: ConvertKindArgument, Err: fmt.Errorf("no codec registered for %s", f)}
		}
	}

	return &Converter{
		from:     from,
		to:       to,
		route:    Route(from, to),
		log:      opts.Logger,
		ids:      ids,
		registry: registry,
	}, nil
}

// Route returns the hops this converter passes through.
func (c *Converter) Route() []Format { return c.route }

// Convert reads one document from r and writes it to w. Every failure is a
// *ConvertError.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return &ConvertError{Kind: ConvertKindArgument, Err: err}
	}
	log := c.log.With().Str("from", string(c.from)).Str("to", string(c.to)).Logger()
	log.Debug().Str("route", FormatRoute(c.route)).Msg("converting")

	doc, err := c.registry.Get(c.from.Codec()).Decode(r)
	if err != nil {
		return AsConvertError(classifyDecode(err))
	}
	if doc == nil {
		doc = &model.Document{}
	}
	log.Debug().Int("statements", len(doc.Statements)).Msg("decoded")

	if err := ctx.Err(); err != nil {
		return &ConvertError{Kind: ConvertKindArgument, Err: err}
	}

	if c.to.Codec() == codecMT940 {
		c.assignMessageIDs(doc)
	}

	if err := c.registry.Get(c.to.Codec()).Encode(w, doc); err != nil {
		return classifyEncode(err)
	}
	log.Info().Int("statements", len(doc.Statements)).Msg("conversion succeeded")
	return nil
}

// assignMessageIDs gives every statement without a message id a fresh one,
// since MT940 blocks 2 and :20: cannot be empty.
func (c *Converter) assignMessageIDs(doc *model.Document) {
	for i := range doc.Statements {
		st := &doc.Statements[i]
		if st.Header.MessageID != "" {
			continue
		}
		st.Header.MessageID = c.ids.Generate()
		if st.Report.ID == "" {
			st.Report.ID = id.StatementID(st.Header.MessageID)
		}
		c.log.Debug().Str("msg_id", st.Header.MessageID).Msg("assigned message id")
	}
}

// Convert is a one-shot helper around NewConverter and Converter.Convert.
func Convert(ctx context.Context, from, to Format, r io.Reader, w io.Writer, opts Options) error {
	c, err := NewConverter(from, to, opts)
	if err != nil {
		return err
	}
	return c.Convert(ctx, r, w)
}
