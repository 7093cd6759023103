package convert

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/stmtconv/internal/camt"
	"github.com/cleared-dev/stmtconv/internal/csvstmt"
	"github.com/cleared-dev/stmtconv/internal/model"
	"github.com/cleared-dev/stmtconv/internal/mt940"
)

// Codec reads and writes one wire format through the canonical model.
type Codec interface {
	Name() string
	Decode(r io.Reader) (*model.Document, error)
	Encode(w io.Writer, doc *model.Document) error
}

// Registry holds named codecs.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry creates an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds a codec. Panics on duplicate name.
func (r *Registry) Register(c Codec) {
	key := strings.ToLower(c.Name())
	if _, ok := r.codecs[key]; ok {
		panic("duplicate codec: " + key)
	}
	r.codecs[key] = c
}

// Get returns the codec registered under name, or nil.
func (r *Registry) Get(name string) Codec {
	return r.codecs[strings.ToLower(name)]
}

// Names returns the registered codec names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs))
	for n := range r.codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in codecs using a
// silent logger, lenient MT940 balances and the wall clock.
func DefaultRegistry() *Registry {
	return NewDefaultRegistry(zerolog.Nop(), false, time.Now)
}

// NewDefaultRegistry returns a registry with all built-in codecs.
func NewDefaultRegistry(log zerolog.Logger, strictBalances bool, now func() time.Time) *Registry {
	r := NewRegistry()
	r.Register(CAMTCodec{})
	r.Register(&MT940Codec{Parser: mt940.NewParser(log, strictBalances)})
	r.Register(&CSVCodec{Now: now})
	return r
}

// CAMTCodec handles CAMT.053 XML.
type CAMTCodec struct{}

func (CAMTCodec) Name() string { return codecCAMT }

func (CAMTCodec) Decode(r io.Reader) (*model.Document, error) { return camt.Decode(r) }

func (CAMTCodec) Encode(w io.Writer, doc *model.Document) error { return camt.Encode(w, doc) }

// MT940Codec handles MT940 text. Decoding always fails; see mt940.Decode.
type MT940Codec struct {
	Parser *mt940.Parser
}

func (c *MT940Codec) Name() string { return codecMT940 }

func (c *MT940Codec) Decode(r io.Reader) (*model.Document, error) {
	if c.Parser == nil {
		return mt940.Decode(r)
	}
	return c.Parser.Decode(r)
}

func (c *MT940Codec) Encode(w io.Writer, doc *model.Document) error { return mt940.Encode(w, doc) }

// CSVCodec handles the Russian statement CSV export.
type CSVCodec struct {
	Now func() time.Time
}

func (c *CSVCodec) Name() string { return codecCSV }

func (c *CSVCodec) Decode(r io.Reader) (*model.Document, error) { return csvstmt.Decode(r) }

func (c *CSVCodec) Encode(w io.Writer, doc *model.Document) error {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return csvstmt.Encode(w, doc, now())
}
