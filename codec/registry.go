package codec

import (
	"fmt"
	"strings"

	"github.com/wippyai/datatable/errors"
)

// Registry maps type strings to codecs.
//
// A Registry is immutable after construction and safe for concurrent use.
// Lookups are case-insensitive and ignore surrounding whitespace.
type Registry struct {
	byType  map[string]Codec
	codecs  []Codec
	id      Codec
	comment Codec
}

// NewRegistry builds a registry from codecs. Every type string must be unique,
// and exactly one id codec and at least one comment codec must be present.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	r := &Registry{byType: make(map[string]Codec)}
	for _, c := range codecs {
		if c == nil {
			return nil, errors.InvalidInput(errors.PhaseSchema, "nil codec")
		}
		keys := append([]string{c.Keyword()}, c.TypeStrings()...)
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			k = normalize(k)
			if seen[k] {
				continue
			}
			seen[k] = true
			if prev, ok := r.byType[k]; ok {
				return nil, errors.New(errors.PhaseSchema, errors.KindConfiguration).
					Column("", k).
					Detail("type string %q registered by both %q and %q", k, prev.Keyword(), c.Keyword()).
					Build()
			}
			r.byType[k] = c
		}
		if c.IsID() {
			if r.id != nil {
				return nil, errors.Configuration("duplicate id codec %q", c.Keyword())
			}
			r.id = c
		}
		if c.IsComment() && r.comment == nil {
			r.comment = c
		}
		r.codecs = append(r.codecs, c)
	}
	if r.id == nil {
		return nil, errors.Configuration("registry has no id codec")
	}
	if r.comment == nil {
		return nil, errors.Configuration("registry has no comment codec")
	}
	return r, nil
}

// With returns a new registry holding r's codecs followed by codecs.
func (r *Registry) With(codecs ...Codec) (*Registry, error) {
	all := make([]Codec, 0, len(r.codecs)+len(codecs))
	all = append(all, r.codecs...)
	all = append(all, codecs...)
	return NewRegistry(all...)
}

// Lookup returns the codec registered for keyword.
func (r *Registry) Lookup(keyword string) (Codec, error) {
	if c, ok := r.byType[normalize(keyword)]; ok {
		return c, nil
	}
	return nil, errors.UnknownType(keyword)
}

// ID returns the id pseudo-type codec.
func (r *Registry) ID() Codec {
	return r.id
}

// Comment returns the comment pseudo-type codec.
func (r *Registry) Comment() Codec {
	return r.comment
}

// Codecs returns the registered codecs in registration order.
func (r *Registry) Codecs() []Codec {
	out := make([]Codec, len(r.codecs))
	copy(out, r.codecs)
	return out
}

// Keywords returns every canonical keyword in registration order.
func (r *Registry) Keywords() []string {
	out := make([]string, len(r.codecs))
	for i, c := range r.codecs {
		out[i] = c.Keyword()
	}
	return out
}

func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Builtin returns fresh instances of every built-in codec.
func Builtin() []Codec {
	return []Codec{
		NewIDCodec(),
		NewCommentCodec(),
		NewBoolCodec(),
		NewUint8Codec(),
		NewInt8Codec(),
		NewInt16Codec(),
		NewUint16Codec(),
		NewInt32Codec(),
		NewUint32Codec(),
		NewInt64Codec(),
		NewUint64Codec(),
		NewFloat32Codec(),
		NewFloat64Codec(),
		NewCharCodec(),
		NewStringCodec(),
		NewDateTimeCodec(),
		NewVector2Codec(),
		NewVector3Codec(),
		NewVector4Codec(),
		NewQuaternionCodec(),
		NewColorCodec(),
		NewColor32Codec(),
		NewRectCodec(),
		NewBoolArrayCodec(),
		NewInt32ArrayCodec(),
		NewInt64ArrayCodec(),
		NewFloat32ArrayCodec(),
		NewFloat64ArrayCodec(),
		NewStringArrayCodec(),
	}
}

var defaultRegistry = mustRegistry(Builtin()...)

func mustRegistry(codecs ...Codec) *Registry {
	r, err := NewRegistry(codecs...)
	if err != nil {
		panic(fmt.Sprintf("codec: invalid built-in registry: %v", err))
	}
	return r
}

// Default returns the process-wide registry of built-in codecs.
func Default() *Registry {
	return defaultRegistry
}
