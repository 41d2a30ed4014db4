package processor

import (
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/wippyai/datatable/codec"
)

// DefaultCommentMarker starts a comment row.
const DefaultCommentMarker = "#"

type options struct {
	encoding encoding.Encoding
	registry *codec.Registry
	logger   *zap.Logger
	marker   string
}

func defaultOptions() options {
	return options{
		registry: codec.Default(),
		marker:   DefaultCommentMarker,
	}
}

// Option configures a Processor.
type Option func(*options)

// WithEncoding decodes the source text with enc instead of UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithRegistry resolves column types with reg instead of codec.Default().
func WithRegistry(reg *codec.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithLogger logs through l instead of the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCommentMarker sets the prefix that marks a comment row.
func WithCommentMarker(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.marker = marker
		}
	}
}
