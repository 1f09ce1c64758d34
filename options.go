package mmapfile

import (
	"log/slog"

	"github.com/kaspar030/mmapfile/internal/fs"
)

type options struct {
	tag         string
	logger      *slog.Logger
	fsys        fs.FileSystem
	private     bool
	syncOnClose bool
}

func buildOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
		fsys:   fs.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures Create and Open behavior.
type Option func(*options)

// WithTag overrides the type identity stored in (and required from) the
// file header. By default the tag is derived from the record type's
// structure; use an explicit tag when the file must interoperate with
// producers outside this package, or to pin the identity independently of
// the Go type.
func WithTag(tag string) Option {
	return func(o *options) {
		o.tag = tag
	}
}

// WithLogger configures structured logging. If not set, log output is
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// withFS injects the filesystem implementation. Unexported: the fs
// interfaces live under internal/, so only this package's tests can
// substitute one.
func withFS(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithPrivate maps the array copy-on-write: writes are visible through
// this view only and are never carried back to the file.
func WithPrivate() Option {
	return func(o *options) {
		o.private = true
	}
}

// WithSyncOnClose flushes the mapping to the file before unmapping in
// Close.
func WithSyncOnClose() Option {
	return func(o *options) {
		o.syncOnClose = true
	}
}
