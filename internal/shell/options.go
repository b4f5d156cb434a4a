package shell

import (
	"log/slog"

	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// Option configures a [Shell].
type Option func(*Shell)

// WithFile sets the file loaded by [Shell.Load] and written by .save.
func WithFile(file string) Option {
	return func(s *Shell) {
		s.file = file
	}
}

// WithLimit sets the limit of queries that do not set one. Values below one
// keep the store default.
func WithLimit(limit int64) Option {
	return func(s *Shell) {
		s.limit = limit
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStorage sets the storage used to read and write files.
func WithStorage(st domain.Storage) Option {
	return func(s *Shell) {
		s.storage = st
	}
}

// WithSerializer sets the serializer used to print documents.
func WithSerializer(sr domain.Serializer) Option {
	return func(s *Shell) {
		s.serializer = sr
	}
}

// WithDeserializer sets the deserializer used to read arguments.
func WithDeserializer(d domain.Deserializer) Option {
	return func(s *Shell) {
		s.deserializer = d
	}
}
