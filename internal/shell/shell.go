// Package shell implements the commands of the unitdb interactive shell on top
// of a [domain.UnitDB]. Arguments and results are JSON, dates are written the
// way [serializer.Serializer] writes them.
package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/deserializer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/storage"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// ErrNoFile is returned by [Shell.Save] when neither the command nor the shell
// name a file.
var ErrNoFile = errors.New("no file to save to")

// Shell runs commands against a single [domain.UnitDB].
type Shell struct {
	db           domain.UnitDB
	storage      domain.Storage
	serializer   domain.Serializer
	deserializer domain.Deserializer
	file         string
	limit        int64
	log          *slog.Logger
}

// findArgs are the options accepted by .find.
type findArgs struct {
	Sort   string           `json:"sort"`
	Skip   int64            `json:"skip"`
	Limit  int64            `json:"limit"`
	Fields map[string]uint8 `json:"fields"`
}

// NewShell returns a shell running commands against db.
func NewShell(db domain.UnitDB, options ...Option) *Shell {
	s := &Shell{
		db:           db,
		storage:      storage.NewStorage(),
		serializer:   serializer.NewSerializer(),
		deserializer: deserializer.NewDeserializer(),
		log:          slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// File returns the file the shell loads from and saves to by default.
func (s *Shell) File() string {
	return s.file
}

// Load imports the documents of the shell file. A missing file is not an
// error: the shell starts empty and .save creates it.
func (s *Shell) Load(ctx context.Context) (int64, error) {
	if s.file == "" {
		return 0, nil
	}

	exists, err := s.storage.Exists(s.file)
	if err != nil {
		return 0, err
	}
	if !exists {
		s.log.Info("file not found, starting empty", "file", s.file)
		return 0, nil
	}

	r, err := s.storage.ReadFileStream(s.file)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n, err := s.db.Import(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", s.file, err)
	}
	s.log.Info("loaded", "file", s.file, "documents", n)
	return n, nil
}

// Save exports every document to file, or to the shell file when file is
// empty. It returns the written file name.
func (s *Shell) Save(ctx context.Context, file string) (string, error) {
	if file == "" {
		file = s.file
	}
	if file == "" {
		return "", ErrNoFile
	}

	err := s.storage.CrashSafeWriteFile(file, func(w io.Writer) error {
		return s.db.Export(ctx, w)
	})
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", file, err)
	}
	s.log.Info("saved", "file", file)
	return file, nil
}

// Find returns the serialized documents matching the JSON query. An empty
// query matches every document.
func (s *Shell) Find(ctx context.Context, query string, options ...domain.FindOption) ([][]byte, error) {
	q, err := s.query(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, q, options...)
}

// Count returns the number of documents matching the JSON query.
func (s *Shell) Count(ctx context.Context, query string) (int64, error) {
	q, err := s.query(ctx, query)
	if err != nil {
		return 0, err
	}
	return s.db.Count(ctx, q)
}

// Execute runs cmd. Failures are returned as an [ErrorResult].
func (s *Shell) Execute(ctx context.Context, cmd Command) Result {
	s.log.Debug("command", "name", cmd.Name)

	res, err := s.execute(ctx, cmd)
	if err != nil {
		return ErrorResult{Err: err}
	}
	return res
}

func (s *Shell) execute(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Name {
	case ".help":
		return HelpResult{}, nil
	case ".exit", ".quit":
		return ExitResult{}, nil
	case ".find":
		return s.execFind(ctx, cmd)
	case ".count":
		return s.execCount(ctx, cmd)
	case ".insert":
		return s.execInsert(ctx, cmd)
	case ".update":
		return s.execUpdate(ctx, cmd)
	case ".remove":
		return s.execRemove(ctx, cmd)
	case ".clear":
		return s.execClear(ctx, cmd)
	case ".save":
		file, err := s.Save(ctx, cmd.Args)
		if err != nil {
			return nil, err
		}
		return SaveResult{File: file}, nil
	default:
		return nil, fmt.Errorf("unknown command %s, try .help", cmd.Name)
	}
}

func (s *Shell) execFind(ctx context.Context, cmd Command) (Result, error) {
	args, err := s.args(cmd, 0, 2)
	if err != nil {
		return nil, err
	}

	var query any
	if len(args) > 0 {
		if query, err = s.document(ctx, args[0]); err != nil {
			return nil, err
		}
	}

	var options []domain.FindOption
	if len(args) > 1 {
		if options, err = s.findOptions(args[1]); err != nil {
			return nil, err
		}
	}

	lines, err := s.find(ctx, query, options...)
	if err != nil {
		return nil, err
	}
	return DocsResult{Lines: lines}, nil
}

func (s *Shell) execCount(ctx context.Context, cmd Command) (Result, error) {
	args, err := s.args(cmd, 0, 1)
	if err != nil {
		return nil, err
	}

	var query any
	if len(args) > 0 {
		if query, err = s.document(ctx, args[0]); err != nil {
			return nil, err
		}
	}

	n, err := s.db.Count(ctx, query)
	if err != nil {
		return nil, err
	}
	return CountResult{N: n}, nil
}

func (s *Shell) execInsert(ctx context.Context, cmd Command) (Result, error) {
	args, err := s.args(cmd, 1, 1)
	if err != nil {
		return nil, err
	}

	if !isArray(args[0]) {
		doc, err := s.document(ctx, args[0])
		if err != nil {
			return nil, err
		}
		id, err := s.db.Insert(ctx, doc)
		if err != nil {
			return nil, err
		}
		return IDsResult{IDs: []string{id}}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(args[0], &items); err != nil {
		return nil, err
	}
	docs := make([]any, 0, len(items))
	for n, item := range items {
		doc, err := s.document(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", n+1, err)
		}
		docs = append(docs, doc)
	}
	ids, err := s.db.InsertMany(ctx, docs...)
	if err != nil {
		return nil, err
	}
	return IDsResult{IDs: ids}, nil
}

func (s *Shell) execUpdate(ctx context.Context, cmd Command) (Result, error) {
	args, err := s.args(cmd, 2, 2)
	if err != nil {
		return nil, err
	}
	query, err := s.document(ctx, args[0])
	if err != nil {
		return nil, err
	}
	patch, err := s.document(ctx, args[1])
	if err != nil {
		return nil, err
	}
	n, err := s.db.Update(ctx, query, patch)
	if err != nil {
		return nil, err
	}
	return WriteResult{Op: "updated", N: n}, nil
}

func (s *Shell) execRemove(ctx context.Context, cmd Command) (Result, error) {
	args, err := s.args(cmd, 1, 1)
	if err != nil {
		return nil, err
	}
	query, err := s.document(ctx, args[0])
	if err != nil {
		return nil, err
	}
	n, err := s.db.Remove(ctx, query)
	if err != nil {
		return nil, err
	}
	return WriteResult{Op: "removed", N: n}, nil
}

func (s *Shell) execClear(ctx context.Context, cmd Command) (Result, error) {
	if _, err := s.args(cmd, 0, 0); err != nil {
		return nil, err
	}
	n, err := s.db.Clear(ctx)
	if err != nil {
		return nil, err
	}
	return WriteResult{Op: "cleared", N: n}, nil
}

func (s *Shell) find(ctx context.Context, query any, options ...domain.FindOption) ([][]byte, error) {
	if s.limit > 0 {
		options = append([]domain.FindOption{domain.WithLimit(s.limit)}, options...)
	}
	docs, err := s.db.FindDocs(ctx, query, options...)
	if err != nil {
		return nil, err
	}
	lines := make([][]byte, 0, len(docs))
	for _, doc := range docs {
		b, err := s.serializer.Serialize(ctx, doc)
		if err != nil {
			return nil, err
		}
		lines = append(lines, b)
	}
	return lines, nil
}

func (s *Shell) findOptions(raw json.RawMessage) ([]domain.FindOption, error) {
	var fa findArgs
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fa); err != nil {
		return nil, fmt.Errorf("find options: %w", err)
	}

	var options []domain.FindOption
	if fa.Sort != "" {
		sort, err := ParseSort(fa.Sort)
		if err != nil {
			return nil, err
		}
		options = append(options, domain.WithSort(sort))
	}
	if fa.Skip != 0 {
		options = append(options, domain.WithSkip(fa.Skip))
	}
	if fa.Limit != 0 {
		options = append(options, domain.WithLimit(fa.Limit))
	}
	if len(fa.Fields) > 0 {
		options = append(options, domain.WithProjection(fa.Fields))
	}
	return options, nil
}

// query parses an optional single JSON object.
func (s *Shell) query(ctx context.Context, query string) (any, error) {
	args, err := SplitJSON(query)
	if err != nil {
		return nil, err
	}
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		return s.document(ctx, args[0])
	default:
		return nil, ErrArgs{Command: "query", Min: 0, Max: 1, Actual: len(args)}
	}
}

func (s *Shell) document(ctx context.Context, raw json.RawMessage) (data.M, error) {
	var doc data.M
	if err := s.deserializer.Deserialize(ctx, raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Shell) args(cmd Command, minArgs, maxArgs int) ([]json.RawMessage, error) {
	args, err := SplitJSON(cmd.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	if len(args) < minArgs || len(args) > maxArgs {
		return nil, ErrArgs{Command: cmd.Name, Min: minArgs, Max: maxArgs, Actual: len(args)}
	}
	return args, nil
}
