// Package datastore contains the default [domain.UnitDB] implementation.
package datastore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/cursor"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/deserializer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/dispatcher"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/idgenerator"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/modifier"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/normalizer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/querier"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/store"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// MaxLineSize is the longest JSON line accepted by Import.
const MaxLineSize = 16 << 20

// Datastore implements domain.UnitDB.
//
// Every call runs to completion before returning. The context is checked
// before any work starts. A Datastore is not safe for concurrent use.
type Datastore struct {
	store         domain.Store
	dispatcher    domain.Dispatcher
	querier       domain.Querier
	cursorFactory domain.CursorFactory
	decoder       domain.Decoder
	serializer    domain.Serializer
	deserializer  domain.Deserializer
	log           *slog.Logger

	// collaborators of the default querier and dispatcher
	documentFactory domain.DocumentFactory
	comparer        domain.Comparer
	normalizer      domain.Normalizer
	matcher         domain.Matcher
	modifier        domain.Modifier
	idGenerator     domain.IDGenerator
	randomReader    io.Reader
}

// NewDatastore returns a new, empty implementation of domain.UnitDB.
func NewDatastore(options ...Option) domain.UnitDB {
	d := Datastore{
		documentFactory: data.NewDocument,
		comparer:        comparer.NewComparer(),
		normalizer:      normalizer.NewNormalizer(),
		decoder:         decoder.NewDecoder(),
		cursorFactory:   cursor.NewCursor,
		log:             slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&d)
	}

	if d.store == nil {
		d.store = store.NewStore()
	}
	if d.serializer == nil {
		d.serializer = serializer.NewSerializer(
			serializer.WithDocumentFactory(d.documentFactory),
		)
	}
	if d.deserializer == nil {
		d.deserializer = deserializer.NewDeserializer(
			deserializer.WithDecoder(d.decoder),
		)
	}
	if d.querier == nil {
		d.querier = querier.NewQuerier(
			querier.WithDocumentFactory(d.documentFactory),
			querier.WithComparer(d.comparer),
			querier.WithMatcher(d.newMatcher()),
		)
	}
	if d.dispatcher == nil {
		d.dispatcher = d.newDispatcher()
	}
	return &d
}

func (d *Datastore) newMatcher() domain.Matcher {
	if d.matcher != nil {
		return d.matcher
	}
	return matcher.NewMatcher(
		matcher.WithDocumentFactory(d.documentFactory),
		matcher.WithComparer(d.comparer),
		matcher.WithNormalizer(d.normalizer),
	)
}

func (d *Datastore) newDispatcher() domain.Dispatcher {
	idGen := d.idGenerator
	if idGen == nil {
		var opts []idgenerator.Option
		if d.randomReader != nil {
			opts = append(opts, idgenerator.WithReader(d.randomReader))
		}
		idGen = idgenerator.NewIDGenerator(opts...)
	}
	mod := d.modifier
	if mod == nil {
		mod = modifier.NewModifier(modifier.WithDocumentFactory(d.documentFactory))
	}
	return dispatcher.NewDispatcher(d.store,
		dispatcher.WithMatcher(d.newMatcher()),
		dispatcher.WithModifier(mod),
		dispatcher.WithIDGenerator(idGen),
		dispatcher.WithDocumentFactory(d.documentFactory),
		dispatcher.WithDecoder(d.decoder),
		dispatcher.WithLogger(d.log),
	)
}

// Find implements domain.UnitDB.
func (d *Datastore) Find(ctx context.Context, query any, options ...domain.FindOption) (domain.Cursor, error) {
	res, err := d.find(ctx, query, options...)
	if err != nil {
		return nil, err
	}
	return d.cursorFactory(ctx, res, domain.WithCursorDecoder(d.decoder))
}

// FindDocs implements domain.UnitDB.
func (d *Datastore) FindDocs(ctx context.Context, query any, options ...domain.FindOption) ([]domain.Document, error) {
	return d.find(ctx, query, options...)
}

func (d *Datastore) find(ctx context.Context, query any, options ...domain.FindOption) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opt domain.FindOptions
	for _, option := range options {
		option(&opt)
	}

	res, err := d.querier.Query(d.store.All(),
		domain.WithQuery(query),
		domain.WithQueryLimit(opt.Limit),
		domain.WithQuerySkip(opt.Skip),
		domain.WithQuerySort(opt.Sort),
		domain.WithQueryProjection(opt.Projection),
	)
	if err != nil {
		d.log.Debug("query failed", "error", err)
		return nil, err
	}
	return res, nil
}

// FindOne implements domain.UnitDB.
func (d *Datastore) FindOne(ctx context.Context, query any, target any, options ...domain.FindOption) error {
	options = append(options, domain.WithLimit(1))

	cur, err := d.Find(ctx, query, options...)
	if err != nil {
		return err
	}
	defer cur.Close()
	if !cur.Next() {
		if err := cur.Err(); err != nil {
			return err
		}
		return domain.ErrNotFound
	}
	return cur.Scan(ctx, target)
}

// Count implements domain.UnitDB.
func (d *Datastore) Count(ctx context.Context, query any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return d.querier.Count(d.store.All(), query)
}

// Stream implements domain.UnitDB. A batch size lower than one sends the whole
// result at once. No call is made for an empty result.
func (d *Datastore) Stream(ctx context.Context, query any, batch int, fn func([]domain.Document) error, options ...domain.FindOption) error {
	res, err := d.find(ctx, query, options...)
	if err != nil {
		return err
	}
	if batch < 1 {
		batch = max(len(res), 1)
	}
	for start := 0; start < len(res); start += batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+batch, len(res))
		if err := fn(res[start:end:end]); err != nil {
			return err
		}
	}
	return nil
}

// Insert implements domain.UnitDB.
func (d *Datastore) Insert(ctx context.Context, doc any) (string, error) {
	res, err := d.Write(ctx, domain.Insert{Doc: doc})
	if err != nil {
		return "", err
	}
	return res.IDs[0], nil
}

// InsertMany implements domain.UnitDB.
func (d *Datastore) InsertMany(ctx context.Context, docs ...any) ([]string, error) {
	res, err := d.Write(ctx, domain.BulkInsert{Docs: docs})
	if err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// Update implements domain.UnitDB.
func (d *Datastore) Update(ctx context.Context, query any, patch any) (int64, error) {
	res, err := d.Write(ctx, domain.Update{Query: query, Patch: patch})
	return res.N, err
}

// Remove implements domain.UnitDB.
func (d *Datastore) Remove(ctx context.Context, query any) (int64, error) {
	res, err := d.Write(ctx, domain.Delete{Query: query})
	return res.N, err
}

// Clear implements domain.UnitDB.
func (d *Datastore) Clear(ctx context.Context) (int64, error) {
	res, err := d.Write(ctx, domain.Clear{})
	return res.N, err
}

// Write implements domain.UnitDB.
func (d *Datastore) Write(ctx context.Context, req domain.Request) (domain.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.WriteResult{}, err
	}
	return d.dispatcher.Write(req)
}

// Export implements domain.UnitDB.
func (d *Datastore) Export(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := bufio.NewWriter(contextio.NewWriter(ctx, w))
	for _, doc := range d.store.All() {
		b, err := d.serializer.Serialize(ctx, doc)
		if err != nil {
			return fmt.Errorf("exporting document %v: %w", doc.ID(), err)
		}
		if _, err := buf.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	d.log.Info("export", "documents", d.store.Len())
	return nil
}

// Import implements domain.UnitDB. Every non-empty line must hold one JSON
// object. Nothing is inserted unless every line is valid.
func (d *Datastore) Import(ctx context.Context, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	lines := bufio.NewScanner(contextio.NewReader(ctx, r))
	lines.Buffer(nil, MaxLineSize)

	var docs []any
	for n := 1; lines.Scan(); n++ {
		line := lines.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc data.M
		if err := d.deserializer.Deserialize(ctx, line, &doc); err != nil {
			return 0, fmt.Errorf("line %d: %w", n, err)
		}
		docs = append(docs, doc)
	}
	if err := lines.Err(); err != nil {
		return 0, err
	}

	res, err := d.Write(ctx, domain.BulkInsert{Docs: docs})
	if err != nil {
		return 0, err
	}
	d.log.Info("import", "documents", res.N)
	return res.N, nil
}
