// Package dispatcher contains the default [domain.Dispatcher] implementation,
// the single place where a [domain.Store] is mutated.
package dispatcher

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-reflect"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/data"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/idgenerator"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/modifier"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

var docReflectType = reflect.TypeOf((*domain.Document)(nil)).Elem()

// Dispatcher implements [domain.Dispatcher].
//
// Requests either succeed completely or leave the store untouched. Inserted
// maps and matched documents are changed in place, so previous readers see the
// changes.
type Dispatcher struct {
	store    domain.Store
	matcher  domain.Matcher
	modifier domain.Modifier
	idGen    domain.IDGenerator
	docFac   domain.DocumentFactory
	decoder  domain.Decoder
	log      *slog.Logger
}

// NewDispatcher returns a new implementation of [domain.Dispatcher] writing to
// store.
func NewDispatcher(store domain.Store, opts ...Option) domain.Dispatcher {
	d := Dispatcher{
		store:  store,
		docFac: data.NewDocument,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.matcher == nil {
		d.matcher = matcher.NewMatcher(matcher.WithDocumentFactory(d.docFac))
	}
	if d.modifier == nil {
		d.modifier = modifier.NewModifier(modifier.WithDocumentFactory(d.docFac))
	}
	if d.idGen == nil {
		d.idGen = idgenerator.NewIDGenerator()
	}
	if d.decoder == nil {
		d.decoder = decoder.NewDecoder()
	}
	return &d
}

// Write implements [domain.Dispatcher].
func (d *Dispatcher) Write(req domain.Request) (res domain.WriteResult, err error) {
	switch r := req.(type) {
	case domain.Insert:
		res, err = d.insert(r.Doc)
	case *domain.Insert:
		res, err = d.insert(r.Doc)
	case domain.BulkInsert:
		res, err = d.insert(r.Docs...)
	case *domain.BulkInsert:
		res, err = d.insert(r.Docs...)
	case domain.Update:
		res, err = d.update(r.Query, r.Patch)
	case *domain.Update:
		res, err = d.update(r.Query, r.Patch)
	case domain.Delete:
		res, err = d.remove(r.Query)
	case *domain.Delete:
		res, err = d.remove(r.Query)
	case domain.Clear, *domain.Clear:
		res = domain.WriteResult{N: int64(d.store.Reset())}
	default:
		return res, fmt.Errorf("%w: %T", domain.ErrUnknownRequest, req)
	}
	if err != nil {
		d.log.Debug("write failed", "request", fmt.Sprintf("%T", req), "error", err)
		return domain.WriteResult{}, err
	}
	d.log.Debug("write", "request", fmt.Sprintf("%T", req), "n", res.N)
	return res, nil
}

type pending struct {
	doc       domain.Document
	id        string
	generated bool
	// target is the struct given by the caller, refreshed after insertion.
	target any
}

func (d *Dispatcher) insert(docs ...any) (domain.WriteResult, error) {
	items := make([]pending, len(docs))
	seen := make(map[string]struct{}, len(docs))
	shared := make(map[uintptr]struct{}, len(docs))

	for n, in := range docs {
		item, err := d.prepare(in, shared)
		if err != nil {
			return domain.WriteResult{}, err
		}
		if _, dup := seen[item.id]; dup || d.store.HasID(item.id) {
			return domain.WriteResult{}, domain.ErrDuplicateID{ID: item.id}
		}
		seen[item.id] = struct{}{}
		items[n] = item
	}

	res := domain.WriteResult{
		IDs:  make([]string, len(items)),
		Docs: make([]domain.Document, len(items)),
		N:    int64(len(items)),
	}
	for n, item := range items {
		if item.generated {
			item.doc.Set(domain.IDField, item.id)
		}
		res.IDs[n] = item.id
		res.Docs[n] = item.doc
	}
	d.store.Append(res.Docs...)

	for _, item := range items {
		if item.target == nil {
			continue
		}
		if err := d.decoder.Decode(item.doc, item.target); err != nil {
			// the documents are stored already
			d.log.Warn("refreshing inserted value", "id", item.id, "error", err)
		}
	}
	return res, nil
}

// prepare converts in into a document and assigns its id. Documents backed by
// a map or pointer already in shared are rejected, since both entries would
// end up with the same id.
func (d *Dispatcher) prepare(in any, shared map[uintptr]struct{}) (pending, error) {
	doc, err := d.docFac(in)
	if err != nil {
		return pending{}, err
	}
	if v := reflect.ValueNoEscapeOf(doc); v.Kind() == reflect.Map || v.Kind() == reflect.Ptr {
		if _, dup := shared[v.Pointer()]; dup {
			return pending{}, domain.ErrDocumentType{
				Reason: "the same document appears more than once",
			}
		}
		shared[v.Pointer()] = struct{}{}
	}
	item := pending{doc: doc, target: d.refreshTarget(in)}

	switch id := doc.ID().(type) {
	case nil:
	case string:
		item.id = id
	default:
		return pending{}, domain.ErrDocumentType{
			Reason: fmt.Sprintf("%s must be a string, got %T", domain.IDField, id),
		}
	}

	if item.id == "" {
		if item.id, err = d.idGen.GenerateID(); err != nil {
			return pending{}, fmt.Errorf("generating id: %w", err)
		}
		item.generated = true
	}
	return item, nil
}

// refreshTarget returns in if it is a pointer to a struct. Such values are
// converted into new documents and need their id copied back.
func (d *Dispatcher) refreshTarget(in any) any {
	if in == nil {
		return nil
	}
	v := reflect.ValueNoEscapeOf(in)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Type().Implements(docReflectType) {
		return nil
	}
	if v.Elem().Kind() != reflect.Struct {
		return nil
	}
	return in
}

func (d *Dispatcher) update(query, patch any) (domain.WriteResult, error) {
	if err := d.matcher.SetQuery(query); err != nil {
		return domain.WriteResult{}, err
	}
	if err := d.modifier.SetPatch(patch); err != nil {
		return domain.WriteResult{}, err
	}

	var n int64
	for _, doc := range d.store.All() {
		if d.matcher.Match(doc) {
			d.modifier.Modify(doc)
			n++
		}
	}
	return domain.WriteResult{N: n}, nil
}

func (d *Dispatcher) remove(query any) (domain.WriteResult, error) {
	if err := d.matcher.SetQuery(query); err != nil {
		return domain.WriteResult{}, err
	}
	n := d.store.RemoveFunc(d.matcher.Match)
	return domain.WriteResult{N: int64(n)}, nil
}
