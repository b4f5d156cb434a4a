package domain

// WithProjection specifies which fields to include or exclude from query
// results.
func WithProjection(p map[string]uint8) FindOption {
	return func(fo *FindOptions) {
		fo.Projection = p
	}
}

// WithSkip sets the number of documents to skip in query results.
func WithSkip(s int64) FindOption {
	return func(fo *FindOptions) {
		fo.Skip = s
	}
}

// WithLimit sets the maximum number of documents to return.
func WithLimit(l int64) FindOption {
	return func(fo *FindOptions) {
		fo.Limit = l
	}
}

// WithSort specifies the sort order for query results.
func WithSort(s Sort) FindOption {
	return func(fo *FindOptions) {
		fo.Sort = s
	}
}

// FindOption configures query behavior through the functional options pattern.
type FindOption func(*FindOptions)

// FindOptions contains parameters for customizing query execution.
type FindOptions struct {
	// Projection specifies which fields to include or exclude from results.
	Projection map[string]uint8
	// Skip specifies the number of documents to skip.
	Skip int64
	// Limit specifies the maximum number of documents to return.
	Limit int64
	// Sort specifies the sort order for results.
	Sort Sort
}

// WithQuery sets the query criteria for a [Querier.Query] call.
func WithQuery(q any) QueryOption {
	return func(qo *QueryOptions) {
		qo.Query = q
	}
}

// WithQueryLimit sets the maximum number of documents the query should return.
func WithQueryLimit(l int64) QueryOption {
	return func(qo *QueryOptions) {
		qo.Limit = l
	}
}

// WithQuerySkip sets the number of documents the query should skip.
func WithQuerySkip(s int64) QueryOption {
	return func(qo *QueryOptions) {
		qo.Skip = s
	}
}

// WithQuerySort sets the sort order for query results.
func WithQuerySort(s Sort) QueryOption {
	return func(qo *QueryOptions) {
		qo.Sort = s
	}
}

// WithQueryProjection specifies which fields to include or exclude in query
// results.
func WithQueryProjection(p map[string]uint8) QueryOption {
	return func(qo *QueryOptions) {
		qo.Projection = p
	}
}

// QueryOption configures a [Querier.Query] call.
type QueryOption func(*QueryOptions)

// QueryOptions contains parameters for a [Querier.Query] call.
type QueryOptions struct {
	Query      any
	Limit      int64
	Skip       int64
	Sort       Sort
	Projection map[string]uint8
}

// WithCursorDecoder sets the decoder for converting cursor results.
func WithCursorDecoder(d Decoder) CursorOption {
	return func(co *CursorOptions) {
		co.Decoder = d
	}
}

// CursorOption configures cursor behavior through the functional options
// pattern.
type CursorOption func(*CursorOptions)

// CursorOptions contains parameters for customizing cursor behavior.
type CursorOptions struct {
	Decoder Decoder
}
