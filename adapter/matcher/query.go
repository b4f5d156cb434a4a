package matcher

// Numeric representations of supported logic operators.
const (
	And uint8 = iota
	Or
	Not
)

// Numeric representations of supported operators.
const (
	Eq uint8 = iota
	Ne
	Exists
	Lt
	Lte
	Gt
	Gte
	In
	Nin
	Regex
	// Fail is used for operators whose operand is malformed. It never
	// matches.
	Fail
)

var operators = map[string]uint8{
	"$eq":     Eq,
	"$ne":     Ne,
	"$exists": Exists,
	"$lt":     Lt,
	"$lte":    Lte,
	"$gt":     Gt,
	"$gte":    Gte,
	"$in":     In,
	"$nin":    Nin,
	"$regex":  Regex,
}

var logicOperators = map[string]uint8{
	"$and": And,
	"$or":  Or,
	"$not": Not,
}

// Query stores a database query in a typed and easier to iterate struct. All
// of its logic operators must match.
type Query struct {
	Lo []LogicOp
}

// LogicOp stores a logic operator (and, or, not) and its children, which can be
// either a set of rules or a nested set of LogicOps.
type LogicOp struct {
	Type  uint8
	Rules []FieldRule
	Sub   []LogicOp
}

// FieldRule stores a set of conditions used to match a given document field.
type FieldRule struct {
	Field string
	Conds []Cond
}

// Cond stores a single operation on a document field (such as $gt, $in). Val
// is already normalized.
type Cond struct {
	Op  uint8
	Val any
}
