package queries

// Field names an appointment attribute a predicate can test. The read store
// owns the mapping to columns.
type Field string

const (
	FieldUserFullName  Field = "user_full_name"
	FieldUserFirstName Field = "user_first_name"
	FieldUserLastName  Field = "user_last_name"
	FieldUserID        Field = "user_id"
	FieldTelescopeID   Field = "telescope_id"
	FieldStartTime     Field = "start_time"
	FieldEndTime       Field = "end_time"
	FieldStatus        Field = "status"
	FieldIsPublic      Field = "is_public"
)

type Op string

const (
	OpEq    Op = "="
	OpNe    Op = "<>"
	OpGt    Op = ">"
	OpGte   Op = ">="
	OpLt    Op = "<"
	OpLte   Op = "<="
	OpILike Op = "ILIKE"
)

// Predicate is a node of a filter tree: Cond, And or Or.
type Predicate interface {
	isPredicate()
}

type Cond struct {
	Field Field
	Op    Op
	Value any
}

// And matches when every child matches. An empty And matches everything.
type And []Predicate

// Or matches when any child matches. An empty Or matches nothing.
type Or []Predicate

func (Cond) isPredicate() {}
func (And) isPredicate()  {}
func (Or) isPredicate()   {}

func Eq(f Field, v any) Cond {
	return Cond{Field: f, Op: OpEq, Value: v}
}

// AllOf drops nil children and flattens nested Ands.
func AllOf(preds ...Predicate) And {
	out := make(And, 0, len(preds))
	for _, p := range preds {
		switch v := p.(type) {
		case nil:
		case And:
			out = append(out, AllOf(v...)...)
		default:
			out = append(out, p)
		}
	}
	return out
}
