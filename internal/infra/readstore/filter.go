package readstore

import (
	"fmt"
	"strconv"
	"strings"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/usecase/queries"
)

var appointmentColumns = map[queries.Field]string{
	queries.FieldUserFullName:  "(u.first_name || ' ' || u.last_name)",
	queries.FieldUserFirstName: "u.first_name",
	queries.FieldUserLastName:  "u.last_name",
	queries.FieldUserID:        "a.user_id",
	queries.FieldTelescopeID:   "a.telescope_id",
	queries.FieldStartTime:     "a.start_time",
	queries.FieldEndTime:       "a.end_time",
	queries.FieldStatus:        "a.status",
	queries.FieldIsPublic:      "a.is_public",
}

var allowedOps = map[queries.Op]bool{
	queries.OpEq:    true,
	queries.OpNe:    true,
	queries.OpGt:    true,
	queries.OpGte:   true,
	queries.OpLt:    true,
	queries.OpLte:   true,
	queries.OpILike: true,
}

// sqlBuilder accumulates positional arguments while rendering a predicate tree.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) render(p queries.Predicate) (string, error) {
	switch p := p.(type) {
	case nil:
		return "TRUE", nil
	case queries.Cond:
		return b.renderCond(p)
	case queries.And:
		return b.renderGroup([]queries.Predicate(p), " AND ", "TRUE")
	case queries.Or:
		return b.renderGroup([]queries.Predicate(p), " OR ", "FALSE")
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

func (b *sqlBuilder) renderGroup(children []queries.Predicate, sep, empty string) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, c := range children {
		s, err := b.render(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (b *sqlBuilder) renderCond(c queries.Cond) (string, error) {
	col, ok := appointmentColumns[c.Field]
	if !ok {
		return "", fmt.Errorf("unknown field %q", c.Field)
	}
	if !allowedOps[c.Op] {
		return "", fmt.Errorf("unknown operator %q", c.Op)
	}

	value := c.Value
	switch v := value.(type) {
	case appointment.Status:
		value = v.String()
	case appointment.Priority:
		value = v.String()
	case appointment.Type:
		value = v.String()
	}

	expr := col + " " + string(c.Op) + " " + b.bind(value)
	if c.Op == queries.OpILike {
		expr += ` ESCAPE '\'`
	}
	return expr, nil
}

// keysetClause continues a (start_time, id) ordering after the given key.
func (b *sqlBuilder) keysetClause(after *queries.Keyset, order queries.SortOrder) string {
	if after == nil {
		return "TRUE"
	}
	cmp := ">"
	if order == queries.SortDesc {
		cmp = "<"
	}
	return "(a.start_time, a.id) " + cmp + " (" + b.bind(after.Time) + ", " + b.bind(after.ID) + ")"
}

func orderClause(order queries.SortOrder) string {
	if order == queries.SortDesc {
		return "a.start_time DESC, a.id DESC"
	}
	return "a.start_time ASC, a.id ASC"
}
