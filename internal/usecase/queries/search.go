package queries

import (
	"fmt"
	"strings"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"

	"github.com/google/uuid"
)

// Search keys accepted from callers.
const (
	SearchUserFullName  = "userFullName"
	SearchUserFirstName = "userFirstName"
	SearchUserLastName  = "userLastName"
	SearchTelescopeID   = "telescopeId"
	SearchStartAfter    = "startAfter"
	SearchEndBefore     = "endBefore"
	SearchStatus        = "status"
)

type SearchCriterion struct {
	Key   string
	Value string
}

// ParseSearch builds a predicate from ordered criteria. Separate criteria
// are ANDed. A key combining fields with '+' (or the space it decodes to)
// matches when any of its fields matches the value. Every unknown key and
// unusable value is reported under SEARCH and nothing is returned.
func ParseSearch(criteria []SearchCriterion) (Predicate, error) {
	var errs appointment.Errors
	if len(criteria) == 0 {
		errs.Add(appointment.TagSearch, "At least one search criterion is required")
		return nil, errs.Err()
	}

	preds := make(And, 0, len(criteria))
	for _, c := range criteria {
		keys := strings.FieldsFunc(c.Key, func(r rune) bool { return r == '+' || r == ' ' })
		value := strings.TrimSpace(c.Value)
		if len(keys) == 0 {
			errs.Add(appointment.TagSearch, "Search key is empty")
			continue
		}
		if value == "" {
			errs.Add(appointment.TagSearch, fmt.Sprintf("Missing value for %s", c.Key))
			continue
		}

		group := make(Or, 0, len(keys))
		for _, key := range keys {
			cond, err := keyCondition(key, value)
			if err != nil {
				errs.Add(appointment.TagSearch, err.Error())
				continue
			}
			group = append(group, cond)
		}
		if len(group) == 1 {
			preds = append(preds, group[0])
		} else if len(group) > 1 {
			preds = append(preds, group)
		}
	}

	if !errs.IsEmpty() {
		return nil, errs.Err()
	}
	return preds, nil
}

func keyCondition(key, value string) (Cond, error) {
	switch key {
	case SearchUserFullName:
		return Cond{Field: FieldUserFullName, Op: OpILike, Value: containsPattern(value)}, nil
	case SearchUserFirstName:
		return Cond{Field: FieldUserFirstName, Op: OpILike, Value: containsPattern(value)}, nil
	case SearchUserLastName:
		return Cond{Field: FieldUserLastName, Op: OpILike, Value: containsPattern(value)}, nil
	case SearchTelescopeID:
		id, err := uuid.Parse(value)
		if err != nil {
			return Cond{}, fmt.Errorf("invalid telescope id %q", value)
		}
		return Eq(FieldTelescopeID, id), nil
	case SearchStartAfter:
		t, err := parseSearchTime(value)
		if err != nil {
			return Cond{}, fmt.Errorf("invalid %s date %q", key, value)
		}
		return Cond{Field: FieldStartTime, Op: OpGte, Value: t}, nil
	case SearchEndBefore:
		t, err := parseSearchTime(value)
		if err != nil {
			return Cond{}, fmt.Errorf("invalid %s date %q", key, value)
		}
		return Cond{Field: FieldEndTime, Op: OpLte, Value: t}, nil
	case SearchStatus:
		s := appointment.Status(strings.ToUpper(value))
		if !s.IsValid() {
			return Cond{}, fmt.Errorf("invalid status %q", value)
		}
		return Eq(FieldStatus, s), nil
	default:
		return Cond{}, fmt.Errorf("unknown search key %q", key)
	}
}

func parseSearchTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}

// VisibleTo limits non-admin callers to public appointments and their own.
func VisibleTo(actor user.Actor) Predicate {
	if actor.IsAdmin() {
		return nil
	}
	return Or{Eq(FieldIsPublic, true), Eq(FieldUserID, actor.UserID)}
}
