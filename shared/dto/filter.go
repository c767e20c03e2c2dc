package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter renders one named-parameter condition. ArgName defaults to Field and
// must be set when two filters in a group touch the same column.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	if symbol, ok := comparisons[f.Operator]; ok {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, symbol, argName), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[argName] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, argName), args
	case FilterOperatorIn:
		values := reflect.ValueOf(f.Value)
		if values.Kind() != reflect.Slice && values.Kind() != reflect.Array {
			return "", args
		}

		// IN () is invalid SQL; an empty set matches nothing
		if values.Len() == 0 {
			return "FALSE", args
		}

		named := make([]string, values.Len())

		for idx := range values.Len() {
			name := fmt.Sprintf("%s_%d", argName, idx)
			args[name] = values.Index(idx).Interface()
			named[idx] = ":" + name
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	default:
		return "", args
	}
}

// FilterGroup joins Filters and nested FilterGroups with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch item := filter.(type) {
		case Filter:
			where, arg = item.GetWhereClause()
		case FilterGroup:
			where, arg = item.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+operator+" ")), args
}

// AddEqIfPresent appends an equality filter on table.field unless value is empty.
func (f *FilterGroup) AddEqIfPresent(field, table string, value any) {
	f.addIfPresent(FilterOperatorEq, field, table, value)
}

// AddLikeIfPresent appends a case-insensitive substring match unless value is empty.
func (f *FilterGroup) AddLikeIfPresent(field, table string, value string) {
	f.addIfPresent(FilterOperatorLike, field, table, value)
}

func (f *FilterGroup) addIfPresent(operator, field, table string, value any) {
	if value == nil || value == "" {
		return
	}

	if ptr := reflect.ValueOf(value); ptr.Kind() == reflect.Pointer {
		if ptr.IsNil() {
			return
		}

		value = ptr.Elem().Interface()
	}

	if f.Operator == "" {
		f.Operator = FilterGroupOperatorAnd
	}

	f.Filters = append(f.Filters, Filter{
		Field:    field,
		Value:    value,
		Operator: operator,
		Table:    table,
	})
}
