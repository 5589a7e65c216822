package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"github.com/mcclient/mcclient/internal/protoerr"
)

// predicate is the compiled form of an `mc-when` struct tag: a small
// boolean expression over fields declared earlier in the same record.
// Per spec, at minimum two shapes must be supported:
//
//   - comparison of a VarInt (or other integer) field against a literal
//     ("Count>0")
//   - an "is-present-and-satisfies" probe over an Optional field
//     ("NumComponentsAdd.Valid && NumComponentsAdd.Value>0")
type predicate struct {
	refFields []string
	eval      func(rec reflect.Value) (bool, error)
}

var (
	cmpPattern      = regexp.MustCompile(`^(\w+)\s*(==|!=|>=|<=|>|<)\s*(-?\d+)$`)
	presencePattern = regexp.MustCompile(`^(\w+)\.Valid(\s*&&\s*(\w+)\.Value\s*(==|!=|>=|<=|>|<)\s*(-?\d+))?$`)
)

func compare(op string, a, b int64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case "<":
		return a < b
	}
	return false
}

func fieldInt(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint()), true
	}
	return 0, false
}

// parsePredicate compiles an `mc-when` tag into a predicate.
func parsePredicate(tag string) (*predicate, error) {
	if m := cmpPattern.FindStringSubmatch(tag); m != nil {
		name, op, litStr := m[1], m[2], m[3]
		lit, err := strconv.ParseInt(litStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("schema: mc-when %q: %w", tag, err)
		}
		return &predicate{
			refFields: []string{name},
			eval: func(rec reflect.Value) (bool, error) {
				fv := rec.FieldByName(name)
				if !fv.IsValid() {
					return false, fmt.Errorf("schema: mc-when %q: no such field", tag)
				}
				n, ok := fieldInt(fv)
				if !ok {
					return false, fmt.Errorf("schema: mc-when %q: field %s is not an integer", tag, name)
				}
				return compare(op, n, lit), nil
			},
		}, nil
	}

	if m := presencePattern.FindStringSubmatch(tag); m != nil {
		name := m[1]
		hasValueClause := m[2] != ""
		op, litStr := m[4], m[5]
		var lit int64
		if hasValueClause {
			var err error
			lit, err = strconv.ParseInt(litStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("schema: mc-when %q: %w", tag, err)
			}
		}
		return &predicate{
			refFields: []string{name},
			eval: func(rec reflect.Value) (bool, error) {
				fv := rec.FieldByName(name)
				if !fv.IsValid() {
					return false, fmt.Errorf("schema: mc-when %q: no such field", tag)
				}
				validField := fv.FieldByName("Valid")
				if !validField.IsValid() || validField.Kind() != reflect.Bool {
					return false, fmt.Errorf("schema: mc-when %q: %s is not Optional-shaped", tag, name)
				}
				if !validField.Bool() {
					return false, nil
				}
				if !hasValueClause {
					return true, nil
				}
				valField := fv.FieldByName("Value")
				n, ok := fieldInt(valField)
				if !ok {
					return false, fmt.Errorf("schema: mc-when %q: %s.Value is not an integer", tag, name)
				}
				return compare(op, n, lit), nil
			},
		}, nil
	}

	return nil, fmt.Errorf("schema: %w (unrecognized mc-when expression %q)", protoerr.ErrMalformed, tag)
}
