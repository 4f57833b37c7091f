// Package targetfilter implements the common predicate language used for
// query filtering by target type/values (spec §4.3).
package targetfilter

import (
	"errors"

	"github.com/openadr/vtn/internal/core/domain"
)

// ErrMissingCounterpart is returned by Parse when exactly one of
// targetType/targetValues is supplied.
var ErrMissingCounterpart = errors.New("target filter requires both targetType and targetValues, or neither")

// Filter is the parsed target-type/target-values pair from query
// parameters. A nil Filter means "no constraint".
type Filter struct {
	Type   string
	Values []string
}

// Parse validates the both-or-neither rule and returns the parsed filter,
// or nil when neither parameter was supplied (spec §4.3).
func Parse(targetType *string, targetValues []string) (*Filter, error) {
	hasType := targetType != nil && *targetType != ""
	hasValues := len(targetValues) > 0

	switch {
	case !hasType && !hasValues:
		return nil, nil
	case hasType != hasValues:
		return nil, ErrMissingCounterpart
	default:
		return &Filter{Type: *targetType, Values: targetValues}, nil
	}
}

// Matches reports whether targets satisfies f. A nil f matches everything.
func Matches(targets []domain.Target, f *Filter) bool {
	if f == nil {
		return true
	}
	return domain.HasTarget(targets, f.Type, f.Values)
}
