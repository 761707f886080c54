package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// The messages of these errors are shown to users as they are.
var (
	ErrInvalidEnvelopeID   = errors.New("Invalid envelope ID")
	ErrInvalidEnvelopeData = errors.New("Invalid envelope data")
	ErrDuplicateID         = errors.New("Envelope with this ID already exists")
	ErrNotFound            = errors.New("Envelope not found")
)

// ValidationError lists the problems found in user input, keyed by the
// JSON name of the field.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}

	return fmt.Sprintf("%s: %s", ErrInvalidEnvelopeData, strings.Join(msgs, ", "))
}

// Is makes every ValidationError match ErrInvalidEnvelopeData.
func (v *ValidationError) Is(target error) bool {
	return target == ErrInvalidEnvelopeData
}

func (v *ValidationError) add(field, msg string) {
	if v.Fields == nil {
		v.Fields = map[string]string{}
	}

	// Keep the first problem per field, it is usually the most basic one
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = msg
	}
}
