// Package changetrack computes human-readable field change entries between
// two snapshots of an editable record. Entries become audit comments.
package changetrack

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Empty is rendered in place of a blank or missing value.
const Empty = "—"

// Entry describes one changed field.
type Entry struct {
	Field    string
	OldValue string
	NewValue string
	Actor    string
}

// String renders the audit comment line for the entry.
func (e Entry) String() string {
	return fmt.Sprintf("%s changed %s from %q to %q", e.Actor, e.Field, e.OldValue, e.NewValue)
}

// Diff returns one entry per key whose value differs between old and new.
// List values compare order-insensitively but duplicate-sensitively; all
// other values compare by strict equality. Keys are visited in sorted
// order so the output is deterministic.
func Diff(actor string, old, new map[string]any) []Entry {
	keys := make([]string, 0, len(new))
	for key := range new {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var entries []Entry
	for _, key := range keys {
		oldVal, newVal := old[key], new[key]
		if valuesEqual(oldVal, newVal) {
			continue
		}
		entries = append(entries, Entry{
			Field:    key,
			OldValue: render(oldVal),
			NewValue: render(newVal),
			Actor:    actor,
		})
	}
	return entries
}

func valuesEqual(a, b any) bool {
	as, aok := toStringSlice(a)
	bs, bok := toStringSlice(b)
	if aok && bok {
		if len(as) != len(bs) {
			return false
		}
		sort.Strings(as)
		sort.Strings(bs)
		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}
		return true
	}
	if aok != bok {
		// A list never equals a scalar, except that an empty list and a
		// missing value are both "nothing".
		return isEmpty(a) && isEmpty(b)
	}
	return reflect.DeepEqual(a, b)
}

// toStringSlice copies slice values so sorting never touches the caller's
// data.
func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...), true
	case []any:
		out := make([]string, len(s))
		for i, item := range s {
			out[i] = fmt.Sprint(item)
		}
		return out, true
	}
	return nil, false
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}

func render(v any) string {
	if isEmpty(v) {
		return Empty
	}
	if s, ok := toStringSlice(v); ok {
		return strings.Join(s, ", ")
	}
	return fmt.Sprint(v)
}
