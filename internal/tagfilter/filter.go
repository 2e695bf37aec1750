// Package tagfilter decides whether OSM tags are wanted using an ordered
// list of rules. The first rule matching a tag wins; when none match the
// filter's default result is returned.
package tagfilter

import (
	"fmt"
	"strings"

	"github.com/paulmach/osm"
)

type keyMatch uint8

const (
	keyExact keyMatch = iota
	keyPrefix
)

type rule struct {
	key      string
	value    string
	match    keyMatch
	anyValue bool
	result   bool
}

func (r rule) matches(key, value string) bool {
	switch r.match {
	case keyPrefix:
		if !strings.HasPrefix(key, r.key) {
			return false
		}
	default:
		if key != r.key {
			return false
		}
	}
	return r.anyValue || value == r.value
}

// Filter is an ordered rule list. The zero value has no rules and a false
// default. A Filter is not safe for concurrent modification, but Match may
// be called concurrently once all rules are added.
type Filter struct {
	rules         []rule
	defaultResult bool
}

// New returns an empty filter that reports defaultResult for tags no rule
// matches.
func New(defaultResult bool) *Filter {
	return &Filter{defaultResult: defaultResult}
}

// Add appends a rule matching key with any value.
func (f *Filter) Add(result bool, key string) *Filter {
	f.rules = append(f.rules, rule{key: key, match: keyExact, anyValue: true, result: result})
	return f
}

// AddValue appends a rule matching exactly key=value.
func (f *Filter) AddValue(result bool, key, value string) *Filter {
	f.rules = append(f.rules, rule{key: key, value: value, match: keyExact, result: result})
	return f
}

// AddPrefix appends a rule matching every key starting with prefix, with
// any value.
func (f *Filter) AddPrefix(result bool, prefix string) *Filter {
	f.rules = append(f.rules, rule{key: prefix, match: keyPrefix, anyValue: true, result: result})
	return f
}

// Match reports the result of the first rule matching key and value, or the
// default result if no rule matches.
func (f *Filter) Match(key, value string) bool {
	for _, r := range f.rules {
		if r.matches(key, value) {
			return r.result
		}
	}
	return f.defaultResult
}

// MatchTag is Match for an osm.Tag.
func (f *Filter) MatchTag(t osm.Tag) bool {
	return f.Match(t.Key, t.Value)
}

// Any reports whether at least one of tags matches.
func (f *Filter) Any(tags osm.Tags) bool {
	for _, t := range tags {
		if f.MatchTag(t) {
			return true
		}
	}
	return false
}

// Select returns the tags that match, in their original order.
func (f *Filter) Select(tags osm.Tags) osm.Tags {
	var out osm.Tags
	for _, t := range tags {
		if f.MatchTag(t) {
			out = append(out, t)
		}
	}
	return out
}

// Default returns the result for tags no rule matches.
func (f *Filter) Default() bool { return f.defaultResult }

// Count returns the number of rules.
func (f *Filter) Count() int { return len(f.rules) }

// Empty reports whether the filter has no rules.
func (f *Filter) Empty() bool { return len(f.rules) == 0 }

// AddRule parses expr and appends the rule it describes:
//
//	key=value  the exact tag
//	key        the key with any value
//	prefix*    any key starting with prefix
func (f *Filter) AddRule(result bool, expr string) error {
	expr = strings.TrimSpace(expr)
	key, value, hasValue := strings.Cut(expr, "=")
	switch {
	case key == "" || key == "*":
		return fmt.Errorf("tag rule %q: empty key", expr)
	case hasValue && strings.HasSuffix(key, "*"):
		return fmt.Errorf("tag rule %q: key prefix rules cannot match a value", expr)
	case hasValue:
		f.AddValue(result, key, value)
	case strings.HasSuffix(key, "*"):
		f.AddPrefix(result, strings.TrimSuffix(key, "*"))
	default:
		f.Add(result, key)
	}
	return nil
}

// AddRules applies AddRule to every comma separated rule in list. Empty
// entries are skipped.
func (f *Filter) AddRules(result bool, list string) error {
	for _, expr := range strings.Split(list, ",") {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		if err := f.AddRule(result, expr); err != nil {
			return err
		}
	}
	return nil
}
