package model

import (
	"slices"
	"strconv"
	"strings"
)

// StyleSet is an immutable set of inline style tags kept in sorted order,
// so equal sets have one canonical form regardless of insertion order.
// The zero value is the empty set.
type StyleSet struct {
	tags []string
}

// NewStyleSet builds a set from tags. Empty tags and duplicates are dropped.
func NewStyleSet(tags ...string) StyleSet {
	if len(tags) == 0 {
		return StyleSet{}
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return StyleSet{}
	}
	return StyleSet{tags: out}
}

// Has reports whether tag is in the set.
func (s StyleSet) Has(tag string) bool {
	_, found := slices.BinarySearch(s.tags, tag)
	return found
}

// With returns the set with tag added.
func (s StyleSet) With(tag string) StyleSet {
	if tag == "" {
		return s
	}
	i, found := slices.BinarySearch(s.tags, tag)
	if found {
		return s
	}
	out := make([]string, 0, len(s.tags)+1)
	out = append(out, s.tags[:i]...)
	out = append(out, tag)
	out = append(out, s.tags[i:]...)
	return StyleSet{tags: out}
}

// Without returns the set with tag removed.
func (s StyleSet) Without(tag string) StyleSet {
	i, found := slices.BinarySearch(s.tags, tag)
	if !found {
		return s
	}
	if len(s.tags) == 1 {
		return StyleSet{}
	}
	out := make([]string, 0, len(s.tags)-1)
	out = append(out, s.tags[:i]...)
	out = append(out, s.tags[i+1:]...)
	return StyleSet{tags: out}
}

// Tags returns the tags in canonical order.
func (s StyleSet) Tags() []string {
	return slices.Clone(s.tags)
}

// Len returns the number of tags.
func (s StyleSet) Len() int {
	return len(s.tags)
}

// Equal reports whether both sets hold the same tags.
func (s StyleSet) Equal(other StyleSet) bool {
	return slices.Equal(s.tags, other.tags)
}

func (s StyleSet) String() string {
	return strings.Join(s.tags, ",")
}

// key is an unambiguous encoding of the set used for interning.
func (s StyleSet) key() string {
	if len(s.tags) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range s.tags {
		b.WriteString(strconv.Itoa(len(t)))
		b.WriteByte(':')
		b.WriteString(t)
	}
	return b.String()
}
