package members

import (
	"errors"
	"sort"
	"strings"

	"quorum/internal/textutil"
)

// ErrRegistryClosed is returned when registering into a closed registry.
var ErrRegistryClosed = errors.New("member registry is closed")

// MemberKey is the canonical identity of a council member.
type MemberKey string

// Options controls name canonicalization.
type Options struct {
	// Mode is ModeSurname (default) or ModeFull.
	Mode string
	// Titles are honorific tokens dropped from the front of a name.
	Titles []string
	// Equivalences force one normalized key onto another.
	Equivalences map[string]string
}

// Registry is the append-only table of members seen across sessions.
type Registry struct {
	norm     normalizer
	keys     []MemberKey
	index    map[MemberKey]int
	variants map[MemberKey][]string
	closed   bool
}

// NewRegistry returns an empty, open registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		norm:     newNormalizer(opts),
		index:    make(map[MemberKey]int),
		variants: make(map[MemberKey][]string),
	}
}

// Canonicalize maps a raw name to its member key without registering it. It
// is total and idempotent: feeding a key back in returns the same key. Blank
// names yield "".
func (r *Registry) Canonicalize(raw string) MemberKey {
	return r.norm.key(raw)
}

// Register canonicalizes raw and records the member on first sight. Blank
// names are ignored and return "".
func (r *Registry) Register(raw string) (MemberKey, error) {
	key := r.norm.key(raw)
	if key == "" {
		return "", nil
	}
	if r.closed {
		return key, ErrRegistryClosed
	}
	if _, ok := r.index[key]; !ok {
		r.index[key] = len(r.keys)
		r.keys = append(r.keys, key)
	}
	spelling := textutil.CollapseSpace(raw)
	for _, seen := range r.variants[key] {
		if seen == spelling {
			return key, nil
		}
	}
	r.variants[key] = append(r.variants[key], spelling)
	return key, nil
}

// Close freezes the registry.
func (r *Registry) Close() { r.closed = true }

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool { return r.closed }

// Len returns the number of distinct members.
func (r *Registry) Len() int { return len(r.keys) }

// Contains reports whether key has been registered.
func (r *Registry) Contains(key MemberKey) bool {
	_, ok := r.index[key]
	return ok
}

// Keys returns member keys in registration order.
func (r *Registry) Keys() []MemberKey {
	out := make([]MemberKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// Variants returns the distinct raw spellings merged into key, in the order
// they were first seen.
func (r *Registry) Variants(key MemberKey) []string {
	return append([]string(nil), r.variants[key]...)
}

// Suspect is a pair of keys that probably denote the same person.
type Suspect struct {
	Short MemberKey
	Long  MemberKey
}

// minSuspectLength avoids flagging short keys such as "LE" against every
// "LE..." surname.
const minSuspectLength = 4

// SuspectedDuplicates lists key pairs where one key starts or ends with the
// other, e.g. BRACHET and BRACHETCONVERT. Pairs are sorted by Short then Long.
func (r *Registry) SuspectedDuplicates() []Suspect {
	var out []Suspect
	for _, a := range r.keys {
		if len(a) < minSuspectLength {
			continue
		}
		for _, b := range r.keys {
			if len(b) <= len(a) {
				continue
			}
			if strings.HasPrefix(string(b), string(a)) || strings.HasSuffix(string(b), string(a)) {
				out = append(out, Suspect{Short: a, Long: b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Short != out[j].Short {
			return out[i].Short < out[j].Short
		}
		return out[i].Long < out[j].Long
	})
	return out
}
