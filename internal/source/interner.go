package source

import (
	"fmt"

	"fortio.org/safecast"
)

// StringID names an interned string. NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner maps identifier names to small integer IDs so environments and
// field maps can be keyed without hashing the text again.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, adding it on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := StringID(n)
	// own copy, s may alias a file buffer
	owned := string([]byte(s))
	i.byID = append(i.byID, owned)
	i.index[owned] = id
	return id
}

// Lookup returns the text for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("invalid string ID %d", id))
	}
	return s
}

// Find returns the id of s without interning it.
func (i *Interner) Find(s string) (StringID, bool) {
	id, ok := i.index[s]
	return id, ok
}

// Len counts interned strings including the empty one.
func (i *Interner) Len() int {
	return len(i.byID)
}
