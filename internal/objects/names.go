package objects

// nameEntry is one owned name string held by a NamePool
type nameEntry struct {
	id       uint32
	value    string
	released bool
}

// Name is a shared handle to a pooled name. Copies of a Name borrow the same
// entry; only the pool that produced it may release it.
type Name struct {
	e *nameEntry
}

// String returns the name text, or "" for the zero Name
func (n Name) String() string {
	if n.e == nil {
		return ""
	}
	return n.e.value
}

// IsZero reports whether n refers to no entry
func (n Name) IsZero() bool {
	return n.e == nil
}

// Same reports whether n and o are handles to the same pooled entry.
// Two distinct entries holding equal text are not the same.
func (n Name) Same(o Name) bool {
	return n.e != nil && n.e == o.e
}

// ID returns the pool id of the entry, 0 for the zero Name
func (n Name) ID() uint32 {
	if n.e == nil {
		return 0
	}
	return n.e.id
}

// NamePool owns every primary name and every separately supplied optional
// name of a store. Each entry is released exactly once at teardown; a second
// release is counted as a violation instead of being applied.
//
// NOTE: NamePool is not synchronized. It is mutated only while the store is
// being built or torn down.
type NamePool struct {
	entries        []*nameEntry
	live           int
	doubleReleases int
}

// NewNamePool creates a pool with room for expectedSize names
func NewNamePool(expectedSize int) *NamePool {
	return &NamePool{entries: make([]*nameEntry, 0, expectedSize)}
}

// Own stores s as a new owned entry and returns its handle
func (p *NamePool) Own(s string) Name {
	e := &nameEntry{id: uint32(len(p.entries)) + 1, value: s}
	p.entries = append(p.entries, e)
	p.live++
	return Name{e: e}
}

// Release gives up ownership of n. It returns false, and records a
// violation, if n was already released.
func (p *NamePool) Release(n Name) bool {
	if n.e == nil {
		return false
	}
	if n.e.released {
		p.doubleReleases++
		return false
	}
	n.e.released = true
	p.live--
	return true
}

// Live returns the number of entries not yet released
func (p *NamePool) Live() int {
	return p.live
}

// Len returns the number of entries ever owned by the pool
func (p *NamePool) Len() int {
	return len(p.entries)
}

// DoubleReleases returns the number of rejected second releases
func (p *NamePool) DoubleReleases() int {
	return p.doubleReleases
}

// Reset drops every entry. Handles still held elsewhere keep their text.
func (p *NamePool) Reset() {
	p.entries = nil
	p.live = 0
	p.doubleReleases = 0
}

// OptionalName is a field that is either its own owned name or an alias of
// the entity's primary name.
type OptionalName struct {
	owned   Name
	aliased bool
}

// AliasOfPrimary returns an OptionalName that reads back as the primary name
func AliasOfPrimary() OptionalName {
	return OptionalName{aliased: true}
}

// OwnedName returns an OptionalName holding its own entry
func OwnedName(n Name) OptionalName {
	return OptionalName{owned: n}
}

// IsAlias reports whether the field aliases the primary name
func (o OptionalName) IsAlias() bool {
	return o.aliased || o.owned.IsZero()
}

// Owned returns the owned entry, if any
func (o OptionalName) Owned() (Name, bool) {
	if o.IsAlias() {
		return Name{}, false
	}
	return o.owned, true
}

// Resolve returns the field text, falling back to primary for an alias
func (o OptionalName) Resolve(primary Name) string {
	if o.IsAlias() {
		return primary.String()
	}
	return o.owned.String()
}

// optionalName owns s in pool, or aliases the primary name when s is empty
func optionalName(pool *NamePool, s string) OptionalName {
	if s == "" {
		return AliasOfPrimary()
	}
	return OwnedName(pool.Own(s))
}

// release frees the owned entry of o, if any, and reports whether it did
func (o OptionalName) release(pool *NamePool) bool {
	if n, ok := o.Owned(); ok {
		return pool.Release(n)
	}
	return false
}
