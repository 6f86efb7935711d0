package symtab

import "github.com/dolthub/swiss"

// scopeInitialSize is the initial capacity hint for a scope's backing map;
// most blocks declare a handful of names.
const scopeInitialSize = 8

// Scope is a mapping from name to Entry, owned by exactly one ScopeStack
// frame. Insertion order is irrelevant; names are unique within one scope
// but may shadow an entry of the same name in an enclosing scope.
type Scope struct {
	names *swiss.Map[string, *Entry]
}

func newScope() *Scope {
	return &Scope{names: swiss.NewMap[string, *Entry](scopeInitialSize)}
}

// declare inserts e, returning false without modifying the scope if Name is
// already present.
func (s *Scope) declare(e *Entry) bool {
	if _, ok := s.names.Get(e.Name); ok {
		return false
	}
	s.names.Put(e.Name, e)
	return true
}

func (s *Scope) lookup(name string) (*Entry, bool) {
	return s.names.Get(name)
}

// ScopeStack is an ordered sequence of scopes, innermost at the top. Name
// resolution walks from the top down, returning the first hit; a closed
// scope is never consulted again, and its entries are released with it.
type ScopeStack struct {
	scopes []*Scope
}

// Open pushes a new, empty scope.
func (ss *ScopeStack) Open() {
	ss.scopes = append(ss.scopes, newScope())
}

// Close pops the top scope, discarding its entries.
func (ss *ScopeStack) Close() {
	ss.scopes = ss.scopes[:len(ss.scopes)-1]
}

// Depth returns the number of currently open scopes.
func (ss *ScopeStack) Depth() int {
	return len(ss.scopes)
}

// Declare inserts e into the innermost open scope. It reports false if name
// is already declared in that same scope (shadowing an outer scope is not
// an error and is not reported here).
func (ss *ScopeStack) Declare(e *Entry) bool {
	return ss.scopes[len(ss.scopes)-1].declare(e)
}

// Lookup searches from the innermost scope outward and returns the first
// match.
func (ss *ScopeStack) Lookup(name string) (*Entry, bool) {
	for i := len(ss.scopes) - 1; i >= 0; i-- {
		if e, ok := ss.scopes[i].lookup(name); ok {
			return e, true
		}
	}
	return nil, false
}
