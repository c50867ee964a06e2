package parser

import (
	"slices"

	"github.com/yacobolo/hcss/internal/ast"
)

// ScopeID addresses a scope in a Scopes arena.
type ScopeID int

// NoScope is the parent of the root scope.
const NoScope ScopeID = -1

// MixinKind tells how a macro is expanded.
type MixinKind int

const (
	// MixinMacro is defined by @mixin and expanded by @include.
	MixinMacro MixinKind = iota
	// FunctionMacro is defined by @function and expanded at call sites in
	// values.
	FunctionMacro
)

// Mixin is a macro definition bound in a scope.
type Mixin struct {
	Kind     MixinKind
	Function *ast.FunctionDefinition // nil for a mixin without parameter list
	Body     []ast.ComponentValue
}

type scope struct {
	parent     ScopeID
	variables  map[string][]ast.ComponentValue
	atRules    map[string][]ast.ComponentValue
	mixins     map[string]*Mixin
	parameters []string
}

// Scopes is an arena of lexical scopes. Scopes are created with Push and
// released in reverse order of creation; a scope never outlives the parse
// call that pushed it.
type Scopes struct {
	entries []scope
}

// NewScopes returns an arena holding only the root scope.
func NewScopes() *Scopes {
	s := &Scopes{}
	s.Push(NoScope)
	return s
}

// Root returns the root scope.
func (s *Scopes) Root() ScopeID {
	return 0
}

// Push creates a child of parent.
func (s *Scopes) Push(parent ScopeID) ScopeID {
	s.entries = append(s.entries, scope{
		parent:    parent,
		variables: map[string][]ast.ComponentValue{},
		atRules:   map[string][]ast.ComponentValue{},
		mixins:    map[string]*Mixin{},
	})
	return ScopeID(len(s.entries) - 1)
}

// Release discards id and every scope created after it. The root scope is
// never released.
func (s *Scopes) Release(id ScopeID) {
	if id <= s.Root() || int(id) >= len(s.entries) {
		return
	}
	clear(s.entries[id:])
	s.entries = s.entries[:id]
}

// Len returns the number of live scopes.
func (s *Scopes) Len() int {
	return len(s.entries)
}

// Parent returns the parent of id, or NoScope for the root.
func (s *Scopes) Parent(id ScopeID) ScopeID {
	return s.entries[id].parent
}

// SetVariable binds name in id.
func (s *Scopes) SetVariable(id ScopeID, name string, value []ast.ComponentValue) {
	s.entries[id].variables[name] = value
}

// FindVariable looks name up from id outward. A parameter declared in a
// nearer scope without a bound value hides outer variables of the same name.
func (s *Scopes) FindVariable(id ScopeID, name string) ([]ast.ComponentValue, bool) {
	for ; id != NoScope; id = s.entries[id].parent {
		e := &s.entries[id]
		if v, ok := e.variables[name]; ok {
			return v, true
		}
		if slices.Contains(e.parameters, name) {
			return nil, false
		}
	}
	return nil, false
}

// SetParameters records the parameter names bound by the invocation owning
// id.
func (s *Scopes) SetParameters(id ScopeID, names []string) {
	s.entries[id].parameters = names
}

// SetAtRule binds a custom at-rule name in id.
func (s *Scopes) SetAtRule(id ScopeID, name string, value []ast.ComponentValue) {
	s.entries[id].atRules[name] = value
}

// FindAtRule looks a custom at-rule name up from id outward.
func (s *Scopes) FindAtRule(id ScopeID, name string) ([]ast.ComponentValue, bool) {
	for ; id != NoScope; id = s.entries[id].parent {
		if v, ok := s.entries[id].atRules[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetMixin binds a macro in id.
func (s *Scopes) SetMixin(id ScopeID, name string, m *Mixin) {
	s.entries[id].mixins[name] = m
}

// FindMixin looks a macro up from id outward.
func (s *Scopes) FindMixin(id ScopeID, name string) (*Mixin, bool) {
	for ; id != NoScope; id = s.entries[id].parent {
		if m, ok := s.entries[id].mixins[name]; ok {
			return m, true
		}
	}
	return nil, false
}
