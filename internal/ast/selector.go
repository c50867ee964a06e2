package ast

// SelectorList is a comma-separated list of complex selectors.
type SelectorList []ComplexSelector

// Combinator joins two compound selectors.
type Combinator int

// Combinators. CombinatorNone marks the first part of a complex selector
// that is not relative.
const (
	CombinatorNone Combinator = iota
	CombinatorDescendant
	CombinatorChild             // >
	CombinatorNextSibling       // +
	CombinatorSubsequentSibling // ~
)

func (c Combinator) String() string {
	switch c {
	case CombinatorDescendant:
		return " "
	case CombinatorChild:
		return ">"
	case CombinatorNextSibling:
		return "+"
	case CombinatorSubsequentSibling:
		return "~"
	}
	return ""
}

// ComplexSelector is a sequence of compound selectors joined by
// combinators. In a relative selector (the argument of :has) the first part
// may carry a combinator.
type ComplexSelector struct {
	Parts []ComplexPart
}

// ComplexPart is a compound selector with the combinator preceding it.
type ComplexPart struct {
	Combinator Combinator
	Compound   CompoundSelector
}

// CompoundSelector is an optional type selector followed by subclass
// selectors and trailing pseudo-elements.
type CompoundSelector struct {
	Nesting        bool // contains the nesting selector '&'
	Type           *TypeSelector
	Subclasses     []SubclassSelector
	PseudoElements []PseudoElementSelector
}

// Empty reports whether the compound has no component at all.
func (c CompoundSelector) Empty() bool {
	return !c.Nesting && c.Type == nil && len(c.Subclasses) == 0 && len(c.PseudoElements) == 0
}

// NsPrefix is the namespace part of a qualified name. Name is "" for the
// "|name" form and "*" for any namespace.
type NsPrefix struct {
	Name string
}

// WqName is a possibly namespace-qualified name.
type WqName struct {
	Prefix *NsPrefix
	Local  string
}

// TypeSelector matches elements by name. Name.Local is "*" for the
// universal selector.
type TypeSelector struct {
	Name WqName
}

// SubclassSelector is an IDSelector, ClassSelector, AttributeSelector or
// PseudoClassSelector.
type SubclassSelector interface {
	subclass()
}

func (IDSelector) subclass()          {}
func (ClassSelector) subclass()       {}
func (AttributeSelector) subclass()   {}
func (PseudoClassSelector) subclass() {}

// IDSelector is #name.
type IDSelector struct {
	Name string
}

// ClassSelector is .name.
type ClassSelector struct {
	Name string
}

// AttrMatcher is the operator of an attribute selector.
type AttrMatcher string

// Attribute operators. AttrExists is the bare [name] form.
const (
	AttrExists    AttrMatcher = ""
	AttrEquals    AttrMatcher = "="
	AttrIncludes  AttrMatcher = "~="
	AttrDash      AttrMatcher = "|="
	AttrPrefix    AttrMatcher = "^="
	AttrSuffix    AttrMatcher = "$="
	AttrSubstring AttrMatcher = "*="
)

// AttributeSelector is [name op value modifier].
type AttributeSelector struct {
	Name     WqName
	Matcher  AttrMatcher
	Value    string
	Quoted   bool   // value was a string token
	Modifier string // "i", "s" or ""
}

// PseudoClassSelector is :name or :name(arguments). For the selector-taking
// pseudo-classes (:is, :where, :not, :matches, :has) the arguments are
// parsed into Selectors; Relative is set for :has.
type PseudoClassSelector struct {
	Name      string
	Arguments [][]ComponentValue
	Selectors SelectorList
	Relative  bool
}

// PseudoElementSelector is ::name, optionally followed by pseudo-classes
// such as ::before:hover.
type PseudoElementSelector struct {
	Name          string
	Arguments     [][]ComponentValue
	PseudoClasses []PseudoClassSelector
}

// HasNesting reports whether any compound in l, including selector
// arguments of pseudo-classes, uses '&'.
func (l SelectorList) HasNesting() bool {
	for _, complex := range l {
		for _, part := range complex.Parts {
			if part.Compound.hasNesting() {
				return true
			}
		}
	}
	return false
}

func (c CompoundSelector) hasNesting() bool {
	if c.Nesting {
		return true
	}
	for _, sub := range c.Subclasses {
		if pc, ok := sub.(PseudoClassSelector); ok && pc.Selectors.HasNesting() {
			return true
		}
	}
	for _, pe := range c.PseudoElements {
		for _, pc := range pe.PseudoClasses {
			if pc.Selectors.HasNesting() {
				return true
			}
		}
	}
	return false
}

// ResolveNesting returns a copy of l in which every compound using '&' also
// carries :is(parent), making the selector independent of its enclosing
// rule. The Nesting flag is kept so that a printer can still emit '&'.
func (l SelectorList) ResolveNesting(parent SelectorList) SelectorList {
	if len(parent) == 0 || !l.HasNesting() {
		return l
	}
	out := make(SelectorList, len(l))
	for i, complex := range l {
		parts := make([]ComplexPart, len(complex.Parts))
		for j, part := range complex.Parts {
			parts[j] = ComplexPart{
				Combinator: part.Combinator,
				Compound:   part.Compound.resolveNesting(parent),
			}
		}
		out[i] = ComplexSelector{Parts: parts}
	}
	return out
}

func (c CompoundSelector) resolveNesting(parent SelectorList) CompoundSelector {
	subs := make([]SubclassSelector, 0, len(c.Subclasses)+1)
	if c.Nesting {
		subs = append(subs, PseudoClassSelector{Name: "is", Selectors: parent})
	}
	for _, sub := range c.Subclasses {
		if pc, ok := sub.(PseudoClassSelector); ok {
			sub = pc.resolveNesting(parent)
		}
		subs = append(subs, sub)
	}
	if len(subs) > 0 {
		c.Subclasses = subs
	}

	if len(c.PseudoElements) > 0 {
		elems := make([]PseudoElementSelector, len(c.PseudoElements))
		for i, pe := range c.PseudoElements {
			if len(pe.PseudoClasses) > 0 {
				classes := make([]PseudoClassSelector, len(pe.PseudoClasses))
				for j, pc := range pe.PseudoClasses {
					classes[j] = pc.resolveNesting(parent)
				}
				pe.PseudoClasses = classes
			}
			elems[i] = pe
		}
		c.PseudoElements = elems
	}
	return c
}

func (pc PseudoClassSelector) resolveNesting(parent SelectorList) PseudoClassSelector {
	if len(pc.Selectors) > 0 {
		pc.Selectors = pc.Selectors.ResolveNesting(parent)
	}
	return pc
}
