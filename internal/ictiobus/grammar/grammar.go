// Package grammar provides types for defining and manipulating context-free
// grammars, including the classic transformations (epsilon removal, unit
// production removal, left recursion removal, left factoring) and the set
// computations (FIRST, FOLLOW) needed to build predictive and LR parse
// tables.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/phpsyn/internal/ictiobus/types"
	"github.com/dekarrin/phpsyn/internal/util"
)

// Production is a single right-hand side alternative for a grammar rule, as
// an ordered sequence of symbol names. A Production with no elements, or
// with a single empty-string element, represents an epsilon production.
type Production []string

// Epsilon is the canonical epsilon production. Productions are compared
// against it with Equal, not ==, since a nil and an empty-but-non-nil slice
// are semantically the same epsilon production.
var Epsilon = Production{""}

// IsEpsilon returns whether p represents the empty production.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		return false
	}
	pn, on := p.normalized(), other.normalized()
	if len(pn) != len(on) {
		return false
	}
	for i := range pn {
		if pn[i] != on[i] {
			return false
		}
	}
	return true
}

func (p Production) normalized() Production {
	if len(p) == 0 {
		return Epsilon
	}
	if len(p) == 1 && p[0] == "" {
		return Epsilon
	}
	return p
}

// IsEpsilon returns whether this production is the empty production.
func (p Production) IsEpsilon() bool {
	n := p.normalized()
	return len(n) == 1 && n[0] == ""
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return "ε"
	}
	return strings.Join(p, " ")
}

func (p Production) Copy() Production {
	cp := make(Production, len(p))
	copy(cp, p)
	return cp
}

// Rule is a single nonterminal and all of the productions it may expand to.
type Rule struct {
	NonTerminal string
	Productions []Production
}

func (r Rule) String() string {
	alts := make([]string, len(r.Productions))
	for i := range r.Productions {
		alts[i] = r.Productions[i].String()
	}
	return fmt.Sprintf("%s -> %s", r.NonTerminal, strings.Join(alts, " | "))
}

func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		return false
	}
	if r.NonTerminal != other.NonTerminal {
		return false
	}
	if len(r.Productions) != len(other.Productions) {
		return false
	}
	for i := range r.Productions {
		if !r.Productions[i].Equal(other.Productions[i]) {
			return false
		}
	}
	return true
}

// HasProduction returns whether p is already one of r's alternatives.
func (r Rule) HasProduction(p Production) bool {
	for _, alt := range r.Productions {
		if alt.Equal(p) {
			return true
		}
	}
	return false
}

func (r Rule) removeProduction(p Production) Rule {
	newProds := make([]Production, 0, len(r.Productions))
	for _, alt := range r.Productions {
		if !alt.Equal(p) {
			newProds = append(newProds, alt)
		}
	}
	r.Productions = newProds
	return r
}

// Grammar is a context-free grammar made up of a set of terminal symbols
// (backed by their token classes) and an ordered set of rules over
// nonterminal symbols. The zero value is an empty, usable Grammar.
type Grammar struct {
	rules      []Rule
	terminals  map[string]types.TokenClass
	termOrder  []string
	uniqueNum  int
}

// AddTerm registers a terminal symbol with the grammar under the given id,
// associated with the token class that produces it during lexing.
func (g *Grammar) AddTerm(id string, cl types.TokenClass) {
	if g.terminals == nil {
		g.terminals = map[string]types.TokenClass{}
	}
	if _, ok := g.terminals[id]; !ok {
		g.termOrder = append(g.termOrder, id)
	}
	g.terminals[id] = cl
}

// Term returns the token class registered for the given terminal symbol, or
// the zero value if none is registered.
func (g Grammar) Term(id string) types.TokenClass {
	return g.terminals[id]
}

// TermFor returns the terminal symbol name that corresponds to the given
// token class, or "" if none is registered.
func (g Grammar) TermFor(cl types.TokenClass) string {
	for id, c := range g.terminals {
		if c.Equal(cl) {
			return id
		}
	}
	return ""
}

// IsTerminal returns whether sym is a registered terminal symbol.
func (g Grammar) IsTerminal(sym string) bool {
	_, ok := g.terminals[sym]
	return ok
}

// IsNonTerminal returns whether sym names a rule in the grammar.
func (g Grammar) IsNonTerminal(sym string) bool {
	for _, r := range g.rules {
		if r.NonTerminal == sym {
			return true
		}
	}
	return false
}

// AddRule adds prod as an alternative of nonterminal nt, creating the rule
// for nt if this is its first production. Rule and nonterminal order is
// preserved in first-added order; StartSymbol relies on this.
func (g *Grammar) AddRule(nt string, prod Production) {
	for i := range g.rules {
		if g.rules[i].NonTerminal == nt {
			if !g.rules[i].HasProduction(prod) {
				g.rules[i].Productions = append(g.rules[i].Productions, prod)
			}
			return
		}
	}
	g.rules = append(g.rules, Rule{NonTerminal: nt, Productions: []Production{prod}})
}

// Rule returns the rule for the given nonterminal, or the zero Rule if none
// is defined.
func (g Grammar) Rule(nt string) Rule {
	for _, r := range g.rules {
		if r.NonTerminal == nt {
			return r
		}
	}
	return Rule{}
}

func (g *Grammar) setRule(r Rule) {
	for i := range g.rules {
		if g.rules[i].NonTerminal == r.NonTerminal {
			g.rules[i] = r
			return
		}
	}
	g.rules = append(g.rules, r)
}

func (g *Grammar) removeRule(nt string) {
	newRules := make([]Rule, 0, len(g.rules))
	for _, r := range g.rules {
		if r.NonTerminal != nt {
			newRules = append(newRules, r)
		}
	}
	g.rules = newRules
}

// NonTerminals returns the nonterminal names in the grammar, in the order
// their rules were first added.
func (g Grammar) NonTerminals() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.NonTerminal
	}
	return names
}

// Terminals returns the terminal symbol names registered with the grammar.
func (g Grammar) Terminals() []string {
	names := make([]string, len(g.termOrder))
	copy(names, g.termOrder)
	return names
}

// StartSymbol returns the nonterminal of the first rule added to the
// grammar, which by convention is the start symbol.
func (g Grammar) StartSymbol() string {
	if len(g.rules) == 0 {
		return ""
	}
	return g.rules[0].NonTerminal
}

// Copy returns a deep copy of the grammar.
func (g Grammar) Copy() Grammar {
	cp := Grammar{
		rules:     make([]Rule, len(g.rules)),
		terminals: make(map[string]types.TokenClass, len(g.terminals)),
		termOrder: make([]string, len(g.termOrder)),
		uniqueNum: g.uniqueNum,
	}
	for i, r := range g.rules {
		prods := make([]Production, len(r.Productions))
		for j, p := range r.Productions {
			prods[j] = p.Copy()
		}
		cp.rules[i] = Rule{NonTerminal: r.NonTerminal, Productions: prods}
	}
	for k, v := range g.terminals {
		cp.terminals[k] = v
	}
	copy(cp.termOrder, g.termOrder)
	return cp
}

// Augmented returns a copy of the grammar with a new start rule S' -> S
// added, where S is the current start symbol. This is the first step of
// canonical LR automaton construction.
func (g Grammar) Augmented() Grammar {
	cp := g.Copy()
	oldStart := g.StartSymbol()
	newStart := oldStart + "-START"
	for cp.IsNonTerminal(newStart) || cp.IsTerminal(newStart) {
		newStart += "'"
	}
	cp.rules = append([]Rule{{NonTerminal: newStart, Productions: []Production{{oldStart}}}}, cp.rules...)
	return cp
}

// GenerateUniqueTerminal returns a terminal symbol name beginning with
// prefix that is not already in use in the grammar, and registers it with a
// default token class.
func (g *Grammar) GenerateUniqueTerminal(prefix string) string {
	candidate := prefix
	for g.IsTerminal(candidate) || g.IsNonTerminal(candidate) {
		candidate = fmt.Sprintf("%s%d", prefix, g.uniqueNum)
		g.uniqueNum++
	}
	g.AddTerm(candidate, types.MakeDefaultClass(candidate))
	return candidate
}

// Validate checks that the grammar is well-formed: it must have at least one
// terminal, at least one rule, and every symbol referenced by a production
// must be either a registered terminal or a defined nonterminal.
func (g Grammar) Validate() error {
	if len(g.terminals) == 0 {
		return fmt.Errorf("grammar has no terminals defined")
	}
	if len(g.rules) == 0 {
		return fmt.Errorf("grammar has no rules defined")
	}

	for _, r := range g.rules {
		for _, p := range r.Productions {
			if p.IsEpsilon() {
				continue
			}
			for _, sym := range p {
				if sym == "" {
					continue
				}
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					return fmt.Errorf("rule %q references undefined symbol %q", r.NonTerminal, sym)
				}
			}
		}
	}

	return nil
}

func (g Grammar) String() string {
	var sb strings.Builder
	for i, r := range g.rules {
		sb.WriteString(r.String())
		if i != len(g.rules)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FIRST computes the FIRST set of sym: the set of terminals (and possibly
// epsilon) that can begin a string derived from sym.
func (g Grammar) FIRST(sym string) util.ISet[string] {
	return g.first(sym, util.NewStringSet())
}

func (g Grammar) first(sym string, visiting util.StringSet) util.ISet[string] {
	set := util.NewStringSet()

	if sym == "" {
		set.Add(Epsilon[0])
		return set
	}

	if g.IsTerminal(sym) {
		set.Add(sym)
		return set
	}

	if visiting.Has(sym) {
		return set
	}
	visiting.Add(sym)

	r := g.Rule(sym)
	for _, p := range r.Productions {
		if p.IsEpsilon() {
			set.Add(Epsilon[0])
			continue
		}

		allDeriveEpsilon := true
		for _, s := range p {
			symFirst := g.first(s, visiting)
			for _, f := range symFirst.Elements() {
				if f != Epsilon[0] {
					set.Add(f)
				}
			}
			if !symFirst.Has(Epsilon[0]) {
				allDeriveEpsilon = false
				break
			}
		}
		if allDeriveEpsilon {
			set.Add(Epsilon[0])
		}
	}

	return set
}

// firstOfSequence computes FIRST of a sequence of symbols.
func (g Grammar) firstOfSequence(seq []string) util.ISet[string] {
	set := util.NewStringSet()
	if len(seq) == 0 {
		set.Add(Epsilon[0])
		return set
	}

	allDeriveEpsilon := true
	for _, s := range seq {
		symFirst := g.FIRST(s)
		for _, f := range symFirst.Elements() {
			if f != Epsilon[0] {
				set.Add(f)
			}
		}
		if !symFirst.Has(Epsilon[0]) {
			allDeriveEpsilon = false
			break
		}
	}
	if allDeriveEpsilon {
		set.Add(Epsilon[0])
	}

	return set
}

// FOLLOW computes the FOLLOW set of nonterminal sym: the set of terminals
// (and possibly the end marker "$") that can immediately follow sym in some
// derivation from the start symbol.
func (g Grammar) FOLLOW(sym string) util.ISet[string] {
	follow := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals() {
		follow[nt] = util.NewStringSet()
	}
	if len(g.rules) > 0 {
		follow[g.StartSymbol()].Add("$")
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			for _, p := range r.Productions {
				for i, s := range p {
					if !g.IsNonTerminal(s) {
						continue
					}
					beta := p[i+1:]
					betaFirst := g.firstOfSequence(beta)

					for _, f := range betaFirst.Elements() {
						if f == Epsilon[0] {
							continue
						}
						if !follow[s].Has(f) {
							follow[s].Add(f)
							changed = true
						}
					}

					if betaFirst.Has(Epsilon[0]) {
						for _, f := range follow[r.NonTerminal].Elements() {
							if !follow[s].Has(f) {
								follow[s].Add(f)
								changed = true
							}
						}
					}
				}
			}
		}
	}

	if _, ok := follow[sym]; !ok {
		return util.NewStringSet()
	}
	return follow[sym]
}

// RemoveEpsilons returns a copy of the grammar with all epsilon productions
// removed (save for a possible epsilon production on the start symbol),
// using the standard algorithm of computing the nullable set and then
// generating every production with nullable symbols optionally elided.
func (g Grammar) RemoveEpsilons() Grammar {
	cp := g.Copy()

	nullable := util.NewStringSet()
	changed := true
	for changed {
		changed = false
		for _, r := range cp.rules {
			if nullable.Has(r.NonTerminal) {
				continue
			}
			for _, p := range r.Productions {
				if p.IsEpsilon() {
					nullable.Add(r.NonTerminal)
					changed = true
					break
				}
				allNullable := true
				for _, s := range p {
					if !nullable.Has(s) {
						allNullable = false
						break
					}
				}
				if allNullable && len(p) > 0 {
					nullable.Add(r.NonTerminal)
					changed = true
					break
				}
			}
		}
	}

	for i, r := range cp.rules {
		seen := map[string]bool{}
		var newProds []Production
		for _, p := range r.Productions {
			if p.IsEpsilon() {
				continue
			}
			for _, variant := range expandNullableVariants(p, nullable) {
				if len(variant) == 0 {
					continue
				}
				key := strings.Join(variant, " \x00 ")
				if seen[key] {
					continue
				}
				seen[key] = true
				newProds = append(newProds, variant)
			}
		}
		if len(newProds) == 0 {
			newProds = []Production{Epsilon.Copy()}
		}
		cp.rules[i].Productions = newProds
	}

	return cp
}

// expandNullableVariants generates every production obtainable from p by
// independently including or excluding each symbol that is nullable.
func expandNullableVariants(p Production, nullable util.StringSet) []Production {
	variants := []Production{{}}

	for _, sym := range p {
		var next []Production
		for _, v := range variants {
			withSym := append(append(Production{}, v...), sym)
			next = append(next, withSym)
			if nullable.Has(sym) {
				without := append(Production{}, v...)
				next = append(next, without)
			}
		}
		variants = next
	}

	// preserve original relative order, longest-first isn't required but
	// dedup in caller handles duplicates from different nullable choices.
	return variants
}

// RemoveUnitProductions returns a copy of the grammar with all unit
// productions (A -> B where B is a single nonterminal) eliminated by
// substituting B's productions directly into A.
func (g Grammar) RemoveUnitProductions() Grammar {
	cp := g.Copy()

	for _, nt := range cp.NonTerminals() {
		resolved := util.NewStringSet()
		var collected []Production
		seen := map[string]bool{}

		var visit func(name string)
		visit = func(name string) {
			if resolved.Has(name) {
				return
			}
			resolved.Add(name)
			r := cp.Rule(name)
			for _, p := range r.Productions {
				if len(p) == 1 && cp.IsNonTerminal(p[0]) {
					visit(p[0])
					continue
				}
				key := p.String()
				if !seen[key] {
					seen[key] = true
					collected = append(collected, p)
				}
			}
		}
		visit(nt)

		cp.setRule(Rule{NonTerminal: nt, Productions: collected})
	}

	return cp
}

// RemoveLeftRecursion returns a copy of the grammar with all left recursion
// (direct and indirect) eliminated, using the standard ordered-nonterminal
// algorithm. Indirect recursion is resolved by substitution in nonterminal
// order; immediate recursion on each nonterminal is then factored into a new
// right-recursive primed nonterminal, suffixed "-P".
func (g Grammar) RemoveLeftRecursion() Grammar {
	cp := g.RemoveEpsilons()
	nts := cp.NonTerminals()

	for i := 0; i < len(nts); i++ {
		Ai := nts[i]
		for j := 0; j < i; j++ {
			Aj := nts[j]
			rule := cp.Rule(Ai)
			var newProds []Production
			for _, p := range rule.Productions {
				if len(p) > 0 && p[0] == Aj {
					ajRule := cp.Rule(Aj)
					for _, ajProd := range ajRule.Productions {
						substituted := append(append(Production{}, ajProd...), p[1:]...)
						newProds = append(newProds, substituted)
					}
				} else {
					newProds = append(newProds, p)
				}
			}
			cp.setRule(Rule{NonTerminal: Ai, Productions: newProds})
		}

		rule := cp.Rule(Ai)
		var recursive, nonRecursive []Production
		for _, p := range rule.Productions {
			if len(p) > 0 && p[0] == Ai {
				recursive = append(recursive, p[1:])
			} else {
				nonRecursive = append(nonRecursive, p)
			}
		}

		if len(recursive) == 0 {
			continue
		}

		primed := Ai + "-P"
		for cp.IsNonTerminal(primed) {
			primed += "P"
		}

		var baseProds []Production
		for _, p := range nonRecursive {
			baseProds = append(baseProds, append(append(Production{}, p...), primed))
		}
		var primedProds []Production
		for _, p := range recursive {
			primedProds = append(primedProds, append(append(Production{}, p...), primed))
		}
		primedProds = append(primedProds, Epsilon.Copy())

		cp.setRule(Rule{NonTerminal: Ai, Productions: baseProds})
		cp.setRule(Rule{NonTerminal: primed, Productions: primedProds})
	}

	return cp
}

// LeftFactor returns a copy of the grammar with common prefixes among a
// nonterminal's productions factored out into new nonterminals, suffixed
// "-P", so the grammar becomes suitable for predictive parsing.
func (g Grammar) LeftFactor() Grammar {
	cp := g.Copy()

	worklist := cp.NonTerminals()
	for len(worklist) > 0 {
		nt := worklist[0]
		worklist = worklist[1:]

		rule := cp.Rule(nt)
		if len(rule.Productions) < 2 {
			continue
		}

		prefix, group, rest := longestCommonPrefixGroup(rule.Productions)
		if len(prefix) == 0 {
			continue
		}

		primed := nt + "-P"
		for cp.IsNonTerminal(primed) {
			primed += "P"
		}

		var primedProds []Production
		for _, p := range group {
			suffix := p[len(prefix):]
			if len(suffix) == 0 {
				primedProds = append(primedProds, Epsilon.Copy())
			} else {
				primedProds = append(primedProds, suffix)
			}
		}

		newProds := append([]Production{append(append(Production{}, prefix...), primed)}, rest...)
		cp.setRule(Rule{NonTerminal: nt, Productions: newProds})
		cp.setRule(Rule{NonTerminal: primed, Productions: primedProds})

		worklist = append(worklist, nt, primed)
	}

	return cp
}

// longestCommonPrefixGroup finds the longest symbol prefix shared by two or
// more productions in prods, returning that prefix, the productions sharing
// it, and the remaining productions unchanged.
func longestCommonPrefixGroup(prods []Production) (prefix Production, group []Production, rest []Production) {
	bestLen := 0
	var bestFirstSym string

	counts := map[string]int{}
	for _, p := range prods {
		if len(p) == 0 {
			continue
		}
		counts[p[0]]++
	}
	for sym, n := range counts {
		if n >= 2 {
			bestFirstSym = sym
			bestLen = 1
			break
		}
	}

	if bestLen == 0 {
		return nil, nil, prods
	}

	for _, p := range prods {
		if len(p) > 0 && p[0] == bestFirstSym {
			group = append(group, p)
		} else {
			rest = append(rest, p)
		}
	}

	prefix = Production{bestFirstSym}
	extending := true
	for extending {
		var next string
		for i, p := range group {
			if len(p) <= len(prefix) {
				extending = false
				break
			}
			if i == 0 {
				next = p[len(prefix)]
			} else if p[len(prefix)] != next {
				extending = false
				break
			}
		}
		if extending {
			prefix = append(prefix, next)
		}
	}

	return prefix, group, rest
}

// IsLL1 returns whether the grammar can be parsed with a single token of
// lookahead: no two productions of any nonterminal may have intersecting
// FIRST sets (accounting for epsilon and FOLLOW as described in the dragon
// book).
func (g Grammar) IsLL1() bool {
	_, err := g.LLParseTable()
	return err == nil
}

// LL1Table is a predictive parsing table, mapping a nonterminal and a
// lookahead terminal to the production to apply.
type LL1Table map[string]map[string]Production

func (t LL1Table) NonTerminals() []string {
	nts := make([]string, 0, len(t))
	for nt := range t {
		nts = append(nts, nt)
	}
	sort.Strings(nts)
	return nts
}

func (t LL1Table) Terminals() []string {
	seen := map[string]bool{}
	for _, row := range t {
		for term := range row {
			seen[term] = true
		}
	}
	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func (t LL1Table) Get(nt, term string) Production {
	row, ok := t[nt]
	if !ok {
		return nil
	}
	return row[term]
}

func (t LL1Table) set(nt, term string, p Production) bool {
	if t[nt] == nil {
		t[nt] = map[string]Production{}
	}
	if existing, ok := t[nt][term]; ok && !existing.Equal(p) {
		return false
	}
	t[nt][term] = p
	return true
}

func (t LL1Table) String() string {
	var sb strings.Builder
	for _, nt := range t.NonTerminals() {
		for _, term := range t.Terminals() {
			if p, ok := t[nt][term]; ok {
				fmt.Fprintf(&sb, "M[%s, %s] = %s\n", nt, term, p.String())
			}
		}
	}
	return sb.String()
}

// LLParseTable builds the LL(1) parsing table for the grammar. It returns an
// error if any cell of the table would need to hold more than one
// production, i.e. if the grammar is not LL(1).
func (g Grammar) LLParseTable() (LL1Table, error) {
	table := LL1Table{}

	for _, r := range g.rules {
		for _, p := range r.Productions {
			first := g.firstOfSequence(p)
			if p.IsEpsilon() {
				first = util.NewStringSet()
				first.Add(Epsilon[0])
			}

			for _, a := range first.Elements() {
				if a == Epsilon[0] {
					continue
				}
				if !table.set(r.NonTerminal, a, p) {
					return table, fmt.Errorf("grammar is not LL(1): conflict in M[%s, %s]", r.NonTerminal, a)
				}
			}

			if first.Has(Epsilon[0]) {
				follow := g.FOLLOW(r.NonTerminal)
				for _, b := range follow.Elements() {
					if !table.set(r.NonTerminal, b, p) {
						return table, fmt.Errorf("grammar is not LL(1): conflict in M[%s, %s]", r.NonTerminal, b)
					}
				}
			}
		}
	}

	return table, nil
}

// Parse parses a textual grammar description into a Grammar. Each line
// defines a rule as "NAME -> alt1a alt1b | alt2a | ε"; a continuation line
// beginning with "|" adds more alternatives to the preceding rule. Symbols
// that start with an uppercase letter are treated as nonterminals; all
// others (including "ε") are treated as terminals and registered with a
// default token class.
func Parse(s string) (Grammar, error) {
	var g Grammar
	var curNT string

	lines := strings.Split(s, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var altsPart string
		if strings.HasPrefix(line, "|") {
			if curNT == "" {
				return g, fmt.Errorf("continuation line with no preceding rule: %q", line)
			}
			altsPart = strings.TrimPrefix(line, "|")
		} else {
			sides := strings.SplitN(line, "->", 2)
			if len(sides) != 2 {
				return g, fmt.Errorf("not a valid rule line: %q", line)
			}
			curNT = strings.TrimSpace(sides[0])
			if curNT == "" {
				return g, fmt.Errorf("empty nonterminal name in rule: %q", line)
			}
			altsPart = sides[1]
		}

		for _, alt := range strings.Split(altsPart, "|") {
			prod := parseAlt(alt)
			for _, sym := range prod {
				if sym == "" || isNonTerminalName(sym) {
					continue
				}
				if !g.IsTerminal(sym) {
					g.AddTerm(sym, types.MakeDefaultClass(sym))
				}
			}
			g.AddRule(curNT, prod)
		}
	}

	return g, nil
}

// MustParse is like Parse but panics on error. It is intended for use in
// tests and other contexts where the grammar text is a compile-time
// constant known to be valid.
func MustParse(s string) Grammar {
	g, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return g
}

func parseAlt(alt string) Production {
	fields := strings.Fields(alt)
	var prod Production
	for _, f := range fields {
		if strings.ToLower(f) == "ε" || strings.ToLower(f) == "epsilon" {
			continue
		}
		prod = append(prod, f)
	}
	if len(prod) == 0 {
		return Epsilon.Copy()
	}
	return prod
}

func isNonTerminalName(sym string) bool {
	r := []rune(sym)
	return len(r) > 0 && strings.ToUpper(string(r[0])) == string(r[0]) && strings.ToLower(string(r[0])) != string(r[0])
}
