package alphabet

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseWeights builds an alphabet of string symbols from "S=w" pairs
// separated by commas or whitespace, e.g. "C=12, H=1.007825, Cl=34.968853".
// Symbols must consist of letters only; order of appearance fixes the index.
func ParseWeights(spec string) (*Ordered[string], error) {
	fields := strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	if len(fields) == 0 {
		return nil, ErrEmptyAlphabet
	}

	symbols := make([]string, 0, len(fields))
	weights := make([]float64, 0, len(fields))
	for _, f := range fields {
		sym, raw, ok := strings.Cut(f, "=")
		if !ok || sym == "" || strings.IndexFunc(sym, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			return nil, fmt.Errorf("alphabet: entry %q: %w", f, ErrSyntax)
		}
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("alphabet: weight of %q: %w", sym, ErrSyntax)
		}
		symbols = append(symbols, sym)
		weights = append(weights, w)
	}

	return New(symbols, weights)
}

// ParseBounds reads a bound expression such as "CH[0-20]N[1-]O[-3]P[2]".
//
// Grammar, per symbol:
//   - S        – symbol allowed, no bound (Interval [0, Unbounded])
//   - S[a-b]   – between a and b
//   - S[a-]    – at least a
//   - S[-b]    – at most b
//   - S[n]     – exactly n
//
// Commas and whitespace between entries are ignored.
func ParseBounds(a Alphabet[string], expr string) (map[string]Interval, error) {
	tk := newTokenizer(a)
	bounds := NewMap[string, Interval](a)

	pos := 0
	for pos < len(expr) {
		if c := expr[pos]; c == ',' || c == ' ' || c == '\t' {
			pos++
			continue
		}
		idx, n := tk.match(expr, pos)
		if n == 0 {
			return nil, fmt.Errorf("alphabet: %q at offset %d: %w", expr[pos:], pos, ErrUnknownSymbol)
		}
		sym := a.Get(idx)
		pos += n

		iv := AtLeast(0)
		if pos < len(expr) && expr[pos] == '[' {
			end := strings.IndexByte(expr[pos:], ']')
			if end < 0 {
				return nil, fmt.Errorf("alphabet: unclosed bracket after %s: %w", sym, ErrSyntax)
			}
			var err error
			if iv, err = parseRange(expr[pos+1 : pos+end]); err != nil {
				return nil, fmt.Errorf("alphabet: bound of %s: %w", sym, err)
			}
			pos += end + 1
		}
		if _, dup := bounds[sym]; dup {
			return nil, fmt.Errorf("alphabet: bound of %s given twice: %w", sym, ErrDuplicateSymbol)
		}
		bounds[sym] = iv
	}

	return bounds, nil
}

func parseRange(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	lo, hi, isRange := strings.Cut(s, "-")
	if !isRange {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Interval{}, ErrSyntax
		}

		return NewInterval(n, n)
	}

	iv := AtLeast(0)
	var err error
	if lo = strings.TrimSpace(lo); lo != "" {
		if iv.Min, err = strconv.Atoi(lo); err != nil {
			return Interval{}, ErrSyntax
		}
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		if iv.Max, err = strconv.Atoi(hi); err != nil {
			return Interval{}, ErrSyntax
		}
	}

	return iv, iv.Validate()
}

// ParseFormula reads symbol counts such as "C6H12O6" or "CH3Cl".
// A symbol without digits counts once; repeated symbols add up.
func ParseFormula(a Alphabet[string], formula string) (map[string]int, error) {
	tk := newTokenizer(a)
	counts := NewMap[string, int](a)

	pos := 0
	for pos < len(formula) {
		idx, n := tk.match(formula, pos)
		if n == 0 {
			return nil, fmt.Errorf("alphabet: %q at offset %d: %w", formula[pos:], pos, ErrUnknownSymbol)
		}
		pos += n

		start := pos
		for pos < len(formula) && formula[pos] >= '0' && formula[pos] <= '9' {
			pos++
		}
		c := 1
		if pos > start {
			var err error
			if c, err = strconv.Atoi(formula[start:pos]); err != nil {
				return nil, fmt.Errorf("alphabet: count in %q: %w", formula, ErrSyntax)
			}
		}
		counts[a.Get(idx)] += c
	}

	return counts, nil
}

// Format renders a compomere as a formula in alphabet order. order maps each
// compomere slot to an alphabet index (see decomposer.Decomposer.Order).
// Zero counts are omitted and a count of one is written without digits.
func Format[T comparable](a Alphabet[T], order []int, compomere []int) string {
	counts := make([]int, a.Size())
	for slot, c := range compomere {
		counts[order[slot]] = c
	}

	var sb strings.Builder
	for i, c := range counts {
		if c == 0 {
			continue
		}
		fmt.Fprint(&sb, a.Get(i))
		if c > 1 {
			sb.WriteString(strconv.Itoa(c))
		}
	}

	return sb.String()
}
