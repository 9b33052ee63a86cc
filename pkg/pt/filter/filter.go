package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// Filter matches a symbol or company name.
type Filter interface {
	Match(name string) bool
}

// Parse builds a filter from a search expression:
//   - plain text: case-insensitive substring, "app" matches "Apple Inc."
//   - comma-separated symbols: "AAPL,MSFT"
//   - glob: "MS*"
//   - regex: "/^A/"
//
// An empty expression matches everything.
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, err
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		parts := strings.Split(expr, ",")
		set := map[string]struct{}{}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			set[strings.ToUpper(p)] = struct{}{}
		}
		return ExactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?") {
		return Glob{pattern: strings.ToUpper(expr)}, nil
	}
	return SubstrCI{needle: expr}, nil
}

// Stocks returns the stocks whose symbol or company name matches f, in their
// original order. A nil filter keeps everything.
func Stocks(list []types.Stock, f Filter) []types.Stock {
	if f == nil {
		return list
	}
	out := make([]types.Stock, 0, len(list))
	for _, s := range list {
		if f.Match(s.Symbol) || f.Match(s.CompanyName) {
			out = append(out, s)
		}
	}
	return out
}

type Always bool

func (a Always) Match(string) bool { return bool(a) }

// ExactSet matches whole names case-insensitively.
type ExactSet struct{ set map[string]struct{} }

// ExactSetOf builds an ExactSet from names.
func ExactSetOf(names ...string) ExactSet {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToUpper(strings.TrimSpace(n))] = struct{}{}
	}
	return ExactSet{set: set}
}

func (e ExactSet) Match(name string) bool {
	_, ok := e.set[strings.ToUpper(name)]
	return ok
}

type Glob struct{ pattern string }

func (g Glob) Match(name string) bool {
	ok, _ := filepath.Match(g.pattern, strings.ToUpper(name))
	return ok
}

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(name string) bool { return r.re.MatchString(name) }

func (g Glob) String() string { return fmt.Sprintf("glob:%s", g.pattern) }

// SubstrCI matches if name contains needle, case-insensitively.
type SubstrCI struct{ needle string }

func NewSubstrCI(needle string) SubstrCI { return SubstrCI{needle: needle} }

func (s SubstrCI) Match(name string) bool {
	if s.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(s.needle))
}

func (s SubstrCI) String() string { return fmt.Sprintf("substr-ci:%s", s.needle) }
