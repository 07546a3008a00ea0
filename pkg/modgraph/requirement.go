package modgraph

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"

	"github.com/matzehuels/moddeps/pkg/manifest"
)

// Requirement is a parsed dependency version requirement.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3. Forge
// requirements use Maven range syntax ("[1.2,2.0)") and are translated to
// semver constraints first; Fabric requirements are semver already.
type Requirement struct {
	raw string
	c   *mm.Constraints
}

// ParseRequirement parses raw using the syntax of the given manifest format.
func ParseRequirement(format, raw string) (Requirement, error) {
	expr := strings.TrimSpace(raw)
	if format == manifest.DefaultForgeFile {
		translated, err := mavenRange(expr)
		if err != nil {
			return Requirement{}, fmt.Errorf("requirement %q: %w", raw, err)
		}
		expr = translated
	}
	if expr == "" {
		expr = "*"
	}
	c, err := mm.NewConstraint(expr)
	if err != nil {
		return Requirement{}, fmt.Errorf("requirement %q: %w", raw, err)
	}
	return Requirement{raw: raw, c: c}, nil
}

// String returns the requirement as declared.
func (r Requirement) String() string { return r.raw }

// Allows reports whether version satisfies the requirement. Pre-release and
// build suffixes are ignored since mod versions use them for loader and game
// tags rather than pre-releases.
func (r Requirement) Allows(version string) (bool, error) {
	if r.c == nil {
		return false, fmt.Errorf("empty requirement")
	}
	v, err := mm.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false, fmt.Errorf("version %q: %w", version, err)
	}
	core := mm.New(v.Major(), v.Minor(), v.Patch(), "", "")
	return r.c.Check(core), nil
}

// mavenRange translates a Maven version range into a semver constraint
// string. "[1,2)" becomes ">=1, <2", "[1.2]" becomes "=1.2" and several
// ranges are OR-ed. A bare version is a soft requirement and allows anything.
func mavenRange(expr string) (string, error) {
	if expr == "" || expr == "*" {
		return "*", nil
	}
	if expr[0] != '[' && expr[0] != '(' {
		return "*", nil
	}

	var alts []string
	for _, rng := range splitRanges(expr) {
		if len(rng) < 2 {
			return "", fmt.Errorf("malformed range %q", rng)
		}
		open, closing := rng[0], rng[len(rng)-1]
		inner := rng[1 : len(rng)-1]

		lo, hi, isRange := strings.Cut(inner, ",")
		if !isRange {
			if open != '[' || closing != ']' {
				return "", fmt.Errorf("exact version must use brackets: %q", rng)
			}
			alts = append(alts, "="+strings.TrimSpace(inner))
			continue
		}

		var conds []string
		if lo = strings.TrimSpace(lo); lo != "" {
			op := ">="
			if open == '(' {
				op = ">"
			}
			conds = append(conds, op+lo)
		}
		if hi = strings.TrimSpace(hi); hi != "" {
			op := "<"
			if closing == ']' {
				op = "<="
			}
			conds = append(conds, op+hi)
		}
		if len(conds) == 0 {
			conds = []string{"*"}
		}
		alts = append(alts, strings.Join(conds, ", "))
	}
	if len(alts) == 0 {
		return "", fmt.Errorf("no ranges in %q", expr)
	}
	return strings.Join(alts, " || "), nil
}

// splitRanges splits "[1,2),[3,)" into its bracketed ranges.
func splitRanges(expr string) []string {
	var out []string
	start := -1
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '[', '(':
			start = i
		case ']', ')':
			if start >= 0 {
				out = append(out, expr[start:i+1])
				start = -1
			}
		}
	}
	return out
}
