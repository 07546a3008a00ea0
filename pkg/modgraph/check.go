package modgraph

// Status is the outcome of checking one version requirement.
type Status int

const (
	// StatusSatisfied means the installed version meets the requirement.
	StatusSatisfied Status = iota
	// StatusUnsatisfied means the installed version is outside the requirement.
	StatusUnsatisfied
	// StatusUnchecked means the requirement or the installed version could
	// not be parsed (e.g. "${file.jarVersion}").
	StatusUnchecked
)

func (s Status) String() string {
	switch s {
	case StatusSatisfied:
		return "ok"
	case StatusUnsatisfied:
		return "unsatisfied"
	default:
		return "unchecked"
	}
}

// CheckResult is one evaluated requirement.
type CheckResult struct {
	Mod         string // Mod declaring the requirement
	Dependency  string // Required mod
	Requirement string // Requirement as declared
	Installed   string // Installed version of Dependency
	Status      Status
	Reason      string // Parse error for StatusUnchecked
}

// Check evaluates every declared version requirement whose target is
// installed. Requirements on missing mods are left to [Graph.Missing].
// Results follow key order, then dependency order.
func (g *Graph) Check() []CheckResult {
	var out []CheckResult
	for _, id := range g.order {
		rec, ok := g.records[id]
		if !ok {
			continue
		}
		for _, dep := range g.deps[id] {
			raw, ok := rec.Constraints[dep]
			if !ok {
				continue
			}
			target, ok := g.records[dep]
			if !ok {
				continue
			}

			res := CheckResult{Mod: id, Dependency: dep, Requirement: raw, Installed: target.Version}
			req, err := ParseRequirement(rec.Format, raw)
			if err != nil {
				res.Status, res.Reason = StatusUnchecked, err.Error()
				out = append(out, res)
				continue
			}
			allowed, err := req.Allows(target.Version)
			switch {
			case err != nil:
				res.Status, res.Reason = StatusUnchecked, err.Error()
			case allowed:
				res.Status = StatusSatisfied
			default:
				res.Status = StatusUnsatisfied
			}
			out = append(out, res)
		}
	}
	return out
}

// Problems filters results down to those that are not satisfied.
func Problems(results []CheckResult) []CheckResult {
	var out []CheckResult
	for _, r := range results {
		if r.Status != StatusSatisfied {
			out = append(out, r)
		}
	}
	return out
}
