package binder

import (
	"sort"
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
)

// positionalCandidate is one parameter eligible at some position,
// with the union of set masks that give it that position.
type positionalCandidate struct {
	param     *command.Parameter
	sets      command.SetFlags
	inAllSets bool
}

// appliesTo reports whether the candidate is live under valid.
func (c *positionalCandidate) appliesTo(valid command.SetFlags) bool {
	return c.inAllSets || c.sets.Intersects(valid)
}

// effectiveSets is the mask the candidate occupies within valid.
func (c *positionalCandidate) effectiveSets(valid command.SetFlags) command.SetFlags {
	if c.inAllSets {
		return valid
	}
	return c.sets & valid
}

// PositionalTable maps positions to the parameters that may bind
// there, restricted to the parameter sets still valid. Positions walk
// in ascending declared order, candidates at one position in name
// order.
type PositionalTable struct {
	positions []int
	at        map[int][]*positionalCandidate
}

// EvaluatePositional builds the positional table for the given unbound
// parameters under the valid set mask. Catch-all parameters taking the
// remaining arguments are skipped, they never bind by position.
//
// Two parameters claiming the same position in an overlapping set is a
// defect in the command's declaration and comes back as a hard
// CodeAmbiguousPosition error.
func EvaluatePositional(params []*command.Parameter, valid command.SetFlags) (*PositionalTable, error) {
	t := &PositionalTable{at: make(map[int][]*positionalCandidate)}

	for _, p := range params {
		// A parameter may sit at different positions in different
		// sets, so entries group per position before conflicts are
		// checked.
		byPos := make(map[int]*positionalCandidate)
		var positions []int
		for _, e := range p.Sets {
			if !e.AppliesTo(valid) || e.Position == command.PositionUnset || e.FromRemaining {
				continue
			}
			cand := byPos[e.Position]
			if cand == nil {
				cand = &positionalCandidate{param: p}
				byPos[e.Position] = cand
				positions = append(positions, e.Position)
			}
			cand.sets |= e.Sets
			cand.inAllSets = cand.inAllSets || e.InAllSets
		}

		sort.Ints(positions)
		for _, pos := range positions {
			cand := byPos[pos]
			for _, other := range t.at[pos] {
				overlap := other.effectiveSets(valid) & cand.effectiveSets(valid)
				if overlap != 0 {
					return nil, &BindError{
						Code:      CodeAmbiguousPosition,
						Parameter: other.param.Name,
						Conflict:  p.Name,
						Position:  pos,
					}
				}
			}
			t.at[pos] = append(t.at[pos], cand)
		}
	}

	for pos := range t.at {
		t.positions = append(t.positions, pos)
		sort.Slice(t.at[pos], func(i, j int) bool {
			return strings.ToLower(t.at[pos][i].param.Name) < strings.ToLower(t.at[pos][j].param.Name)
		})
	}
	sort.Ints(t.positions)
	return t, nil
}

// Narrow drops candidates that fell out of the valid sets after a
// binding committed.
func (t *PositionalTable) Narrow(valid command.SetFlags) {
	for pos, cands := range t.at {
		live := cands[:0]
		for _, c := range cands {
			if c.appliesTo(valid) {
				live = append(live, c)
			}
		}
		t.at[pos] = live
	}
}

// Positions returns the declared positions in ascending order,
// including ones whose candidates have all been narrowed away.
func (t *PositionalTable) Positions() []int {
	out := make([]int, len(t.positions))
	copy(out, t.positions)
	return out
}

// Candidates returns the parameters still live at pos, in name order.
func (t *PositionalTable) Candidates(pos int) []*command.Parameter {
	cands := t.at[pos]
	out := make([]*command.Parameter, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.param)
	}
	return out
}

func (t *PositionalTable) live(pos int) []*positionalCandidate {
	return t.at[pos]
}
