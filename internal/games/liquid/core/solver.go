package core

import (
	"errors"
	"fmt"
)

// ErrUnsolvable is returned when the search space is exhausted without
// reaching a solved configuration.
var ErrUnsolvable = errors.New("level is not solvable")

// ErrSearchLimit is returned when the solver visits maxStates
// configurations without an answer.
var ErrSearchLimit = errors.New("solver state limit reached")

// DefaultMaxStates bounds solver searches when callers pass 0.
const DefaultMaxStates = 200000

// Move is a pour from one cylinder to another.
type Move struct {
	From int
	To   int
}

// String returns a string representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%d->%d", m.From, m.To)
}

// Solution is a shortest sequence of pours solving a level.
type Solution struct {
	Moves  []Move
	States int // Configurations visited
}

type searchNode struct {
	session *Session
	parent  int // Index into the visited list, -1 for the root
	move    Move
}

// Solve runs a breadth-first search from the given configuration and
// returns a shortest solution. Locks are ignored: every cylinder starts
// unlocked. maxStates <= 0 uses DefaultMaxStates.
func Solve(specs []CylinderSpec, maxStates int) (Solution, error) {
	root, err := NewSession(specs)
	if err != nil {
		return Solution{}, err
	}
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	if root.IsSolved() {
		return Solution{Moves: []Move{}, States: 1}, nil
	}

	nodes := []searchNode{{session: root, parent: -1}}
	seen := map[string]bool{root.Key(): true}

	for head := 0; head < len(nodes); head++ {
		current := nodes[head].session

		for _, mv := range candidateMoves(current) {
			next := current.clone()
			from, _ := next.Cylinder(mv.From)
			to, _ := next.Cylinder(mv.To)
			if outcome := TryPour(from, to); !outcome.Applied {
				continue
			}

			key := next.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			nodes = append(nodes, searchNode{session: next, parent: head, move: mv})

			if next.IsSolved() {
				return Solution{Moves: pathTo(nodes, len(nodes)-1), States: len(seen)}, nil
			}
			if len(seen) >= maxStates {
				return Solution{States: len(seen)}, ErrSearchLimit
			}
		}
	}

	return Solution{States: len(seen)}, ErrUnsolvable
}

// candidateMoves lists legal pours, skipping moves that cannot make progress:
// pouring out of a solved cylinder, or moving a uniform column into an
// empty cylinder.
func candidateMoves(s *Session) []Move {
	moves := make([]Move, 0)
	for i, src := range s.cylinders {
		if src.IsSolved() || src.IsEmpty() {
			continue
		}
		_, run := src.TopRun()
		uniform := run == src.FillCount()

		for j, dst := range s.cylinders {
			if i == j {
				continue
			}
			if uniform && dst.IsEmpty() {
				continue
			}
			if _, reason := CheckPour(src, dst); reason != RejectNone {
				continue
			}
			moves = append(moves, Move{From: i, To: j})
		}
	}
	return moves
}

func pathTo(nodes []searchNode, idx int) []Move {
	var rev []Move
	for n := idx; nodes[n].parent >= 0; n = nodes[n].parent {
		rev = append(rev, nodes[n].move)
	}
	moves := make([]Move, len(rev))
	for i, mv := range rev {
		moves[len(rev)-1-i] = mv
	}
	return moves
}

// Hint returns the first move of a shortest solution from the session's
// current configuration. Returns false if none is found within maxStates.
func Hint(s *Session, maxStates int) (Move, bool) {
	sol, err := Solve(s.Specs(), maxStates)
	if err != nil || len(sol.Moves) == 0 {
		return Move{}, false
	}
	return sol.Moves[0], true
}
