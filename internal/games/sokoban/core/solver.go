package core

import "strings"

// DefaultSolveBudget bounds the number of distinct states Solve explores.
const DefaultSolveBudget = 200000

// Solve searches breadth-first for the shortest move sequence that solves
// the scene, using only Move. The scene itself is not modified.
// Returns false when no solution is found within maxStates explored states.
func Solve(s *Scene, maxStates int) ([]Dir, bool) {
	if maxStates <= 0 {
		maxStates = DefaultSolveBudget
	}

	// Search scenes start with an empty history, so each one's history is
	// exactly the path that reached it.
	start := s.Clone()
	start.history = nil
	if start.IsSolved() {
		return nil, true
	}

	visited := map[string]struct{}{start.key(): {}}
	queue := []*Scene{start}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, d := range Dirs {
			next := n.Clone()
			if !next.Move(d) {
				continue
			}

			k := next.key()
			if _, ok := visited[k]; ok {
				continue
			}
			visited[k] = struct{}{}

			if next.IsSolved() {
				return next.path(), true
			}
			if len(visited) >= maxStates {
				return nil, false
			}

			queue = append(queue, next)
		}
	}

	return nil, false
}

// Key identifies the grid state, player position included.
// History is not part of the key.
func (s *Scene) Key() string {
	return s.key()
}

func (s *Scene) key() string {
	return strings.Join(s.Rows(), "\n")
}

// path returns the direction of every recorded move, oldest first.
func (s *Scene) path() []Dir {
	path := make([]Dir, len(s.history))
	for i, rec := range s.history {
		path[i] = rec.dir()
	}
	return path
}

// dir returns the direction the recorded move went.
func (r Record) dir() Dir {
	dr, dc := r.Mid.Row-r.From.Row, r.Mid.Col-r.From.Col
	for _, d := range Dirs {
		if rr, rc := d.Delta(); rr == dr && rc == dc {
			return d
		}
	}
	return DirUp
}
