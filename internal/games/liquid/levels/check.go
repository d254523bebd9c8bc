package levels

import (
	"fmt"

	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
)

// Report is the outcome of checking one level file.
type Report struct {
	Path  string
	ID    string
	Moves int // Length of the shortest solution, 0 on failure
	Err   error
}

// OK reports whether the file passed every check.
func (r Report) OK() bool {
	return r.Err == nil
}

// Check parses and validates every level file under the loader root.
// Unlike LoadAll it keeps failing files, so authors see why a level
// would be skipped. Duplicate IDs fail on every file after the first.
func (l *Loader) Check(maxStates int) ([]Report, error) {
	var reports []Report
	seen := make(map[string]string)

	err := l.walk(func(filePath string, level Level, err error) {
		if err != nil {
			reports = append(reports, Report{Path: filePath, Err: err})
			return
		}
		reports = append(reports, checkLevel(level, maxStates, seen))
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// CheckFile validates a single level file from disk.
func CheckFile(filePath string, maxStates int) Report {
	level, err := (&Loader{}).LoadFile(filePath)
	if err != nil {
		return Report{Path: filePath, Err: err}
	}
	return checkLevel(level, maxStates, nil)
}

func checkLevel(level Level, maxStates int, seen map[string]string) Report {
	r := Report{Path: level.FilePath, ID: level.ID}

	if seen != nil {
		if first, dup := seen[level.ID]; dup {
			r.Err = fmt.Errorf("duplicate level id %q (first defined in %s)", level.ID, first)
			return r
		}
		seen[level.ID] = level.FilePath
	}

	if err := core.ValidateLevel(level.Specs(), maxStates); err != nil {
		r.Err = err
		return r
	}

	// ValidateLevel already proved a solution exists within the limit.
	sol, err := core.Solve(level.Specs(), maxStates)
	if err != nil {
		r.Err = err
		return r
	}
	r.Moves = len(sol.Moves)
	return r
}
