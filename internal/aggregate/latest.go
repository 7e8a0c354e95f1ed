package aggregate

import "github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"

// Latest returns the snapshot with the greatest Date. When several share the
// greatest date the first one wins. ok is false for an empty input.
func Latest(snaps []summary.Summary) (summary.Summary, bool) {
	if len(snaps) == 0 {
		return summary.Summary{}, false
	}
	best := 0
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Date > snaps[best].Date {
			best = i
		}
	}
	return snaps[best], true
}
