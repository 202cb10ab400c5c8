package equivalence

import "fmt"

// Policy selects which corpus statistics the REDUCED documents are scored
// against.
type Policy int

const (
	// PolicyIndependent scores each corpus against its own N, avgdl and df.
	// Ranking equivalence is not guaranteed to hold under it.
	PolicyIndependent Policy = iota
	// PolicyLocked builds statistics from FULL only and scores REDUCED with
	// them, isolating deduplication from the change in corpus statistics.
	PolicyLocked
)

func (p Policy) String() string {
	switch p {
	case PolicyIndependent:
		return "independent"
	case PolicyLocked:
		return "locked"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}
