package advisor

// MatchKind classifies how a term contributed to a skill's score
type MatchKind int

const (
	// MatchIntent is a single-skill intent booster hit
	MatchIntent MatchKind = iota
	// MatchAmbiguous is a multi-skill booster hit
	MatchAmbiguous
	// MatchName is a search term found in the skill name
	MatchName
	// MatchExact is a search term found verbatim in the description
	MatchExact
	// MatchFuzzy is a substring match against a description word
	MatchFuzzy
)

// Score contributions for corpus matches
const (
	nameMatchScore  = 1.5
	exactMatchScore = 1.0
	fuzzyMatchScore = 0.5

	// fuzzyMinLength keeps short words out of substring matching
	fuzzyMinLength = 4
)

func (k MatchKind) String() string {
	switch k {
	case MatchIntent:
		return "intent"
	case MatchAmbiguous:
		return "ambiguous"
	case MatchName:
		return "name"
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// Match is one annotation explaining part of a skill's score
type Match struct {
	Term string
	Kind MatchKind
}

// String renders the annotation the way it appears in a reason
func (m Match) String() string {
	switch m.Kind {
	case MatchIntent:
		return "!" + m.Term
	case MatchAmbiguous:
		return "!" + m.Term + "(multi)"
	case MatchName:
		return m.Term + "(name)"
	case MatchFuzzy:
		return m.Term + "~"
	default:
		return m.Term
	}
}

// CountAmbiguous returns how many matches came from multi-skill boosters.
// A nil slice counts as zero.
func CountAmbiguous(matches []Match) int {
	n := 0
	for _, m := range matches {
		if m.Kind == MatchAmbiguous {
			n++
		}
	}
	return n
}
