package advisor

// Boosts accumulates intent boosts per skill for one request
type Boosts struct {
	Amounts map[string]float64
	Matches map[string][]Match
}

// Amount returns the accumulated boost for skill, 0 when absent
func (b Boosts) Amount(skill string) float64 {
	return b.Amounts[skill]
}

// Empty reports whether no booster matched
func (b Boosts) Empty() bool {
	return len(b.Amounts) == 0
}

// ResolveBoosts folds every unfiltered token through the booster tables.
// A token may boost zero, one or several skills; amounts add up without a cap.
func ResolveBoosts(tokens []string, lex *Lexicon) Boosts {
	b := Boosts{
		Amounts: make(map[string]float64),
		Matches: make(map[string][]Match),
	}

	for _, token := range tokens {
		if boost, ok := lex.IntentBoost(token); ok {
			b.add(boost, Match{Term: token, Kind: MatchIntent})
		}
		for _, boost := range lex.MultiSkillBoosts(token) {
			b.add(boost, Match{Term: token, Kind: MatchAmbiguous})
		}
	}
	return b
}

func (b Boosts) add(boost Boost, m Match) {
	b.Amounts[boost.Skill] += boost.Amount
	b.Matches[boost.Skill] = append(b.Matches[boost.Skill], m)
}
