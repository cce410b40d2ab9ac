package advisor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minTokenLength is the shortest token kept for corpus matching
const minTokenLength = 3

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokens is the result of tokenizing a request.
// All keeps every word in order and is used for intent boost lookup, since
// several boosters ("how", "why", "does") are also stop words.
// Filtered drops stop words and tokens shorter than three characters.
type Tokens struct {
	All      []string
	Filtered []string
}

// Tokenize lower-cases text and splits it into word tokens
func Tokenize(text string, lex *Lexicon) Tokens {
	all := words(text)
	return Tokens{
		All:      all,
		Filtered: filterTokens(all, lex),
	}
}

// ExpandQuery unions the filtered tokens with their synonyms. The result has
// no duplicates and keeps first-seen order.
func ExpandQuery(tokens []string, lex *Lexicon) []string {
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))

	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}

	for _, t := range tokens {
		add(t)
	}
	for _, t := range tokens {
		for _, syn := range lex.Synonyms(t) {
			add(syn)
		}
	}
	return terms
}

func words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func filterTokens(tokens []string, lex *Lexicon) []string {
	filtered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if keepToken(t, lex) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func keepToken(t string, lex *Lexicon) bool {
	return utf8.RuneCountInString(t) >= minTokenLength && !lex.IsStopWord(t)
}
