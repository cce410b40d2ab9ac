package advisor

// Boost is a keyword's affinity for a single skill.
type Boost struct {
	Skill  string  `yaml:"skill" json:"skill"`
	Amount float64 `yaml:"amount" json:"amount"`
}

// Lexicon holds the static tables consumed by scoring. A Lexicon is never
// mutated once built, so it is safe to share across goroutines.
type Lexicon struct {
	stopWords   map[string]struct{}
	synonyms    map[string][]string
	intent      map[string]Boost
	multiSkill  map[string][]Boost
	description string
}

// The accessors below treat a nil receiver as DefaultLexicon.

// IsStopWord reports whether token is filtered before corpus matching
func (l *Lexicon) IsStopWord(token string) bool {
	_, ok := l.orDefault().stopWords[token]
	return ok
}

// Synonyms returns the expansion list for token, or nil
func (l *Lexicon) Synonyms(token string) []string {
	return l.orDefault().synonyms[token]
}

// IntentBoost returns the single-skill booster for token
func (l *Lexicon) IntentBoost(token string) (Boost, bool) {
	b, ok := l.orDefault().intent[token]
	return b, ok
}

// MultiSkillBoosts returns the ambiguous boosters for token, or nil
func (l *Lexicon) MultiSkillBoosts(token string) []Boost {
	return l.orDefault().multiSkill[token]
}

// String describes where the lexicon came from
func (l *Lexicon) String() string {
	return l.orDefault().description
}

// orDefault lets a nil *Lexicon stand for the built-in tables
func (l *Lexicon) orDefault() *Lexicon {
	if l == nil {
		return defaultLexicon
	}
	return l
}

// Extend returns a new lexicon combining l with overlay. Overlay entries
// replace built-in entries with the same key; stop words are unioned.
func (l *Lexicon) Extend(overlay *Lexicon) *Lexicon {
	l = l.orDefault()
	if overlay == nil {
		return l
	}

	out := &Lexicon{
		stopWords:   make(map[string]struct{}, len(l.stopWords)+len(overlay.stopWords)),
		synonyms:    make(map[string][]string, len(l.synonyms)+len(overlay.synonyms)),
		intent:      make(map[string]Boost, len(l.intent)+len(overlay.intent)),
		multiSkill:  make(map[string][]Boost, len(l.multiSkill)+len(overlay.multiSkill)),
		description: l.description + "+" + overlay.description,
	}
	for _, src := range []*Lexicon{l, overlay} {
		for w := range src.stopWords {
			out.stopWords[w] = struct{}{}
		}
		for k, v := range src.synonyms {
			out.synonyms[k] = append([]string(nil), v...)
		}
		for k, v := range src.intent {
			out.intent[k] = v
		}
		for k, v := range src.multiSkill {
			out.multiSkill[k] = append([]Boost(nil), v...)
		}
	}
	return out
}

// DefaultLexicon returns the built-in tables
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

var defaultLexicon = &Lexicon{
	stopWords:   toSet(defaultStopWords),
	synonyms:    defaultSynonyms,
	intent:      defaultIntentBoosters,
	multiSkill:  defaultMultiSkillBoosters,
	description: "builtin",
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Stop words are filtered from both the query and the skill corpus.
var defaultStopWords = []string{
	// articles & pronouns
	"the", "a", "an", "i", "me", "my", "you", "your", "we", "our", "it", "its",
	"he", "she", "they", "them", "him", "her", "us",
	// prepositions
	"to", "in", "on", "at", "for", "with", "from", "into", "of", "by", "about",
	// conjunctions
	"and", "or", "but", "so", "if", "then", "as",
	// auxiliary & modal verbs
	"is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did",
	"can", "could", "will", "would", "should", "may", "might", "must",
	// request helpers
	"want", "need", "help", "please", "let", "get", "try", "go", "going",
	// demonstratives
	"this", "that", "these", "those",
	// quantifiers
	"some", "any", "all", "no", "not", "more", "most", "other",
	// question words
	"how", "what", "when", "where", "which", "who", "why",
	// fillers
	"just", "also", "very", "really", "actually", "only", "even", "now",
	// generic terms
	"use", "using", "used", "like", "thing", "things", "way", "work",
	// agent/tool noise
	"skill", "agent", "tool", "run", "show", "tell", "give", "able",
}

// Synonyms map user vocabulary onto the terms skill descriptions use.
var defaultSynonyms = map[string][]string{
	"fix":      {"debug", "correct", "resolve", "code", "implementation"},
	"bug":      {"debug", "error", "issue", "defect", "verification"},
	"create":   {"implement", "build", "generate", "new", "add", "scaffold"},
	"make":     {"create", "implement", "build", "generate"},
	"new":      {"create", "implement", "scaffold", "generate"},
	"test":     {"verify", "validate", "check", "spec", "quality"},
	"check":    {"verify", "validate", "test"},
	"refactor": {"structure", "organize", "clean", "improve", "code"},
	"doc":      {"documentation", "explain", "describe", "markdown"},
	"docs":     {"documentation", "explain", "describe", "markdown"},
	"document": {"documentation", "markdown", "write"},
	"write":    {"documentation", "create", "generate"},
	"search":   {"find", "locate", "explore", "query", "lookup"},
	"find":     {"search", "locate", "explore", "lookup"},
	"plan":     {"spec", "architect", "design", "roadmap", "breakdown"},

	// git
	"commit":   {"git", "version", "push", "branch", "changes"},
	"push":     {"git", "commit", "remote", "branch"},
	"branch":   {"git", "commit", "merge", "checkout"},
	"merge":    {"git", "branch", "commit", "rebase"},
	"git":      {"commit", "branch", "version", "push", "merge", "worktree"},
	"worktree": {"git", "branch", "workspace", "isolation"},
	"rebase":   {"git", "branch", "commit", "history"},
	"stash":    {"git", "changes", "temporary"},

	// memory
	"save":     {"context", "memory", "preserve", "store"},
	"remember": {"memory", "context", "save", "store"},
	"context":  {"memory", "session", "save"},

	// devtools
	"devtools": {"chrome", "browser", "debug", "inspect"},
	"console":  {"chrome", "browser", "debug", "log"},
	"network":  {"chrome", "browser", "requests", "debug"},

	"ast": {"treesitter", "syntax", "parse", "structure"},

	// Question words are stop words, so these only apply through an overlay
	// that removes them from the stop list.
	"how":   {"understand", "explain", "works", "meaning"},
	"what":  {"definition", "structure", "outline", "list"},
	"where": {"find", "search", "locate", "navigate"},
	"show":  {"list", "display", "outline", "tree"},
	"help":  {"guide", "assist", "documentation", "explain"},
}

// Intent boosters are looked up before stop word filtering.
var defaultIntentBoosters = map[string]Boost{
	// question patterns ("how does X work") signal semantic search
	"how":        {"mcp-leann", 1.2},
	"why":        {"mcp-leann", 1.5},
	"what":       {"mcp-leann", 1.0},
	"explain":    {"mcp-leann", 3.5},
	"understand": {"mcp-leann", 1.5},
	"work":       {"mcp-leann", 1.0},
	"works":      {"mcp-leann", 1.0},
	"does":       {"mcp-leann", 0.6},

	"semantic":       {"mcp-leann", 0.5},
	"embeddings":     {"mcp-leann", 0.7},
	"vector":         {"mcp-leann", 0.6},
	"rag":            {"mcp-leann", 0.6},
	"leann":          {"mcp-leann", 1.0},
	"index":          {"mcp-leann", 0.3},
	"ask":            {"mcp-leann", 0.4},
	"query":          {"mcp-leann", 0.4},
	"auth":           {"mcp-leann", 1.8},
	"authentication": {"mcp-leann", 1.8},
	"login":          {"mcp-leann", 0.8},
	"logout":         {"mcp-leann", 0.6},
	"user":           {"mcp-leann", 0.4},
	"password":       {"mcp-leann", 0.5},
	"session":        {"mcp-leann", 0.4},

	"commit":   {"workflows-git", 0.5},
	"push":     {"workflows-git", 0.5},
	"pull":     {"workflows-git", 0.5},
	"branch":   {"workflows-git", 0.4},
	"merge":    {"workflows-git", 0.5},
	"rebase":   {"workflows-git", 0.8},
	"worktree": {"workflows-git", 1.2},
	"stash":    {"workflows-git", 0.5},
	"checkout": {"workflows-git", 0.5},
	"pr":       {"workflows-git", 0.6},
	"diff":     {"workflows-git", 0.5},
	"log":      {"workflows-git", 0.4},

	"markdown":  {"workflows-documentation", 0.5},
	"flowchart": {"workflows-documentation", 0.6},
	"ascii":     {"workflows-documentation", 0.4},
	"diagram":   {"workflows-documentation", 0.4},
	"document":  {"workflows-documentation", 0.5},
	"readme":    {"workflows-documentation", 0.5},
	"template":  {"workflows-documentation", 0.4},

	"checkpoint": {"system-memory", 0.6},
	"remember":   {"system-memory", 0.5},
	"restore":    {"system-memory", 0.4},
	"memory":     {"system-memory", 0.6},
	"recall":     {"system-memory", 0.5},
	"history":    {"system-memory", 0.4},

	"devtools":   {"workflows-chrome-devtools", 1.2},
	"chrome":     {"workflows-chrome-devtools", 1.0},
	"browser":    {"workflows-chrome-devtools", 1.2},
	"debugger":   {"workflows-chrome-devtools", 1.0},
	"debug":      {"workflows-chrome-devtools", 1.0},
	"network":    {"workflows-chrome-devtools", 0.8},
	"console":    {"workflows-chrome-devtools", 1.0},
	"inspect":    {"workflows-chrome-devtools", 1.0},
	"bdg":        {"workflows-chrome-devtools", 1.0},
	"screenshot": {"workflows-chrome-devtools", 0.5},
	"dom":        {"workflows-chrome-devtools", 0.5},
	"css":        {"workflows-chrome-devtools", 0.4},

	"checklist":     {"system-spec-kit", 0.5},
	"specification": {"system-spec-kit", 0.5},
	"spec":          {"system-spec-kit", 0.6},
	"folder":        {"system-spec-kit", 0.4},

	"symbols":     {"mcp-code-context", 0.5},
	"definitions": {"mcp-code-context", 0.5},
	"treesitter":  {"mcp-code-context", 0.7},
	"ast":         {"mcp-code-context", 0.6},
	"functions":   {"mcp-code-context", 0.4},
	"classes":     {"mcp-code-context", 0.4},
	"structure":   {"mcp-code-context", 0.5},
	"outline":     {"mcp-code-context", 0.6},
	"tree":        {"mcp-code-context", 0.5},
	"navigate":    {"mcp-code-context", 0.4},
	"list":        {"mcp-code-context", 0.3},
	"methods":     {"mcp-code-context", 0.4},
	"exports":     {"mcp-code-context", 0.4},
	"imports":     {"mcp-code-context", 0.4},

	// external MCP tools; single product names are enough to route
	"webflow":    {"mcp-code-mode", 2.5},
	"figma":      {"mcp-code-mode", 2.5},
	"clickup":    {"mcp-code-mode", 2.5},
	"notion":     {"mcp-code-mode", 2.5},
	"external":   {"mcp-code-mode", 0.4},
	"typescript": {"mcp-code-mode", 0.4},
	"utcp":       {"mcp-code-mode", 0.8},
	"site":       {"mcp-code-mode", 0.6},
	"sites":      {"mcp-code-mode", 0.6},
	"page":       {"mcp-code-mode", 0.4},
	"pages":      {"mcp-code-mode", 0.4},
	"component":  {"mcp-code-mode", 0.4},
	"cms":        {"mcp-code-mode", 0.5},

	"implement":    {"workflows-code", 0.6},
	"bug":          {"workflows-code", 0.5},
	"refactor":     {"workflows-code", 0.6},
	"verification": {"workflows-code", 0.5},
}

// Multi-skill boosters mark keywords that point at several skills at once.
var defaultMultiSkillBoosters = map[string][]Boost{
	"codebase": {{"mcp-leann", 0.2}, {"mcp-code-context", 0.2}},
	"search":   {{"mcp-leann", 0.2}, {"mcp-code-context", 0.2}},
	"code":     {{"workflows-code", 0.2}, {"mcp-code-context", 0.15}, {"mcp-leann", 0.1}},
	"find":     {{"mcp-leann", 0.2}, {"mcp-code-context", 0.2}},
	"fix":      {{"workflows-code", 0.3}, {"workflows-git", 0.1}},
	"test":     {{"workflows-code", 0.3}, {"workflows-chrome-devtools", 0.2}},
	"save":     {{"system-memory", 0.3}, {"workflows-git", 0.2}},
	"context":  {{"system-memory", 0.3}, {"mcp-code-context", 0.2}},
	"plan":     {{"system-spec-kit", 0.3}, {"workflows-code", 0.2}},
	"api":      {{"mcp-code-mode", 0.3}, {"mcp-leann", 0.2}},
	"mcp":      {{"mcp-code-mode", 0.3}, {"mcp-leann", 0.2}, {"mcp-code-context", 0.2}},
	"update":   {{"mcp-code-mode", 0.3}, {"workflows-git", 0.2}, {"workflows-code", 0.2}},
	"changes":  {{"workflows-git", 0.4}, {"system-memory", 0.2}},
}
