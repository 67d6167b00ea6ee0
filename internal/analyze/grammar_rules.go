package analyze

import (
	"regexp"

	"github.com/kavya/lexis/internal/accuracy"
)

// grammarRule is one pattern-based grammar check. TypeModifier scales the
// severity weight by error family (agreement errors damage comprehension
// more than article slips). Advanced rules only run above the free tier.
type grammarRule struct {
	ID           string
	Pattern      *regexp.Regexp
	Severity     accuracy.Severity
	TypeModifier float64
	Message      string
	Suggestion   string
	Explanation  string
	Examples     []string
	Advanced     bool
}

// grammarRules is the ordered rule set. Order matters only for feedback
// priority; scoring dedupes overlapping spans downstream.
var grammarRules = []grammarRule{
	{
		ID:           "object-pronoun-subject",
		Pattern:      regexp.MustCompile(`(?i)\bme\s+(?:go|goes|went|like|likes|no|not|want|wants|need|needs|think|thinks|am|is|do|don't|have|has)\b`),
		Severity:     accuracy.SeverityCritical,
		TypeModifier: 1.2,
		Message:      "object pronoun used as subject",
		Suggestion:   "use \"I\" as the subject of the sentence",
		Explanation:  "\"Me\" is an object pronoun; the doer of the action takes the subject form \"I\".",
		Examples:     []string{"I went to the shop."},
	},
	{
		ID:           "bare-no-negation",
		Pattern:      regexp.MustCompile(`(?i)\b(?:i|you|he|she|we|they|me)\s+no\s+(?:like|likes|want|wants|have|has|know|knows|go|goes|need|needs|understand|understands)\b`),
		Severity:     accuracy.SeverityCritical,
		TypeModifier: 1.2,
		Message:      "negation needs an auxiliary verb",
		Suggestion:   "negate with \"do not\" / \"does not\"",
		Explanation:  "English negates verbs with an auxiliary: \"I do not like it\", not \"I no like it\".",
		Examples:     []string{"I do not like it."},
	},
	{
		ID:           "missing-auxiliary-question",
		Pattern:      regexp.MustCompile(`(?i)\b(?:why|what|where|when|how)\s+(?:it|he|she|you|i|we|they|this|that)\s+(?:\w+ing\b|wrong|right|good|bad|here|there|like|so)`),
		Severity:     accuracy.SeverityCritical,
		TypeModifier: 1.2,
		Message:      "question is missing an auxiliary verb",
		Suggestion:   "add \"is\", \"are\", or \"do\" after the question word",
		Explanation:  "Wh-questions need an auxiliary: \"Why is it wrong?\" rather than \"Why it wrong?\".",
		Examples:     []string{"Why is it wrong?"},
	},
	{
		ID:           "first-person-be-agreement",
		Pattern:      regexp.MustCompile(`(?i)\bi\s+(?:is|are|be)\b`),
		Severity:     accuracy.SeverityCritical,
		TypeModifier: 1.2,
		Message:      "\"I\" takes \"am\"",
		Suggestion:   "use \"I am\"",
		Explanation:  "The verb \"be\" conjugates as \"am\" with the first person singular.",
		Examples:     []string{"I am happy."},
	},
	{
		ID:           "third-person-dont",
		Pattern:      regexp.MustCompile(`(?i)\b(?:he|she|it)\s+don't\b`),
		Severity:     accuracy.SeverityMajor,
		TypeModifier: 1.2,
		Message:      "third person singular takes \"doesn't\"",
		Suggestion:   "use \"doesn't\"",
		Explanation:  "With he/she/it, \"do\" conjugates to \"does\": \"she doesn't know\".",
		Examples:     []string{"He doesn't like tea."},
	},
	{
		ID:           "third-person-have",
		Pattern:      regexp.MustCompile(`(?i)\b(?:he|she|it)\s+have\b`),
		Severity:     accuracy.SeverityMajor,
		TypeModifier: 1.2,
		Message:      "third person singular takes \"has\"",
		Suggestion:   "use \"has\"",
		Examples:     []string{"She has a car."},
	},
	{
		ID:           "plural-was",
		Pattern:      regexp.MustCompile(`(?i)\b(?:you|we|they)\s+was\b`),
		Severity:     accuracy.SeverityMajor,
		TypeModifier: 1.2,
		Message:      "plural subject takes \"were\"",
		Suggestion:   "use \"were\"",
		Examples:     []string{"They were late."},
	},
	{
		ID:           "modal-of",
		Pattern:      regexp.MustCompile(`(?i)\b(?:could|should|would|must|might)\s+of\b`),
		Severity:     accuracy.SeverityMajor,
		TypeModifier: 1.0,
		Message:      "\"of\" after a modal verb",
		Suggestion:   "use \"have\" (\"could have\")",
		Explanation:  "\"Could of\" is a mishearing of the contraction \"could've\" (could have).",
		Examples:     []string{"I could have gone."},
	},
	{
		ID:           "irregular-past-overregularized",
		Pattern:      regexp.MustCompile(`(?i)\b(?:goed|wented|eated|buyed|catched|teached|thinked|taked|maked|getted|runned|comed|bringed|finded)\b`),
		Severity:     accuracy.SeverityMajor,
		TypeModifier: 1.0,
		Message:      "irregular verb given a regular past form",
		Suggestion:   "use the irregular past form (went, ate, bought…)",
		Examples:     []string{"I went home.", "She ate lunch."},
	},
	{
		ID:           "double-negative",
		Pattern:      regexp.MustCompile(`(?i)\b(?:don't|doesn't|didn't|can't|won't|couldn't|never)\s+(?:\w+\s+){0,2}(?:no|nothing|nobody|none|nowhere)\b`),
		Severity:     accuracy.SeverityMajor,
		TypeModifier: 1.0,
		Message:      "double negative",
		Suggestion:   "keep a single negation",
		Explanation:  "Standard English uses one negative per clause: \"I don't know anything\".",
		Examples:     []string{"I don't know anything."},
	},
	{
		ID:           "tense-sequence-past-marker",
		Pattern:      regexp.MustCompile(`(?i)\b(?:yesterday|ago|last\s+(?:week|night|month|year))\b[^.!?]*\b(?:go|goes|come|comes|see|sees|buy|buys|eat|eats|get|gets|make|makes)\b`),
		Severity:     accuracy.SeverityHigh,
		TypeModifier: 1.0,
		Message:      "present tense with a past time marker",
		Suggestion:   "use the past tense with time markers like \"yesterday\"",
		Examples:     []string{"I went there yesterday."},
	},
	{
		ID:           "tense-sequence-verb-first",
		Pattern:      regexp.MustCompile(`(?i)\b(?:go|goes|come|comes|see|sees|buy|buys|eat|eats|get|gets|make|makes)\b[^.!?]*\b(?:yesterday|ago|last\s+(?:week|night|month|year))\b`),
		Severity:     accuracy.SeverityHigh,
		TypeModifier: 1.0,
		Message:      "present tense with a past time marker",
		Suggestion:   "use the past tense with time markers like \"yesterday\"",
		Examples:     []string{"I saw her last week."},
	},
	{
		ID:           "double-comparative",
		Pattern:      regexp.MustCompile(`(?i)\bmore\s+(?:better|worse|easier|harder|bigger|smaller|faster|slower|nicer)\b`),
		Severity:     accuracy.SeverityMedium,
		TypeModifier: 1.0,
		Message:      "double comparative",
		Suggestion:   "drop \"more\" before a comparative form",
		Examples:     []string{"This is better."},
	},
	{
		ID:           "aint",
		Pattern:      regexp.MustCompile(`(?i)\bain't\b`),
		Severity:     accuracy.SeverityMedium,
		TypeModifier: 0.8,
		Message:      "nonstandard contraction \"ain't\"",
		Suggestion:   "use \"am not\", \"isn't\", or \"aren't\"",
	},
	{
		ID:           "article-a-before-vowel",
		Pattern:      regexp.MustCompile(`(?i)\ba\s+(?:apple|orange|egg|hour|idea|umbrella|elephant|answer|example|engineer|island|uncle|aunt)\b`),
		Severity:     accuracy.SeverityLow,
		TypeModifier: 0.8,
		Message:      "\"a\" before a vowel sound",
		Suggestion:   "use \"an\"",
	},
	{
		ID:           "article-an-before-consonant",
		Pattern:      regexp.MustCompile(`(?i)\ban\s+(?:book|car|dog|house|man|woman|day|week|place|table|job|school|store|shop)\b`),
		Severity:     accuracy.SeverityLow,
		TypeModifier: 0.8,
		Message:      "\"an\" before a consonant sound",
		Suggestion:   "use \"a\"",
	},
	{
		ID:           "hypothetical-was",
		Pattern:      regexp.MustCompile(`(?i)\bif\s+i\s+was\b`),
		Severity:     accuracy.SeverityLow,
		TypeModifier: 0.8,
		Message:      "subjunctive uses \"were\"",
		Suggestion:   "use \"if I were\" for hypotheticals",
		Explanation:  "Unreal conditions take the subjunctive: \"If I were rich…\".",
		Advanced:     true,
	},
	{
		ID:           "informal-contraction",
		Pattern:      regexp.MustCompile(`(?i)\b(?:gonna|wanna|gotta|kinda|sorta)\b`),
		Severity:     accuracy.SeveritySuggestion,
		TypeModifier: 0.5,
		Message:      "informal spoken contraction in writing",
		Suggestion:   "write the full form (going to, want to…)",
		Advanced:     true,
	},
}

// commonVerbs backs the sentence-fragment heuristic: a sentence with
// several words but none of these (and no -ed/-ing form) likely lacks a
// predicate.
var commonVerbs = map[string]bool{
	"is": true, "am": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true,
	"do": true, "does": true, "did": true, "done": true,
	"have": true, "has": true, "had": true,
	"go": true, "goes": true, "went": true, "gone": true,
	"get": true, "gets": true, "got": true,
	"make": true, "makes": true, "made": true,
	"know": true, "knows": true, "knew": true,
	"think": true, "thinks": true, "thought": true,
	"see": true, "sees": true, "saw": true, "seen": true,
	"come": true, "comes": true, "came": true,
	"want": true, "wants": true, "wanted": true,
	"like": true, "likes": true, "liked": true,
	"need": true, "needs": true, "say": true, "says": true, "said": true,
	"take": true, "takes": true, "took": true,
	"eat": true, "eats": true, "ate": true,
	"buy": true, "buys": true, "bought": true,
	"feel": true, "feels": true, "felt": true,
	"tell": true, "tells": true, "told": true,
	"can": true, "could": true, "will": true, "would": true,
	"shall": true, "should": true, "may": true, "might": true, "must": true,
	"live": true, "lives": true, "lived": true,
	"work": true, "works": true, "worked": true,
	"love": true, "loves": true, "loved": true,
	"play": true, "plays": true, "played": true,
	"study": true, "studies": true, "studied": true,
}
