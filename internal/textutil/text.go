// Package textutil provides the small text primitives shared by the
// category analyzers: word and sentence segmentation, syllable
// estimation, and content/function word classification.
package textutil

import (
	"strings"
	"unicode"
)

// Words splits a message into word tokens, keeping internal apostrophes
// and hyphens ("don't", "well-known") as part of the word.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

// LowerWords returns Words lowercased, with leading/trailing apostrophes
// and hyphens trimmed.
func LowerWords(text string) []string {
	words := Words(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(strings.ToLower(w), "'-")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Sentences splits text on terminal punctuation. Trailing fragments
// without a terminator count as a sentence so unfinished messages are
// still evaluated.
func Sentences(text string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// SyllableCount estimates syllables in a word by counting vowel groups,
// discounting a trailing silent e. Every word counts at least one.
func SyllableCount(word string) int {
	word = strings.ToLower(strings.Trim(word, "'-"))
	if word == "" {
		return 0
	}

	isVowel := func(r byte) bool {
		return r == 'a' || r == 'e' || r == 'i' || r == 'o' || r == 'u' || r == 'y'
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(word); i++ {
		v := isVowel(word[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent trailing e ("store", "make"), but not a lone "e" or "-le".
	if count > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

// functionWords are grammatical glue words. Errors in them are weighted
// below errors in content words by the spelling analyzer.
var functionWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "or": true, "but": true, "nor": true, "so": true, "yet": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true, "them": true,
	"my": true, "your": true, "his": true, "its": true, "our": true, "their": true,
	"this": true, "that": true, "these": true, "those": true,
	"in": true, "on": true, "at": true, "to": true, "of": true, "for": true,
	"from": true, "with": true, "by": true, "about": true, "as": true,
	"into": true, "over": true, "under": true, "up": true, "down": true,
	"is": true, "am": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true,
	"do": true, "does": true, "did": true, "have": true, "has": true, "had": true,
	"will": true, "would": true, "can": true, "could": true, "shall": true,
	"should": true, "may": true, "might": true, "must": true,
	"not": true, "no": true, "if": true, "then": true, "than": true,
	"there": true, "here": true, "what": true, "which": true, "who": true,
	"whom": true, "when": true, "where": true, "why": true, "how": true,
	"all": true, "any": true, "some": true, "each": true, "very": true,
	"too": true, "also": true, "just": true, "only": true, "own": true,
	"same": true, "such": true, "both": true, "more": true, "most": true,
	"other": true, "now": true,
}

// IsFunctionWord reports whether the (case-insensitive) word is
// grammatical glue rather than content.
func IsFunctionWord(word string) bool {
	return functionWords[strings.ToLower(word)]
}

// Frequencies returns lowercase word counts.
func Frequencies(words []string) map[string]int {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[strings.ToLower(w)]++
	}
	return freq
}

// AverageWordLength returns the mean rune length of words, 0 for none.
func AverageWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}
