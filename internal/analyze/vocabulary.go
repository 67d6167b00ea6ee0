package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/textutil"
	"github.com/kavya/lexis/internal/tier"
)

const (
	// vocabBase anchors the range score; component bonuses build on it.
	vocabBase = 50.0

	// shortMessageWords is the word count under which the short-message
	// leniency boost applies: brevity is not poverty of vocabulary.
	shortMessageWords  = 8
	shortMessageBoost  = 8.0
	repetitionCap      = 15.0
	repetitionPerExtra = 3.0
)

// academicWords is a compact slice of the Academic Word List.
var academicWords = map[string]bool{
	"analyze": true, "analysis": true, "approach": true, "area": true,
	"assess": true, "assume": true, "benefit": true, "concept": true,
	"consequently": true, "considerable": true, "constant": true,
	"context": true, "creation": true, "data": true, "define": true,
	"demonstrate": true, "derive": true, "distribute": true, "economy": true,
	"environment": true, "establish": true, "estimate": true,
	"evaluate": true, "evidence": true, "factor": true, "furthermore": true,
	"hypothesis": true, "identify": true, "indicate": true,
	"individual": true, "interpret": true, "involve": true, "issue": true,
	"method": true, "moreover": true, "occur": true, "percent": true,
	"period": true, "policy": true, "principle": true, "process": true,
	"require": true, "research": true, "respond": true, "role": true,
	"section": true, "significant": true, "similar": true, "source": true,
	"specific": true, "structure": true, "theory": true, "therefore": true,
}

// rareWordLength: words at least this long count toward the rare-word
// ratio (a cheap stand-in for corpus frequency).
const rareWordLength = 9

// Vocabulary scores lexical richness: diversity, academic usage, rare
// words and word length, minus a repetition penalty, plus a leniency
// boost for very short messages.
func Vocabulary(message string, caps tier.Capabilities) Result {
	words := textutil.LowerWords(message)
	if len(words) == 0 {
		return finish(Result{
			Score:    0,
			Feedback: []string{"no words to evaluate"},
		})
	}

	freq := textutil.Frequencies(words)
	diversity := float64(len(freq)) / float64(len(words))

	academic := 0
	rare := 0
	for _, w := range words {
		if academicWords[w] {
			academic++
		}
		if len(w) >= rareWordLength && !textutil.IsFunctionWord(w) {
			rare++
		}
	}
	academicRatio := float64(academic) / float64(len(words))
	rareRatio := float64(rare) / float64(len(words))
	avgLen := textutil.AverageWordLength(words)

	score := vocabBase
	score += diversity * 20
	score += minFloat(academicRatio*100, 15)
	score += minFloat(rareRatio*80, 15)

	lengthBonus := (avgLen - 4) * 2.5
	if lengthBonus > 10 {
		lengthBonus = 10
	}
	if lengthBonus < -5 {
		lengthBonus = -5
	}
	score += lengthBonus

	var (
		errors   []accuracy.ErrorRecord
		feedback []string
	)

	repetition := 0.0
	repeated := repeatedWords(freq)
	for _, r := range repeated {
		repetition += float64(r.count-2) * repetitionPerExtra
		errors = append(errors, accuracy.ErrorRecord{
			Kind:       accuracy.KindVocabulary,
			Severity:   accuracy.SeveritySuggestion,
			Message:    fmt.Sprintf("%q is used %d times", r.word, r.count),
			Matched:    r.word,
			Suggestion: "vary your word choice",
			RuleID:     "word-repetition",
		})
	}
	if repetition > repetitionCap {
		repetition = repetitionCap
	}
	if repetition > 0 {
		feedback = append(feedback, "some words repeat often, try synonyms to vary your writing")
	}
	score -= repetition

	if len(words) < shortMessageWords {
		score += shortMessageBoost
	}

	if diversity >= 0.9 && len(words) >= shortMessageWords {
		feedback = append(feedback, "good lexical variety")
	}

	return finish(Result{
		Score:    accuracy.ClampScore(score),
		Errors:   errors,
		Feedback: feedback,
		Metrics: accuracy.CategoryMetrics{
			DominantPatterns: topRepeated(repeated),
			Details: map[string]float64{
				"diversity":      diversity,
				"academic_ratio": academicRatio,
				"rare_ratio":     rareRatio,
				"avg_word_len":   avgLen,
			},
		},
	})
}

type wordCount struct {
	word  string
	count int
}

// repeatedWords returns overused content words ordered by count
// descending, ties broken alphabetically, so output is stable across
// calls on the same input.
func repeatedWords(freq map[string]int) []wordCount {
	var out []wordCount
	for w, n := range freq {
		if n > 2 && !textutil.IsFunctionWord(w) {
			out = append(out, wordCount{word: w, count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].word < out[j].word
	})
	return out
}

func topRepeated(repeated []wordCount) []string {
	var out []string
	for _, r := range repeated {
		out = append(out, strings.ToLower(r.word))
		if len(out) == 3 {
			break
		}
	}
	return out
}
