package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"formora/internal/model"
)

// TopN is how many of the most common answers are kept in a summary.
const TopN = 3

// Result is the outcome of aggregating one question.
// Skipped counts answers that were discarded (non-digit numbers, bad JSON).
// Apply is false when the stored statistics must be left untouched.
type Result struct {
	Stats   model.QuestionStats
	Apply   bool
	Skipped int
}

// Compute aggregates a question according to its declared type.
func Compute(q QuestionGroup) Result {
	answers := Present(q.Answers)

	switch q.Type {
	case model.QuestionInteger:
		stats, used := Numeric(answers)
		return Result{Stats: stats, Apply: used > 0, Skipped: len(answers) - used}
	case model.QuestionString, model.QuestionText:
		return Result{Stats: model.QuestionStats{CommonAnswers: CommonAnswers(answers, TopN)}, Apply: true}
	case model.QuestionCheckbox:
		choices, skipped := FlattenChoices(answers)
		return Result{Stats: model.QuestionStats{CommonAnswers: CommonAnswers(choices, TopN)}, Apply: true, Skipped: skipped}
	default:
		return Result{}
	}
}

// Numeric computes mean/min/max over answers made only of ASCII digits.
// It returns the number of answers that took part; zero means no statistic.
func Numeric(answers []string) (model.QuestionStats, int) {
	var (
		sum, lo, hi float64
		n           int
	)
	for _, a := range answers {
		if !isDigits(a) {
			continue
		}
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			// out of float64 range; the stats columns could not hold it either
			continue
		}
		if n == 0 || v < lo {
			lo = v
		}
		if n == 0 || v > hi {
			hi = v
		}
		sum += v
		n++
	}
	if n == 0 {
		return model.QuestionStats{}, 0
	}
	return model.QuestionStats{Avg: sum / float64(n), Min: lo, Max: hi}, n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FlattenChoices decodes every answer as a JSON array and concatenates the
// elements. Answers that are not a JSON array are skipped and counted.
func FlattenChoices(answers []string) ([]string, int) {
	out := make([]string, 0, len(answers))
	skipped := 0
	for _, a := range answers {
		choices, err := decodeChoices(a)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, choices...)
	}
	return out, skipped
}

func decodeChoices(raw string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("choice list is null")
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after choice list")
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, choiceString(it))
	}
	return out, nil
}

func choiceString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case json.Number:
		return c.String()
	case nil:
		return "null"
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(c); err != nil {
			return fmt.Sprint(c)
		}
		return strings.TrimSpace(buf.String())
	}
}

// ValueCount is one entry of a frequency ranking.
type ValueCount struct {
	Value string
	Count int
}

// MostCommon counts values and returns the n most frequent, ties broken by
// first occurrence.
func MostCommon(values []string, n int) []ValueCount {
	index := make(map[string]int)
	counts := make([]ValueCount, 0)
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, ValueCount{Value: v, Count: 1})
	}

	slices.SortStableFunc(counts, func(a, b ValueCount) int {
		return b.Count - a.Count
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// CommonAnswers renders the n most frequent values as "value (count)" joined by ", ".
func CommonAnswers(values []string, n int) string {
	top := MostCommon(values, n)
	parts := make([]string, 0, len(top))
	for _, vc := range top {
		parts = append(parts, fmt.Sprintf("%s (%d)", vc.Value, vc.Count))
	}
	return strings.Join(parts, ", ")
}
