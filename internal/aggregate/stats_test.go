package aggregate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"formora/internal/model"
)

func strs(vs ...string) []*string {
	out := make([]*string, 0, len(vs))
	for i := range vs {
		out = append(out, &vs[i])
	}
	return out
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    model.QuestionStats
		used    int
	}{
		{
			name:    "non-digit answers excluded",
			answers: []string{"3", "5", "x"},
			want:    model.QuestionStats{Avg: 4, Min: 3, Max: 5},
			used:    2,
		},
		{
			name:    "signs decimals and blanks are not digits",
			answers: []string{"-1", "2.5", "", " 4", "10"},
			want:    model.QuestionStats{Avg: 10, Min: 10, Max: 10},
			used:    1,
		},
		{
			name:    "no usable answers",
			answers: []string{"abc"},
			want:    model.QuestionStats{},
			used:    0,
		},
		{
			name:    "digit strings beyond float64 range are excluded",
			answers: []string{"7", "1" + strings.Repeat("0", 400)},
			want:    model.QuestionStats{Avg: 7, Min: 7, Max: 7},
			used:    1,
		},
		{
			name:    "mean is fractional",
			answers: []string{"1", "2"},
			want:    model.QuestionStats{Avg: 1.5, Min: 1, Max: 2},
			used:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, used := Numeric(tt.answers)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.used, used)
		})
	}
}

func TestCommonAnswers(t *testing.T) {
	assert.Equal(t, "red (2), blue (1)", CommonAnswers([]string{"red", "red", "blue"}, TopN))
	assert.Equal(t, "", CommonAnswers(nil, TopN))

	// ties keep first-seen order and only the top three survive
	got := CommonAnswers([]string{"d", "a", "b", "c", "a", "b", "c"}, TopN)
	assert.Equal(t, "a (2), b (2), c (2)", got)
}

func TestFlattenChoices(t *testing.T) {
	choices, skipped := FlattenChoices([]string{`["a","b"]`, `["a"]`})
	assert.Equal(t, []string{"a", "b", "a"}, choices)
	assert.Zero(t, skipped)
	assert.Equal(t, "a (2), b (1)", CommonAnswers(choices, TopN))

	choices, skipped = FlattenChoices([]string{`not json`, `["x"]`, `"x"`, `null`, `[]`, `[1, true]`})
	assert.Equal(t, []string{"x", "1", "true"}, choices)
	assert.Equal(t, 3, skipped)
}

func TestCompute(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		res := Compute(QuestionGroup{Type: model.QuestionInteger, Answers: strs("3", "5", "x")})
		assert.True(t, res.Apply)
		assert.Equal(t, model.QuestionStats{Avg: 4, Min: 3, Max: 5}, res.Stats)
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("integer without digits leaves stats alone", func(t *testing.T) {
		res := Compute(QuestionGroup{Type: model.QuestionInteger, Answers: strs("n/a")})
		assert.False(t, res.Apply)
	})

	t.Run("text ignores null answers", func(t *testing.T) {
		answers := append(strs("red", "red", "blue"), nil)
		res := Compute(QuestionGroup{Type: model.QuestionText, Answers: answers})
		assert.True(t, res.Apply)
		assert.Equal(t, model.QuestionStats{CommonAnswers: "red (2), blue (1)"}, res.Stats)
	})

	t.Run("string", func(t *testing.T) {
		res := Compute(QuestionGroup{Type: model.QuestionString, Answers: strs("yes")})
		assert.Equal(t, "yes (1)", res.Stats.CommonAnswers)
	})

	t.Run("checkbox", func(t *testing.T) {
		res := Compute(QuestionGroup{Type: model.QuestionCheckbox, Answers: strs(`["a","b"]`, `["a"]`, `{bad`)})
		assert.True(t, res.Apply)
		assert.Equal(t, "a (2), b (1)", res.Stats.CommonAnswers)
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("unknown type", func(t *testing.T) {
		res := Compute(QuestionGroup{Type: "DATE", Answers: strs("2024-01-01")})
		assert.False(t, res.Apply)
	})
}
