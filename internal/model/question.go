package model

// QuestionType is the declared kind of a Formora question.
type QuestionType string

const (
	QuestionString   QuestionType = "STRING"
	QuestionInteger  QuestionType = "INTEGER"
	QuestionCheckbox QuestionType = "CHECKBOX"
	QuestionText     QuestionType = "TEXT"
)

// Valid reports whether t is one of the known question kinds.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionString, QuestionInteger, QuestionCheckbox, QuestionText:
		return true
	}
	return false
}

// Label is the human-readable name of the question kind.
func (t QuestionType) Label() string {
	switch t {
	case QuestionString:
		return "Text"
	case QuestionInteger:
		return "Number"
	case QuestionCheckbox:
		return "Multiple Choice"
	case QuestionText:
		return "Long Text"
	}
	return string(t)
}

// Question is one field of a template together with its aggregated answers.
// (TemplateID, RemoteID) is unique.
type Question struct {
	ID          int64        `json:"id"`
	TemplateID  int64        `json:"template_id"`
	RemoteID    int64        `json:"remote_id"`
	Text        string       `json:"question_text"`
	Type        QuestionType `json:"question_type"`
	ShowInTable bool         `json:"show_in_table"`
	QuestionStats
}

// QuestionStats holds the computed statistics of a question.
// Numeric questions fill Avg/Min/Max; text and choice questions fill CommonAnswers.
type QuestionStats struct {
	Avg           float64 `json:"avg_value"`
	Min           float64 `json:"min_value"`
	Max           float64 `json:"max_value"`
	CommonAnswers string  `json:"common_answers"`
}
