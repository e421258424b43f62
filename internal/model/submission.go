package model

import "time"

// Submission is one flat record returned by the Formora API:
// a single answer to a single question of a filled form.
// Answer is nil when the respondent left the question empty.
type Submission struct {
	FormID         int64        `json:"form_id"`
	TemplateID     int64        `json:"templateId"`
	UserID         int64        `json:"user_id"`
	UserName       string       `json:"user_name"`
	SubmissionDate *time.Time   `json:"submission_date,omitempty"`
	QuestionID     int64        `json:"question_id"`
	QuestionTitle  string       `json:"question_title"`
	QuestionType   QuestionType `json:"question_type"`
	ShowInTable    bool         `json:"show_in_table"`
	Answer         *string      `json:"answer"`
}
