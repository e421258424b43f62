// Package aggregate turns flat Formora submission records into per-question
// statistics. Everything here is pure; persistence lives in the service layer.
package aggregate

import "formora/internal/model"

// TemplateGroup is the set of records belonging to one remote template.
// Author is the user_name of the first record seen for the template.
type TemplateGroup struct {
	TemplateID int64
	Author     string
	Records    []model.Submission
}

// QuestionGroup collects every answer given to one question of a template.
// Text, Type and ShowInTable come from the first record seen for the question.
type QuestionGroup struct {
	QuestionID  int64
	Text        string
	Type        model.QuestionType
	ShowInTable bool
	Answers     []*string
}

// GroupByTemplate partitions records by template id, keeping first-seen order
// of templates and the original order of records inside each group.
func GroupByTemplate(records []model.Submission) []TemplateGroup {
	index := make(map[int64]int)
	groups := make([]TemplateGroup, 0)

	for _, r := range records {
		i, ok := index[r.TemplateID]
		if !ok {
			i = len(groups)
			index[r.TemplateID] = i
			groups = append(groups, TemplateGroup{TemplateID: r.TemplateID, Author: r.UserName})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// GroupByQuestion partitions one template's records by question id.
func GroupByQuestion(records []model.Submission) []QuestionGroup {
	index := make(map[int64]int)
	groups := make([]QuestionGroup, 0)

	for _, r := range records {
		i, ok := index[r.QuestionID]
		if !ok {
			i = len(groups)
			index[r.QuestionID] = i
			groups = append(groups, QuestionGroup{
				QuestionID:  r.QuestionID,
				Text:        r.QuestionTitle,
				Type:        r.QuestionType,
				ShowInTable: r.ShowInTable,
			})
		}
		groups[i].Answers = append(groups[i].Answers, r.Answer)
	}
	return groups
}

// Present drops nil answers and returns the remaining values.
func Present(answers []*string) []string {
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}
