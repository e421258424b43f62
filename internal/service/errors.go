package service

import "errors"

var (
	ErrTokenRequired     = errors.New("api token is required")
	ErrInvalidTemplateID = errors.New("template id must be a positive number")
	ErrNoData            = errors.New("no data found for the specified criteria")
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("template not found")
)
