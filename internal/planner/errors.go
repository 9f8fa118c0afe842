package planner

import "errors"

var (
	ErrNotFound        = errors.New("plan entry not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateCourse = errors.New("course already on plan")
)
