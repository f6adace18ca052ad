package calendar

import "errors"

var (
	ErrBranchNotFound = errors.New("calendar.service: branch not found")
	ErrInternal       = errors.New("calendar.service: internal error")
)
