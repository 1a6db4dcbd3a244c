package service

import "errors"

var (
	// ErrAppraisalNotFound is returned when the appraisal does not exist
	ErrAppraisalNotFound = errors.New("appraisal not found")

	// ErrNotAuthorized is returned when the acting user is not the current
	// pending approver, or the appraisal has nothing pending to act on
	ErrNotAuthorized = errors.New("not authorized to act on this appraisal")

	// ErrInvalidAction is returned for actions other than approve or reject
	ErrInvalidAction = errors.New("invalid approval action")
)
