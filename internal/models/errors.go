package models

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrQuoteNotFound = errors.New("quote request not found")
var ErrDraftNotFound = errors.New("quote draft not found")
var ErrDuplicateUser = errors.New("user with this phone or email already exists")
var ErrInvalidCredentials = errors.New("invalid phone or password")
var ErrForbidden = errors.New("forbidden")

var (
	ErrInvalidStatusTransition = errors.New("invalid quote status transition")
	ErrQuoteNotCompleted       = errors.New("quote request is not completed")
	ErrAlreadyRated            = errors.New("quote request already rated")
	ErrNoActiveSubscription    = errors.New("no active subscription")
	ErrPlanNotFound            = errors.New("subscription plan not found")
)
