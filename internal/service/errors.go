package service

import "errors"

var (
	ErrValidation       = errors.New("invalid data provided")
	ErrNoteNotFound     = errors.New("note not found")
	ErrConflictNotFound = errors.New("conflict not found")
	ErrAlreadyResolved  = errors.New("conflict already resolved")

	ErrSyncInProgress   = errors.New("sync pass already in progress")
	ErrSyncDisabled     = errors.New("sync is disabled")
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrWrongPassword      = errors.New("wrong login/password")
	ErrLoginAlreadyExists = errors.New("login already exists")
)
