package leadadmin

import "errors"

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrAlreadyConverted = errors.New("lead already converted")
	ErrInvalidStatus    = errors.New("invalid lead status")
)
