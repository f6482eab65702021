package match

import "errors"

var (
	ErrInProgress      = errors.New("the match is in progress")
	ErrNotInProgress   = errors.New("the match is not in progress")
	ErrNotInMatch      = errors.New("participant is not in the match")
	ErrAlreadyInMatch  = errors.New("participant is already in the match")
	ErrStartConditions = errors.New("conditions not met for the match to start")
	ErrDisposing       = errors.New("the match is already disposing")
	ErrGameOver        = errors.New("the match is over")
	ErrControlNotFound = errors.New("control not found")
	ErrInvalidValue    = errors.New("invalid control value")
	ErrUnknownSpecial  = errors.New("unknown special event")
)
