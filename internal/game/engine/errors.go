package engine

import "errors"

var (
	ErrNoActivePlayers       = errors.New("no active players")
	ErrNotEnoughPlayers      = errors.New("need at least 2 players with chips")
	ErrHandInProgress        = errors.New("hand already in progress")
	ErrHandNotStarted        = errors.New("hand not started")
	ErrHandEnded             = errors.New("hand already ended")
	ErrPotNotSettled         = errors.New("pot from previous hand not awarded")
	ErrInvalidCommunityCount = errors.New("invalid community card count")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerFolded          = errors.New("player has folded")
	ErrInsufficientChips     = errors.New("insufficient chips")
	ErrInvalidAmount         = errors.New("invalid bet amount")
)
