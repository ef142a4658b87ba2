package gamedomain

import "errors"

var (
	// ErrNoPlayers indicates a game summary was requested without players.
	ErrNoPlayers = errors.New("game has no players")

	// ErrInvalidGameMode indicates the game mode is not a positive starting score.
	ErrInvalidGameMode = errors.New("invalid game mode")

	// ErrInvalidLegs indicates legsPlayed is below one.
	ErrInvalidLegs = errors.New("legs played must be at least 1")

	// ErrDuplicatePlayer indicates two players in one game share a name, which
	// would make the winner ambiguous.
	ErrDuplicatePlayer = errors.New("duplicate player name")
)
