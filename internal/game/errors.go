package game

import "errors"

// Validation rejections. All are expected, user-facing and non-fatal: the
// triggering operation leaves session state unchanged and the transport
// renders them however it likes. Callers match with errors.Is.
var (
	// ErrNoSuchSession: the room has no live session for this operation.
	ErrNoSuchSession = errors.New("no game in progress")

	// ErrNotInLobby: the player is not part of the lobby or roster.
	ErrNotInLobby = errors.New("not part of the current game")

	// ErrAlreadyInLobby: duplicate join while the lobby is open.
	ErrAlreadyInLobby = errors.New("already in the lobby")

	// ErrNotYourTurn: a choice arrived from someone other than the active
	// player, or outside an open choice window.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNotYourChallenge: a resolution arrived from someone other than the
	// pending challenge's owner, or with no challenge issued.
	ErrNotYourChallenge = errors.New("not your challenge")

	// ErrAlreadyEliminated: the player already left the alive set.
	ErrAlreadyEliminated = errors.New("already eliminated")

	// ErrGameAlreadyInProgress: the room already owns a live session.
	ErrGameAlreadyInProgress = errors.New("game already in progress")

	// ErrNotAGroupContext: the open-lobby command came from a non-group
	// chat, as resolved by the transport.
	ErrNotAGroupContext = errors.New("only works in group chats")

	// ErrNotAuthorizedToStart: the caller may not open a lobby here, as
	// resolved by the transport's permission check.
	ErrNotAuthorizedToStart = errors.New("not authorized to start a game")
)
