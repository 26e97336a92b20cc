package game

import (
	"github.com/truthiebot/truthie/internal/catalog"
	"github.com/truthiebot/truthie/internal/models"
)

// IntentType tags an outbound notification intent.
type IntentType string

// Intent types produced by the engine. The transport renders them; the
// engine never formats mentions or platform markup.
const (
	IntentText         IntentType = "announce_text"          // Plain announcement text.
	IntentChoicePrompt IntentType = "announce_choice_prompt" // Active player must choose truth or dare.
	IntentChallenge    IntentType = "announce_challenge"     // A prompt was issued to its owner.
	IntentElimination  IntentType = "announce_elimination"   // A player left the alive set.
	IntentRoundStart   IntentType = "announce_round_start"   // A new round begins.
	IntentGameOver     IntentType = "announce_game_over"     // Session finished, winners and scores attached.
	IntentStatus       IntentType = "status_report"          // Reply to a status query.
	IntentScoreboard   IntentType = "scoreboard_report"      // Reply to a scoreboard query.
)

// EliminationReason says why a player left the alive set.
type EliminationReason string

const (
	EliminatedByTimeout EliminationReason = "timeout"
	EliminatedByPass    EliminationReason = "pass"
	EliminatedByQuit    EliminationReason = "quit"
)

// Intent is one abstract outbound notification. Only the fields relevant
// to Type are set.
type Intent struct {
	Type IntentType

	// Text carries the announcement for IntentText.
	Text string

	// Player is the choice-prompt target, challenge owner or eliminated
	// player, depending on Type.
	Player *models.Player

	// Reason qualifies IntentElimination.
	Reason EliminationReason

	// Kind and Prompt describe an issued challenge.
	Kind   catalog.Kind
	Prompt string

	// Round is the newly started round for IntentRoundStart.
	Round int

	// Winners and Scores accompany IntentGameOver. Winners is empty when
	// everyone was eliminated; Scores covers the surviving players.
	Winners []models.Player
	Scores  map[models.PlayerID]int

	// Status accompanies IntentStatus.
	Status *StatusReport

	// Rows accompany IntentScoreboard, sorted by score descending.
	Rows []ScoreRow
}

// StatusReport snapshots a session for the status query.
type StatusReport struct {
	Round       int
	TotalRounds int
	Alive       []models.Player
	Eliminated  []models.Player
	Active      *models.Player // nil when no turn is open
	Scores      []ScoreRow     // roster order
}

// ScoreRow is one scoreboard line.
type ScoreRow struct {
	Player     models.Player
	Score      int
	Eliminated bool
}

func textIntent(text string) Intent {
	return Intent{Type: IntentText, Text: text}
}
