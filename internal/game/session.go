// Package game implements the turn-based elimination engine: lobby and
// session state, turn rotation, time-bounded challenges, scoring,
// eliminations and round/game termination.
//
// All mutations to one room's session are serialized behind the session
// mutex. Timer callbacks re-enter through the same mutex, so a manual
// resolution and a timeout racing for the same turn resolve in whichever
// order they acquire it; the loser is rejected by the turn-token guard.
package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/truthiebot/truthie/internal/catalog"
	"github.com/truthiebot/truthie/internal/models"
)

// Phase is the lifecycle state of a GameSession.
type Phase string

const (
	PhaseLobbyOpen       Phase = "lobby_open"
	PhaseAwaitingChoice  Phase = "awaiting_choice"
	PhaseChallengeIssued Phase = "challenge_issued"
	PhaseRoundBreak      Phase = "round_break"
	PhaseFinished        Phase = "finished"
)

// Outcome is the explicit resolution of an issued challenge.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomePassed    Outcome = "passed"
)

// Challenge binds a sampled prompt to the player who must resolve it.
type Challenge struct {
	Kind   catalog.Kind
	Prompt string
	Owner  models.PlayerID
}

// Rules holds the fixed per-session configuration constants. They are not
// renegotiated mid-session.
type Rules struct {
	LobbyTimeout time.Duration
	TurnTimeout  time.Duration
	TotalRounds  int
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		LobbyTimeout: 30 * time.Second,
		TurnTimeout:  30 * time.Second,
		TotalRounds:  3,
	}
}

// GameSession is the aggregate root for one room's game. The roster order
// is fixed at lobby close; eliminations mark players, they never remove or
// reorder them.
type GameSession struct {
	ID   uuid.UUID
	Room string

	Phase      Phase
	Difficulty catalog.Difficulty
	Host       models.PlayerID

	Roster     []models.Player
	Round      int
	TurnIndex  int
	Eliminated map[models.PlayerID]struct{}
	Scores     map[models.PlayerID]int
	Active     models.PlayerID // empty when no turn is open
	Pending    *Challenge

	lobby     []models.Player // join order, only meaningful while PhaseLobbyOpen
	turnToken uint64          // bumped every time an awaiting-action window opens

	mu    sync.Mutex
	rules Rules
	cat   *catalog.Catalog
	sched *TurnScheduler
	log   *logrus.Entry

	// notify delivers intents produced by timer-driven events. Called with
	// the session mutex held; it must not re-enter the session.
	notify func([]Intent)

	// onFinished tells the owner the session reached PhaseFinished and can
	// be dropped from the store. Called with the session mutex held.
	onFinished func()
}

type sessionConfig struct {
	room       string
	host       models.PlayerID
	difficulty catalog.Difficulty
	rules      Rules
	cat        *catalog.Catalog
	sched      *TurnScheduler
	log        *logrus.Entry
	notify     func([]Intent)
	onFinished func()
}

// newSession creates a session in PhaseLobbyOpen. The lobby-close timer is
// scheduled separately via scheduleLobbyClose, after the session is safely
// registered in the store.
func newSession(cfg sessionConfig) *GameSession {
	id := uuid.New()
	s := &GameSession{
		ID:         id,
		Room:       cfg.room,
		Phase:      PhaseLobbyOpen,
		Difficulty: cfg.difficulty,
		Host:       cfg.host,
		Eliminated: make(map[models.PlayerID]struct{}),
		Scores:     make(map[models.PlayerID]int),
		turnToken:  1, // lobby window
		rules:      cfg.rules,
		cat:        cfg.cat,
		sched:      cfg.sched,
		log:        cfg.log.WithField("session", id),
		notify:     cfg.notify,
		onFinished: cfg.onFinished,
	}
	return s
}

// scheduleLobbyClose arms the lobby window timer.
func (s *GameSession) scheduleLobbyClose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Schedule(s.rules.LobbyTimeout, s.turnToken, s.handleLobbyClose)
}

// Join registers p in the lobby.
func (s *GameSession) Join(p models.Player) ([]Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase != PhaseLobbyOpen {
		return nil, ErrGameAlreadyInProgress
	}
	for _, q := range s.lobby {
		if q.ID == p.ID {
			return nil, ErrAlreadyInLobby
		}
	}
	s.lobby = append(s.lobby, p)
	s.log.WithFields(logrus.Fields{"player": p.ID, "lobby_size": len(s.lobby)}).Info("player joined lobby")
	return []Intent{textIntent(fmt.Sprintf("%s joined the game!", p.DisplayName))}, nil
}

// Quit eliminates p mid-game. If p holds the open turn, the turn advances
// through the same path a normal resolution takes, cancelling the pending
// timeout along the way.
func (s *GameSession) Quit(p models.Player) ([]Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase == PhaseLobbyOpen || s.Phase == PhaseFinished {
		return nil, ErrNoSuchSession
	}
	if !s.inRoster(p.ID) {
		return nil, ErrNotInLobby
	}
	if s.isEliminated(p.ID) {
		return nil, ErrAlreadyEliminated
	}

	s.Eliminated[p.ID] = struct{}{}
	s.log.WithField("player", p.ID).Info("player quit")
	intents := []Intent{{Type: IntentElimination, Player: &p, Reason: EliminatedByQuit}}

	if s.Active == p.ID {
		s.sched.CancelAll(s.turnToken)
		s.Active = ""
		s.Pending = nil
		s.TurnIndex++
		intents = s.openTurn(intents)
		if s.Phase == PhaseFinished {
			s.finish()
		}
	}
	return intents, nil
}

// ChooseType turns an open choice window into an issued challenge for the
// active player. The pending timeout is cancelled before any state
// changes; the token guard in the timeout handler backstops the cancel.
func (s *GameSession) ChooseType(p models.Player, kind catalog.Kind) ([]Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase != PhaseAwaitingChoice || s.Active != p.ID {
		return nil, ErrNotYourTurn
	}

	// Cancel first, then advance the token: a timeout that already left the
	// scheduler's queue sees a stale token and drops itself.
	s.sched.CancelAll(s.turnToken)
	s.turnToken++

	prompt := s.cat.Sample(kind, s.Difficulty)
	s.Pending = &Challenge{Kind: kind, Prompt: prompt, Owner: p.ID}
	s.Phase = PhaseChallengeIssued
	s.log.WithFields(logrus.Fields{"player": p.ID, "kind": kind}).Info("challenge issued")

	// No new timeout: resolution now requires an explicit Resolve.
	return []Intent{{Type: IntentChallenge, Player: &p, Kind: kind, Prompt: prompt}}, nil
}

// Resolve settles the issued challenge. Completing awards one point;
// passing eliminates the owner. Either way the turn advances.
func (s *GameSession) Resolve(p models.Player, outcome Outcome) ([]Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase != PhaseChallengeIssued || s.Pending == nil || s.Pending.Owner != p.ID {
		return nil, ErrNotYourChallenge
	}

	var intents []Intent
	switch outcome {
	case OutcomeCompleted:
		s.Scores[p.ID]++
		s.log.WithFields(logrus.Fields{"player": p.ID, "score": s.Scores[p.ID]}).Info("challenge completed")
		intents = append(intents, textIntent("Challenge completed! +1 point."))
	case OutcomePassed:
		s.Eliminated[p.ID] = struct{}{}
		s.log.WithField("player", p.ID).Info("challenge passed, player eliminated")
		intents = append(intents, Intent{Type: IntentElimination, Player: &p, Reason: EliminatedByPass})
	default:
		return nil, fmt.Errorf("unknown outcome %q", outcome)
	}

	s.Pending = nil
	s.Active = ""
	s.TurnIndex++
	intents = s.openTurn(intents)
	if s.Phase == PhaseFinished {
		s.finish()
	}
	return intents, nil
}

// Status reports the session snapshot. It never mutates state.
func (s *GameSession) Status() ([]Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase == PhaseLobbyOpen || s.Phase == PhaseFinished {
		return nil, ErrNoSuchSession
	}

	report := &StatusReport{
		Round:       s.Round,
		TotalRounds: s.rules.TotalRounds,
	}
	for _, p := range s.Roster {
		row := ScoreRow{Player: p, Score: s.Scores[p.ID], Eliminated: s.isEliminated(p.ID)}
		report.Scores = append(report.Scores, row)
		if row.Eliminated {
			report.Eliminated = append(report.Eliminated, p)
		} else {
			report.Alive = append(report.Alive, p)
		}
	}
	if s.Active != "" {
		if p, ok := s.rosterPlayer(s.Active); ok {
			report.Active = &p
		}
	}
	return []Intent{{Type: IntentStatus, Status: report}}, nil
}

// Scoreboard reports every roster member's score, highest first. Ties keep
// roster order.
func (s *GameSession) Scoreboard() ([]Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase == PhaseLobbyOpen || s.Phase == PhaseFinished {
		return nil, ErrNoSuchSession
	}

	rows := make([]ScoreRow, 0, len(s.Roster))
	for _, p := range s.Roster {
		rows = append(rows, ScoreRow{Player: p, Score: s.Scores[p.ID], Eliminated: s.isEliminated(p.ID)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	return []Intent{{Type: IntentScoreboard, Rows: rows}}, nil
}

// handleLobbyClose fires when the lobby window elapses. With no joiners
// the session is discarded; otherwise the roster is finalized and the
// first turn opens.
func (s *GameSession) handleLobbyClose(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase != PhaseLobbyOpen || token != s.turnToken {
		return
	}

	if len(s.lobby) == 0 {
		s.Phase = PhaseFinished
		s.log.Info("lobby closed with no players, game cancelled")
		s.emit([]Intent{textIntent("No players joined. Game cancelled.")})
		s.finish()
		return
	}

	// Finalize the roster: one uniform shuffle of the join order. Order
	// never changes after this point.
	s.Roster = append([]models.Player(nil), s.lobby...)
	rand.Shuffle(len(s.Roster), func(i, j int) {
		s.Roster[i], s.Roster[j] = s.Roster[j], s.Roster[i]
	})
	s.lobby = nil
	for _, p := range s.Roster {
		s.Scores[p.ID] = 0
	}
	s.Round = 1
	s.TurnIndex = 0
	s.log.WithFields(logrus.Fields{"players": len(s.Roster), "difficulty": s.Difficulty}).Info("roster finalized, game starting")

	intents := []Intent{textIntent(fmt.Sprintf(
		"Game starting at %s difficulty! Players: %s. Rounds: %d",
		s.Difficulty, joinNames(s.Roster), s.rules.TotalRounds,
	))}
	intents = s.openTurn(intents)
	s.emit(intents)
	if s.Phase == PhaseFinished {
		s.finish()
	}
}

// handleTurnTimeout fires when the active player let the choice window
// elapse. A stale token means a manual resolution already won the race and
// the timeout is a silent no-op.
func (s *GameSession) handleTurnTimeout(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.turnToken || s.Active == "" || s.Phase != PhaseAwaitingChoice {
		s.log.WithFields(logrus.Fields{"token": token, "current": s.turnToken}).Debug("stale turn timeout ignored")
		return
	}

	p, _ := s.rosterPlayer(s.Active)
	s.Eliminated[p.ID] = struct{}{}
	s.Active = ""
	s.Pending = nil
	s.TurnIndex++
	s.log.WithFields(logrus.Fields{"player": p.ID, "round": s.Round}).Info("turn timed out, player eliminated")

	intents := []Intent{
		textIntent(fmt.Sprintf("Time's up for %s!", p.DisplayName)),
		{Type: IntentElimination, Player: &p, Reason: EliminatedByTimeout},
	}
	intents = s.openTurn(intents)
	s.emit(intents)
	if s.Phase == PhaseFinished {
		s.finish()
	}
}

// openTurn scans the roster from TurnIndex for the next alive player,
// without wraparound within the round. Exhausting the roster either starts
// the next round or finishes the game. Invoked after roster finalization
// and after every elimination or resolution.
func (s *GameSession) openTurn(intents []Intent) []Intent {
	for {
		for s.TurnIndex < len(s.Roster) && s.isEliminated(s.Roster[s.TurnIndex].ID) {
			s.TurnIndex++
		}
		if s.TurnIndex < len(s.Roster) {
			break
		}

		alive := s.alivePlayers()
		if len(alive) == 0 {
			s.Phase = PhaseFinished
			s.log.Info("everyone eliminated, no winners")
			return append(intents, Intent{Type: IntentGameOver})
		}
		if s.Round >= s.rules.TotalRounds || len(alive) == 1 {
			winners, scores := s.computeWinners(alive)
			s.Phase = PhaseFinished
			s.log.WithField("winners", len(winners)).Info("game over")
			return append(intents, Intent{Type: IntentGameOver, Winners: winners, Scores: scores})
		}

		s.Phase = PhaseRoundBreak
		s.Round++
		s.TurnIndex = 0
		intents = append(intents, Intent{Type: IntentRoundStart, Round: s.Round})
	}

	p := s.Roster[s.TurnIndex]
	s.Active = p.ID
	s.Phase = PhaseAwaitingChoice
	s.turnToken++
	s.sched.Schedule(s.rules.TurnTimeout, s.turnToken, s.handleTurnTimeout)
	s.log.WithFields(logrus.Fields{"player": p.ID, "round": s.Round, "token": s.turnToken}).Info("turn opened")
	return append(intents, Intent{Type: IntentChoicePrompt, Player: &p})
}

// computeWinners returns every alive player whose score equals the maximum
// alive score (ties share the win), plus the alive players' final scores.
func (s *GameSession) computeWinners(alive []models.Player) ([]models.Player, map[models.PlayerID]int) {
	maxScore := 0
	for i, p := range alive {
		if score := s.Scores[p.ID]; i == 0 || score > maxScore {
			maxScore = score
		}
	}
	var winners []models.Player
	scores := make(map[models.PlayerID]int, len(alive))
	for _, p := range alive {
		scores[p.ID] = s.Scores[p.ID]
		if s.Scores[p.ID] == maxScore {
			winners = append(winners, p)
		}
	}
	return winners, scores
}

// emit hands intents to the notify callback, if one is wired.
// Assumes lock is held by caller.
func (s *GameSession) emit(intents []Intent) {
	if s.notify != nil && len(intents) > 0 {
		s.notify(intents)
	}
}

// finish tells the owner to drop the session.
// Assumes lock is held by caller.
func (s *GameSession) finish() {
	if s.onFinished != nil {
		s.onFinished()
	}
}

func (s *GameSession) isEliminated(id models.PlayerID) bool {
	_, ok := s.Eliminated[id]
	return ok
}

func (s *GameSession) inRoster(id models.PlayerID) bool {
	_, ok := s.rosterPlayer(id)
	return ok
}

func (s *GameSession) rosterPlayer(id models.PlayerID) (models.Player, bool) {
	for _, p := range s.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

func (s *GameSession) alivePlayers() []models.Player {
	var alive []models.Player
	for _, p := range s.Roster {
		if !s.isEliminated(p.ID) {
			alive = append(alive, p)
		}
	}
	return alive
}

// TurnToken returns the current awaiting-action window counter.
func (s *GameSession) TurnToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnToken
}

func joinNames(players []models.Player) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.DisplayName
	}
	return strings.Join(names, ", ")
}
