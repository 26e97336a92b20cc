package game

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/truthiebot/truthie/internal/catalog"
	"github.com/truthiebot/truthie/internal/models"
)

// Engine is the transport-facing operation surface. It owns the session
// store and translates inbound events into state transitions; transports
// render the returned intents. Operations for different rooms proceed in
// parallel; within one room they serialize on the session mutex.
type Engine struct {
	rules Rules
	cat   *catalog.Catalog
	clock clock.Clock
	store *SessionStore
	log   *logrus.Logger

	// Notify delivers intents produced outside a command call: lobby-close
	// and turn-timeout events. Set it before the first OpenLobby.
	Notify func(room string, intents []Intent)
}

// NewEngine builds an engine with the given rules, catalog and clock.
func NewEngine(rules Rules, cat *catalog.Catalog, clk clock.Clock, log *logrus.Logger) *Engine {
	return &Engine{
		rules: rules,
		cat:   cat,
		clock: clk,
		store: NewSessionStore(),
		log:   log,
	}
}

// OpenLobby creates the room's session and opens its lobby window. The
// transport resolves group and authorized before calling; the engine only
// enforces them.
func (e *Engine) OpenLobby(room string, host models.Player, group, authorized bool, difficulty catalog.Difficulty) ([]Intent, error) {
	if !group {
		return nil, ErrNotAGroupContext
	}
	if _, ok := e.store.Get(room); ok {
		return nil, ErrGameAlreadyInProgress
	}
	if !authorized {
		return nil, ErrNotAuthorizedToStart
	}
	// Transports normally parse difficulty themselves; an out-of-set value
	// here falls back to the default rather than poisoning the session.
	if d, ok := catalog.ParseDifficulty(string(difficulty)); !ok {
		difficulty = d
	}

	s := newSession(sessionConfig{
		room:       room,
		host:       host.ID,
		difficulty: difficulty,
		rules:      e.rules,
		cat:        e.cat,
		sched:      NewTurnScheduler(e.clock),
		log:        e.log.WithFields(logrus.Fields{"room": room}),
		notify: func(intents []Intent) {
			if e.Notify != nil {
				e.Notify(room, intents)
			}
		},
		onFinished: func() {
			e.store.Remove(room)
		},
	})
	if err := e.store.Put(room, s); err != nil {
		return nil, err
	}
	s.scheduleLobbyClose()
	s.log.WithField("difficulty", difficulty).Info("lobby opened")

	return []Intent{textIntent(fmt.Sprintf(
		"Game lobby is now open at %s difficulty! Join within %s.",
		difficulty, e.rules.LobbyTimeout,
	))}, nil
}

// Join adds the player to the room's open lobby.
func (e *Engine) Join(room string, p models.Player) ([]Intent, error) {
	s, ok := e.store.Get(room)
	if !ok {
		return nil, ErrNoSuchSession
	}
	return s.Join(p)
}

// Quit eliminates the player from the room's running game.
func (e *Engine) Quit(room string, p models.Player) ([]Intent, error) {
	s, ok := e.store.Get(room)
	if !ok {
		return nil, ErrNoSuchSession
	}
	return s.Quit(p)
}

// ChooseType issues a challenge of the chosen kind to the active player.
func (e *Engine) ChooseType(room string, p models.Player, kind catalog.Kind) ([]Intent, error) {
	s, ok := e.store.Get(room)
	if !ok {
		return nil, ErrNoSuchSession
	}
	return s.ChooseType(p, kind)
}

// Resolve settles the room's issued challenge.
func (e *Engine) Resolve(room string, p models.Player, outcome Outcome) ([]Intent, error) {
	s, ok := e.store.Get(room)
	if !ok {
		return nil, ErrNoSuchSession
	}
	return s.Resolve(p, outcome)
}

// QueryStatus reports the room's game snapshot without mutating it.
func (e *Engine) QueryStatus(room string) ([]Intent, error) {
	s, ok := e.store.Get(room)
	if !ok {
		return nil, ErrNoSuchSession
	}
	return s.Status()
}

// QueryScoreboard reports the room's scores, highest first.
func (e *Engine) QueryScoreboard(room string) ([]Intent, error) {
	s, ok := e.store.Get(room)
	if !ok {
		return nil, ErrNoSuchSession
	}
	return s.Scoreboard()
}

// Session exposes the room's live session, mainly for tests and status
// tooling.
func (e *Engine) Session(room string) (*GameSession, bool) {
	return e.store.Get(room)
}
