package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthiebot/truthie/internal/catalog"
)

func TestOpenLobbyGuards(t *testing.T) {
	f := newFixture(t, defaultTestRules())
	host := player("ana")

	_, err := f.engine.OpenLobby(testRoom, host, false, true, catalog.Easy)
	assert.ErrorIs(t, err, ErrNotAGroupContext)

	_, err = f.engine.OpenLobby(testRoom, host, true, false, catalog.Easy)
	assert.ErrorIs(t, err, ErrNotAuthorizedToStart)

	_, err = f.engine.OpenLobby(testRoom, host, true, true, catalog.Easy)
	require.NoError(t, err)

	_, err = f.engine.OpenLobby(testRoom, host, true, true, catalog.Easy)
	assert.ErrorIs(t, err, ErrGameAlreadyInProgress)
}

func TestJoinGuards(t *testing.T) {
	f := newFixture(t, defaultTestRules())

	_, err := f.engine.Join("elsewhere", player("ana"))
	assert.ErrorIs(t, err, ErrNoSuchSession)

	_, err = f.engine.OpenLobby(testRoom, player("ana"), true, true, catalog.Easy)
	require.NoError(t, err)

	_, err = f.engine.Join(testRoom, player("bo"))
	require.NoError(t, err)
	_, err = f.engine.Join(testRoom, player("bo"))
	assert.ErrorIs(t, err, ErrAlreadyInLobby)

	_, err = f.engine.Join(testRoom, player("ana"))
	require.NoError(t, err)
	f.clock.Add(f.engine.rules.LobbyTimeout)

	_, err = f.engine.Join(testRoom, player("late"))
	assert.ErrorIs(t, err, ErrGameAlreadyInProgress)
}

func TestTurnAndChallengeGuards(t *testing.T) {
	f := newFixture(t, defaultTestRules())
	s := f.startGame("ana", "bo")
	f.drainNotified()

	active := activePlayer(t, s)
	other := s.Roster[0]
	if other.ID == active.ID {
		other = s.Roster[1]
	}

	_, err := f.engine.ChooseType(testRoom, other, catalog.Truth)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = f.engine.Resolve(testRoom, active, OutcomeCompleted)
	assert.ErrorIs(t, err, ErrNotYourChallenge, "resolve before any challenge is issued")

	_, err = f.engine.ChooseType(testRoom, active, catalog.Truth)
	require.NoError(t, err)

	_, err = f.engine.ChooseType(testRoom, active, catalog.Truth)
	assert.ErrorIs(t, err, ErrNotYourTurn, "choice window already consumed")

	_, err = f.engine.Resolve(testRoom, other, OutcomeCompleted)
	assert.ErrorIs(t, err, ErrNotYourChallenge)
}

func TestQuitGuards(t *testing.T) {
	f := newFixture(t, defaultTestRules())

	_, err := f.engine.Quit(testRoom, player("ana"))
	assert.ErrorIs(t, err, ErrNoSuchSession)

	s := f.startGame("ana", "bo", "cy")
	f.drainNotified()

	_, err = f.engine.Quit(testRoom, player("stranger"))
	assert.ErrorIs(t, err, ErrNotInLobby)

	var bystander = s.Roster[0]
	if bystander.ID == s.Active {
		bystander = s.Roster[1]
	}
	_, err = f.engine.Quit(testRoom, bystander)
	require.NoError(t, err)
	_, err = f.engine.Quit(testRoom, bystander)
	assert.ErrorIs(t, err, ErrAlreadyEliminated)
}

func TestQueriesRequireRunningGame(t *testing.T) {
	f := newFixture(t, defaultTestRules())

	_, err := f.engine.QueryStatus(testRoom)
	assert.ErrorIs(t, err, ErrNoSuchSession)
	_, err = f.engine.QueryScoreboard(testRoom)
	assert.ErrorIs(t, err, ErrNoSuchSession)

	_, err = f.engine.OpenLobby(testRoom, player("ana"), true, true, catalog.Easy)
	require.NoError(t, err)

	// The lobby is open but the game has not started.
	_, err = f.engine.QueryStatus(testRoom)
	assert.ErrorIs(t, err, ErrNoSuchSession)
}
