// Command truthie runs the game engine behind a line-oriented local
// transport, mainly for playtesting. The production chat transport lives
// outside this repository and talks to the same facade.
//
// Commands (first word is the room):
//
//	<room> open <name> [easy|medium|spicy]
//	<room> join <name>
//	<room> quit <name>
//	<room> truth <name>
//	<room> dare <name>
//	<room> done <name>
//	<room> pass <name>
//	<room> status
//	<room> scores
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/truthiebot/truthie/internal/catalog"
	"github.com/truthiebot/truthie/internal/config"
	"github.com/truthiebot/truthie/internal/game"
	"github.com/truthiebot/truthie/internal/models"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "truthie: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "truthie: invalid log level %q\n", cfg.LogLevel)
		os.Exit(1)
	}
	log.SetLevel(level)

	cat := catalog.New()
	rules := game.Rules{
		LobbyTimeout: cfg.LobbyTimeout,
		TurnTimeout:  cfg.TurnTimeout,
		TotalRounds:  cfg.TotalRounds,
	}
	engine := game.NewEngine(rules, cat, clock.New(), log)
	engine.Notify = func(room string, intents []game.Intent) {
		for _, in := range intents {
			fmt.Printf("[%s] %s\n", room, render(in))
		}
	}

	fmt.Printf("truthie playtest console (rounds=%d, lobby=%s, turn=%s)\n",
		rules.TotalRounds, rules.LobbyTimeout, rules.TurnTimeout)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		args := strings.Fields(scanner.Text())
		if len(args) < 2 {
			continue
		}
		room := args[0]
		intents, err := dispatch(engine, room, args[1], args[2:])
		if err != nil {
			fmt.Printf("[%s] rejected: %v\n", room, err)
			continue
		}
		for _, in := range intents {
			fmt.Printf("[%s] %s\n", room, render(in))
		}
	}
}

func dispatch(engine *game.Engine, room, verb string, rest []string) ([]game.Intent, error) {
	player := func() models.Player {
		name := "anon"
		if len(rest) > 0 {
			name = rest[0]
		}
		return models.Player{ID: models.PlayerID(name), DisplayName: name}
	}

	switch verb {
	case "open":
		difficulty := catalog.Medium
		if len(rest) > 1 {
			difficulty, _ = catalog.ParseDifficulty(rest[1])
		}
		// The console is always a "group" with an authorized caller.
		return engine.OpenLobby(room, player(), true, true, difficulty)
	case "join":
		return engine.Join(room, player())
	case "quit":
		return engine.Quit(room, player())
	case "truth":
		return engine.ChooseType(room, player(), catalog.Truth)
	case "dare":
		return engine.ChooseType(room, player(), catalog.Dare)
	case "done":
		return engine.Resolve(room, player(), game.OutcomeCompleted)
	case "pass":
		return engine.Resolve(room, player(), game.OutcomePassed)
	case "status":
		return engine.QueryStatus(room)
	case "scores":
		return engine.QueryScoreboard(room)
	}
	return nil, fmt.Errorf("unknown command %q", verb)
}

func render(in game.Intent) string {
	switch in.Type {
	case game.IntentText:
		return in.Text
	case game.IntentChoicePrompt:
		return fmt.Sprintf("It's %s's turn! Choose: truth or dare?", in.Player.DisplayName)
	case game.IntentChallenge:
		return fmt.Sprintf("%s (%s): %s", strings.ToUpper(string(in.Kind)), in.Player.DisplayName, in.Prompt)
	case game.IntentElimination:
		return fmt.Sprintf("%s is eliminated (%s)", in.Player.DisplayName, in.Reason)
	case game.IntentRoundStart:
		return fmt.Sprintf("Starting round %d!", in.Round)
	case game.IntentGameOver:
		if len(in.Winners) == 0 {
			return "Game over! Everyone was eliminated. No winners."
		}
		names := make([]string, len(in.Winners))
		for i, w := range in.Winners {
			names[i] = w.DisplayName
		}
		return fmt.Sprintf("Game over! Winner(s): %s", strings.Join(names, ", "))
	case game.IntentStatus:
		st := in.Status
		b := &strings.Builder{}
		fmt.Fprintf(b, "round %d/%d", st.Round, st.TotalRounds)
		if st.Active != nil {
			fmt.Fprintf(b, ", turn: %s", st.Active.DisplayName)
		}
		for _, row := range st.Scores {
			mark := ""
			if row.Eliminated {
				mark = " (eliminated)"
			}
			fmt.Fprintf(b, "\n  %s: %d points%s", row.Player.DisplayName, row.Score, mark)
		}
		return b.String()
	case game.IntentScoreboard:
		b := &strings.Builder{}
		b.WriteString("scoreboard:")
		for _, row := range in.Rows {
			mark := ""
			if row.Eliminated {
				mark = " (eliminated)"
			}
			fmt.Fprintf(b, "\n  %s: %d points%s", row.Player.DisplayName, row.Score, mark)
		}
		return b.String()
	}
	return string(in.Type)
}
