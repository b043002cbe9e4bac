// Command divide-conquer is a terminal game: split the field with growing lines, keep the balls off them
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/maruel/subcommands"

	"github.com/lixenwraith/divide-conquer/audio"
	"github.com/lixenwraith/divide-conquer/config"
	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/scores"
)

const defaultConfigPath = "divide-conquer.toml"

var application = &subcommands.DefaultApplication{
	Name:  "divide-conquer",
	Title: "Split the field with growing lines without letting a ball touch them.",
	Commands: []*subcommands.Command{
		cmdPlay,
		cmdScores,
		cmdConfig,
		subcommands.CmdHelp,
	},
}

// baseRun carries the flags every subcommand shares
type baseRun struct {
	subcommands.CommandRunBase
	configPath string
	debug      bool
}

func (b *baseRun) registerBaseFlags() {
	b.Flags.StringVar(&b.configPath, "config", defaultConfigPath, "TOML settings file; missing file means defaults")
	b.Flags.BoolVar(&b.debug, "debug", false, "write a debug log to "+constants.LogDir+"/"+constants.LogFileName)
}

// loadConfig reads the file over the defaults with environment overrides
func (b *baseRun) loadConfig() (*config.Config, error) {
	return config.Load(b.configPath)
}

var cmdPlay = &subcommands.Command{
	UsageLine: "play [flags]",
	ShortDesc: "starts a game (default)",
	LongDesc: `Starts a game in the terminal.

Move the cursor with arrows or h/j/k/l, start a horizontal line with - or space
and a vertical line with | or v. Mouse clicks start lines at the pointer.
p pauses, r restarts, s toggles sound, m toggles metrics, q quits.`,
	CommandRun: func() subcommands.CommandRun {
		r := &playRun{}
		r.registerBaseFlags()
		r.Flags.StringVar(&r.player, "player", "", "name recorded on the leaderboard")
		r.Flags.Uint64Var(&r.seed, "seed", 0, "ball placement seed; 0 uses the config or the clock")
		return r
	},
}

type playRun struct {
	baseRun
	player string
	seed   uint64
}

func (r *playRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	logFile := setupLogging(r.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := r.loadConfig()
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	if r.player != "" {
		cfg.Scores.Player = r.player
	}
	if r.seed != 0 {
		cfg.Engine.Seed = r.seed
	}

	if err := play(cfg); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	return 0
}

// play owns the terminal for the duration of one session
func play(cfg *config.Config) error {
	store, err := openStore(cfg.Scores.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	sound := audio.NewSoundManager(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the game runs without sound
			log.Warningf("audio initialization failed: %v", err)
		}
	}
	defer sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDIVIDE-CONQUER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	if cfg.UI.Mouse {
		screen.EnableMouse()
	}
	screen.HideCursor()

	app, err := newGameApp(cfg, screen, store, sound, nil)
	if err != nil {
		return err
	}
	app.run()
	log.Infof("quit at level %d with score %d", app.session.Level(), app.session.Score())
	return nil
}

// openStore opens the leaderboard at path; an empty path keeps scores in memory for this run only
func openStore(path string) (scores.Store, error) {
	if path == "" {
		return scores.NewMemoryStore(), nil
	}
	return scores.OpenBadger(path)
}

var cmdScores = &subcommands.Command{
	UsageLine: "scores [flags]",
	ShortDesc: "prints the leaderboard",
	LongDesc:  "Prints the best recorded games, best first.",
	CommandRun: func() subcommands.CommandRun {
		r := &scoresRun{}
		r.registerBaseFlags()
		r.Flags.IntVar(&r.limit, "n", constants.LeaderboardSize, "number of entries")
		return r
	},
}

type scoresRun struct {
	baseRun
	limit int
}

func (r *scoresRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	logFile := setupLogging(r.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := r.loadConfig()
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	store, err := openStore(cfg.Scores.Path)
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	defer store.Close()

	entries, err := store.Top(r.limit)
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	printScores(a.GetOut(), entries, time.Now())
	return 0
}

// printScores writes the leaderboard as an aligned table
func printScores(out io.Writer, entries []scores.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "no games recorded yet")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPLAYER\tSCORE\tLEVEL\tTIME\tPLAYED")
	for i, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			humanize.Ordinal(i+1), e.Player, humanize.Comma(int64(e.Score)), e.Level,
			e.Duration.Round(time.Second), humanize.RelTime(e.When, now, "ago", "from now"))
	}
	w.Flush()
}

var cmdConfig = &subcommands.Command{
	UsageLine: "config [flags]",
	ShortDesc: "prints the effective settings",
	LongDesc:  "Prints the settings after the file and environment are applied, as TOML.",
	CommandRun: func() subcommands.CommandRun {
		r := &configRun{}
		r.registerBaseFlags()
		return r
	},
}

type configRun struct {
	baseRun
}

func (r *configRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	cfg, err := r.loadConfig()
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	if err := cfg.Write(a.GetOut()); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	return 0
}

// withDefaultCommand runs play when no subcommand is named
func withDefaultCommand(args []string) []string {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return append([]string{"play"}, args...)
	}
	return args
}

func main() {
	os.Exit(subcommands.Run(application, withDefaultCommand(os.Args[1:])))
}
