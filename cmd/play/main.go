package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/logx"
)

func main() {
	var (
		startFEN = flag.String("fen", board.StartFEN, "starting placement (uppercase = Black)")
		logPath  = flag.String("log", "", "log file (empty = no logging)")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	if err := run(*startFEN, *logPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "play:", err)
		os.Exit(1)
	}
}

func run(startFEN, logPath, logLevel string) error {
	if _, err := board.ParseFENStrict(startFEN); err != nil {
		return err
	}
	level, err := logx.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	// The screen owns the terminal, so logs only go to a file.
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := logx.NewLogger(out, level)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctrl := game.New(game.Config{StartFEN: startFEN, Logger: logger})
	newUI(screen, ctrl, logger.With().Str("component", "ui").Logger()).run()
	return nil
}
