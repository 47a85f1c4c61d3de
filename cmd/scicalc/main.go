package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/scicalc/internal/calc"
	"github.com/csheth/scicalc/internal/config"
	"github.com/csheth/scicalc/internal/eval"
	"github.com/csheth/scicalc/internal/tui"
)

func main() {
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	degrees := flag.Bool("deg", false, "start in degree mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}
	if *noAltScreen {
		cfg.AltScreen = false
	}
	if *degrees {
		cfg.AngleMode = eval.Degrees
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Println("failed to initialize logger:", err)
		os.Exit(1)
	}
	logger.Info("starting scicalc", zap.String("config", cfg.String()))

	reducer := calc.NewReducer(
		eval.NewEngine(),
		calc.WithPrecision(cfg.Precision),
		calc.WithLogger(logger.Named("calc")),
	)

	opts := []tea.ProgramOption{}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Reducer: reducer,
			Angle:   cfg.AngleMode,
			Logger:  logger.Named("tui"),
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		logger.Error("program error", zap.Error(err))
		_ = logger.Sync()
		fmt.Println("program error:", err)
		os.Exit(1)
	}
	logger.Info("scicalc stopped")
	_ = logger.Sync()
}
