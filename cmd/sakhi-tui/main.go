package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sakhigps/internal/config"
	"sakhigps/internal/schedule"
	"sakhigps/internal/session"
	"sakhigps/internal/tui"
)

func main() {
	logPath := flag.String("log", "", "Write logs to this file instead of discarding them")
	tick := flag.Duration("tick", time.Second, "Clock resolution of the console")
	flag.Parse()

	// the alt screen owns stdout; logs must go elsewhere
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "sakhi-tui")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	clock := schedule.NewManualScheduler()
	sessions := session.NewManager(clock, nil, session.Config{
		NavPeriod:    cfg.NavStepPeriod,
		VoicePeriod:  cfg.VoiceStepPeriod,
		TTL:          cfg.SessionTTL,
		ReapInterval: session.DefaultConfig().ReapInterval,
	})
	s, err := sessions.Create()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to start session:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.New(s, clock, *tick), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
