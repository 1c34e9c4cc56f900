package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/omega/internal/config"
	"github.com/tomz197/omega/internal/loop/client"
	"github.com/tomz197/omega/internal/loop/server"
	"github.com/tomz197/omega/internal/store"
)

func main() {
	settings, err := config.Load(config.GetEnv("OMEGA_CONFIG", "omega.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to a file.
	logger, closeLog, err := config.NewLogger(settings, io.Discard, "omega")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	st := store.OpenDevice(settings.DataDir, "local", logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.NewClient(server.NewServer(), bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Store:       st,
		Logger:      logger,
		Capacity:    settings.MaxEntities,
		SpawnPeriod: settings.SpawnPeriod,
		DevMode:     settings.DevMode,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
