package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/tomz197/omega/internal/config"
	"github.com/tomz197/omega/internal/game"
	"github.com/tomz197/omega/internal/store"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	settings, err := config.Load(config.GetEnv("OMEGA_CONFIG", "omega.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := config.NewLogger(settings, os.Stderr, "omega-web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	r := newRouter(settings.DataDir, sshHost, logger)
	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newRouter(dataDir, sshHost string, logger *log.Logger) *mux.Router {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/secrets", func(w http.ResponseWriter, r *http.Request) {
		type clue struct {
			ID   int    `json:"id"`
			Clue string `json:"clue"`
		}
		clues := make([]clue, 0, game.SecretTotal())
		for _, s := range game.Secrets() {
			clues = append(clues, clue{ID: int(s.ID), Clue: s.Clue})
		}
		writeJSON(w, http.StatusOK, clues, logger)
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/leaderboard/{device}", func(w http.ResponseWriter, r *http.Request) {
		device := mux.Vars(r)["device"]
		kv, err := store.OpenExisting(store.DevicePath(dataDir, device))
		switch {
		case errors.Is(err, store.ErrDeviceNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown device"}, logger)
			return
		case err != nil:
			logger.Error("open device", "device", device, "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage error"}, logger)
			return
		}
		writeJSON(w, http.StatusOK, store.New(kv, logger).LoadHighScores(), logger)
	}).Methods(http.MethodGet)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", "err", err)
	}
}
