package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/omega/internal/config"
	"github.com/tomz197/omega/internal/draw"
	"github.com/tomz197/omega/internal/loop/client"
	"github.com/tomz197/omega/internal/loop/server"
	"github.com/tomz197/omega/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	settings, err := config.Load(config.GetEnv("OMEGA_CONFIG", "omega.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := config.NewLogger(settings, os.Stderr, "omega-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "dataDir", settings.DataDir)

	// One registry shared by all SSH sessions
	gameServer := server.NewServer()
	app := &app{
		server:   gameServer,
		settings: settings,
		log:      logger,
		devices:  newDeviceStores(settings.DataDir, logger),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			app.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for clicks
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players", "players", gameServer.Usernames())
	gameServer.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

const deviceBusyMessage = "This save is already in use by another session. Close it and try again."

type app struct {
	server   *server.Server
	settings config.Settings
	log      *log.Logger
	devices  *deviceStores
}

// gameMiddleware handles SSH sessions and runs the game client.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		sessionLog := a.log.With("session", uuid.NewString(), "device", sess.User())

		release, ok := a.server.ClaimDevice(store.DevicePath(a.settings.DataDir, sess.User()))
		if !ok {
			sessionLog.Warn("device already in use")
			fmt.Fprintln(sess, deviceBusyMessage)
			return
		}
		defer release()

		sessionLog.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		win := &windowSize{width: pty.Window.Width, height: pty.Window.Height}
		go win.follow(winCh)

		clientOpts := client.ClientOptions{
			TermSizeFunc: win.size,
			Username:     sess.User(),
			Store:        a.devices.get(sess.User()),
			Logger:       sessionLog,
			Capacity:     a.settings.MaxEntities,
			SpawnPeriod:  a.settings.SpawnPeriod,
			DevMode:      a.settings.DevMode,
		}

		c := client.NewClient(a.server, bufio.NewReader(sess), sess, clientOpts)
		if err := c.Run(); err != nil {
			sessionLog.Error("game error", "err", err)
		}

		next(sess)
	}
}

// deviceStores hands out one Store per device and keeps it open across
// sessions.
type deviceStores struct {
	mu      sync.Mutex
	dataDir string
	log     *log.Logger
	stores  map[string]*store.Store
}

func newDeviceStores(dataDir string, logger *log.Logger) *deviceStores {
	return &deviceStores{dataDir: dataDir, log: logger, stores: make(map[string]*store.Store)}
}

func (d *deviceStores) get(device string) *store.Store {
	d.mu.Lock()
	defer d.mu.Unlock()
	path := store.DevicePath(d.dataDir, device)
	if st, ok := d.stores[path]; ok {
		return st
	}
	st := store.OpenDevice(d.dataDir, device, d.log.With("device", device))
	d.stores[path] = st
	return st
}

// windowSize follows the PTY size reported by the SSH client.
type windowSize struct {
	mu            sync.Mutex
	width, height int
}

func (ws *windowSize) follow(winCh <-chan ssh.Window) {
	for win := range winCh {
		ws.mu.Lock()
		ws.width, ws.height = win.Width, win.Height
		ws.mu.Unlock()
	}
}

func (ws *windowSize) size() (int, int, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.width, ws.height, nil
}

var _ draw.TermSizeFunc = (*windowSize)(nil).size
