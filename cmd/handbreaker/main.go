package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ayusman/handbreaker/internal/app"
	"github.com/ayusman/handbreaker/internal/config"
	"github.com/ayusman/handbreaker/internal/game"
	"github.com/ayusman/handbreaker/internal/server"
	"github.com/ayusman/handbreaker/internal/sound"
	"github.com/ayusman/handbreaker/internal/store"
	"github.com/ayusman/handbreaker/internal/tray"
)

func main() {
	fmt.Println("Handbreaker - Gesture Breakout")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	var player sound.Player
	if cfg.Sound {
		m := sound.NewManager()
		if err := m.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			defer m.Close()
			player = m
		}
	}

	a := app.New(app.Config{
		Params:       game.DefaultParams(),
		FPS:          cfg.FPS,
		StreamFPS:    cfg.StreamFPS,
		CameraID:     cfg.CameraID,
		MotionThresh: cfg.MotionThreshold,
		AssetDir:     cfg.AssetDir,
		Store:        st,
		Sound:        player,
	})
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	defer a.Stop()

	if cfg.WebDir != "" {
		fmt.Printf("Serving static files from: %s\n", cfg.WebDir)
	}

	srv := server.New(server.Config{
		StaticDir:    cfg.WebDir,
		Store:        st,
		Session:      a,
		GameStream:   server.FrameSourceFunc(a.GameFrame),
		CameraStream: server.FrameSourceFunc(a.CameraFrame),
		StreamFPS:    cfg.StreamFPS,
	})

	serveErr := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		serveErr <- srv.ListenAndServe(cfg.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Tray {
		runTray(cfg, a, sigCh, serveErr)
	} else {
		select {
		case sig := <-sigCh:
			log.Printf("Received %v, shutting down", sig)
		case err := <-serveErr:
			if err != nil {
				log.Printf("Server failed: %v", err)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
}

// runTray blocks in the tray event loop until Quit is chosen, a signal
// arrives or the server stops.
func runTray(cfg config.Config, a *app.App, sigCh <-chan os.Signal, serveErr <-chan error) {
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		log.Printf("Gesture control enabled: %v", enabled)
	})
	t.OnPause(func() {
		if err := a.TogglePause(); err != nil {
			log.Printf("Pause ignored: %v", err)
		}
	})
	t.OnOpen(func() {
		if err := openBrowser(localURL(cfg.Addr)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})

	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		var last uint64
		for {
			select {
			case sig := <-sigCh:
				log.Printf("Received %v, shutting down", sig)
				t.Quit()
				return
			case err := <-serveErr:
				if err != nil {
					log.Printf("Server failed: %v", err)
				}
				t.Quit()
				return
			case <-ticker.C:
				if snap, ver := a.Snapshot(); ver != last {
					last = ver
					t.SetState(snap.State.String())
				}
			}
		}
	}()

	t.Run()
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
