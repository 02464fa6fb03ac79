package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/code-pasu/Wision/internal/app"
	"github.com/code-pasu/Wision/internal/config"
	"github.com/code-pasu/Wision/internal/control"
	"github.com/code-pasu/Wision/internal/server"
	"github.com/code-pasu/Wision/internal/sink"
	"github.com/code-pasu/Wision/internal/store"
	"github.com/code-pasu/Wision/internal/tracker"
	"github.com/code-pasu/Wision/internal/tray"
)

func main() {
	fmt.Println("Wision - Hand Gesture Desktop Control")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".wision")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dataDir, "config.json"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tables, err := cfg.Tables()
	if err != nil {
		log.Fatalf("Invalid action configuration: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "wision.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Desktop action sink. Without a helper the engine still runs and logs
	// what it would have done.
	var out sink.Sink
	if helperPath := findHelper(cfg.Sink.HelperPath, dataDir); helperPath != "" {
		execSink, err := sink.NewExecSink(helperPath)
		if err != nil {
			log.Fatalf("Failed to start action helper: %v", err)
		}
		defer execSink.Close()
		out = execSink
	} else {
		log.Println("No action helper found, actions will be logged only")
		out = sink.NewMockSink()
	}

	sessionCfg := control.DefaultSessionConfig()
	sessionCfg.Extractor = cfg.ExtractorConfig()
	sessionCfg.Classifier = cfg.ClassifierConfig()
	sessionCfg.Tables = tables
	sessionCfg.Smoothing = cfg.SmoothingConfig()
	if cfg.Cursor.ScreenWidth > 0 {
		sessionCfg.ScreenWidth = cfg.Cursor.ScreenWidth
	}
	if cfg.Cursor.ScreenHeight > 0 {
		sessionCfg.ScreenHeight = cfg.Cursor.ScreenHeight
	}
	if cfg.Cursor.Sensitivity > 0 {
		sessionCfg.Sensitivity = cfg.Cursor.Sensitivity
	}

	session, err := control.NewSession(sessionCfg, out)
	if err != nil {
		log.Fatalf("Failed to create control session: %v", err)
	}

	// Camera tracker; fall back to a mock so the tray and server stay usable
	// when no camera is available.
	var trk tracker.Tracker
	mpTracker, err := tracker.NewMediaPipeTracker(cfg.TrackerConfig())
	if err != nil {
		log.Printf("Camera unavailable (%v), running without detection", err)
		trk = tracker.NewMockTracker()
	} else {
		trk = mpTracker
	}
	defer trk.Close()

	application := app.New(app.Config{
		Tracker: trk,
		Session: session,
		Store:   st,
	})

	srv := server.New(server.Config{
		Store: st,
		State: application,
	})
	go func() {
		log.Printf("Status server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Printf("Status server stopped: %v", err)
		}
	}()

	application.Start()
	defer application.Stop()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
		log.Printf("Gesture control %s", enabledWord(enabled))
	})
	t.OnQuit(func() {
		log.Println("Shutting down")
	})
	application.OnStateChange(func(state app.State) {
		t.SetMode(state.Mode)
	})

	// Blocks until quit is selected from the tray menu.
	t.Run()
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// findHelper locates the desktop action helper executable. The configured
// path wins; otherwise ~/.wision/bin/wision-actions is checked.
func findHelper(configured, dataDir string) string {
	if configured != "" {
		return configured
	}

	candidate := filepath.Join(dataDir, "bin", "wision-actions")
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}
