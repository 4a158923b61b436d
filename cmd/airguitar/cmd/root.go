// Package cmd contains all CLI commands for the air guitar application.
package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ayusman/airguitar/internal/app"
	"github.com/ayusman/airguitar/internal/audio"
	"github.com/ayusman/airguitar/internal/config"
	"github.com/ayusman/airguitar/internal/gesture"
	"github.com/ayusman/airguitar/internal/server"
	"github.com/ayusman/airguitar/internal/store"
	"github.com/ayusman/airguitar/internal/tray"
	"github.com/ayusman/airguitar/internal/trigger"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "airguitar",
	Short: "Play air guitar with your webcam",
	Long: `Air Guitar turns webcam hand tracking into guitar chords.

Hold a chord shape with your left hand (finger counts, rock sign,
side rock) and strum with your right. The tray icon toggles play;
the settings page lives at the listen address.`,
	RunE: runApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads and validates the startup configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore creates the data directory and opens the database in it.
func openStore(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return store.New(filepath.Join(cfg.DataDir, "airguitar.db"))
}

// resolveSamples merges sample files found on disk with paths registered
// in the store. Registered paths win.
func resolveSamples(cfg *config.Config, st *store.Store) map[gesture.Chord]string {
	paths := audio.ResolveSamplePaths(cfg.SamplesDir)

	registered, err := st.Samples().List()
	if err != nil {
		log.Printf("Failed to read sample registry: %v", err)
		return paths
	}
	for _, s := range registered {
		chord, err := gesture.ParseChord(s.Chord)
		if err != nil {
			log.Printf("Skipping registered sample for unknown chord %q", s.Chord)
			continue
		}
		if _, err := os.Stat(s.Path); err == nil {
			paths[chord] = s.Path
		} else {
			log.Printf("Registered sample for %s missing at %s, skipping", s.Chord, s.Path)
		}
	}
	return paths
}

func runApp(cmd *cobra.Command, args []string) error {
	fmt.Println("Air Guitar")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Audio: recorded samples where present, synthesized tones elsewhere.
	// No audio device is not fatal; triggers still fire silently.
	var sink audio.Sink
	engine, err := audio.NewEngine(resolveSamples(cfg, st))
	if err != nil {
		log.Printf("Audio unavailable (%v), playing silently", err)
		sink = audio.NopSink{}
	} else {
		sink = engine
	}
	defer sink.Close()

	a := app.New(app.Config{
		Store:    st,
		Settings: cfg,
		Sink:     sink,
	})
	if err := a.LoadChordTable(); err != nil {
		log.Printf("Failed to load chord table overrides: %v", err)
	}

	if err := a.Start(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer a.Stop()
	a.SetEnabled(true)

	srv := server.New(server.Config{
		StaticDir: findWebDir(cfg),
		Store:     st,
		Camera:    a.Camera(),
		App:       a,
	})

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main goroutine until quit.
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnSettings(func() {
		openBrowser(settingsURL(cfg.ListenAddr))
	})
	a.OnChordChange(func(chord gesture.Chord) {
		t.SetChord(string(chord))
	})
	a.OnTrigger(func(trigger.Request) {
		t.SetStrum(string(a.LastStrumDirection()))
	})
	t.Run()

	return nil
}

// findWebDir searches for the web directory in common locations.
func findWebDir(cfg *config.Config) string {
	candidates := []string{
		"web",
		"../web",
		filepath.Join(cfg.DataDir, "web"),
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}

// settingsURL turns a listen address into something a browser can open.
func settingsURL(addr string) string {
	if addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	if err := c.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
