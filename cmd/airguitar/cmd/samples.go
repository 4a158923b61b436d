package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ayusman/airguitar/internal/audio"
	"github.com/ayusman/airguitar/internal/gesture"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Show which audio source each chord will use",
	Long: `Show, for every chord, whether playback will use a recorded
sample file or the built-in synthesized tone. Samples come from the
samples directory (<chord>.wav) or from paths registered through the
settings API.`,
	RunE: runSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	paths := resolveSamples(cfg, st)

	for _, chord := range gesture.Chords {
		if path, ok := paths[chord]; ok {
			fmt.Printf("%-3s sample %s\n", chord, path)
		} else {
			fmt.Printf("%-3s synth  %.2f Hz\n", chord, audio.ChordFrequencies[chord])
		}
	}

	return nil
}
