package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ayusman/airguitar/internal/gesture"
)

var chordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "Print the active gesture-to-chord table",
	Long: `Print the gesture-to-chord table currently in force, including
any remaps saved through the settings API. Remapped rows are marked
with an asterisk.`,
	RunE: runChords,
}

func init() {
	rootCmd.AddCommand(chordsCmd)
}

func runChords(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	table := gesture.DefaultChordTable()
	defaults := gesture.DefaultChordTable()

	mappings, err := st.ChordMappings().List()
	if err != nil {
		return fmt.Errorf("list chord mappings: %w", err)
	}
	for _, m := range mappings {
		chord, err := gesture.ParseChord(m.Chord)
		if err != nil {
			continue
		}
		table[m.Pattern] = chord
	}

	patterns := make([]string, 0, len(table))
	for pattern := range table {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		marker := " "
		if table[pattern] != defaults[pattern] {
			marker = "*"
		}
		fmt.Printf("%-10s %-3s %s\n", pattern, table[pattern], marker)
	}

	return nil
}
