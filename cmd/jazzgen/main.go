// Package main is the entry point for the jazzgen CLI
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcalhoun/jazzgen/pkg/api"
	"github.com/jcalhoun/jazzgen/pkg/render"
	"github.com/jcalhoun/jazzgen/pkg/solo"
	"github.com/jcalhoun/jazzgen/pkg/songbook"
	"github.com/jcalhoun/jazzgen/pkg/theory"
	"github.com/jcalhoun/jazzgen/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	songName   string
	songFile   string
	outputFile string
	choruses   int
	tempo      float64
	lowestNote string
	highest    string
	fillPolicy string
	noComping  bool
	tieRepeats bool
	seed       int64
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jazzgen",
	Short: "Generate jazz solos and comping as MIDI",
	Long: `jazzgen is a procedural jazz generator: it walks a chord progression,
improvises a sax line over it, lays down piano comping, and writes the
result as a standard MIDI file.

Examples:
  jazzgen generate --song giant-steps -o giant-steps.mid
  jazzgen generate --file mysong.yml --choruses 2 --fill repeat
  jazzgen songs
  jazzgen tui
  jazzgen serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a performance and write it to a MIDI file",
	RunE:  runGenerate,
}

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List the built-in songs",
	RunE:  runSongs,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	generateCmd.Flags().StringVarP(&songName, "song", "s", "giant-steps", "Built-in song to generate over")
	generateCmd.Flags().StringVarP(&songFile, "file", "f", "", "YAML song file (overrides --song)")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")
	generateCmd.Flags().IntVar(&choruses, "choruses", 4, "Number of times through the form")
	generateCmd.Flags().Float64Var(&tempo, "tempo", 0, "Tempo in bpm (0 uses the song tempo)")
	generateCmd.Flags().StringVar(&lowestNote, "low", "G3", "Lowest allowed solo note")
	generateCmd.Flags().StringVar(&highest, "high", "G6", "Highest allowed solo note")
	generateCmd.Flags().StringVar(&fillPolicy, "fill", "rests", "Fill policy for short figures (rests|repeat)")
	generateCmd.Flags().BoolVar(&noComping, "no-comping", false, "Skip the piano comping part")
	generateCmd.Flags().BoolVar(&tieRepeats, "tie", false, "Tie repeated identical solo pitches")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for randomized comping inversions (0 = root position)")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(songsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadSong() (solo.Song, error) {
	if songFile != "" {
		return songbook.Load(songFile)
	}
	return songbook.Get(songName)
}

func buildConfig() (solo.Config, error) {
	cfg := solo.DefaultConfig()
	cfg.Choruses = choruses
	cfg.Tempo = tempo
	cfg.WithComping = !noComping
	cfg.Seed = seed

	low, err := theory.ParseNote(lowestNote)
	if err != nil {
		return cfg, fmt.Errorf("invalid --low: %w", err)
	}
	high, err := theory.ParseNote(highest)
	if err != nil {
		return cfg, fmt.Errorf("invalid --high: %w", err)
	}
	cfg.LowestNote = low
	cfg.HighestNote = high

	fill, err := solo.ParseFillPolicy(fillPolicy)
	if err != nil {
		return cfg, fmt.Errorf("invalid --fill: %w", err)
	}
	cfg.Fill = fill
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	song, err := loadSong()
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	perf, err := solo.Generate(song, cfg)
	if err != nil {
		return err
	}

	output := outputFile
	if output == "" {
		output = strings.ReplaceAll(strings.ToLower(song.Name), " ", "-") + ".mid"
	}

	if err := render.WriteFile(perf, render.Options{TieRepeats: tieRepeats}, output); err != nil {
		return err
	}

	fmt.Printf("Wrote %d solo notes and %d comping chords to %s\n",
		len(perf.Solo), len(perf.Comping), output)
	return nil
}

func runSongs(cmd *cobra.Command, args []string) error {
	for _, name := range songbook.Names() {
		song, err := songbook.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-14s %s (%d chords, %.0f bpm)\n", name, song.Name, len(song.Entries), song.Tempo)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
