package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	bpcore "github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/stages"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/stages/formats"
)

var (
	flagOutput string
	flagRandom bool
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Inspect and write stage files",
	Long: `Work with campaign stage files. Stages are CSV files (or YAML with a
rows list) of one symbol per cell:

  R Y B G       bubble colors
  N             obstacle
  /             blocked slot
  . or X        empty

Files named stageN play in numeric order. The grid size comes from the
game config.

Examples:
  bubblepop stages list
  bubblepop stages list --stages ./my-stages
  bubblepop stages show 2
  bubblepop stages show ./my-stages/stage4.csv
  bubblepop stages new ./my-stages/stage5.csv --random --seed 9
  bubblepop stages normalize ./old.csv -o ./my-stages/stage6.csv`,
}

var stagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaign stages in play order",
	Args:  cobra.NoArgs,
	RunE:  runStagesList,
}

var stagesShowCmd = &cobra.Command{
	Use:   "show <file|number>",
	Short: "Print a stage as a hex grid",
	Args:  cobra.ExactArgs(1),
	RunE:  runStagesShow,
}

var stagesNewCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Write a blank or random stage file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStagesNew,
}

var stagesNormalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Rewrite a stage file as a clean CSV of the configured size",
	Args:  cobra.ExactArgs(1),
	RunE:  runStagesNormalize,
}

func init() {
	stagesCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	stagesCmd.PersistentFlags().StringVar(&flagStageDir, "stages", "", "Directory of stage files (default: built-in stages)")

	stagesNewCmd.Flags().BoolVar(&flagRandom, "random", false, "Fill with a generated layout (uses --seed)")
	stagesNormalizeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write here instead of stdout")

	stagesCmd.AddCommand(stagesListCmd, stagesShowCmd, stagesNewCmd, stagesNormalizeCmd)
}

// gridSize reads the stage dimensions from the game config.
func gridSize() (rows, cols int) {
	cfg, err := config.LoadBubblePop(flagConfig)
	if err != nil {
		logger.Warn("using default config", "err", err)
	}
	return cfg.Grid.Rows, cfg.Grid.Cols
}

func stageLoader() *stages.Loader {
	rows, cols := gridSize()
	var l *stages.Loader
	if flagStageDir != "" {
		l = stages.NewLoader(flagStageDir, rows, cols)
	} else {
		l = stages.Builtin(rows, cols)
	}
	l.Logger = logger
	return l
}

func runStagesList(_ *cobra.Command, _ []string) error {
	loader := stageLoader()
	list, err := loader.LoadAll()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No stages found.")
		return nil
	}

	fmt.Printf("  %-3s  %-20s  %7s  %s\n", "#", "Name", "Bubbles", "File")
	fmt.Printf("  %-3s  %-20s  %7s  %s\n", "-", "----", "-------", "----")
	for i, st := range list {
		fmt.Printf("  %-3d  %-20s  %7d  %s\n", i+1, st.Name, countBubbles(st.Cells), st.Path)
	}
	return nil
}

func runStagesShow(_ *cobra.Command, args []string) error {
	st, err := findStage(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d bubbles)\n\n", st.Name, countBubbles(st.Cells))
	printGrid(os.Stdout, st.Cells)
	return nil
}

// findStage treats a number as a position in the campaign, anything else
// as a file path.
func findStage(arg string) (stages.Stage, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		loader := stageLoader()
		list, err := loader.LoadAll()
		if err != nil {
			return stages.Stage{}, err
		}
		if n < 1 || n > len(list) {
			return stages.Stage{}, fmt.Errorf("stage %d not found, %d stages available", n, len(list))
		}
		return list[n-1], nil
	}

	rows, cols := gridSize()
	st, err := stages.LoadFile(arg, rows, cols)
	if err != nil {
		// Malformed files still load as an empty grid; unreadable ones fail.
		if _, statErr := os.Stat(arg); statErr != nil {
			return stages.Stage{}, err
		}
		logger.Warn("stage file is malformed", "path", arg, "err", err)
	}
	return st, nil
}

func runStagesNew(_ *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	rows, cols := gridSize()
	cells := bpcore.EmptyMatrix(rows, cols)
	if flagRandom {
		gen := stages.NewGenerator(rows, cols, uint64(flagSeed)) //#nosec G115
		st, _ := gen.Stage(0)
		cells = st.Cells
	}

	if err := writeCSVFile(path, cells); err != nil {
		return err
	}
	fmt.Printf("Wrote %dx%d stage to %s\n", rows, cols, path)
	return nil
}

func runStagesNormalize(_ *cobra.Command, args []string) error {
	rows, cols := gridSize()
	st, err := stages.LoadFile(args[0], rows, cols)
	if err != nil {
		if _, statErr := os.Stat(args[0]); statErr != nil {
			return err
		}
		logger.Warn("stage file is malformed, writing an empty grid", "path", args[0], "err", err)
	}

	if flagOutput == "" {
		return formats.WriteCSV(os.Stdout, st.Cells)
	}
	return writeCSVFile(flagOutput, st.Cells)
}

func writeCSVFile(path string, cells [][]bpcore.Cell) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create stage file: %w", err)
	}
	if err := formats.WriteCSV(f, cells); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func countBubbles(cells [][]bpcore.Cell) int {
	n := 0
	for _, row := range cells {
		for _, c := range row {
			if c.IsColor() {
				n++
			}
		}
	}
	return n
}

// printGrid draws the layout with odd rows shifted half a cell right.
func printGrid(w io.Writer, cells [][]bpcore.Cell) {
	for r, row := range cells {
		var b strings.Builder
		if r%2 != 0 {
			b.WriteByte(' ')
		}
		for i, c := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(c.Symbol())
		}
		fmt.Fprintln(w, b.String())
	}
}
