package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeengine"
)

var (
	simTick    time.Duration
	simMaxTime time.Duration
	simQuiet   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <symbols>",
	Short: "Run a symbol sequence headless",
	Long: `Feed a sequence of symbols to the engine with a fixed tick and print the
resulting net and counters. Symbols may be given as one word ("wrk") or as
separate arguments ("w r k").

Examples:
  cubeengine simulate wr
  cubeengine simulate u i o --tick 10ms
  cubeengine simulate "$(cat moves.txt)" --quiet`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().DurationVar(&simTick, "tick", 16*time.Millisecond, "Simulated frame time")
	simulateCmd.Flags().DurationVar(&simMaxTime, "max-time", time.Hour, "Give up after this much simulated time")
	simulateCmd.Flags().BoolVarP(&simQuiet, "quiet", "q", false, "Print counters only")
}

// parseSymbols splits arguments into single-character symbols, ignoring
// whitespace.
func parseSymbols(args []string) []cubeengine.Symbol {
	var out []cubeengine.Symbol
	for _, a := range args {
		for _, r := range a {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				continue
			}
			out = append(out, cubeengine.Symbol(string(r)))
		}
	}
	return out
}

func runSimulate(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), runtimeOptions{source: "simulate", logOut: os.Stderr})
	if err != nil {
		return err
	}
	defer rt.Close()

	return simulate(rt.engine, parseSymbols(args), simTick, simMaxTime, simQuiet, cmd.OutOrStdout())
}

func simulate(eng *cubeengine.Engine, syms []cubeengine.Symbol, tick, maxTime time.Duration, quiet bool, out io.Writer) error {
	if tick <= 0 {
		return fmt.Errorf("tick must be positive")
	}
	eng.Submit(syms...)

	var simulated time.Duration
	for !eng.Idle() {
		if simulated > maxTime {
			return fmt.Errorf("simulation did not settle within %s", maxTime)
		}
		if err := eng.Tick(tick); err != nil {
			return err
		}
		simulated += tick
	}

	net, err := eng.Net()
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(out, net.String())
	}

	st := eng.Stats()
	fmt.Fprintf(out, "Symbols:    %d\n", st.Submitted)
	fmt.Fprintf(out, "Moves:      %d\n", st.Completed)
	fmt.Fprintf(out, "Dropped:    %d unresolved, %d empty layer\n", st.Unresolved, st.EmptyLayers)
	fmt.Fprintf(out, "Sim time:   %s\n", eng.Clock())
	fmt.Fprintf(out, "Solved:     %s\n", yesNo(net.IsSolved()))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
