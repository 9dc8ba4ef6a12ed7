package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeengine/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the puzzle from the keyboard",
	Long: `Open the interactive terminal view. Each bound key queues one layer
rotation; moves animate one at a time.

Logs go to the configured log file so they do not draw over the view.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), runtimeOptions{source: "keyboard", logOut: io.Discard})
	if err != nil {
		return err
	}
	defer rt.Close()

	title := "cubeengine"
	if rt.journal != nil {
		title = fmt.Sprintf("cubeengine  session %s", rt.journal.SessionID()[:8])
	}
	return tui.Run(rt.engine, tui.Config{Title: title, TickRate: rt.cfg.TickRate})
}
