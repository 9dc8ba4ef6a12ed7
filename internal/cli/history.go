package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeengine/internal/storage"
)

var (
	historyLimit int
	historyID    string
	historyLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled sessions and their moves",
	Long: `Show sessions recorded in the move journal. With --id or --last, show the
moves of one session.

Examples:
  cubeengine history
  cubeengine history --last
  cubeengine history --id <session_id>`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of sessions to list")
	historyCmd.Flags().StringVar(&historyID, "id", "", "Session ID (or prefix) to show")
	historyCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent session")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	out := cmd.OutOrStdout()

	if historyID == "" && !historyLast {
		list, err := sessions.List(historyLimit)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No sessions recorded. Enable storage or pass --db to journal moves.")
			return nil
		}
		fmt.Fprintf(out, "%-8s  %-20s  %-9s  %5s  %s\n", "ID", "Started", "Source", "Moves", "Duration")
		for _, s := range list {
			dur := "-"
			if s.EndedAt != nil {
				dur = s.Duration().Round(time.Second).String()
			}
			fmt.Fprintf(out, "%-8s  %-20s  %-9s  %5d  %s\n",
				s.SessionID[:8], s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.Source, s.MoveCount, dur)
		}
		return nil
	}

	id, err := resolveSessionID(sessions, historyID, historyLast)
	if err != nil {
		return err
	}
	s, err := sessions.Get(id)
	if err != nil {
		return err
	}

	moves := storage.NewMoveRepository(db)
	records, err := moves.GetBySession(id)
	if err != nil {
		return err
	}
	drops, err := moves.DropCounts(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Session: %s\n", s.SessionID)
	fmt.Fprintf(out, "Source:  %s\n", s.Source)
	if s.DeviceName != nil {
		fmt.Fprintf(out, "Device:  %s\n", *s.DeviceName)
	}
	fmt.Fprintf(out, "Started: %s\n", s.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Moves:   %d\n", len(records))
	if len(drops) > 0 {
		fmt.Fprintf(out, "Dropped: %d unresolved, %d empty layer\n", drops["unresolved"], drops["empty_layer"])
	}
	fmt.Fprintln(out)

	syms := make([]string, len(records))
	for i, r := range records {
		syms[i] = r.Symbol
		fmt.Fprintf(out, "%4d  %8s  %s  %s@%d\n", r.Seq, r.Start, r.Symbol, r.Axis, r.Layer)
	}
	if len(syms) > 0 {
		fmt.Fprintf(out, "\nSequence: %s\n", strings.Join(syms, ""))
	}
	return nil
}

func resolveSessionID(repo *storage.SessionRepository, id string, last bool) (string, error) {
	list, err := repo.List(0)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", storage.ErrSessionNotFound
	}
	if last {
		return list[0].SessionID, nil
	}
	var match string
	for _, s := range list {
		if strings.HasPrefix(s.SessionID, id) {
			if match != "" {
				return "", fmt.Errorf("session prefix %q is ambiguous", id)
			}
			match = s.SessionID
		}
	}
	if match == "" {
		return "", storage.ErrSessionNotFound
	}
	return match, nil
}
