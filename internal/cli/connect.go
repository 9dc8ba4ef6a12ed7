package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeengine/internal/ble"
	"github.com/SeamusWaldron/cubeengine/internal/input"
	"github.com/SeamusWaldron/cubeengine/internal/state"
	"github.com/SeamusWaldron/cubeengine/internal/tui"
)

var (
	connectScanTime time.Duration
	connectAttempts int
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Drive the puzzle from a GoCube over Bluetooth",
	Long: `Scan for a GoCube, connect, and mirror its face turns in the terminal
view. U, D, F and B turns map onto the bound Y and Z layer symbols; R and L
turns need X-axis bindings in the config to play.

Start with the physical cube solved. The keyboard keeps working alongside
the cube.`,
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().DurationVar(&connectScanTime, "scan-time", 5*time.Second, "Time to scan per attempt")
	connectCmd.Flags().IntVar(&connectAttempts, "attempts", 3, "Scan attempts before giving up")
}

// scanForGoCube scans up to attempts times. When several cubes answer,
// the one used last time wins.
func scanForGoCube(ctx context.Context, client *ble.Client, sf *state.File, out io.Writer) (ble.ScanResult, error) {
	fmt.Fprintln(out, "Scanning for GoCube devices...")
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		results, err := client.Scan(ctx, connectScanTime)
		if err != nil {
			fmt.Fprintf(out, "Scan %d failed: %v\n", attempt, err)
			continue
		}
		if len(results) > 0 {
			addrs := make([]string, len(results))
			for i, r := range results {
				addrs[i] = r.ID()
			}
			target := results[sf.Preferred(addrs)]
			fmt.Fprintf(out, "Found: %s (RSSI: %d)\n", target.Name, target.RSSI)
			return target, nil
		}
		if attempt < connectAttempts {
			fmt.Fprintf(out, "Scan %d: no devices found, retrying...\n", attempt)
		}
	}
	return ble.ScanResult{}, ble.ErrDeviceNotFound
}

func runConnect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, err := ble.NewClient()
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}
	defer client.Disconnect()

	sf, err := state.OpenDefault()
	if err != nil {
		return err
	}

	target, err := scanForGoCube(ctx, client, sf, out)
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx, runtimeOptions{source: "gocube", deviceName: target.Name, logOut: io.Discard})
	if err != nil {
		return err
	}
	defer rt.Close()

	feed := input.NewFeed(rt.engine.Table(), rt.engine, rt.log)
	client.SetMessageCallback(feed.HandleMessage)
	client.SetErrorCallback(feed.HandleError)

	fmt.Fprintf(out, "Connecting to %s...\n", target.Name)
	if err := client.Connect(ctx, target); err != nil {
		return err
	}
	if err := sf.SetLastDevice(target.ID(), target.Name); err != nil {
		rt.log.WithError(err).Warn("could not save device")
	}
	if rt.journal != nil {
		if err := sf.SetLastSession(rt.journal.SessionID()); err != nil {
			rt.log.WithError(err).Warn("could not save session")
		}
	}

	status := func() string {
		st := feed.Stats()
		s := fmt.Sprintf("Connected: %s", client.DeviceName())
		if !client.IsConnected() {
			s = "Disconnected"
		}
		if st.Battery >= 0 {
			s += fmt.Sprintf(" (Battery: %d%%)", st.Battery)
		}
		if st.Unbound > 0 {
			s += fmt.Sprintf("  unbound turns: %d", st.Unbound)
		}
		return s
	}

	return tui.Run(rt.engine, tui.Config{Title: "cubeengine  GoCube", TickRate: rt.cfg.TickRate, Status: status})
}
