package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeengine/internal/bootstrap"
	"github.com/SeamusWaldron/cubeengine/internal/scene"
)

var sceneOutput string

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Work with scene files",
}

var sceneExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in 3x3x3 scene as YAML",
	Long: `Write the generated scene (27 cubies plus material, lamp and camera
nodes) to a YAML file that scene.path can point at.

Examples:
  cubeengine scene export -o rubik.yaml
  cubeengine scene export > rubik.yaml`,
	RunE: runSceneExport,
}

var sceneInspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "List the nodes of a scene file and which are cubies",
	Args:  cobra.ExactArgs(1),
	RunE:  runSceneInspect,
}

func init() {
	rootCmd.AddCommand(sceneCmd)
	sceneCmd.AddCommand(sceneExportCmd)
	sceneCmd.AddCommand(sceneInspectCmd)
	sceneExportCmd.Flags().StringVarP(&sceneOutput, "output", "o", "", "Output file (default: stdout)")
}

func runSceneExport(cmd *cobra.Command, args []string) error {
	nodes := scene.Rubik()
	if sceneOutput == "" {
		return scene.Encode(cmd.OutOrStdout(), nodes)
	}
	if err := scene.Save(sceneOutput, nodes); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d nodes to %s\n", len(nodes), sceneOutput)
	return nil
}

func runSceneInspect(cmd *cobra.Command, args []string) error {
	nodes, err := scene.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cubies := 0
	for _, n := range nodes {
		mark := " "
		if bootstrap.IsCubieName(n.Name) {
			mark = "*"
			cubies++
		}
		fmt.Fprintf(out, "%s %-20s %s\n", mark, n.Name, n.Transform.Position)
	}
	fmt.Fprintf(out, "\n%d nodes, %d cubies\n", len(nodes), cubies)
	if cubies != 27 {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: a full puzzle has 27 cubies")
	}
	return nil
}
