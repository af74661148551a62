package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List available maps",
	Long: `Shows the maps the campaign plays through, in order.
Use --maps <dir> to list a custom map directory.`,
	Args: cobra.NoArgs,
	RunE: runMaps,
}

func runMaps(_ *cobra.Command, _ []string) error {
	all, err := mapLoader().LoadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No maps available.")
		return nil
	}

	maxName := len("Name")
	for _, m := range all {
		maxName = max(maxName, len(m.Name))
	}

	fmt.Println("Available maps:")
	fmt.Println()
	fmt.Printf("  %-4s  %-*s  %-5s  %-7s  %s\n", "ID", maxName, "Name", "Size", "Enemies", "Terrain")
	fmt.Printf("  %-4s  %-*s  %-5s  %-7s  %s\n", "--", maxName, "----", "----", "-------", "-------")
	for _, m := range all {
		terrain := fmt.Sprintf("%d brick, %d steel, %d water",
			m.Count(maps.TileBrick)+m.Count(maps.TileHalfBrick), m.Count(maps.TileSteel), m.Count(maps.TileWater))
		fmt.Printf("  %-4s  %-*s  %-5s  %-7d  %s\n",
			m.ID, maxName, m.Name, fmt.Sprintf("%dx%d", m.Size, m.Size), len(m.Enemies), terrain)
	}

	fmt.Println()
	fmt.Println("Run 'tanks play <id>' to start on a map.")
	return nil
}
