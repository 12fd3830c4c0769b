package cmd

import (
	"github.com/df07/go-tile-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scene.List() {
		name := info.Name
		if name == scene.DefaultScene {
			name += " (default)"
		}
		table.Append([]string{name, info.Description})
	}
	table.Render()
	return nil
}
