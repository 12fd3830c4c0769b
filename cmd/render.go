package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/imageio"
	"github.com/df07/go-tile-pathtracer/pkg/preview"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	out := ctx.String("out")
	if _, err := imageio.FormatFromPath(out); err != nil {
		return err
	}

	sess, err := setupRenderer(ctx)
	if err != nil {
		return err
	}
	r := sess.renderer

	logger.Noticef("rendering %q", sess.scene.Name)
	if err := r.Start(); err != nil {
		return err
	}
	pollProgress(r, ctx.Duration("poll"), ctx.String("preview"))

	stats := r.Wait()
	if err := imageio.Save(out, r.Image()); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	logger.Noticef("wrote frame to %s", out)

	displayRenderStats(stats)
	return nil
}

// pollProgress reports progress every interval until the render finishes.
// When previewPath is set the annotated preview is written on every report.
func pollProgress(r *renderer.Renderer, interval time.Duration, previewPath string) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !r.Finished() {
		<-ticker.C
		logger.Noticef("progress %5.1f%%, %d tiles in flight", 100*r.Progress(), len(r.ActiveTiles()))
		if previewPath == "" {
			continue
		}
		if err := preview.Save(previewPath, preview.Frame(r)); err != nil {
			logger.Warningf("writing preview: %v", err)
		}
	}
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Pixels", "Samples", "Busy"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Tiles),
			fmt.Sprintf("%d", stat.Pixels),
			fmt.Sprintf("%d", stat.Samples),
			stat.Busy.Round(time.Millisecond).String(),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		stats.Duration.Round(time.Millisecond).String(),
	})

	table.Render()
	logger.Noticef("render statistics (%.0f samples/s)\n%s", stats.SamplesPerSecond(), buf.String())
}
