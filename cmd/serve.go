package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-tile-pathtracer/pkg/imageio"
	"github.com/df07/go-tile-pathtracer/pkg/log"
	"github.com/df07/go-tile-pathtracer/web/server"
	"github.com/urfave/cli"
)

// consoleBuffer is the number of log lines held for the event stream
const consoleBuffer = 100

// Render a scene while serving its live preview over HTTP. The server keeps
// running after the render completes until interrupted.
func Serve(ctx *cli.Context) error {
	console := server.NewConsoleWriter(consoleBuffer)
	log.SetSink(io.MultiWriter(os.Stdout, console))
	setupLogging(ctx)

	out := ctx.String("out")
	if out != "" {
		if _, err := imageio.FormatFromPath(out); err != nil {
			return err
		}
	}

	sess, err := setupRenderer(ctx)
	if err != nil {
		return err
	}
	r := sess.renderer
	if err := r.Start(); err != nil {
		return err
	}

	go func() {
		pollProgress(r, ctx.Duration("poll"), "")
		stats := r.Wait()
		displayRenderStats(stats)
		if out == "" {
			return
		}
		if err := imageio.Save(out, r.Image()); err != nil {
			logger.Errorf("saving frame: %v", err)
			return
		}
		logger.Noticef("wrote frame to %s", out)
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(r, sess.scene.Name, console.Messages())
	srv.Inspector = server.NewInspector(sess.scene, sess.world, sess.camera, sess.config.Width, sess.config.Height)
	return srv.ListenAndServe(sigCtx, ctx.String("addr"))
}
