package cmd

import (
	"fmt"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFlags are shared by every command that renders a scene. Settings
// given on the command line win over the --config file, which wins over
// the defaults.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: scene.DefaultScene,
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.StringFlag{
		Name:  "config, c",
		Usage: "JSON file with render settings",
	},
	cli.IntFlag{
		Name:  "width",
		Value: renderer.DefaultConfig().Width,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: renderer.DefaultConfig().Height,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: renderer.DefaultConfig().SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: renderer.DefaultConfig().MaxDepth,
		Usage: "maximum number of bounces per path",
	},
	cli.IntFlag{
		Name:  "tile",
		Value: renderer.DefaultConfig().TileSize,
		Usage: "tile edge length in pixels",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (0 = one less than the CPU count)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultConfig().Seed,
		Usage: "base seed for scene generation and sampling",
	},
	cli.StringFlag{
		Name:  "mesh",
		Usage: "PLY model to place in the scene",
	},
	cli.StringFlag{
		Name:  "accel",
		Value: string(scene.AcceleratorBVH),
		Usage: "intersection structure: bvh or list",
	},
	cli.DurationFlag{
		Name:  "poll",
		Value: time.Second,
		Usage: "interval between progress reports",
	},
}

// renderConfig merges the defaults, the optional config file and any flags
// set explicitly on the command line.
func renderConfig(ctx *cli.Context) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if path := ctx.String("config"); path != "" {
		var err error
		if config, err = renderer.LoadConfig(path); err != nil {
			return config, err
		}
	}

	overrides := []struct {
		flag  string
		value *int
	}{
		{"width", &config.Width},
		{"height", &config.Height},
		{"spp", &config.SamplesPerPixel},
		{"depth", &config.MaxDepth},
		{"tile", &config.TileSize},
		{"workers", &config.NumWorkers},
	}
	for _, o := range overrides {
		if ctx.IsSet(o.flag) {
			*o.value = ctx.Int(o.flag)
		}
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}

	return config, config.Validate()
}

// session is a renderer together with the scene it draws
type session struct {
	renderer *renderer.Renderer
	scene    *scene.Scene
	world    geometry.Hittable
	camera   *renderer.Camera
	config   renderer.Config
}

// setupRenderer builds the selected scene and a renderer over it
func setupRenderer(ctx *cli.Context) (*session, error) {
	config, err := renderConfig(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := scene.New(ctx.String("scene"), config.Seed)
	if err != nil {
		return nil, err
	}

	if path := ctx.String("mesh"); path != "" {
		if _, err := sc.LoadMesh(path); err != nil {
			return nil, err
		}
	}

	world, err := sc.World(scene.Accelerator(ctx.String("accel")))
	if err != nil {
		return nil, err
	}

	camera := sc.NewCamera(config.Width, config.Height)
	r, err := renderer.New(world, sc.Materials, camera, config)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	logger.Infof("scene %q: %d objects, %d materials, %dx%d, %d spp, %d workers",
		sc.Name, len(sc.Objects), sc.Materials.Len(), config.Width, config.Height, config.SamplesPerPixel, config.Workers())
	return &session{renderer: r, scene: sc, world: world, camera: camera, config: config}, nil
}
