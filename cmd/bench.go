package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/achilleasa/go-bvh/accel"
	"github.com/achilleasa/go-bvh/primitive"
	"github.com/achilleasa/go-bvh/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

// A sphere scene description loaded from a yaml file.
type benchScene struct {
	Time    float32 `yaml:"time"`
	Spheres []struct {
		Center   [3]float32 `yaml:"center"`
		Radius   float32    `yaml:"radius"`
		Velocity [3]float32 `yaml:"velocity"`
	} `yaml:"spheres"`
}

func loadBenchScene(file string) (*benchScene, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var scene benchScene
	if err = yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parsing %s: %v", file, err)
	}
	if len(scene.Spheres) == 0 {
		return nil, fmt.Errorf("%s defines no spheres", file)
	}

	return &scene, nil
}

func (scene *benchScene) primitiveSet() *primitive.SphereSet {
	spheres := make([]primitive.Sphere, len(scene.Spheres))
	for idx, s := range scene.Spheres {
		spheres[idx] = primitive.Sphere{
			Center:   types.Vec3(s.Center),
			Radius:   s.Radius,
			Velocity: types.Vec3(s.Velocity),
		}
	}
	return primitive.NewSphereSet(spheres)
}

// Build an accelerator over a yaml sphere scene and measure build and
// trace throughput with an orthographic ray grid covering the scene.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene yaml file")
	}

	scene, err := loadBenchScene(ctx.Args().First())
	if err != nil {
		logger.Error(err)
		return err
	}
	set := scene.primitiveSet()

	acc, err := accel.New(ctx.String("accel"))
	if err != nil {
		logger.Error(err)
		return err
	}

	buildStart := time.Now()
	if err = acc.Build(set); err != nil {
		logger.Error(err)
		return err
	}
	buildTime := time.Since(buildStart)

	// Cover the scene bounds with an orthographic ray grid fired along +z.
	bounds := types.EmptyBox()
	for i := 0; i < set.Count(); i++ {
		bounds = bounds.Union(set.Bounds(i))
	}

	width := ctx.Int("width")
	height := ctx.Int("height")
	extent := bounds.Max.Sub(bounds.Min)

	rayCount := 0
	hitCount := 0
	traceStart := time.Now()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			origin := types.XYZ(
				bounds.Min[0]+extent[0]*(float32(x)+0.5)/float32(width),
				bounds.Min[1]+extent[1]*(float32(y)+0.5)/float32(height),
				bounds.Min[2]-1,
			)
			ray := types.Ray{
				Origin: origin,
				Dir:    types.XYZ(0, 0, 1),
				TMin:   1e-3,
				TMax:   extent[2] + 2,
			}

			rayCount++
			if _, hit := acc.Intersect(scene.Time, ray); hit {
				hitCount++
			}
		}
	}
	traceTime := time.Since(traceStart)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Accelerator", "Primitives", "Build time", "Rays", "Hits", "Trace time", "Rays/sec"})
	table.Append([]string{
		acc.Name(),
		fmt.Sprintf("%d", set.Count()),
		fmt.Sprintf("%s", buildTime),
		fmt.Sprintf("%d", rayCount),
		fmt.Sprintf("%d", hitCount),
		fmt.Sprintf("%s", traceTime),
		fmt.Sprintf("%.0f", float64(rayCount)/traceTime.Seconds()),
	})
	table.Render()
	logger.Noticef("bench results\n%s", buf.String())

	return nil
}
