package cmd

import (
	"fmt"
	"math/rand"

	"github.com/achilleasa/go-bvh/accel"
	"github.com/achilleasa/go-bvh/primitive"
	"github.com/achilleasa/go-bvh/types"
	"github.com/urfave/cli"
)

// Cross-validate the bvh accelerator against the exhaustive one by firing
// random rays at a randomly generated sphere scene and comparing results.
func Validate(ctx *cli.Context) error {
	setupLogging(ctx)

	rng := rand.New(rand.NewSource(ctx.Int64("seed")))
	primCount := ctx.Int("prims")
	rayCount := ctx.Int("rays")

	spheres := make([]primitive.Sphere, primCount)
	for idx := range spheres {
		spheres[idx] = primitive.Sphere{
			Center: randVec3(rng, -100, 100),
			Radius: 0.5 + 4.5*rng.Float32(),
		}
	}
	set := primitive.NewSphereSet(spheres)

	bvh, err := accel.New("bvh")
	if err != nil {
		return err
	}
	exhaustive, err := accel.New("exhaustive")
	if err != nil {
		return err
	}

	if err = bvh.Build(set); err != nil {
		return err
	}
	if err = exhaustive.Build(set); err != nil {
		return err
	}

	mismatches := 0
	for i := 0; i < rayCount; i++ {
		ray := types.Ray{
			Origin: randVec3(rng, -150, 150),
			Dir:    randVec3(rng, -1, 1).Normalize(),
			TMin:   1e-3,
			TMax:   1e4,
		}

		bvhIsect, bvhHit := bvh.Intersect(0, ray)
		exIsect, exHit := exhaustive.Intersect(0, ray)

		if bvhHit != exHit || (bvhHit && bvhIsect.PrimIndex != exIsect.PrimIndex) {
			mismatches++
			logger.Warningf(
				"mismatch for ray %d: bvh hit=%t prim=%d, exhaustive hit=%t prim=%d",
				i, bvhHit, bvhIsect.PrimIndex, exHit, exIsect.PrimIndex,
			)
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d rays disagree between accelerators", mismatches, rayCount)
	}

	logger.Noticef("%d rays traced against %d primitives; accelerators agree", rayCount, primCount)
	return nil
}

func randVec3(rng *rand.Rand, min, max float32) types.Vec3 {
	return types.XYZ(
		min+(max-min)*rng.Float32(),
		min+(max-min)*rng.Float32(),
		min+(max-min)*rng.Float32(),
	)
}
