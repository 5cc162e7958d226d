// Shader debug tool - renders the screen visualizer to a PNG file for
// inspection, either on the GPU or through the CPU reference.
//
// Usage: go run ./cmd/shaderdebug -mode gpu -level 0.8 -out debug.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/echoroom/renderer"
	"github.com/pthm-cable/echoroom/scene"
	"github.com/pthm-cable/echoroom/spectrum"
	"github.com/pthm-cable/echoroom/visualizer"
)

func main() {
	mode := flag.String("mode", "gpu", "Render path: gpu or cpu")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 128, "Render width")
	height := flag.Int("height", 256, "Render height")
	bins := flag.Int("bins", 64, "Spectrum texture width")
	level := flag.Float64("level", 0.8, "Loudness of the lowest bin; higher bins fall off linearly")
	t := flag.Float64("time", 0, "Value of iTime")
	flag.Parse()

	u := visualizer.NewUniforms([2]float64{float64(*width), float64(*height)}, *bins)
	u.SetSpectrum(ramp(*bins, *level))
	u.Advance(*t)

	var err error
	switch *mode {
	case "gpu":
		err = renderGPU(u, *outPath)
	case "cpu":
		err = renderCPU(u, *outPath)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "shaderdebug: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Visualizer rendered to: %s (%dx%d, %s)\n", *outPath, *width, *height, *mode)
}

// ramp is a spectrum that is loudest at the bottom and silent at the top.
func ramp(bins int, level float64) spectrum.Frame {
	f := make(spectrum.Frame, bins)
	for i := range f {
		f[i] = max(0, min(1, level*(1-float64(i)/float64(bins))))
	}
	return f
}

func renderGPU(u *visualizer.Uniforms, path string) error {
	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(u.Resolution[0]), int32(u.Resolution[1]), "Shader Debug")
	defer rl.CloseWindow()

	// Black base so the output is the visualizer alone
	screen := renderer.NewScreenRenderer(scene.Default().Screen, colorful.Color{})
	screen.Init(u)
	defer screen.Unload()

	screen.Upload(u)
	screen.Render(u)

	img := rl.LoadImageFromTexture(screen.Target())
	defer rl.UnloadImage(img)
	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("exporting %s", path)
	}
	return nil
}

func renderCPU(u *visualizer.Uniforms, path string) error {
	w, h := int(u.Resolution[0]), int(u.Resolution[1])
	ctx := u.Context()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Pixel centres, v pointing up
			uv := r2.Vec{
				X: (float64(x) + 0.5) / float64(w),
				Y: 1 - (float64(y)+0.5)/float64(h),
			}
			img.SetRGBA(x, y, visualizer.Shade(ctx, uv).Color())
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
