package favicon

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"slices"

	ico "github.com/sergeymakinen/go-ico"

	"favigen/config"
)

// Target is one standalone PNG output: its square pixel size and file name.
type Target struct {
	Size int
	Name string
}

// The output set is fixed: the file names are referenced by the site
// templates, so they are constants rather than configuration.
var pngTargets = []Target{
	{Size: 16, Name: "favicon-16x16.png"},
	{Size: 32, Name: "favicon-32x32.png"},
	{Size: 180, Name: "apple-touch-icon.png"},
}

// icoSizes are the resolutions embedded in the ICO container, smallest first.
var icoSizes = []int{16, 32}

const icoName = "favicon.ico"

// OutputNames returns the file names a generation run writes, in order.
func OutputNames() []string {
	names := make([]string, 0, len(pngTargets)+1)
	for _, t := range pngTargets {
		names = append(names, t.Name)
	}
	return append(names, icoName)
}

// Generator renders the configured source image into the favicon asset set.
type Generator struct {
	cfg *config.Config
}

// NewGenerator creates a new generator
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate renders the source at each target size, writes the standalone
// PNGs and packages the small sizes into a multi-resolution ICO. Existing
// output files are overwritten.
func (g *Generator) Generate() error {
	renderer, err := NewRenderer(g.cfg.Source.Path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(g.cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Buffers for the ICO sizes are kept in memory, not re-read from disk.
	var icoImages []image.Image

	for _, target := range pngTargets {
		img, err := renderer.Render(target.Size)
		if err != nil {
			return fmt.Errorf("failed to render %dx%d: %w", target.Size, target.Size, err)
		}

		outPath := filepath.Join(g.cfg.Output.Dir, target.Name)
		if err := writePNG(outPath, img); err != nil {
			return err
		}
		log.Printf("✓ Created %s", outPath)

		if slices.Contains(icoSizes, target.Size) {
			icoImages = append(icoImages, img)
		}
	}

	if len(icoImages) == 0 {
		return nil
	}

	icoPath := filepath.Join(g.cfg.Output.Dir, icoName)
	if err := writeICO(icoPath, icoImages); err != nil {
		return err
	}
	log.Printf("✓ Created %s", icoPath)

	return nil
}

// writePNG encodes img and writes it in one shot so a failed encode never
// leaves a truncated file behind.
func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeICO packages the images into one multi-resolution ICO container,
// embedded in slice order.
func writeICO(path string, images []image.Image) error {
	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, images); err != nil {
		return fmt.Errorf("failed to encode ICO: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
