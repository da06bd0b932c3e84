// Command textmeshdemo compiles a font atlas and generates a text mesh.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textmesh"
)

func main() {
	var (
		fontPath = flag.String("font", "", "TTF/OTF font file (default: Go Regular)")
		text     = flag.String("text", "Hello, world!\nThe quick brown fox.", "text to lay out")
		size     = flag.Int("size", 48, "rasterization size in pixels")
		align    = flag.Float64("align", 0, "alignment fraction per axis (0.5 centers)")
		output   = flag.String("output", "atlas.png", "atlas PNG output file")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		textmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	data := goregular.TTF
	key := textmesh.FontKey("goregular")
	if *fontPath != "" {
		b, err := os.ReadFile(*fontPath)
		if err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
		data = b
		key = textmesh.FontKey(*fontPath)
	}

	// Import the printable ASCII range.
	glyphs := make([]rune, 0, 95)
	for r := rune(' '); r <= '~'; r++ {
		glyphs = append(glyphs, r)
	}

	rec := &textmesh.FontRecord{
		Key:       key,
		Data:      data,
		Glyphs:    glyphs,
		Loaded:    true,
		PixelSize: *size,
	}

	compiler := textmesh.NewCompiler()
	defer compiler.Close()

	cf, err := compiler.CompileOrFetch(rec, *size)
	if err != nil {
		log.Fatalf("Failed to compile font: %v", err)
	}

	out, err := textmesh.BuildMesh(*text, cf, textmesh.MeshOptions{
		Alignment: textmesh.V2(*align, *align),
	})
	if err != nil {
		log.Fatalf("Failed to build mesh: %v", err)
	}

	fmt.Printf("Font %q at %dpx: %d glyphs on a %dx%d atlas\n",
		cf.Key().Font, cf.PixelSize(), cf.GlyphCount(),
		cf.Atlas().Width(), cf.Atlas().Height())
	fmt.Printf("Mesh: %d vertices, %d indices, extent %.2f x %.2f\n",
		out.VertexCount(), len(out.Indices), out.Extent.X, out.Extent.Y)

	if err := cf.Atlas().SavePNG(*output); err != nil {
		log.Fatalf("Failed to save atlas: %v", err)
	}
	log.Printf("Atlas saved to %s\n", *output)
}
