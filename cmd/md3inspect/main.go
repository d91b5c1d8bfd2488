package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"md3-renderer/internal/md3"
)

func main() {
	allFrames := flag.Bool("frames", false, "Print bounds and tags for every frame")
	flag.Parse()

	failed := false
	for _, arg := range flag.Args() {
		m, err := md3.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}
		h := m.Header
		fmt.Printf("\n=== %s ===\n", arg)
		fmt.Printf("  name=%q version=%d flags=%d\n", h.Name.Latin1(), h.Version, h.Flags)
		fmt.Printf("  frames=%d tags=%d meshes=%d skins=%d size=%d\n",
			h.NumFrames, h.NumTags, h.NumMeshes, h.MaxSkins, h.FileSize)

		frames := 1
		if *allFrames {
			frames = m.NumFrames()
		}
		for f := 0; f < frames && f < m.NumFrames(); f++ {
			b := m.Bounds(f)
			size := b.Size()
			fmt.Printf("  Frame[%d] min=(%.2f %.2f %.2f) max=(%.2f %.2f %.2f) size=(%.2f %.2f %.2f)\n", f,
				b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2], size[0], size[1], size[2])
			if f < len(m.Tags) {
				for _, t := range m.Tags[f] {
					fmt.Printf("    %-16s pos=(%.2f %.2f %.2f)\n", t.Name.Latin1(),
						t.Position[0], t.Position[1], t.Position[2])
				}
			}
		}

		for i := range m.Meshes {
			mesh := &m.Meshes[i]
			var shaders []string
			for _, s := range mesh.Shaders {
				shaders = append(shaders, s.Name.Latin1())
			}
			fmt.Printf("  Mesh[%d] %s: verts=%d tris=%d frames=%d shaders=[%s]\n", i,
				mesh.Header.Name.Latin1(), mesh.Header.NumVertices, mesh.Header.NumTriangles,
				mesh.Header.NumFrames, strings.Join(shaders, ", "))
		}
	}
	if failed {
		os.Exit(1)
	}
}
