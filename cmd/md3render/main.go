package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"md3-renderer/internal/anim"
	"md3-renderer/internal/batch"
	"md3-renderer/internal/config"
	"md3-renderer/internal/md3"
	"md3-renderer/internal/player"
	"md3-renderer/internal/pose"
	"md3-renderer/internal/postprocess"
	"md3-renderer/internal/raster"
	"md3-renderer/internal/skin"
	"md3-renderer/internal/texture"
)

type rootList []string

func (r *rootList) String() string     { return strings.Join(*r, ",") }
func (r *rootList) Set(v string) error { *r = append(*r, v); return nil }

func main() {
	var roots rootList
	configFile := flag.String("config", "", "Path to config.json file")
	flag.Var(&roots, "root", "Asset search root, repeatable (default: auto-detect q3-resources)")
	outputDir := flag.String("output", "", "Output directory for batch mode (default: renders)")
	indexDB := flag.String("index", "", "LevelDB index for incremental batch runs")
	testN := flag.Int("test", 0, "Render only the first N models")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	size := flag.Int("size", 0, "Output size in pixels (default: 256)")
	ss := flag.Int("ss", 0, "Supersampling factor (default: 2)")
	fill := flag.Float64("fill", 0, "Crop to the model and fill this fraction of the image, e.g. 0.9")
	frame := flag.Int("frame", -1, "Animation frame to render (default: 0)")
	yaw := flag.Float64("yaw", 0, "Camera yaw in degrees")
	pitch := flag.Float64("pitch", 0, "Camera pitch in degrees")
	persp := flag.Bool("persp", false, "Use a perspective projection")

	modelFile := flag.String("model", "", "Render a single .md3 file")
	playerName := flag.String("player", "", "Render an assembled player, e.g. sarge")
	skinName := flag.String("skin", "default", "Player skin")
	weapon := flag.String("weapon", "", "Weapon to attach to the player, e.g. rocketl")
	legs := flag.String("legs", "LEGS_IDLE", "Legs animation for -player")
	torso := flag.String("torso", "TORSO_STAND", "Torso animation for -player")
	at := flag.Duration("at", 0, "Playback time into the animations for -player")
	out := flag.String("o", "", "Output .webp for -model/-player")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	flags := config.Flags{
		Roots:       roots,
		OutputDir:   *outputDir,
		IndexDB:     *indexDB,
		Size:        *size,
		Supersample: *ss,
		Fill:        *fill,
		Workers:     *workers,
		Frame:       *frame,
		Perspective: *persp,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "yaw":
			flags.Yaw = yaw
		case "pitch":
			flags.Pitch = pitch
		}
	})
	cfg.Resolve(flags)

	res := cfg.Resolver()
	texCache := texture.NewCache(res, texture.BuildIndex(cfg.SearchRoots...))

	switch {
	case *playerName != "":
		legsSlot, err := anim.ParseSlot(*legs)
		if err != nil {
			fatal(err)
		}
		torsoSlot, err := anim.ParseSlot(*torso)
		if err != nil {
			fatal(err)
		}
		p, err := player.Load(res, *playerName, *skinName)
		if err != nil {
			fatal(err)
		}
		if *weapon != "" {
			if err := p.LoadWeapon(res, *weapon); err != nil {
				fatal(err)
			}
		}
		if p.Anim == nil {
			fmt.Fprintf(os.Stderr, "Warning: %s has no animation.cfg, using frame 0\n", *playerName)
		}
		ps := p.PoseAt(legsSlot, torsoSlot, *at)
		fmt.Printf("%s: legs %s frame %d, torso %s frame %d\n", *playerName, legsSlot, ps.LegsFrame, torsoSlot, ps.TorsoFrame)
		img := render(cfg, p.Surfaces(ps, texCache))
		save(pick(*out, *playerName+".webp"), img)

	case *modelFile != "":
		m, err := md3.Load(*modelFile)
		if err != nil {
			fatal(err)
		}
		dir, part := assetDir(cfg.SearchRoots, *modelFile)
		sk, _ := skin.Load(res, dir, part, "")
		f := pose.ClampFrame(cfg.Frame, m.NumFrames())
		surfs := pose.Surfaces(m, f, pose.Identity(), player.MeshTextures(texCache, sk, dir, part))
		img := render(cfg, surfs)
		save(pick(*out, strings.TrimSuffix(filepath.Base(*modelFile), filepath.Ext(*modelFile))+".webp"), img)

	default:
		runBatch(cfg, texCache, *testN)
	}
}

func runBatch(cfg config.Config, texCache *texture.Cache, testN int) {
	if len(cfg.SearchRoots) == 0 {
		fmt.Fprintln(os.Stderr, "Error: cannot find q3-resources. Use -root flag or config.json.")
		os.Exit(1)
	}

	jobs := batch.Jobs(cfg.SearchRoots...)
	if testN > 0 && testN < len(jobs) {
		jobs = jobs[:testN]
	}
	if len(jobs) == 0 {
		fmt.Println("No models to render.")
		os.Exit(0)
	}

	var index *batch.Index
	if cfg.IndexDB != "" {
		var err error
		index, err = batch.OpenIndex(cfg.IndexDB)
		if err != nil {
			fatal(err)
		}
	}

	bc := batch.Config{
		OutputDir:   cfg.OutputDir,
		Assets:      cfg.Resolver(),
		TexResolver: texCache,
		Index:       index,
		RunID:       batch.NewRunID(),
		Camera:      cfg.Camera(),
		Frame:       cfg.Frame,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Fill:        cfg.Fill,
		Workers:     cfg.Workers,
	}

	fmt.Println("MD3 Renderer → WebP")
	fmt.Printf("Roots: %s\n", strings.Join(cfg.SearchRoots, ", "))
	fmt.Printf("Models: %d, Workers: %d, Run: %s\n", len(jobs), cfg.Workers, bc.RunID)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(bc, jobs)
	if index != nil {
		if err := index.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: index close failed: %v\n", err)
		}
	}
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	success, skipped := 0, 0
	var failures []batch.Result
	for _, r := range results {
		switch {
		case r.Skipped:
			skipped++
			success++
		case r.Success:
			success++
		default:
			failures = append(failures, r)
		}
	}
	fmt.Printf("Rendered: %d/%d (%d unchanged)\n", success, len(jobs), skipped)
	if n := len(texCache.Failures()); n > 0 {
		fmt.Printf("Undecodable textures: %d\n", n)
	}

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		for _, e := range failures[:min(len(failures), 20)] {
			fmt.Printf("  %s: %s\n", e.Rel, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, batch.BuildManifest(bc, results)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}

func render(cfg config.Config, surfs []raster.Surface) *image.NRGBA {
	img := raster.Render(surfs, cfg.Camera(), cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Supersample)
	}
	if cfg.Fill > 0 {
		img = postprocess.CropAndCenter(img, cfg.RenderSize, cfg.Fill)
	}
	return img
}

// assetDir returns the slash-separated directory of file below the first
// root containing it, and the file's stem.
func assetDir(roots []string, file string) (string, string) {
	part := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", part
	}
	for _, root := range roots {
		r, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(r, filepath.Dir(abs))
		if err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel), part
		}
	}
	return "", part
}

func pick(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func save(path string, img *image.NRGBA) {
	if err := batch.WriteWebP(path, img); err != nil {
		fatal(err)
	}
	fmt.Printf("Saved: %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
