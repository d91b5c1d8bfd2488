package batch

import (
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"md3-renderer/internal/md3"
	"md3-renderer/internal/player"
	"md3-renderer/internal/pose"
	"md3-renderer/internal/postprocess"
	"md3-renderer/internal/raster"
	"md3-renderer/internal/resource"
	"md3-renderer/internal/skin"
	"md3-renderer/internal/texture"
	"md3-renderer/internal/view"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Assets      resource.Resolver // skins
	TexResolver texture.Resolver
	Index       *Index // optional
	RunID       string
	Camera      view.Camera
	Frame       int
	RenderSize  int
	Supersample int
	Fill        float64 // >0 crops to the visible pixels and rescales
	Workers     int
	Quiet       bool
}

// Settings summarizes everything besides the model that changes a render.
func (c Config) Settings() string {
	return fmt.Sprintf("frame=%d size=%d ss=%d fill=%g yaw=%g pitch=%g persp=%t fov=%g",
		c.Frame, c.RenderSize, c.Supersample, c.Fill, c.Camera.Yaw, c.Camera.Pitch, c.Camera.Perspective, c.Camera.FOV)
}

// Job is one model file to render. Rel is its slash-separated path below
// the search root, e.g. "models/players/sarge/head.md3".
type Job struct {
	Path string
	Rel  string
}

// Jobs discovers every .md3 file below the roots.
func Jobs(roots ...string) []Job {
	var jobs []Job
	seen := make(map[string]bool)
	for _, root := range roots {
		for _, p := range resource.FindAll(".md3", root) {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				rel = filepath.Base(p)
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] {
				continue
			}
			seen[rel] = true
			jobs = append(jobs, Job{Path: p, Rel: rel})
		}
	}
	return jobs
}

// Result holds the outcome of rendering one model.
type Result struct {
	Rel     string
	Output  string
	Success bool
	Skipped bool
	Error   string

	Frames int
	Meshes int
	Tags   []string

	Bounds    md3.Bounds
	HasBounds bool // false when no vertex exists at the rendered frame
}

// Run renders all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && !cfg.Quiet {
					rate := float64(p) / time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// OutputPath maps "models/players/sarge/head.md3" to
// "<out>/models/players/sarge/head.webp".
func OutputPath(outDir, rel string) string {
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimSuffix(rel, path.Ext(rel))+".webp"))
}

func processJob(cfg Config, job Job) Result {
	res := Result{Rel: job.Rel, Output: OutputPath(cfg.OutputDir, job.Rel)}
	fail := func(format string, args ...any) Result {
		res.Error = fmt.Sprintf(format, args...)
		return res
	}

	settings := cfg.Settings()
	stamp, err := StampFile(job.Path, settings)
	if err != nil {
		return fail("%v", err)
	}
	if cfg.Index != nil && cfg.Index.Fresh(job.Rel, stamp) {
		res.Success, res.Skipped = true, true
		return res
	}

	m, err := md3.Load(job.Path)
	if err != nil {
		return fail("%v", err)
	}
	res.Frames = m.NumFrames()
	res.Meshes = len(m.Meshes)
	res.Tags = m.TagNames()
	if len(m.Meshes) == 0 {
		return fail("no meshes in %s", job.Rel)
	}
	frame := pose.ClampFrame(cfg.Frame, m.NumFrames())
	res.Bounds, res.HasBounds = m.FrameBounds(frame)

	dir := path.Dir(job.Rel)
	part := strings.TrimSuffix(path.Base(job.Rel), path.Ext(job.Rel))
	var sk *skin.Skin
	if cfg.Assets != nil {
		sk, _ = skin.Load(cfg.Assets, dir, part, "")
	}

	surfaces := pose.Surfaces(m, frame, pose.Identity(), player.MeshTextures(cfg.TexResolver, sk, dir, part))
	img := raster.Render(surfaces, cfg.Camera, cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Supersample)
	}
	if cfg.Fill > 0 {
		img = postprocess.CropAndCenter(img, cfg.RenderSize, cfg.Fill)
	}

	if err := WriteWebP(res.Output, img); err != nil {
		return fail("%v", err)
	}

	if cfg.Index != nil {
		stamp.RunID = cfg.RunID
		stamp.Output = res.Output
		if err := cfg.Index.Record(job.Rel, stamp); err != nil {
			return fail("%v", err)
		}
	}
	res.Success = true
	return res
}

// WriteWebP encodes img losslessly to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
