package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"md3-renderer/internal/anim"
	"md3-renderer/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	file := flag.String("file", "", "Path to an animation.cfg")
	model := flag.String("model", "", "Player model to look up under the search roots, e.g. sarge")
	slot := flag.String("slot", "", "Print the frame sequence of one slot, e.g. LEGS_RUN")
	frames := flag.Int("n", 10, "Number of frames to print for -slot")
	flag.Parse()

	var table *anim.Table
	switch {
	case *file != "":
		f, err := os.Open(*file)
		if err != nil {
			fatal(err)
		}
		table, err = anim.Parse(f)
		f.Close()
		if err != nil {
			fatal(err)
		}
	case *model != "":
		var cfg config.Config
		if *configFile != "" {
			var err error
			if cfg, err = config.Load(*configFile); err != nil {
				fatal(err)
			}
		}
		cfg.Resolve(config.Flags{Frame: -1})
		var err error
		if table, err = anim.Load(cfg.Resolver(), *model); err != nil {
			fatal(err)
		}
	default:
		fmt.Fprintln(os.Stderr, "Usage: animcfg -file animation.cfg | -model name [-slot NAME]")
		os.Exit(2)
	}

	if *slot != "" {
		s, err := anim.ParseSlot(*slot)
		if err != nil {
			fatal(err)
		}
		r := table.SlotOrPlaceholder(s)
		fmt.Printf("%s: first=%d num=%d loop=%d fps=%d (%v)\n", s, r.FirstFrame, r.NumFrames, r.LoopingFrames, r.FPS, r.Duration())
		if r.FPS > 0 {
			step := time.Second / time.Duration(r.FPS)
			for i := 0; i < *frames; i++ {
				fmt.Printf("  t=%-8v frame %d\n", step*time.Duration(i), r.FrameAt(step*time.Duration(i)))
			}
		}
		return
	}

	fmt.Printf("Entries: %d\n", len(table.Entries))
	for i, e := range table.Entries {
		r := e.Range
		fmt.Printf("  [%2d] %-16s first=%-4d num=%-4d loop=%-4d fps=%d\n", i, e.Name, r.FirstFrame, r.NumFrames, r.LoopingFrames, r.FPS)
	}
	fmt.Println("------------------------------------------------------------")
	for s := anim.Slot(0); s < anim.NumSlots; s++ {
		r, ok := table.Slot(s)
		mark := ""
		if !ok {
			r = anim.Placeholder
			mark = " (placeholder)"
		}
		fmt.Printf("  %-16s first=%-4d num=%-4d loop=%-4d fps=%d%s\n", s, r.FirstFrame, r.NumFrames, r.LoopingFrames, r.FPS, mark)
	}
	if missing := table.Missing(); len(missing) > 0 {
		fmt.Printf("Missing slots: %v\n", missing)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
