package anim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"md3-renderer/internal/resource"
)

const commentMarker = "//"

// Load finds models/players/<model>/animation.cfg through res and parses it.
func Load(res resource.Resolver, model string) (*Table, error) {
	rel := resource.AnimationConfigPath(model)
	path, ok := res.Resolve(rel)
	if !ok {
		return nil, fmt.Errorf("anim: %s: %w", rel, os.ErrNotExist)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("anim: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("anim: %s: %w", path, err)
	}
	return t, nil
}

// ParseString parses animation.cfg text. It never returns nil.
func ParseString(s string) *Table {
	t, err := Parse(strings.NewReader(s))
	if err != nil {
		return &Table{}
	}
	return t
}

// Parse reads animation.cfg. Lines that are not data lines are skipped
// whatever their length; only read errors are returned.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{}
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("anim: read: %w", err)
		}
		t.addLine(raw)
		if err == io.EOF {
			break
		}
	}
	t.reconcile()
	return t, nil
}

func (t *Table) addLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, commentMarker) || strings.HasPrefix(line, "sex") {
		return
	}
	if e, ok := parseLine(line, len(t.Entries)); ok {
		t.Entries = append(t.Entries, e)
	}
}

func parseLine(line string, index int) (Entry, bool) {
	data, comment, hasComment := strings.Cut(line, commentMarker)
	fields := strings.Fields(data)
	if len(fields) < 4 {
		return Entry{}, false
	}
	var v [4]int
	for i := range v {
		if strings.HasPrefix(fields[i], "-") {
			return Entry{}, false
		}
		n, err := strconv.ParseInt(fields[i], 10, 0)
		if err != nil {
			return Entry{}, false
		}
		v[i] = int(n)
	}

	name := strings.TrimSpace(comment)
	if !hasComment || name == "" {
		name = fmt.Sprintf("ANIM_%d", index)
	}
	return Entry{
		Name:  name,
		Range: Range{FirstFrame: v[0], NumFrames: v[1], LoopingFrames: v[2], FPS: v[3]},
	}, true
}

// reconcile makes lower-body first frames relative to the lower-body
// model. The file numbers them after the torso-only animations, so the
// gap between LEGS_WALKCR and TORSO_GESTURE is removed from every legs
// entry.
func (t *Table) reconcile() {
	if len(t.Entries) <= int(legsStart) {
		return
	}
	skip := t.Entries[legsStart].Range.FirstFrame - t.Entries[TorsoGesture].Range.FirstFrame
	if skip <= 0 {
		return
	}
	for i := int(legsStart); i < len(t.Entries); i++ {
		r := &t.Entries[i].Range
		r.FirstFrame = max(r.FirstFrame-skip, 0)
	}
}
