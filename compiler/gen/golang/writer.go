package golang

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/inflect"
	"golang.org/x/tools/imports"

	"github.com/syssam/crudgen/compiler/gen"
)

// FileSuffix is appended to the snake-case artifact name to form the
// name of an emitted file.
const FileSuffix = "_gen.go"

// Writer renders artifacts and writes them as formatted Go files into the
// target directory of the config. It implements gen.Emitter.
type Writer struct {
	renderer *Renderer
	outDir   string

	// mu guards metrics across concurrent Emit calls.
	mu      sync.Mutex
	metrics Metrics
}

// Metrics are the counters and timings accumulated by a Writer.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     time.Duration
	FormatTime     time.Duration
	WriteTime      time.Duration
}

var _ gen.Emitter = (*Writer)(nil)

// NewWriter creates a Writer emitting into cfg.Target.
func NewWriter(cfg *gen.Config) (*Writer, error) {
	if cfg == nil || cfg.Target == "" {
		return nil, gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	return &Writer{
		renderer: NewRenderer(cfg, packageName(cfg.Target)),
		outDir:   cfg.Target,
	}, nil
}

// packageName derives a package name from the output directory.
func packageName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	name := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, filepath.Base(dir))
	if name == "" || name == "_" || name == string(filepath.Separator) {
		return "main"
	}
	return name
}

// Metrics returns a snapshot of the generation metrics.
func (w *Writer) Metrics() Metrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// FileName returns the name of the file emitted for an artifact.
func FileName(a *gen.Artifact) string {
	return inflect.Underscore(a.Name) + FileSuffix
}

// Emit writes the repository and service files of one entity.
func (w *Writer) Emit(ctx context.Context, a *gen.Artifacts) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, art := range a.List() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeFile(art); err != nil {
			return gen.NewGenerationError(a.Entity.QualifiedName(), FileName(art), "emit", err)
		}
	}
	return nil
}

// Source renders an artifact as formatted Go source.
func (w *Writer) Source(a *gen.Artifact) ([]byte, error) {
	start := time.Now()
	f, err := w.renderer.Render(a)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", a.Name, err)
	}
	rendered := time.Now()

	// The path only selects the import grouping; nothing is read from disk.
	formatted, err := imports.Process(filepath.Join(w.outDir, FileName(a)), buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", a.Name, err)
	}

	w.mu.Lock()
	w.metrics.RenderTime += rendered.Sub(start)
	w.metrics.FormatTime += time.Since(rendered)
	w.mu.Unlock()
	return formatted, nil
}

func (w *Writer) writeFile(a *gen.Artifact) error {
	src, err := w.Source(a)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := os.WriteFile(filepath.Join(w.outDir, FileName(a)), src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", FileName(a), err)
	}

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(src))
	w.metrics.WriteTime += time.Since(start)
	w.mu.Unlock()
	return nil
}
