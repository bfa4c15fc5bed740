// Package gen drives the external floogen generator: it materializes a
// topology config into a job directory, runs the tool, and archives the
// generated RTL for download.
package gen

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nocworks/socplan/pkg/topo"
)

// ErrJobNotFound is returned when looking up an unknown job id.
var ErrJobNotFound = errors.New("job not found")

// Job statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job records one generator run.
type Job struct {
	ID        string    `json:"job_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Stdout    string    `json:"stdout,omitempty"`
	Stderr    string    `json:"stderr,omitempty"`
	Archive   string    `json:"-"`
}

// Runner executes floogen runs under a working directory and keeps an
// in-memory registry of finished jobs. Safe for concurrent use.
type Runner struct {
	binary  string
	workdir string
	timeout time.Duration

	mu   sync.RWMutex
	jobs map[string]*Job
}

// Option configures a Runner.
type Option func(*Runner)

// WithBinary overrides the generator binary (default "floogen").
func WithBinary(path string) Option { return func(r *Runner) { r.binary = path } }

// WithTimeout overrides the per-run timeout (default 5 minutes).
func WithTimeout(d time.Duration) Option { return func(r *Runner) { r.timeout = d } }

// NewRunner creates a runner writing job directories under workdir.
func NewRunner(workdir string, opts ...Option) (*Runner, error) {
	if err := os.MkdirAll(workdir, 0755); err != nil {
		return nil, fmt.Errorf("create workdir %s: %w", workdir, err)
	}
	r := &Runner{
		binary:  "floogen",
		workdir: workdir,
		timeout: 5 * time.Minute,
		jobs:    make(map[string]*Job),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Generate runs floogen against the topology. Tool failures are recorded on
// the returned job, not returned as errors; the error return covers setup
// problems like an unwritable workdir.
func (r *Runner) Generate(ctx context.Context, t topo.Topology) (*Job, error) {
	job := &Job{
		ID:        fmt.Sprintf("job_%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8]),
		CreatedAt: time.Now(),
	}

	dir := filepath.Join(r.workdir, job.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create job dir: %w", err)
	}

	configPath := filepath.Join(dir, "config.yml")
	if err := topo.WriteFile(t, configPath); err != nil {
		return nil, fmt.Errorf("write config: %w", err)
	}

	r.run(ctx, job, dir, configPath)

	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()
	return job, nil
}

func (r *Runner) run(ctx context.Context, job *Job, dir, configPath string) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	outDir := filepath.Join(dir, "rtl_output")
	cmd := exec.CommandContext(ctx, r.binary, "-c", configPath, "-o", outDir)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	job.Stdout = stdout.String()
	job.Stderr = stderr.String()

	if err != nil {
		job.Status = StatusFailed
		if job.Stderr == "" {
			job.Stderr = err.Error()
		}
		return
	}

	archive := filepath.Join(dir, job.ID+".zip")
	if err := zipDir(outDir, archive); err != nil {
		job.Status = StatusFailed
		job.Stderr = fmt.Sprintf("archive output: %v", err)
		return
	}
	job.Status = StatusCompleted
	job.Archive = archive
}

// Job looks up a finished job by id.
func (r *Runner) Job(id string) (*Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// zipDir archives the directory tree rooted at dir into a zip file,
// storing paths relative to dir.
func zipDir(dir, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}
