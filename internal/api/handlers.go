package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nocworks/socplan/pkg/buildinfo"
	"github.com/nocworks/socplan/pkg/cache"
	"github.com/nocworks/socplan/pkg/gen"
	"github.com/nocworks/socplan/pkg/layout"
	"github.com/nocworks/socplan/pkg/topo"
)

// layoutCacheTTL bounds how long computed layouts are kept. Layouts are
// cheap to recompute; the cache mainly absorbs repeated edits of the same
// config in the editor.
const layoutCacheTTL = 24 * time.Hour

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// readTopology reads and parses the request body as a topology config
// (YAML or JSON). A nil topology with a written response means failure.
func (s *Server) readTopology(w http.ResponseWriter, r *http.Request) (topo.Topology, []byte, bool) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body: "+err.Error())
		return topo.Topology{}, nil, false
	}

	t, err := topo.Unmarshal(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "parse config: "+err.Error())
		return topo.Topology{}, nil, false
	}
	return t, raw, true
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	t, _, ok := s.readTopology(w, r)
	if !ok {
		return
	}

	errs := t.Validate()
	respondJSON(w, http.StatusOK, map[string]any{
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

// handleLayout computes the schematic layout for the posted config and
// returns it with ports distributed, ready to draw. Results are cached by
// config content and geometry settings.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	t, raw, ok := s.readTopology(w, r)
	if !ok {
		return
	}

	key := cache.LayoutKey(cache.Hash(raw), s.layoutCfg)
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	l := layout.Compute(t, s.layoutCfg)
	layout.DistributePorts(&l)

	data, err := json.Marshal(l)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "encode layout: "+err.Error())
		return
	}
	if err := s.cache.Set(r.Context(), key, data, layoutCacheTTL); err != nil {
		s.logger.Warn("cache layout", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handlePorts re-runs port distribution on a client-posted layout, used
// after the editor moves nodes around.
func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var l layout.Layout
	if err := json.Unmarshal(raw, &l); err != nil {
		respondError(w, http.StatusBadRequest, "parse layout: "+err.Error())
		return
	}

	layout.DistributePorts(&l)
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	t, _, ok := s.readTopology(w, r)
	if !ok {
		return
	}

	if errs := t.Validate(); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "invalid configuration",
			"validation_errors": errs,
		})
		return
	}

	job, err := s.runner.Generate(r.Context(), t)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "start generation: "+err.Error())
		return
	}

	if job.Status != gen.StatusCompleted {
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  "generation failed",
			"job_id": job.ID,
			"stdout": job.Stdout,
			"stderr": job.Stderr,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"job_id":       job.ID,
		"status":       job.Status,
		"download_url": downloadURL(job.ID),
	})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.runner.Job(chi.URLParam(r, "id"))
	if errors.Is(err, gen.ErrJobNotFound) {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]any{
		"job_id":     job.ID,
		"status":     job.Status,
		"created_at": job.CreatedAt,
		"stdout":     job.Stdout,
		"stderr":     job.Stderr,
	}
	if job.Status == gen.StatusCompleted {
		resp["download_url"] = downloadURL(job.ID)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	job, err := s.runner.Job(chi.URLParam(r, "id"))
	if errors.Is(err, gen.ErrJobNotFound) || (err == nil && job.Archive == "") {
		respondError(w, http.StatusNotFound, "no archive for job")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.ID+".zip"))
	http.ServeFile(w, r, job.Archive)
}

func downloadURL(jobID string) string {
	return "/api/jobs/" + jobID + "/download"
}
