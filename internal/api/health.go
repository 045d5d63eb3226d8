package api

import (
	"net/http"

	"golang.org/x/mod/semver"
)

type healthJSON struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Release bool   `json:"release"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	v := s.opts.Version
	if v == "" {
		v = "(devel)"
	}
	writeJSON(w, http.StatusOK, healthJSON{
		Status:  "ok",
		Version: v,
		Release: semver.IsValid(v) && semver.Prerelease(v) == "",
	})
}
