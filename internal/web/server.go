// Package web serves the resolver over a local HTTP API, for host
// integrations (DCC plugin scripts) that call out to a helper process
// instead of shelling out per resolution.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"texlink/internal/convention"
	"texlink/internal/model"
	"texlink/internal/resolve"
	"texlink/internal/shading"
)

// Server holds the convention file path backing the API. The file is
// re-read per request so Name Manager edits are picked up live.
type Server struct {
	ConventionPath string
}

// StartServer starts the API server on the default port 8080.
func StartServer(conventionPath string) {
	s := &Server{ConventionPath: conventionPath}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/resolve", s.handleResolve)
	mux.HandleFunc("/api/convention", s.handleConvention)

	port := "8080"
	fmt.Printf("Starting texlink API server at http://localhost:%s\n", port)
	fmt.Printf("Resolve with http://localhost:%s/api/resolve?path=<file>&type=basecolor\n", port)

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}

type resolveResponse struct {
	Reference model.TexturePathInfo `json:"reference"`
	Settings  model.Settings        `json:"settings"`
	Results   model.LinkResult      `json:"results"`
	Plan      []shading.Step        `json:"plan"`
	Probes    []resolve.Probe       `json:"probes,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "missing ?path=", http.StatusBadRequest)
		return
	}
	refType := model.BaseColor
	if v := r.URL.Query().Get("type"); v != "" {
		t, err := model.ParseMapType(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		refType = t
	}

	conv, settings, err := convention.Load(s.ConventionPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resolver := resolve.New(conv, settings)
	info, result, probes, err := resolver.ResolveReference(path, refType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := resolveResponse{
		Reference: info,
		Settings:  settings,
		Results:   result,
		Plan:      shading.BuildPlan(result),
	}
	if r.URL.Query().Get("verbose") == "1" {
		resp.Probes = probes
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(resp)
}

func (s *Server) handleConvention(w http.ResponseWriter, r *http.Request) {
	conv, settings, err := convention.Load(s.ConventionPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]interface{}{
		"convention": conv,
		"settings":   settings,
	})
}
