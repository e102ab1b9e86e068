/*
File   : proofcheck/cmd/proofcheckd/server.go
Package: main
*/
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/proofdsl/proofcheck/parser"
	"github.com/proofdsl/proofcheck/smt/refsolver"
	"github.com/proofdsl/proofcheck/verify"
)

// server holds only the examples directory path: every /check request
// builds its own proof unit, translator, and reference solver instance,
// so there is no state shared across requests or goroutines (§5, §6).
type server struct {
	examplesDir string
}

func newServer(examplesDir string) *server {
	return &server{examplesDir: examplesDir}
}

type checkRequest struct {
	Source string `json:"source"`
}

func (s *server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	unit, err := parser.Parse(req.Source, "")
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      false,
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	driver := verify.NewDriver(refsolver.New())
	result, err := driver.Verify(r.Context(), unit)
	if err != nil {
		http.Error(w, "verification error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type exampleSnippet struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (s *server) handleExamples(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.examplesDir)
	if err != nil {
		http.Error(w, "reading examples: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var snippets []exampleSnippet
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".proof") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.examplesDir, entry.Name()))
		if err != nil {
			http.Error(w, "reading "+entry.Name()+": "+err.Error(), http.StatusInternalServerError)
			return
		}
		snippets = append(snippets, exampleSnippet{
			Name:   strings.TrimSuffix(entry.Name(), ".proof"),
			Source: string(content),
		})
	}
	sort.Slice(snippets, func(i, j int) bool { return snippets[i].Name < snippets[j].Name })

	writeJSON(w, http.StatusOK, snippets)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
