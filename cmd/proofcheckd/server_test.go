/*
File   : proofcheck/cmd/proofcheckd/server_test.go
Package: main
*/
package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCheck_ProvenClaimReturnsOKTrue(t *testing.T) {
	s := newServer(t.TempDir())
	body, _ := json.Marshal(checkRequest{Source: "assume x > 0\nprove x >= 0\n"})

	req := httptest.NewRequest(http.MethodPost, "/check", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, true, decoded["OK"])
	assert.Equal(t, "proven", decoded["Status"])
}

func TestHandleCheck_MalformedJSONIsBadRequest(t *testing.T) {
	s := newServer(t.TempDir())
	req := httptest.NewRequest(http.MethodPost, "/check", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	s.handleCheck(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCheck_ParseErrorIsReportedNotAnHTTPError(t *testing.T) {
	s := newServer(t.TempDir())
	body, _ := json.Marshal(checkRequest{Source: "prove\n"})
	req := httptest.NewRequest(http.MethodPost, "/check", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, false, decoded["ok"])
	assert.Equal(t, "error", decoded["status"])
}

func TestHandleExamples_ListsOnlyDotProofFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "basic.proof"), []byte("assume x > 0\nprove x >= 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	s := newServer(dir)
	req := httptest.NewRequest(http.MethodGet, "/examples", nil)
	rec := httptest.NewRecorder()
	s.handleExamples(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snippets []exampleSnippet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snippets))
	require.Len(t, snippets, 1)
	assert.Equal(t, "basic", snippets[0].Name)
}
