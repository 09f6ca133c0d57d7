package ads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_ParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("Authorization = %q, want Bearer token123", got)
		}
		if got := r.URL.Query().Get("q"); got != "author:Payne" {
			t.Errorf("q = %q, want author:Payne", got)
		}
		if got := r.URL.Query().Get("start"); got != "2" {
			t.Errorf("start = %q, want 2", got)
		}
		fmt.Fprint(w, `{"response": {"numFound": 4, "start": 2, "docs": [
			{"bibcode": "1925PhDT.........1P", "title": ["Stellar Atmospheres"],
			 "author": ["Payne, Cecilia"], "year": "1925"}
		]}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("token123"))

	res, err := client.Search(context.Background(), "author:Payne", 2, 1)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if res.NumFound != 4 {
		t.Errorf("NumFound = %d, want 4", res.NumFound)
	}
	if res.Start != 2 {
		t.Errorf("Start = %d, want 2", res.Start)
	}
	if len(res.Docs) != 1 || res.Docs[0].Bibcode != "1925PhDT.........1P" {
		t.Errorf("Docs = %+v", res.Docs)
	}
}

func TestSearch_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("bad"))

	_, err := client.Search(context.Background(), "anything", 0, 1)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Search() error = %v, want ErrUnauthorized", err)
	}
}

func TestSearch_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("t"))

	_, err := client.Search(context.Background(), "anything", 0, 1)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Search() error = %v, want ErrRateLimited", err)
	}
}

func TestSearch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("t"))

	_, err := client.Search(context.Background(), "anything", 0, 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Search() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestExportBibTeX(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/export/bibtex" {
			t.Errorf("path = %s, want /export/bibtex", r.URL.Path)
		}
		fmt.Fprint(w, `{"export": "@PHDTHESIS{1925PhDT.........1P,\n}", "msg": "Retrieved 1 abstracts"}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("t"))

	text, err := client.ExportBibTeX(context.Background(), []string{"1925PhDT.........1P"})
	if err != nil {
		t.Fatalf("ExportBibTeX() error: %v", err)
	}
	if text == "" || text[0] != '@' {
		t.Errorf("ExportBibTeX() = %q, want BibTeX text", text)
	}
}

func TestExportBibTeX_NoBibcodes(t *testing.T) {
	client := NewClient(WithToken("t"))

	text, err := client.ExportBibTeX(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportBibTeX(nil) error: %v", err)
	}
	if text != "" {
		t.Errorf("ExportBibTeX(nil) = %q, want empty", text)
	}
}
