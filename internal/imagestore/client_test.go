package imagestore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://img.example/files/v1712345678/abc123.jpg", "abc123"},
		{"https://img.example/files/v1/marketplace/abc123.png", "marketplace/abc123"},
		{"http://img.example/v99/noext", "noext"},
	}
	for _, c := range cases {
		got, err := PublicIDFromURL(c.url)
		if err != nil {
			t.Errorf("PublicIDFromURL(%q): %v", c.url, err)
			continue
		}
		if got != c.want {
			t.Errorf("PublicIDFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestPublicIDFromURLInvalid(t *testing.T) {
	for _, url := range []string{
		"https://img.example/files/abc123.jpg", // no version marker
		"https://img.example/files/v1712345678", // nothing after marker
		"https://img.example/vx12/abc.jpg",     // not a version marker
	} {
		if _, err := PublicIDFromURL(url); err == nil {
			t.Errorf("expected error for %q", url)
		}
	}
}

func TestUpload(t *testing.T) {
	var gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "key" {
			t.Error("expected basic auth with api key")
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if r.FormValue("public_id") == "" {
			t.Error("expected public_id field")
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading file field: %v", err)
		}
		gotFilename = header.Filename
		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://img.example/files/v1/" + r.FormValue("public_id") + ".jpg",
		})
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, "key", "secret")
	url, err := client.Upload(context.Background(), "photo.jpg", []byte("image bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "https://img.example/files/v1/") {
		t.Errorf("unexpected url %q", url)
	}
	if gotFilename != "photo.jpg" {
		t.Errorf("expected filename to reach the host, got %q", gotFilename)
	}
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, "key", "secret")
	if _, err := client.Upload(context.Background(), "photo.jpg", []byte("x")); err == nil {
		t.Error("expected error on server failure")
	}
}

func TestDelete(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, "key", "secret")
	if err := client.Delete(context.Background(), "abc123"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotPath != "/images/abc123" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestDeleteNotFoundIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, "key", "secret")
	if err := client.Delete(context.Background(), "missing"); err == nil {
		t.Error("expected error for 404 from host")
	}
}
