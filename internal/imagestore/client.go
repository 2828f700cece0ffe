// Package imagestore is an HTTP client for the external image host. Uploads
// return stable URLs of the form {base}/files/v{version}/{public-id}.{ext};
// deletion addresses objects by the public ID embedded in that URL.
package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the image host's upload API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
}

// New creates an image host client. baseURL is the API root without a
// trailing slash.
func New(baseURL, apiKey, apiSecret string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
			},
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload pushes one image to the host and returns its stable URL. The host
// assigns the URL; the client only proposes a fresh public ID so repeated
// uploads of identical bytes stay distinct objects.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("public_id", uuid.NewString()); err != nil {
		return "", fmt.Errorf("writing public_id field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("writing file data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("uploading image: unexpected status %d", resp.StatusCode)
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if ur.SecureURL == "" {
		return "", fmt.Errorf("upload response missing url")
	}
	return ur.SecureURL, nil
}

// Delete removes an object from the host by public ID.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/images/"+publicID, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating delete request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deleting image %s: %w", publicID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("deleting image %s: unexpected status %d", publicID, resp.StatusCode)
	}
	return nil
}

// PublicIDFromURL derives the host's object ID from an image URL: the path
// following the version marker (a "v<digits>" segment), stripped of its file
// extension.
func PublicIDFromURL(rawURL string) (string, error) {
	segments := strings.Split(rawURL, "/")
	start := -1
	for i, s := range segments {
		if isVersionMarker(s) {
			start = i + 1
			break
		}
	}
	if start < 0 || start >= len(segments) {
		return "", fmt.Errorf("no version marker in url %q", rawURL)
	}

	id := strings.Join(segments[start:], "/")
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	if id == "" {
		return "", fmt.Errorf("empty public id in url %q", rawURL)
	}
	return id, nil
}

func isVersionMarker(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
