// Package upload streams image bytes to the external image host and returns
// the durable URL the host assigns.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

const requestTimeout = 15 * time.Second

type Client struct {
	uploadURL string
	preset    string
	http      *http.Client
}

func NewClient(uploadURL, preset string) *Client {
	return &Client{
		uploadURL: uploadURL,
		preset:    preset,
		http:      &http.Client{Timeout: requestTimeout},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload sends the image as a multipart form and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("folder", c.preset); err != nil {
		return "", err
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload: host returned %d", resp.StatusCode)
	}
	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.SecureURL == "" {
		return "", fmt.Errorf("upload: host response missing secure_url")
	}
	return body.SecureURL, nil
}
