package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Jophkins/lastshoot/internal/keys"
	"github.com/Jophkins/lastshoot/internal/models"
)

// Client talks to the portfolio API and to object storage. It never holds
// storage credentials: every storage write goes through a presigned URL
// obtained from the sign endpoint.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// Login exchanges the admin credentials for a session token used on all
// subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Username: username, Password: password}, &resp, http.StatusOK)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) Sign(ctx context.Context, req models.SignUploadRequest) (models.SignUploadResponse, error) {
	var resp models.SignUploadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/uploads/sign", req, &resp, http.StatusOK); err != nil {
		return models.SignUploadResponse{}, fmt.Errorf("failed to get signed URLs: %w", err)
	}
	return resp, nil
}

func (c *Client) Commit(ctx context.Context, req models.CommitPhotoRequest) (models.CommitPhotoResponse, error) {
	var resp models.CommitPhotoResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/photos/commit", req, &resp, http.StatusCreated); err != nil {
		return models.CommitPhotoResponse{}, fmt.Errorf("failed to commit photo metadata: %w", err)
	}
	return resp, nil
}

// PutObject performs one direct-to-storage write. The headers must match
// what the signer signed for this key, or storage rejects the request.
func (c *Client) PutObject(ctx context.Context, url, key, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-amz-acl", aclForKey(key))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storage write failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("storage write failed: status %d", resp.StatusCode)
	}
	return nil
}

// aclForKey mirrors the signer's policy: the signed authorization includes
// the ACL header, so the PUT must carry the same value.
func aclForKey(key string) string {
	if keys.IsPrivate(key) {
		return "private"
	}
	return "public-read"
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}, wantStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s (status %d)", path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
