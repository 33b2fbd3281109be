// Package b2 is a minimal client for the Backblaze B2 native API, covering
// the three calls the image pipeline needs: authorize the account, fetch an
// upload URL for a bucket, and upload a file to that URL.
package b2

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIURL = "https://api.backblazeb2.com"

// ErrAuth reports a failed account authorization or upload-target request.
// It is fatal to the whole upload batch.
var ErrAuth = errors.New("b2 authorization failed")

// ErrTransfer reports a failed transfer of a single file. Callers may skip
// the file and continue with the rest of the batch.
var ErrTransfer = errors.New("b2 file transfer failed")

// Config holds Backblaze B2 credentials and the target bucket.
type Config struct {
	KeyID    string
	AppKey   string
	BucketID string
	// APIURL overrides the authorization endpoint. Used in tests.
	APIURL string
}

// Client talks to the Backblaze B2 native API.
type Client struct {
	cfg    Config
	apiURL string
	http   *http.Client
}

// NewClient creates a new B2 client.
func NewClient(cfg Config) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		cfg:    cfg,
		apiURL: apiURL,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Session is the result of a successful account authorization.
type Session struct {
	Token       string
	APIURL      string
	DownloadURL string
	BucketName  string
}

// UploadTarget is a bucket upload URL plus the token that authorizes
// uploads to it. One target can be reused for many files.
type UploadTarget struct {
	URL   string
	Token string
}

// FileInfo describes one stored file as reported by B2.
type FileInfo struct {
	ID              string
	Name            string
	UploadTimestamp int64
}

// Authorize performs b2_authorize_account and returns a session carrying the
// account token, the API and download base URLs, and the bucket name the key
// is restricted to.
func (c *Client) Authorize(ctx context.Context) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/b2api/v2/b2_authorize_account", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrAuth, err)
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.AppKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, body)
	}

	var out struct {
		AuthorizationToken string `json:"authorizationToken"`
		APIURL             string `json:"apiUrl"`
		DownloadURL        string `json:"downloadUrl"`
		Allowed            struct {
			BucketName string `json:"bucketName"`
		} `json:"allowed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrAuth, err)
	}

	return &Session{
		Token:       out.AuthorizationToken,
		APIURL:      out.APIURL,
		DownloadURL: out.DownloadURL,
		BucketName:  out.Allowed.BucketName,
	}, nil
}

// GetUploadTarget performs b2_get_upload_url for a bucket using an
// authorized session.
func (c *Client) GetUploadTarget(ctx context.Context, sess *Session, bucketID string) (*UploadTarget, error) {
	body, err := json.Marshal(map[string]string{"bucketId": bucketID})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", ErrAuth, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sess.APIURL+"/b2api/v2/b2_get_upload_url", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrAuth, err)
	}
	req.Header.Set("Authorization", sess.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, respBody)
	}

	var out struct {
		UploadURL          string `json:"uploadUrl"`
		AuthorizationToken string `json:"authorizationToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrAuth, err)
	}

	return &UploadTarget{URL: out.UploadURL, Token: out.AuthorizationToken}, nil
}

// Upload performs b2_upload_file, sending data under fileName to the target.
// The SHA1 checksum header is required by the upload protocol.
func (c *Client) Upload(ctx context.Context, target *UploadTarget, fileName string, data []byte) (*FileInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrTransfer, err)
	}

	sum := sha1.Sum(data)
	req.Header.Set("Authorization", target.Token)
	req.Header.Set("X-Bz-File-Name", url.PathEscape(fileName))
	req.Header.Set("Content-Type", "b2/x-auto")
	req.Header.Set("X-Bz-Content-Sha1", hex.EncodeToString(sum[:]))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrTransfer, resp.StatusCode, respBody)
	}

	var out struct {
		FileID          string `json:"fileId"`
		FileName        string `json:"fileName"`
		UploadTimestamp int64  `json:"uploadTimestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrTransfer, err)
	}

	return &FileInfo{
		ID:              out.FileID,
		Name:            out.FileName,
		UploadTimestamp: out.UploadTimestamp,
	}, nil
}
