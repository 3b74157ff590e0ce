// Package client is the Go consumer of the listing API. List-reads feed the
// offline mirror while online and are served from it while offline; mutations
// are rejected immediately while offline without touching the network.
package client

import (
	"bytes"         // Request body buffer
	"context"       // Request cancellation
	"encoding/json" // Envelope decoding
	"fmt"           // Error formatting
	"net/http"      // HTTP client
	"net/url"       // Query encoding
	"strconv"       // Path building
	"time"          // Client timeout

	"bhashaconnect/internal/offline" // Offline mirror
)

// listKeys maps a resource path to the key holding its item array inside
// the envelope's data object
var listKeys = map[string]string{
	"jobs":        "jobs",            // Job listings
	"training":    "trainingContent", // Training material
	"marketplace": "marketplace",     // Local business listings
	"schemes":     "schemes",         // Government schemes
}

// envelope mirrors the API's uniform response body
type envelope struct {
	Success bool            `json:"success"` // Whether the request succeeded
	Message string          `json:"message"` // Human-readable outcome message
	Data    json.RawMessage `json:"data"`    // Response payload
	Errors  []string        `json:"errors"`  // One message per violated field
}

// APIError is a non-2xx response surfaced to the caller
type APIError struct {
	Status  int      // HTTP status code
	Message string   // Server-provided message
	Errors  []string // Field violations, if any
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// ListResult is the outcome of a list-read
type ListResult struct {
	Items     json.RawMessage // The resource's item array
	FromCache bool            // True when served from the offline mirror
}

// Client talks to the listing API and drives the offline mirror
type Client struct {
	baseURL string          // API base URL, no trailing slash
	token   string          // Bearer token, empty for anonymous reads
	http    *http.Client    // Underlying HTTP client
	mirror  *offline.Mirror // Injected offline mirror
}

// New creates a client around an injected mirror
func New(baseURL string, mirror *offline.Mirror) *Client {
	return &Client{
		baseURL: baseURL,                                 // API base URL
		http:    &http.Client{Timeout: 15 * time.Second}, // Bounded requests
		mirror:  mirror,                                  // Offline mirror
	}
}

// SetToken sets the bearer token used for authenticated calls
func (c *Client) SetToken(token string) {
	c.token = token
}

// List fetches a resource listing. Offline, it serves the mirrored items
// (or an empty list) without any network call.
func (c *Client) List(ctx context.Context, resource string, query url.Values) (ListResult, error) {
	if !c.mirror.Online() {
		// Serve the last known-good listing
		return ListResult{Items: c.mirror.Load(resource), FromCache: true}, nil
	}
	path := "/api/" + resource
	if len(query) > 0 {
		path += "?" + query.Encode() // Optional filters and pagination
	}
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return ListResult{}, err // Surface the failure, the mirror only holds successes
	}
	// Pull the item array out of the data object
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return ListResult{}, err
	}
	items, ok := payload[listKeys[resource]]
	if !ok {
		return ListResult{}, fmt.Errorf("unexpected listing shape for %s", resource)
	}
	c.mirror.Store(resource, items) // Overwrite the mirror with the latest fetch
	return ListResult{Items: items}, nil
}

// Get fetches a single row. Detail views are not mirrored, so this fails
// with ErrOffline while offline.
func (c *Client) Get(ctx context.Context, resource string, id uint) (json.RawMessage, error) {
	if !c.mirror.Online() {
		return nil, offline.ErrOffline // Only listings are mirrored
	}
	return c.do(ctx, http.MethodGet, "/api/"+resource+"/"+strconv.Itoa(int(id)), nil)
}

// Create posts a new row. Rejected immediately while offline.
func (c *Client) Create(ctx context.Context, resource string, payload any) (json.RawMessage, error) {
	if !c.mirror.Online() {
		return nil, offline.ErrOffline // Mutations are never queued
	}
	return c.do(ctx, http.MethodPost, "/api/"+resource, payload)
}

// Update overwrites a row. Rejected immediately while offline.
func (c *Client) Update(ctx context.Context, resource string, id uint, payload any) (json.RawMessage, error) {
	if !c.mirror.Online() {
		return nil, offline.ErrOffline // Mutations are never queued
	}
	return c.do(ctx, http.MethodPut, "/api/"+resource+"/"+strconv.Itoa(int(id)), payload)
}

// Delete removes a row. Rejected immediately while offline.
func (c *Client) Delete(ctx context.Context, resource string, id uint) error {
	if !c.mirror.Online() {
		return offline.ErrOffline // Mutations are never queued
	}
	_, err := c.do(ctx, http.MethodDelete, "/api/"+resource+"/"+strconv.Itoa(int(id)), nil)
	return err
}

// do performs one request and decodes the envelope, returning its data on
// success and an APIError on failure
func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload) // Encode the request body
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	} else {
		body = &bytes.Buffer{} // Empty body
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token) // Authenticated call
	}
	resp, err := c.http.Do(req) // Perform the request
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var env envelope // Decode the uniform envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if !env.Success {
		// Surface the server's message and field violations
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	return env.Data, nil
}
