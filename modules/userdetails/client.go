package userdetails

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/marketplace-services/domain/user"
	"github.com/gofiber/fiber/v2"
)

const bulkPath = "/userDetails/bulk"

var (
	// ErrUnexpectedStatus is returned when the user-detail service answers with a non-2xx code.
	ErrUnexpectedStatus = errors.New("unexpected status from user-detail service")
	// ErrMalformedPayload is returned when the response is not a JSON array.
	ErrMalformedPayload = errors.New("malformed user-detail payload")
)

// Fetcher resolves many user identifiers to profiles in one call.
type Fetcher interface {
	FetchBulk(ctx context.Context, userIDs []string) ([]user.Profile, error)
}

// BulkRequest is the body sent to the user-detail service.
type BulkRequest struct {
	UserIDs []string `json:"user_ids"`
}

// Client calls the external user-detail service.
type Client struct {
	baseURL string
	timeout time.Duration
}

// Compile-time interface check.
var _ Fetcher = (*Client)(nil)

// NewClient creates a client for the service at baseURL.
// A zero timeout leaves the HTTP client default in place.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
	}
}

// FetchBulk posts the identifiers to /userDetails/bulk and decodes the profile array.
func (c *Client) FetchBulk(ctx context.Context, userIDs []string) ([]user.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Post(c.baseURL + bulkPath)
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}
	agent.JSON(BulkRequest{UserIDs: userIDs})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("user-detail request failed: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedPayload)
	}

	// Elements that are not profiles with a user_id match nothing and are dropped.
	profiles := make([]user.Profile, 0, len(elements))
	for _, raw := range elements {
		var p user.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
