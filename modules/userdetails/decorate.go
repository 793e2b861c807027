package userdetails

import (
	"context"

	"github.com/example/marketplace-services/domain/user"
	"github.com/example/marketplace-services/logging"
)

// Decorator joins entities to their owners' profiles.
type Decorator struct {
	fetcher Fetcher
	log     logging.RouteLogger
}

// NewDecorator creates a Decorator that fetches profiles through fetcher.
func NewDecorator(fetcher Fetcher, log logging.RouteLogger) *Decorator {
	return &Decorator{
		fetcher: fetcher,
		log:     log,
	}
}

// Decorate returns a copy of items where each entity carries the profile whose
// user_id equals ownerOf(entity). Entities without a match are left undecorated.
// When several profiles share an identifier the first one returned wins.
//
// If the profile lookup fails the copy is returned without any profiles and the
// failure is logged; the error never reaches the caller. An empty input returns
// an empty slice without a network call.
func Decorate[T any](ctx context.Context, d *Decorator, items []T, ownerOf func(*T) string, attach func(*T, *user.Profile)) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) == 0 || d == nil || d.fetcher == nil {
		return out
	}

	ids := make([]string, 0, len(out))
	seen := make(map[string]struct{}, len(out))
	for i := range out {
		id := ownerOf(&out[i])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	profiles, err := d.fetcher.FetchBulk(ctx, ids)
	if err != nil {
		d.log.Log(logging.RouteEvent{
			Route:      "decorate " + bulkPath,
			StatusCode: 502,
			Message:    "user details unavailable: " + err.Error(),
		})
		return out
	}

	byID := make(map[string]*user.Profile, len(profiles))
	for i := range profiles {
		if _, ok := byID[profiles[i].UserID]; !ok {
			byID[profiles[i].UserID] = &profiles[i]
		}
	}

	for i := range out {
		if p, ok := byID[ownerOf(&out[i])]; ok {
			attach(&out[i], p)
		}
	}
	return out
}

// DecorateOne decorates a single entity.
func DecorateOne[T any](ctx context.Context, d *Decorator, item T, ownerOf func(*T) string, attach func(*T, *user.Profile)) T {
	return Decorate(ctx, d, []T{item}, ownerOf, attach)[0]
}
