// File path: internal/lookup/orchestrator.go
package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nicodishanthj/locache/internal/common"
	"github.com/nicodishanthj/locache/internal/countries"
	"github.com/nicodishanthj/locache/internal/provider"
	"github.com/nicodishanthj/locache/internal/sqlite"
)

// Store is what the orchestrator needs from the persistence layer.
type Store interface {
	Location(ctx context.Context, username string) (*sqlite.AccountLocation, error)
	UpsertLocation(ctx context.Context, username string, location *string, fetchedAt time.Time) error
}

// RefreshQueue accepts fire-and-forget refresh tasks. Submit must not
// block; it reports whether the task was accepted.
type RefreshQueue interface {
	Submit(key string, run func(ctx context.Context)) bool
}

// Result is the outcome of a resolved lookup or explicit set.
type Result struct {
	Username    string
	Location    *string
	Cached      bool
	LastChecked time.Time
	ExpiresAt   time.Time
}

// Orchestrator answers lookup requests from the cache, falling back to the
// external provider, and drives background refresh of stale rows.
type Orchestrator struct {
	store    Store
	provider provider.Provider
	queue    RefreshQueue
	ttl      time.Duration
	timeout  time.Duration
	now      func() time.Time
	flight   singleflight.Group
}

// New constructs an Orchestrator. Store and provider are required; the
// queue may be nil, in which case stale rows are served without scheduling
// a refresh.
func New(store Store, prov provider.Provider, queue RefreshQueue, cfg Config) (*Orchestrator, error) {
	if store == nil {
		return nil, fmt.Errorf("lookup store required")
	}
	if prov == nil {
		return nil, fmt.Errorf("location provider required")
	}
	cfg.applyDefaults()
	return &Orchestrator{
		store:    store,
		provider: prov,
		queue:    queue,
		ttl:      cfg.TTL,
		timeout:  cfg.ProviderTimeout,
		now:      cfg.Now,
	}, nil
}

// TTL returns the configured freshness duration.
func (o *Orchestrator) TTL() time.Duration {
	return o.ttl
}

// Check resolves a username to its cached or freshly fetched location.
// Fresh rows are served directly; stale rows are served immediately while a
// background refresh is scheduled; unknown usernames trigger a synchronous
// provider call whose result is persisted before responding.
func (o *Orchestrator) Check(ctx context.Context, raw string) (*Result, error) {
	logger := common.Logger()
	username := strings.TrimSpace(raw)
	if username == "" {
		return nil, ErrBlankUsername
	}
	normalized := strings.ToLower(username)
	now := o.now()

	entry, err := o.store.Location(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if Fresh(entry, o.ttl, now) {
		logger.Debug("lookup: cache hit", "username", normalized)
		return &Result{
			Username:    username,
			Location:    entry.Location,
			Cached:      true,
			LastChecked: entry.FetchedAt,
			ExpiresAt:   entry.FetchedAt.Add(o.ttl),
		}, nil
	}

	if entry != nil {
		// Serve the stale value immediately; the refresh runs on its own and
		// its failures never reach this caller.
		o.scheduleRefresh(normalized)
		logger.Info("lookup: serving stale entry", "username", normalized, "fetched_at", entry.FetchedAt)
		return &Result{
			Username:    username,
			Location:    entry.Location,
			Cached:      false,
			LastChecked: entry.FetchedAt,
			ExpiresAt:   entry.FetchedAt.Add(o.ttl),
		}, nil
	}

	canonical, err := o.resolve(ctx, normalized)
	if err != nil {
		return nil, err
	}
	logger.Info("lookup: resolved new username", "username", normalized, "location", canonical)
	return &Result{
		Username:    username,
		Location:    &canonical,
		Cached:      false,
		LastChecked: now,
		ExpiresAt:   now.Add(o.ttl),
	}, nil
}

// resolve performs the synchronous provider call for a username with no
// cached row. Concurrent callers for the same username share one in-flight
// call. The work is detached from the caller's cancellation so an abandoned
// request still completes and persists its result.
func (o *Orchestrator) resolve(ctx context.Context, normalized string) (string, error) {
	ctx = context.WithoutCancel(ctx)
	value, err, _ := o.flight.Do(normalized, func() (interface{}, error) {
		canonical, err := o.fetchCanonical(ctx, normalized)
		if err != nil {
			return "", err
		}
		if err := o.store.UpsertLocation(ctx, normalized, &canonical, o.now()); err != nil {
			return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return canonical, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// fetchCanonical calls the provider under the configured deadline and maps
// the raw value onto the country allow-list. Nothing is persisted here.
func (o *Orchestrator) fetchCanonical(ctx context.Context, normalized string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	rawLocation, found, err := o.provider.FetchLocation(callCtx, normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !found {
		return "", ErrNotFound
	}
	canonical, ok := countries.Normalize(rawLocation)
	if !ok {
		return "", fmt.Errorf("%w: location %q not in allowed country list", ErrUpstream, rawLocation)
	}
	return canonical, nil
}

// Set records a caller-supplied location for a username, bypassing the
// provider. A nil location stores an explicit "no location" row.
func (o *Orchestrator) Set(ctx context.Context, rawUsername string, location *string) (*Result, error) {
	username := strings.TrimSpace(rawUsername)
	if username == "" {
		return nil, ErrBlankUsername
	}
	normalized := strings.ToLower(username)

	var canonical *string
	if location != nil {
		name, ok := countries.Normalize(*location)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLocationNotAllowed, *location)
		}
		canonical = &name
	}

	now := o.now()
	if err := o.store.UpsertLocation(ctx, normalized, canonical, now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	stored := "<none>"
	if canonical != nil {
		stored = *canonical
	}
	common.Logger().Info("lookup: explicit set", "username", normalized, "location", stored)
	return &Result{
		Username:    username,
		Location:    location,
		Cached:      false,
		LastChecked: now,
		ExpiresAt:   now.Add(o.ttl),
	}, nil
}

// scheduleRefresh hands a stale username to the refresh queue. Exactly one
// task is submitted per stale hit; a full queue drops the task.
func (o *Orchestrator) scheduleRefresh(normalized string) {
	if o.queue == nil {
		return
	}
	o.queue.Submit(normalized, func(ctx context.Context) {
		o.refresh(ctx, normalized)
	})
}

// refresh re-fetches one username and upserts on success. Every failure
// path terminates with a log record and leaves the cache untouched, so the
// stale value stays authoritative.
func (o *Orchestrator) refresh(ctx context.Context, normalized string) {
	logger := common.Logger()
	canonical, err := o.fetchCanonical(ctx, normalized)
	if errors.Is(err, ErrNotFound) {
		// The stale value stays authoritative until a future call produces a
		// resolvable one.
		logger.Debug("lookup: refresh found nothing", "username", normalized)
		return
	}
	if err != nil {
		logger.Warn("lookup: background refresh failed", "username", normalized, "error", err)
		return
	}
	if err := o.store.UpsertLocation(ctx, normalized, &canonical, o.now()); err != nil {
		logger.Error("lookup: background refresh upsert failed", "username", normalized, "error", err)
		return
	}
	logger.Info("lookup: background refresh stored", "username", normalized, "location", canonical)
}
