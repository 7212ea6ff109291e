// Package service implements the retrieval operations exposed to the CLI:
// complete, validated collections per entity plus single-resource lookups,
// with a read-through cache in front of the paginated endpoints.
package service

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"taskra/internal/cache"
	"taskra/internal/paging"
	"taskra/internal/transport"
)

// Core bundles the collaborators every entity service shares. A nil cache
// store disables caching entirely.
type Core struct {
	client   transport.Client
	store    *cache.Store
	pageSize int
	log      *zap.Logger
}

// NewCore wires the shared collaborators for the entity services.
func NewCore(client transport.Client, store *cache.Store, pageSize int, log *zap.Logger) *Core {
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &Core{client: client, store: store, pageSize: pageSize, log: log}
}

// cached looks up key in the store, expecting the given type tag.
func (c *Core) cached(key, tag string) (any, bool) {
	if c.store == nil {
		return nil, false
	}
	return c.store.Get(key, tag)
}

// remember stores a freshly fetched value; cache failures are logged and
// dropped so they never fail the fetch that produced the value.
func (c *Core) remember(key, tag string, v any) {
	if c.store == nil {
		return
	}
	if err := c.store.Put(key, tag, v); err != nil {
		c.log.Warn("failed to cache result", zap.String("key", key), zap.Error(err))
	}
}

// pageSource builds a paging source over a GET list endpoint whose items
// live under itemsField.
func (c *Core) pageSource(path, itemsField string, extra url.Values) paging.Source {
	return func(ctx context.Context, startAt, maxResults int) (*paging.Page, error) {
		params := url.Values{}
		for k, vs := range extra {
			for _, v := range vs {
				params.Add(k, v)
			}
		}
		params.Set("startAt", strconv.Itoa(startAt))
		params.Set("maxResults", strconv.Itoa(maxResults))
		raw, err := c.client.Get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		return paging.ParsePage(raw, itemsField)
	}
}
