package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokenRepository is an in-memory TokenRepository that counts lookups.
type memTokenRepository struct {
	mu      sync.Mutex
	tokens  map[string]models.Token
	lookups int
}

func newMemTokenRepository(tokens ...models.Token) *memTokenRepository {
	m := &memTokenRepository{tokens: make(map[string]models.Token)}
	for _, t := range tokens {
		m.tokens[t.Token] = t
	}
	return m
}

func (m *memTokenRepository) SaveToken(_ context.Context, t models.Token, _ string) (models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[t.Token] = t
	return t, nil
}

func (m *memTokenRepository) FindByTokenString(_ context.Context, token string) (models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	t, ok := m.tokens[token]
	if !ok {
		return models.Token{}, ErrTokenNotFound
	}
	return t, nil
}

func (m *memTokenRepository) FindLatestActiveForPrincipal(_ context.Context, principalID int64, now time.Time) (models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest models.Token
	found := false
	for _, t := range m.tokens {
		if t.PrincipalID == principalID && t.IsActive(now) && (!found || t.IssuedAt.After(latest.IssuedAt)) {
			latest, found = t, true
		}
	}
	if !found {
		return models.Token{}, ErrTokenNotFound
	}
	return latest, nil
}

func (m *memTokenRepository) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[token]; ok {
		t.Revoked = true
		m.tokens[token] = t
	}
	return nil
}

func (m *memTokenRepository) RevokeAllForPrincipal(_ context.Context, principalID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var revoked []string
	for k, t := range m.tokens {
		if t.PrincipalID == principalID && !t.Revoked {
			t.Revoked = true
			m.tokens[k] = t
			revoked = append(revoked, k)
		}
	}
	return revoked, nil
}

func (m *memTokenRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, t := range m.tokens {
		if t.ExpiresAt.Before(before) {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

func (m *memTokenRepository) lookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

func newTestCache(t *testing.T, repo TokenRepository, now time.Time) (*cachedTokenRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCachedTokenRepository(repo, client, 24*time.Hour, logger.Nop()).(*cachedTokenRepository)
	cache.now = func() time.Time { return now }
	return cache, mr
}

func activeToken(now time.Time, value string) models.Token {
	return models.Token{
		ID:          1,
		PublicID:    uuid.New(),
		Token:       value,
		PrincipalID: 7,
		IssuedAt:    now.Add(-time.Minute),
		ExpiresAt:   now.Add(time.Hour),
	}
}

func TestCachedTokenRepository_ReadThrough(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	tok := activeToken(now, "h.p.s")
	mem := newMemTokenRepository(tok)
	cache, mr := newTestCache(t, mem, now)
	ctx := context.Background()

	first, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	second, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)

	assert.Equal(t, 1, mem.lookupCount(), "second lookup must be served from redis")
	assert.Equal(t, first.PrincipalID, second.PrincipalID)
	assert.True(t, second.ExpiresAt.Equal(tok.ExpiresAt))

	// cache entry lives until the token expires
	assert.Equal(t, time.Hour, mr.TTL(cacheKey("h.p.s")))
	// the raw token never appears in a key
	for _, k := range mr.Keys() {
		assert.NotContains(t, k, "h.p.s")
	}
}

func TestCachedTokenRepository_RevokedNotCached(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	tok := activeToken(now, "h.p.s")
	tok.Revoked = true
	mem := newMemTokenRepository(tok)
	cache, mr := newTestCache(t, mem, now)

	found, err := cache.FindByTokenString(context.Background(), "h.p.s")
	require.NoError(t, err)
	assert.True(t, found.Revoked)
	assert.False(t, mr.Exists(cacheKey("h.p.s")))
}

func TestCachedTokenRepository_NotFoundPassesThrough(t *testing.T) {
	now := time.Now()
	cache, _ := newTestCache(t, newMemTokenRepository(), now)

	_, err := cache.FindByTokenString(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

// TestCachedTokenRepository_RevokeIsVisibleImmediately verifies that a cached
// active record cannot outlive revocation.
func TestCachedTokenRepository_RevokeIsVisibleImmediately(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := newMemTokenRepository(activeToken(now, "h.p.s"))
	cache, mr := newTestCache(t, mem, now)
	ctx := context.Background()

	_, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey("h.p.s")))

	require.NoError(t, cache.Revoke(ctx, "h.p.s"))

	assert.False(t, mr.Exists(cacheKey("h.p.s")))
	assert.True(t, mr.Exists(revokedKey("h.p.s")))
	assert.Equal(t, 24*time.Hour, mr.TTL(revokedKey("h.p.s")))

	found, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	assert.True(t, found.Revoked)
}

// TestCachedTokenRepository_TombstoneBypassesStaleEntry simulates a reader
// that repopulated the cache with a pre-revocation snapshot.
func TestCachedTokenRepository_TombstoneBypassesStaleEntry(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	tok := activeToken(now, "h.p.s")
	mem := newMemTokenRepository(tok)
	cache, _ := newTestCache(t, mem, now)
	ctx := context.Background()

	require.NoError(t, cache.Revoke(ctx, "h.p.s"))
	cache.store(ctx, tok) // stale snapshot written after revocation

	found, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	assert.True(t, found.Revoked)
}

func TestCachedTokenRepository_RevokeAllForPrincipal(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := newMemTokenRepository(activeToken(now, "t1"), activeToken(now, "t2"))
	cache, mr := newTestCache(t, mem, now)
	ctx := context.Background()

	_, err := cache.FindByTokenString(ctx, "t1")
	require.NoError(t, err)

	revoked, err := cache.RevokeAllForPrincipal(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t2"}, revoked)

	for _, tok := range []string{"t1", "t2"} {
		assert.True(t, mr.Exists(revokedKey(tok)))
		assert.False(t, mr.Exists(cacheKey(tok)))
	}
	assert.Equal(t, strconv.FormatInt(now.UnixMilli(), 10), mustGet(t, mr, principalRevokedKey(7)))
	assert.Equal(t, 24*time.Hour, mr.TTL(principalRevokedKey(7)))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestCachedTokenRepository_RedisDown(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := newMemTokenRepository(activeToken(now, "h.p.s"))
	cache, mr := newTestCache(t, mem, now)
	ctx := context.Background()

	mr.SetError("LOADING")

	found, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err, "reads fall back to the database")
	assert.Equal(t, "h.p.s", found.Token)

	err = cache.Revoke(ctx, "h.p.s")
	require.Error(t, err, "revocation reports a cache it could not invalidate")

	stored, _ := mem.FindByTokenString(ctx, "h.p.s")
	assert.False(t, stored.Revoked, "database is not revoked without a tombstone")
}

// TestCachedTokenRepository_FailedTombstoneNeverLeavesActiveEntry caches a
// token, fails the revocation on the redis side and checks that the cache
// and the database still agree once redis recovers.
func TestCachedTokenRepository_FailedTombstoneNeverLeavesActiveEntry(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := newMemTokenRepository(activeToken(now, "h.p.s"))
	cache, mr := newTestCache(t, mem, now)
	ctx := context.Background()

	_, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey("h.p.s")))

	mr.SetError("LOADING transient")
	require.Error(t, cache.Revoke(ctx, "h.p.s"))
	mr.SetError("")

	stored, err := mem.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	cached, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	assert.Equal(t, stored.Revoked, cached.Revoked, "cache and database disagree after a failed revocation")

	// retrying once redis is back revokes for good
	require.NoError(t, cache.Revoke(ctx, "h.p.s"))
	found, err := cache.FindByTokenString(ctx, "h.p.s")
	require.NoError(t, err)
	assert.True(t, found.Revoked)
}

func TestCachedTokenRepository_RevokeAllForPrincipal_RedisDown(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := newMemTokenRepository(activeToken(now, "t1"))
	cache, mr := newTestCache(t, mem, now)
	ctx := context.Background()

	_, err := cache.FindByTokenString(ctx, "t1")
	require.NoError(t, err)

	mr.SetError("LOADING transient")
	_, err = cache.RevokeAllForPrincipal(ctx, 7)
	require.Error(t, err)
	mr.SetError("")

	stored, _ := mem.FindByTokenString(ctx, "t1")
	assert.False(t, stored.Revoked, "database is not revoked without a principal marker")
}

// TestCachedTokenRepository_PrincipalMarkerBypassesCachedRecords covers a
// cached record whose per-token tombstone was never written.
func TestCachedTokenRepository_PrincipalMarkerBypassesCachedRecords(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	old := activeToken(now, "t1")
	mem := newMemTokenRepository(old)
	cache, mr := newTestCache(t, mem, now)
	ctx := context.Background()

	_, err := cache.FindByTokenString(ctx, "t1")
	require.NoError(t, err)

	require.NoError(t, mr.Set(principalRevokedKey(7), strconv.FormatInt(now.UnixMilli(), 10)))
	_, err = mem.RevokeAllForPrincipal(ctx, 7)
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey("t1")), "per-token entry still cached")

	found, err := cache.FindByTokenString(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, found.Revoked)

	// tokens issued after the marker are served from the cache again
	fresh := activeToken(now, "t2")
	fresh.IssuedAt = now.Add(time.Second)
	_, err = mem.SaveToken(ctx, fresh, "ana")
	require.NoError(t, err)

	_, err = cache.FindByTokenString(ctx, "t2")
	require.NoError(t, err)
	lookups := mem.lookupCount()
	_, err = cache.FindByTokenString(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, lookups, mem.lookupCount())
}

func TestCachedTokenRepository_CorruptEntry(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := newMemTokenRepository(activeToken(now, "h.p.s"))
	cache, mr := newTestCache(t, mem, now)

	require.NoError(t, mr.Set(cacheKey("h.p.s"), "{not json"))

	found, err := cache.FindByTokenString(context.Background(), "h.p.s")
	require.NoError(t, err)
	assert.Equal(t, "h.p.s", found.Token)
	assert.Equal(t, 1, mem.lookupCount())
}

func TestCachedTokenRepository_DelegatesOtherMethods(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := newMemTokenRepository(activeToken(now, "h.p.s"))
	cache, _ := newTestCache(t, mem, now)
	ctx := context.Background()

	latest, err := cache.FindLatestActiveForPrincipal(ctx, 7, now)
	require.NoError(t, err)
	assert.Equal(t, "h.p.s", latest.Token)

	n, err := cache.DeleteExpired(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = cache.FindLatestActiveForPrincipal(ctx, 7, now)
	assert.True(t, errors.Is(err, ErrTokenNotFound))
}
