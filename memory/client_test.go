package memory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/locey/MemoryBadges/BadgeEnd/config"
)

const rawIdentities = `[
  {"platform": "ethereum", "id": "0x3c276c70ad0447f5fbbebc297793be2a750704ae", "url": "https://basescan.org/address/0x3c276c70ad0447f5fbbebc297793be2a750704ae"},
  {"platform": "twitter", "id": "12345", "username": "someone", "social": {"followers": 150, "verified": true}},
  {"platform": "farcaster", "id": "4242", "username": "someone", "social": {"followers": 12, "following": 7}},
  {"platform": "github", "id": "98765", "username": "someone-dev", "url": "https://github.com/someone-dev", "social": {"followers": 3}},
  {"platform": "ens", "id": "someone.eth", "username": "someone.eth"},
  {"platform": "talent-protocol", "id": "tp-1", "url": "https://talentprotocol.com/tp-1", "social": {"verified": true}},
  {"platform": "myspace", "id": "ancient", "username": "someone"}
]`

func newTestClient(serverURL string, ttl time.Duration) *Client {
	return NewClient(config.Memory{
		BaseURL:  serverURL,
		ApiKey:   "test-key",
		Timeout:  2 * time.Second,
		CacheTTL: ttl,
	})
}

func TestFetchProfileFoldsPlatforms(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(rawIdentities))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	p := c.FetchProfile(context.Background(), "0x3C276c70Ad0447f5FbbeBC297793Be2A750704aE")

	require.Equal(t, "/identities/wallet/0x3c276c70ad0447f5fbbebc297793be2a750704ae", gotPath)
	require.Equal(t, "Bearer test-key", gotAuth)

	require.Equal(t, "0x3c276c70ad0447f5fbbebc297793be2a750704ae", p.Address)
	require.NotNil(t, p.X)
	require.Equal(t, 150, p.X.Followers)
	require.True(t, p.X.Verified)
	require.NotNil(t, p.Farcaster)
	require.Equal(t, int64(4242), p.Farcaster.FID)
	require.NotNil(t, p.GitHub)
	require.Equal(t, "someone-dev", p.GitHub.Username)
	require.NotNil(t, p.Talent)
	require.True(t, p.Talent.Verified)
	require.Nil(t, p.Lens)
	require.Equal(t, "someone.eth", p.ENS)
	require.Len(t, p.Contracts, 1)
}

func TestFetchProfileDegradesOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	p := c.FetchProfile(context.Background(), "0xABC0000000000000000000000000000000000001")

	require.Equal(t, "0xabc0000000000000000000000000000000000001", p.Address)
	require.Nil(t, p.X)
	require.Nil(t, p.Farcaster)
}

func TestFetchProfileDegradesOnUnreachableUpstream(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", 0)
	p := c.FetchProfile(context.Background(), "0xABC0000000000000000000000000000000000001")

	require.Equal(t, "0xabc0000000000000000000000000000000000001", p.Address)
	require.Nil(t, p.GitHub)
}

func TestFetchProfileDegradesOnMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": "shape"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	p := c.FetchProfile(context.Background(), "0xABC0000000000000000000000000000000000001")

	require.Equal(t, "0xabc0000000000000000000000000000000000001", p.Address)
	require.Nil(t, p.X)
}

func TestFetchProfileMissingSocialDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"platform": "twitter", "username": "someone"}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	p := c.FetchProfile(context.Background(), "0xABC0000000000000000000000000000000000001")

	require.NotNil(t, p.X)
	require.Equal(t, 0, p.X.Followers)
	require.False(t, p.X.Verified)
}

func TestFetchProfileUsesCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(rawIdentities))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, time.Minute)
	_ = c.FetchProfile(context.Background(), "0x3c276c70ad0447f5fbbebc297793be2a750704ae")
	_ = c.FetchProfile(context.Background(), "0x3C276C70AD0447F5FBBEBC297793BE2A750704AE")

	require.Equal(t, 1, calls, "second fetch within TTL must hit the cache")
}
