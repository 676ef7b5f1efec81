package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/locey/MemoryBadges/BadgeEnd/allowlist"
	"github.com/locey/MemoryBadges/BadgeEnd/config"
	"github.com/locey/MemoryBadges/BadgeEnd/contract"
	"github.com/locey/MemoryBadges/BadgeEnd/limit"
	"github.com/locey/MemoryBadges/BadgeEnd/memory"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
	"github.com/locey/MemoryBadges/BadgeEnd/types/v1"
)

const testAddr = "0x3c276c70ad0447f5fbbebc297793be2a750704ae"

type stubFetcher struct {
	profile *memory.Profile
}

func (s *stubFetcher) FetchProfile(ctx context.Context, address string) *memory.Profile {
	if s.profile != nil {
		return s.profile
	}
	return &memory.Profile{Address: address}
}

type stubSbt struct {
	owner *ethcommon.Address
}

func (s *stubSbt) OwnerOf(ctx context.Context, tokenID *big.Int) (ethcommon.Address, error) {
	if s.owner != nil {
		return *s.owner, nil
	}
	return ethcommon.Address{}, contract.ErrTokenNotMinted
}

func (s *stubSbt) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	return "ipfs://minted/" + tokenID.String(), nil
}

func (s *stubSbt) TotalSupply(ctx context.Context) (*big.Int, error) {
	return big.NewInt(3), nil
}

func newTestRouter(fetcher svc.ProfileFetcher, sbt svc.SbtReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := &svc.ServerCtx{
		C: &config.Config{
			ChainSupported: []config.Chain{{ChainID: 8453, Name: "base"}},
		},
		Memory:    fetcher,
		Sbt:       sbt,
		Limiter:   limit.NewClaimLimiter(5, time.Hour),
		Allowlist: allowlist.NewBook(nil),
	}

	r := gin.New()
	apiV1 := r.Group("/api/v1")
	apiV1.POST("/badges/claim", ClaimBadgeHandler(s))
	apiV1.GET("/badges/definitions", GetBadgeDefinitionsHandler(s))
	apiV1.GET("/badges/claims/:address", GetClaimHistoryHandler(s))
	apiV1.GET("/badges/:address", GetBadgesHandler(s))
	apiV1.GET("/sbt/stats", GetSbtStatsHandler(s))
	apiV1.GET("/sbt/metadata/:tokenId", GetSbtMetadataHandler(s))
	return r
}

func postClaim(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/badges/claim", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func eligibleStub() *stubFetcher {
	return &stubFetcher{profile: &memory.Profile{
		Address: testAddr,
		X:       &memory.XAccount{Username: "someone", Followers: 150},
	}}
}

func TestClaimEndpointSuccess(t *testing.T) {
	r := newTestRouter(eligibleStub(), &stubSbt{})

	w := postClaim(t, r, fmt.Sprintf(`{"address":%q,"chainId":8453,"tokenId":0}`, testAddr))
	require.Equal(t, http.StatusOK, w.Code)

	var res types.ClaimResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.True(t, res.Success)
	require.Equal(t, "X OG", res.BadgeName)
	require.Equal(t, testAddr, res.ClaimParams.Receiver)
}

func TestClaimEndpointMissingFields(t *testing.T) {
	r := newTestRouter(eligibleStub(), &stubSbt{})

	w := postClaim(t, r, `{"chainId":8453}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, false, res["success"])
}

func TestClaimEndpointStatusMapping(t *testing.T) {
	owner := ethcommon.HexToAddress(testAddr)

	cases := []struct {
		name    string
		fetcher svc.ProfileFetcher
		sbt     svc.SbtReader
		body    string
		status  int
	}{
		{
			name:    "not eligible",
			fetcher: &stubFetcher{},
			sbt:     &stubSbt{},
			body:    fmt.Sprintf(`{"address":%q,"chainId":8453,"tokenId":0}`, testAddr),
			status:  http.StatusForbidden,
		},
		{
			name:    "unknown badge",
			fetcher: eligibleStub(),
			sbt:     &stubSbt{},
			body:    fmt.Sprintf(`{"address":%q,"chainId":8453,"tokenId":99}`, testAddr),
			status:  http.StatusNotFound,
		},
		{
			name:    "already claimed",
			fetcher: eligibleStub(),
			sbt:     &stubSbt{owner: &owner},
			body:    fmt.Sprintf(`{"address":%q,"chainId":8453,"tokenId":0}`, testAddr),
			status:  http.StatusConflict,
		},
		{
			name:    "bad address",
			fetcher: eligibleStub(),
			sbt:     &stubSbt{},
			body:    `{"address":"nope","chainId":8453,"tokenId":0}`,
			status:  http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(tc.fetcher, tc.sbt)
			w := postClaim(t, r, tc.body)
			require.Equal(t, tc.status, w.Code)

			var res map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			require.Equal(t, false, res["success"])
			require.NotEmpty(t, res["error"])
		})
	}
}

func TestClaimEndpointRateLimited(t *testing.T) {
	r := newTestRouter(eligibleStub(), &stubSbt{})
	body := fmt.Sprintf(`{"address":%q,"chainId":8453,"tokenId":0}`, testAddr)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, postClaim(t, r, body).Code)
	}
	require.Equal(t, http.StatusTooManyRequests, postClaim(t, r, body).Code)
}

func TestBadgesEndpoint(t *testing.T) {
	r := newTestRouter(eligibleStub(), &stubSbt{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/badges/"+testAddr, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res types.BadgeListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, testAddr, res.Address)
	require.Len(t, res.Badges, 5)
	require.True(t, res.Badges[0].Unlocked)
	require.False(t, res.Badges[0].Claimed)
	require.False(t, res.Badges[1].Unlocked)
}

func TestDefinitionsEndpoint(t *testing.T) {
	r := newTestRouter(&stubFetcher{}, &stubSbt{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/badges/definitions", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var defs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &defs))
	require.Len(t, defs, 5)
}

func TestSbtStatsEndpoint(t *testing.T) {
	r := newTestRouter(&stubFetcher{}, &stubSbt{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sbt/stats", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stats types.SbtStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, "3", stats.TotalSupply)
	require.Equal(t, 5, stats.BadgeCount)
}

func TestSbtMetadataEndpoint(t *testing.T) {
	r := newTestRouter(&stubFetcher{}, &stubSbt{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sbt/metadata/1", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var meta types.SbtMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))
	require.Equal(t, int64(1), meta.TokenID)
	require.Equal(t, "ipfs://minted/1", meta.TokenURI)
}

func TestClaimHistoryEndpointWithoutDao(t *testing.T) {
	r := newTestRouter(&stubFetcher{}, &stubSbt{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/badges/claims/"+testAddr, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}
