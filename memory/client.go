package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/locey/MemoryBadges/BadgeEnd/base/logger/xzap"
	"github.com/locey/MemoryBadges/BadgeEnd/config"
)

// identityRecord 身份源返回的单条平台记录，字段缺失时按零值兜底
type identityRecord struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Social   *struct {
		Followers int  `json:"followers"`
		Following int  `json:"following"`
		Verified  bool `json:"verified"`
	} `json:"social"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *profileCache
}

func NewClient(cfg config.Memory) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.ApiKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      newProfileCache(cfg.CacheTTL),
	}
}

// FetchProfile 拉取并聚合身份信息。
// 网络失败、非2xx、报文异常都降级为只带地址的Profile，不向上抛错，
// 下游表现为所有徽章未解锁；资格判断只是参考，真正防重复领取的是链上所有权检查。
func (m *Client) FetchProfile(ctx context.Context, address string) *Profile {
	address = strings.ToLower(address)
	if cached, ok := m.cache.get(address); ok {
		return cached
	}

	profile := m.fetchRemote(ctx, address)
	m.cache.set(address, profile)
	return profile
}

func (m *Client) fetchRemote(ctx context.Context, address string) *Profile {
	profile := &Profile{Address: address}
	log := xzap.WithContext(ctx)

	url := fmt.Sprintf("%s/identities/wallet/%s", m.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warn("memory: build request failed", zap.Error(err))
		return profile
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Warn("memory: fetch identities failed", zap.String("address", address), zap.Error(err))
		return profile
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("memory: unexpected status", zap.String("address", address), zap.Int("status", resp.StatusCode))
		return profile
	}

	var records []identityRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		log.Warn("memory: decode identities failed", zap.String("address", address), zap.Error(err))
		return profile
	}

	foldRecords(ctx, profile, records)
	return profile
}

// foldRecords 把平台记录数组折叠进Profile，未知平台忽略
func foldRecords(ctx context.Context, profile *Profile, records []identityRecord) {
	for _, item := range records {
		var followers, following int
		var verified bool
		if item.Social != nil {
			followers = item.Social.Followers
			following = item.Social.Following
			verified = item.Social.Verified
		}

		switch item.Platform {
		case "twitter":
			profile.X = &XAccount{
				Username:  item.Username,
				Followers: followers,
				Verified:  verified,
			}
		case "farcaster":
			fid, _ := strconv.ParseInt(item.ID, 10, 64)
			profile.Farcaster = &Farcaster{
				FID:       fid,
				Username:  item.Username,
				Followers: followers,
				Following: following,
			}
		case "lens":
			profile.Lens = &LensAccount{
				Username:  item.Username,
				Followers: followers,
				Following: following,
				Verified:  verified,
				URL:       item.URL,
			}
		case "github":
			profile.GitHub = &GitHub{
				Username:  item.Username,
				Followers: followers,
				Following: following,
				Verified:  verified,
				URL:       item.URL,
			}
		case "talent-protocol":
			profile.Talent = &Talent{
				ID:       item.ID,
				URL:      item.URL,
				Verified: verified,
			}
		case "ethereum":
			profile.Contracts = append(profile.Contracts, ContractRef{
				Address: item.ID,
				URL:     item.URL,
			})
		case "ens":
			if item.Username != "" {
				profile.ENS = item.Username
			}
		default:
			xzap.WithContext(ctx).Debug("memory: unknown platform ignored", zap.String("platform", item.Platform))
		}
	}
}
