package svc

import (
	"context"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/locey/MemoryBadges/BadgeEnd/allowlist"
	"github.com/locey/MemoryBadges/BadgeEnd/base/logger/xzap"
	"github.com/locey/MemoryBadges/BadgeEnd/config"
	"github.com/locey/MemoryBadges/BadgeEnd/contract"
	"github.com/locey/MemoryBadges/BadgeEnd/dao"
	"github.com/locey/MemoryBadges/BadgeEnd/limit"
	"github.com/locey/MemoryBadges/BadgeEnd/memory"
)

// ProfileFetcher 身份Profile拉取（memory.Client实现）
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, address string) *memory.Profile
}

// SbtReader SBT合约只读查询（contract.SBTContract实现）
type SbtReader interface {
	OwnerOf(ctx context.Context, tokenID *big.Int) (ethcommon.Address, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
}

// Admitter 领取频率准入（limit.ClaimLimiter实现）
type Admitter interface {
	Admit(address string) bool
}

type ServerCtx struct {
	C         *config.Config
	Dao       *dao.Dao
	Memory    ProfileFetcher
	Sbt       SbtReader
	Limiter   Admitter
	Allowlist *allowlist.Book
}

func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	if err := xzap.SetUp(c.Log.Level); err != nil {
		return nil, errors.Wrap(err, "failed on init logger")
	}

	sbtClient, err := contract.NewSBTContract(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed on init sbt contract client")
	}

	// 领取记录库可选，不配置DSN时跳过
	var d *dao.Dao
	if c.DB.DSN != "" {
		d, err = dao.New(c.DB.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "failed on init dao")
		}
	}

	return &ServerCtx{
		C:         c,
		Dao:       d,
		Memory:    memory.NewClient(c.Memory),
		Sbt:       sbtClient,
		Limiter:   limit.NewClaimLimiter(c.RateLimit.MaxAttempts, c.RateLimit.Window),
		Allowlist: allowlist.NewBook(c.Allowlist),
	}, nil
}
