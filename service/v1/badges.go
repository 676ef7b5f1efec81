package service

import (
	"context"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/locey/MemoryBadges/BadgeEnd/base/errcode"
	"github.com/locey/MemoryBadges/BadgeEnd/base/logger/xzap"
	gdbbadge "github.com/locey/MemoryBadges/BadgeEnd/base/stores/gdb/badge"
	mycommon "github.com/locey/MemoryBadges/BadgeEnd/common"
	"github.com/locey/MemoryBadges/BadgeEnd/contract"
	"github.com/locey/MemoryBadges/BadgeEnd/memory"
	"github.com/locey/MemoryBadges/BadgeEnd/service/badge"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
	"github.com/locey/MemoryBadges/BadgeEnd/types/v1"
)

// GetBadges 评估地址对全部徽章的解锁情况，并附带链上领取状态
func GetBadges(ctx context.Context, s *svc.ServerCtx, address string) (*types.BadgeListResponse, error) {
	addr, err := mycommon.UnifyAddress(address)
	if err != nil {
		return nil, errcode.ErrInvalidParams.WithMsg("invalid address")
	}

	profile := s.Memory.FetchProfile(ctx, addr)
	statuses := badge.Evaluate(profile)

	res := &types.BadgeListResponse{
		Address: addr,
		Badges:  make([]types.BadgeStatus, 0, len(statuses)),
	}
	for _, st := range statuses {
		res.Badges = append(res.Badges, types.BadgeStatus{
			ID:          st.ID,
			Name:        st.Name,
			Emoji:       st.Emoji,
			Description: st.Description,
			Video:       st.Video,
			TokenURI:    st.TokenURI,
			Unlocked:    st.Unlocked,
			Claimed:     isClaimedBy(ctx, s, st.ID, addr),
		})
	}
	return res, nil
}

// isClaimedBy 查询失败（含未铸造）都按未领取处理，列表展示不需要精确
func isClaimedBy(ctx context.Context, s *svc.ServerCtx, tokenID int64, address string) bool {
	owner, err := s.Sbt.OwnerOf(ctx, big.NewInt(tokenID))
	if err != nil {
		if !errors.Is(err, contract.ErrTokenNotMinted) {
			xzap.WithContext(ctx).Warn("ownerOf query failed",
				zap.Int64("token_id", tokenID), zap.Error(err))
		}
		return false
	}
	return strings.EqualFold(owner.Hex(), address)
}

// GetProfile 返回归一化后的身份Profile
func GetProfile(ctx context.Context, s *svc.ServerCtx, address string) (*memory.Profile, error) {
	addr, err := mycommon.UnifyAddress(address)
	if err != nil {
		return nil, errcode.ErrInvalidParams.WithMsg("invalid address")
	}
	return s.Memory.FetchProfile(ctx, addr), nil
}

// GetSbtStats 合约已铸造总量与目录规模
func GetSbtStats(ctx context.Context, s *svc.ServerCtx) (*types.SbtStats, error) {
	supply, err := s.Sbt.TotalSupply(ctx)
	if err != nil {
		xzap.WithContext(ctx).Error("totalSupply query failed", zap.Error(err))
		return nil, errcode.ErrUpstream
	}
	return &types.SbtStats{
		TotalSupply: supply.String(),
		BadgeCount:  len(badge.Definitions()),
	}, nil
}

// GetSbtMetadata token元数据地址。未铸造时回退到目录里的tokenURI
func GetSbtMetadata(ctx context.Context, s *svc.ServerCtx, tokenID int64) (*types.SbtMetadata, error) {
	def, ok := badge.ByID(tokenID)
	if !ok {
		return nil, errcode.ErrUnknownBadge
	}

	uri, err := s.Sbt.TokenURI(ctx, big.NewInt(tokenID))
	if err != nil {
		if !errors.Is(err, contract.ErrTokenNotMinted) {
			xzap.WithContext(ctx).Warn("tokenURI query failed",
				zap.Int64("token_id", tokenID), zap.Error(err))
		}
		uri = def.TokenURI
	}

	return &types.SbtMetadata{TokenID: tokenID, TokenURI: uri}, nil
}

// GetClaimHistory 签发历史，领取记录库未启用时返回空列表
func GetClaimHistory(ctx context.Context, s *svc.ServerCtx, address string) ([]gdbbadge.BadgeClaimIssuance, error) {
	addr, err := mycommon.UnifyAddress(address)
	if err != nil {
		return nil, errcode.ErrInvalidParams.WithMsg("invalid address")
	}
	if s.Dao == nil {
		return []gdbbadge.BadgeClaimIssuance{}, nil
	}
	records, err := s.Dao.GetIssuancesByAddress(ctx, addr)
	if err != nil {
		xzap.WithContext(ctx).Error("query claim history failed", zap.Error(err))
		return nil, errcode.ErrInternal
	}
	return records, nil
}
