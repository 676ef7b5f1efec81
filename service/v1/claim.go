package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/locey/MemoryBadges/BadgeEnd/base/chain"
	"github.com/locey/MemoryBadges/BadgeEnd/base/errcode"
	"github.com/locey/MemoryBadges/BadgeEnd/base/logger/xzap"
	gdbbadge "github.com/locey/MemoryBadges/BadgeEnd/base/stores/gdb/badge"
	mycommon "github.com/locey/MemoryBadges/BadgeEnd/common"
	"github.com/locey/MemoryBadges/BadgeEnd/contract"
	"github.com/locey/MemoryBadges/BadgeEnd/service/badge"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
	"github.com/locey/MemoryBadges/BadgeEnd/types/v1"
)

// ClaimBadge 领取参数签发主流程：
// 校验请求 -> 限流准入 -> 拉取Profile -> 资格评估 -> 链上所有权检查 -> 构造领取参数。
// 本服务只产出参数，不持有私钥也不广播交易，真正的mint由钱包端发起、合约裁决。
func ClaimBadge(ctx context.Context, s *svc.ServerCtx, req types.ClaimRequest) (*types.ClaimResponse, error) {
	log := xzap.WithContext(ctx)

	// 1. 请求校验
	address, err := mycommon.UnifyAddress(req.Address)
	if err != nil {
		return nil, errcode.ErrInvalidParams.WithMsg("invalid address")
	}
	if !chainSupported(s, req.ChainID) {
		return nil, errcode.ErrInvalidParams.WithMsg(fmt.Sprintf("unsupported chain id: %d", req.ChainID))
	}
	if req.TokenID == nil || *req.TokenID < 0 {
		return nil, errcode.ErrInvalidParams.WithMsg("invalid token id")
	}
	tokenID := *req.TokenID

	// 2. 限流准入
	if !s.Limiter.Admit(address) {
		return nil, errcode.ErrRateLimited
	}

	// 3. 拉取Profile。拉取失败时得到只带地址的Profile，继续走评估（必然不通过）
	profile := s.Memory.FetchProfile(ctx, address)

	// 4. 资格评估
	def, ok := badge.ByID(tokenID)
	if !ok {
		return nil, errcode.ErrUnknownBadge
	}
	if !def.Check(profile) {
		return nil, errcode.ErrNotEligible.WithMsg(
			fmt.Sprintf("You are not eligible for the %q badge. %s", def.Name, def.Description))
	}

	// 5. 所有权检查。token未铸造按未领取处理；
	// 其它链上查询故障只记日志不阻断——放行最多多弹一次签名提示，合约会拒绝重复mint
	owner, err := s.Sbt.OwnerOf(ctx, big.NewInt(tokenID))
	switch {
	case err == nil:
		if strings.EqualFold(owner.Hex(), address) {
			return nil, errcode.ErrAlreadyClaim.WithMsg("You have already claimed this badge.")
		}
		// 所有者是别人：保守起见记录下来，但不拦截，合约是mint时的最终裁决者
		log.Warn("badge owned by another address",
			zap.Int64("token_id", tokenID),
			zap.String("owner", owner.Hex()),
			zap.String("requester", address))
	case errors.Is(err, contract.ErrTokenNotMinted):
		// 预期内：有效领取的正常路径
	default:
		log.Warn("ownership check failed, proceeding",
			zap.Int64("token_id", tokenID), zap.Error(err))
	}

	// 6. 构造领取参数并记录签发
	params := buildClaimParams(s, address, tokenID)
	recordIssuance(ctx, s, address, tokenID, req.ChainID, def.Name)

	chainName, _ := chain.NameByID(int(req.ChainID))
	log.Info("claim parameters issued",
		zap.String("badge", def.Name),
		zap.Int64("token_id", tokenID),
		zap.String("chain", chainName),
		zap.String("receiver", address))

	return &types.ClaimResponse{
		Success:     true,
		BadgeName:   def.Name,
		TokenID:     tokenID,
		ClaimParams: params,
	}, nil
}

// buildClaimParams 领取参数是(address, tokenID)的纯函数，
// 同一部署下重复请求得到逐字节一致的结果
func buildClaimParams(s *svc.ServerCtx, address string, tokenID int64) types.ClaimParameters {
	return types.ClaimParameters{
		Receiver:       address,
		Quantity:       "1",
		Currency:       types.NativeTokenAddress,
		PricePerToken:  "0",
		AllowlistProof: s.Allowlist.ProofFor(tokenID, address),
		Data:           fmt.Sprintf("0x%064x", tokenID),
	}
}

// recordIssuance 签发记录尽力而为，库不可用不影响领取
func recordIssuance(ctx context.Context, s *svc.ServerCtx, address string, tokenID, chainID int64, badgeName string) {
	if s.Dao == nil {
		return
	}
	rec := &gdbbadge.BadgeClaimIssuance{
		Address:   address,
		TokenID:   tokenID,
		BadgeName: badgeName,
		ChainID:   chainID,
		IssuedAt:  time.Now(),
	}
	if err := s.Dao.CreateIssuance(ctx, rec); err != nil {
		xzap.WithContext(ctx).Warn("failed to record claim issuance", zap.Error(err))
	}
}

func chainSupported(s *svc.ServerCtx, chainID int64) bool {
	for _, chain := range s.C.ChainSupported {
		if int64(chain.ChainID) == chainID {
			return true
		}
	}
	return false
}
