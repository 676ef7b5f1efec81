package types

// NativeTokenAddress 原生代币哨兵地址，目前部署价格固定为0
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// ClaimRequest 领取参数请求。TokenID用指针区分"缺失"和徽章0
type ClaimRequest struct {
	Address string `json:"address" binding:"required" validate:"required,eth_addr"`
	ChainID int64  `json:"chainId" binding:"required" validate:"required"`
	TokenID *int64 `json:"tokenId" binding:"required" validate:"required,min=0"`
}

// AllowlistProof 合约claim调用里的白名单结构。
// 本部署为开放领取：空proof、零限额。
type AllowlistProof struct {
	Proof                  []string `json:"proof"`
	QuantityLimitPerWallet string   `json:"quantityLimitPerWallet"`
	PricePerToken          string   `json:"pricePerToken"`
	Currency               string   `json:"currency"`
}

// OpenAllowlistProof 开放领取的哨兵结构
func OpenAllowlistProof() AllowlistProof {
	return AllowlistProof{
		Proof:                  []string{},
		QuantityLimitPerWallet: "0",
		PricePerToken:          "0",
		Currency:               NativeTokenAddress,
	}
}

// ClaimParameters 交给钱包端组装claim交易的参数。
// 大数统一用string，避免JSON序列化丢精度。
type ClaimParameters struct {
	Receiver       string         `json:"_receiver"`
	Quantity       string         `json:"_quantity"`
	Currency       string         `json:"_currency"`
	PricePerToken  string         `json:"_pricePerToken"`
	AllowlistProof AllowlistProof `json:"_allowlistProof"`
	Data           string         `json:"_data"`
}

// ClaimResponse 领取参数请求的成功响应
type ClaimResponse struct {
	Success     bool            `json:"success"`
	BadgeName   string          `json:"badgeName"`
	TokenID     int64           `json:"tokenId"`
	ClaimParams ClaimParameters `json:"claimParams"`
}

// BadgeListResponse 徽章评估列表响应
type BadgeListResponse struct {
	Address string        `json:"address"`
	Badges  []BadgeStatus `json:"badges"`
}

// BadgeStatus 单个徽章的评估与领取状态
type BadgeStatus struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Video       string `json:"video,omitempty"`
	TokenURI    string `json:"tokenURI"`
	Unlocked    bool   `json:"unlocked"`
	Claimed     bool   `json:"claimed"`
}

// SbtStats SBT合约统计信息
type SbtStats struct {
	TotalSupply string `json:"totalSupply"`
	BadgeCount  int    `json:"badgeCount"`
}

// SbtMetadata 单个token的元数据地址
type SbtMetadata struct {
	TokenID  int64  `json:"tokenId"`
	TokenURI string `json:"tokenURI"`
}
