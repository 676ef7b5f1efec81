package badge

import "time"

// BadgeClaimIssuance 领取参数签发记录，仅用于审计和查询，
// 不参与任何领取校验。
type BadgeClaimIssuance struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Address   string    `gorm:"size:100;not null;index" json:"address"`
	TokenID   int64     `gorm:"not null;index" json:"token_id"`
	BadgeName string    `gorm:"size:200;not null" json:"badge_name"`
	ChainID   int64     `gorm:"not null" json:"chain_id"`
	IssuedAt  time.Time `json:"issued_at"`
}

func BadgeClaimIssuanceTableName() string {
	return "badge_claim_issuance"
}
