package dao

import (
	"context"

	"github.com/locey/MemoryBadges/BadgeEnd/base/stores/gdb/badge"
)

func (d *Dao) CreateIssuance(c context.Context, rec *badge.BadgeClaimIssuance) error {
	return d.DB.WithContext(c).
		Table(badge.BadgeClaimIssuanceTableName()).Create(rec).Error
}

// GetIssuancesByAddress 按地址查询签发历史，新的在前
func (d *Dao) GetIssuancesByAddress(c context.Context, address string) ([]badge.BadgeClaimIssuance, error) {
	var records []badge.BadgeClaimIssuance
	err := d.DB.WithContext(c).
		Table(badge.BadgeClaimIssuanceTableName()).Where("address = ?", address).
		Order("issued_at desc").Find(&records).Error
	return records, err
}
