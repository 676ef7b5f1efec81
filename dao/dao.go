package dao

import (
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/locey/MemoryBadges/BadgeEnd/base/stores/gdb/badge"
)

type Dao struct {
	DB *gorm.DB
}

func New(dsn string) (*Dao, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open mysql")
	}

	if err := db.Table(badge.BadgeClaimIssuanceTableName()).AutoMigrate(&badge.BadgeClaimIssuance{}); err != nil {
		return nil, errors.Wrap(err, "failed on migrate issuance table")
	}

	return &Dao{DB: db}, nil
}
