package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrRefreshNotFound         = errors.New("refresh token not found")
	ErrRefreshExpiredOrRevoked = errors.New("refresh token expired or revoked")
)

type GormRepo struct {
	DB *gorm.DB
}
