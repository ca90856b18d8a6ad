package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// isDuplicateKeyError 判断是否为唯一键冲突 (MySQL 1062)
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
