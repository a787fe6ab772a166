package errors

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicate 判断是否为存储层唯一约束冲突
// 依赖 gorm.Config.TranslateError 将驱动错误翻译为 gorm.ErrDuplicatedKey
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
