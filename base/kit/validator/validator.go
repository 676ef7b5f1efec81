package validator

import (
	validate "github.com/go-playground/validator/v10"
)

var v = validate.New()

// Verify 校验结构体validate标签
func Verify(obj interface{}) error {
	return v.Struct(obj)
}
