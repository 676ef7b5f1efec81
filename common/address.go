package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// UnifyAddress 校验并把地址统一成小写形式，Profile和限流计数都以小写地址为key
func UnifyAddress(address string) (string, error) {
	if len(address) <= 2 || !common.IsHexAddress(address) {
		return "", errors.New("user address is illegal")
	}

	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}
