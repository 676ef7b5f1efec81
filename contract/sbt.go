package contract

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/locey/MemoryBadges/BadgeEnd/common/utils"
	"github.com/locey/MemoryBadges/BadgeEnd/config"
)

// ErrTokenNotMinted token尚未铸造（ownerOf revert）。
// 和基础设施故障区分开，调用方按"未领取"处理。
var ErrTokenNotMinted = errors.New("token not minted")

// SBTContract 封装了徽章SBT合约的只读交互方法
type SBTContract struct {
	client      *ethclient.Client
	config      *config.Config
	contractABI abi.ABI
	address     common.Address
}

// 合约ABI（简化版本，只包含我们需要的只读方法）
const contractABI = `[
    {
        "inputs": [
            {
                "internalType": "uint256",
                "name": "tokenId",
                "type": "uint256"
            }
        ],
        "name": "ownerOf",
        "outputs": [
            {
                "internalType": "address",
                "name": "",
                "type": "address"
            }
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [
            {
                "internalType": "uint256",
                "name": "tokenId",
                "type": "uint256"
            }
        ],
        "name": "tokenURI",
        "outputs": [
            {
                "internalType": "string",
                "name": "",
                "type": "string"
            }
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [],
        "name": "totalSupply",
        "outputs": [
            {
                "internalType": "uint256",
                "name": "",
                "type": "uint256"
            }
        ],
        "stateMutability": "view",
        "type": "function"
    }
]`

func NewSBTContract(cfg *config.Config) (*SBTContract, error) {
	// 连接以太坊节点，增加超时和重试机制
	var client *ethclient.Client
	var err error

	// 最多重试3次
	for i := 0; i < 3; i++ {
		client, err = connectWithTimeout(cfg.SbtContract.RPCEndpoint, 30*time.Second)
		if err == nil {
			break
		}
		log.Printf("Failed to connect to Ethereum node (attempt %d): %v", i+1, err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum node after 3 attempts: %v", err)
	}

	// 解析合约ABI，配置了abi_path时读取外部文件
	var parsedABI abi.ABI
	if cfg.SbtContract.AbiPath != "" {
		parsedABI, err = utils.ReadABI(cfg.SbtContract.AbiPath)
	} else {
		parsedABI, err = abi.JSON(strings.NewReader(contractABI))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %v", err)
	}

	// 验证合约地址
	if !common.IsHexAddress(cfg.SbtContract.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", cfg.SbtContract.ContractAddress)
	}
	contractAddress := common.HexToAddress(cfg.SbtContract.ContractAddress)

	return &SBTContract{
		client:      client,
		config:      cfg,
		contractABI: parsedABI,
		address:     contractAddress,
	}, nil
}

// connectWithTimeout 带超时的连接函数
func connectWithTimeout(endpoint string, timeout time.Duration) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum node: %v", err)
	}

	return client, nil
}

// OwnerOf 查询tokenId当前拥有者。
// token未铸造时合约revert，这里转成ErrTokenNotMinted返回。
func (c *SBTContract) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	data, err := c.contractABI.Pack("ownerOf", tokenID)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed on pack ownerOf")
	}

	result, err := c.call(ctx, data)
	if err != nil {
		if isExecutionRevert(err) {
			return common.Address{}, ErrTokenNotMinted
		}
		return common.Address{}, errors.Wrap(err, "failed on call ownerOf")
	}

	var owner common.Address
	if err := c.contractABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return common.Address{}, errors.Wrap(err, "failed on unpack ownerOf")
	}
	return owner, nil
}

// TokenURI 查询token元数据地址
func (c *SBTContract) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	data, err := c.contractABI.Pack("tokenURI", tokenID)
	if err != nil {
		return "", errors.Wrap(err, "failed on pack tokenURI")
	}

	result, err := c.call(ctx, data)
	if err != nil {
		if isExecutionRevert(err) {
			return "", ErrTokenNotMinted
		}
		return "", errors.Wrap(err, "failed on call tokenURI")
	}

	var uri string
	if err := c.contractABI.UnpackIntoInterface(&uri, "tokenURI", result); err != nil {
		return "", errors.Wrap(err, "failed on unpack tokenURI")
	}
	return uri, nil
}

// TotalSupply 查询已铸造总量
func (c *SBTContract) TotalSupply(ctx context.Context) (*big.Int, error) {
	data, err := c.contractABI.Pack("totalSupply")
	if err != nil {
		return nil, errors.Wrap(err, "failed on pack totalSupply")
	}

	result, err := c.call(ctx, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed on call totalSupply")
	}

	var supply *big.Int
	if err := c.contractABI.UnpackIntoInterface(&supply, "totalSupply", result); err != nil {
		return nil, errors.Wrap(err, "failed on unpack totalSupply")
	}
	return supply, nil
}

func (c *SBTContract) call(ctx context.Context, data []byte) ([]byte, error) {
	callMsg := ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	}

	// 添加超时控制
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return c.client.CallContract(ctx, callMsg, nil)
}

// isExecutionRevert 判断错误是否为合约revert（而非网络/节点故障）
func isExecutionRevert(err error) bool {
	if err == nil {
		return false
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}
