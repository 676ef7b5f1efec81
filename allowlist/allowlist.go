package allowlist

import (
	"encoding/hex"
	"log"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/txaty/go-merkletree"
	"golang.org/x/exp/maps"

	"github.com/locey/MemoryBadges/BadgeEnd/config"
	"github.com/locey/MemoryBadges/BadgeEnd/types/v1"
)

// Book 每个徽章的白名单快照。本部署默认不配置任何快照，
// 所有徽章开放领取（空proof、零限额）。配置了快照的徽章按
// keccak叶子+有序兄弟对的方式派生merkle proof。
type Book struct {
	trees map[int64]*badgeTree
}

type badgeTree struct {
	tree     *merkletree.MerkleTree
	contents map[string]*merkleContent
}

type merkleContent struct {
	Data []byte
}

func (m *merkleContent) Serialize() ([]byte, error) {
	return m.Data, nil
}

func keccak256Wrapper(data []byte) ([]byte, error) {
	return crypto.Keccak256(data), nil
}

func NewBook(snapshots []config.Snapshot) *Book {
	book := &Book{trees: make(map[int64]*badgeTree)}
	for _, snap := range snapshots {
		if len(snap.Addresses) == 0 {
			continue
		}
		tree, err := buildTree(snap)
		if err != nil {
			log.Println("failed to build allowlist tree:", err)
			continue
		}
		book.trees[snap.TokenID] = tree
	}
	return book
}

func buildTree(snap config.Snapshot) (*badgeTree, error) {
	// 地址排序保证同一份快照建出的树完全一致
	addresses := make([]string, 0, len(snap.Addresses))
	for _, addr := range snap.Addresses {
		addresses = append(addresses, strings.ToLower(addr))
	}
	sort.Strings(addresses)

	var leaves []merkletree.DataBlock
	contents := make(map[string]*merkleContent, len(addresses))

	for _, addrStr := range addresses {
		addr := common.HexToAddress(addrStr)
		tokenIDBig := big.NewInt(snap.TokenID)

		// 与合约里keccak256(abi.encodePacked(account, tokenId))保持一致
		var data []byte
		data = append(data, addr.Bytes()...)
		data = append(data, padBytesLeft(tokenIDBig.Bytes(), 32)...)

		content := &merkleContent{Data: crypto.Keccak256(data)}
		leaves = append(leaves, content)
		contents[addrStr] = content
	}

	tree, err := merkletree.New(&merkletree.Config{
		HashFunc:         keccak256Wrapper,
		Mode:             merkletree.ModeProofGenAndTreeBuild,
		SortSiblingPairs: true,
	}, leaves)
	if err != nil {
		return nil, err
	}

	return &badgeTree{tree: tree, contents: contents}, nil
}

// ProofFor 返回(tokenID, address)对应的allowlist proof。
// 没有快照、或地址不在快照里时返回开放领取的哨兵结构，
// 最终放不放行由合约自己判定。
func (b *Book) ProofFor(tokenID int64, address string) types.AllowlistProof {
	open := types.OpenAllowlistProof()

	badge, ok := b.trees[tokenID]
	if !ok {
		return open
	}

	content, ok := badge.contents[strings.ToLower(address)]
	if !ok {
		return open
	}

	proof, err := badge.tree.Proof(content)
	if err != nil {
		log.Println("failed to derive allowlist proof:", err)
		return open
	}

	hexStrings := make([]string, len(proof.Siblings))
	for i, sibling := range proof.Siblings {
		hexStrings[i] = "0x" + hex.EncodeToString(sibling)
	}

	return types.AllowlistProof{
		Proof:                  hexStrings,
		QuantityLimitPerWallet: "1",
		PricePerToken:          "0",
		Currency:               types.NativeTokenAddress,
	}
}

// GatedTokenIDs 配置了快照的徽章ID列表
func (b *Book) GatedTokenIDs() []int64 {
	ids := maps.Keys(b.trees)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func padBytesLeft(original []byte, targetLength int) []byte {
	if len(original) >= targetLength {
		return original
	}
	padded := make([]byte, targetLength)
	copy(padded[targetLength-len(original):], original)
	return padded
}
