package chain

const (
	Eth         = "eth"
	Base        = "base"
	BaseSepolia = "base-sepolia"
	Sepolia     = "sepolia"
)

const (
	EthChainID         = 1
	BaseChainID        = 8453
	BaseSepoliaChainID = 84532
	SepoliaChainID     = 11155111
)

var chainIDToName = map[int]string{
	EthChainID:         Eth,
	BaseChainID:        Base,
	BaseSepoliaChainID: BaseSepolia,
	SepoliaChainID:     Sepolia,
}

func NameByID(chainID int) (string, bool) {
	name, ok := chainIDToName[chainID]
	return name, ok
}
