package memory

// Profile 聚合后的链上/社交身份，按钱包地址（小写）为主键。
// 子记录为nil表示未绑定该平台，谓词判断时按false处理。
type Profile struct {
	Address   string        `json:"address"`
	X         *XAccount     `json:"x,omitempty"`
	Farcaster *Farcaster    `json:"farcaster,omitempty"`
	Lens      *LensAccount  `json:"lens,omitempty"`
	GitHub    *GitHub       `json:"github,omitempty"`
	Talent    *Talent       `json:"talent,omitempty"`
	Contracts []ContractRef `json:"contracts,omitempty"`
	ENS       string        `json:"ens,omitempty"`
}

type XAccount struct {
	Username  string `json:"username"`
	Followers int    `json:"followers"`
	Verified  bool   `json:"verified"`
}

type Farcaster struct {
	FID       int64  `json:"fid"`
	Username  string `json:"username"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
}

type LensAccount struct {
	Username  string `json:"username"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	Verified  bool   `json:"verified"`
	URL       string `json:"url"`
}

type GitHub struct {
	Username  string `json:"username"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	Verified  bool   `json:"verified"`
	URL       string `json:"url"`
}

type Talent struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Verified bool   `json:"verified"`
}

type ContractRef struct {
	Address string `json:"address"`
	URL     string `json:"url"`
}
