package badge

import (
	"github.com/locey/MemoryBadges/BadgeEnd/memory"
)

// Definition SBT徽章定义。ID一旦发布不可变更，已铸造的token数据里带着它。
type Definition struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Video       string `json:"video,omitempty"`
	TokenURI    string `json:"tokenURI"`
	// Check 资格谓词，必须是纯函数：只读Profile，缺失字段按未绑定处理，不允许panic
	Check func(p *memory.Profile) bool `json:"-"`
}

// Status 某个Profile对单个徽章的评估结果
type Status struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Video       string `json:"video,omitempty"`
	TokenURI    string `json:"tokenURI"`
	Unlocked    bool   `json:"unlocked"`
}

var catalog = []Definition{
	{
		ID:          0,
		Name:        "X OG",
		Emoji:       "X Active",
		Description: "Has X account with >100 followers",
		Video:       "/badges/x_og.mp4",
		TokenURI:    "https://gateway.pinata.cloud/ipfs/bafkreib3s2cm3kqy6k2iogncjw72n6zkfnlpu6yfq2fn4fwh4e373w5bny",
		Check: func(p *memory.Profile) bool {
			return p.X != nil && p.X.Followers > 100
		},
	},
	{
		ID:          1,
		Name:        "Farcaster User",
		Emoji:       "Farcaster User",
		Description: "Has Farcaster account",
		Video:       "/badges/farcaster user.mp4",
		TokenURI:    "https://gateway.pinata.cloud/ipfs/bafkreieubesoylmd5ubi75hr3aljxuylk3mdcesfrcvhpyqudi5gnp3dgi",
		Check: func(p *memory.Profile) bool {
			return p.Farcaster != nil
		},
	},
	{
		ID:          2,
		Name:        "GitHub Developer",
		Emoji:       "GitHub Dev",
		Description: "Has GitHub account",
		Video:       "/badges/Github Developer.mp4",
		TokenURI:    "https://gateway.pinata.cloud/ipfs/bafkreiao2hzyi56di4wwbjjrniipxh2huyvnf5t3eunseltoa3u563tuy4",
		Check: func(p *memory.Profile) bool {
			return p.GitHub != nil
		},
	},
	{
		ID:          3,
		Name:        "Lens Profile",
		Emoji:       "Lens Creator",
		Description: "Has Lens profile",
		Video:       "/badges/lens profile.mp4",
		TokenURI:    "https://gateway.pinata.cloud/ipfs/bafkreibzt55ye3svdzp5y3ocwqqhwlkdwwdycn3rk5yiyru5mkumszuwhq",
		Check: func(p *memory.Profile) bool {
			return p.Lens != nil
		},
	},
	{
		ID:          4,
		Name:        "Talent Profile",
		Emoji:       "Talent Builder",
		Description: "Has Talent Protocol profile",
		Video:       "/badges/Talent Profile.mp4",
		TokenURI:    "https://gateway.pinata.cloud/ipfs/bafkreihqrofgwbz6hlayytwybi3yaw2x5apimgq6zppvzyy4bsk2o5676i",
		Check: func(p *memory.Profile) bool {
			return p.Talent != nil
		},
	},
}

// Definitions 返回全部徽章定义（固定顺序）
func Definitions() []Definition {
	return catalog
}

// ByID 按ID查找徽章定义
func ByID(id int64) (*Definition, bool) {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], true
		}
	}
	return nil, false
}

// Evaluate 对全部定义逐个执行谓词。nil Profile按空Profile评估，
// 各谓词之间相互独立，顺序不影响结果。
func Evaluate(p *memory.Profile) []Status {
	if p == nil {
		p = &memory.Profile{}
	}
	statuses := make([]Status, 0, len(catalog))
	for _, def := range catalog {
		statuses = append(statuses, Status{
			ID:          def.ID,
			Name:        def.Name,
			Emoji:       def.Emoji,
			Description: def.Description,
			Video:       def.Video,
			TokenURI:    def.TokenURI,
			Unlocked:    def.Check(p),
		})
	}
	return statuses
}
