package model

// Result 一次答题的历史记录，只追加不修改。
// Title/Technology/Level 是答题时从测验复制的冗余字段
// swagger:model Result
type Result struct {
	DocumentBase
	UserID         string `gorm:"size:64;not null;index" json:"user"`
	Title          string `gorm:"size:255;not null" json:"title"`
	Technology     string `gorm:"size:100;not null;index" json:"technology"`
	Level          string `gorm:"size:50;not null" json:"level"`
	TotalQuestions int    `gorm:"not null" json:"totalQuestions"`
	Correct        int    `gorm:"not null" json:"correct"`
	Wrong          int    `gorm:"not null" json:"wrong"`
	Score          *int   `json:"score,omitempty"`
}

func (Result) TableName() string {
	return "results"
}

type ResultFilter struct {
	UserID     string
	Technology string
}
