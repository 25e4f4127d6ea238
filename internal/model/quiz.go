package model

import (
	"gorm.io/gorm"
)

// Question 内嵌在 Quiz 中，没有独立的生命周期
// swagger:model Question
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// swagger:model Quiz
type Quiz struct {
	DocumentBase
	Title         string     `gorm:"size:255;not null" json:"title"`
	Technology    string     `gorm:"size:100;not null;index" json:"technology"`
	Level         string     `gorm:"size:50;not null;index" json:"level"`
	Questions     []Question `gorm:"type:json;serializer:json" json:"questions"`
	CreatedBy     *string    `gorm:"size:64;index" json:"createdBy"`
	IsActive      bool       `gorm:"default:true;index" json:"isActive"`
	TotalAttempts int        `gorm:"not null;default:0" json:"totalAttempts"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) BeforeSave(tx *gorm.DB) error {
	q.AssignQuestionIDs()
	return nil
}

// AssignQuestionIDs 为缺少 ID 的题目分配 ID
func (q *Quiz) AssignQuestionIDs() {
	for i := range q.Questions {
		if q.Questions[i].ID == "" {
			q.Questions[i].ID = GenerateUUID()
		}
	}
}

// Summary 返回去掉正确答案和解析的副本，用于列表和详情
func (q Quiz) Summary() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectAnswer = ""
		question.Explanation = ""
		out.Questions[i] = question
	}
	return out
}

type QuizFilter struct {
	Technology string
	Level      string
}
