// internal/model/assist.go
package model

// DoubtRequest は質問文か画像のどちらかが必要
type DoubtRequest struct {
	Grade    string `json:"grade" validate:"required,max=50"`
	Subject  string `json:"subject" validate:"required,max=50"`
	Question string `json:"question" validate:"required_without=Image,max=4000"`
	Image    string `json:"image" validate:"required_without=Question"` // base64 または data URL
}

// HomeworkRequest の画像は任意
type HomeworkRequest struct {
	Grade    string `json:"grade" validate:"required,max=50"`
	Subject  string `json:"subject" validate:"required,max=50"`
	Question string `json:"question" validate:"required,max=4000"`
	Image    string `json:"image,omitempty"`
}

type PaperAnalysisRequest struct {
	Grade   string `json:"grade" validate:"required,max=50"`
	Subject string `json:"subject" validate:"required,max=50"`
	Image   string `json:"image" validate:"required"`
}

// QuestionSpec は「marks 点の問題を count 問」
type QuestionSpec struct {
	Marks int `json:"marks" validate:"min=1,max=6"`
	Count int `json:"count" validate:"min=0,max=50"`
}

type ChapterSpec struct {
	Name      string         `json:"name" validate:"required,max=200"`
	Questions []QuestionSpec `json:"questions" validate:"required,min=1,dive"`
}

type QuestionPaperRequest struct {
	SchoolName string        `json:"school_name" validate:"required,max=200"`
	Board      string        `json:"board" validate:"max=100"`
	Grade      string        `json:"grade" validate:"required,max=50"`
	Subject    string        `json:"subject" validate:"required,max=50"`
	Chapters   []ChapterSpec `json:"chapters" validate:"required,min=1,dive"`
}

// TotalMarks は全章の marks*count の合計
func (r *QuestionPaperRequest) TotalMarks() int {
	total := 0
	for _, c := range r.Chapters {
		for _, q := range c.Questions {
			total += q.Marks * q.Count
		}
	}
	return total
}

// DurationHours は 20 点あたり 1 時間 (切り上げ)
func (r *QuestionPaperRequest) DurationHours() int {
	return (r.TotalMarks() + 19) / 20
}

type AssistResponse struct {
	Answer string `json:"answer"`
}

type QuestionPaperResponse struct {
	TotalMarks    int    `json:"total_marks"`
	DurationHours int    `json:"duration_hours"`
	Paper         string `json:"paper"`
}
