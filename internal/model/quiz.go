package model

// TriviaQuestion は問題ソースから取得した1問
type TriviaQuestion struct {
	Category     string
	QuestionText string
	Options      []string
	CorrectIndex int
}

// QuestionResponse は /quiz/next のレスポンス
type QuestionResponse struct {
	Category     string   `json:"category"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Fallback     bool     `json:"fallback"`
	Novel        bool     `json:"novel"`
}
