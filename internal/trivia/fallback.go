package trivia

import "kelvi_tracker/internal/model"

// Fallback は問題ソースが使えないときに出す固定の問題
func Fallback() *model.TriviaQuestion {
	return &model.TriviaQuestion{
		Category:     "General Knowledge",
		QuestionText: "What is the capital of Japan?",
		Options:      []string{"Seoul", "Beijing", "Tokyo", "Bangkok"},
		CorrectIndex: 2,
	}
}
