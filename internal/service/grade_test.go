package service

import (
	"testing"

	"quizapp_backend/internal/model"
	"quizapp_backend/internal/util"
)

func fourQuestionQuiz() *model.Quiz {
	return &model.Quiz{
		Title: "four",
		Questions: []model.Question{
			{ID: "q1", Question: "1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			{ID: "q2", Question: "2", Options: []string{"a", "b"}, CorrectAnswer: "b"},
			{ID: "q3", Question: "3", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			{ID: "q4", Question: "4", Options: []string{"a", "b"}, CorrectAnswer: "b"},
		},
	}
}

func TestGradeScores(t *testing.T) {
	quiz := fourQuestionQuiz()

	cases := []struct {
		name    string
		answers []AnswerReq
		correct int
		score   int
	}{
		{"all correct", []AnswerReq{{"q1", "a"}, {"q2", "b"}, {"q3", "a"}, {"q4", "b"}}, 4, 100},
		{"none correct", []AnswerReq{{"q1", "b"}, {"q2", "a"}, {"q3", "b"}, {"q4", "a"}}, 0, 0},
		{"three of four", []AnswerReq{{"q1", "a"}, {"q2", "b"}, {"q3", "a"}, {"q4", "a"}}, 3, 75},
		{"unanswered", nil, 0, 0},
	}
	for _, tc := range cases {
		got := Grade(quiz, tc.answers)
		if got.Correct != tc.correct || got.Score != tc.score || got.Wrong != 4-tc.correct {
			t.Fatalf("%s: expected correct=%d score=%d, got %+v", tc.name, tc.correct, tc.score, got)
		}
	}
}

func TestGradeIsCaseSensitiveAndUntrimmed(t *testing.T) {
	quiz := fourQuestionQuiz()
	got := Grade(quiz, []AnswerReq{{"q1", "A"}, {"q2", " b"}})
	if got.Correct != 0 {
		t.Fatalf("expected exact matching only, got %d correct", got.Correct)
	}
	if got.DetailedResults[0].UserAnswer != "A" {
		t.Fatalf("expected raw user answer, got %q", got.DetailedResults[0].UserAnswer)
	}
}

func TestGradePlaceholderAndFirstMatch(t *testing.T) {
	quiz := fourQuestionQuiz()
	got := Grade(quiz, []AnswerReq{{"q1", "a"}, {"q1", "b"}, {"q2", ""}, {"unknown", "a"}})

	if !got.DetailedResults[0].IsCorrect {
		t.Fatalf("expected the first answer for q1 to count")
	}
	if got.DetailedResults[1].UserAnswer != util.NotAnswered || got.DetailedResults[1].IsCorrect {
		t.Fatalf("expected empty answer shown as not answered, got %+v", got.DetailedResults[1])
	}
	if got.DetailedResults[2].UserAnswer != util.NotAnswered {
		t.Fatalf("expected missing answer placeholder, got %+v", got.DetailedResults[2])
	}
	for i, d := range got.DetailedResults {
		if d.QuestionID != quiz.Questions[i].ID {
			t.Fatalf("details must follow quiz order")
		}
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	got := Grade(&model.Quiz{Title: "empty"}, []AnswerReq{{"q1", "a"}})
	if got.Score != 0 || got.TotalQuestions != 0 || len(got.DetailedResults) != 0 {
		t.Fatalf("expected zero score for empty quiz, got %+v", got)
	}
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	cases := []struct{ correct, total, want int }{
		{1, 8, 13},  // 12.5
		{1, 3, 33},  // 33.33
		{2, 3, 67},  // 66.67
		{5, 200, 3}, // 2.5
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.correct, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}
