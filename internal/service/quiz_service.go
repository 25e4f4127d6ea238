package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"quizapp_backend/internal/model"
	"quizapp_backend/internal/util"
	"quizapp_backend/pkg/logger"
	"quizapp_backend/pkg/monitoring"
	"quizapp_backend/pkg/tracing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgMissingQuizFields = "Please provide all required fields: title, technology, level, and questions"

type QuizService struct {
	Quizzes QuizStore
	Results ResultStore
}

func NewQuizService(quizzes QuizStore, results ResultStore) *QuizService {
	return &QuizService{Quizzes: quizzes, Results: results}
}

type QuestionReq struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type CreateQuizReq struct {
	Title      string        `json:"title"`
	Technology string        `json:"technology"`
	Level      string        `json:"level"`
	Questions  []QuestionReq `json:"questions"`
}

// UpdateQuizReq 局部更新，nil 字段保持不变
type UpdateQuizReq struct {
	Title         *string        `json:"title"`
	Technology    *string        `json:"technology"`
	Level         *string        `json:"level"`
	Questions     *[]QuestionReq `json:"questions"`
	IsActive      *bool          `json:"isActive"`
	TotalAttempts *int           `json:"totalAttempts"`
}

type AnswerReq struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
}

type SubmitQuizReq struct {
	Answers []AnswerReq `json:"answers"`
	// UserID 未登录时由请求体指定的身份
	UserID string `json:"userId"`
}

type QuestionOutcome struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

type QuizSubmission struct {
	QuizTitle       string            `json:"quizTitle"`
	Technology      string            `json:"technology"`
	Level           string            `json:"level"`
	TotalQuestions  int               `json:"totalQuestions"`
	Correct         int               `json:"correct"`
	Wrong           int               `json:"wrong"`
	Score           int               `json:"score"`
	DetailedResults []QuestionOutcome `json:"detailedResults"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateQuestions(questions []QuestionReq) error {
	for i, q := range questions {
		if isBlank(q.Question) || len(q.Options) < 2 || isBlank(q.CorrectAnswer) {
			return util.NewValidationError(fmt.Sprintf(
				"Question %d is invalid. Each question must have a question text, at least 2 options, and a correct answer", i+1))
		}
	}
	return nil
}

// toQuestions 题目 ID 由存储分配：known 为 nil 时丢弃客户端传入的 ID；
// 更新时只保留 known 中已存在的 ID，且同一测验内不得重复
func toQuestions(reqs []QuestionReq, known map[string]bool) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for i, q := range reqs {
		id := ""
		if known[q.ID] {
			if seen[q.ID] {
				return nil, util.NewValidationError(fmt.Sprintf("Question %d has a duplicate id", i+1))
			}
			seen[q.ID] = true
			id = q.ID
		}
		questions = append(questions, model.Question{
			ID:            id,
			Question:      q.Question,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return questions, nil
}

func questionIDs(quiz *model.Quiz) map[string]bool {
	ids := make(map[string]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		if q.ID != "" {
			ids[q.ID] = true
		}
	}
	return ids
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuizNotFound
	}
	return err
}

func (s *QuizService) CreateQuiz(ctx context.Context, req CreateQuizReq, callerID string) (*model.Quiz, error) {
	if isBlank(req.Title) || isBlank(req.Technology) || isBlank(req.Level) || len(req.Questions) == 0 {
		return nil, util.NewValidationError(msgMissingQuizFields)
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	questions, err := toQuestions(req.Questions, nil)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:         req.Title,
		Technology:    req.Technology,
		Level:         req.Level,
		Questions:     questions,
		IsActive:      true,
		TotalAttempts: 0,
	}
	if callerID != "" {
		createdBy := callerID
		quiz.CreatedBy = &createdBy
	}

	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	logger.Log.Info("quiz created",
		zap.String("quizId", quiz.ID),
		zap.String("technology", quiz.Technology),
		zap.Int("questions", len(quiz.Questions)),
	)
	return quiz, nil
}

// ListQuizzes 只返回启用的测验，题目不含正确答案和解析
func (s *QuizService) ListQuizzes(ctx context.Context, filter model.QuizFilter) ([]model.Quiz, error) {
	quizzes, err := s.Quizzes.ListActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	summaries := make([]model.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, q.Summary())
	}
	return summaries, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	summary := quiz.Summary()
	return &summary, nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id string, req UpdateQuizReq) (*model.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	var columns []string
	if req.Title != nil {
		if isBlank(*req.Title) {
			return nil, util.NewValidationError("Title cannot be empty")
		}
		quiz.Title = *req.Title
		columns = append(columns, "title")
	}
	if req.Technology != nil {
		if isBlank(*req.Technology) {
			return nil, util.NewValidationError("Technology cannot be empty")
		}
		quiz.Technology = *req.Technology
		columns = append(columns, "technology")
	}
	if req.Level != nil {
		if isBlank(*req.Level) {
			return nil, util.NewValidationError("Level cannot be empty")
		}
		quiz.Level = *req.Level
		columns = append(columns, "level")
	}
	if req.Questions != nil {
		if len(*req.Questions) == 0 {
			return nil, util.NewValidationError("A quiz must have at least one question")
		}
		if err := validateQuestions(*req.Questions); err != nil {
			return nil, err
		}
		questions, err := toQuestions(*req.Questions, questionIDs(quiz))
		if err != nil {
			return nil, err
		}
		quiz.Questions = questions
		columns = append(columns, "questions")
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.TotalAttempts != nil {
		if *req.TotalAttempts < 0 {
			return nil, util.NewValidationError("totalAttempts cannot be negative")
		}
		quiz.TotalAttempts = *req.TotalAttempts
		columns = append(columns, "total_attempts")
	}

	if len(columns) == 0 {
		return quiz, nil
	}
	if err := s.Quizzes.Update(ctx, quiz, columns...); err != nil {
		return nil, fmt.Errorf("update quiz: %w", notFound(err))
	}

	// 重新读取，返回存储中的最新状态（含并发提交累加的 totalAttempts）
	updated, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

// DeleteQuiz 物理删除，已有的答题结果保留各自的冗余字段
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.Quizzes.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	logger.Log.Info("quiz deleted", zap.String("quizId", id))
	return nil
}

// SubmitAnswers 判分。计数自增是独立提交的一步，与结果写入不在同一事务：
// 两步之间失败会留下已自增但没有对应结果的计数。
func (s *QuizService) SubmitAnswers(ctx context.Context, id string, req SubmitQuizReq, callerID string) (submission *QuizSubmission, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.SubmitAnswers")
	defer func() { tracing.EndSpan(span, err) }()

	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if err := s.Quizzes.IncrementAttempts(ctx, id); err != nil {
		return nil, fmt.Errorf("increment attempts: %w", notFound(err))
	}

	submission = Grade(quiz, req.Answers)
	monitoring.ObserveSubmission(quiz.Technology, quiz.Level, submission.Score)

	userID := callerID
	if userID == "" {
		userID = req.UserID
	}
	if userID != "" {
		s.saveResult(ctx, userID, quiz, submission)
	}

	return submission, nil
}

// saveResult 尽力写入结果，失败只记录日志，不影响判分响应
func (s *QuizService) saveResult(ctx context.Context, userID string, quiz *model.Quiz, submission *QuizSubmission) {
	score := submission.Score
	result := &model.Result{
		UserID:         userID,
		Title:          quiz.Title,
		Technology:     quiz.Technology,
		Level:          quiz.Level,
		TotalQuestions: submission.TotalQuestions,
		Correct:        submission.Correct,
		Wrong:          submission.Wrong,
		Score:          &score,
	}
	if err := s.Results.Create(ctx, result); err != nil {
		monitoring.ResultWriteFailures.Inc()
		logger.Log.Warn("Error saving result",
			zap.String("quizId", quiz.ID),
			zap.String("userId", userID),
			zap.Error(err),
		)
	}
}

// Grade 按题目顺序比对答案。答案按 questionId 匹配（取第一个），
// 选项需与正确答案完全一致（区分大小写，不去空格）
func Grade(quiz *model.Quiz, answers []AnswerReq) *QuizSubmission {
	submission := &QuizSubmission{
		QuizTitle:       quiz.Title,
		Technology:      quiz.Technology,
		Level:           quiz.Level,
		TotalQuestions:  len(quiz.Questions),
		DetailedResults: make([]QuestionOutcome, 0, len(quiz.Questions)),
	}

	for _, q := range quiz.Questions {
		answer, answered := findAnswer(answers, q.ID)
		isCorrect := answered && answer.SelectedAnswer == q.CorrectAnswer
		if isCorrect {
			submission.Correct++
		} else {
			submission.Wrong++
		}

		userAnswer := util.NotAnswered
		if answered && answer.SelectedAnswer != "" {
			userAnswer = answer.SelectedAnswer
		}

		submission.DetailedResults = append(submission.DetailedResults, QuestionOutcome{
			QuestionID:    q.ID,
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	submission.Score = Percentage(submission.Correct, submission.TotalQuestions)
	return submission
}

func findAnswer(answers []AnswerReq, questionID string) (AnswerReq, bool) {
	for _, a := range answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return AnswerReq{}, false
}

// Percentage 四舍五入（half up）到整数；没有题目时为 0
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(correct)*100/float64(total) + 0.5))
}
