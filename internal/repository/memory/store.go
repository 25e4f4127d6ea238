// Package memory 提供与 gorm 仓储行为一致的内存实现，用于本地运行（database.driver=memory）和测试。
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"quizapp_backend/internal/model"

	"gorm.io/gorm"
)

type quizEntry struct {
	seq  int64
	quiz model.Quiz
}

// QuizStore 内存版测验仓储，未找到时返回 gorm.ErrRecordNotFound
type QuizStore struct {
	mu      sync.RWMutex
	seq     int64
	quizzes map[string]*quizEntry
	now     func() time.Time
}

func NewQuizStore() *QuizStore {
	return &QuizStore{
		quizzes: make(map[string]*quizEntry),
		now:     time.Now,
	}
}

func (s *QuizStore) Create(_ context.Context, quiz *model.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quiz.ID == "" {
		quiz.ID = model.GenerateUUID()
	}
	quiz.AssignQuestionIDs()
	now := s.now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	s.seq++
	s.quizzes[quiz.ID] = &quizEntry{seq: s.seq, quiz: copyQuiz(*quiz)}
	return nil
}

func (s *QuizStore) FindByID(_ context.Context, id string) (*model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	q := copyQuiz(e.quiz)
	return &q, nil
}

func (s *QuizStore) ListActive(_ context.Context, filter model.QuizFilter) ([]model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*quizEntry, 0, len(s.quizzes))
	for _, e := range s.quizzes {
		if !e.quiz.IsActive {
			continue
		}
		if filter.Technology != "" && e.quiz.Technology != filter.Technology {
			continue
		}
		if filter.Level != "" && e.quiz.Level != filter.Level {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return newer(entries[i].quiz.CreatedAt, entries[i].seq, entries[j].quiz.CreatedAt, entries[j].seq)
	})

	quizzes := make([]model.Quiz, 0, len(entries))
	for _, e := range entries {
		quizzes = append(quizzes, copyQuiz(e.quiz))
	}
	return quizzes, nil
}

func (s *QuizStore) Update(_ context.Context, quiz *model.Quiz, columns ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.quizzes[quiz.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if len(columns) == 0 {
		return nil
	}

	quiz.AssignQuestionIDs()
	stored := &e.quiz
	for _, col := range columns {
		switch col {
		case "title":
			stored.Title = quiz.Title
		case "technology":
			stored.Technology = quiz.Technology
		case "level":
			stored.Level = quiz.Level
		case "questions":
			stored.Questions = copyQuestions(quiz.Questions)
		case "is_active":
			stored.IsActive = quiz.IsActive
		case "total_attempts":
			stored.TotalAttempts = quiz.TotalAttempts
		case "created_by":
			stored.CreatedBy = quiz.CreatedBy
		}
	}
	stored.UpdatedAt = s.now()
	quiz.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *QuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.quizzes, id)
	return nil
}

func (s *QuizStore) IncrementAttempts(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.quizzes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.quiz.TotalAttempts++
	return nil
}

type resultEntry struct {
	seq    int64
	result model.Result
}

// ResultStore 内存版结果仓储，只追加
type ResultStore struct {
	mu      sync.RWMutex
	seq     int64
	results []resultEntry
	now     func() time.Time
}

func NewResultStore() *ResultStore {
	return &ResultStore{now: time.Now}
}

func (s *ResultStore) Create(_ context.Context, result *model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result.ID == "" {
		result.ID = model.GenerateUUID()
	}
	now := s.now()
	result.CreatedAt = now
	result.UpdatedAt = now

	s.seq++
	stored := *result
	if result.Score != nil {
		score := *result.Score
		stored.Score = &score
	}
	s.results = append(s.results, resultEntry{seq: s.seq, result: stored})
	return nil
}

func (s *ResultStore) List(_ context.Context, filter model.ResultFilter) ([]model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]resultEntry, 0)
	for _, e := range s.results {
		if e.result.UserID != filter.UserID {
			continue
		}
		if filter.Technology != "" && e.result.Technology != filter.Technology {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		return newer(matched[i].result.CreatedAt, matched[i].seq, matched[j].result.CreatedAt, matched[j].seq)
	})

	results := make([]model.Result, 0, len(matched))
	for _, e := range matched {
		results = append(results, e.result)
	}
	return results, nil
}

// Len 已保存的结果数量
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

func newer(at time.Time, atSeq int64, bt time.Time, btSeq int64) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return atSeq > btSeq
}

func copyQuiz(q model.Quiz) model.Quiz {
	out := q
	out.Questions = copyQuestions(q.Questions)
	if q.CreatedBy != nil {
		createdBy := *q.CreatedBy
		out.CreatedBy = &createdBy
	}
	return out
}

func copyQuestions(qs []model.Question) []model.Question {
	if qs == nil {
		return nil
	}
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
