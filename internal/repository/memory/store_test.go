package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizapp_backend/internal/model"

	"gorm.io/gorm"
)

func TestQuizStoreListsActiveNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	older := &model.Quiz{Title: "old", Technology: "go", Level: "basic", IsActive: true}
	hidden := &model.Quiz{Title: "hidden", Technology: "go", Level: "basic", IsActive: false}
	newest := &model.Quiz{Title: "new", Technology: "go", Level: "advanced", IsActive: true}
	for _, q := range []*model.Quiz{older, hidden, newest} {
		if err := store.Create(ctx, q); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, _ := store.ListActive(ctx, model.QuizFilter{})
	if len(all) != 2 || all[0].Title != "new" || all[1].Title != "old" {
		t.Fatalf("expected [new old], got %+v", all)
	}

	basic, _ := store.ListActive(ctx, model.QuizFilter{Technology: "go", Level: "basic"})
	if len(basic) != 1 || basic[0].Title != "old" {
		t.Fatalf("expected only old, got %+v", basic)
	}
}

func TestQuizStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore()
	q := &model.Quiz{Title: "t", IsActive: true, Questions: []model.Question{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a"}}}
	_ = store.Create(ctx, q)
	if q.Questions[0].ID == "" {
		t.Fatalf("expected question id assigned")
	}

	got, _ := store.FindByID(ctx, q.ID)
	got.Questions[0].Options[0] = "mutated"

	again, _ := store.FindByID(ctx, q.ID)
	if again.Questions[0].Options[0] != "a" {
		t.Fatalf("store state leaked through returned copy")
	}
}

func TestQuizStoreUpdateOnlySelectedColumns(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore()
	q := &model.Quiz{Title: "t", Technology: "go", IsActive: true}
	_ = store.Create(ctx, q)
	_ = store.IncrementAttempts(ctx, q.ID)

	stale := *q
	stale.Title = "renamed"
	stale.TotalAttempts = 0
	if err := store.Update(ctx, &stale, "title"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := store.FindByID(ctx, q.ID)
	if got.Title != "renamed" || got.TotalAttempts != 1 {
		t.Fatalf("expected title changed and attempts kept, got %+v", got)
	}
}

func TestQuizStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore()
	if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if err := store.IncrementAttempts(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestResultStoreFiltersByUserAndTechnology(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore()

	_ = store.Create(ctx, &model.Result{UserID: "u1", Technology: "go", Title: "first"})
	_ = store.Create(ctx, &model.Result{UserID: "u2", Technology: "go", Title: "other user"})
	_ = store.Create(ctx, &model.Result{UserID: "u1", Technology: "rust", Title: "second"})
	_ = store.Create(ctx, &model.Result{UserID: "u1", Technology: "go", Title: "third"})

	mine, _ := store.List(ctx, model.ResultFilter{UserID: "u1"})
	if len(mine) != 3 || mine[0].Title != "third" || mine[2].Title != "first" {
		t.Fatalf("expected newest first for u1, got %+v", mine)
	}

	goOnly, _ := store.List(ctx, model.ResultFilter{UserID: "u1", Technology: "go"})
	if len(goOnly) != 2 || goOnly[0].Title != "third" || goOnly[1].Title != "first" {
		t.Fatalf("expected two go results, got %+v", goOnly)
	}
	if store.Len() != 4 {
		t.Fatalf("expected 4 stored results, got %d", store.Len())
	}
}
