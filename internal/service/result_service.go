package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"quizapp_backend/internal/model"
	"quizapp_backend/internal/util"
)

type ResultService struct {
	Repo ResultStore
}

func NewResultService(repo ResultStore) *ResultService {
	return &ResultService{Repo: repo}
}

// CreateResultReq 数值字段用指针区分“未提供”和 0
type CreateResultReq struct {
	Title          string `json:"title"`
	Technology     string `json:"technology"`
	Level          string `json:"level"`
	TotalQuestions *int   `json:"totalQuestions"`
	Correct        *int   `json:"correct"`
	Wrong          *int   `json:"wrong"`
}

// UnmarshalJSON 数值字段同时接受数字和数字字符串（如 "10"），
// 无法转换的值按未提供处理，由 CreateResult 返回 Missing fields
func (r *CreateResultReq) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title          string          `json:"title"`
		Technology     string          `json:"technology"`
		Level          string          `json:"level"`
		TotalQuestions json.RawMessage `json:"totalQuestions"`
		Correct        json.RawMessage `json:"correct"`
		Wrong          json.RawMessage `json:"wrong"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = CreateResultReq{
		Title:          raw.Title,
		Technology:     raw.Technology,
		Level:          raw.Level,
		TotalQuestions: looseInt(raw.TotalQuestions),
		Correct:        looseInt(raw.Correct),
		Wrong:          looseInt(raw.Wrong),
	}
	return nil
}

func looseInt(raw json.RawMessage) *int {
	text := string(bytes.TrimSpace(raw))
	if text == "" || text == "null" {
		return nil
	}
	if text[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil
		}
		text = strings.TrimSpace(str)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	v := int(math.Trunc(f))
	return &v
}

func (s *ResultService) CreateResult(ctx context.Context, req CreateResultReq, callerID string) (*model.Result, error) {
	if callerID == "" {
		return nil, util.ErrUnauthorized
	}

	if req.Technology == "" || req.Level == "" || req.TotalQuestions == nil || req.Correct == nil {
		return nil, util.NewValidationError("Missing fields")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, util.NewValidationError("Missing title")
	}

	// 显式提供的 wrong 原样保存，不与 totalQuestions 校对
	wrong := max(0, *req.TotalQuestions-*req.Correct)
	if req.Wrong != nil {
		wrong = *req.Wrong
	}

	result := &model.Result{
		UserID:         callerID,
		Title:          title,
		Technology:     req.Technology,
		Level:          req.Level,
		TotalQuestions: *req.TotalQuestions,
		Correct:        *req.Correct,
		Wrong:          wrong,
	}
	if err := s.Repo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("create result: %w", err)
	}
	return result, nil
}

// ListResults 返回调用方自己的结果，technology 为空或 all（不区分大小写）时不过滤
func (s *ResultService) ListResults(ctx context.Context, technology, callerID string) ([]model.Result, error) {
	if callerID == "" {
		return nil, util.ErrUnauthorized
	}

	filter := model.ResultFilter{UserID: callerID}
	if technology != "" && !strings.EqualFold(technology, util.TechnologyAll) {
		filter.Technology = technology
	}

	results, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	if results == nil {
		results = []model.Result{}
	}
	return results, nil
}
