// Package trivia は Open Trivia DB から4択問題を取得する。
package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"math/rand/v2"
	"net/http"
	"slices"
	"time"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"

	"github.com/cenkalti/backoff/v5"
)

//go:generate mockery --name Source --output ../service/mocks --outpkg mocks --case=underscore
type Source interface {
	FetchQuestion(ctx context.Context) (*model.TriviaQuestion, error)
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type Client struct {
	httpClient *http.Client
	url        string
	maxTries   uint
	shuffle    func(n int, swap func(i, j int))
}

type Option func(*Client)

// WithShuffle は選択肢の並べ替えを差し替える (テスト用)
func WithShuffle(f func(n int, swap func(i, j int))) Option {
	return func(c *Client) { c.shuffle = f }
}

func WithMaxTries(n uint) Option {
	return func(c *Client) { c.maxTries = n }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(url string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		maxTries:   2,
		shuffle:    rand.Shuffle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchQuestion は1問取得する。通信エラーと 5xx は短い間隔で再試行する。
func (c *Client) FetchQuestion(ctx context.Context) (*model.TriviaQuestion, error) {
	logger := middleware.GetLogger(ctx)

	res, err := backoff.Retry(ctx, func() (*apiResult, error) {
		return c.fetchOnce(ctx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		logger.Warn("Failed to fetch trivia question", "error", err, "url", c.url)
		return nil, fmt.Errorf("trivia.FetchQuestion: %w: %w", model.ErrUpstream, err)
	}

	q := c.toQuestion(res)
	logger.Debug("Fetched trivia question", "category", q.Category)
	return q, nil
}

func (c *Client) fetchOnce(ctx context.Context) (*apiResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if payload.ResponseCode != 0 || len(payload.Results) == 0 {
		return nil, backoff.Permanent(fmt.Errorf("no question returned (response_code=%d)", payload.ResponseCode))
	}
	res := payload.Results[0]
	if res.Question == "" || res.CorrectAnswer == "" || len(res.IncorrectAnswers) == 0 {
		return nil, backoff.Permanent(errors.New("incomplete question"))
	}
	return &res, nil
}

// toQuestion は HTML エンティティを戻し、正解を含めた選択肢を並べ替える
func (c *Client) toQuestion(res *apiResult) *model.TriviaQuestion {
	correct := html.UnescapeString(res.CorrectAnswer)
	options := make([]string, 0, len(res.IncorrectAnswers)+1)
	for _, a := range res.IncorrectAnswers {
		options = append(options, html.UnescapeString(a))
	}
	options = append(options, correct)
	c.shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return &model.TriviaQuestion{
		Category:     html.UnescapeString(res.Category),
		QuestionText: html.UnescapeString(res.Question),
		Options:      options,
		CorrectIndex: slices.Index(options, correct),
	}
}
