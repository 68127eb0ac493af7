// Package opentdb is a thin client for the Open Trivia Database
// (https://opentdb.com), the question source for the quiz actions.
package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lingobot/actionserver/core/quiz"
)

const DefaultBaseURL = "https://opentdb.com/api.php"

// ErrSourceUnavailable covers every way a fetch can go wrong: transport
// errors, non-200 statuses and payloads without usable questions. Callers
// recover by telling the user and leaving the session untouched.
var ErrSourceUnavailable = errors.New("trivia source unavailable")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Fetch retrieves one batch of multiple-choice questions. difficulty may
// be empty for a mixed batch. Question and answer text is HTML-unescaped;
// the distractors keep the source order, shuffling is the quiz engine's
// job.
func (c *Client) Fetch(ctx context.Context, amount int, difficulty string) (quiz.Queue, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	query := u.Query()
	query.Set("amount", strconv.Itoa(amount))
	query.Set("type", "multiple")
	if difficulty != "" {
		query.Set("difficulty", difficulty)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if payload.ResponseCode != 0 || len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: no questions in response", ErrSourceUnavailable)
	}

	queue := make(quiz.Queue, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.Question == "" || r.CorrectAnswer == "" || len(r.IncorrectAnswers) != 3 {
			return nil, fmt.Errorf("%w: malformed question record", ErrSourceUnavailable)
		}
		distractors := make([]string, 0, len(r.IncorrectAnswers))
		for _, d := range r.IncorrectAnswers {
			distractors = append(distractors, html.UnescapeString(d))
		}
		queue = append(queue, quiz.Question{
			Prompt:        html.UnescapeString(r.Question),
			CorrectAnswer: html.UnescapeString(r.CorrectAnswer),
			Distractors:   distractors,
		})
	}
	return queue, nil
}
