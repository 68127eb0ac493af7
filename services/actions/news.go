package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/lingobot/actionserver/core/types"
)

const (
	ConfigNewsAPIKey = "newsApiKey"
	ConfigNewsURL    = "newsUrl"
)

const defaultNewsURL = "https://newsapi.org/v2/top-headlines"

const maxHeadlines = 3

// TopNewsAction fetches the current top headlines from NewsAPI.
type TopNewsAction struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewTopNews(config map[string]string) *TopNewsAction {
	baseURL := config[ConfigNewsURL]
	if baseURL == "" {
		baseURL = defaultNewsURL
	}
	return &TopNewsAction{
		apiKey:  config[ConfigNewsAPIKey],
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (a *TopNewsAction) Run(ctx context.Context, tracker *types.Tracker) (types.ActionResult, error) {
	var result types.ActionResult

	topic, _ := tracker.EntityValue("topic")

	params := url.Values{}
	params.Set("apiKey", a.apiKey)
	if topic != "" {
		params.Set("q", topic)
	} else {
		params.Set("country", "us")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return result, err
	}

	resp, err := a.http.Do(req)
	if err != nil {
		xlog.Error("News request failed", "error", err)
		result.Utter("I can't fetch the news right now. Please try again later.")
		return result, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Utter("I can't fetch the news right now. Please try again later.")
		return result, nil
	}

	payload := struct {
		Articles []struct {
			Title  string `json:"title"`
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		xlog.Error("Decoding news response failed", "error", err)
		result.Utter("I can't fetch the news right now. Please try again later.")
		return result, nil
	}

	if len(payload.Articles) == 0 {
		result.Utter("No headlines found at the moment. Try a different topic?")
		return result, nil
	}

	var b strings.Builder
	b.WriteString("Here are the top headlines:")
	for i, article := range payload.Articles {
		if i == maxHeadlines {
			break
		}
		fmt.Fprintf(&b, "\n- %s (%s)", article.Title, article.Source.Name)
	}
	result.Utter(b.String())
	return result, nil
}

func (a *TopNewsAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        "action_top_news",
		Description: "Report the current top news headlines, optionally filtered by topic.",
		Properties: map[string]jsonschema.Definition{
			"topic": {
				Type:        jsonschema.String,
				Description: "Optional topic to search headlines for.",
			},
		},
	}
}
