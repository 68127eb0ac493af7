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

const ConfigDictionaryURL = "dictionaryUrl"

const defaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// WordDefinitionAction looks up an English word in the free Dictionary
// API and utters its first definition.
type WordDefinitionAction struct {
	baseURL string
	http    *http.Client
}

func NewWordDefinition(config map[string]string) *WordDefinitionAction {
	baseURL := config[ConfigDictionaryURL]
	if baseURL == "" {
		baseURL = defaultDictionaryURL
	}
	return &WordDefinitionAction{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (a *WordDefinitionAction) Run(ctx context.Context, tracker *types.Tracker) (types.ActionResult, error) {
	var result types.ActionResult

	word, ok := tracker.EntityValue("word")
	if !ok {
		word, ok = tracker.StringSlot("word")
	}
	if !ok {
		result.Utter("Which word should I look up for you?")
		return result, nil
	}

	endpoint := strings.TrimRight(a.baseURL, "/") + "/" + url.PathEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return result, err
	}

	resp, err := a.http.Do(req)
	if err != nil {
		xlog.Error("Dictionary request failed", "word", word, "error", err)
		result.Utter("I can't reach the dictionary right now. Please try again later.")
		return result, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Utter(fmt.Sprintf("I couldn't find a definition for %q. Is it spelled right?", word))
		return result, nil
	}

	var payload []struct {
		Word     string `json:"word"`
		Meanings []struct {
			PartOfSpeech string `json:"partOfSpeech"`
			Definitions  []struct {
				Definition string `json:"definition"`
				Example    string `json:"example"`
			} `json:"definitions"`
		} `json:"meanings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload) == 0 {
		xlog.Error("Decoding dictionary response failed", "word", word, "error", err)
		result.Utter("I can't reach the dictionary right now. Please try again later.")
		return result, nil
	}

	entry := payload[0]
	for _, meaning := range entry.Meanings {
		if len(meaning.Definitions) == 0 {
			continue
		}
		def := meaning.Definitions[0]
		msg := fmt.Sprintf("%s (%s): %s", entry.Word, meaning.PartOfSpeech, def.Definition)
		result.Utter(msg)
		if def.Example != "" {
			result.Utter(fmt.Sprintf("For example: %q", def.Example))
		}
		return result, nil
	}

	result.Utter(fmt.Sprintf("I couldn't find a definition for %q. Is it spelled right?", word))
	return result, nil
}

func (a *WordDefinitionAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        "action_word_definition",
		Description: "Look up the definition of an English word, with an example sentence when one is available.",
		Properties: map[string]jsonschema.Definition{
			"word": {
				Type:        jsonschema.String,
				Description: "The word to define.",
			},
		},
		Required: []string{"word"},
	}
}
