package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/lingobot/actionserver/core/types"
)

const (
	ConfigOpenWeatherAPIKey = "openweatherApiKey"
	ConfigOpenWeatherURL    = "openweatherUrl"
)

const defaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// TellWeatherAction reports the current temperature for a city via the
// OpenWeatherMap API.
type TellWeatherAction struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewTellWeather(config map[string]string) *TellWeatherAction {
	baseURL := config[ConfigOpenWeatherURL]
	if baseURL == "" {
		baseURL = defaultOpenWeatherURL
	}
	return &TellWeatherAction{
		apiKey:  config[ConfigOpenWeatherAPIKey],
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (a *TellWeatherAction) Run(ctx context.Context, tracker *types.Tracker) (types.ActionResult, error) {
	var result types.ActionResult

	city, ok := tracker.EntityValue("place")
	if !ok {
		city, ok = tracker.StringSlot("place")
	}
	if !ok {
		result.Utter("Which city do you want the weather for?")
		return result, nil
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", a.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return result, err
	}

	resp, err := a.http.Do(req)
	if err != nil {
		xlog.Error("Weather request failed", "city", city, "error", err)
		result.Utter("I can't reach the weather service right now. Please try again later.")
		return result, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Utter("I don't have any information about the weather there. Please give me some other city.")
		return result, nil
	}

	payload := struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		xlog.Error("Decoding weather response failed", "city", city, "error", err)
		result.Utter("I can't reach the weather service right now. Please try again later.")
		return result, nil
	}

	msg := fmt.Sprintf("Temperature now in %s: %.0f°C", city, payload.Main.Temp)
	if len(payload.Weather) > 0 {
		msg += fmt.Sprintf(", %s", payload.Weather[0].Description)
	}
	result.Utter(msg)
	return result, nil
}

func (a *TellWeatherAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        "action_tell_weather",
		Description: "Report the current temperature and conditions for a city.",
		Properties: map[string]jsonschema.Definition{
			"place": {
				Type:        jsonschema.String,
				Description: "The city to report the weather for.",
			},
		},
		Required: []string{"place"},
	}
}
