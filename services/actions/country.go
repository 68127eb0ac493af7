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

const ConfigCountriesURL = "countriesUrl"

const defaultCountriesURL = "https://restcountries.com/v3.1/name"

// CountryInfoAction answers basic facts about a country via the REST
// Countries API.
type CountryInfoAction struct {
	baseURL string
	http    *http.Client
}

func NewCountryInfo(config map[string]string) *CountryInfoAction {
	baseURL := config[ConfigCountriesURL]
	if baseURL == "" {
		baseURL = defaultCountriesURL
	}
	return &CountryInfoAction{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (a *CountryInfoAction) Run(ctx context.Context, tracker *types.Tracker) (types.ActionResult, error) {
	var result types.ActionResult

	country, ok := tracker.EntityValue("country")
	if !ok {
		country, ok = tracker.StringSlot("country")
	}
	if !ok {
		result.Utter("Which country are you curious about?")
		return result, nil
	}

	endpoint := strings.TrimRight(a.baseURL, "/") + "/" + url.PathEscape(country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return result, err
	}

	resp, err := a.http.Do(req)
	if err != nil {
		xlog.Error("Country request failed", "country", country, "error", err)
		result.Utter("I can't look up countries right now. Please try again later.")
		return result, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Utter(fmt.Sprintf("I couldn't find a country called %q. Maybe check the spelling?", country))
		return result, nil
	}

	var payload []struct {
		Name struct {
			Common string `json:"common"`
		} `json:"name"`
		Capital    []string `json:"capital"`
		Region     string   `json:"region"`
		Population int64    `json:"population"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload) == 0 {
		xlog.Error("Decoding country response failed", "country", country, "error", err)
		result.Utter("I can't look up countries right now. Please try again later.")
		return result, nil
	}

	info := payload[0]
	capital := "no capital on record"
	if len(info.Capital) > 0 {
		capital = "capital " + info.Capital[0]
	}
	result.Utter(fmt.Sprintf("%s is in %s, %s, population %d.",
		info.Name.Common, info.Region, capital, info.Population))
	return result, nil
}

func (a *CountryInfoAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        "action_country_info",
		Description: "Report the capital, region and population of a country.",
		Properties: map[string]jsonschema.Definition{
			"country": {
				Type:        jsonschema.String,
				Description: "The country to look up.",
			},
		},
		Required: []string{"country"},
	}
}
