// Package services wires the available actions into a registry the
// webhook can dispatch on.
package services

import (
	"fmt"

	"github.com/mudler/xlog"

	"github.com/lingobot/actionserver/core/types"
	"github.com/lingobot/actionserver/services/actions"
)

const (
	// Actions
	ActionStartQuiz      = "action_start_quiz"
	ActionAskQuestion    = "action_ask_question"
	ActionCheckAnswer    = "action_check_answer"
	ActionTellWeather    = "action_tell_weather"
	ActionCountryInfo    = "action_country_info"
	ActionWordDefinition = "action_word_definition"
	ActionTopNews        = "action_top_news"
)

var AvailableActions = []string{
	ActionStartQuiz,
	ActionAskQuestion,
	ActionCheckAnswer,
	ActionTellWeather,
	ActionCountryInfo,
	ActionWordDefinition,
	ActionTopNews,
}

// Action builds a single action by name.
func Action(name string, config map[string]string) (types.Action, error) {
	switch name {
	case ActionStartQuiz:
		return actions.NewStartQuiz(config), nil
	case ActionAskQuestion:
		return actions.NewAskQuestion(config), nil
	case ActionCheckAnswer:
		return actions.NewCheckAnswer(config), nil
	case ActionTellWeather:
		return actions.NewTellWeather(config), nil
	case ActionCountryInfo:
		return actions.NewCountryInfo(config), nil
	case ActionWordDefinition:
		return actions.NewWordDefinition(config), nil
	case ActionTopNews:
		return actions.NewTopNews(config), nil
	default:
		xlog.Error("Action not found", "name", name)
		return nil, fmt.Errorf("action not found: %s", name)
	}
}

// Registry builds every available action with the given config.
func Registry(config map[string]string) types.Actions {
	all := types.Actions{}
	for _, name := range AvailableActions {
		a, err := Action(name, config)
		if err != nil {
			continue
		}
		all = append(all, a)
	}
	return all
}
