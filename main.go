package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mudler/xlog"

	"github.com/lingobot/actionserver/core/state"
	"github.com/lingobot/actionserver/services"
	"github.com/lingobot/actionserver/services/actions"
	"github.com/lingobot/actionserver/webui"
)

var addr string
var openWeatherAPIKey string
var newsAPIKey string
var triviaURL string
var triviaAmount string
var triviaDifficulty string
var sessionDuration string

func init() {
	godotenv.Load()

	addr = os.Getenv("ACTIONSERVER_ADDR")
	openWeatherAPIKey = os.Getenv("ACTIONSERVER_OPENWEATHER_API_KEY")
	newsAPIKey = os.Getenv("ACTIONSERVER_NEWS_API_KEY")
	triviaURL = os.Getenv("ACTIONSERVER_TRIVIA_URL")
	triviaAmount = os.Getenv("ACTIONSERVER_TRIVIA_AMOUNT")
	triviaDifficulty = os.Getenv("ACTIONSERVER_TRIVIA_DIFFICULTY")
	sessionDuration = os.Getenv("ACTIONSERVER_SESSION_DURATION")

	if addr == "" {
		addr = ":5055"
	}
	if sessionDuration == "" {
		sessionDuration = "30m"
	}
	if openWeatherAPIKey == "" {
		xlog.Warn("ACTIONSERVER_OPENWEATHER_API_KEY not set, weather lookups will fail")
	}
	if newsAPIKey == "" {
		xlog.Warn("ACTIONSERVER_NEWS_API_KEY not set, news lookups will fail")
	}
}

func main() {
	duration, err := time.ParseDuration(sessionDuration)
	if err != nil {
		panic("invalid ACTIONSERVER_SESSION_DURATION: " + sessionDuration)
	}

	registry := services.Registry(map[string]string{
		actions.ConfigOpenWeatherAPIKey: openWeatherAPIKey,
		actions.ConfigNewsAPIKey:        newsAPIKey,
		actions.ConfigTriviaURL:         triviaURL,
		actions.ConfigTriviaAmount:      triviaAmount,
		actions.ConfigTriviaDifficulty:  triviaDifficulty,
	})

	pool := state.NewSessionPool(duration)
	defer pool.Stop()

	app := webui.NewApp(
		webui.WithActions(registry),
		webui.WithPool(pool),
	)

	xlog.Info("Action server listening", "addr", addr, "actions", len(registry))
	log.Fatal(app.Listen(addr))
}
