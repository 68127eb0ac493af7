package actions

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/lingobot/actionserver/core/quiz"
	"github.com/lingobot/actionserver/core/types"
	"github.com/lingobot/actionserver/pkg/opentdb"
)

// Slots shared by the three quiz actions. They live in the session store
// owned by the dialogue engine; the actions only read them at entry and
// return mutations.
const (
	SlotTriviaData    = "trivia_data"
	SlotScore         = "score"
	SlotCorrectLetter = "correct_letter"
	SlotCorrectAnswer = "correct_answer"
	SlotAnswer        = "answer"
)

// Config keys understood by the quiz actions.
const (
	ConfigTriviaURL        = "triviaUrl"
	ConfigTriviaAmount     = "triviaAmount"
	ConfigTriviaDifficulty = "triviaDifficulty"
)

const defaultBatchSize = 10

// QuestionFetcher retrieves one batch of questions from the trivia
// source.
type QuestionFetcher interface {
	Fetch(ctx context.Context, amount int, difficulty string) (quiz.Queue, error)
}

// StartQuizAction fetches a fresh batch of questions and stores it in the
// session. Starting while a game is still running is a no-op, so a
// duplicate trigger cannot clobber the remaining questions.
type StartQuizAction struct {
	fetcher    QuestionFetcher
	amount     int
	difficulty string
}

func NewStartQuiz(config map[string]string) *StartQuizAction {
	amount := defaultBatchSize
	if n, err := strconv.Atoi(config[ConfigTriviaAmount]); err == nil && n > 0 {
		amount = n
	}
	return &StartQuizAction{
		fetcher:    opentdb.NewClient(config[ConfigTriviaURL]),
		amount:     amount,
		difficulty: config[ConfigTriviaDifficulty],
	}
}

// WithFetcher swaps the question source, keeping batch settings.
func (a *StartQuizAction) WithFetcher(f QuestionFetcher) *StartQuizAction {
	a.fetcher = f
	return a
}

func (a *StartQuizAction) Run(ctx context.Context, tracker *types.Tracker) (types.ActionResult, error) {
	var result types.ActionResult

	if v, ok := tracker.Slot(SlotTriviaData); ok {
		queue, err := quiz.DecodeSlot(v)
		if err == nil && !queue.Empty() {
			result.Utter("The quiz is already running! Say \"next question\" to keep going.")
			return result, nil
		}
	}

	queue, err := a.fetcher.Fetch(ctx, a.amount, a.difficulty)
	if err != nil {
		xlog.Error("Fetching trivia questions failed", "error", err)
		result.Utter("I couldn't reach the trivia service right now. Please try again in a bit.")
		return result, nil
	}

	result.SetSlot(SlotTriviaData, queue.EncodeSlot())
	result.SetSlot(SlotScore, 0)
	result.Utter(fmt.Sprintf("Let's play! I have %d questions for you. Say \"next question\" when you are ready.", len(queue)))
	return result, nil
}

func (a *StartQuizAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        "action_start_quiz",
		Description: "Start a trivia quiz by fetching a fresh batch of questions. Does nothing if a quiz is already in progress.",
		Properties: map[string]jsonschema.Definition{
			"difficulty": {
				Type:        jsonschema.String,
				Description: "Optional question difficulty: easy, medium or hard.",
			},
		},
	}
}

// AskQuestionAction serves the next question from the queue, or wraps up
// the game when the queue is exhausted.
type AskQuestionAction struct {
	engine *quiz.Engine
}

func NewAskQuestion(config map[string]string) *AskQuestionAction {
	return NewAskQuestionWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewAskQuestionWithSource builds the action around a specific random
// source, pinning the option shuffle.
func NewAskQuestionWithSource(src rand.Source) *AskQuestionAction {
	return &AskQuestionAction{engine: quiz.NewEngine(src)}
}

func (a *AskQuestionAction) Run(ctx context.Context, tracker *types.Tracker) (types.ActionResult, error) {
	var result types.ActionResult

	slotValue, _ := tracker.Slot(SlotTriviaData)
	queue, err := quiz.DecodeSlot(slotValue)
	if err != nil {
		xlog.Error("Decoding trivia queue failed", "error", err)
		result.Utter("Something went wrong with the quiz state. Say \"start quiz\" to begin a new game.")
		return result, nil
	}

	presented, rest, ok := a.engine.Next(queue)
	if !ok {
		// the only path that resets the score
		result.Utter(fmt.Sprintf("That was the last question! Final score: %d. Say \"start quiz\" to play again.", tracker.IntSlot(SlotScore)))
		result.SetSlot(SlotTriviaData, nil)
		result.SetSlot(SlotScore, 0)
		result.SetSlot(SlotCorrectLetter, nil)
		result.SetSlot(SlotCorrectAnswer, nil)
		return result, nil
	}

	result.Utter(presented.Text())
	result.SetSlot(SlotTriviaData, rest.EncodeSlot())
	result.SetSlot(SlotCorrectLetter, presented.CorrectLabel)
	result.SetSlot(SlotCorrectAnswer, presented.CorrectAnswer)
	return result, nil
}

func (a *AskQuestionAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        "action_ask_question",
		Description: "Ask the next trivia question with four shuffled options labeled A to D, or report the final score when no questions remain.",
	}
}

// CheckAnswerAction evaluates the user's reply against the stored answer
// label and updates the score.
type CheckAnswerAction struct{}

func NewCheckAnswer(config map[string]string) *CheckAnswerAction {
	return &CheckAnswerAction{}
}

func (a *CheckAnswerAction) Run(ctx context.Context, tracker *types.Tracker) (types.ActionResult, error) {
	var result types.ActionResult

	userAnswer, ok := tracker.StringSlot(SlotAnswer)
	if !ok {
		userAnswer = tracker.LatestMessage.Text
	}
	expected, okExpected := tracker.StringSlot(SlotCorrectLetter)
	if userAnswer == "" || !okExpected {
		result.Utter("I'm missing some information. Ask me for a question first!")
		return result, nil
	}

	correctText, _ := tracker.StringSlot(SlotCorrectAnswer)
	outcome := quiz.Check(userAnswer, expected, tracker.IntSlot(SlotScore))
	if outcome.Correct {
		result.Utter(fmt.Sprintf("Correct! The answer was %s) %s. Your score: %d.", expected, correctText, outcome.Score))
	} else {
		result.Utter(fmt.Sprintf("Not quite. The correct answer was %s) %s. Your score: %d.", expected, correctText, outcome.Score))
	}

	result.SetSlot(SlotScore, outcome.Score)
	// the question is spent, a new one has to be asked before the next check
	result.SetSlot(SlotCorrectLetter, nil)
	result.SetSlot(SlotCorrectAnswer, nil)
	result.SetSlot(SlotAnswer, nil)
	return result, nil
}

func (a *CheckAnswerAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        "action_check_answer",
		Description: "Check the user's answer to the current trivia question and report the running score.",
		Properties: map[string]jsonschema.Definition{
			"answer": {
				Type:        jsonschema.String,
				Description: "The answer letter the user picked (A, B, C or D).",
			},
		},
		Required: []string{"answer"},
	}
}
