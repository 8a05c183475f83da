package game

import (
	"strconv"
	"strings"
)

// ResponseTemplates — по одному шаблону на каждый тег ответа.
// Плейсхолдеры: #NAME, #TOPICS, #QUESTION, #LEFT, #SCORE.
type ResponseTemplates struct {
	Greeting          string `json:"greeting"`
	Rephrase          string `json:"rephrase"`
	Rules             string `json:"rules"`
	AnswerQuestion    string `json:"answer_question"`
	PleaseRetry       string `json:"please_retry"`
	PleaseRetryLimits string `json:"please_retry_limits"`
	Incorrect         string `json:"incorrect"`
	Correct           string `json:"correct"`
	GameComplete      string `json:"game_complete"`
	ChooseNextTopic   string `json:"choose_next_topic"`
	AlreadyAnswered   string `json:"already_answered"`
	Quit              string `json:"quit"`
}

// Пропущенные в определении шаблоны добиваются значениями по умолчанию
// на этапе загрузки, чтобы рантайм никогда не остался без текста.
func (t *ResponseTemplates) applyDefaults() {
	def := defaultResponseTemplates()
	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}
	fill(&t.Greeting, def.Greeting)
	fill(&t.Rephrase, def.Rephrase)
	fill(&t.Rules, def.Rules)
	fill(&t.AnswerQuestion, def.AnswerQuestion)
	fill(&t.PleaseRetry, def.PleaseRetry)
	fill(&t.PleaseRetryLimits, def.PleaseRetryLimits)
	fill(&t.Incorrect, def.Incorrect)
	fill(&t.Correct, def.Correct)
	fill(&t.GameComplete, def.GameComplete)
	fill(&t.ChooseNextTopic, def.ChooseNextTopic)
	fill(&t.AlreadyAnswered, def.AlreadyAnswered)
	fill(&t.Quit, def.Quit)
}

func defaultResponseTemplates() ResponseTemplates {
	return ResponseTemplates{
		Greeting:          "Hello! Today we play #NAME. Want to join?",
		Rephrase:          "I don't understand",
		Rules:             "Choose a topic from: #TOPICS. Answer a question. Get your score when all topics are complete",
		AnswerQuestion:    "Next question: #QUESTION",
		PleaseRetry:       "That is incorrect. Try again",
		PleaseRetryLimits: "That is incorrect. Try again. #LEFT attempts left",
		Incorrect:         "That is incorrect",
		Correct:           "That is correct. Your score: #SCORE",
		GameComplete:      "Game is complete. Your score: #SCORE",
		ChooseNextTopic:   "Choose the next topic",
		AlreadyAnswered:   "You already answered this topic",
		Quit:              "Ok... Goodbye!",
	}
}

var _ Formatter = (*Game)(nil)

// Format рендерит событие по шаблону игры. Game сам является Formatter-ом:
// тексты ответов — часть определения викторины.
func (g *Game) Format(message ResponseMessage) string {
	t := &g.Responses
	switch message.Tag {
	case TagGreeting:
		return strings.ReplaceAll(t.Greeting, "#NAME", message.Name)
	case TagRephrase:
		return t.Rephrase
	case TagRules:
		return strings.ReplaceAll(t.Rules, "#TOPICS", strings.Join(message.Topics, ", "))
	case TagAnswerQuestion:
		return strings.ReplaceAll(t.AnswerQuestion, "#QUESTION", message.Question)
	case TagPleaseRetry:
		return t.PleaseRetry
	case TagPleaseRetryLimits:
		return strings.ReplaceAll(t.PleaseRetryLimits, "#LEFT", strconv.Itoa(message.AttemptsLeft))
	case TagIncorrect:
		return t.Incorrect
	case TagCorrect:
		return strings.ReplaceAll(t.Correct, "#SCORE", strconv.Itoa(message.Score))
	case TagGameComplete:
		return strings.ReplaceAll(t.GameComplete, "#SCORE", strconv.Itoa(message.Score))
	case TagChooseNextTopic:
		return t.ChooseNextTopic
	case TagAlreadyAnswered:
		return t.AlreadyAnswered
	case TagQuit:
		return t.Quit
	}
	return ""
}
