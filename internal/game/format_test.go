package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSubstitutesPlaceholders(t *testing.T) {
	g := mustParseTestGame(t)

	tests := []struct {
		name    string
		message ResponseMessage
		want    string
	}{
		{"greeting", Greeting("#TEST_GAME"), "Hello! Today we play #TEST_GAME. Want to join?"},
		{"rules", Rules([]string{"topic1", "topic2"}), "Choose a topic from: topic1, topic2. Answer a question. Get your score when all topics are complete"},
		{"question", AnswerQuestion("q11"), "Next question: q11"},
		{"retry limits", PleaseRetryLimits(1), "That is incorrect. Try again. 1 attempts left"},
		{"correct", Correct(3), "That is correct. Your score: 3"},
		{"complete", GameComplete(5), "Game is complete. Your score: 5"},
		{"rephrase", Rephrase(), "I don't understand"},
		{"quit", Quit(), "Ok... Goodbye!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Format(tt.message))
		})
	}
}

func TestFormatUsesTemplatesFromDefinition(t *testing.T) {
	doc := `{
	  "id": 7,
	  "name": "g",
	  "topics": [{"key": "k", "questions": [{"text": "q", "answers": ["a"]}]}],
	  "responses": {"greeting": "Привет! Играем в #NAME"}
	}`
	g, err := ParseGame([]byte(doc))
	assert.NoError(t, err)

	assert.Equal(t, "Привет! Играем в g", g.Format(Greeting("g")))
	// Остальные шаблоны добиты умолчаниями при загрузке.
	assert.Equal(t, "Choose the next topic", g.Format(ChooseNextTopic()))
}
