package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRecordAndHasPlayed(t *testing.T) {
	s := NewGameSession(PlayerId{ChannelID: "ch", ID: "42"}, 1)
	assert.Equal(t, StateNew, s.State.Kind)
	assert.False(t, s.HasPlayed(0))

	s.Record(0, 3)
	s.Record(1, 0)

	assert.True(t, s.HasPlayed(0))
	assert.True(t, s.HasPlayed(1))
	assert.False(t, s.HasPlayed(2))
	assert.Equal(t, 3, s.Score)
	assert.Len(t, s.Results, 2)
}

func TestSessionCloneIsIndependent(t *testing.T) {
	s := NewGameSession(PlayerId{ChannelID: "ch", ID: "42"}, 1)
	s.Record(0, 2)

	c := s.Clone()
	c.Record(1, 5)
	c.State = Answering(QuestionId{Topic: 1, Question: 0}, 1)

	assert.Equal(t, 2, s.Score)
	assert.Len(t, s.Results, 1)
	assert.Equal(t, StateNew, s.State.Kind)
}

// Сессии сериализуются в JSON для Redis-хранилища — структура обязана
// переживать полный цикл без потерь, включая payload состояния Answering.
func TestSessionSurvivesJSONRoundtrip(t *testing.T) {
	s := NewGameSession(PlayerId{ChannelID: "ch", ID: "42"}, 7)
	s.Record(0, 2)
	s.State = Answering(QuestionId{Topic: 1, Question: 3}, 1)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var restored GameSession
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *s, restored)
}
