package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runFromStart прогоняет сценарий с чистой сессией и возвращает все события.
func runFromStart(t *testing.T, g *Game, inputs []string) (*GameSession, []ResponseMessage) {
	t.Helper()
	engine := Engine{}
	session := NewGameSession(PlayerId{ChannelID: "1", ID: "1"}, g.ID)
	var events []ResponseMessage
	for _, in := range inputs {
		events = append(events, engine.Step(g, session, Normalize(in))...)
	}
	return session, events
}

// runInSession начинает диалог ("hello", "yes") и отбрасывает события вступления.
func runInSession(t *testing.T, g *Game, inputs []string) (*GameSession, []ResponseMessage) {
	t.Helper()
	session, events := runFromStart(t, g, append([]string{"hello", "yes"}, inputs...))
	return session, events[2:]
}

func assertInvariants(t *testing.T, s *GameSession) {
	t.Helper()
	sum := 0
	seen := map[TopicId]bool{}
	for _, r := range s.Results {
		sum += r.Score
		assert.False(t, seen[r.TopicID], "тема %d записана дважды", r.TopicID)
		seen[r.TopicID] = true
	}
	assert.Equal(t, sum, s.Score, "счет должен равняться сумме результатов")
}

func TestEngineSendsRulesIfPlayerWantsToPlay(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runFromStart(t, g, []string{"Hello", "yes"})

	assert.Equal(t, []ResponseMessage{
		Greeting("#TEST_GAME"),
		Rules([]string{"topic1", "topic2"}),
	}, events)
	assert.Equal(t, StateChoosingTopic, session.State.Kind)
}

func TestEngineAsksToRephraseUnclearDecision(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runFromStart(t, g, []string{"Hello", "maybe"})

	assert.Equal(t, []ResponseMessage{Greeting("#TEST_GAME"), Rephrase()}, events)
	assert.Equal(t, StateDeciding, session.State.Kind)
}

func TestEngineStopsReplyingOnDecline(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runFromStart(t, g, []string{"Hello", "no", "hey", "hey"})

	assert.Equal(t, []ResponseMessage{Greeting("#TEST_GAME"), Quit()}, events)
	assert.Equal(t, StateTerminated, session.State.Kind)
}

func TestEngineStopsReplyingOnStopWord(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runFromStart(t, g, []string{"Hello", "stop", "hey", "hey"})

	assert.Equal(t, []ResponseMessage{Greeting("#TEST_GAME"), Quit()}, events)
	assert.Equal(t, StateTerminated, session.State.Kind)
}

func TestTerminatedSessionIsNeverMutated(t *testing.T) {
	g := mustParseTestGame(t)
	session, _ := runInSession(t, g, []string{"topic1", "ans11", "стоп"})
	require.Equal(t, StateTerminated, session.State.Kind)
	before := session.Clone()

	events := Engine{}.Step(g, session, Normalize("yes"))

	assert.Empty(t, events)
	assert.Equal(t, before, session)
}

func TestEngineSendsQuestionWhenUserChoosesTopic(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runInSession(t, g, []string{"topic1"})

	assert.Equal(t, []ResponseMessage{AnswerQuestion("q11")}, events)
	assert.Equal(t, Answering(QuestionId{Topic: 0, Question: 0}, 0), session.State)
}

func TestCorrectAnswerIncreasesScore(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runInSession(t, g, []string{"topic1", "ans11"})

	assert.Equal(t, []ResponseMessage{
		AnswerQuestion("q11"),
		Correct(1),
		ChooseNextTopic(),
	}, events)
	assert.Equal(t, 1, session.Score)
	assertInvariants(t, session)
}

func TestAttemptsRunOutAndTopicIsConsumed(t *testing.T) {
	g := mustParseTestGame(t) // max_attempt = 2
	session, events := runInSession(t, g, []string{"topic1", "no way", "not it"})

	assert.Equal(t, []ResponseMessage{
		AnswerQuestion("q11"),
		PleaseRetryLimits(1),
		Incorrect(),
		ChooseNextTopic(),
	}, events)
	// Тема потрачена с нулем очков.
	assert.Equal(t, []TopicResult{{TopicID: 0, Score: 0}}, session.Results)
	assert.Equal(t, 0, session.Score)
	assertInvariants(t, session)
}

func TestUnlimitedRetriesWhenMaxAttemptAbsent(t *testing.T) {
	g := mustParseTestGame(t)
	g.MaxAttempt = nil

	session, events := runInSession(t, g, []string{"topic1", "wrong1", "wrong2", "wrong3", "wrong4"})

	assert.Equal(t, []ResponseMessage{
		AnswerQuestion("q11"),
		PleaseRetry(),
		PleaseRetry(),
		PleaseRetry(),
		PleaseRetry(),
	}, events)
	// Счетчик попыток заморожен, тема не потрачена.
	assert.Equal(t, Answering(QuestionId{Topic: 0, Question: 0}, 0), session.State)
	assert.Empty(t, session.Results)
}

func TestFinalScoreWhenAllTopicsResolved(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runInSession(t, g, []string{"topic1", "ans11", "topic2", "ans2"})

	assert.Equal(t, []ResponseMessage{
		AnswerQuestion("q11"),
		Correct(1),
		ChooseNextTopic(),
		AnswerQuestion("q21"),
		Correct(2),
		GameComplete(2),
	}, events)
	assert.Equal(t, StateComplete, session.State.Kind)
	assertInvariants(t, session)
}

func TestCompleteSessionKeepsAnnouncingFinalScore(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runInSession(t, g, []string{"topic1", "ans11", "topic2", "ans2", "hello", "topic1"})

	tail := events[len(events)-2:]
	assert.Equal(t, []ResponseMessage{GameComplete(2), GameComplete(2)}, tail)
	assert.Equal(t, StateComplete, session.State.Kind)
	assert.Equal(t, 2, session.Score)
}

func TestUserCannotChooseSameTopicTwice(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runInSession(t, g, []string{"topic1", "ans11", "topic1"})

	assert.Equal(t, []ResponseMessage{
		AnswerQuestion("q11"),
		Correct(1),
		ChooseNextTopic(),
		AlreadyAnswered(),
	}, events)
	assertInvariants(t, session)
}

func TestUnknownTopicAsksToRephrase(t *testing.T) {
	g := mustParseTestGame(t)
	session, events := runInSession(t, g, []string{"something else entirely"})

	assert.Equal(t, []ResponseMessage{Rephrase()}, events)
	assert.Equal(t, StateChoosingTopic, session.State.Kind)
}

func TestStopWordWinsOverStateLogic(t *testing.T) {
	g := mustParseTestGame(t)
	// "стоп" в состоянии Answering не трактуется как ответ на вопрос.
	session, events := runInSession(t, g, []string{"topic1", "стоп"})

	assert.Equal(t, []ResponseMessage{AnswerQuestion("q11"), Quit()}, events)
	assert.Equal(t, StateTerminated, session.State.Kind)
	assert.Empty(t, session.Results)
}
