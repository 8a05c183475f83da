package game

// GameId — идентификатор игры из файла определения.
type GameId uint32

// ChannelId — идентификатор страницы/аккаунта платформы (id получателя вебхука).
type ChannelId = string

// Channel связывает страницу мессенджера с игрой и токеном доступа.
type Channel struct {
	Name      string    `json:"name"`
	ChannelID ChannelId `json:"channel_id"`
	Token     string    `json:"token"`
	GameID    *GameId   `json:"game_id,omitempty"`
}

// PlayerId — стабильный идентификатор игрока в рамках канала.
// Вместе с GameId образует ключ сессии.
type PlayerId struct {
	ChannelID string `json:"channel_id"`
	ID        string `json:"id"`
}

// PlayerMessage — входящее сообщение игрока (сырой текст, до нормализации).
type PlayerMessage struct {
	PlayerID PlayerId
	Text     string
}

// TopicId — индекс темы внутри игры.
type TopicId int

// QuestionId — компактная ссылка на вопрос (тема, вопрос).
// Валидна только для того экземпляра Game, из которого была получена.
type QuestionId struct {
	Topic    TopicId `json:"topic"`
	Question int     `json:"question"`
}

// StateKind перечисляет состояния диалога.
type StateKind string

const (
	StateNew           StateKind = "new"
	StateDeciding      StateKind = "deciding"
	StateChoosingTopic StateKind = "choosing_topic"
	StateAnswering     StateKind = "answering"
	StateComplete      StateKind = "complete"
	StateTerminated    StateKind = "terminated"
)

// SessionState — состояние диалога с полезной нагрузкой.
// Question и Attempt заполнены только при Kind == StateAnswering.
type SessionState struct {
	Kind     StateKind  `json:"kind"`
	Question QuestionId `json:"question,omitempty"`
	Attempt  int        `json:"attempt,omitempty"`
}

// Answering собирает состояние ответа на вопрос.
func Answering(question QuestionId, attempt int) SessionState {
	return SessionState{Kind: StateAnswering, Question: question, Attempt: attempt}
}

// TopicResult — результат по закрытой теме.
type TopicResult struct {
	TopicID TopicId `json:"topic_id"`
	Score   int     `json:"score"`
}

// GameSession — состояние разговора одного игрока в одной игре.
// Мутируется только движком; score всегда равен сумме очков по results.
type GameSession struct {
	PlayerID PlayerId      `json:"player_id"`
	GameID   GameId        `json:"game_id"`
	State    SessionState  `json:"state"`
	Results  []TopicResult `json:"results,omitempty"`
	Score    int           `json:"score"`
}

// NewGameSession создает пустую сессию в начальном состоянии.
func NewGameSession(playerID PlayerId, gameID GameId) *GameSession {
	return &GameSession{
		PlayerID: playerID,
		GameID:   gameID,
		State:    SessionState{Kind: StateNew},
	}
}

// Record фиксирует результат по теме и добавляет очки к общему счету.
// Тема после этого считается сыгранной и не может быть выбрана снова.
func (s *GameSession) Record(topicID TopicId, score int) {
	s.Score += score
	s.Results = append(s.Results, TopicResult{TopicID: topicID, Score: score})
}

// HasPlayed сообщает, закрыта ли уже тема в этой сессии.
func (s *GameSession) HasPlayed(topicID TopicId) bool {
	for _, r := range s.Results {
		if r.TopicID == topicID {
			return true
		}
	}
	return false
}

// Clone возвращает независимую копию сессии.
func (s *GameSession) Clone() *GameSession {
	c := *s
	if s.Results != nil {
		c.Results = append([]TopicResult(nil), s.Results...)
	}
	return &c
}
