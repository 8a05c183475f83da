package game

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Game — неизменяемое определение одной викторины. Загружается один раз
// и разделяется по ссылке между всеми сессиями, поэтому методы не имеют
// побочных эффектов и безопасны для конкурентного вызова.
type Game struct {
	ID             GameId            `json:"id"`
	Name           string            `json:"name"`
	GenericAnswers GenericAnswers    `json:"generic_answers"`
	Topics         []Topic           `json:"topics"`
	MaxAttempt     *int              `json:"max_attempt,omitempty"`
	Responses      ResponseTemplates `json:"responses"`
}

// Topic — категория с вопросами. key — цель сопоставления свободного текста.
type Topic struct {
	Name      string     `json:"name"`
	Key       string     `json:"key"`
	Questions []Question `json:"questions"`
	Bonus     int        `json:"bonus"`
}

// Question — текст вопроса и множество принимаемых ответов.
type Question struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// GenericAnswers — общие словари подтверждения, отказа и выхода.
type GenericAnswers struct {
	Yes  []string `json:"yes"`
	No   []string `json:"no"`
	Stop []string `json:"stop"`
}

func defaultGenericAnswers() GenericAnswers {
	return GenericAnswers{
		Yes:  []string{"yes", "да"},
		No:   []string{"no", "нет"},
		Stop: []string{"stop", "стоп"},
	}
}

// ParseGame разбирает JSON-документ игры, подставляет словари и шаблоны
// по умолчанию и проверяет, что определение пригодно к игре.
// Любая проблема здесь — ошибка конфигурации на старте, не рантайма.
func ParseGame(data []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("разбор определения игры: %w", err)
	}
	g.applyDefaults()
	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("определение игры %d: %w", g.ID, err)
	}
	return &g, nil
}

func (g *Game) applyDefaults() {
	def := defaultGenericAnswers()
	if len(g.GenericAnswers.Yes) == 0 {
		g.GenericAnswers.Yes = def.Yes
	}
	if len(g.GenericAnswers.No) == 0 {
		g.GenericAnswers.No = def.No
	}
	if len(g.GenericAnswers.Stop) == 0 {
		g.GenericAnswers.Stop = def.Stop
	}
	g.Responses.applyDefaults()
}

func (g *Game) validate() error {
	if g.ID == 0 {
		return fmt.Errorf("отсутствует id")
	}
	if g.Name == "" {
		return fmt.Errorf("отсутствует name")
	}
	if len(g.Topics) == 0 {
		return fmt.Errorf("нет ни одной темы")
	}
	for i, t := range g.Topics {
		if t.Key == "" {
			return fmt.Errorf("тема %d: пустой key", i)
		}
		if len(t.Questions) == 0 {
			return fmt.Errorf("тема %q: нет вопросов", t.Key)
		}
	}
	if g.MaxAttempt != nil && *g.MaxAttempt < 1 {
		return fmt.Errorf("max_attempt должен быть >= 1")
	}
	return nil
}

// IsYes проверяет точное вхождение нормализованного текста в словарь согласия.
func (g *Game) IsYes(text string) bool {
	return contains(g.GenericAnswers.Yes, text)
}

// IsNo проверяет точное вхождение в словарь отказа.
func (g *Game) IsNo(text string) bool {
	return contains(g.GenericAnswers.No, text)
}

// IsStop проверяет точное вхождение в словарь стоп-слов.
func (g *Game) IsStop(text string) bool {
	return contains(g.GenericAnswers.Stop, text)
}

// FindTopic возвращает первую в порядке объявления тему, чей ключ содержит
// нормализованный ввод как подстроку. Направление именно key ⊇ input:
// игроки отвечают сокращением ключа, менять без согласования нельзя.
func (g *Game) FindTopic(text string) (TopicId, bool) {
	for i, t := range g.Topics {
		if strings.Contains(t.Key, text) {
			return TopicId(i), true
		}
	}
	return 0, false
}

// SelectQuestion выбирает равновероятный случайный вопрос темы.
// Повторы между вызовами и сессиями не отслеживаются.
func (g *Game) SelectQuestion(topicID TopicId) QuestionId {
	n := len(g.Topics[topicID].Questions)
	return QuestionId{Topic: topicID, Question: rand.IntN(n)}
}

// QuestionText возвращает текст вопроса по ссылке.
func (g *Game) QuestionText(id QuestionId) string {
	return g.Topics[id.Topic].Questions[id.Question].Text
}

// IsCorrectAnswer проверяет точное вхождение нормализованного текста
// в множество принимаемых ответов вопроса.
func (g *Game) IsCorrectAnswer(id QuestionId, text string) bool {
	return contains(g.Topics[id.Topic].Questions[id.Question].Answers, text)
}

// Bonus возвращает очки за успешное закрытие темы.
func (g *Game) Bonus(topicID TopicId) int {
	return g.Topics[topicID].Bonus
}

// IsComplete сообщает, закрыты ли все темы игры.
func (g *Game) IsComplete(resolvedTopics int) bool {
	return resolvedTopics == len(g.Topics)
}

// TopicKeys возвращает ключи всех тем в порядке объявления (для подсказки игроку).
func (g *Game) TopicKeys() []string {
	keys := make([]string, len(g.Topics))
	for i, t := range g.Topics {
		keys[i] = t.Key
	}
	return keys
}

func contains(list []string, text string) bool {
	for _, s := range list {
		if s == text {
			return true
		}
	}
	return false
}
