package game

// ResponseTag перечисляет закрытый набор ответов движка.
// Движок никогда не рендерит текст сам — только значения этого перечисления.
type ResponseTag string

const (
	TagGreeting          ResponseTag = "greeting"
	TagRephrase          ResponseTag = "rephrase"
	TagRules             ResponseTag = "rules"
	TagAnswerQuestion    ResponseTag = "answer_question"
	TagPleaseRetry       ResponseTag = "please_retry"
	TagPleaseRetryLimits ResponseTag = "please_retry_limits"
	TagIncorrect         ResponseTag = "incorrect"
	TagCorrect           ResponseTag = "correct"
	TagGameComplete      ResponseTag = "game_complete"
	TagChooseNextTopic   ResponseTag = "choose_next_topic"
	TagAlreadyAnswered   ResponseTag = "already_answered"
	TagQuit              ResponseTag = "quit"
)

// ResponseMessage — размеченное объединение исходящих событий.
// Заполнены только поля, относящиеся к конкретному тегу.
type ResponseMessage struct {
	Tag          ResponseTag `json:"tag"`
	Name         string      `json:"name,omitempty"`
	Topics       []string    `json:"topics,omitempty"`
	Question     string      `json:"question,omitempty"`
	AttemptsLeft int         `json:"attempts_left,omitempty"`
	Score        int         `json:"score,omitempty"`
}

func Greeting(name string) ResponseMessage {
	return ResponseMessage{Tag: TagGreeting, Name: name}
}

func Rephrase() ResponseMessage {
	return ResponseMessage{Tag: TagRephrase}
}

func Rules(topics []string) ResponseMessage {
	return ResponseMessage{Tag: TagRules, Topics: topics}
}

func AnswerQuestion(text string) ResponseMessage {
	return ResponseMessage{Tag: TagAnswerQuestion, Question: text}
}

func PleaseRetry() ResponseMessage {
	return ResponseMessage{Tag: TagPleaseRetry}
}

func PleaseRetryLimits(attemptsLeft int) ResponseMessage {
	return ResponseMessage{Tag: TagPleaseRetryLimits, AttemptsLeft: attemptsLeft}
}

func Incorrect() ResponseMessage {
	return ResponseMessage{Tag: TagIncorrect}
}

func Correct(score int) ResponseMessage {
	return ResponseMessage{Tag: TagCorrect, Score: score}
}

func GameComplete(score int) ResponseMessage {
	return ResponseMessage{Tag: TagGameComplete, Score: score}
}

func ChooseNextTopic() ResponseMessage {
	return ResponseMessage{Tag: TagChooseNextTopic}
}

func AlreadyAnswered() ResponseMessage {
	return ResponseMessage{Tag: TagAlreadyAnswered}
}

func Quit() ResponseMessage {
	return ResponseMessage{Tag: TagQuit}
}

// Response — конверт исходящего события: кому, через какой канал и как отрендерить.
type Response struct {
	To        PlayerId
	Channel   *Channel
	Message   ResponseMessage
	Formatter Formatter
}
