package game

// Engine — диалоговый автомат викторины. Не имеет состояния и не делает
// ввода-вывода: один вызов Step обрабатывает одно нормализованное сообщение,
// мутирует переданную сессию и возвращает упорядоченные события ответа.
// Загрузка, блокировки и сохранение сессии — забота вызывающего кода.
type Engine struct{}

type stepRun struct {
	game    *Game
	session *GameSession
	input   string
	events  []ResponseMessage
}

func (r *stepRun) emit(message ResponseMessage) {
	r.events = append(r.events, message)
}

// Step выполняет один шаг автомата. input обязан быть уже нормализован.
func (e Engine) Step(g *Game, session *GameSession, input string) []ResponseMessage {
	r := &stepRun{game: g, session: session, input: input}
	if r.checkTerminated() {
		return r.events
	}
	switch session.State.Kind {
	case StateNew:
		r.greet()
	case StateDeciding:
		r.decide()
	case StateChoosingTopic:
		r.chooseTopic()
	case StateAnswering:
		r.answerQuestion()
		r.checkGameComplete()
	case StateComplete:
		// Липкое терминальное состояние: любой ввод (кроме стоп-слова)
		// повторно объявляет итоговый счет.
		r.emit(GameComplete(session.Score))
	case StateTerminated:
		// Недостижимо: отсекается в checkTerminated.
	}
	return r.events
}

// checkTerminated — предпроверка шага: молчим в Terminated, стоп-слово
// завершает диалог из любого состояния, минуя логику состояния.
func (r *stepRun) checkTerminated() bool {
	if r.session.State.Kind == StateTerminated {
		return true
	}
	if r.game.IsStop(r.input) {
		r.session.State = SessionState{Kind: StateTerminated}
		r.emit(Quit())
		return true
	}
	return false
}

func (r *stepRun) greet() {
	r.emit(Greeting(r.game.Name))
	r.session.State = SessionState{Kind: StateDeciding}
}

func (r *stepRun) decide() {
	switch {
	case r.game.IsYes(r.input):
		r.emit(Rules(r.game.TopicKeys()))
		r.session.State = SessionState{Kind: StateChoosingTopic}
	case r.game.IsNo(r.input):
		r.emit(Quit())
		r.session.State = SessionState{Kind: StateTerminated}
	default:
		r.emit(Rephrase())
	}
}

func (r *stepRun) chooseTopic() {
	topicID, found := r.game.FindTopic(r.input)
	if !found {
		r.emit(Rephrase())
		return
	}
	if r.session.HasPlayed(topicID) {
		r.emit(AlreadyAnswered())
		return
	}
	questionID := r.game.SelectQuestion(topicID)
	r.session.State = Answering(questionID, 0)
	r.emit(AnswerQuestion(r.game.QuestionText(questionID)))
}

func (r *stepRun) answerQuestion() {
	questionID := r.session.State.Question
	if r.game.IsCorrectAnswer(questionID, r.input) {
		r.answerWasCorrect(questionID)
		return
	}
	if r.game.MaxAttempt == nil {
		// Без лимита попыток счетчик заморожен: тот же вопрос до победного.
		r.emit(PleaseRetry())
		return
	}
	r.answerWasIncorrect(*r.game.MaxAttempt, r.session.State.Attempt, questionID)
}

func (r *stepRun) answerWasCorrect(questionID QuestionId) {
	r.session.Record(questionID.Topic, r.game.Bonus(questionID.Topic))
	r.emit(Correct(r.session.Score))
	r.session.State = SessionState{Kind: StateChoosingTopic}
}

func (r *stepRun) answerWasIncorrect(maxAttempt, attempt int, questionID QuestionId) {
	next := attempt + 1
	if next >= maxAttempt {
		// Попытки исчерпаны: тема закрывается с нулем очков.
		r.emit(Incorrect())
		r.session.State = SessionState{Kind: StateChoosingTopic}
		r.session.Record(questionID.Topic, 0)
		return
	}
	r.emit(PleaseRetryLimits(maxAttempt - next))
	r.session.State = Answering(questionID, next)
}

// checkGameComplete выполняется сразу после обработки ответа: завершение игры
// вытесняет приглашение выбрать следующую тему.
func (r *stepRun) checkGameComplete() {
	if r.game.IsComplete(len(r.session.Results)) {
		r.emit(GameComplete(r.session.Score))
		r.session.State = SessionState{Kind: StateComplete}
		return
	}
	if r.session.State.Kind == StateChoosingTopic {
		r.emit(ChooseNextTopic())
	}
}
