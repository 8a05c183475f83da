package delivery

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

var _ game.ResponseSender = (*Dispatcher)(nil)

// Dispatcher — асинхронная доставка fire-and-forget. Ответы раскладываются
// по полосам (lane) хешем от ключа игрока; каждую полосу разбирает одна
// горутина, поэтому порядок ответов одного игрока сохраняется, а разные
// игроки доставляются параллельно.
type Dispatcher struct {
	next        game.ResponseSender
	lanes       []chan game.Response
	sendTimeout time.Duration
	wg          sync.WaitGroup
	logger      *zap.Logger
}

func NewDispatcher(next game.ResponseSender, lanes, buffer int, logger *zap.Logger) *Dispatcher {
	if lanes < 1 {
		lanes = 1
	}
	d := &Dispatcher{
		next:        next,
		lanes:       make([]chan game.Response, lanes),
		sendTimeout: 15 * time.Second,
		logger:      logger.Named("Dispatcher"),
	}
	for i := range d.lanes {
		d.lanes[i] = make(chan game.Response, buffer)
		d.wg.Add(1)
		go d.run(d.lanes[i])
	}
	return d
}

// Respond ставит ответ в очередь своей полосы. Ошибки доставки не
// возвращаются вызывающему — входящее сообщение уже подтверждено платформе.
func (d *Dispatcher) Respond(_ context.Context, response game.Response) error {
	d.laneFor(response.To) <- response
	return nil
}

// Close останавливает прием и дожидается доставки всего поставленного.
func (d *Dispatcher) Close() {
	for _, lane := range d.lanes {
		close(lane)
	}
	d.wg.Wait()
}

func (d *Dispatcher) run(lane chan game.Response) {
	defer d.wg.Done()
	for response := range lane {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		if err := d.next.Respond(ctx, response); err != nil {
			d.logger.Error("Не удалось доставить ответ",
				zap.String("playerId", response.To.ID),
				zap.String("tag", string(response.Message.Tag)),
				zap.Error(err))
		}
		cancel()
	}
}

func (d *Dispatcher) laneFor(player game.PlayerId) chan game.Response {
	h := fnv.New32a()
	h.Write([]byte(player.ChannelID))
	h.Write([]byte{0})
	h.Write([]byte(player.ID))
	return d.lanes[h.Sum32()%uint32(len(d.lanes))]
}
