package agent

import (
	"context"
	"encoding/json"
	"math"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/api"
	"vicecity-server/pkg/logger"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

const (
	// Сколько кадров ждём посадки после ENTER_EXIT, прежде чем попробовать снова
	pulseTimeoutFrames = 30
	// Сколько кадров машина может стоять на месте, прежде чем бот начнёт сдавать назад
	stallFrames = 20
	// Сколько кадров сдаём назад с вывернутым рулём
	reverseFrames = 40
)

// Service - то, через что бот общается с сервером. Тот же контракт, что и у WebSocket-клиента.
type Service interface {
	Join(sessionID string) chan api.Snapshot
	Leave(sessionID string)
	ProcessCommand(sessionID string, cmd api.ClientCommand) error
}

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Получает те же кадры, что и обычный клиент, и отвечает теми же командами:
//  1. Пешком идёт к ближайшей свободной машине.
//  2. Когда в кадре canEnter - шлёт ENTER_EXIT.
//  3. За рулём едет вперёд, а застряв - сдаёт назад с поворотом.
type Bot struct {
	Session string
	Service Service

	held       api.InputPayload
	heldSent   bool
	pulseFrame uint64 // кадр последнего ENTER_EXIT, 0 - не было
	stalled    int
	reverseTil uint64

	log *logrus.Entry
}

func NewBot(session string, service Service) *Bot {
	return &Bot{
		Session: session,
		Service: service,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "bot",
			"session":   session,
		}),
	}
}

// Run запускает цикл жизни бота до отмены контекста. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	inbox := b.Service.Join(b.Session)
	defer b.Service.Leave(b.Session)

	b.log.Info("Bot started")
	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot stopped")
			return
		case snap, ok := <-inbox:
			if !ok {
				b.log.Info("Bot inbox closed")
				return
			}
			for _, cmd := range b.Decide(snap) {
				if err := b.Service.ProcessCommand(b.Session, cmd); err != nil {
					b.log.WithError(err).Warn("Bot command rejected")
				}
			}
		}
	}
}

// Decide - мозг бота: по кадру решает, какие команды отправить (может быть ни одной).
func (b *Bot) Decide(snap api.Snapshot) []api.ClientCommand {
	var cmds []api.ClientCommand
	var want api.InputPayload

	if snap.Agent.Driving {
		b.pulseFrame = 0
		want = b.cruise(snap)
	} else {
		b.stalled = 0
		if snap.Agent.CanEnter && (b.pulseFrame == 0 || snap.Frame-b.pulseFrame > pulseTimeoutFrames) {
			b.pulseFrame = snap.Frame
			b.log.WithField("frame", snap.Frame).Debug("Bot entering vehicle")
			cmds = append(cmds, api.ClientCommand{Action: domain.ActionEnterExit.String()})
			// Останавливаемся: выход из машины ставит рядом, незачем уходить
		} else {
			want = b.approach(snap)
		}
	}

	if !b.heldSent || want != b.held {
		b.held, b.heldSent = want, true
		cmds = append(cmds, inputCommand(want))
	}
	return cmds
}

// approach - направление к ближайшей свободной припаркованной машине
func (b *Bot) approach(snap api.Snapshot) api.InputPayload {
	me := mgl64.Vec2{snap.Agent.X, snap.Agent.Y}

	var best mgl64.Vec2
	bestDist := math.Inf(1)
	for _, e := range snap.Entities {
		if e.Type != domain.EntityTypeVehicle || e.Occupied {
			continue
		}
		pos := mgl64.Vec2{e.X, e.Y}
		if d := pos.Sub(me).Len(); d < bestDist {
			best, bestDist = pos, d
		}
	}

	if math.IsInf(bestDist, 1) || bestDist < 1 {
		return api.InputPayload{}
	}

	dir := best.Sub(me).Normalize()
	return api.InputPayload{Dx: round2(dir.X()), Dy: round2(dir.Y()), Sprint: true}
}

// cruise - газ вперёд, при застревании задний ход с рулём
func (b *Bot) cruise(snap api.Snapshot) api.InputPayload {
	if snap.Frame < b.reverseTil {
		return api.InputPayload{Dx: 1, Dy: 1}
	}

	if snap.Agent.Speedometer == 0 {
		b.stalled++
	} else {
		b.stalled = 0
	}

	if b.stalled > stallFrames {
		b.stalled = 0
		b.reverseTil = snap.Frame + reverseFrames
		b.log.WithField("frame", snap.Frame).Debug("Bot stuck, reversing")
		return api.InputPayload{Dx: 1, Dy: 1}
	}
	return api.InputPayload{Dy: -1}
}

// round2 гасит дрожание направления, чтобы не слать INPUT каждый кадр
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func inputCommand(p api.InputPayload) api.ClientCommand {
	// InputPayload состоит из чисел и флагов, Marshal не падает
	data, _ := json.Marshal(p)
	return api.ClientCommand{Action: domain.ActionInput.String(), Payload: data}
}
