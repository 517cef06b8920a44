package engine

import (
	"sync"

	"vicecity-server/internal/domain"
)

// InputLatch склеивает асинхронный ввод клиента с шагами симуляции.
// Зажатое состояние живёт до следующего изменения, импульсы отдаются ровно одному шагу.
type InputLatch struct {
	mu        sync.Mutex
	held      domain.Input
	enterExit bool
	attack    bool
}

// Submit заменяет зажатое состояние и взводит импульсы из in
func (l *InputLatch) Submit(in domain.Input) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.held = in.Held()
	l.enterExit = l.enterExit || in.EnterExit
	l.attack = l.attack || in.Attack
}

// Pulse взводит импульсы, не трогая зажатое состояние
func (l *InputLatch) Pulse(enterExit, attack bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.enterExit = l.enterExit || enterExit
	l.attack = l.attack || attack
}

// Consume возвращает ввод для очередного шага и гасит импульсы
func (l *InputLatch) Consume() domain.Input {
	l.mu.Lock()
	defer l.mu.Unlock()

	in := l.held
	in.EnterExit, in.Attack = l.enterExit, l.attack
	l.enterExit, l.attack = false, false
	return in
}

// Reset отпускает все клавиши (клиент отключился)
func (l *InputLatch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.held = domain.Input{}
	l.enterExit, l.attack = false, false
}
