package domain

// ReplayInput - изменение ввода, начиная с кадра Frame
type ReplayInput struct {
	Frame int   `json:"frame"`
	Input Input `json:"input"`
}

// ReplaySession - полная запись сессии.
// Мир и все случайные решения восстанавливаются из Seed, поэтому хранится только ввод.
type ReplaySession struct {
	ID        string        `json:"id"`
	Seed      int64         `json:"seed"`  // Зерно генерации мира и рандома
	World     uint64        `json:"world"` // Отпечаток параметров города, 0 - не проверять
	Timestamp int64         `json:"timestamp"`
	TickRate  int           `json:"tickRate"`
	Frames    int           `json:"frames"` // Сколько кадров было просчитано
	Inputs    []ReplayInput `json:"inputs"`
}

// Record добавляет ввод кадра. Импульсы всегда пишутся, зажатое состояние - только при изменении.
func (s *ReplaySession) Record(frame int, in Input) {
	n := len(s.Inputs)
	if n == 0 && in == (Input{}) {
		return
	}
	if n > 0 {
		last := s.Inputs[n-1].Input
		if last.Held() == in.Held() && !in.EnterExit && !in.Attack {
			return
		}
	}
	s.Inputs = append(s.Inputs, ReplayInput{Frame: frame, Input: in})
}
