package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"vicecity-server/internal/domain"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrInvalidMagic  = errors.New("invalid magic")
	ErrUnsupported   = errors.New("unsupported replay version")
	ErrCorruptReplay = errors.New("corrupt replay")
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadFile(path)
}

// LoadFile читает файл реплея без сервиса (для утилит)
func LoadFile(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, header.Magic[:])
	}
	if header.Version != Version2 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupported, header.Version, Version2)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		World:     header.World,
		Timestamp: header.Timestamp,
		TickRate:  int(header.TickRate),
		Frames:    int(header.FrameCount),
		Inputs:    make([]domain.ReplayInput, 0, header.InputCount),
	}
	if id := uuid.UUID(header.SessionID); id != uuid.Nil {
		session.ID = id.String()
	}

	// 2. Читаем записи ввода. Кадры строго растут и не выходят за FrameCount.
	lastFrame := 0
	for i := 0; i < int(header.InputCount); i++ {
		var ih InputHeader
		if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
			return nil, fmt.Errorf("read input header #%d: %w", i, err)
		}

		frame := int(ih.Frame)
		if frame <= lastFrame || frame > session.Frames {
			return nil, fmt.Errorf("%w: input #%d at frame %d (prev %d, total %d)", ErrCorruptReplay, i, frame, lastFrame, session.Frames)
		}
		lastFrame = frame

		body := make([]byte, ih.BodyLen)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("read input body #%d: %w", i, err)
		}

		var in domain.Input
		if err := msgpack.Unmarshal(body, &in); err != nil {
			return nil, fmt.Errorf("%w: decode input #%d: %v", ErrCorruptReplay, i, err)
		}

		session.Inputs = append(session.Inputs, domain.ReplayInput{Frame: frame, Input: in})
	}

	return session, nil
}
