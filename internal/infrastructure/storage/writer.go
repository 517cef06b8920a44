package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	MagicHeader string = `VCRP` // 4 байта
	Version2    uint32 = 2      // v2: отпечаток параметров города
	FileExt            = ".vcrp"
)

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic      [4]byte  // 4 байта
	Version    uint32   // 4 байта
	SessionID  [16]byte // 16 байт, UUID сессии
	Seed       int64    // 8 байт
	World      uint64   // 8 байт, engine.Config.WorldHash
	Timestamp  int64    // 8 байт
	TickRate   uint32   // 4 байта
	FrameCount uint32   // 4 байта
	InputCount uint32   // 4 байта
}

// InputHeader - заголовок каждой записи ввода. Тело - msgpack domain.Input.
type InputHeader struct {
	Frame   int32  // 4
	BodyLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет сессию в SaveDir и возвращает путь к файлу
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_%d%s", session.Seed, session.Timestamp, FileExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := writeBinary(bw, session); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("flush replay: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"path":      path,
		"frames":    session.Frames,
		"inputs":    len(session.Inputs),
	}).Info("Replay saved")

	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	// 1. Глобальный заголовок
	header := ReplayFileHeader{
		Version:    Version2,
		Seed:       s.Seed,
		World:      s.World,
		Timestamp:  s.Timestamp,
		TickRate:   uint32(s.TickRate),
		FrameCount: uint32(s.Frames),
		InputCount: uint32(len(s.Inputs)),
	}
	copy(header.Magic[:], MagicHeader)
	if id, err := uuid.Parse(s.ID); err == nil {
		header.SessionID = id
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Записи ввода
	for i, rec := range s.Inputs {
		body, err := msgpack.Marshal(&rec.Input)
		if err != nil {
			return fmt.Errorf("encode input #%d: %w", i, err)
		}
		if len(body) > 65535 {
			return fmt.Errorf("input #%d too long: %d", i, len(body))
		}

		ih := InputHeader{Frame: int32(rec.Frame), BodyLen: uint16(len(body))}
		if err := binary.Write(w, binary.LittleEndian, &ih); err != nil {
			return fmt.Errorf("write input header #%d: %w", i, err)
		}
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("write input body #%d: %w", i, err)
		}
	}

	return nil
}
