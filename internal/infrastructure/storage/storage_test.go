package storage

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/logger"
	"vicecity-server/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		ID:        utils.GenerateID(),
		Seed:      -12345,
		World:     0xDEADBEEFCAFE,
		Timestamp: 1700000000,
		TickRate:  60,
		Frames:    120,
		Inputs: []domain.ReplayInput{
			{Frame: 3, Input: domain.Input{Dx: 1}},
			{Frame: 40, Input: domain.Input{Dx: 0.6, Dy: -0.8, Sprint: true, EnterExit: true}},
			{Frame: 41, Input: domain.Input{Attack: true}},
		},
	}
}

func TestReplayServiceSaveLoad(t *testing.T) {
	svc, err := NewReplayService(filepath.Join(t.TempDir(), "replays"))
	require.NoError(t, err)

	orig := sampleSession()
	path, err := svc.Save(orig)
	require.NoError(t, err)
	assert.Equal(t, FileExt, filepath.Ext(path))

	loaded, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig, loaded)
}

func TestReadBinaryRejectsBadHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, sampleSession()))
	good := buf.Bytes()

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "CDRP")
	_, err := readBinary(bytes.NewReader(badMagic))
	assert.ErrorIs(t, err, ErrInvalidMagic)

	badVersion := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badVersion[4:], 9)
	_, err = readBinary(bytes.NewReader(badVersion))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = readBinary(bytes.NewReader(good[:len(good)-2]))
	assert.Error(t, err, "truncated body")
}

func TestReadBinaryRejectsUnorderedFrames(t *testing.T) {
	s := sampleSession()
	s.Inputs[1].Frame = 2

	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, s))

	_, err := readBinary(&buf)
	assert.ErrorIs(t, err, ErrCorruptReplay)
}

func TestWriteBinaryWithoutUUID(t *testing.T) {
	s := sampleSession()
	s.ID = "not-a-uuid"

	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, s))

	loaded, err := readBinary(&buf)
	require.NoError(t, err)
	assert.Empty(t, loaded.ID)
	assert.Len(t, loaded.Inputs, 3)
}
