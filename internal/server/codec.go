package server

import (
	"bytes"
	"encoding/json"

	"vicecity-server/pkg/api"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// frameCodec превращает кадр в websocket-сообщение
type frameCodec interface {
	Name() string
	MessageType() int
	Encode(snap api.Snapshot) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) Name() string     { return "json" }
func (jsonCodec) MessageType() int { return websocket.TextMessage }

func (jsonCodec) Encode(snap api.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

// msgpackCodec пишет те же поля, что и JSON (по json-тегам), но бинарно
type msgpackCodec struct{}

func (msgpackCodec) Name() string     { return "msgpack" }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (msgpackCodec) Encode(snap api.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(&snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// codecFor выбирает кодек по query-параметру ?codec=
func codecFor(name string) frameCodec {
	if name == "msgpack" {
		return msgpackCodec{}
	}
	return jsonCodec{}
}
