// Package authpb описывает gRPC контракт сервиса идентификации gym.auth.v1.AuthService:
// сообщения, серверный интерфейс, ServiceDesc и клиент.
//
// Сообщения передаются в JSON через кодек CodecName, зарегистрированный в grpc/encoding.
// Клиент выбирает его опцией grpc.CallContentSubtype, сервер находит по content-subtype запроса.
package authpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName content-subtype кодека сообщений.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("authpb.Marshal: %w", err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("authpb.Unmarshal: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
