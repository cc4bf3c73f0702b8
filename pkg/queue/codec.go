package queue

import (
	"encoding/json"
	"errors"
)

// Codec turns items into bytes for stores that live outside the process.
type Codec[T any] interface {
	Encode(item T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// JSONCodec encodes items as JSON
type JSONCodec[T any] struct{}

var _ Codec[int] = JSONCodec[int]{}

// Encode implements Codec
func (JSONCodec[T]) Encode(item T) ([]byte, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, errors.Join(ErrCodec, err)
	}
	return data, nil
}

// Decode implements Codec
func (JSONCodec[T]) Decode(data []byte) (T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return item, errors.Join(ErrCodec, err)
	}
	return item, nil
}
