package keyboard

import (
	"errors"
	"fmt"
)

const (
	// CallbackDataSeparator joins a navigation key and its optional payload.
	CallbackDataSeparator = ":"
	// CallbackDataLimitBytes is the Bot API limit for callback_data.
	CallbackDataLimitBytes = 64
)

// ErrCallbackTooLong is returned for callback data over CallbackDataLimitBytes.
var ErrCallbackTooLong = errors.New("callback data too long")

// FitsCallback reports whether key can be sent as callback data on its own.
func FitsCallback(key string) bool {
	return key != "" && len(key) <= CallbackDataLimitBytes
}

// EncodeCallback builds callback data for a button. Navigation keys travel as is;
// a payload, when present, follows the separator.
func EncodeCallback(key, payload string) (string, error) {
	if key == "" {
		return "", errors.New("callback key is empty")
	}

	data := key
	if payload != "" {
		data = key + CallbackDataSeparator + payload
	}

	if len(data) > CallbackDataLimitBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrCallbackTooLong, len(data), CallbackDataLimitBytes)
	}

	return data, nil
}
