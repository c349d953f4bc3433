// processor/codec.go
package processor

import (
	"encoding/base64"

	"github.com/golang/snappy"
)

// EncodeContent сжимает текст сообщения перед сохранением в БД
// и кодирует его в base64 для хранения в текстовой колонке
func EncodeContent(content string) string {
	compressed := snappy.Encode(nil, []byte(content))
	return base64.StdEncoding.EncodeToString(compressed)
}

// DecodeContent восстанавливает текст сообщения, прочитанный из БД
func DecodeContent(encoded string) (string, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	decompressed, err := snappy.Decode(nil, compressed)
	if err != nil {
		return "", err
	}
	return string(decompressed), nil
}
