package codec

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Latin1 is the ISO 8859-1 charset many instruments transmit by default.
var Latin1 encoding.Encoding = charmap.ISO8859_1

// DecodeText transcodes instrument bytes into record text. A nil encoding
// means the bytes are already UTF-8 and are only validated.
func DecodeText(data []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		if !utf8.Valid(data) {
			return "", NewMessageError("text is not valid UTF-8", data)
		}
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeText transcodes record text into instrument bytes. A nil encoding
// emits UTF-8 unchanged.
func EncodeText(text string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return []byte(text), nil
	}
	return enc.NewEncoder().Bytes([]byte(text))
}
