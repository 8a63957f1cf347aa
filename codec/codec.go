// Package codec encodes and decodes the ASTM E1394 wire format: CR
// separated records of pipe-separated fields, framed into STX messages
// with a modulo-256 checksum and optional ETB chunking.
//
// The codec is purely in-memory. Decoded records are nested value
// sequences ([]any of text, nil, and nested []any) in the exact shape the
// schema layer consumes; Record.ToWire produces the shape the encoders
// accept.
package codec

import (
	"bytes"
	"fmt"
	"strconv"
)

// Decode inspects the shape of data and routes it to the matching
// decoder: an STX prefix means a complete framed message, a leading digit
// means a bare frame, anything else decodes as a single record line.
func Decode(data []byte) ([][]any, error) {
	if len(data) == 0 {
		return nil, NewMessageError("empty input", nil)
	}
	switch {
	case data[0] == STX:
		_, records, err := DecodeMessage(data)
		return records, err
	case isDigit(data[0]):
		_, records, err := DecodeFrame(data)
		return records, err
	}
	return [][]any{DecodeRecord(data)}, nil
}

// DecodeMessage decodes a complete framed message: STX, frame, two
// checksum digits, CRLF. The checksum is verified over the frame, which
// includes the sequence digit and the trailing CR ETX.
func DecodeMessage(message []byte) (int, [][]any, error) {
	if len(message) < 8 || message[0] != STX || !bytes.HasSuffix(message, crlf) {
		return 0, nil, NewMessageError("expected STX prefix and CRLF suffix", message)
	}
	frame := message[1 : len(message)-4]
	carried := string(message[len(message)-4 : len(message)-2])
	if computed := Checksum(frame); carried != computed {
		return 0, nil, NewChecksumError(carried, computed)
	}
	return DecodeFrame(frame)
}

// DecodeFrame decodes a frame: a single leading sequence digit followed
// by records separated by CR. A trailing CR ETX or ETB is stripped when
// present, so dressed and bare frames both decode.
func DecodeFrame(frame []byte) (int, [][]any, error) {
	if len(frame) == 0 || !isDigit(frame[0]) {
		return 0, nil, NewMessageError("expected a leading sequence digit", frame)
	}
	if n := len(frame); n >= 2 && frame[n-2] == CR && frame[n-1] == ETX {
		frame = frame[:n-2]
	} else if frame[n-1] == ETB {
		frame = frame[:n-1]
	}
	seq := int(frame[0] - '0')
	lines := bytes.Split(frame[1:], []byte{RecordSep})
	records := make([][]any, len(lines))
	for i, line := range lines {
		records[i] = DecodeRecord(line)
	}
	return seq, records, nil
}

// DecodeRecord splits one record line into the nested value shape the
// schema layer consumes: fields on the field delimiter, repeats on the
// repeat delimiter, components on the component delimiter. Empty
// positions decode to nil. The delimiter definition field of a header
// record stays literal.
func DecodeRecord(line []byte) []any {
	items := bytes.Split(line, []byte{FieldSep})
	fields := make([]any, len(items))
	for i, item := range items {
		switch {
		case i == 1 && len(items[0]) == 1 && items[0][0] == 'H':
			// The header delimiter definition field is literal text. The
			// delimiters it declares do not apply to itself.
			if len(item) > 0 {
				fields[i] = string(item)
			}
		case bytes.IndexByte(item, RepeatSep) >= 0:
			fields[i] = decodeRepeated(item)
		case bytes.IndexByte(item, ComponentSep) >= 0:
			fields[i] = decodeComponent(item)
		case len(item) > 0:
			fields[i] = string(item)
		}
	}
	return fields
}

func decodeComponent(field []byte) []any {
	parts := bytes.Split(field, []byte{ComponentSep})
	out := make([]any, len(parts))
	for i, p := range parts {
		if len(p) > 0 {
			out[i] = string(p)
		}
	}
	return out
}

func decodeRepeated(field []byte) []any {
	parts := bytes.Split(field, []byte{RepeatSep})
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = decodeComponent(p)
	}
	return out
}

// Encode packs records into a single framed message, split into ETB
// chunks when the frame payload exceeds maxSize. A maxSize of zero or
// less never chunks; DefaultMaxMessageSize is the transport limit.
func Encode(records [][]any, maxSize int) ([][]byte, error) {
	msg := EncodeMessage(1, records)
	if maxSize > 0 && len(msg)-6 > maxSize {
		return Split(msg, maxSize)
	}
	return [][]byte{msg}, nil
}

// IterEncode encodes every record as its own message with an
// incrementing sequence number, chunking oversized messages like Encode.
func IterEncode(records [][]any, maxSize int) ([][]byte, error) {
	out := make([][]byte, 0, len(records))
	seq := 1
	for _, record := range records {
		msg := EncodeMessage(seq, [][]any{record})
		if maxSize > 0 && len(msg) > maxSize {
			chunks, err := Split(msg, maxSize)
			if err != nil {
				return nil, err
			}
			out = append(out, chunks...)
			seq += len(chunks)
			continue
		}
		out = append(out, msg)
		seq++
	}
	return out, nil
}

// EncodeMessage renders records into one complete framed message: STX,
// sequence number, CR separated record lines, CR ETX, checksum, CRLF.
func EncodeMessage(seq int, records [][]any) []byte {
	lines := make([][]byte, len(records))
	for i, record := range records {
		lines[i] = EncodeRecord(record)
	}
	data := bytes.Join(lines, []byte{RecordSep})

	frame := make([]byte, 0, len(data)+4)
	frame = strconv.AppendInt(frame, int64(seq), 10)
	frame = append(frame, data...)
	frame = append(frame, CR, ETX)

	msg := make([]byte, 0, len(frame)+5)
	msg = append(msg, STX)
	msg = append(msg, frame...)
	msg = append(msg, Checksum(frame)...)
	msg = append(msg, CR, LF)
	return msg
}

// EncodeRecord renders one record's value sequence into a record line.
// Text passes verbatim, nil renders empty, a nested sequence renders as a
// component, and any other scalar renders via fmt.
func EncodeRecord(record []any) []byte {
	fields := make([][]byte, len(record))
	for i, f := range record {
		switch v := f.(type) {
		case nil:
		case string:
			fields[i] = []byte(v)
		case []byte:
			fields[i] = v
		case []any:
			fields[i] = EncodeComponent(v)
		case [][]any:
			fields[i] = EncodeRepeated(asValues(v))
		default:
			fields[i] = fmt.Append(nil, v)
		}
	}
	return bytes.Join(fields, []byte{FieldSep})
}

// EncodeComponent renders one component value sequence, stripping
// trailing empty positions. A nested sequence anywhere switches the whole
// entry to repeated encoding.
func EncodeComponent(component []any) []byte {
	items := make([][]byte, len(component))
	for i, item := range component {
		switch v := item.(type) {
		case nil:
		case string:
			items[i] = []byte(v)
		case []byte:
			items[i] = v
		case []any:
			return EncodeRepeated(component)
		case [][]any:
			return EncodeRepeated(component)
		default:
			items[i] = fmt.Append(nil, v)
		}
	}
	joined := bytes.Join(items, []byte{ComponentSep})
	return bytes.TrimRight(joined, string(ComponentSep))
}

// EncodeRepeated renders a repeated component group, occurrences
// separated by the repeat delimiter.
func EncodeRepeated(components []any) []byte {
	groups := make([][]byte, len(components))
	for i, c := range components {
		switch v := c.(type) {
		case nil:
		case []any:
			groups[i] = EncodeComponent(v)
		case [][]any:
			groups[i] = EncodeRepeated(asValues(v))
		case string:
			groups[i] = []byte(v)
		case []byte:
			groups[i] = v
		default:
			groups[i] = fmt.Append(nil, v)
		}
	}
	return bytes.Join(groups, []byte{RepeatSep})
}

// Checksum sums the frame bytes modulo 256 and renders two uppercase hex
// digits.
func Checksum(frame []byte) string {
	sum := 0
	for _, b := range frame {
		sum += int(b)
	}
	return fmt.Sprintf("%02X", sum&0xFF)
}

// Split breaks one complete framed message into ETB continuation chunks
// of at most size payload bytes each, re-sequencing and re-checksumming
// every chunk. The final chunk keeps the CR ETX tail.
func Split(msg []byte, size int) ([][]byte, error) {
	if size <= 0 {
		return nil, NewMessageError("chunk size must be positive", nil)
	}
	if len(msg) < 8 || msg[0] != STX || !isDigit(msg[1]) || !bytes.HasSuffix(msg, crlf) {
		return nil, NewMessageError("expected a complete framed message", msg)
	}
	seq := int(msg[1] - '0')
	body := msg[2 : len(msg)-6]

	var chunks [][]byte
	for len(body) > size {
		chunks = append(chunks, body[:size])
		body = body[size:]
	}
	chunks = append(chunks, body)

	out := make([][]byte, 0, len(chunks))
	idx := 0
	for i, chunk := range chunks[:len(chunks)-1] {
		idx = i
		out = append(out, chunkMessage(seq+i, chunk, ETB))
	}
	last := chunks[len(chunks)-1]
	out = append(out, chunkMessage(idx+seq+1, last, CR, ETX))
	return out, nil
}

func chunkMessage(seq int, payload []byte, tail ...byte) []byte {
	item := strconv.AppendInt(make([]byte, 0, len(payload)+8), int64(seq), 10)
	item = append(item, payload...)
	item = append(item, tail...)

	msg := make([]byte, 0, len(item)+5)
	msg = append(msg, STX)
	msg = append(msg, item...)
	msg = append(msg, Checksum(item)...)
	msg = append(msg, CR, LF)
	return msg
}

// Join reassembles continuation chunks into one complete message,
// recomputing the checksum over the merged frame.
func Join(chunks [][]byte) ([]byte, error) {
	if len(chunks) == 0 {
		return nil, NewMessageError("no chunks to join", nil)
	}
	frame := []byte{'1'}
	for _, c := range chunks[:len(chunks)-1] {
		if len(c) < 7 {
			return nil, NewMessageError("chunk too short", c)
		}
		frame = append(frame, c[2:len(c)-5]...)
	}
	last := chunks[len(chunks)-1]
	if len(last) < 8 {
		return nil, NewMessageError("chunk too short", last)
	}
	frame = append(frame, last[2:len(last)-4]...)

	msg := make([]byte, 0, len(frame)+5)
	msg = append(msg, STX)
	msg = append(msg, frame...)
	msg = append(msg, Checksum(frame)...)
	msg = append(msg, CR, LF)
	return msg, nil
}

// IsChunked reports if the message ends with an ETB continuation tail
// instead of the final CR ETX.
func IsChunked(msg []byte) bool {
	return len(msg) >= 5 && msg[len(msg)-5] == ETB
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func asValues(vs [][]any) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
