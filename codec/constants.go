package codec

// Control bytes of the low-level frame protocol.
const (
	STX byte = 0x02 // message start
	ETX byte = 0x03 // message end
	EOT byte = 0x04 // session termination
	ENQ byte = 0x05 // session initialization
	ACK byte = 0x06 // command accepted
	NAK byte = 0x15 // command rejected
	ETB byte = 0x17 // message chunk end
	LF  byte = 0x0A
	CR  byte = 0x0D
)

// Delimiters of the record layer.
const (
	// RecordSep separates records inside one frame.
	RecordSep byte = CR
	// FieldSep separates fields inside one record.
	FieldSep byte = '|'
	// RepeatSep separates repeated occurrences of one field.
	RepeatSep byte = '\\'
	// ComponentSep separates the components of one field.
	ComponentSep byte = '^'
	// EscapeSep introduces delimiter escapes.
	EscapeSep byte = '&'
)

// DefaultMaxMessageSize is the frame payload limit of the E1381 transport
// layer. Pass it to Encode to chunk oversized messages.
const DefaultMaxMessageSize = 247

var crlf = []byte{CR, LF}
