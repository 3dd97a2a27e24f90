package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// frameHeaderSize is [type: uint16][length: uint32].
const frameHeaderSize = 6

// EncodeFrame prepends the wire header to payload and returns the
// complete frame bytes. It is the single write path every message,
// schema-encoded or hand-rolled, goes through.
func EncodeFrame(msgType MessageType, payload []byte) ([]byte, error) {
	if len(payload) > MaxFrameLength {
		return nil, newProtocolError("payload %d bytes exceeds %d byte ceiling", len(payload), MaxFrameLength)
	}
	buf := make([]byte, frameHeaderSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(msgType))
	binary.LittleEndian.PutUint32(buf[2:6], uint32(len(payload)))
	copy(buf[frameHeaderSize:], payload)
	return buf, nil
}

// DecodeFrameHeader reads exactly frameHeaderSize bytes from r, validating
// the declared length against the frame ceiling before the caller reads
// the (potentially attacker-controlled) body — so a hostile length never
// causes an allocation larger than the ceiling.
func DecodeFrameHeader(r io.Reader) (msgType MessageType, length uint32, err error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, 0, fmt.Errorf("read frame header: %w", err)
	}
	msgType = MessageType(binary.LittleEndian.Uint16(header[0:2]))
	length = binary.LittleEndian.Uint32(header[2:6])
	if length > MaxFrameLength {
		return 0, 0, newProtocolError("declared length %d exceeds %d byte ceiling", length, MaxFrameLength)
	}
	return msgType, length, nil
}

// ReadFrame decodes one complete frame from r: header plus exactly
// `length` bytes of payload. Truncated frames surface as a wrapped io
// error rather than a ProtocolError, since they indicate a dropped
// connection, not a malicious peer.
func ReadFrame(r io.Reader) (MessageType, []byte, error) {
	msgType, length, err := DecodeFrameHeader(r)
	if err != nil {
		return 0, nil, err
	}
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, nil, fmt.Errorf("read frame payload: %w", err)
		}
	}
	return msgType, payload, nil
}

// DecodeFrame parses one complete in-memory frame (header plus payload),
// for transports like websockets that already deliver whole messages
// rather than a byte stream.
func DecodeFrame(buf []byte) (MessageType, []byte, error) {
	if len(buf) < frameHeaderSize {
		return 0, nil, newProtocolError("frame %d bytes shorter than header", len(buf))
	}
	msgType := MessageType(binary.LittleEndian.Uint16(buf[0:2]))
	length := binary.LittleEndian.Uint32(buf[2:6])
	if length > MaxFrameLength {
		return 0, nil, newProtocolError("declared length %d exceeds %d byte ceiling", length, MaxFrameLength)
	}
	body := buf[frameHeaderSize:]
	if uint32(len(body)) != length {
		return 0, nil, newProtocolError("declared length %d does not match body length %d", length, len(body))
	}
	return msgType, body, nil
}

// byteWriter/byteReader are the minimal hand-rolled primitives both the
// "schema" and "hand-rolled" codec paths share: length-prefixed strings
// (capped at MaxStringLength) plus little-endian scalars.

type byteWriter struct {
	buf []byte
}

func newByteWriter() *byteWriter { return &byteWriter{} }

func (w *byteWriter) Bytes() []byte { return w.buf }

func (w *byteWriter) WriteUint8(v uint8) { w.buf = append(w.buf, v) }

func (w *byteWriter) WriteUint16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *byteWriter) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *byteWriter) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *byteWriter) WriteString(s string) error {
	if len(s) > MaxStringLength {
		return newProtocolError("string %d bytes exceeds %d byte ceiling", len(s), MaxStringLength)
	}
	w.WriteUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

type byteReader struct {
	buf []byte
	pos int
}

func newByteReader(buf []byte) *byteReader { return &byteReader{buf: buf} }

func (r *byteReader) remaining() int { return len(r.buf) - r.pos }

func (r *byteReader) ReadUint8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, newProtocolError("buffer underrun reading uint8")
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *byteReader) ReadUint16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, newProtocolError("buffer underrun reading uint16")
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *byteReader) ReadUint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, newProtocolError("buffer underrun reading uint32")
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *byteReader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *byteReader) ReadString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	if n > MaxStringLength {
		return "", newProtocolError("string length %d exceeds %d byte ceiling", n, MaxStringLength)
	}
	if r.remaining() < int(n) {
		return "", newProtocolError("buffer underrun reading string of length %d", n)
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}
