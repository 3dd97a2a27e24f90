package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeFrame_RoundTrip(t *testing.T) {
	payload := []byte("hello world")
	frame, err := EncodeFrame(MsgChat, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	msgType, body, err := ReadFrame(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msgType != MsgChat {
		t.Fatalf("type mismatch: got %v", msgType)
	}
	if !bytes.Equal(body, payload) {
		t.Fatalf("payload mismatch: got %q", body)
	}
}

func TestEncodeFrame_RejectsOversizedPayload(t *testing.T) {
	huge := make([]byte, MaxFrameLength+1)
	if _, err := EncodeFrame(MsgGameState, huge); err == nil {
		t.Fatal("expected error for oversized payload")
	}
}

func TestDecodeFrameHeader_RejectsOversizedDeclaredLength(t *testing.T) {
	header := make([]byte, frameHeaderSize)
	header[0], header[1] = 0x00, 0x01
	// declare a length above the ceiling without allocating that much data
	oversized := uint32(MaxFrameLength + 1)
	header[2] = byte(oversized)
	header[3] = byte(oversized >> 8)
	header[4] = byte(oversized >> 16)
	header[5] = byte(oversized >> 24)

	_, _, err := DecodeFrameHeader(bytes.NewReader(header))
	if err == nil {
		t.Fatal("expected error for oversized declared length")
	}
}

func TestReadFrame_TruncatedPayloadSurfacesIOError(t *testing.T) {
	frame, err := EncodeFrame(MsgPing, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	truncated := frame[:len(frame)-2]
	if _, _, err := ReadFrame(bytes.NewReader(truncated)); err == nil {
		t.Fatal("expected error for truncated frame")
	}
}

func TestByteWriterReader_ScalarRoundTrip(t *testing.T) {
	w := newByteWriter()
	w.WriteUint8(7)
	w.WriteUint16(1234)
	w.WriteUint32(987654321)
	w.WriteFloat32(3.14159)
	if err := w.WriteString("nova"); err != nil {
		t.Fatalf("write string: %v", err)
	}

	r := newByteReader(w.Bytes())
	u8, err := r.ReadUint8()
	if err != nil || u8 != 7 {
		t.Fatalf("uint8: got %v err %v", u8, err)
	}
	u16, err := r.ReadUint16()
	if err != nil || u16 != 1234 {
		t.Fatalf("uint16: got %v err %v", u16, err)
	}
	u32, err := r.ReadUint32()
	if err != nil || u32 != 987654321 {
		t.Fatalf("uint32: got %v err %v", u32, err)
	}
	f32, err := r.ReadFloat32()
	if err != nil || f32 != float32(3.14159) {
		t.Fatalf("float32: got %v err %v", f32, err)
	}
	s, err := r.ReadString()
	if err != nil || s != "nova" {
		t.Fatalf("string: got %q err %v", s, err)
	}
	if r.remaining() != 0 {
		t.Fatalf("expected buffer fully consumed, %d bytes remain", r.remaining())
	}
}

func TestByteReader_RejectsBufferUnderrun(t *testing.T) {
	r := newByteReader([]byte{1, 2})
	if _, err := r.ReadUint32(); err == nil {
		t.Fatal("expected underrun error")
	}
}

func TestByteReader_RejectsStringLengthAboveCeiling(t *testing.T) {
	w := newByteWriter()
	w.WriteUint32(MaxStringLength + 1)
	r := newByteReader(w.Bytes())
	if _, err := r.ReadString(); err == nil {
		t.Fatal("expected error for oversized string length")
	}
}

func TestByteReader_RejectsStringLengthExceedingBuffer(t *testing.T) {
	w := newByteWriter()
	w.WriteUint32(100)
	w.buf = append(w.buf, []byte("short")...)
	r := newByteReader(w.Bytes())
	if _, err := r.ReadString(); err == nil {
		t.Fatal("expected underrun error for declared-but-absent string bytes")
	}
}
