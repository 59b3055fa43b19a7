package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// 火山引擎 openspeech 二进制帧协议。
// 帧结构: 4 字节 header | [sequence] | [event, session id, connect id] | payload size | payload

const protocolVersion = 0b0001

// MessageType 帧类型
type MessageType uint8

const (
	FullClientRequest       MessageType = 0b0001
	FullServerResponse      MessageType = 0b1001
	AudioOnlyServerResponse MessageType = 0b1011
	ErrorMessage            MessageType = 0b1111
)

// MessageFlags 帧标志，低两位描述 sequence，第三位表示携带事件
type MessageFlags uint8

const (
	NoSequenceNumber       MessageFlags = 0b0000
	PositiveSequenceNumber MessageFlags = 0b0001
	LastPacketNoSequence   MessageFlags = 0b0010
	NegativeSequenceNumber MessageFlags = 0b0011
	WithEvent              MessageFlags = 0b0100

	sequenceMask MessageFlags = 0b0011
)

// EventType 服务端事件
type EventType int32

const (
	EventTypeStartConnection    EventType = 1
	EventTypeFinishConnection   EventType = 2
	EventTypeConnectionStarted  EventType = 50
	EventTypeConnectionFailed   EventType = 51
	EventTypeConnectionFinished EventType = 52
	EventTypeSessionStarted     EventType = 150
	EventTypeSessionFinished    EventType = 152
	EventTypeSessionFailed      EventType = 153
)

// SerializationMethod payload 序列化方式
type SerializationMethod uint8

const (
	NoSerialization   SerializationMethod = 0b0000
	JSONSerialization SerializationMethod = 0b0001
)

// CompressionMethod payload 压缩方式
type CompressionMethod uint8

const (
	NoCompression   CompressionMethod = 0b0000
	GzipCompression CompressionMethod = 0b0001
)

// Header 4 字节帧头
type Header struct {
	HeaderSize          uint8 // 以 4 字节为单位
	MessageType         MessageType
	MessageFlags        MessageFlags
	SerializationMethod SerializationMethod
	CompressionMethod   CompressionMethod
}

// Frame 一帧完整消息
type Frame struct {
	Header    Header
	Sequence  int32
	EventType EventType
	SessionID string
	ConnectID string
	ErrorCode uint32
	Payload   []byte
}

// NewClientRequest 构造一个携带 JSON payload 的客户端完整请求帧。
func NewClientRequest(payload []byte, compression CompressionMethod) *Frame {
	return &Frame{
		Header: Header{
			HeaderSize:          1,
			MessageType:         FullClientRequest,
			MessageFlags:        NoSequenceNumber,
			SerializationMethod: JSONSerialization,
			CompressionMethod:   compression,
		},
		Payload: payload,
	}
}

func (h Header) encode() []byte {
	return []byte{
		protocolVersion<<4 | h.HeaderSize,
		uint8(h.MessageType)<<4 | uint8(h.MessageFlags),
		uint8(h.SerializationMethod)<<4 | uint8(h.CompressionMethod),
		0x00,
	}
}

func parseHeader(b []byte) (Header, error) {
	if len(b) < 4 {
		return Header{}, fmt.Errorf("header too short: %d bytes", len(b))
	}
	if version := b[0] >> 4; version != protocolVersion {
		return Header{}, fmt.Errorf("unsupported protocol version: %d", version)
	}
	return Header{
		HeaderSize:          b[0] & 0x0F,
		MessageType:         MessageType(b[1] >> 4),
		MessageFlags:        MessageFlags(b[1] & 0x0F),
		SerializationMethod: SerializationMethod(b[2] >> 4),
		CompressionMethod:   CompressionMethod(b[2] & 0x0F),
	}, nil
}

func (f *Frame) hasSequence() bool {
	switch f.Header.MessageFlags & sequenceMask {
	case PositiveSequenceNumber, NegativeSequenceNumber:
		return true
	}
	return false
}

func (f *Frame) hasEvent() bool {
	return f.Header.MessageFlags&WithEvent == WithEvent
}

// IsLast 判断是否为最后一包
func (f *Frame) IsLast() bool {
	switch f.Header.MessageFlags & sequenceMask {
	case LastPacketNoSequence, NegativeSequenceNumber:
		return true
	}
	return false
}

// MarshalBinary 按协议编码帧。
func (f *Frame) MarshalBinary() ([]byte, error) {
	out := f.Header.encode()
	if f.hasSequence() {
		out = binary.BigEndian.AppendUint32(out, uint32(f.Sequence))
	}
	if f.hasEvent() {
		out = binary.BigEndian.AppendUint32(out, uint32(f.EventType))
		if !connectionLevel(f.EventType) {
			out = appendSized(out, f.SessionID)
		}
		if carriesConnectID(f.EventType) {
			out = appendSized(out, f.ConnectID)
		}
	}
	if f.Header.MessageType == ErrorMessage {
		out = binary.BigEndian.AppendUint32(out, f.ErrorCode)
	}
	out = binary.BigEndian.AppendUint32(out, uint32(len(f.Payload)))
	return append(out, f.Payload...), nil
}

// ParseFrame 解码一帧服务端消息。
func ParseFrame(data []byte) (*Frame, error) {
	r := bytes.NewReader(data)

	head := make([]byte, 4)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header, err := parseHeader(head)
	if err != nil {
		return nil, err
	}
	if extra := int(header.HeaderSize)*4 - 4; extra > 0 {
		if _, err := r.Seek(int64(extra), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("skip extended header: %w", err)
		}
	}

	f := &Frame{Header: header}
	if f.hasSequence() {
		seq, err := readUint32(r)
		if err != nil {
			return nil, fmt.Errorf("read sequence: %w", err)
		}
		f.Sequence = int32(seq)
	}
	if f.hasEvent() {
		event, err := readUint32(r)
		if err != nil {
			return nil, fmt.Errorf("read event: %w", err)
		}
		f.EventType = EventType(int32(event))
		if !connectionLevel(f.EventType) {
			if f.SessionID, err = readSized(r); err != nil {
				return nil, fmt.Errorf("read session id: %w", err)
			}
		}
		if carriesConnectID(f.EventType) {
			if f.ConnectID, err = readSized(r); err != nil {
				return nil, fmt.Errorf("read connect id: %w", err)
			}
		}
	}
	if header.MessageType == ErrorMessage {
		if f.ErrorCode, err = readUint32(r); err != nil {
			return nil, fmt.Errorf("read error code: %w", err)
		}
	}

	size, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read payload size: %w", err)
	}
	if size > 0 {
		if int64(size) > int64(r.Len()) {
			return nil, fmt.Errorf("payload truncated: want %d bytes, have %d", size, r.Len())
		}
		f.Payload = make([]byte, size)
		if _, err := io.ReadFull(r, f.Payload); err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
	}
	return f, nil
}

func connectionLevel(event EventType) bool {
	switch event {
	case EventTypeStartConnection, EventTypeFinishConnection,
		EventTypeConnectionStarted, EventTypeConnectionFailed, EventTypeConnectionFinished:
		return true
	}
	return false
}

func carriesConnectID(event EventType) bool {
	switch event {
	case EventTypeConnectionStarted, EventTypeConnectionFailed, EventTypeConnectionFinished:
		return true
	}
	return false
}

func appendSized(out []byte, s string) []byte {
	out = binary.BigEndian.AppendUint32(out, uint32(len(s)))
	return append(out, s...)
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readSized(r *bytes.Reader) (string, error) {
	size, err := readUint32(r)
	if err != nil {
		return "", err
	}
	if int64(size) > int64(r.Len()) {
		return "", fmt.Errorf("field truncated: want %d bytes, have %d", size, r.Len())
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
