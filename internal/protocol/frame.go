// Package protocol decodes GoCube BLE notifications.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
)

// Message types.
const (
	MsgRotation    byte = 0x01
	MsgState       byte = 0x02
	MsgOrientation byte = 0x03
	MsgBattery     byte = 0x05
	MsgCubeType    byte = 0x08
)

// Commands written to the RX characteristic.
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdEnableOrientation  byte = 0x38
	CmdFlashBacklight     byte = 0x41
)

const (
	framePrefix byte = 0x2A // '*'
	frameCR     byte = 0x0D
	frameLF     byte = 0x0A

	// prefix, length, type, checksum, CR, LF
	frameOverhead = 6
)

var (
	ErrTooShort    = errors.New("protocol: frame too short")
	ErrBadPrefix   = errors.New("protocol: bad frame prefix")
	ErrBadSuffix   = errors.New("protocol: bad frame suffix")
	ErrBadChecksum = errors.New("protocol: bad checksum")
	ErrBadLength   = errors.New("protocol: bad frame length")
)

// Message is one decoded frame.
type Message struct {
	Type    byte
	Payload []byte
}

// Parse decodes a notification.
//
// Frame: [0x2A] [n] [type] [payload...] [checksum] [0x0D 0x0A], where n
// counts every byte after itself and checksum is the byte sum of
// everything before it.
func Parse(data []byte) (*Message, error) {
	if len(data) < frameOverhead {
		return nil, ErrTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrBadPrefix
	}

	total := 2 + int(data[1])
	if total < frameOverhead || len(data) < total {
		return nil, fmt.Errorf("%w: header says %d bytes, got %d", ErrBadLength, total, len(data))
	}
	data = data[:total]

	if data[total-2] != frameCR || data[total-1] != frameLF {
		return nil, ErrBadSuffix
	}

	sumIdx := total - 3
	if sum := checksum(data[:sumIdx]); sum != data[sumIdx] {
		return nil, fmt.Errorf("%w: frame has 0x%02X, computed 0x%02X", ErrBadChecksum, data[sumIdx], sum)
	}

	payload := make([]byte, sumIdx-3)
	copy(payload, data[3:sumIdx])
	return &Message{Type: data[2], Payload: payload}, nil
}

// Encode builds a frame in the format Parse accepts.
func Encode(msgType byte, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+frameOverhead)
	out = append(out, framePrefix, byte(len(payload)+4), msgType)
	out = append(out, payload...)
	out = append(out, checksum(out), frameCR, frameLF)
	return out
}

// BuildCommand returns the frame the cube expects for a command. Commands
// carry a fixed length byte of 1.
func BuildCommand(cmd byte) []byte {
	const length = 0x01
	return []byte{framePrefix, length, cmd, framePrefix + length + cmd, frameCR, frameLF}
}

func checksum(b []byte) byte {
	var sum byte
	for _, c := range b {
		sum += c
	}
	return sum
}

// TypeName returns a readable name for a message type.
func TypeName(t byte) string {
	switch t {
	case MsgRotation:
		return "rotation"
	case MsgState:
		return "state"
	case MsgOrientation:
		return "orientation"
	case MsgBattery:
		return "battery"
	case MsgCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", t)
	}
}
