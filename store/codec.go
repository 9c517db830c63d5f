package store

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	recordFormatVersionCurrent = 1

	// maxRecordBlobSize caps decoder input so a corrupted key cannot force
	// a large allocation.
	maxRecordBlobSize = 4096
)

// ErrRecordCorrupt is returned when a persisted record blob cannot be decoded.
var ErrRecordCorrupt = errors.New("record blob corrupt")

// EncodeRecord serializes a record into the versioned binary layout:
// version byte, four length-prefixed strings (ID, TenantID, Identifier,
// Role), and a big-endian account version.
func EncodeRecord(r *Record) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(recordFormatVersionCurrent)

	for _, field := range []struct {
		name  string
		value string
	}{
		{"record ID", r.ID},
		{"tenant ID", r.TenantID},
		{"identifier", r.Identifier},
		{"role", r.Role},
	} {
		if len(field.value) > 255 {
			return nil, errors.New(field.name + " too long")
		}
		buf.WriteByte(byte(len(field.value)))
		buf.WriteString(field.value)
	}

	if err := binary.Write(&buf, binary.BigEndian, r.AccountVersion); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeRecord parses a blob produced by [EncodeRecord]. Unknown versions
// and truncated input return [ErrRecordCorrupt].
func DecodeRecord(data []byte) (*Record, error) {
	if len(data) == 0 || len(data) > maxRecordBlobSize {
		return nil, ErrRecordCorrupt
	}
	if data[0] != recordFormatVersionCurrent {
		return nil, ErrRecordCorrupt
	}

	idx := 1
	readString := func() (string, bool) {
		if idx >= len(data) {
			return "", false
		}
		n := int(data[idx])
		idx++
		if idx+n > len(data) {
			return "", false
		}
		s := string(data[idx : idx+n])
		idx += n
		return s, true
	}

	rec := &Record{}
	var ok bool
	if rec.ID, ok = readString(); !ok {
		return nil, ErrRecordCorrupt
	}
	if rec.TenantID, ok = readString(); !ok {
		return nil, ErrRecordCorrupt
	}
	if rec.Identifier, ok = readString(); !ok {
		return nil, ErrRecordCorrupt
	}
	if rec.Role, ok = readString(); !ok {
		return nil, ErrRecordCorrupt
	}

	if idx+4 != len(data) {
		return nil, ErrRecordCorrupt
	}
	rec.AccountVersion = binary.BigEndian.Uint32(data[idx:])

	return rec, nil
}
