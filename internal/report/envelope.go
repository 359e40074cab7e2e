package report

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// EnvelopeMagic marks snipref binary report envelopes.
	EnvelopeMagic = "SRB1"

	// envelopeHeaderSize is magic + flags + raw length + payload length.
	envelopeHeaderSize = 13

	// flagCompressed marks an lz4-compressed payload.
	flagCompressed = 0x01

	magicSize     = 4
	flagsOffset   = 4
	rawLenOffset  = 5
	payloadOffset = 9

	// maxPayloadSize bounds both encoded payloads and the lengths
	// accepted from an envelope header, so a corrupt header cannot
	// drive a multi-gigabyte allocation before content validation.
	maxPayloadSize = 256 << 20
)

var (
	// ErrInvalidEnvelope indicates a malformed or truncated binary payload.
	ErrInvalidEnvelope = errors.New("invalid report envelope")
	// ErrPayloadTooLarge indicates the payload exceeds the envelope limit.
	ErrPayloadTooLarge = errors.New("report payload too large")
)

// EncodeEnvelope serializes the report into a binary envelope: magic,
// flags, raw payload length, stored payload length, then the JSON
// payload, lz4 block-compressed when compress is set. Compression falls
// back to the raw payload when it would not shrink it.
func EncodeEnvelope(r *Report, writer io.Writer, compress bool) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal envelope payload: %w", err)
	}

	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	rawLen := len(payload)
	flags := byte(0)

	if compress {
		compressed, ok := compressPayload(payload)
		if ok {
			payload = compressed
			flags |= flagCompressed
		}
	}

	header := make([]byte, envelopeHeaderSize)
	copy(header[:magicSize], EnvelopeMagic)
	header[flagsOffset] = flags
	binary.LittleEndian.PutUint32(header[rawLenOffset:], uint32(rawLen))
	binary.LittleEndian.PutUint32(header[payloadOffset:], uint32(len(payload)))

	_, err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("write envelope header: %w", err)
	}

	_, err = writer.Write(payload)
	if err != nil {
		return fmt.Errorf("write envelope payload: %w", err)
	}

	return nil
}

// DecodeEnvelope reads a binary envelope back into a Report.
func DecodeEnvelope(reader io.Reader) (*Report, error) {
	payload, err := decodePayload(reader)
	if err != nil {
		return nil, err
	}

	var r Report

	err = json.Unmarshal(payload, &r)
	if err != nil {
		return nil, errors.Join(ErrInvalidEnvelope, err)
	}

	return &r, nil
}

// decodePayload validates the header and returns the raw JSON payload.
func decodePayload(reader io.Reader) ([]byte, error) {
	header := make([]byte, envelopeHeaderSize)

	_, err := io.ReadFull(reader, header)
	if err != nil {
		return nil, errors.Join(ErrInvalidEnvelope, err)
	}

	if !bytes.Equal(header[:magicSize], []byte(EnvelopeMagic)) {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidEnvelope)
	}

	flags := header[flagsOffset]
	rawLen := binary.LittleEndian.Uint32(header[rawLenOffset:])
	payloadLen := binary.LittleEndian.Uint32(header[payloadOffset:])

	if rawLen > maxPayloadSize || payloadLen > maxPayloadSize {
		return nil, fmt.Errorf("%w: header declares %d/%d bytes", ErrPayloadTooLarge, rawLen, payloadLen)
	}

	payload := make([]byte, payloadLen)

	_, err = io.ReadFull(reader, payload)
	if err != nil {
		return nil, errors.Join(ErrInvalidEnvelope, err)
	}

	if flags&flagCompressed == 0 {
		return payload, nil
	}

	return decompressPayload(payload, int(rawLen))
}

// compressPayload lz4-compresses the payload. Returns false when the
// compressed form is not smaller.
func compressPayload(payload []byte) ([]byte, bool) {
	compressed := make([]byte, lz4.CompressBlockBound(len(payload)))

	written, err := lz4.CompressBlock(payload, compressed, nil)
	if err != nil || written == 0 || written >= len(payload) {
		return nil, false
	}

	return compressed[:written], true
}

// decompressPayload reverses compressPayload given the raw length from
// the envelope header.
func decompressPayload(payload []byte, rawLen int) ([]byte, error) {
	decompressed := make([]byte, rawLen)

	n, err := lz4.UncompressBlock(payload, decompressed)
	if err != nil {
		return nil, errors.Join(ErrInvalidEnvelope, err)
	}

	if n != rawLen {
		return nil, fmt.Errorf("%w: short decompression", ErrInvalidEnvelope)
	}

	return decompressed[:n], nil
}
