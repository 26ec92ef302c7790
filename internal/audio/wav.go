package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// decodeWAV parses a RIFF/WAVE container holding 16-bit linear PCM. Other
// encodings (compressed formats, other bit depths) are rejected so that the
// caller can fall back to raw-PCM interpretation or give up.
func decodeWAV(raw []byte) (Clip, error) {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return Clip{}, fmt.Errorf("not a RIFF/WAVE payload")
	}

	var (
		sampleRate    int
		channels      int
		bitsPerSample int
		data          []byte
		haveFormat    bool
	)

	offset := 12
	for offset+8 <= len(raw) {
		chunkID := string(raw[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(raw[offset+4 : offset+8]))
		body := raw[offset+8:]
		if chunkSize > len(body) {
			return Clip{}, fmt.Errorf("truncated %q chunk: declared %d bytes, have %d", chunkID, chunkSize, len(body))
		}
		body = body[:chunkSize]

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return Clip{}, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
			}
			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			if audioFormat != 1 {
				return Clip{}, fmt.Errorf("unsupported WAVE format %d (only PCM)", audioFormat)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFormat = true
		case "data":
			data = body
		}

		// Chunks are word-aligned
		offset += 8 + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if !haveFormat {
		return Clip{}, fmt.Errorf("missing fmt chunk")
	}
	if data == nil {
		return Clip{}, fmt.Errorf("missing data chunk")
	}
	if bitsPerSample != 16 {
		return Clip{}, fmt.Errorf("unsupported bit depth %d (only 16)", bitsPerSample)
	}
	if channels < 1 {
		return Clip{}, fmt.Errorf("invalid channel count %d", channels)
	}

	samples, err := linear16Samples(data)
	if err != nil {
		return Clip{}, err
	}
	return Clip{
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    samples,
	}, nil
}

// encodeWAV renders a clip back into a 16-bit PCM RIFF/WAVE file so it can
// be handed to a platform player process.
func encodeWAV(clip Clip) []byte {
	dataSize := len(clip.Samples) * 2
	byteRate := clip.SampleRate * clip.Channels * 2
	blockAlign := clip.Channels * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(clip.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(clip.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(16)) // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range clip.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.Write(&buf, binary.LittleEndian, int16(s*32767))
	}

	return buf.Bytes()
}
