package tts

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

// wavFormat describes the PCM layout of a decoded wav clip.
type wavFormat struct {
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

func (f wavFormat) bytesPerSecond() int {
	return int(f.SampleRate) * int(f.Channels) * int(f.BitsPerSample) / 8
}

// decodeWAV parses a RIFF/WAVE byte stream and returns its PCM format
// and raw sample data. Only uncompressed PCM is supported.
func decodeWAV(data []byte) (wavFormat, []byte, error) {
	var f wavFormat

	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return f, nil, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var pcm []byte
	haveFmt := false

	// Walk the chunk list; chunks are padded to even sizes.
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := data[off+8:]
		if size > len(body) {
			return f, nil, fmt.Errorf("truncated %q chunk", id)
		}
		body = body[:size]

		switch id {
		case "fmt ":
			if size < 16 {
				return f, nil, fmt.Errorf("fmt chunk too short: %d bytes", size)
			}
			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			if audioFormat != 1 {
				return f, nil, fmt.Errorf("unsupported wav encoding %d (PCM only)", audioFormat)
			}
			f.Channels = binary.LittleEndian.Uint16(body[2:4])
			f.SampleRate = binary.LittleEndian.Uint32(body[4:8])
			f.BitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true
		case "data":
			pcm = body
		}

		off += 8 + size
		if size%2 == 1 {
			off++
		}
	}

	if !haveFmt {
		return f, nil, fmt.Errorf("missing fmt chunk")
	}
	if pcm == nil {
		return f, nil, fmt.Errorf("missing data chunk")
	}

	return f, pcm, nil
}

// encodeWAV builds a canonical RIFF/WAVE byte stream from PCM data.
func encodeWAV(f wavFormat, pcm []byte) []byte {
	blockAlign := f.Channels * f.BitsPerSample / 8
	byteRate := f.SampleRate * uint32(blockAlign)

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+len(pcm)))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, f.Channels)
	binary.Write(&b, binary.LittleEndian, f.SampleRate)
	binary.Write(&b, binary.LittleEndian, byteRate)
	binary.Write(&b, binary.LittleEndian, blockAlign)
	binary.Write(&b, binary.LittleEndian, f.BitsPerSample)

	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(len(pcm)))
	b.Write(pcm)

	return b.Bytes()
}

// concatWAV joins wav clips in order with a fixed silence gap between
// consecutive clips. All clips must share one PCM format.
func concatWAV(clips [][]byte, pause time.Duration) ([]byte, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("no audio clips to combine")
	}

	var format wavFormat
	var pcm []byte
	var silence []byte

	for i, clip := range clips {
		f, data, err := decodeWAV(clip)
		if err != nil {
			return nil, fmt.Errorf("failed to decode clip %d: %w", i, err)
		}

		if i == 0 {
			format = f
			gapBytes := format.bytesPerSecond() * int(pause.Milliseconds()) / 1000
			// Keep the gap aligned to whole frames.
			frame := int(format.Channels) * int(format.BitsPerSample) / 8
			if frame > 0 {
				gapBytes -= gapBytes % frame
			}
			silence = make([]byte, gapBytes)
		} else {
			if f != format {
				return nil, fmt.Errorf("clip %d format %+v does not match first clip %+v", i, f, format)
			}
			pcm = append(pcm, silence...)
		}

		pcm = append(pcm, data...)
	}

	return encodeWAV(format, pcm), nil
}
