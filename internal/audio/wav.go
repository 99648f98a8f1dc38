package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidAudio marks input that cannot be decoded as PCM WAV audio.
// A file failing with this error is skipped without affecting the rest of
// the batch.
var ErrInvalidAudio = errors.New("invalid audio input")

// WAVHeader represents the canonical 44-byte header of a PCM WAV file used
// when encoding output chunks.
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

// EncodeWAV encodes a buffer into PCM-16 WAV format, preserving the
// buffer's sample rate and channel count.
func EncodeWAV(buf *Buffer) ([]byte, error) {
	if buf == nil || len(buf.Samples()) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio buffer")
	}

	numChannels := uint16(buf.Channels())
	bitsPerSample := uint16(16)
	dataSize := uint32(len(buf.Samples()) * 2)

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   numChannels,
		SampleRate:    uint32(buf.SampleRate()),
		ByteRate:      uint32(buf.SampleRate()) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	out := bytes.NewBuffer(make([]byte, 0, 44+len(buf.Samples())*2))

	if err := binary.Write(out, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	if err := binary.Write(out, binary.LittleEndian, buf.Samples()); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	return out.Bytes(), nil
}

// DecodeWAV decodes PCM-16 WAV data into a buffer with its native sample
// rate and channel count. Extra RIFF sub-chunks (LIST, fact, cue) between
// the fmt and data chunks are skipped.
func DecodeWAV(data []byte) (*Buffer, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: need at least 12 bytes, got %d", ErrInvalidAudio, len(data))
	}

	if string(data[0:4]) != "RIFF" {
		return nil, fmt.Errorf("%w: missing RIFF header", ErrInvalidAudio)
	}

	if string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing WAVE format", ErrInvalidAudio)
	}

	var (
		sampleRate    int
		numChannels   int
		bitsPerSample int
		audioFormat   int
		haveFmt       bool
		audioData     []byte
	)

	// Walk the RIFF sub-chunks looking for fmt and data
	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		if chunkSize < 0 || body+chunkSize > len(data) {
			return nil, fmt.Errorf("%w: truncated %q chunk", ErrInvalidAudio, chunkID)
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too short (%d bytes)", ErrInvalidAudio, chunkSize)
			}
			audioFormat = int(binary.LittleEndian.Uint16(data[body : body+2]))
			numChannels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			audioData = data[body : body+chunkSize]
		}

		// Chunks are word-aligned
		pos = body + chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("%w: missing fmt chunk", ErrInvalidAudio)
	}

	if audioData == nil {
		return nil, fmt.Errorf("%w: missing data chunk", ErrInvalidAudio)
	}

	if audioFormat != 1 {
		return nil, fmt.Errorf("%w: unsupported audio format %d (only PCM is supported)", ErrInvalidAudio, audioFormat)
	}

	if bitsPerSample != 16 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d (only 16-bit is supported)", ErrInvalidAudio, bitsPerSample)
	}

	if numChannels < 1 {
		return nil, fmt.Errorf("%w: invalid channel count %d", ErrInvalidAudio, numChannels)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrInvalidAudio, sampleRate)
	}

	numSamples := len(audioData) / 2
	samples := make([]int16, numSamples)
	for i := 0; i < numSamples; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(audioData[i*2 : i*2+2]))
	}

	// Drop a trailing partial frame rather than failing the file
	samples = samples[:numSamples/numChannels*numChannels]

	buf, err := NewBuffer(samples, sampleRate, numChannels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}

	return buf, nil
}

// ValidateWAV checks that data carries a decodable PCM WAV stream.
func ValidateWAV(data []byte) error {
	_, err := DecodeWAV(data)
	return err
}
