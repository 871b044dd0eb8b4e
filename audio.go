package realtimews

import (
	"encoding/base64"
	"encoding/binary"
	"sync"
)

// DefaultSampleRate is the PCM16 sample rate used by the realtime API (24kHz).
const DefaultSampleRate = 24000

// AudioAssembler collects response.audio.delta chunks per response ID.
// It is safe for concurrent use.
type AudioAssembler struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewAudioAssembler creates a new AudioAssembler instance.
func NewAudioAssembler() *AudioAssembler { return &AudioAssembler{data: make(map[string][]byte)} }

// OnDelta decodes and appends one audio chunk.
func (a *AudioAssembler) OnDelta(e ResponseAudioDelta) error {
	b, err := base64.StdEncoding.DecodeString(e.DeltaBase64)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.data[e.ResponseID] = append(a.data[e.ResponseID], b...)
	a.mu.Unlock()
	return nil
}

// OnDone retrieves and removes the audio collected for a response ID.
func (a *AudioAssembler) OnDone(id string) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf := a.data[id]
	delete(a.data, id)
	return buf
}

// CollectAudio subscribes an assembler to src and calls fn with the complete
// PCM of each response when its response.audio.done arrives. Undecodable
// deltas are skipped and reported to src's error listeners.
func CollectAudio(src interface{ Events() *Emitter }, fn func(responseID string, pcm []byte)) (off func()) {
	a := NewAudioAssembler()
	em := src.Events()
	offDelta := Subscribe(src, func(e ResponseAudioDelta) {
		if err := a.OnDelta(e); err != nil {
			em.reportError(nil, "could not decode audio delta", err)
		}
	})
	offDone := Subscribe(src, func(e ResponseAudioDone) { fn(e.ResponseID, a.OnDone(e.ResponseID)) })
	return func() { offDelta(); offDone() }
}

// WAVFromPCM16Mono converts raw PCM16 audio data to a complete WAV file.
// The input should be 16-bit little-endian PCM data (mono channel).
func WAVFromPCM16Mono(pcm []byte, sampleRate int) []byte {
	blockAlign := uint16(2)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataLen := uint32(len(pcm))
	out := make([]byte, 44+len(pcm))

	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], 36+dataLen)
	copy(out[8:], "WAVE")

	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(out[20:], 1)  // PCM
	binary.LittleEndian.PutUint16(out[22:], 1)  // mono
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], byteRate)
	binary.LittleEndian.PutUint16(out[32:], blockAlign)
	binary.LittleEndian.PutUint16(out[34:], 16) // bits per sample

	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], dataLen)
	copy(out[44:], pcm)
	return out
}

// PCM16BytesFor calculates the number of bytes needed for PCM16 audio of given duration.
func PCM16BytesFor(ms int, sampleRate int) int { return (ms * sampleRate * 2) / 1000 }
