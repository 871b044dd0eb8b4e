package realtimews

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"
)

func TestAudioAssembler(t *testing.T) {
	a := NewAudioAssembler()
	chunks := [][]byte{{0x01, 0x02}, {0x03, 0x04}, {0x05, 0x06}}
	for _, c := range chunks {
		if err := a.OnDelta(ResponseAudioDelta{ResponseID: "resp_1", DeltaBase64: base64.StdEncoding.EncodeToString(c)}); err != nil {
			t.Fatalf("OnDelta: %v", err)
		}
	}

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	if got := a.OnDone("resp_1"); !bytes.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := a.OnDone("resp_1"); got != nil {
		t.Errorf("expected buffer to be released, got %v", got)
	}
}

func TestAudioAssembler_InvalidBase64(t *testing.T) {
	a := NewAudioAssembler()
	if err := a.OnDelta(ResponseAudioDelta{ResponseID: "resp_1", DeltaBase64: "invalid-base64!"}); err == nil {
		t.Error("expected error for invalid base64, got nil")
	}
	if got := a.OnDone("resp_1"); len(got) != 0 {
		t.Errorf("invalid delta should not be buffered, got %v", got)
	}
}

func TestCollectAudio(t *testing.T) {
	var e Emitter
	got := map[string][]byte{}
	var errs []*RealtimeError
	e.OnError(func(err *RealtimeError) { errs = append(errs, err) })
	off := CollectAudio(&e, func(responseID string, pcm []byte) { got[responseID] = pcm })
	defer off()

	emitDelta := func(id, b64 string) {
		e.emit(string(EventTypeResponseAudioDelta), ResponseAudioDelta{ResponseID: id, DeltaBase64: b64})
	}
	emitDelta("r1", base64.StdEncoding.EncodeToString([]byte{1, 0}))
	emitDelta("r2", base64.StdEncoding.EncodeToString([]byte{9, 9}))
	emitDelta("r1", "%%%")
	emitDelta("r1", base64.StdEncoding.EncodeToString([]byte{2, 0}))
	e.emit(string(EventTypeResponseAudioDone), ResponseAudioDone{ResponseID: "r1"})

	if !bytes.Equal(got["r1"], []byte{1, 0, 2, 0}) {
		t.Errorf("r1: expected undecodable delta to be skipped, got %v", got["r1"])
	}
	if _, ok := got["r2"]; ok {
		t.Error("r2 should not complete before its done event")
	}
	if len(errs) != 1 || errs[0].Message != "could not decode audio delta" || errs[0].Cause == nil {
		t.Errorf("expected one decode error report, got %v", errs)
	}
}

func TestPCM16BytesFor(t *testing.T) {
	tests := []struct {
		ms, sampleRate, expected int
	}{
		{200, 24000, 9600},
		{1000, 16000, 32000},
		{0, 24000, 0},
	}
	for _, tt := range tests {
		if got := PCM16BytesFor(tt.ms, tt.sampleRate); got != tt.expected {
			t.Errorf("PCM16BytesFor(%d, %d) = %d, want %d", tt.ms, tt.sampleRate, got, tt.expected)
		}
	}
}

func TestWAVFromPCM16Mono(t *testing.T) {
	pcm := []byte{0x00, 0x01, 0xFF, 0xFE}
	wav := WAVFromPCM16Mono(pcm, DefaultSampleRate)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("expected WAV length %d, got %d", 44+len(pcm), len(wav))
	}
	for off, tag := range map[int]string{0: "RIFF", 8: "WAVE", 12: "fmt ", 36: "data"} {
		if string(wav[off:off+4]) != tag {
			t.Errorf("expected %q at offset %d, got %q", tag, off, wav[off:off+4])
		}
	}
	if got := binary.LittleEndian.Uint32(wav[4:]); got != uint32(36+len(pcm)) {
		t.Errorf("RIFF size: got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:]); got != DefaultSampleRate {
		t.Errorf("sample rate: got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:]); got != DefaultSampleRate*2 {
		t.Errorf("byte rate: got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:]); got != uint32(len(pcm)) {
		t.Errorf("data size: got %d", got)
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Error("PCM data not correctly appended")
	}
}

func TestAppendPCM16(t *testing.T) {
	ev := AppendPCM16([]byte{0x01, 0x02})
	if ev.Audio != "AQI=" {
		t.Errorf("expected base64 %q, got %q", "AQI=", ev.Audio)
	}
	if ev.ClientEventType() != "input_audio_buffer.append" {
		t.Errorf("unexpected type %q", ev.ClientEventType())
	}
}

func BenchmarkWAVFromPCM16Mono(b *testing.B) {
	pcm := make([]byte, PCM16BytesFor(200, DefaultSampleRate))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = WAVFromPCM16Mono(pcm, DefaultSampleRate)
	}
}
