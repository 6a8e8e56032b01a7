package speech

import (
	"errors"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ReadWAVFile reads a WAV from path and returns mono 16kHz PCM as float32
// samples in [-1,1]. It supports input WAVs with any sample rate and 1 or
// 2 channels, converting as needed.
func ReadWAVFile(path string) (AudioData, error) {
	fh, err := os.Open(path)
	if err != nil {
		return AudioData{}, err
	}
	defer fh.Close()

	dec := wav.NewDecoder(fh)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return AudioData{}, err
	}
	if buf == nil || buf.Data == nil {
		return AudioData{}, errors.New("invalid or empty wav data")
	}

	inRate := dec.SampleRate
	chans := dec.NumChans
	if inRate <= 0 {
		return AudioData{}, errors.New("invalid sample rate")
	}
	if chans != 1 && chans != 2 {
		return AudioData{}, errors.New("unsupported channel count")
	}

	// Convert to float64 for processing
	data := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float64(v) / float64(1<<15)
		if data[i] > 1 {
			data[i] = 1
		} else if data[i] < -1 {
			data[i] = -1
		}
	}

	// Mixdown to mono if stereo
	mono := data
	if chans == 2 {
		mono = make([]float64, len(data)/2)
		for i := 0; i < len(mono); i++ {
			l := data[2*i]
			r := data[2*i+1]
			mono[i] = 0.5 * (l + r)
		}
	}

	// Resample to 16k using simple linear interpolation (adequate for speech)
	if int(inRate) != SampleRate {
		ratio := float64(SampleRate) / float64(inRate)
		outLen := int(math.Ceil(float64(len(mono)) * ratio))
		res := make([]float64, outLen)
		for i := 0; i < outLen; i++ {
			srcPos := float64(i) / ratio
			j := int(math.Floor(srcPos))
			t := srcPos - float64(j)
			if j+1 < len(mono) {
				res[i] = (1-t)*mono[j] + t*mono[j+1]
			} else {
				res[i] = mono[j]
			}
		}
		mono = res
	}

	out := make([]float32, len(mono))
	for i := range mono {
		out[i] = float32(mono[i])
	}
	return AudioData{SampleRate: SampleRate, Samples: out}, nil
}

// WriteWAVFile writes a as 16-bit PCM.
func WriteWAVFile(path string, a AudioData) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(fh, a.SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: a.SampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(a.Samples)),
	}
	for i, s := range a.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}
	if err := enc.Write(buf); err != nil {
		fh.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
