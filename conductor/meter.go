package conductor

import (
	"math"

	"github.com/viterin/vek"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/engine"
)

type (
	// Meter computes per-channel levels of the rendered audio on its own
	// goroutine, so the output callback never waits for the analysis. The
	// callback posts pooled buffers through broker.ToMeter; the meter posts a
	// MeterResult per buffer to broker.ToModel.
	Meter struct {
		broker  *Broker
		maxPeak [2]float64
		tmp     []float64
		tmp2    []float64
	}

	// Decibel is a level relative to full scale, in dB. Zero signal is -Inf.
	Decibel float64

	// MeterResult carries the levels of one analyzed buffer. Index 0 is the
	// left channel. Hold is the highest peak seen since the last reset.
	MeterResult struct {
		Peak [2]Decibel
		RMS  [2]Decibel
		Hold [2]Decibel
	}
)

func NewMeter(broker *Broker) *Meter {
	return &Meter{broker: broker}
}

// RenderSource wraps the engine render into the callback the output device
// pulls, posting a pooled copy of every rendered buffer to the meter. If the
// meter is backed up the copy is dropped; levels are cosmetic and must never
// stall the audio.
func RenderSource(e *engine.Engine, broker *Broker) func(buf playground.AudioBuffer) error {
	return func(buf playground.AudioBuffer) error {
		if err := e.Render(buf); err != nil {
			return err
		}
		tap := broker.GetAudioBuffer()
		*tap = append(*tap, buf...)
		if !TrySend(broker.ToMeter, MsgToMeter{Data: tap}) {
			broker.PutAudioBuffer(tap)
		}
		return nil
	}
}

// Run is the main loop of the meter goroutine. It processes messages until a
// closure request arrives on broker.CloseMeter and closes
// broker.FinishedMeter on the way out.
func (m *Meter) Run() {
	for {
		select {
		case <-m.broker.CloseMeter:
			close(m.broker.FinishedMeter)
			return
		case msg := <-m.broker.ToMeter:
			if msg.Reset {
				m.maxPeak = [2]float64{}
			}
			switch data := msg.Data.(type) {
			case *playground.AudioBuffer:
				res := m.analyze(*data)
				m.broker.PutAudioBuffer(data)
				TrySend(m.broker.ToModel, MsgToModel{HasMeterResult: true, MeterResult: res})
			case func():
				data()
			}
		}
	}
}

func (m *Meter) analyze(buf playground.AudioBuffer) (res MeterResult) {
	setSliceLength(&m.tmp, len(buf))
	setSliceLength(&m.tmp2, len(buf))
	for chn := range 2 {
		// deinterleave the channel
		for i := range buf {
			m.tmp[i] = buf[i][chn]
		}
		var peak, rms float64
		if len(buf) > 0 {
			vek.Abs_Inplace(m.tmp)
			peak = vek.Max(m.tmp)
			sq := vek.Mul_Into(m.tmp2, m.tmp, m.tmp)
			rms = math.Sqrt(vek.Mean(sq))
		}
		if m.maxPeak[chn] < peak {
			m.maxPeak[chn] = peak
		}
		res.Peak[chn] = linearToDecibel(peak)
		res.RMS[chn] = linearToDecibel(rms)
		res.Hold[chn] = linearToDecibel(m.maxPeak[chn])
	}
	return res
}

func linearToDecibel(v float64) Decibel {
	return Decibel(20 * math.Log10(v))
}

func setSliceLength[T any](slice *[]T, length int) {
	if len(*slice) < length {
		*slice = append(*slice, make([]T, length-len(*slice))...)
	}
	*slice = (*slice)[:length]
}
