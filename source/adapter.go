package source

import (
	"context"

	"hz.tools/radio"
)

// Adapter is the source adapter of spec §4.17: it owns the connection to
// a Tuner and exposes a uniform float-block reading interface to the
// controller, converting raw unsigned-byte I/Q into normalised
// [-1, +1] floats through the radio package's buffer pools so that
// steady-state operation allocates nothing per block.
type Adapter struct {
	tuner Tuner

	bytePool  *radio.BytePool
	floatPool *radio.Pool
}

// NewAdapter builds a source adapter around tuner, pooling up to
// poolDepth buffers of each distinct length requested.
func NewAdapter(tuner Tuner, poolDepth int) *Adapter {
	return &Adapter{
		tuner:     tuner,
		bytePool:  radio.NewBytePool(poolDepth),
		floatPool: radio.NewPool(poolDepth),
	}
}

// ReadBlock performs one full read cycle (spec §4.17):
//  1. obtain raw bytes from the tuner,
//  2. convert pairwise to float (I, Q) in [-1, +1] using buffer pools,
//  3. attach the tuner's reported centre frequency and direct-sampling
//     flag,
//  4. return the float block.
//
// The raw byte buffer is released back to the byte pool before
// returning; the float block's I/Q slices are drawn from the float pool
// and should be returned via ReleaseBlock once the caller is done with
// them.
func (a *Adapter) ReadBlock(ctx context.Context, length int) (radio.FloatBlock, error) {
	raw, err := a.tuner.ReadSamples(ctx, length)
	if err != nil {
		return radio.FloatBlock{}, radio.DeviceError(err)
	}

	dst := radio.FloatBlock{
		I: a.floatPool.Acquire(length),
		Q: a.floatPool.Acquire(length),
	}
	dst = radio.ToFloatBlock(raw, dst)

	a.bytePool.Release(raw.IQ)
	return dst, nil
}

// ReleaseBlock returns a float block's I/Q slices to the pool for reuse
// by a subsequent ReadBlock call.
func (a *Adapter) ReleaseBlock(b radio.FloatBlock) {
	a.floatPool.Release(b.I)
	a.floatPool.Release(b.Q)
}

// Tuner returns the underlying tuner, e.g. so a caller can drive its
// control operations (SetSampleRate, SetCentreFrequency, ...) directly.
func (a *Adapter) Tuner() Tuner {
	return a.tuner
}
