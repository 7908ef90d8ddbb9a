package sink

// TickFunc is called every time CountingSink accumulates another tick
// interval's worth of samples (spec §6.3 "sample-click").
type TickFunc func()

// CountingSink wraps a Sink and raises an optional periodic tick for UI
// refresh, implemented exactly as spec §6.3 prescribes: "emit after
// every floor(sampleRate/ticksPerSecond) accumulated samples."
type CountingSink struct {
	Sink

	onTick       TickFunc
	tickInterval int
	accumulated  int
}

// NewCountingSink wraps sink so that onTick fires once per
// floor(sink.SampleRate()/ticksPerSecond) samples played. A
// ticksPerSecond of 0 disables ticking.
func NewCountingSink(s Sink, ticksPerSecond float64, onTick TickFunc) *CountingSink {
	interval := 0
	if ticksPerSecond > 0 {
		interval = int(s.SampleRate() / ticksPerSecond)
	}
	return &CountingSink{Sink: s, onTick: onTick, tickInterval: interval}
}

// Play forwards to the wrapped sink, then advances the tick counter,
// firing onTick for every whole interval crossed by this block.
func (c *CountingSink) Play(left, right []float64) error {
	if err := c.Sink.Play(left, right); err != nil {
		return err
	}
	if c.tickInterval <= 0 || c.onTick == nil {
		return nil
	}
	c.accumulated += len(left)
	for c.accumulated >= c.tickInterval {
		c.accumulated -= c.tickInterval
		c.onTick()
	}
	return nil
}
