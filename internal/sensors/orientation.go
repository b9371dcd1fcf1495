// Package sensors defines the rover's sensing contracts: side-mounted
// rangefinders for wall detection and a polled orientation source for
// attitude. Hardware and simulated rigs both satisfy the same interfaces.
package sensors

import (
	"sync"
	"time"
)

// Attitude is one orientation sample, in degrees.
type Attitude struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// Sampler produces orientation samples on demand.
type Sampler interface {
	Sample() (Attitude, error)
}

// Orientation polls a Sampler in the background and serves the latest
// sample without blocking callers on the sensor bus.
type Orientation struct {
	src Sampler

	mu      sync.Mutex
	current Attitude
	err     error

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewOrientation takes one synchronous sample to seed the state, then
// starts a poller reading src every interval until Stop is called.
func NewOrientation(src Sampler, interval time.Duration) *Orientation {
	o := &Orientation{
		src:  src,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	o.current, o.err = src.Sample()
	go o.poll(interval)
	return o
}

func (o *Orientation) poll(interval time.Duration) {
	defer close(o.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			o.Refresh()
		}
	}
}

// Refresh samples the source right now, updates the cached attitude and
// returns the fresh sample. On error the cache keeps the last good
// sample and the error is surfaced.
func (o *Orientation) Refresh() (Attitude, error) {
	a, err := o.src.Sample()
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.err = err
		return o.current, err
	}
	o.current, o.err = a, nil
	return a, nil
}

// Current returns the latest sample and the most recent sampling error.
func (o *Orientation) Current() (Attitude, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current, o.err
}

// Roll returns the latest roll in degrees.
func (o *Orientation) Roll() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current.Roll
}

// Pitch returns the latest pitch in degrees.
func (o *Orientation) Pitch() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current.Pitch
}

// Yaw returns the latest yaw in degrees.
func (o *Orientation) Yaw() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current.Yaw
}

// Stop ends polling and waits for the worker to exit. It is safe to call
// more than once.
func (o *Orientation) Stop() {
	o.stopOnce.Do(func() {
		close(o.stop)
	})
	<-o.done
}
