package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Wall clock pixel timer and delays for driving real
 *		hardware, such as the PWM tone output.
 *
 * Description:	Go timers are too coarse for a 190 us period, so
 *		the pixel clock goroutine is pinned to an OS thread
 *		and spins until each deadline.  Deadlines are computed
 *		from the arm time, never from the previous tick, so a
 *		late tick does not push the rest of the line back.
 *
 *		Long waits sleep for all but the last couple of
 *		milliseconds and then spin.
 *
 *---------------------------------------------------------------*/

import (
	"runtime"
	"sync"
	"time"
)

const sleepSlack = 2 * time.Millisecond

// RealtimeClock implements PeriodicTimer and Delay against the wall clock.
type RealtimeClock struct {
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewRealtimeClock() *RealtimeClock {
	return new(RealtimeClock)
}

func spinUntil(deadline time.Time) {
	for {
		var remaining = time.Until(deadline)
		if remaining <= 0 {
			return
		}

		if remaining > sleepSlack {
			time.Sleep(remaining - sleepSlack)
		}
	}
}

func (c *RealtimeClock) Wait(d time.Duration) {
	spinUntil(time.Now().Add(d))
}

func (c *RealtimeClock) Arm(interval time.Duration, fn func()) {
	var stop = make(chan struct{})

	c.mu.Lock()
	c.stop = stop
	c.mu.Unlock()

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		var start = time.Now()

		for k := 1; ; k++ {
			fn()

			select {
			case <-stop:
				return
			default:
			}

			spinUntil(start.Add(time.Duration(k) * interval))
		}
	}()
}

func (c *RealtimeClock) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// Idle blocks until the pixel clock goroutine has exited.
func (c *RealtimeClock) Idle() {
	c.wg.Wait()
}
