package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jrockway/beaglebone-word-clock/control/clock"
	"github.com/jrockway/beaglebone-word-clock/control/rtc"
	"github.com/jrockway/beaglebone-word-clock/control/scanner"
	"github.com/jrockway/beaglebone-word-clock/control/screen"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	bind    = flag.String("bind", "", "address to bind for debug/metrics server; empty to disable")
	i2cBus  = flag.String("i2c", "", "i2c bus that the rtc is on; empty for the first one")
	rtcAddr = flag.Uint("rtc-addr", rtc.DefaultAddr, "i2c address of the ds1307")
	spiPort = flag.String("spi", "", "spi port that drives the shift registers; empty to bit-bang -data and -clock")
	spiHz   = scanner.DefaultSPIFrequency

	dataPin  = flag.String("data", "P9_12", "gpio for the shift register serial data")
	clockPin = flag.String("clock", "P9_15", "gpio for the shift register clock")
	latchPin = flag.String("latch", "P9_23", "gpio for the shift register storage latch")
	oePin    = flag.String("oe", "", "gpio for the active-low output enable; empty if tied low")
	resetPin = flag.String("reset", "", "gpio for the active-low master reset; empty if tied high")
	upPin    = flag.String("up", "P8_7", "gpio for the increment button")
	downPin  = flag.String("down", "P8_8", "gpio for the decrement button")

	dwell           = flag.Duration("dwell", scanner.DefaultDwell, "how long each row stays lit")
	debounce        = flag.Int("debounce", clock.DefaultConfig.Debounce, "refreshes a button must be held to register")
	resync          = flag.Int("resync", clock.DefaultConfig.Resync, "refreshes between reads of the rtc")
	transitionEvery = flag.Int("transition-every", clock.DefaultConfig.TransitionEvery, "refreshes between rows of the hour change animation")
	transitionSteps = flag.Int("transition-steps", clock.DefaultConfig.TransitionSteps, "rows scrolled by the hour change animation")
	repeat          = flag.Bool("repeat", false, "repeat adjustments while a button is held")
)

// pin looks up a gpio by name.  An empty name is an unconnected pin and returns nil.
func pin(flagName, name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("-%s: no gpio named %q", flagName, name)
	}
	return p, nil
}

func mustPin(flagName, name string) gpio.PinIO {
	p, err := pin(flagName, name)
	if err != nil {
		log.Fatal(err)
	}
	if p == nil {
		log.Fatalf("-%s is required", flagName)
	}
	return p
}

// optionalPin is like mustPin, but an empty name is allowed and returns nil.
func optionalPin(flagName, name string) gpio.PinOut {
	p, err := pin(flagName, name)
	if err != nil {
		log.Fatal(err)
	}
	return p
}

// rtcAddress validates -rtc-addr as a 7-bit i2c address.
func rtcAddress(addr uint) (uint16, error) {
	if addr > 0x7f {
		return 0, fmt.Errorf("-rtc-addr: %#x is not a 7-bit i2c address", addr)
	}
	return uint16(addr), nil
}

// closeAll closes every closer, in reverse order, and returns the first error.
func closeAll(closers []io.Closer) error {
	var result error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil && result == nil {
			result = fmt.Errorf("close %v: %w", closers[i], err)
		}
	}
	return result
}

func main() {
	flag.Var(&spiHz, "spi-hz", "spi clock frequency")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatalf("init periph.io: %v", err)
	}

	addr, err := rtcAddress(*rtcAddr)
	if err != nil {
		log.Fatal(err)
	}

	// Buses to close on the way out; os.Exit skips deferred calls.
	var closers []io.Closer
	bus, err := i2creg.Open(*i2cBus)
	if err != nil {
		log.Fatalf("open i2c bus %q: %v", *i2cBus, err)
	}
	closers = append(closers, bus)
	ds := rtc.NewDS1307(bus, addr)

	var reg scanner.Register
	latch := mustPin("latch", *latchPin)
	if *spiPort != "" {
		port, err := spireg.Open(*spiPort)
		if err != nil {
			log.Fatalf("open spi port %q: %v", *spiPort, err)
		}
		closers = append(closers, port)
		s, err := scanner.OpenSPI(port, spiHz, latch)
		if err != nil {
			log.Fatalf("init shift registers: %v", err)
		}
		reg = s
	} else {
		reg = &scanner.Pins{
			Data:   mustPin("data", *dataPin),
			Clock:  mustPin("clock", *clockPin),
			Strobe: latch,
		}
	}
	output := &scanner.Output{
		Enable: optionalPin("oe", *oePin),
		Reset:  optionalPin("reset", *resetPin),
	}
	lamps := scanner.New(reg, *dwell)
	lamps.Clear()
	if err := output.Start(); err != nil {
		log.Fatalf("enable shift register outputs: %v", err)
	}

	buttons, err := clock.NewButtons(mustPin("up", *upPin), mustPin("down", *downPin))
	if err != nil {
		log.Fatalf("init buttons: %v", err)
	}

	preview := screen.NewScreen()

	ctx, cancel := context.WithCancel(context.Background())

	httpDoneCh := make(chan error)
	var httpServer *http.Server
	if *bind != "" {
		http.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/display.png", http.StatusFound)
		})
		http.Handle("/display.png", preview)
		http.Handle("/metrics", promhttp.Handler())

		httpServer = &http.Server{Addr: *bind}
		go func() {
			log.Printf("http server listening on %s", httpServer.Addr)
			err := httpServer.ListenAndServe()
			select {
			case httpDoneCh <- err:
			case <-ctx.Done():
			}
			close(httpDoneCh)
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	cl := clock.New(clock.Config{
		Debounce:        *debounce,
		AutoRepeat:      *repeat,
		Resync:          *resync,
		TransitionEvery: *transitionEvery,
		TransitionSteps: *transitionSteps,
	}, ds, buttons, clock.Displays{lamps, preview})
	cl.HourChanged = func(hour int) { log.Printf("hour changed to %d", hour) }
	if err := cl.Start(); err != nil {
		// Keep going; the clock shows midnight until the rtc answers.
		log.Printf("start clock: %v", err)
	}

	loopDoneCh := make(chan error)
	go func() {
		err := cl.Run(ctx)
		select {
		case loopDoneCh <- err:
		case <-ctx.Done():
		}
		close(loopDoneCh)
	}()

	select {
	case err := <-httpDoneCh:
		log.Printf("http server died: %v", err)
		httpServer = nil
	case err := <-loopDoneCh:
		log.Printf("clock loop died: %v", err)
	case <-sigCh:
		log.Printf("interrupt")
	}
	signal.Stop(sigCh)
	cancel()
	<-loopDoneCh

	// Don't leave one row burning at full duty cycle.
	lamps.Clear()
	if err := output.Blank(); err != nil {
		log.Printf("blank: %v", err)
	}
	if httpServer != nil {
		tctx, c := context.WithTimeout(context.Background(), time.Second)
		httpServer.Shutdown(tctx)
		c()
	}
	if err := closeAll(closers); err != nil {
		log.Printf("%v", err)
	}
	os.Exit(1)
}
