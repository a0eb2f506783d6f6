// Command pulsewire-synth writes a synthetic capture CSV for a list of bytes.
//
// Bursts are separated by commas and bytes by spaces. A byte written as "xx"
// is emitted as eight pulses of ambiguous width. Slave timing has no
// ambiguous band, so "xx" is only accepted with the master role:
//
//	pulsewire-synth -bytes "33 aa, 01 xx" -role m -out ../DATA/fixture.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/pulsewire/internal/capture"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
	"github.com/banshee-data/pulsewire/internal/units"
)

var (
	bytesFlag = flag.String("bytes", "", "Hex bytes to encode; commas separate bursts, xx is an invalid byte (master only)")
	roleFlag  = flag.String("role", "m", "Pulse timing profile: m(aster) or s(lave)")
	periodUS  = flag.Float64("period-us", 0.5, "Sample period in microseconds (0 = edges only)")
	idleUS    = flag.Float64("idle-us", 250, "High time before and between bursts in microseconds")
	bitGapUS  = flag.Float64("gap-us", 6, "High time between pulses inside a burst in microseconds")
	outPath   = flag.String("out", "", "Output CSV path (default stdout)")
)

func main() {
	flag.Parse()

	role, err := pulsewire.ParseRole(*roleFlag)
	if err != nil {
		log.Fatalf("Invalid role: %v", err)
	}
	bursts, err := parseBursts(*bytesFlag)
	if err != nil {
		log.Fatalf("Invalid bytes: %v", err)
	}
	if err := checkBursts(bursts, role); err != nil {
		log.Fatalf("Invalid bytes: %v", err)
	}

	opts := pulsewire.DefaultSynthOptions(role)
	opts.SamplePeriod = units.MicrosToSeconds(*periodUS)
	opts.IdleUS = *idleUS
	opts.BitGapUS = *bitGapUS
	if err := checkOptions(opts); err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	samples := pulsewire.Synthesize(bursts, opts)
	if err := capture.WriteCSV(w, samples); err != nil {
		log.Fatalf("Failed to write capture: %v", err)
	}
	if *outPath != "" {
		log.Printf("wrote %d samples in %d bursts to %s", len(samples), len(bursts), *outPath)
	}
}

// parseBursts parses comma separated bursts of space separated hex bytes.
func parseBursts(s string) ([][]pulsewire.Bit, error) {
	var bursts [][]pulsewire.Bit
	for i, group := range strings.Split(s, ",") {
		tokens := strings.Fields(group)
		if len(tokens) == 0 {
			continue
		}
		var bits []pulsewire.Bit
		for _, tok := range tokens {
			if strings.EqualFold(tok, "xx") {
				for j := 0; j < 8; j++ {
					bits = append(bits, pulsewire.BitInvalid)
				}
				continue
			}
			tok = strings.TrimPrefix(strings.ToLower(tok), "0x")
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("burst %d: bad byte %q", i+1, tok)
			}
			bits = append(bits, pulsewire.EncodeBytes([]byte{byte(v)})...)
		}
		bursts = append(bursts, bits)
	}
	if len(bursts) == 0 {
		return nil, fmt.Errorf("no bytes given")
	}
	return bursts, nil
}

// checkBursts rejects invalid bits under a role that would decode them as
// valid ones.
func checkBursts(bursts [][]pulsewire.Bit, role pulsewire.Role) error {
	if role != pulsewire.RoleSlave {
		return nil
	}
	for i, bits := range bursts {
		for _, b := range bits {
			if b == pulsewire.BitInvalid {
				return fmt.Errorf("burst %d: xx cannot be encoded with slave timing", i+1)
			}
		}
	}
	return nil
}

// checkOptions rejects spacings that would merge or split bursts on decode.
func checkOptions(o pulsewire.SynthOptions) error {
	if o.SamplePeriod < 0 {
		return fmt.Errorf("sample period must be non-negative")
	}
	if o.BitGapUS <= 0 {
		return fmt.Errorf("gap-us must be positive")
	}
	if o.ZeroUS+o.BitGapUS >= pulsewire.BurstGapUS {
		return fmt.Errorf("gap-us %g too long: pulses would split into separate bursts", o.BitGapUS)
	}
	if o.IdleUS < pulsewire.BurstGapUS {
		return fmt.Errorf("idle-us must be at least %g", pulsewire.BurstGapUS)
	}
	return nil
}
