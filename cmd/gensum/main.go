// Command gensum writes a synthetic, well-formed WOCE sum file for exercising
// the decoder and the spool pipeline without real archive data. Output is
// deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/gensum -out spool/synthetic_su.txt -stations 10 -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	out := flag.String("out", "synthetic_su.txt", "output path for the generated sum file")
	stations := flag.Int("stations", 5, "number of stations to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *stations < 1 {
		log.Fatal("-stations must be at least 1")
	}
	if err := run(*out, *stations, *seed); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d stations to %s", *stations, *out)
}

func run(out string, stations int, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed))

	var b strings.Builder
	b.WriteString("R/V SYNTHETIC  CRUISE SYN01  STATION SUMMARY\n")
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")

	for stn := 1; stn <= stations; stn++ {
		writeStation(&b, rng, stn)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(out, []byte(b.String()), 0o600)
}

const header = "EXPOCODE     SECT   STNNBR CASTNO TYPE DATE   TIME CODE LATITUDE   LONGITUDE    NAV DEPTH BOTTLES PARAMETERS COMMENTS"

// lineWidth is the rendered width of one body row; the dashed separator is
// drawn to match.
var lineWidth = len(renderRow(row{
	expocode: "00SY20230101", sect: "SY01", stnnbr: 1, castno: 1,
	castType: "ROS", date: 10123, hhmm: 0, event: "BE",
	latDeg: 0, latMin: 0, latHem: "N", lonDeg: 0, lonMin: 0, lonHem: "E",
	nav: "GPS", depth: 1000, bottles: 24, params: "1,2", comments: "x",
}))

// row carries everything one rendered body line needs. Degrees and minutes
// are kept separate because that is how the format writes coordinates.
type row struct {
	expocode, sect   string
	stnnbr, castno   int
	castType         string
	date, hhmm       int
	event            string
	latDeg           int
	latMin           float64
	latHem           string
	lonDeg           int
	lonMin           float64
	lonHem           string
	nav              string
	depth, bottles   int
	params, comments string
}

func renderRow(r row) string {
	return fmt.Sprintf("%-12s %-6s %5d %3d  %-4s %06d %04d %-3s %2d %05.2f %s %3d %05.2f %s %-3s %5d %5d   %-8s   %s",
		r.expocode, r.sect, r.stnnbr, r.castno, r.castType, r.date, r.hhmm, r.event,
		r.latDeg, r.latMin, r.latHem, r.lonDeg, r.lonMin, r.lonHem,
		r.nav, r.depth, r.bottles, r.params, r.comments)
}

// writeStation emits the begin, bottom, and end lines of one cast at a
// random position along a synthetic section.
func writeStation(b *strings.Builder, rng *rand.Rand, stn int) {
	base := row{
		expocode: "00SY20230101",
		sect:     "SY01",
		stnnbr:   stn,
		castno:   1,
		castType: "ROS",
		date:     10000 + (1+rng.IntN(28))*100 + 23, // MMDDYY within January 2023
		latDeg:   rng.IntN(60),
		latMin:   float64(rng.IntN(5999)) / 100,
		latHem:   pick(rng, "N", "S"),
		lonDeg:   rng.IntN(179),
		lonMin:   float64(rng.IntN(5999)) / 100,
		lonHem:   pick(rng, "E", "W"),
		nav:      "GPS",
		depth:    500 + rng.IntN(5500),
		bottles:  12 + rng.IntN(24),
		params:   "1,2,3",
		comments: "synthetic cast",
	}

	start := rng.IntN(20) * 60 // minutes since midnight, hour-aligned
	for i, event := range []string{"BE", "BO", "EN"} {
		r := base
		r.event = event
		r.hhmm = minutesToHHMM(start + i*45)
		b.WriteString(renderRow(r) + "\n")
	}
}

func minutesToHHMM(m int) int {
	m %= 24 * 60
	return (m/60)*100 + m%60
}

func pick(rng *rand.Rand, a, b string) string {
	if rng.IntN(2) == 0 {
		return a
	}
	return b
}
