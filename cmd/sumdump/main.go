// Command sumdump decodes WOCE sum files offline and prints the result as
// JSON, without touching the spool or Kafka. It is the quickest way to check
// whether a file's layout resolves and what the decoder makes of each row.
//
// Usage:
//
//	go run ./cmd/sumdump [-casts] [-empty-cols DATE,TIME] file.sum [file2.sum ...]
//
// By default each decoded row is printed as one JSON object per line. With
// -casts the rows are aggregated into casts first and the casts are printed
// as a JSON array per file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tidewrack/sumfile-etl/internal/domain"
	"github.com/tidewrack/sumfile-etl/internal/sumfile"
)

func main() {
	casts := flag.Bool("casts", false, "aggregate rows into casts before printing")
	emptyCols := flag.String("empty-cols", "", "comma-separated header labels declared empty")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(flag.Args(), *casts, splitList(*emptyCols)); code != 0 {
		os.Exit(code)
	}
}

func run(paths []string, casts bool, emptyCols []string) int {
	exit := 0
	for _, path := range paths {
		if err := dumpFile(path, casts, emptyCols); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exit = 1
		}
	}
	return exit
}

func dumpFile(path string, casts bool, emptyCols []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec, err := sumfile.Decode(data, emptyCols...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if casts {
		return enc.Encode(domain.AssembleCasts(dec.Rows(), path))
	}

	for row := range dec.Rows() {
		if err := enc.Encode(rowJSON(row)); err != nil {
			return err
		}
	}
	return nil
}

// rowJSON flattens a decoded row into printable values, dropping absent
// fields so the output only shows what the file actually carried.
func rowJSON(row sumfile.Row) map[string]any {
	out := make(map[string]any, len(row))
	for field, v := range row {
		switch v.Kind {
		case sumfile.KindText:
			out[string(field)] = v.Text
		case sumfile.KindDegrees:
			out[string(field)] = v.Degrees
		}
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
