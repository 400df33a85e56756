package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column-header aliases accepted by the CSV loader. The upstream exports
// we ingest are not consistent about naming.
var (
	dateAliases       = []string{"date", "time", "trade_date"}
	instrumentAliases = []string{"instrument", "code", "symbol"}
	openAliases       = []string{"open", "open_price", "price"}
)

// LoadCSV reads a daily price table from a CSV file. The file needs a
// header with date, instrument, and open columns (aliases accepted); rows
// with an empty open cell are treated as missing observations and skipped.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price table: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV parses a price table from r. See LoadCSV for the format.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrInvalidMarketData, err)
	}

	dateCol, err := findColumn(header, dateAliases)
	if err != nil {
		return nil, err
	}
	instrCol, err := findColumn(header, instrumentAliases)
	if err != nil {
		return nil, err
	}
	openCol, err := findColumn(header, openAliases)
	if err != nil {
		return nil, err
	}

	var obs []Observation
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidMarketData, line, err)
		}

		raw := strings.TrimSpace(rec[openCol])
		if raw == "" {
			// Missing observation, not an error.
			continue
		}
		open, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad open price %q", ErrInvalidMarketData, line, raw)
		}

		date, err := ParseDate(strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidMarketData, line, err)
		}

		obs = append(obs, Observation{
			Date:       date,
			Instrument: strings.TrimSpace(rec[instrCol]),
			Open:       open,
		})
	}

	return NewTable(obs)
}

func findColumn(header []string, aliases []string) (int, error) {
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, alias := range aliases {
			if name == alias {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: no %s column in header %v", ErrInvalidMarketData, aliases[0], header)
}
