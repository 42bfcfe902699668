// Package pricing computes internship prices from the work mode and the duration in months.
//
// Prices compound: every extra month costs 1.9 times the previous one and the total is rounded to the nearest unit.
//
//	price(mode, n) = round(base(mode) * (1 + 1.9 + 1.9^2 + ... + 1.9^(n-1)))
package pricing

import (
	"errors"
	"math"
)

type Mode string

// Modes
const (
	Remote Mode = "remote"
	Onsite Mode = "onsite"
	Hybrid Mode = "hybrid"
)

const (
	MinDuration = 1
	MaxDuration = 4

	growthRate = 1.9
)

var (
	Modes = []Mode{Remote, Onsite, Hybrid}

	bases = map[Mode]float64{
		Remote: 299,
		Onsite: 999,
		Hybrid: 649,
	}

	// errors
	ErrInvalidMode     = errors.New("invalid mode")
	ErrInvalidDuration = errors.New("invalid duration")
)

func (m Mode) Valid() bool {
	_, ok := bases[m]
	return ok
}

// Price returns the price of an internship in `mode` lasting `months` months.
func Price(mode Mode, months int) (int, error) {
	base, ok := bases[mode]
	if !ok {
		return 0, ErrInvalidMode
	}
	if months < MinDuration || months > MaxDuration {
		return 0, ErrInvalidDuration
	}

	var total float64
	monthly := base
	for i := 0; i < months; i++ {
		total += monthly
		monthly *= growthRate
	}
	return int(math.Round(total)), nil
}

type (
	Quote struct {
		Mode     Mode `json:"mode"`
		Duration int  `json:"duration_months"`
		Amount   int  `json:"amount"`
	}

	Row struct {
		Mode   Mode    `json:"mode"`
		Quotes []Quote `json:"quotes"`
	}
)

// Table returns every price, one row per mode.
func Table() []Row {
	rows := make([]Row, 0, len(Modes))
	for _, mode := range Modes {
		row := Row{Mode: mode, Quotes: make([]Quote, 0, MaxDuration)}
		for n := MinDuration; n <= MaxDuration; n++ {
			amount, _ := Price(mode, n)
			row.Quotes = append(row.Quotes, Quote{Mode: mode, Duration: n, Amount: amount})
		}
		rows = append(rows, row)
	}
	return rows
}
