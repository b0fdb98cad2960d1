package models

import "time"

// PricePoint is one daily close for a symbol.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is a chronologically ordered run of daily closes.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Closes returns just the close values, oldest first.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// LastDate returns the date of the newest point, or the zero time if empty.
func (s *PriceSeries) LastDate() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

func (s *PriceSeries) Len() int { return len(s.Points) }
