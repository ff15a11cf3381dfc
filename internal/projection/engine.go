package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/CartagenesDev/cartagenes-finacias/pkg/currency"
)

// =============================================================================
// Compound-interest projection (simulador de juros compostos)
// =============================================================================

// ErrInvalidInput is returned by Input.Validate for out-of-domain parameters
var ErrInvalidInput = errors.New("invalid simulation input")

// Input holds the simulator form values. Currency amounts are in BRL.
type Input struct {
	InitialAmount       decimal.Decimal `json:"initial_amount"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	AnnualRatePercent   float64         `json:"annual_rate_percent"`
	Years               int             `json:"years"`
}

// NewInput builds an Input with currency fields normalised to cents
func NewInput(initial, monthly decimal.Decimal, annualRatePercent float64, years int) Input {
	return Input{
		InitialAmount:       initial.Round(2),
		MonthlyContribution: monthly.Round(2),
		AnnualRatePercent:   annualRatePercent,
		Years:               years,
	}
}

// Validate rejects values outside the simulator domain
func (in Input) Validate() error {
	switch {
	case in.InitialAmount.IsNegative():
		return fmt.Errorf("%w: initial amount must be >= 0", ErrInvalidInput)
	case in.MonthlyContribution.IsNegative():
		return fmt.Errorf("%w: monthly contribution must be >= 0", ErrInvalidInput)
	case in.AnnualRatePercent < 0 || math.IsNaN(in.AnnualRatePercent) || math.IsInf(in.AnnualRatePercent, 0):
		return fmt.Errorf("%w: annual rate must be a finite value >= 0", ErrInvalidInput)
	case in.Years <= 0:
		return fmt.Errorf("%w: years must be > 0", ErrInvalidInput)
	case in.logGrowth() > maxLogGrowth:
		return fmt.Errorf("%w: rate and horizon exceed the representable range", ErrInvalidInput)
	}
	return nil
}

// maxLogGrowth bounds ln((1+r)^months) so the growth factor stays well inside float64
const maxLogGrowth = 700.0

// logGrowth is ln of the largest growth factor either projection variant reaches.
// The nominal rate annual/12 always compounds at least as fast as the equivalent rate.
func (in Input) logGrowth() float64 {
	if in.AnnualRatePercent == 0 || in.Years <= 0 {
		return 0
	}
	months := float64(in.Years) * 12
	equivalent := math.Log1p(in.AnnualRatePercent/100) / 12
	nominal := math.Log1p(in.AnnualRatePercent / 100 / 12)
	return months * math.Max(equivalent, nominal)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Months returns the projection horizon in months
func (in Input) Months() int {
	return in.Years * 12
}

// Result summarises the last point of a projection
type Result struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalInvested decimal.Decimal `json:"total_invested"`
}

// Point is one month of the projection
type Point struct {
	Month    int             `json:"month"`
	Invested decimal.Decimal `json:"invested"`
	Interest decimal.Decimal `json:"interest"`
	Total    decimal.Decimal `json:"total"`
}

// Series is the month-ordered projection, month 0 through Input.Months()
type Series []Point

// Last returns the final point of the series
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// MonthlyRate converts an annual percentage into the equivalent monthly rate
// (taxa equivalente): twelve compounded months reproduce the annual rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return math.Pow(1+annualRatePercent/100, 1.0/12) - 1
}

// Project computes the month-by-month projection for in.
//
// ok is false when in.Years <= 0, or when an amount leaves the float64 range
// (inputs that pass Validate never do): nothing is returned and the caller
// keeps no result. Currency fields are rounded to cents (half away from zero, which is
// half-up for the non-negative amounts produced here) before being stored, and
// Interest is derived from the rounded Total so Total = Invested + Interest
// holds exactly on every point.
func Project(in Input) (Result, Series, bool) {
	if in.Years <= 0 {
		return Result{}, nil, false
	}

	months := in.Months()
	series := make(Series, 0, months+1)

	initial := in.InitialAmount
	monthly := in.MonthlyContribution

	if in.AnnualRatePercent == 0 {
		for m := 0; m <= months; m++ {
			invested := initial.Add(monthly.Mul(decimal.NewFromInt(int64(m))))
			series = append(series, newPoint(m, invested, invested))
		}
		return resultOf(series), series, true
	}

	r := MonthlyRate(in.AnnualRatePercent)
	initialF := initial.InexactFloat64()
	monthlyF := monthly.InexactFloat64()

	for m := 0; m <= months; m++ {
		growth := math.Pow(1+r, float64(m))
		amount := initialF*growth + monthlyF*((growth-1)/r)
		if !finite(amount) {
			return Result{}, nil, false
		}
		invested := initial.Add(monthly.Mul(decimal.NewFromInt(int64(m))))
		series = append(series, newPoint(m, invested, decimal.NewFromFloat(amount)))
	}

	return resultOf(series), series, true
}

// ProjectSimple is the quick-calculator variant: nominal monthly rate
// (annual/12, no compounding equivalence) evaluated at the horizon only.
func ProjectSimple(in Input) (Result, bool) {
	if in.Years <= 0 {
		return Result{}, false
	}

	months := in.Months()
	invested := in.InitialAmount.Add(in.MonthlyContribution.Mul(decimal.NewFromInt(int64(months))))

	if in.AnnualRatePercent == 0 {
		return resultOf(Series{newPoint(months, invested, invested)}), true
	}

	r := in.AnnualRatePercent / 100 / 12
	growth := math.Pow(1+r, float64(months))
	amount := in.InitialAmount.InexactFloat64()*growth + in.MonthlyContribution.InexactFloat64()*((growth-1)/r)
	if !finite(amount) {
		return Result{}, false
	}

	return resultOf(Series{newPoint(months, invested, decimal.NewFromFloat(amount))}), true
}

func newPoint(month int, invested, amount decimal.Decimal) Point {
	invested = invested.Round(2)
	total := amount.Round(2)
	return Point{
		Month:    month,
		Invested: invested,
		Interest: total.Sub(invested),
		Total:    total,
	}
}

func resultOf(series Series) Result {
	last, _ := series.Last()
	return Result{
		TotalAmount:   last.Total,
		TotalInterest: last.Interest,
		TotalInvested: last.Invested,
	}
}

// Formatted renders the result the way the simulator cards show it
func (r Result) Formatted() FormattedResult {
	return FormattedResult{
		TotalAmount:   currency.Format(r.TotalAmount),
		TotalInterest: currency.Format(r.TotalInterest),
		TotalInvested: currency.Format(r.TotalInvested),
	}
}

// FormattedResult carries display strings in BRL
type FormattedResult struct {
	TotalAmount   string `json:"total_amount"`
	TotalInterest string `json:"total_interest"`
	TotalInvested string `json:"total_invested"`
}
