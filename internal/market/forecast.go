package market

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Trend is the predicted price direction.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// PricePoint is one entry of a forecast's price history.
type PricePoint struct {
	Label     string          `yaml:"label"`
	Price     decimal.Decimal `yaml:"price"`
	Predicted bool            `yaml:"predicted"`
}

// Forecast is a short- and medium-term price prediction for a crop.
type Forecast struct {
	Crop         string          `yaml:"crop"`
	Unit         string          `yaml:"unit"`
	CurrentPrice decimal.Decimal `yaml:"current_price"`
	MSP          decimal.Decimal `yaml:"msp"`
	Predicted7d  decimal.Decimal `yaml:"predicted_7d"`
	Predicted30d decimal.Decimal `yaml:"predicted_30d"`
	Confidence   int             `yaml:"confidence"`
	Trend        Trend           `yaml:"trend"`
	Factors      []string        `yaml:"factors"`
	History      []PricePoint    `yaml:"history"`
}

// Change is the difference between a predicted price and the current one.
type Change struct {
	Amount  decimal.Decimal
	Percent float64
}

// Change7d compares the 7-day prediction to the current price.
func (f Forecast) Change7d() Change { return f.change(f.Predicted7d) }

// Change30d compares the 30-day prediction to the current price.
func (f Forecast) Change30d() Change { return f.change(f.Predicted30d) }

func (f Forecast) change(predicted decimal.Decimal) Change {
	c := Change{Amount: predicted.Sub(f.CurrentPrice)}
	if f.CurrentPrice.IsPositive() {
		c.Percent = c.Amount.Div(f.CurrentPrice).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}
	return c
}

// AboveMSP reports whether the current price is at or above MSP.
func (f Forecast) AboveMSP() bool {
	return f.CurrentPrice.GreaterThanOrEqual(f.MSP)
}

// Validate checks forecast invariants.
func (f Forecast) Validate() error {
	fail := func(field, reason string) error {
		return &FieldError{Kind: "forecast", ID: f.Crop, Field: field, Reason: reason}
	}
	switch {
	case strings.TrimSpace(f.Crop) == "":
		return fail("crop", "is required")
	case !f.CurrentPrice.IsPositive():
		return fail("current_price", "must be positive")
	case f.Confidence < 0 || f.Confidence > 100:
		return fail("confidence", "must be between 0 and 100")
	}
	switch f.Trend {
	case TrendUp, TrendDown, TrendStable:
	default:
		return fail("trend", "must be up, down or stable")
	}
	return nil
}

// Advice is a one-line trading recommendation derived from the trend.
func (f Forecast) Advice() string {
	switch f.Trend {
	case TrendUp:
		return fmt.Sprintf("Strong buying opportunity for %s. Market fundamentals indicate %d%% probability of price appreciation over the next 30 days.", f.Crop, f.Confidence)
	case TrendDown:
		return fmt.Sprintf("Caution advised for %s. Consider selling current inventory or waiting for better market conditions. %d%% confidence in price decline.", f.Crop, f.Confidence)
	default:
		return fmt.Sprintf("%s prices expected to remain stable. Good time for steady trading with minimal price volatility risk.", f.Crop)
	}
}
