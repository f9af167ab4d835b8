package render

import "math"

const (
	DefaultWidthIn       = 10.0
	DefaultPanelHeightIn = 3.0
)

// Config sizes saved figures in inches
type Config struct {
	WidthIn       float64 `json:"width_in" mapstructure:"width_in"`
	PanelHeightIn float64 `json:"panel_height_in" mapstructure:"panel_height_in"`
}

func DefaultConfig() Config {
	return Config{
		WidthIn:       DefaultWidthIn,
		PanelHeightIn: DefaultPanelHeightIn,
	}
}

func (c Config) Validate() error {
	if c.WidthIn == 0 {
		return missing("render config", "width_in")
	}
	if c.PanelHeightIn == 0 {
		return missing("render config", "panel_height_in")
	}
	if c.WidthIn < 0 || math.IsInf(c.WidthIn, 0) || math.IsNaN(c.WidthIn) {
		return invalid("render config", "width_in", c.WidthIn)
	}
	if c.PanelHeightIn < 0 || math.IsInf(c.PanelHeightIn, 0) || math.IsNaN(c.PanelHeightIn) {
		return invalid("render config", "panel_height_in", c.PanelHeightIn)
	}
	return nil
}
