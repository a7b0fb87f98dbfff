package domain

import (
	"fmt"
	"time"
)

type Granularity string

const (
	GranularityWeek     Granularity = "week"
	GranularityMonth    Granularity = "month"
	GranularityQuarter  Granularity = "quarter"
	GranularityHalfYear Granularity = "half-year"
	GranularityYear     Granularity = "year"
)

// ValidGranularities is the canonical set of accepted granularity strings.
var ValidGranularities = map[string]bool{
	"week": true, "month": true, "quarter": true, "half-year": true, "year": true,
}

type CardSplitUnit string

const (
	SplitNone     CardSplitUnit = "none"
	SplitMonth    CardSplitUnit = "month"
	SplitQuarter  CardSplitUnit = "quarter"
	SplitHalfYear CardSplitUnit = "half-year"
	SplitYear     CardSplitUnit = "year"
)

// ValidCardSplitUnits is the canonical set of accepted card split units.
var ValidCardSplitUnits = map[string]bool{
	"none": true, "month": true, "quarter": true, "half-year": true, "year": true,
}

type SnapMode string

const (
	SnapCell    SnapMode = "cell"
	SnapSubCell SnapMode = "subCell"
)

// TimelineConfig describes the calendar grid of a planning.
type TimelineConfig struct {
	StartDate     time.Time
	EndDate       time.Time
	Granularity   Granularity
	Step          int
	CardSplitUnit CardSplitUnit
	CardSplitSize int
	// LabelFormat is an optional Go time layout overriding the built-in cell labels.
	LabelFormat string
	SnapMode    SnapMode
}

// DefaultTimelineConfig is the grid given to every new planning.
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{
		StartDate:     Date(2026, time.January, 1),
		EndDate:       Date(2029, time.December, 31),
		Granularity:   GranularityQuarter,
		Step:          1,
		CardSplitUnit: SplitYear,
		CardSplitSize: 1,
		SnapMode:      SnapCell,
	}
}

// EffectiveSnapMode returns the configured snap mode, defaulting to whole cells.
func (c TimelineConfig) EffectiveSnapMode() SnapMode {
	if c.SnapMode == "" {
		return SnapCell
	}
	return c.SnapMode
}

// Validate checks the invariants every grid relies on.
func (c TimelineConfig) Validate() error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidConfig)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidConfig, FormatDate(c.EndDate), FormatDate(c.StartDate))
	}
	if !ValidGranularities[string(c.Granularity)] {
		return fmt.Errorf("%w: unknown granularity %q", ErrInvalidConfig, c.Granularity)
	}
	if c.Step < 1 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, c.Step)
	}
	if !ValidCardSplitUnits[string(c.CardSplitUnit)] {
		return fmt.Errorf("%w: unknown card split unit %q", ErrInvalidConfig, c.CardSplitUnit)
	}
	if c.CardSplitUnit != SplitNone && c.CardSplitSize < 1 {
		return fmt.Errorf("%w: card split size must be positive, got %d", ErrInvalidConfig, c.CardSplitSize)
	}
	if c.SnapMode != "" && c.SnapMode != SnapCell && c.SnapMode != SnapSubCell {
		return fmt.Errorf("%w: unknown snap mode %q", ErrInvalidConfig, c.SnapMode)
	}
	return nil
}

// TimelineConfigPatch is a partial TimelineConfig; nil fields are left untouched.
type TimelineConfigPatch struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Granularity   *Granularity
	Step          *int
	CardSplitUnit *CardSplitUnit
	CardSplitSize *int
	LabelFormat   *string
	SnapMode      *SnapMode
}

// Merge returns c with every non-nil field of p applied.
func (c TimelineConfig) Merge(p TimelineConfigPatch) TimelineConfig {
	if p.StartDate != nil {
		c.StartDate = TruncateDay(*p.StartDate)
	}
	if p.EndDate != nil {
		c.EndDate = TruncateDay(*p.EndDate)
	}
	if p.Granularity != nil {
		c.Granularity = *p.Granularity
	}
	if p.Step != nil {
		c.Step = *p.Step
	}
	if p.CardSplitUnit != nil {
		c.CardSplitUnit = *p.CardSplitUnit
	}
	if p.CardSplitSize != nil {
		c.CardSplitSize = *p.CardSplitSize
	}
	if p.LabelFormat != nil {
		c.LabelFormat = *p.LabelFormat
	}
	if p.SnapMode != nil {
		c.SnapMode = *p.SnapMode
	}
	return c
}

// IsEmpty reports whether the patch changes nothing.
func (p TimelineConfigPatch) IsEmpty() bool {
	return p == TimelineConfigPatch{}
}
