package InputParameters

import (
	"fmt"
	"time"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case file. Field resolution goes
// through the json tags, as ghodss/yaml converts the document to JSON
// before unmarshaling.
type CaseParameters struct {
	Casename       string  `json:"Casename"`
	GridFile       string  `json:"GridFile"`
	GridFormat     string  `json:"GridFormat"` // "adcirc" or "fvcom"
	OutputDir      string  `json:"OutputDir"`
	InvertDepth    bool    `json:"InvertDepth"` // source grid stores elevation, not depth
	SourceProj     string  `json:"SourceProj"`  // proj4 string when grid is in projected coordinates
	SpongeCoeff    float64 `json:"SpongeCoeff"`
	SpongeSegments []int   `json:"SpongeSegments"` // 0-based open boundary segment indices; empty = all
	SigmaLevels    int     `json:"SigmaLevels"`
	TideStart      string  `json:"TideStart"` // "2006-01-02 15:04", UTC
	TideEnd        string  `json:"TideEnd"`
	TideInterval   int     `json:"TideIntervalMinutes"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, cp); err != nil {
		return err
	}
	if cp.SpongeCoeff == 0 {
		cp.SpongeCoeff = 0.001
	}
	if cp.SigmaLevels == 0 {
		cp.SigmaLevels = 21
	}
	if cp.TideInterval == 0 {
		cp.TideInterval = 60
	}
	if cp.OutputDir == "" {
		cp.OutputDir = "."
	}
	if cp.Casename == "" {
		return fmt.Errorf("case file must set Casename")
	}
	return nil
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Casename\n", cp.Casename)
	fmt.Printf("[%s]\t\t= Grid File (%s)\n", cp.GridFile, cp.GridFormat)
	fmt.Printf("[%s]\t\t= Output Directory\n", cp.OutputDir)
	fmt.Printf("%8.5f\t\t= Sponge Coefficient\n", cp.SpongeCoeff)
	fmt.Printf("[%d]\t\t\t= Sigma Levels\n", cp.SigmaLevels)
	if cp.TideStart != "" {
		fmt.Printf("[%s .. %s @ %dmin]\t= Tide Window\n", cp.TideStart, cp.TideEnd, cp.TideInterval)
	}
}

// TideTimeLayout is the layout for TideStart/TideEnd, interpreted as UTC.
const TideTimeLayout = "2006-01-02 15:04"

// TideWindow parses the configured forcing window.
func (cp *CaseParameters) TideWindow() (start, end time.Time, interval time.Duration, err error) {
	if start, err = time.ParseInLocation(TideTimeLayout, cp.TideStart, time.UTC); err != nil {
		return start, end, 0, fmt.Errorf("TideStart %q: %v", cp.TideStart, err)
	}
	if end, err = time.ParseInLocation(TideTimeLayout, cp.TideEnd, time.UTC); err != nil {
		return start, end, 0, fmt.Errorf("TideEnd %q: %v", cp.TideEnd, err)
	}
	return start, end, time.Duration(cp.TideInterval) * time.Minute, nil
}
