package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the layout the timing library writes
const TimestampLayout = "2006-01-02 15:04:05"

// Row is one line of a timer file
type Row struct {
	Step     int64
	Start    time.Time
	Duration float64
}

// TimingGenerator writes Timing_<Name>.csv files for tests
type TimingGenerator struct {
	baseDir string
}

// NewTimingGenerator creates a new generator writing into baseDir
func NewTimingGenerator(baseDir string) *TimingGenerator {
	return &TimingGenerator{
		baseDir: baseDir,
	}
}

// BaseDir returns the directory files are written to
func (g *TimingGenerator) BaseDir() string {
	return g.baseDir
}

// WriteTimer writes a well-formed timer file and returns its path
func (g *TimingGenerator) WriteTimer(name string, rows ...Row) (string, error) {
	var b strings.Builder
	b.WriteString("step,start,duration\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%d,%s,%g\n", row.Step, row.Start.Format(TimestampLayout), row.Duration)
	}
	return g.WriteRaw("Timing_"+name+".csv", b.String())
}

// WriteRaw writes arbitrary content under fileName
func (g *TimingGenerator) WriteRaw(fileName, content string) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(g.baseDir, fileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateRun writes a Total timer spanning the whole run plus one timer per
// phase, each phase running `steps` consecutive one-second steps.
func (g *TimingGenerator) GenerateRun(start time.Time, steps int, phases ...string) error {
	cursor := start
	stepNo := int64(0)
	for _, phase := range phases {
		rows := make([]Row, 0, steps)
		for i := 0; i < steps; i++ {
			stepNo++
			rows = append(rows, Row{Step: stepNo, Start: cursor, Duration: 0.75})
			cursor = cursor.Add(time.Second)
		}
		if _, err := g.WriteTimer(phase, rows...); err != nil {
			return err
		}
	}

	total := Row{Step: stepNo, Start: start, Duration: cursor.Sub(start).Seconds()}
	_, err := g.WriteTimer("Total", total)
	return err
}
