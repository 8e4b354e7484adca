package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/penwyp/go-timer-analyzer/internal/core/constants"
	"github.com/penwyp/go-timer-analyzer/internal/core/model"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// Parser reads timer files into records. Results are cached per path and
// reused while the file on disk is unchanged.
type Parser struct {
	location *time.Location
	mu       sync.Mutex
	cache    map[string]cacheEntry
}

type cacheEntry struct {
	info    util.FileInfo
	records []model.TimerRecord
}

// ParseResult represents the result of parsing a single file
type ParseResult struct {
	File    string
	Records []model.TimerRecord
	Error   error
	// Miss is MissNone when the records came from the cache
	Miss MissReason
}

// Cached reports whether the records were served from the cache
func (r ParseResult) Cached() bool {
	return r.Error == nil && r.Miss == MissNone
}

// MissReason tells why a file was read from disk instead of the cache
type MissReason int

const (
	MissNone MissReason = iota
	MissNotCached
	MissInode
	MissSize
	MissModTime
)

func (r MissReason) String() string {
	switch r {
	case MissNone:
		return "none"
	case MissNotCached:
		return "not cached"
	case MissInode:
		return "file inode changed"
	case MissSize:
		return "file size changed"
	case MissModTime:
		return "modification time changed"
	default:
		return "unknown reason"
	}
}

func missReason(cached, current util.FileInfo) MissReason {
	switch {
	case cached.Inode != current.Inode:
		return MissInode
	case cached.Size != current.Size:
		return MissSize
	case cached.ModTime != current.ModTime:
		return MissModTime
	default:
		return MissNone
	}
}

// NewParser creates a parser reading offset-less timestamps in loc
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{
		location: loc,
		cache:    make(map[string]cacheEntry),
	}
}

// ParseFile parses the timer file at path
func (p *Parser) ParseFile(path string) ([]model.TimerRecord, error) {
	records, _, err := p.parseFile(path)
	return records, err
}

func (p *Parser) parseFile(path string) ([]model.TimerRecord, MissReason, error) {
	info, err := util.GetFileInfo(path)
	if err != nil {
		return nil, MissNotCached, &ParseError{Path: path, Reason: ReasonUnreadable, Err: err}
	}

	miss := MissNotCached
	p.mu.Lock()
	if cached, ok := p.cache[path]; ok {
		miss = missReason(cached.info, *info)
		if miss == MissNone {
			p.mu.Unlock()
			util.LogDebug(fmt.Sprintf("Cache hit for %s (%d records)", path, len(cached.records)))
			return cached.records, MissNone, nil
		}
	}
	p.mu.Unlock()

	util.LogDebug(fmt.Sprintf("Start parsing file: %s (%s)", path, miss))

	file, err := os.Open(path)
	if err != nil {
		return nil, miss, &ParseError{Path: path, Reason: ReasonUnreadable, Err: err}
	}
	defer file.Close()

	records, err := p.Parse(path, file)
	if err != nil {
		p.Forget(path)
		return nil, miss, err
	}

	p.mu.Lock()
	p.cache[path] = cacheEntry{info: *info, records: records}
	p.mu.Unlock()

	return records, miss, nil
}

// ParseFiles parses files sequentially, in order, one result per file
func (p *Parser) ParseFiles(files []string) []ParseResult {
	start := time.Now()
	results := make([]ParseResult, 0, len(files))

	for _, f := range files {
		records, miss, err := p.parseFile(f)
		if err != nil {
			util.LogDebug(fmt.Sprintf("File parsing failed: %s - %v", f, err))
		}
		results = append(results, ParseResult{File: f, Records: records, Error: err, Miss: miss})
	}

	util.LogDebug(fmt.Sprintf("Parsed %d files in %v", len(files), time.Since(start)))
	return results
}

// Prune drops cached results of files not in keep
func (p *Parser) Prune(keep []string) {
	wanted := make(map[string]bool, len(keep))
	for _, f := range keep {
		wanted[f] = true
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for path := range p.cache {
		if !wanted[path] {
			delete(p.cache, path)
		}
	}
}

// Forget drops the cached result of path
func (p *Parser) Forget(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, path)
}

// Parse reads timer rows from r. The first physical line is a header and is
// skipped; '#' starts a comment that runs to the end of the line. Columns
// beyond the third are ignored.
func (p *Parser) Parse(path string, r io.Reader) ([]model.TimerRecord, error) {
	br := bufio.NewReader(r)
	if _, err := br.ReadString('\n'); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.TimerRecord{}, nil
		}
		return nil, &ParseError{Path: path, Line: 1, Reason: ReasonUnreadable, Err: err}
	}

	reader := csv.NewReader(br)
	reader.Comment = constants.CommentMarker
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	records := []model.TimerRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line + 1
			}
			return nil, &ParseError{Path: path, Line: line, Reason: ReasonMalformedCSV, Err: err}
		}
		line, _ := reader.FieldPos(0)
		line++ // account for the header consumed above
		row = stripComment(row)
		if isBlank(row) {
			continue
		}

		record, reason, err := p.parseRow(row)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: reason, Err: err}
		}
		records = append(records, record)
	}

	return records, nil
}

func (p *Parser) parseRow(row []string) (model.TimerRecord, Reason, error) {
	if len(row) < constants.TimerFileColumns {
		return model.TimerRecord{}, ReasonShortRow,
			fmt.Errorf("expected %d columns, got %d", constants.TimerFileColumns, len(row))
	}

	step, err := parseStep(row[0])
	if err != nil {
		return model.TimerRecord{}, ReasonBadStep, err
	}

	start, err := util.ParseTimestamp(row[1], p.location)
	if err != nil {
		return model.TimerRecord{}, ReasonBadTimestamp, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return model.TimerRecord{}, ReasonBadDuration, err
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return model.TimerRecord{}, ReasonBadDuration, fmt.Errorf("duration must be a finite value >= 0, got %v", duration)
	}

	return model.TimerRecord{Step: step, Start: start, Duration: duration}, "", nil
}

// parseStep accepts integers and integral floats such as "10.0"
func parseStep(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if step, err := strconv.ParseInt(s, 10, 64); err == nil {
		return step, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("step %q is not a number", s)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("step %q is not an integer", s)
	}
	return int64(f), nil
}

// stripComment drops everything from the first '#' on
func stripComment(row []string) []string {
	for i, field := range row {
		if idx := strings.IndexByte(field, constants.CommentMarker); idx >= 0 {
			row[i] = field[:idx]
			return row[:i+1]
		}
	}
	return row
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
