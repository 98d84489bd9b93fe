package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
)

const maxLineBytes = 1024 * 1024

// LoadFile reads a log file into lines. JSON lines are decoded into their
// message/level/timestamp fields; lines that are almost-JSON get one repair
// attempt before being kept as plain text. Nothing is ever dropped, the
// verbatim line always survives in Raw.
func LoadFile(path string) ([]LogLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var lines []LogLine

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	number := 0
	for scanner.Scan() {
		number++
		lines = append(lines, ParseLine(number, scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	return lines, nil
}

func ParseLine(number int, raw string) LogLine {
	line := LogLine{
		Number:  number,
		Raw:     raw,
		Message: raw,
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		if structured, ok := parseStructured(trimmed); ok {
			line.Structured = true
			line.Level = strings.ToLower(strings.TrimSpace(structured.level()))
			if msg := structured.message(); msg != "" {
				line.Message = msg
			}
			if ts := structured.timestamp(); ts != "" {
				if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
					line.Timestamp = parsed
				}
			}
			return line
		}
	}

	line.Level = sniffLevel(trimmed)
	return line
}

func parseStructured(trimmed string) (*structuredLine, bool) {
	var structured structuredLine
	if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
		return &structured, true
	}

	repaired, err := jsonrepair.JSONRepair(trimmed)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &structured); err != nil {
		return nil, false
	}
	return &structured, true
}

var levelCues = []struct {
	token string
	level string
}{
	{"fatal", "fatal"},
	{"critical", "critical"},
	{"error", "error"},
	{"warning", "warning"},
	{"warn", "warning"},
	{"debug", "debug"},
	{"info", "info"},
}

func sniffLevel(line string) string {
	lowered := strings.ToLower(line)
	for _, cue := range levelCues {
		if strings.Contains(lowered, cue.token) {
			return cue.level
		}
	}
	return ""
}

func ComputeStats(lines []LogLine) Stats {
	stats := Stats{
		TotalLines:  len(lines),
		LevelCounts: make(map[string]int),
	}

	for _, line := range lines {
		if line.Structured {
			stats.StructuredLines++
		}
		if line.Level != "" {
			stats.LevelCounts[line.Level]++
		}
		if line.Timestamp.IsZero() {
			continue
		}
		if stats.First.IsZero() || line.Timestamp.Before(stats.First) {
			stats.First = line.Timestamp
		}
		if stats.Last.IsZero() || line.Timestamp.After(stats.Last) {
			stats.Last = line.Timestamp
		}
	}

	return stats
}

// Render joins lines back into one text buffer for the agent prompt,
// clipped to maxBytes at a line boundary.
func Render(lines []LogLine, maxBytes int) string {
	var sb strings.Builder

	for _, line := range lines {
		if maxBytes > 0 && sb.Len()+len(line.Raw)+1 > maxBytes {
			sb.WriteString("... [log truncated]\n")
			break
		}
		sb.WriteString(line.Raw)
		sb.WriteString("\n")
	}

	return sb.String()
}
