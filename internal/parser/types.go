package parser

import (
	"time"
)

type LogLine struct {
	Number     int
	Raw        string
	Message    string
	Level      string
	Timestamp  time.Time
	Structured bool
}

type Stats struct {
	TotalLines      int
	StructuredLines int
	LevelCounts     map[string]int
	First           time.Time
	Last            time.Time
}

type structuredLine struct {
	Message   string `json:"message"`
	Msg       string `json:"msg"`
	Level     string `json:"level"`
	Severity  string `json:"severity"`
	Timestamp string `json:"timestamp"`
	Time      string `json:"time"`
	TS        string `json:"ts"`
}

func (s *structuredLine) message() string {
	if s.Message != "" {
		return s.Message
	}
	return s.Msg
}

func (s *structuredLine) level() string {
	if s.Level != "" {
		return s.Level
	}
	return s.Severity
}

func (s *structuredLine) timestamp() string {
	switch {
	case s.Timestamp != "":
		return s.Timestamp
	case s.Time != "":
		return s.Time
	default:
		return s.TS
	}
}
