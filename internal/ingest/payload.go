// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package ingest

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinevault/internal/models"
)

// rawMovie is a submitted record before normalization. Numeric fields and
// streamingLinks arrive in more than one shape, so they are kept raw here
// and resolved by the parse functions below.
type rawMovie struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ReleaseDate    string          `json:"releaseDate"`
	Duration       json.RawMessage `json:"duration"`
	Rating         json.RawMessage `json:"rating"`
	Poster         string          `json:"poster"`
	TrailerID      string          `json:"trailerId"`
	StreamingLinks json.RawMessage `json:"streamingLinks"`
}

// numberShape is the discriminant for duration and rating.
type numberShape int

const (
	numberAbsent numberShape = iota // missing, null or blank string
	numberJSON                      // 90
	numberText                      // "90"
	numberOther                     // any other JSON value
)

// parsedNumber is the resolved form of a numeric field.
type parsedNumber struct {
	shape numberShape
	value float64
}

// linksShape is the discriminant for streamingLinks.
type linksShape int

const (
	linksAbsent  linksShape = iota // missing, null or blank string
	linksArray                     // [{"platform": ..., "url": ...}]
	linksEncoded                   // "[{\"platform\": ...}]"
	linksOther                     // any other JSON value
)

// dateLayouts are the release date formats accepted on input, normalized to
// models.ReleaseDateLayout.
var dateLayouts = []string{
	models.ReleaseDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

const untitled = "untitled movie"

// parsePayload decodes one raw record into the canonical MovieInput. It
// resolves shapes only; range and presence rules are checked by validate.
func parsePayload(raw []byte) (*models.MovieInput, *ItemError) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, validationError(untitled, "", "movie record must be a JSON object")
	}

	var rm rawMovie
	if err := json.Unmarshal(trimmed, &rm); err != nil {
		return nil, validationError(payloadTitle(trimmed), "", fmt.Sprintf("invalid movie record: %v", err))
	}

	in := &models.MovieInput{
		Title:       strings.TrimSpace(rm.Title),
		Description: strings.TrimSpace(rm.Description),
		ReleaseDate: normalizeReleaseDate(rm.ReleaseDate),
		Poster:      strings.TrimSpace(rm.Poster),
		TrailerID:   strings.TrimSpace(rm.TrailerID),
	}
	record := recordName(in.Title)

	duration, err := parseNumber(rm.Duration)
	if err != nil {
		return nil, validationError(record, "duration", numberReason("duration", duration.shape))
	}
	if duration.shape == numberAbsent {
		return nil, validationError(record, "duration", "duration is required")
	}
	if duration.value != math.Trunc(duration.value) {
		return nil, validationError(record, "duration", "duration must be a whole number of minutes")
	}
	if math.Abs(duration.value) > math.MaxInt32 {
		return nil, validationError(record, "duration", "duration is out of range")
	}
	in.Duration = int(duration.value)

	rating, err := parseNumber(rm.Rating)
	if err != nil {
		return nil, validationError(record, "rating", numberReason("rating", rating.shape))
	}
	if rating.shape == numberAbsent {
		return nil, validationError(record, "rating", "rating is required")
	}
	in.Rating = rating.value

	links, shape, err := parseStreamingLinks(rm.StreamingLinks)
	if err != nil {
		return nil, validationError(record, "streamingLinks", linksReason(shape)+" for movie: "+record)
	}
	in.StreamingLinks = links

	return in, nil
}

// numberReason words a parse failure after the shape that was submitted.
func numberReason(field string, shape numberShape) string {
	switch shape {
	case numberText:
		return field + " must be a number, got non-numeric text"
	case numberOther:
		return field + " must be a number, got a non-numeric JSON value"
	}
	return field + " must be a number"
}

// linksReason words a streamingLinks failure after the shape that was
// submitted. An encoded string that fails to decode is reported as bad JSON.
func linksReason(shape linksShape) string {
	switch shape {
	case linksEncoded:
		return "invalid streamingLinks JSON format"
	case linksOther:
		return "invalid streamingLinks format, expected an array or a JSON-encoded string"
	}
	return "invalid streamingLinks format"
}

// parseNumber accepts a JSON number or a string holding one. On error the
// returned shape still reports what was submitted.
func parseNumber(raw json.RawMessage) (parsedNumber, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return parsedNumber{shape: numberAbsent}, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return parsedNumber{shape: numberText}, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return parsedNumber{shape: numberAbsent}, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return parsedNumber{shape: numberText}, fmt.Errorf("not a number: %q", s)
		}
		return parsedNumber{shape: numberText, value: v}, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return parsedNumber{shape: numberOther}, err
	}
	return parsedNumber{shape: numberJSON, value: v}, nil
}

// parseStreamingLinks accepts an array of links or a string containing a
// JSON-encoded array. Blank strings and null mean no links. On error the
// returned shape still reports what was submitted; see linksReason.
func parseStreamingLinks(raw json.RawMessage) ([]models.StreamingLink, linksShape, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, linksAbsent, nil
	}

	switch raw[0] {
	case '[':
		var links []models.StreamingLink
		if err := json.Unmarshal(raw, &links); err != nil {
			return nil, linksArray, err
		}
		return trimLinks(links), linksArray, nil

	case '"':
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, linksEncoded, err
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			return nil, linksAbsent, nil
		}
		var links []models.StreamingLink
		if err := json.Unmarshal([]byte(encoded), &links); err != nil {
			return nil, linksEncoded, err
		}
		return trimLinks(links), linksEncoded, nil
	}

	return nil, linksOther, fmt.Errorf("unexpected streamingLinks value starting with %q", raw[0])
}

func trimLinks(links []models.StreamingLink) []models.StreamingLink {
	for i := range links {
		links[i].Platform = strings.TrimSpace(links[i].Platform)
		links[i].URL = strings.TrimSpace(links[i].URL)
	}
	return links
}

// normalizeReleaseDate returns YYYY-MM-DD for any accepted layout, or the
// trimmed input unchanged so validation can report it.
func normalizeReleaseDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.ReleaseDateLayout)
		}
	}
	return s
}

// payloadTitle extracts a title for error messages from a record that could
// not be fully decoded.
func payloadTitle(raw []byte) string {
	var head struct {
		Title interface{} `json:"title"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return untitled
	}
	if s, ok := head.Title.(string); ok {
		return recordName(s)
	}
	return untitled
}

func recordName(title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	return untitled
}
