// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package ingest

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw       string
		wantShape numberShape
		wantValue float64
		wantErr   bool
	}{
		{"", numberAbsent, 0, false},
		{"null", numberAbsent, 0, false},
		{`""`, numberAbsent, 0, false},
		{`"   "`, numberAbsent, 0, false},
		{"90", numberJSON, 90, false},
		{"7.5", numberJSON, 7.5, false},
		{`"90"`, numberText, 90, false},
		{`" 7.5 "`, numberText, 7.5, false},
		{`"ninety"`, numberText, 0, true},
		{`"NaN"`, numberText, 0, true},
		{"true", numberOther, 0, true},
		{"[1]", numberOther, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseNumber(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseNumber() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.shape != tt.wantShape || got.value != tt.wantValue {
				t.Errorf("parseNumber() = %+v, want shape %d value %v", got, tt.wantShape, tt.wantValue)
			}
		})
	}
}

func TestParseStreamingLinks(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantShape linksShape
		wantLen   int
		wantErr   bool
	}{
		{"absent", "", linksAbsent, 0, false},
		{"null", "null", linksAbsent, 0, false},
		{"blank string", `"  "`, linksAbsent, 0, false},
		{"array", `[{"platform":"Netflix","url":"https://netflix.com/1"}]`, linksArray, 1, false},
		{"encoded array", `"[{\"platform\":\"Hulu\",\"url\":\"https://hulu.com/1\"},{\"platform\":\"Max\",\"url\":\"https://max.com/1\"}]"`, linksEncoded, 2, false},
		{"encoded garbage", `"not json"`, linksEncoded, 0, true},
		{"encoded object", `"{\"platform\":\"Hulu\"}"`, linksEncoded, 0, true},
		{"number", "42", linksOther, 0, true},
		{"array of numbers", "[1,2]", linksArray, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, shape, err := parseStreamingLinks(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseStreamingLinks() error = %v, wantErr %v", err, tt.wantErr)
			}
			if shape != tt.wantShape {
				t.Errorf("shape = %d, want %d", shape, tt.wantShape)
			}
			if len(links) != tt.wantLen {
				t.Errorf("len(links) = %d, want %d", len(links), tt.wantLen)
			}
		})
	}
}

func TestNormalizeReleaseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-01-01", "2020-01-01"},
		{" 2020-01-01 ", "2020-01-01"},
		{"2020-01-01T00:00:00Z", "2020-01-01"},
		{"2020-01-01T00:00:00.000Z", "2020-01-01"},
		{"2020-06-15T10:30:00", "2020-06-15"},
		{"01/02/2020", "01/02/2020"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeReleaseDate(tt.in); got != tt.want {
				t.Errorf("normalizeReleaseDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePayload(t *testing.T) {
	t.Run("normalizes strings and numbers", func(t *testing.T) {
		raw := movieJSON(map[string]interface{}{
			"title":          "  Arrival ",
			"description":    " Linguist meets heptapods. ",
			"releaseDate":    "2016-11-11T00:00:00.000Z",
			"duration":       "116",
			"rating":         "7.9",
			"poster":         " https://img.example/arrival.jpg ",
			"trailerId":      " tFMo3UJ4B4g ",
			"streamingLinks": `[{"platform":" Paramount+ ","url":" https://paramountplus.com/arrival "}]`,
		})

		in, err := parsePayload(raw)
		if err != nil {
			t.Fatalf("parsePayload() error = %v", err)
		}
		if in.Title != "Arrival" || in.Description != "Linguist meets heptapods." {
			t.Errorf("strings not trimmed: %+v", in)
		}
		if in.ReleaseDate != "2016-11-11" {
			t.Errorf("ReleaseDate = %q, want 2016-11-11", in.ReleaseDate)
		}
		if in.Duration != 116 || in.Rating != 7.9 {
			t.Errorf("Duration/Rating = %d/%v, want 116/7.9", in.Duration, in.Rating)
		}
		if in.Poster != "https://img.example/arrival.jpg" || in.TrailerID != "tFMo3UJ4B4g" {
			t.Errorf("optional strings not trimmed: %q %q", in.Poster, in.TrailerID)
		}
		if len(in.StreamingLinks) != 1 || in.StreamingLinks[0].Platform != "Paramount+" {
			t.Errorf("StreamingLinks = %+v", in.StreamingLinks)
		}
	})

	tests := []struct {
		name      string
		raw       string
		wantField string
		wantInMsg string
	}{
		{"not an object", `[1,2]`, "", "must be a JSON object"},
		{"null record", `null`, "", "must be a JSON object"},
		{"missing duration", `{"title":"A","description":"d","releaseDate":"2020-01-01","rating":5}`, "duration", "duration is required"},
		{"fractional duration", `{"title":"A","description":"d","releaseDate":"2020-01-01","duration":90.5,"rating":5}`, "duration", "whole number"},
		{"text duration", `{"title":"A","description":"d","releaseDate":"2020-01-01","duration":"long","rating":5}`, "duration", "duration must be a number, got non-numeric text"},
		{"boolean rating", `{"title":"A","description":"d","releaseDate":"2020-01-01","duration":90,"rating":true}`, "rating", "rating must be a number, got a non-numeric JSON value"},
		{"missing rating", `{"title":"A","description":"d","releaseDate":"2020-01-01","duration":90}`, "rating", "rating is required"},
		{"bad links string names the movie", `{"title":"Heat","description":"d","releaseDate":"2020-01-01","duration":90,"rating":5,"streamingLinks":"oops"}`, "streamingLinks", "invalid streamingLinks JSON format for movie: Heat"},
		{"bad links array names the movie", `{"title":"Heat","description":"d","releaseDate":"2020-01-01","duration":90,"rating":5,"streamingLinks":[1,2]}`, "streamingLinks", "invalid streamingLinks format for movie: Heat"},
		{"links of the wrong type", `{"title":"Heat","description":"d","releaseDate":"2020-01-01","duration":90,"rating":5,"streamingLinks":42}`, "streamingLinks", "invalid streamingLinks format, expected an array or a JSON-encoded string for movie: Heat"},
		{"wrong title type", `{"title":5}`, "", "invalid movie record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePayload([]byte(tt.raw))
			if err == nil {
				t.Fatal("parsePayload() error = nil, want error")
			}
			if err.Kind != KindValidation {
				t.Errorf("Kind = %q, want validation", err.Kind)
			}
			if err.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", err.Field, tt.wantField)
			}
			if !strings.Contains(err.Reason, tt.wantInMsg) {
				t.Errorf("Reason = %q, want containing %q", err.Reason, tt.wantInMsg)
			}
		})
	}
}

func TestPayloadTitle(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"title":" Heat "}`, "Heat"},
		{`{"title":5}`, untitled},
		{`{}`, untitled},
		{`not json`, untitled},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := payloadTitle([]byte(tt.raw)); got != tt.want {
				t.Errorf("payloadTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
