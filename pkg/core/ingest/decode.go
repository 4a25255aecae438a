// Package ingest turns uploaded statement files into model values. Uploads
// are often hand-edited or exported by spreadsheets, so decoding falls back
// from strict JSON to Hjson to repaired JSON.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"financial_analysis/pkg/models"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrEmptyPayload is returned for blank input.
var ErrEmptyPayload = errors.New("empty payload")

type strategy struct {
	name   string
	toJSON func(raw string) (string, error)
}

// strategies are tried in order; the first whose output decodes and
// validates wins.
//  1. standard JSON
//  2. Hjson (comments, unquoted keys, optional commas)
//  3. JSON repair (code fences, single quotes, trailing commas, unclosed brackets)
var strategies = []strategy{
	{"json", func(raw string) (string, error) { return raw, nil }},
	{"hjson", fromHJSON},
	{"json-repair", jsonrepair.RepairJSON},
}

func fromHJSON(raw string) (string, error) {
	var v interface{}
	if err := hjson.Unmarshal([]byte(raw), &v); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(out), nil
}

// smartDecode runs the strategies until decode succeeds.
func smartDecode(raw string, decode func(data []byte) error) error {
	raw = stripFence(strings.TrimSpace(raw))
	if raw == "" {
		return ErrEmptyPayload
	}

	var lastErr error
	for _, s := range strategies {
		data, err := s.toJSON(raw)
		if err != nil {
			lastErr = err
			continue
		}
		if err := decode([]byte(data)); err != nil {
			lastErr = err
			continue
		}
		if s.name != "json" {
			fmt.Printf("[INGEST] Payload decoded via %s fallback\n", s.name)
		}
		return nil
	}
	return fmt.Errorf("all parsing strategies failed: %w", lastErr)
}

// stripFence removes a wrapping ```json ... ``` block.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "[{") {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// DecodeStatements parses an upload holding either a JSON array of statements
// or an object with a "financialStatements" array. Every statement must carry
// a positive year; absent numeric fields decode as zero.
func DecodeStatements(raw string) ([]models.FinancialStatement, error) {
	var list []models.FinancialStatement
	err := smartDecode(raw, func(data []byte) error {
		list = nil
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return err
			}
		} else {
			var wrapper struct {
				FinancialStatements []models.FinancialStatement `json:"financialStatements"`
			}
			if err := json.Unmarshal(trimmed, &wrapper); err != nil {
				return err
			}
			list = wrapper.FinancialStatements
		}

		if len(list) == 0 {
			return errors.New("no statements in payload")
		}
		for i, st := range list {
			if st.Year <= 0 {
				return fmt.Errorf("statement %d has no year", i)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode statements: %w", err)
	}
	return list, nil
}

// DecodeCompany parses a whole company aggregate. Omitted attributes stay
// zero so the caller can apply its own defaults (config.ApplyTo) before
// Company.ApplyDefaults.
func DecodeCompany(raw string) (*models.Company, error) {
	var c *models.Company
	err := smartDecode(raw, func(data []byte) error {
		// Absent isActive means active.
		c = &models.Company{IsActive: true}
		if err := json.Unmarshal(data, c); err != nil {
			return err
		}
		if c.Name == "" {
			return errors.New("company has no name")
		}
		for i, st := range c.FinancialStatements {
			if st.Year <= 0 {
				return fmt.Errorf("statement %d has no year", i)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode company: %w", err)
	}
	return c, nil
}
