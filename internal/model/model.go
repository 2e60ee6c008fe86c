// Package model holds the values that travel along the service chain.
//
// Every type here is built fresh per request and never mutated afterwards.
// Field provenance in Merged is fixed: key_one and key_two always come from
// the data service, key_time always comes from the time service.
package model

import (
	"net/url"
	"strings"
	"time"
)

// UnknownParam is the effective query value when the parameter is absent.
const UnknownParam = "Unknown"

// DataPayload is the body returned by the data service.
type DataPayload struct {
	KeyOne string `json:"key_one"`
	KeyTwo string `json:"key_two"`
}

// TimePayload is the body returned by the time service.
type TimePayload struct {
	KeyTime time.Time `json:"key_time"`
}

// Merged is the edge service's outward-facing body.
type Merged struct {
	KeyOne  string    `json:"key_one"`
	KeyTwo  string    `json:"key_two"`
	KeyTime time.Time `json:"key_time"`
}

// HealthStatus is the fixed body of every health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}

// Healthy returns the constant health body.
func Healthy() HealthStatus {
	return HealthStatus{Status: "Healthy"}
}

// NewDataPayload formats the data service's fields for prefix.
func NewDataPayload(prefix string) DataPayload {
	return DataPayload{
		KeyOne: "(" + prefix + ")Field 1",
		KeyTwo: "(" + prefix + ")Field 2",
	}
}

// Merge combines both dependency payloads. It never fails.
func Merge(data DataPayload, t TimePayload) Merged {
	return Merged{
		KeyOne:  data.KeyOne,
		KeyTwo:  data.KeyTwo,
		KeyTime: t.KeyTime,
	}
}

// ParamOrDefault returns the first value of key in values.
//
// A present but empty value ("?name=" or "?name") is returned as "", only a
// missing key falls back to UnknownParam.
func ParamOrDefault(values url.Values, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return UnknownParam
}

// ParseQuery decodes a raw query string without ever dropping a pair.
//
// Pairs are split on '&' only, so a ';' is ordinary text. '+' decodes to a
// space and a '%' not followed by two hex digits is kept literally, where
// url.ParseQuery would reject the whole pair.
func ParseQuery(raw string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k := decodeComponent(key)
		values[k] = append(values[k], decodeComponent(value))
	}
	return values
}

func decodeComponent(s string) string {
	if !strings.ContainsAny(s, "+%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
