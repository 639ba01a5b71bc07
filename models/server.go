// ABOUTME: Loosely structured server inventory records and persisted assessments
// ABOUTME: Resolves field aliases in a fixed order and defaults missing values

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/inf.v0"
)

const (
	UnknownServerName   = "Unknown Server"
	UnknownInstanceType = "N/A"
)

// Lookup orders for aliased fields; the first key present with a non-null
// value wins.
var (
	cpuKeys      = []string{"cpu", "cpu_utilization"}
	memoryKeys   = []string{"memory", "memory_utilization"}
	networkKeys  = []string{"network_utilization"}
	storageKeys  = []string{"storage"}
	softwareKeys = []string{"software_dependencies", "software"}
)

// ErrNotObject is returned when a record's JSON is not an object.
var ErrNotObject = errors.New("server record must be a JSON object")

// ServerRecord is one inventory record as supplied by the caller. Fields are
// resolved lazily from the underlying JSON object; unknown keys are kept.
type ServerRecord struct {
	fields map[string]interface{}
}

// NewServerRecord wraps an already decoded object. The map is copied so
// defaults applied later never leak back to the caller.
func NewServerRecord(fields map[string]interface{}) ServerRecord {
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return ServerRecord{fields: copied}
}

// DecodeServerRecord parses a single JSON object, keeping numbers exact.
func DecodeServerRecord(data []byte) (ServerRecord, error) {
	var fields map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ServerRecord{}, ErrNotObject
		}
		return ServerRecord{}, fmt.Errorf("invalid server record JSON: %w", err)
	}
	if fields == nil {
		return ServerRecord{}, ErrNotObject
	}
	if dec.More() {
		return ServerRecord{}, errors.New("invalid server record JSON: trailing data")
	}
	return ServerRecord{fields: fields}, nil
}

// DecodeServerRecords parses either a single object or an array of objects.
// Nothing is returned unless every element is an object.
func DecodeServerRecords(data []byte) ([]ServerRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	if trimmed[0] == '{' {
		r, err := DecodeServerRecord(trimmed)
		if err != nil {
			return nil, err
		}
		return []ServerRecord{r}, nil
	}

	if trimmed[0] != '[' {
		return nil, errors.New("document must be a JSON object or array of objects")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON array: %w", err)
	}
	records := make([]ServerRecord, 0, len(raw))
	for i, item := range raw {
		r, err := DecodeServerRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (r ServerRecord) lookup(keys []string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := r.fields[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Name returns the server name, or UnknownServerName when the value is
// absent or empty: null, false, zero, "", [] and {} all count as empty.
func (r ServerRecord) Name() string {
	v, ok := r.lookup([]string{"server_name"})
	if !ok || isEmptyValue(v) {
		return UnknownServerName
	}
	return stringify(v)
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	if d, ok := toDecimal(v); ok {
		return d.Sign() == 0
	}
	return false
}

// WithDefaults returns a copy whose server_name is filled in.
func (r ServerRecord) WithDefaults() ServerRecord {
	out := NewServerRecord(r.fields)
	out.fields["server_name"] = r.Name()
	return out
}

// InstanceType returns the instance type, or UnknownInstanceType when absent.
func (r ServerRecord) InstanceType() string {
	v, ok := r.lookup([]string{"instance_type"})
	if !ok {
		return UnknownInstanceType
	}
	return stringify(v)
}

// CPU is the coerced CPU utilization percentage.
func (r ServerRecord) CPU() *inf.Dec { return r.metric(cpuKeys) }

// Memory is the coerced memory utilization percentage.
func (r ServerRecord) Memory() *inf.Dec { return r.metric(memoryKeys) }

// Network is the coerced network utilization percentage.
func (r ServerRecord) Network() *inf.Dec { return r.metric(networkKeys) }

func (r ServerRecord) metric(keys []string) *inf.Dec {
	v, _ := r.lookup(keys)
	return Coerce(v, 0)
}

// Storage returns the opaque storage mapping, defaulting to an empty object.
func (r ServerRecord) Storage() interface{} {
	if v, ok := r.lookup(storageKeys); ok {
		return v
	}
	return map[string]interface{}{}
}

// Software returns the opaque software dependency list, defaulting to empty.
func (r ServerRecord) Software() interface{} {
	if v, ok := r.lookup(softwareKeys); ok {
		return v
	}
	return []interface{}{}
}

// Fields returns a copy of the raw record fields.
func (r ServerRecord) Fields() map[string]interface{} {
	return NewServerRecord(r.fields).fields
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// MigrationAssessment is the flat item persisted per server, keyed by server_name.
type MigrationAssessment struct {
	ServerName         string `json:"server_name" dynamodbav:"server_name"`
	InstanceType       string `json:"instance_type" dynamodbav:"instance_type"`
	CPUUtilization     string `json:"cpu_utilization" dynamodbav:"cpu_utilization"`
	MemoryUtilization  string `json:"memory_utilization" dynamodbav:"memory_utilization"`
	Storage            string `json:"storage" dynamodbav:"storage"`
	NetworkUtilization string `json:"network_utilization" dynamodbav:"network_utilization"`
	Software           string `json:"software" dynamodbav:"software"`
	PrimaryStrategy    string `json:"primary_strategy" dynamodbav:"primary_strategy"`
	StrategyScores     string `json:"strategy_scores" dynamodbav:"strategy_scores"`
	Cost               string `json:"cost" dynamodbav:"cost"`
}

// NewMigrationAssessment builds the persisted form of a scored record.
// Metrics are stored as normalized decimal text and structured fields as
// JSON text.
func NewMigrationAssessment(r ServerRecord, primary Strategy, scores StrategyScores, cost *inf.Dec) (MigrationAssessment, error) {
	storage, err := json.Marshal(r.Storage())
	if err != nil {
		return MigrationAssessment{}, fmt.Errorf("encoding storage: %w", err)
	}
	software, err := json.Marshal(r.Software())
	if err != nil {
		return MigrationAssessment{}, fmt.Errorf("encoding software: %w", err)
	}
	scoreText, err := json.Marshal(scores)
	if err != nil {
		return MigrationAssessment{}, fmt.Errorf("encoding strategy scores: %w", err)
	}

	return MigrationAssessment{
		ServerName:         r.Name(),
		InstanceType:       r.InstanceType(),
		CPUUtilization:     decimalText(r.CPU()),
		MemoryUtilization:  decimalText(r.Memory()),
		Storage:            string(storage),
		NetworkUtilization: decimalText(r.Network()),
		Software:           string(software),
		PrimaryStrategy:    primary.Title(),
		StrategyScores:     string(scoreText),
		Cost:               cost.String(),
	}, nil
}

// Cents is a two-place decimal amount that encodes as a JSON number.
type Cents struct {
	*inf.Dec
}

// MarshalJSON writes the amount as a bare number such as 650.00.
func (c Cents) MarshalJSON() ([]byte, error) {
	if c.Dec == nil {
		return []byte("0.00"), nil
	}
	return []byte(new(inf.Dec).Round(c.Dec, 2, inf.RoundHalfUp).String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string.
func (c *Cents) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(data, `"`))
	d, ok := parseDecimal(text)
	if !ok {
		return fmt.Errorf("invalid amount %s", data)
	}
	c.Dec = d
	return nil
}

// AssessmentSummary is returned to callers after a record is processed.
type AssessmentSummary struct {
	ServerName      string   `json:"server_name"`
	PrimaryStrategy Strategy `json:"primary_strategy"`
	EstimatedCost   Cents    `json:"estimated_cost"`
}
