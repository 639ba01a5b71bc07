// ABOUTME: Classifies inbound trigger payloads into one of four request variants
// ABOUTME: S3 notifications, direct HTTP ingestion, path lookups, or unsupported

package events

import (
	"encoding/json"
	"errors"
	"net/url"

	lambdaevents "github.com/aws/aws-lambda-go/events"
)

// Kind names a trigger variant; it doubles as the metrics label.
type Kind string

const (
	KindBulk        Kind = "bulk"
	KindDirect      Kind = "direct"
	KindLookup      Kind = "lookup"
	KindUnsupported Kind = "unsupported"
)

// Trigger is one classified inbound payload.
type Trigger interface {
	Kind() Kind
}

// BulkIngest asks for every record in one stored object to be processed.
type BulkIngest struct {
	Bucket string
	Key    string
	Err    error // set when the notification record could not be decoded
}

// DirectIngest carries a single record in an HTTP-style request body.
type DirectIngest struct {
	Method  string
	Body    string
	BodyErr error // set when the body is present but not a string
}

// Lookup asks for a stored assessment by server name. ServerID is empty when
// the path parameters do not carry one.
type Lookup struct {
	ServerID string
}

// Unsupported is any payload matching none of the known shapes.
type Unsupported struct {
	Raw json.RawMessage
}

func (BulkIngest) Kind() Kind   { return KindBulk }
func (DirectIngest) Kind() Kind { return KindDirect }
func (Lookup) Kind() Kind       { return KindLookup }
func (Unsupported) Kind() Kind  { return KindUnsupported }

// defaultBody is used when a direct request carries no body at all.
const defaultBody = "{}"

var errBodyNotString = errors.New("request body must be a JSON-encoded string")

// Classify inspects the payload shape. Checks run in a fixed order: storage
// notifications first, then an explicit request method, then path parameters.
func Classify(raw []byte) Trigger {
	var event map[string]json.RawMessage
	if err := json.Unmarshal(raw, &event); err != nil || event == nil {
		return Unsupported{Raw: json.RawMessage(raw)}
	}

	if t, ok := classifyRecords(event["Records"]); ok {
		return t
	}

	if methodRaw, ok := event["httpMethod"]; ok {
		return classifyDirect(methodRaw, event)
	}

	if params, ok := event["pathParameters"]; ok {
		return classifyLookup(params)
	}

	return Unsupported{Raw: json.RawMessage(raw)}
}

func classifyRecords(raw json.RawMessage) (Trigger, bool) {
	if raw == nil {
		return nil, false
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil || len(records) == 0 {
		return nil, false
	}

	var first map[string]json.RawMessage
	if err := json.Unmarshal(records[0], &first); err != nil {
		return nil, false
	}
	if _, ok := first["s3"]; !ok {
		return nil, false
	}

	var record lambdaevents.S3EventRecord
	if err := json.Unmarshal(records[0], &record); err != nil {
		return BulkIngest{Err: err}, true
	}

	key := record.S3.Object.Key
	// Notification keys are form-encoded; keep the raw key if it does not decode.
	if decoded, err := url.QueryUnescape(key); err == nil {
		key = decoded
	}
	return BulkIngest{Bucket: record.S3.Bucket.Name, Key: key}, true
}

func classifyDirect(methodRaw json.RawMessage, event map[string]json.RawMessage) Trigger {
	var method string
	// A non-string method simply never matches an allowed method.
	_ = json.Unmarshal(methodRaw, &method)

	t := DirectIngest{Method: method, Body: defaultBody}
	if bodyRaw, ok := event["body"]; ok {
		var body *string
		if err := json.Unmarshal(bodyRaw, &body); err != nil || body == nil {
			t.Body = ""
			t.BodyErr = errBodyNotString
		} else {
			t.Body = *body
		}
	}
	return t
}

func classifyLookup(raw json.RawMessage) Trigger {
	var params map[string]interface{}
	if err := json.Unmarshal(raw, &params); err != nil {
		return Lookup{}
	}
	id, _ := params["server_id"].(string)
	return Lookup{ServerID: id}
}
