// Package obs implements a minimal obs-websocket v5 client: connection
// negotiation, synchronous requests, and asynchronous event delivery.
package obs

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

// Protocol opcodes from the obs-websocket v5 specification.
const (
	opHello           = 0
	opIdentify        = 1
	opIdentified      = 2
	opEvent           = 5
	opRequest         = 6
	opRequestResponse = 7
)

// rpcVersion is the only protocol revision this client speaks.
const rpcVersion = 1

// subscriptionOutputs is the event-subscription bit for output events
// (RecordStateChanged and friends). We never need any other intent.
const subscriptionOutputs = 1 << 6

// OutputStopped is the outputState value signalling that the recording
// output has fully stopped and the file is closed.
const OutputStopped = "OBS_WEBSOCKET_OUTPUT_STOPPED"

// EventRecordStateChanged is emitted whenever the record output changes state.
const EventRecordStateChanged = "RecordStateChanged"

// envelope is the outer frame of every obs-websocket message.
type envelope struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
}

type helloData struct {
	OBSWebSocketVersion string `json:"obsWebSocketVersion"`
	RPCVersion          int    `json:"rpcVersion"`
	Authentication      *struct {
		Challenge string `json:"challenge"`
		Salt      string `json:"salt"`
	} `json:"authentication"`
}

type identifyData struct {
	RPCVersion         int    `json:"rpcVersion"`
	Authentication     string `json:"authentication,omitempty"`
	EventSubscriptions int    `json:"eventSubscriptions"`
}

type identifiedData struct {
	NegotiatedRPCVersion int `json:"negotiatedRpcVersion"`
}

type requestData struct {
	RequestType string `json:"requestType"`
	RequestID   string `json:"requestId"`
	RequestData any    `json:"requestData,omitempty"`
}

type requestResponseData struct {
	RequestType   string `json:"requestType"`
	RequestID     string `json:"requestId"`
	RequestStatus struct {
		Result  bool   `json:"result"`
		Code    int    `json:"code"`
		Comment string `json:"comment,omitempty"`
	} `json:"requestStatus"`
	ResponseData json.RawMessage `json:"responseData"`
}

type eventData struct {
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData"`
}

// RecordStateChanged is the typed payload of the RecordStateChanged event.
// OutputPath is only populated on terminal states.
type RecordStateChanged struct {
	OutputActive bool   `json:"outputActive"`
	OutputState  string `json:"outputState"`
	OutputPath   string `json:"outputPath"`
}

// Stopped reports whether the event signals a fully stopped output.
// Intermediate states ("stopping", "started") do not count.
func (e RecordStateChanged) Stopped() bool {
	return e.OutputState == OutputStopped
}

// RecordStatus is the response payload of GetRecordStatus.
type RecordStatus struct {
	OutputActive   bool    `json:"outputActive"`
	OutputPaused   bool    `json:"outputPaused"`
	OutputTimecode string  `json:"outputTimecode"`
	OutputDuration float64 `json:"outputDuration"`
	OutputBytes    int64   `json:"outputBytes"`
}

// Version is the response payload of GetVersion.
type Version struct {
	OBSVersion          string `json:"obsVersion"`
	OBSWebSocketVersion string `json:"obsWebSocketVersion"`
	RPCVersion          int    `json:"rpcVersion"`
	Platform            string `json:"platform"`
}

// authResponse computes the Identify authentication string:
// base64(sha256(base64(sha256(password + salt)) + challenge)).
func authResponse(password, salt, challenge string) string {
	secret := sha256.Sum256([]byte(password + salt))
	secretB64 := base64.StdEncoding.EncodeToString(secret[:])
	answer := sha256.Sum256([]byte(secretB64 + challenge))
	return base64.StdEncoding.EncodeToString(answer[:])
}

func marshalEnvelope(op int, d any) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Op: op, D: raw})
}
