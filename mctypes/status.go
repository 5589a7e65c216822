package mctypes

import "encoding/json"

// StatusPlayers is the player count summary in a server list ping
// response.
type StatusPlayers struct {
	Max    int             `json:"max"`
	Online int             `json:"online"`
	Sample []StatusProfile `json:"sample,omitempty"`
}

// StatusProfile is one entry of the sample player list shown on hover.
type StatusProfile struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// StatusVersion is the server's reported protocol version.
type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// Status is the parsed server list ping document. The wire-level
// StatusResponse packet carries this as an opaque JSON string (see
// mcclient.StatusResponsePacket); ParseStatus turns it into a typed
// value the way the teacher's JSONCodec turns opaque bytes into a
// typed RPC message.
type Status struct {
	Version     StatusVersion   `json:"version"`
	Players     StatusPlayers   `json:"players"`
	Description json.RawMessage `json:"description"`
	Favicon     string          `json:"favicon,omitempty"`
}

// ParseStatus decodes a server list ping JSON document. Description is
// left as raw JSON because Mojang's chat component format allows both
// a bare string and a structured object, and this client's scope ends
// at forwarding the status document, not rendering chat components.
func ParseStatus(jsonResponse string) (Status, error) {
	var s Status
	err := json.Unmarshal([]byte(jsonResponse), &s)
	return s, err
}

// Encode serializes s back to a server list ping JSON document, for a
// client acting as the server side of a status exchange (tests, or a
// proxy forwarding a synthesized response).
func (s Status) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
