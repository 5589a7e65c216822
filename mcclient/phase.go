package mcclient

import "fmt"

// Phase is the connection's position in the login handshake sequence.
// Packet ids are only meaningful together with a Phase — id 0x00 in
// Status means something entirely different from id 0x00 in Play — so
// the dispatch tables are built and looked up per phase, never through
// one global id-to-type map.
type Phase int

const (
	PhaseHandshake Phase = iota
	PhaseStatus
	PhaseLogin
	PhaseConfiguration
	PhasePlay
)

func (p Phase) String() string {
	switch p {
	case PhaseHandshake:
		return "handshake"
	case PhaseStatus:
		return "status"
	case PhaseLogin:
		return "login"
	case PhaseConfiguration:
		return "configuration"
	case PhasePlay:
		return "play"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}
