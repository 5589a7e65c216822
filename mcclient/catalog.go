package mcclient

import (
	"fmt"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// decodeFunc decodes one packet's payload. remaining is the number of
// payload bytes the frame envelope promised; every decoder except the
// handful with a "rest of packet" field (PluginMessage) ignores it.
type decodeFunc func(r wire.Reader, remaining int32) (any, error)
type encodeFunc func(w wire.Writer, v any) error
type sizeFunc func(v any) int

type packetEntry struct {
	name   string
	decode decodeFunc
	encode encodeFunc
	size   sizeFunc
}

func recordEntry[T any](name string, rec interface {
	Decode(wire.Reader, any) error
	Encode(wire.Writer, any) error
	Size(any) int
}) packetEntry {
	return packetEntry{
		name: name,
		decode: func(r wire.Reader, _ int32) (any, error) {
			var v T
			err := rec.Decode(r, &v)
			return v, err
		},
		encode: func(w wire.Writer, v any) error { return rec.Encode(w, v) },
		size:   func(v any) int { return rec.Size(v) },
	}
}

// dispatchTable maps a packet id to its catalog entry within one phase
// and one direction.
type dispatchTable map[int32]packetEntry

// catalog holds the full id->packet mapping for every phase, split by
// direction since the clientbound and serverbound id spaces within a
// phase are independent.
type catalog struct {
	clientbound map[Phase]dispatchTable
	serverbound map[Phase]dispatchTable
}

func (c *catalog) clientboundEntry(phase Phase, id int32) (packetEntry, bool) {
	table, ok := c.clientbound[phase]
	if !ok {
		return packetEntry{}, false
	}
	e, ok := table[id]
	return e, ok
}

func (c *catalog) serverboundEntry(phase Phase, id int32) (packetEntry, bool) {
	table, ok := c.serverbound[phase]
	if !ok {
		return packetEntry{}, false
	}
	e, ok := table[id]
	return e, ok
}

// defaultCatalog is the id table for protocol version 773. Packet ids
// are the ones from the generation the spec targets; Connection does
// not check which protocol version the server speaks and looks every
// id up in this table.
var defaultCatalog = buildCatalog()

func buildCatalog() *catalog {
	c := &catalog{
		clientbound: map[Phase]dispatchTable{},
		serverbound: map[Phase]dispatchTable{},
	}

	c.serverbound[PhaseHandshake] = dispatchTable{
		0x00: recordEntry[HandshakePacket]("Handshake", handshakeRecord),
	}

	c.serverbound[PhaseStatus] = dispatchTable{
		0x00: {
			name:   "StatusRequest",
			decode: func(wire.Reader, int32) (any, error) { return StatusRequestPacket{}, nil },
			encode: func(wire.Writer, any) error { return nil },
			size:   func(any) int { return 0 },
		},
	}
	c.clientbound[PhaseStatus] = dispatchTable{
		0x00: recordEntry[StatusResponsePacket]("StatusResponse", statusResponseRecord),
	}

	c.serverbound[PhaseLogin] = dispatchTable{
		0x00: recordEntry[LoginStartPacket]("LoginStart", loginStartRecord),
		0x03: {
			name:   "LoginAcknowledged",
			decode: func(wire.Reader, int32) (any, error) { return LoginAcknowledgedPacket{}, nil },
			encode: func(wire.Writer, any) error { return nil },
			size:   func(any) int { return 0 },
		},
	}
	c.clientbound[PhaseLogin] = dispatchTable{
		0x01: recordEntry[EncryptionRequestPacket]("EncryptionRequest", encryptionRequestRecord),
		0x02: recordEntry[LoginSuccessPacket]("LoginSuccess", loginSuccessRecord),
	}

	c.serverbound[PhaseConfiguration] = dispatchTable{
		0x02: {
			name: "ServerboundPluginMessage",
			decode: decodePluginMessage,
			encode: encodePluginMessage,
			size:   sizePluginMessage,
		},
		0x03: {
			name:   "AckFinishConfiguration",
			decode: func(wire.Reader, int32) (any, error) { return AckFinishConfigurationPacket{}, nil },
			encode: func(wire.Writer, any) error { return nil },
			size:   func(any) int { return 0 },
		},
		0x04: recordEntry[KeepAlivePacket]("ServerboundKeepAlive", keepAliveRecord),
		0x07: recordEntry[ServerboundKnownPacksPacket]("ServerboundKnownPacks", serverboundKnownPacksRecord),
	}
	c.clientbound[PhaseConfiguration] = dispatchTable{
		0x01: {
			name: "ClientboundPluginMessage",
			decode: decodePluginMessage,
			encode: encodePluginMessage,
			size:   sizePluginMessage,
		},
		0x03: {
			name:   "FinishConfiguration",
			decode: func(wire.Reader, int32) (any, error) { return FinishConfigurationPacket{}, nil },
			encode: func(wire.Writer, any) error { return nil },
			size:   func(any) int { return 0 },
		},
		0x04: recordEntry[KeepAlivePacket]("ClientboundKeepAlive", keepAliveRecord),
		0x07: recordEntry[RegistryDataPacket]("RegistryData", registryDataRecord),
		0x0c: recordEntry[FeatureFlagsPacket]("FeatureFlags", featureFlagsRecord),
		0x0d: recordEntry[UpdateTagsPacket]("UpdateTags", updateTagsRecord),
		0x0e: recordEntry[ClientboundKnownPacksPacket]("KnownPacks", clientboundKnownPacksRecord),
	}

	c.clientbound[PhasePlay] = dispatchTable{
		0x01: {
			name: "ClientboundPluginMessage",
			decode: decodePluginMessage,
			encode: encodePluginMessage,
			size:   sizePluginMessage,
		},
		0x0a: recordEntry[ChangeDifficultyPacket]("ChangeDifficulty", changeDifficultyRecord),
		0x2b: recordEntry[KeepAlivePacket]("ClientboundKeepAlive", keepAliveRecord),
		0x30: recordEntry[PlayLoginPacket]("PlayLogin", playLoginRecord),
		0x3e: recordEntry[PlayerAbilitiesPacket]("PlayerAbilities", playerAbilitiesRecord),
		0x66: recordEntry[SetHealthPacket]("SetHealth", setHealthRecord),
		0x67: recordEntry[SetHeldItemPacket]("SetHeldItem", setHeldItemRecord),
		0x7d: recordEntry[UpdateTagsPacket]("UpdateTags", updateTagsRecord),
		0x83: {
			name:   "UpdateRecipes",
			decode: decodeUpdateRecipes,
			encode: encodeUpdateRecipes,
			size:   sizeUpdateRecipes,
		},
	}
	c.serverbound[PhasePlay] = dispatchTable{
		0x1a: {
			name: "ServerboundPluginMessage",
			decode: decodePluginMessage,
			encode: encodePluginMessage,
			size:   sizePluginMessage,
		},
		0x1b: recordEntry[KeepAlivePacket]("ServerboundKeepAlive", keepAliveRecord),
	}

	return c
}

func (c *catalog) lookupForEncode(phase Phase, name string) (packetEntry, int32, error) {
	table, ok := c.serverbound[phase]
	if !ok {
		return packetEntry{}, 0, fmt.Errorf("mcclient: %w (no serverbound packets registered for phase %s)", protoerr.ErrUnexpectedPacket, phase)
	}
	for id, e := range table {
		if e.name == name {
			return e, id, nil
		}
	}
	return packetEntry{}, 0, fmt.Errorf("mcclient: %w (packet %q not registered for phase %s)", protoerr.ErrUnexpectedPacket, name, phase)
}
