package mcclient

import (
	"fmt"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/mctypes"
	"github.com/mcclient/mcclient/schema"
	"github.com/mcclient/mcclient/wire"
)

// Handshake — serverbound, Handshake phase, id 0x00. Declares the
// protocol version and the phase the client wants to move to next.
type HandshakePacket struct {
	ProtocolVersion int32                  `mc:"varint"`
	ServerAddress   string                 `mc:"bstring255"`
	ServerPort      uint16                 `mc:"u16"`
	Intent          mctypes.HandshakeIntent
}

var handshakeRecord = schema.Compile(HandshakePacket{})

// StatusRequest — serverbound, Status phase, id 0x00. Carries no
// fields; sending it is itself the request.
type StatusRequestPacket struct{}

// StatusResponse — clientbound, Status phase, id 0x00. The payload is
// the server list ping JSON document, kept here as an opaque string;
// mctypes.ParseStatus turns it into a typed mctypes.Status.
type StatusResponsePacket struct {
	JSONResponse string `mc:"bstring32767"`
}

var statusResponseRecord = schema.Compile(StatusResponsePacket{})

// LoginStart — serverbound, Login phase, id 0x00.
type LoginStartPacket struct {
	Name       string       `mc:"bstring16"`
	PlayerUUID mctypes.UUID
}

var loginStartRecord = schema.Compile(LoginStartPacket{})

// EncryptionRequest — clientbound, Login phase, id 0x01. Online-mode
// encryption negotiation; this client runs offline-mode only, so the
// fields are decoded and handed to the caller by Connection.Recv like
// any other packet, but never acted on.
type EncryptionRequestPacket struct {
	ServerID           string `mc:"bstring20"`
	PublicKey          []byte `mc:"bytes"`
	VerifyToken        []byte `mc:"bytes"`
	ShouldAuthenticate bool   `mc:"bool"`
}

var encryptionRequestRecord = schema.Compile(EncryptionRequestPacket{})

// LoginProperty is one entry of LoginSuccess's property list (skin,
// cape, and other profile metadata signed by the session server).
type LoginProperty struct {
	Name      string               `mc:"bstring32767"`
	Value     string               `mc:"bstring32767"`
	Signature wire.Optional[string] `mc:"bstring32767"`
}

func (p *LoginProperty) DecodeSelf(r wire.Reader) error {
	return loginPropertyRecord.Decode(r, p)
}
func (p *LoginProperty) EncodeSelf(w wire.Writer) error {
	return loginPropertyRecord.Encode(w, *p)
}
func (p *LoginProperty) SizeSelf() int { return loginPropertyRecord.Size(*p) }

var loginPropertyRecord = schema.Compile(LoginProperty{})

type loginPropertyList []LoginProperty

func (l *loginPropertyList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, func(r wire.Reader) (LoginProperty, error) {
		var p LoginProperty
		err := p.DecodeSelf(r)
		return p, err
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *loginPropertyList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []LoginProperty(*l), func(w wire.Writer, p LoginProperty) error {
		return p.EncodeSelf(w)
	})
}

func (l *loginPropertyList) SizeSelf() int {
	total := wire.SizeVarInt(int32(len(*l)))
	for _, p := range *l {
		total += p.SizeSelf()
	}
	return total
}

// LoginSuccess — clientbound, Login phase, id 0x02.
type LoginSuccessPacket struct {
	UUID                mctypes.UUID
	Username            string             `mc:"bstring16"`
	Properties          loginPropertyList
	StrictErrorHandling bool `mc:"bool"`
}

var loginSuccessRecord = schema.Compile(LoginSuccessPacket{})

// LoginAcknowledged — serverbound, Login phase, id 0x03. Carries no
// fields; sending it transitions both ends to Configuration.
type LoginAcknowledgedPacket struct{}

// PluginMessage — Configuration and Play phases, both directions. Data
// is "rest of packet": it has no length prefix of its own, so the
// catalog entry for this id is one of the few that reads the frame's
// remaining byte count rather than working purely from the wire
// primitives.
type PluginMessagePacket struct {
	Channel string `mc:"identifier"`
	Data    []byte
}

func decodePluginMessage(r wire.Reader, remaining int32) (any, error) {
	channel, err := mctypes.DecodeIdentifier(r)
	if err != nil {
		return nil, fmt.Errorf("mcclient: plugin message channel: %w", err)
	}
	tail := remaining - int32(mctypes.SizeIdentifier(channel))
	if tail < 0 {
		return nil, fmt.Errorf("mcclient: plugin message: %w (channel longer than packet)", protoerr.ErrMalformed)
	}
	data := make([]byte, tail)
	for i := range data {
		b, err := wire.ReadByte(r)
		if err != nil {
			return nil, fmt.Errorf("mcclient: plugin message data: %w", err)
		}
		data[i] = b
	}
	return PluginMessagePacket{Channel: channel, Data: data}, nil
}

func encodePluginMessage(w wire.Writer, v any) error {
	p := v.(PluginMessagePacket)
	if err := mctypes.EncodeIdentifier(w, p.Channel); err != nil {
		return err
	}
	_, err := w.Write(p.Data)
	return err
}

func sizePluginMessage(v any) int {
	p := v.(PluginMessagePacket)
	return mctypes.SizeIdentifier(p.Channel) + len(p.Data)
}

// FinishConfiguration — clientbound, Configuration phase. No fields.
type FinishConfigurationPacket struct{}

// AckFinishConfiguration — serverbound, Configuration phase. No fields.
type AckFinishConfigurationPacket struct{}

// KeepAlive — Configuration and Play phases, both directions. The
// client's only obligation on receiving one is to echo the same id
// back on the serverbound variant of the same phase; see Connection's
// dispatch loop for where that reflection happens.
type KeepAlivePacket struct {
	ID int64 `mc:"i64"`
}

var keepAliveRecord = schema.Compile(KeepAlivePacket{})

// ServerboundKnownPacks — serverbound, Configuration phase. The
// client's reply to ClientboundKnownPacks, declaring which data pack
// namespaces/ids/versions it already has cached; an empty list tells
// the server to send everything.
type ServerboundKnownPacksPacket struct {
	Packs knownPackList
}

var serverboundKnownPacksRecord = schema.Compile(ServerboundKnownPacksPacket{})

// KnownPack is one (namespace, id, version) triple shared by both the
// clientbound and serverbound known-packs packets.
type KnownPack struct {
	Namespace string `mc:"identifier"`
	ID        string `mc:"identifier"`
	Version   string `mc:"bstring32767"`
}

func (p *KnownPack) DecodeSelf(r wire.Reader) error { return knownPackRecord.Decode(r, p) }
func (p *KnownPack) EncodeSelf(w wire.Writer) error { return knownPackRecord.Encode(w, *p) }
func (p *KnownPack) SizeSelf() int                  { return knownPackRecord.Size(*p) }

var knownPackRecord = schema.Compile(KnownPack{})

type knownPackList []KnownPack

func (l *knownPackList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, func(r wire.Reader) (KnownPack, error) {
		var p KnownPack
		err := p.DecodeSelf(r)
		return p, err
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *knownPackList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []KnownPack(*l), func(w wire.Writer, p KnownPack) error {
		return p.EncodeSelf(w)
	})
}

func (l *knownPackList) SizeSelf() int {
	total := wire.SizeVarInt(int32(len(*l)))
	for _, p := range *l {
		total += p.SizeSelf()
	}
	return total
}

// ClientboundKnownPacks — clientbound, Configuration phase.
type ClientboundKnownPacksPacket struct {
	Packs knownPackList
}

var clientboundKnownPacksRecord = schema.Compile(ClientboundKnownPacksPacket{})

// RegistryData — clientbound, Configuration phase, one per registry
// the server wants to synchronize. Each entry's payload is opaque NBT;
// this client stores it for later forwarding rather than interpreting
// it, the same simplification applied to Slot's component blocks.
type RegistryDataPacket struct {
	RegistryID string `mc:"identifier"`
	Entries    registryEntryList
}

var registryDataRecord = schema.Compile(RegistryDataPacket{})

type registryEntry struct {
	ID   string               `mc:"identifier"`
	Data wire.Optional[[]byte]
}

func (e *registryEntry) DecodeSelf(r wire.Reader) error {
	id, err := mctypes.DecodeIdentifier(r)
	if err != nil {
		return err
	}
	present, err := wire.DecodeBool(r)
	if err != nil {
		return err
	}
	var data wire.Optional[[]byte]
	if present {
		blob, err := wire.DecodeSequence(r, wire.DecodeU8)
		if err != nil {
			return err
		}
		data = wire.Some(blob)
	}
	e.ID, e.Data = id, data
	return nil
}

func (e *registryEntry) EncodeSelf(w wire.Writer) error {
	if err := mctypes.EncodeIdentifier(w, e.ID); err != nil {
		return err
	}
	if err := wire.EncodeBool(w, e.Data.Valid); err != nil {
		return err
	}
	if !e.Data.Valid {
		return nil
	}
	return wire.EncodeSequence(w, e.Data.Value, wire.EncodeU8)
}

func (e *registryEntry) SizeSelf() int {
	total := mctypes.SizeIdentifier(e.ID) + 1
	if e.Data.Valid {
		total += wire.SizeSequence(e.Data.Value, wire.SizeU8)
	}
	return total
}

type registryEntryList []registryEntry

func (l *registryEntryList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, func(r wire.Reader) (registryEntry, error) {
		var e registryEntry
		err := e.DecodeSelf(r)
		return e, err
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *registryEntryList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []registryEntry(*l), func(w wire.Writer, e registryEntry) error {
		return e.EncodeSelf(w)
	})
}

func (l *registryEntryList) SizeSelf() int {
	total := wire.SizeVarInt(int32(len(*l)))
	for _, e := range *l {
		total += e.SizeSelf()
	}
	return total
}

// FeatureFlags — clientbound, Configuration phase: the set of
// experimental datapack feature flags the server has enabled.
type FeatureFlagsPacket struct {
	Flags identifierList
}

var featureFlagsRecord = schema.Compile(FeatureFlagsPacket{})

type identifierList []string

func (l *identifierList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, mctypes.DecodeIdentifier)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *identifierList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []string(*l), mctypes.EncodeIdentifier)
}

func (l *identifierList) SizeSelf() int {
	return wire.SizeSequence([]string(*l), mctypes.SizeIdentifier)
}

// UpdateTags — clientbound, Configuration and Play phases: registry
// tag groups, each an identifier naming the registry followed by the
// tag->id-set entries within it.
type UpdateTagsPacket struct {
	Registries registryTagsList
}

var updateTagsRecord = schema.Compile(UpdateTagsPacket{})

type registryTags struct {
	Registry string `mc:"identifier"`
	Tags     tagEntryList
}

func (t *registryTags) DecodeSelf(r wire.Reader) error { return registryTagsRecord.Decode(r, t) }
func (t *registryTags) EncodeSelf(w wire.Writer) error { return registryTagsRecord.Encode(w, *t) }
func (t *registryTags) SizeSelf() int                  { return registryTagsRecord.Size(*t) }

var registryTagsRecord = schema.Compile(registryTags{})

type tagEntry struct {
	TagName string `mc:"identifier"`
	Entries []int32
}

func (e *tagEntry) DecodeSelf(r wire.Reader) error {
	name, err := mctypes.DecodeIdentifier(r)
	if err != nil {
		return err
	}
	ids, err := wire.DecodeSequence(r, wire.DecodeVarInt)
	if err != nil {
		return err
	}
	e.TagName, e.Entries = name, ids
	return nil
}

func (e *tagEntry) EncodeSelf(w wire.Writer) error {
	if err := mctypes.EncodeIdentifier(w, e.TagName); err != nil {
		return err
	}
	return wire.EncodeSequence(w, e.Entries, wire.EncodeVarInt)
}

func (e *tagEntry) SizeSelf() int {
	return mctypes.SizeIdentifier(e.TagName) + wire.SizeSequence(e.Entries, wire.SizeVarInt)
}

type tagEntryList []tagEntry

func (l *tagEntryList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, func(r wire.Reader) (tagEntry, error) {
		var e tagEntry
		err := e.DecodeSelf(r)
		return e, err
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *tagEntryList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []tagEntry(*l), func(w wire.Writer, e tagEntry) error {
		return e.EncodeSelf(w)
	})
}

func (l *tagEntryList) SizeSelf() int {
	total := wire.SizeVarInt(int32(len(*l)))
	for _, e := range *l {
		total += e.SizeSelf()
	}
	return total
}

type registryTagsList []registryTags

func (l *registryTagsList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, func(r wire.Reader) (registryTags, error) {
		var t registryTags
		err := t.DecodeSelf(r)
		return t, err
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *registryTagsList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []registryTags(*l), func(w wire.Writer, t registryTags) error {
		return t.EncodeSelf(w)
	})
}

func (l *registryTagsList) SizeSelf() int {
	total := wire.SizeVarInt(int32(len(*l)))
	for _, t := range *l {
		total += t.SizeSelf()
	}
	return total
}

// UpdateRecipes — clientbound, Play phase, id 0x83: the recipe
// property sets (each an identifier plus a list of item ids) followed
// by the stonecutter recipes' SlotDisplay values.
type UpdateRecipesPacket struct {
	PropertySets recipePropertySetList
	StoneCutter  []mctypes.SlotDisplay
}

func decodeUpdateRecipes(r wire.Reader, remaining int32) (any, error) {
	sets, err := wire.DecodeSequence(r, func(r wire.Reader) (recipePropertySet, error) {
		var s recipePropertySet
		err := s.DecodeSelf(r)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("mcclient: update recipes property sets: %w", err)
	}
	displays, err := wire.DecodeSequence(r, mctypes.DecodeSlotDisplay)
	if err != nil {
		return nil, fmt.Errorf("mcclient: update recipes stonecutter recipes: %w", err)
	}
	return UpdateRecipesPacket{PropertySets: sets, StoneCutter: displays}, nil
}

func encodeUpdateRecipes(w wire.Writer, v any) error {
	p := v.(UpdateRecipesPacket)
	if err := wire.EncodeSequence(w, []recipePropertySet(p.PropertySets), func(w wire.Writer, s recipePropertySet) error {
		return s.EncodeSelf(w)
	}); err != nil {
		return err
	}
	return wire.EncodeSequence(w, p.StoneCutter, mctypes.EncodeSlotDisplay)
}

func sizeUpdateRecipes(v any) int {
	p := v.(UpdateRecipesPacket)
	total := wire.SizeVarInt(int32(len(p.PropertySets)))
	for _, s := range p.PropertySets {
		total += s.SizeSelf()
	}
	total += wire.SizeSequence(p.StoneCutter, mctypes.SizeSlotDisplay)
	return total
}

type recipePropertySetList []recipePropertySet

// recipePropertySet is one named group of item ids sharing a display
// property (the recipe book's "these items behave alike" grouping).
type recipePropertySet struct {
	Name  string  `mc:"identifier"`
	Items []int32 `mc:"varint"`
}

func (s *recipePropertySet) DecodeSelf(r wire.Reader) error {
	name, err := mctypes.DecodeIdentifier(r)
	if err != nil {
		return err
	}
	ids, err := wire.DecodeSequence(r, wire.DecodeVarInt)
	if err != nil {
		return err
	}
	s.Name, s.Items = name, ids
	return nil
}

func (s *recipePropertySet) EncodeSelf(w wire.Writer) error {
	if err := mctypes.EncodeIdentifier(w, s.Name); err != nil {
		return err
	}
	return wire.EncodeSequence(w, s.Items, wire.EncodeVarInt)
}

func (s *recipePropertySet) SizeSelf() int {
	return mctypes.SizeIdentifier(s.Name) + wire.SizeSequence(s.Items, wire.SizeVarInt)
}

// PlayLogin — clientbound, Play phase. The "join game" packet; this
// catalog carries only the handful of fields a bot needs to track its
// own state (entity id, dimension, hardcore flag, game mode), not the
// full world-generation parameter set the vanilla server sends.
type PlayLoginPacket struct {
	EntityID            int32  `mc:"i32"`
	IsHardcore          bool   `mc:"bool"`
	DimensionNames      identifierList
	MaxPlayers          int32  `mc:"varint"`
	ViewDistance        int32  `mc:"varint"`
	SimulationDistance  int32  `mc:"varint"`
	ReducedDebugInfo    bool   `mc:"bool"`
	EnableRespawnScreen bool   `mc:"bool"`
	DoLimitedCrafting   bool   `mc:"bool"`
	DimensionType       int32  `mc:"varint"`
	DimensionName       string `mc:"identifier"`
	HashedSeed          int64  `mc:"i64"`
	GameMode            uint8  `mc:"u8"`
	PreviousGameMode    int8   `mc:"i8"`
	IsDebug             bool   `mc:"bool"`
	IsFlat              bool   `mc:"bool"`
}

var playLoginRecord = schema.Compile(PlayLoginPacket{})

// ChangeDifficulty — clientbound, Play phase.
type ChangeDifficultyPacket struct {
	Difficulty uint8 `mc:"u8"`
	Locked     bool  `mc:"bool"`
}

var changeDifficultyRecord = schema.Compile(ChangeDifficultyPacket{})

// PlayerAbilities — clientbound, Play phase.
type PlayerAbilitiesPacket struct {
	Flags          uint8   `mc:"u8"`
	FlyingSpeed    float32 `mc:"f32"`
	FieldOfViewMod float32 `mc:"f32"`
}

var playerAbilitiesRecord = schema.Compile(PlayerAbilitiesPacket{})

// SetHealth — clientbound, Play phase.
type SetHealthPacket struct {
	Health         float32 `mc:"f32"`
	Food           int32   `mc:"varint"`
	FoodSaturation float32 `mc:"f32"`
}

var setHealthRecord = schema.Compile(SetHealthPacket{})

// SetHeldItem — clientbound, Play phase: which hotbar slot the server
// believes is selected.
type SetHeldItemPacket struct {
	Slot uint8 `mc:"u8"`
}

var setHeldItemRecord = schema.Compile(SetHeldItemPacket{})
