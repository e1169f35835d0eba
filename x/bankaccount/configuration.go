package bankaccount

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/gconf"
)

const (
	packageName = "bankaccount"

	// DefaultMaxOwners is the ownership limit of a single account.
	DefaultMaxOwners = 4
	// DefaultMaxAccountsPerParticipant limits how many accounts a single
	// participant may co-own.
	DefaultMaxAccountsPerParticipant = 3
)

// Configuration holds the limits of the extension. Owner is the only
// address allowed to change the configuration once the chain is running.
type Configuration struct {
	Owner                     jointbank.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	MaxOwners                 uint32            `protobuf:"varint,2,opt,name=max_owners,json=maxOwners,proto3" json:"max_owners"`
	MaxAccountsPerParticipant uint32            `protobuf:"varint,3,opt,name=max_accounts_per_participant,json=maxAccountsPerParticipant,proto3" json:"max_accounts_per_participant"`
	Quorum                    Quorum            `protobuf:"bytes,4,opt,name=quorum,proto3" json:"quorum"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration returns the configuration used when none was
// stored.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxOwners:                 DefaultMaxOwners,
		MaxAccountsPerParticipant: DefaultMaxAccountsPerParticipant,
		Quorum:                    QuorumMajority,
	}
}

// Validate returns an error if the limits are not usable. Limits can be
// lowered but never raised above the defaults.
func (c *Configuration) Validate() error {
	var err error
	if len(c.Owner) != 0 {
		err = errors.AppendField(err, "Owner", c.Owner.Validate())
	}
	switch {
	case c.MaxOwners == 0:
		err = errors.AppendField(err, "MaxOwners", errors.ErrEmpty)
	case c.MaxOwners > DefaultMaxOwners:
		err = errors.AppendField(err, "MaxOwners",
			errors.Wrapf(errors.ErrInput, "%d above %d", c.MaxOwners, DefaultMaxOwners))
	}
	switch {
	case c.MaxAccountsPerParticipant == 0:
		err = errors.AppendField(err, "MaxAccountsPerParticipant", errors.ErrEmpty)
	case c.MaxAccountsPerParticipant > DefaultMaxAccountsPerParticipant:
		err = errors.AppendField(err, "MaxAccountsPerParticipant",
			errors.Wrapf(errors.ErrInput, "%d above %d", c.MaxAccountsPerParticipant, DefaultMaxAccountsPerParticipant))
	}
	return errors.AppendField(err, "Quorum", c.Quorum.Validate())
}

// Marshal serializes the configuration.
func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(c))
}

// Unmarshal loads the configuration.
func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(c))
}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

// loadConf returns the stored configuration, or the defaults if nothing
// was stored.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}

// UpdateConfigurationMsg replaces the configuration. Zero fields of the
// patch keep their current value.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch"`
}

var _ jointbank.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path for this message.
func (UpdateConfigurationMsg) Path() string {
	return "bankaccount/update_configuration"
}

// Validate makes sure a patch is present.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	var err error
	if len(m.Patch.Owner) != 0 {
		err = errors.AppendField(err, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if m.Patch.Quorum != "" {
		err = errors.AppendField(err, "Patch.Quorum", m.Patch.Quorum.Validate())
	}
	return err
}

// Marshal serializes the message.
func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsgPB)(m))
}

// Unmarshal loads the message.
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateConfigurationMsgPB)(m))
}

type updateConfigurationMsgPB UpdateConfigurationMsg

func (m *updateConfigurationMsgPB) Reset()         { *m = updateConfigurationMsgPB{} }
func (m *updateConfigurationMsgPB) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgPB) ProtoMessage()    {}

// ConfigurationHandler applies configuration patches signed by the
// configuration owner.
type ConfigurationHandler struct {
	auth jointbank.Authenticator
}

var _ jointbank.Handler = ConfigurationHandler{}

// NewConfigurationHandler returns a handler for UpdateConfigurationMsg.
func NewConfigurationHandler(auth jointbank.Authenticator) ConfigurationHandler {
	return ConfigurationHandler{auth: auth}
}

// Check verifies the message and that the signer owns the configuration.
func (h ConfigurationHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{}, nil
}

// Deliver stores the patched configuration.
func (h ConfigurationHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := gconf.Save(db, packageName, conf); err != nil {
		return nil, errors.Wrap(err, "save")
	}
	return &jointbank.DeliverResult{}, nil
}

func (h ConfigurationHandler) validate(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*Configuration, error) {
	var msg UpdateConfigurationMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(conf.Owner) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "configuration is not owned")
	}
	signer := jointbank.MainSigner(ctx, h.auth)
	if !conf.Owner.Equals(signer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "configuration owner signature required")
	}

	p := msg.Patch
	if len(p.Owner) != 0 {
		conf.Owner = p.Owner
	}
	if p.MaxOwners != 0 {
		conf.MaxOwners = p.MaxOwners
	}
	if p.MaxAccountsPerParticipant != 0 {
		conf.MaxAccountsPerParticipant = p.MaxAccountsPerParticipant
	}
	if p.Quorum != "" {
		conf.Quorum = p.Quorum
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "patched configuration")
	}
	return &conf, nil
}
