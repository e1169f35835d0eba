package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/jointbank/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	tmtypes "github.com/tendermint/tendermint/types"
)

const (
	appStateKey = "app_state"
	// GenesisFile is the location of the genesis file relative to the
	// home directory, following the tendermint layout.
	GenesisFile = "config/genesis.json"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd will add the app specific state to the genesis file under home.
// If no genesis file exists (tendermint init was not run), a minimal one
// with a random chain id is created first.
//
// The application can pass in a function to generate proper options. And
// may want to use GenerateCoinKey to create default account(s).
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, GenesisFile)
	if !fileExists(genFile) {
		if err := writeGenesis(genFile); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile)
	} else {
		logger.Info("Found genesis file", "path", genFile)
	}

	// no app_state, leave like tendermint
	if gen == nil {
		return nil
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	return addGenesisOptions(genFile, options)
}

func writeGenesis(filename string) error {
	if err := cmn.EnsureDir(filepath.Dir(filename), 0700); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	genDoc := tmtypes.GenesisDoc{
		ChainID:     fmt.Sprintf("test-chain-%v", cmn.RandStr(6)),
		GenesisTime: time.Now().UTC(),
	}
	if err := genDoc.SaveAs(filename); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "save genesis: %s", err)
	}
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}

	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "parse %s: %s", filename, err)
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
