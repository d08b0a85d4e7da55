package templates_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/model/cadence"
	"github.com/onflow/flow-client-go/templates"
)

func TestAccountKeyEncode(t *testing.T) {
	publicKey := bytes.Repeat([]byte{0xab}, 64)

	key := templates.AccountKey{
		PublicKey: publicKey,
		SignAlgo:  templates.SignAlgoECDSAP256,
		HashAlgo:  templates.HashAlgoSHA3_256,
		Weight:    templates.DefaultKeyWeight,
	}

	// [publicKey, signAlgo, hashAlgo, weight] as an RLP list:
	// f8 47       list, 71 payload bytes
	// b8 40 ...   64-byte public key
	// 02          sign algo
	// 03          hash algo
	// 82 03 e8    weight 1000
	expected := "f847b840" + hex.EncodeToString(publicKey) + "0203" + "8203e8"
	assert.Equal(t, expected, key.Encode())
}

func TestCreateAccount(t *testing.T) {
	key := templates.AccountKey{
		PublicKey: bytes.Repeat([]byte{0x01}, 64),
		SignAlgo:  templates.SignAlgoECDSASecp256k1,
		HashAlgo:  templates.HashAlgoSHA3_256,
		Weight:    templates.DefaultKeyWeight,
	}

	script, args := templates.CreateAccount(
		[]templates.AccountKey{key},
		[]cadence.KeyValuePair{{Key: "Greeter", Value: "70756220636f6e7472616374"}},
	)

	assert.Contains(t, string(script), "AuthAccount(payer: signer)")
	require.Len(t, args, 2)

	var keysArg struct {
		Type  string `json:"type"`
		Value []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"value"`
	}
	require.NoError(t, json.Unmarshal(args[0], &keysArg))
	assert.Equal(t, "Array", keysArg.Type)
	require.Len(t, keysArg.Value, 1)
	assert.Equal(t, "String", keysArg.Value[0].Type)
	assert.Equal(t, key.Encode(), keysArg.Value[0].Value)

	var contractsArg struct {
		Type  string                 `json:"type"`
		Value []cadence.KeyValuePair `json:"value"`
	}
	require.NoError(t, json.Unmarshal(args[1], &contractsArg))
	assert.Equal(t, "Dictionary", contractsArg.Type)
	require.Len(t, contractsArg.Value, 1)
	assert.Equal(t, "Greeter", contractsArg.Value[0].Key)
}

func TestCreateAccountEmpty(t *testing.T) {
	_, args := templates.CreateAccount(nil, nil)

	require.Len(t, args, 2)
	assert.JSONEq(t, `{"type":"Array","value":[]}`, string(args[0]))
	assert.JSONEq(t, `{"type":"Dictionary","value":[]}`, string(args[1]))
}

func TestKeyTemplates(t *testing.T) {
	key := templates.AccountKey{
		PublicKey: bytes.Repeat([]byte{0x02}, 64),
		SignAlgo:  templates.SignAlgoECDSAP256,
		HashAlgo:  templates.HashAlgoSHA2_256,
		Weight:    500,
	}

	script, args := templates.AddAccountKey(key)
	assert.Contains(t, string(script), "addPublicKey")
	require.Len(t, args, 1)
	assert.Equal(t, `{"type":"String","value":"`+key.Encode()+`"}`, string(args[0]))

	script, args = templates.RemoveAccountKey(4)
	assert.Contains(t, string(script), "removePublicKey")
	require.Len(t, args, 1)
	assert.Equal(t, `{"type":"UInt64","value":"4"}`, string(args[0]))
}

func TestContractTemplates(t *testing.T) {
	const code = "pub contract Greeter {}"
	codeHex := hex.EncodeToString([]byte(code))

	script, args := templates.AddContract("Greeter", code)
	assert.Contains(t, string(script), "contracts.add")
	require.Len(t, args, 2)
	assert.Equal(t, `{"type":"String","value":"Greeter"}`, string(args[0]))
	assert.Equal(t, `{"type":"String","value":"`+codeHex+`"}`, string(args[1]))

	script, args = templates.UpdateContract("Greeter", code)
	assert.Contains(t, string(script), "contracts.update__experimental")
	require.Len(t, args, 2)
	assert.Equal(t, `{"type":"String","value":"`+codeHex+`"}`, string(args[1]))

	script, args = templates.RemoveContract("Greeter")
	assert.Contains(t, string(script), "contracts.remove")
	require.Len(t, args, 1)
	assert.Equal(t, `{"type":"String","value":"Greeter"}`, string(args[0]))
}
