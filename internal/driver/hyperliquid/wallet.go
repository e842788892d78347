package hyperliquid

import (
	"crypto/ecdsa"
	"encoding/binary"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/secret"
)

// walletSigner signs Hyperliquid "L1 action" requests with an Ethereum
// wallet private key. Hyperliquid has no API key/secret concept: every
// trading request is authenticated by an EIP-712 signature over a
// "phantom agent" struct wrapping a connection id derived from the
// msgpack-encoded action, its nonce, and an optional vault address — the
// scheme every Hyperliquid SDK (Python, Rust, Go) implements identically.
type walletSigner struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	testnet    bool
}

func newWalletSigner(privateKeyHex secret.String, testnet bool) (*walletSigner, error) {
	hexKey := strings.TrimPrefix(privateKeyHex.Expose(), "0x")
	priv, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, errors.NewConfigurationError("secret_key", "invalid hyperliquid wallet private key")
	}
	return &walletSigner{
		privateKey: priv,
		address:    crypto.PubkeyToAddress(priv.PublicKey),
		testnet:    testnet,
	}, nil
}

func (s *walletSigner) walletAddress() string { return s.address.Hex() }

// signAction msgpack-encodes action, folds in nonce and vault, and
// produces the {r,s,v} signature Hyperliquid expects on every
// /exchange request.
func (s *walletSigner) signAction(action any, nonce int64, vault string) (sig, error) {
	encoded, err := msgpack.Marshal(action)
	if err != nil {
		return sig{}, err
	}

	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], uint64(nonce))

	buf := make([]byte, 0, len(encoded)+8+21)
	buf = append(buf, encoded...)
	buf = append(buf, nonceBytes[:]...)
	if vault == "" {
		buf = append(buf, 0x00)
	} else {
		buf = append(buf, 0x01)
		buf = append(buf, common.HexToAddress(vault).Bytes()...)
	}
	connectionID := crypto.Keccak256(buf)

	source := "b"
	if !s.testnet {
		source = "a"
	}

	digest := agentTypedDataHash(source, connectionID)
	sigBytes, err := crypto.Sign(digest, s.privateKey)
	if err != nil {
		return sig{}, err
	}

	return sig{
		R: hexutil.Encode(sigBytes[:32]),
		S: hexutil.Encode(sigBytes[32:64]),
		V: int(sigBytes[64]) + 27,
	}, nil
}

var (
	eip712DomainTypeHash = crypto.Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	agentTypeHash        = crypto.Keccak256([]byte("Agent(string source,bytes32 connectionId)"))
	hyperliquidChainID   = big.NewInt(1337)
)

// domainSeparator is fixed across every Hyperliquid action: name
// "Exchange", version "1", chain id 1337, and the zero address as the
// verifying contract (there is no real on-chain contract; this is the
// phantom-type convention the protocol settled on).
func domainSeparator() []byte {
	nameHash := crypto.Keccak256([]byte("Exchange"))
	versionHash := crypto.Keccak256([]byte("1"))

	var chainIDBytes [32]byte
	hyperliquidChainID.FillBytes(chainIDBytes[:])

	var verifyingContract [32]byte // zero address, left-padded

	buf := make([]byte, 0, 32*5)
	buf = append(buf, eip712DomainTypeHash...)
	buf = append(buf, nameHash...)
	buf = append(buf, versionHash...)
	buf = append(buf, chainIDBytes[:]...)
	buf = append(buf, verifyingContract[:]...)
	return crypto.Keccak256(buf)
}

func agentTypedDataHash(source string, connectionID []byte) []byte {
	sourceHash := crypto.Keccak256([]byte(source))

	structBuf := make([]byte, 0, 32*3)
	structBuf = append(structBuf, agentTypeHash...)
	structBuf = append(structBuf, sourceHash...)
	structBuf = append(structBuf, connectionID...)
	structHash := crypto.Keccak256(structBuf)

	msg := make([]byte, 0, 2+32+32)
	msg = append(msg, 0x19, 0x01)
	msg = append(msg, domainSeparator()...)
	msg = append(msg, structHash...)
	return crypto.Keccak256(msg)
}
