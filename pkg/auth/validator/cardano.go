package validator

import (
	"bytes"
	"encoding/binary"

	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/curve"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

// Cardano signature envelope layout:
//
//	public_key[32] ‖ signature[64] ‖ ckb_sign_msg[32] ‖ sign_message_len(4, LE) ‖ sign_message[sign_message_len]
const (
	cardanoPublicKeySize   = 32
	cardanoSignatureSize   = 64
	cardanoCkbMsgSize      = 32
	cardanoLenFieldSize    = 4
	cardanoEnvelopeMinSize = cardanoPublicKeySize + cardanoSignatureSize + cardanoCkbMsgSize + cardanoLenFieldSize

	// MaxCardanoSignMessageSize bounds the variable-length signed payload
	// so a malformed length field can't make the decoder read out of
	// bounds or allocate unreasonably.
	MaxCardanoSignMessageSize = 16 * 1024
)

type cardanoSignatureData struct {
	publicKey   []byte
	signature   []byte
	ckbSignMsg  []byte
	signMessage []byte
}

func decodeCardanoSignatureData(sig []byte) (*cardanoSignatureData, error) {
	if len(sig) < cardanoEnvelopeMinSize {
		return nil, authcode.New(authcode.InvalidArg)
	}
	off := 0
	pub := sig[off : off+cardanoPublicKeySize]
	off += cardanoPublicKeySize
	signature := sig[off : off+cardanoSignatureSize]
	off += cardanoSignatureSize
	ckbMsg := sig[off : off+cardanoCkbMsgSize]
	off += cardanoCkbMsgSize
	msgLen := binary.LittleEndian.Uint32(sig[off : off+cardanoLenFieldSize])
	off += cardanoLenFieldSize

	if msgLen > MaxCardanoSignMessageSize || uint64(off)+uint64(msgLen) != uint64(len(sig)) {
		return nil, authcode.New(authcode.InvalidArg)
	}
	signMessage := sig[off : off+int(msgLen)]

	return &cardanoSignatureData{
		publicKey:   pub,
		signature:   signature,
		ckbSignMsg:  ckbMsg,
		signMessage: signMessage,
	}, nil
}

// Cardano verifies the envelope's Ed25519 signature and asserts that the
// envelope's embedded ckb_sign_msg matches the canonicalized message passed
// in. Fingerprint = BLAKE2b-256(public_key)[0:20].
func Cardano(sig, msg []byte) (hash.Fingerprint, error) {
	data, err := decodeCardanoSignatureData(sig)
	if err != nil {
		return hash.Fingerprint{}, err
	}
	if !bytes.Equal(data.ckbSignMsg, msg) {
		return hash.Fingerprint{}, authcode.New(authcode.InvalidArg)
	}
	if !curve.VerifyEd25519(data.publicKey, data.signature, data.signMessage) {
		return hash.Fingerprint{}, authcode.New(authcode.WrongState)
	}
	return hash.Blake2b256Fingerprint(data.publicKey), nil
}
