package tx

import (
	"errors"
	"fmt"

	"realestate/internal/crypto"
	"realestate/internal/domain"
)

// PacketDataSize is the largest serialized transaction a cluster accepts.
const PacketDataSize = 1232

var (
	// ErrMissingSigner is returned when no keypair is available for a required signature.
	ErrMissingSigner = errors.New("missing signer")
	// ErrTooLarge is returned when a transaction does not fit in a packet.
	ErrTooLarge = errors.New("transaction too large")
	// ErrBadSignature is returned by Verify when a signature does not match.
	ErrBadSignature = errors.New("signature verification failed")
)

// Transaction is a message plus one signature per required signer.
type Transaction struct {
	Signatures []domain.Signature
	Message    Message
}

// New compiles instructions into an unsigned transaction.
func New(feePayer domain.Pubkey, recentBlockhash domain.Hash, instructions ...Instruction) (*Transaction, error) {
	msg, err := NewMessage(feePayer, recentBlockhash, instructions...)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		Signatures: make([]domain.Signature, msg.Header.NumRequiredSignatures),
		Message:    msg,
	}, nil
}

// Sign fills every required signature from signers. Keypairs that the message
// does not require are ignored.
func (t *Transaction) Sign(signers ...domain.Keypair) error {
	data, err := t.Message.Marshal()
	if err != nil {
		return err
	}
	required := int(t.Message.Header.NumRequiredSignatures)
	if len(t.Signatures) != required {
		t.Signatures = make([]domain.Signature, required)
	}
	for i := 0; i < required; i++ {
		key := t.Message.AccountKeys[i]
		for _, s := range signers {
			if s.Public == key {
				t.Signatures[i] = crypto.Sign(s, data)
				break
			}
		}
		if t.Signatures[i].IsZero() {
			return fmt.Errorf("%w: %s", ErrMissingSigner, key)
		}
	}
	return nil
}

// Signature returns the fee payer's signature, which identifies the transaction.
func (t *Transaction) Signature() domain.Signature {
	if len(t.Signatures) == 0 {
		return domain.Signature{}
	}
	return t.Signatures[0]
}

// Verify checks every signature against its account key.
func (t *Transaction) Verify() error {
	data, err := t.Message.Marshal()
	if err != nil {
		return err
	}
	if len(t.Signatures) != int(t.Message.Header.NumRequiredSignatures) {
		return fmt.Errorf("%w: have %d signatures, message requires %d",
			ErrBadSignature, len(t.Signatures), t.Message.Header.NumRequiredSignatures)
	}
	for i, sig := range t.Signatures {
		if !crypto.Verify(t.Message.AccountKeys[i], data, sig) {
			return fmt.Errorf("%w: account %s", ErrBadSignature, t.Message.AccountKeys[i])
		}
	}
	return nil
}

// Marshal serializes the signed transaction.
func (t *Transaction) Marshal() ([]byte, error) {
	msg, err := t.Message.Marshal()
	if err != nil {
		return nil, err
	}
	b, err := AppendCompactU16(make([]byte, 0, 1+64*len(t.Signatures)+len(msg)), len(t.Signatures))
	if err != nil {
		return nil, err
	}
	for _, s := range t.Signatures {
		b = append(b, s[:]...)
	}
	b = append(b, msg...)
	if len(b) > PacketDataSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(b), PacketDataSize)
	}
	return b, nil
}

// Unmarshal decodes a serialized transaction.
func Unmarshal(b []byte) (*Transaction, error) {
	r := reader{buf: b}
	n, err := r.compact()
	if err != nil {
		return nil, err
	}
	t := &Transaction{Signatures: make([]domain.Signature, n)}
	for i := range t.Signatures {
		s, err := r.bytes(64)
		if err != nil {
			return nil, err
		}
		copy(t.Signatures[i][:], s)
	}
	msg, used, err := UnmarshalMessage(b[r.off:])
	if err != nil {
		return nil, err
	}
	if r.off+used != len(b) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(b)-r.off-used)
	}
	if n != int(msg.Header.NumRequiredSignatures) {
		return nil, fmt.Errorf("%w: %d signatures for %d required signers",
			ErrMalformed, n, msg.Header.NumRequiredSignatures)
	}
	t.Message = msg
	return t, nil
}
