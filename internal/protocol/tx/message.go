package tx

import (
	"errors"
	"fmt"
	"sort"

	"realestate/internal/domain"
)

// maxAccountKeys is bounded by the u8 account index of compiled instructions.
const maxAccountKeys = 256

// ErrVersionedMessage is returned when decoding a v0 (or later) message.
var ErrVersionedMessage = errors.New("versioned messages are not supported")

// MessageHeader carries the signer and read-only counts of a message.
type MessageHeader struct {
	NumRequiredSignatures uint8
	NumReadonlySigned     uint8
	NumReadonlyUnsigned   uint8
}

// Message is a compiled legacy message.
type Message struct {
	Header          MessageHeader
	AccountKeys     []domain.Pubkey
	RecentBlockhash domain.Hash
	Instructions    []CompiledInstruction
}

type keyMeta struct {
	key      domain.Pubkey
	signer   bool
	writable bool
	order    int
}

// category sorts writable signers, read-only signers, writable non-signers
// and read-only non-signers in that order.
func (m keyMeta) category() int {
	switch {
	case m.signer && m.writable:
		return 0
	case m.signer:
		return 1
	case m.writable:
		return 2
	default:
		return 3
	}
}

// NewMessage compiles instructions into a legacy message paid for by feePayer.
func NewMessage(feePayer domain.Pubkey, recentBlockhash domain.Hash, instructions ...Instruction) (Message, error) {
	metas := map[domain.Pubkey]*keyMeta{
		feePayer: {key: feePayer, signer: true, writable: true, order: 0},
	}
	add := func(k domain.Pubkey, signer, writable bool) {
		if m, ok := metas[k]; ok {
			m.signer = m.signer || signer
			m.writable = m.writable || writable
			return
		}
		metas[k] = &keyMeta{key: k, signer: signer, writable: writable, order: len(metas)}
	}
	for _, ix := range instructions {
		for _, a := range ix.Accounts {
			add(a.Pubkey, a.IsSigner, a.IsWritable)
		}
		add(ix.ProgramID, false, false)
	}
	if len(metas) > maxAccountKeys {
		return Message{}, fmt.Errorf("message references %d accounts, limit is %d", len(metas), maxAccountKeys)
	}

	ordered := make([]*keyMeta, 0, len(metas))
	for _, m := range metas {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if (a.key == feePayer) != (b.key == feePayer) {
			return a.key == feePayer
		}
		if a.category() != b.category() {
			return a.category() < b.category()
		}
		return a.order < b.order
	})

	msg := Message{RecentBlockhash: recentBlockhash}
	index := make(map[domain.Pubkey]uint8, len(ordered))
	for i, m := range ordered {
		index[m.key] = uint8(i)
		msg.AccountKeys = append(msg.AccountKeys, m.key)
		switch m.category() {
		case 0:
			msg.Header.NumRequiredSignatures++
		case 1:
			msg.Header.NumRequiredSignatures++
			msg.Header.NumReadonlySigned++
		case 3:
			msg.Header.NumReadonlyUnsigned++
		}
	}

	for _, ix := range instructions {
		ci := CompiledInstruction{
			ProgramIDIndex: index[ix.ProgramID],
			Accounts:       make([]uint8, 0, len(ix.Accounts)),
			Data:           append([]byte(nil), ix.Data...),
		}
		for _, a := range ix.Accounts {
			ci.Accounts = append(ci.Accounts, index[a.Pubkey])
		}
		msg.Instructions = append(msg.Instructions, ci)
	}
	return msg, nil
}

// IsSigner reports whether the account at index i must sign.
func (m Message) IsSigner(i int) bool {
	return i < int(m.Header.NumRequiredSignatures)
}

// IsWritable reports whether the account at index i may be written.
func (m Message) IsWritable(i int) bool {
	required := int(m.Header.NumRequiredSignatures)
	if i < required {
		return i < required-int(m.Header.NumReadonlySigned)
	}
	return i < len(m.AccountKeys)-int(m.Header.NumReadonlyUnsigned)
}

// FeePayer returns the first account key.
func (m Message) FeePayer() domain.Pubkey {
	if len(m.AccountKeys) == 0 {
		return domain.Pubkey{}
	}
	return m.AccountKeys[0]
}

// Marshal serializes the message; these are the bytes that get signed.
func (m Message) Marshal() ([]byte, error) {
	b := []byte{
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySigned,
		m.Header.NumReadonlyUnsigned,
	}
	b, err := AppendCompactU16(b, len(m.AccountKeys))
	if err != nil {
		return nil, err
	}
	for _, k := range m.AccountKeys {
		b = append(b, k[:]...)
	}
	b = append(b, m.RecentBlockhash[:]...)
	if b, err = AppendCompactU16(b, len(m.Instructions)); err != nil {
		return nil, err
	}
	for _, ix := range m.Instructions {
		b = append(b, ix.ProgramIDIndex)
		if b, err = AppendCompactU16(b, len(ix.Accounts)); err != nil {
			return nil, err
		}
		b = append(b, ix.Accounts...)
		if b, err = AppendCompactU16(b, len(ix.Data)); err != nil {
			return nil, err
		}
		b = append(b, ix.Data...)
	}
	return b, nil
}

// UnmarshalMessage decodes a legacy message and reports how many bytes it used.
func UnmarshalMessage(b []byte) (Message, int, error) {
	r := reader{buf: b}
	var m Message

	if len(b) > 0 && b[0]&0x80 != 0 {
		return Message{}, 0, ErrVersionedMessage
	}
	header, err := r.bytes(3)
	if err != nil {
		return Message{}, 0, err
	}
	m.Header = MessageHeader{header[0], header[1], header[2]}

	nkeys, err := r.compact()
	if err != nil {
		return Message{}, 0, err
	}
	m.AccountKeys = make([]domain.Pubkey, nkeys)
	for i := range m.AccountKeys {
		k, err := r.bytes(32)
		if err != nil {
			return Message{}, 0, err
		}
		copy(m.AccountKeys[i][:], k)
	}
	bh, err := r.bytes(32)
	if err != nil {
		return Message{}, 0, err
	}
	copy(m.RecentBlockhash[:], bh)

	nix, err := r.compact()
	if err != nil {
		return Message{}, 0, err
	}
	for i := 0; i < nix; i++ {
		pid, err := r.bytes(1)
		if err != nil {
			return Message{}, 0, err
		}
		if int(pid[0]) >= nkeys {
			return Message{}, 0, fmt.Errorf("%w: program index %d out of range", ErrMalformed, pid[0])
		}
		nacc, err := r.compact()
		if err != nil {
			return Message{}, 0, err
		}
		accs, err := r.bytes(nacc)
		if err != nil {
			return Message{}, 0, err
		}
		for _, a := range accs {
			if int(a) >= nkeys {
				return Message{}, 0, fmt.Errorf("%w: account index %d out of range", ErrMalformed, a)
			}
		}
		ndata, err := r.compact()
		if err != nil {
			return Message{}, 0, err
		}
		data, err := r.bytes(ndata)
		if err != nil {
			return Message{}, 0, err
		}
		m.Instructions = append(m.Instructions, CompiledInstruction{
			ProgramIDIndex: pid[0],
			Accounts:       append([]uint8(nil), accs...),
			Data:           append([]byte(nil), data...),
		})
	}

	if int(m.Header.NumRequiredSignatures) > nkeys ||
		int(m.Header.NumRequiredSignatures)+int(m.Header.NumReadonlyUnsigned) > nkeys ||
		m.Header.NumReadonlySigned > m.Header.NumRequiredSignatures {
		return Message{}, 0, fmt.Errorf("%w: header does not match %d account keys", ErrMalformed, nkeys)
	}
	return m, r.off, nil
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrMalformed, n, r.off, len(r.buf)-r.off)
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *reader) compact() (int, error) {
	v, n, err := DecodeCompactU16(r.buf[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += n
	return v, nil
}
