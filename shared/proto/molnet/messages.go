// Package molnet define as mensagens trocadas entre o servidor de catálogo e o
// visualizador, codificadas no formato wire do protobuf.
package molnet

import (
	"fmt"
	"math"

	"MoleculeVision/shared/chem"

	"github.com/go-gl/mathgl/mgl64"
	"google.golang.org/protobuf/encoding/protowire"
)

// MsgType identifica o conteúdo do Payload de um Envelope.
type MsgType int32

const (
	MsgPing MsgType = iota
	MsgPong
	MsgServerStatus
	MsgListRequest
	MsgMoleculeList
	MsgMoleculeRequest
	MsgMolecule
)

func (t MsgType) String() string {
	switch t {
	case MsgPing:
		return "PING"
	case MsgPong:
		return "PONG"
	case MsgServerStatus:
		return "SERVER_STATUS"
	case MsgListRequest:
		return "LIST_REQUEST"
	case MsgMoleculeList:
		return "MOLECULE_LIST"
	case MsgMoleculeRequest:
		return "MOLECULE_REQUEST"
	case MsgMolecule:
		return "MOLECULE"
	}
	return fmt.Sprintf("MsgType(%d)", int32(t))
}

// Message é qualquer mensagem serializável no protocolo.
type Message interface {
	Marshal() []byte
	Unmarshal(data []byte) error
}

// fieldFunc consome o valor do campo num e retorna quantos bytes leu.
// Retornar -1 pula o campo.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// walkFields percorre os campos de uma mensagem.
func walkFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("campo %d: %w", num, err)
		}
		if n < 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}
		b = b[n:]
	}
	return nil
}

func expect(typ, want protowire.Type) error {
	if typ != want {
		return fmt.Errorf("wire type %d inesperado (esperado %d)", typ, want)
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if err := expect(typ, protowire.BytesType); err != nil {
		return 0, err
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = v
	return n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if err := expect(typ, protowire.BytesType); err != nil {
		return nil, 0, err
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if err := expect(typ, protowire.VarintType); err != nil {
		return 0, 0, err
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

// ---------- ENVELOPE ----------

// Envelope embrulha toda mensagem enviada pelo websocket.
type Envelope struct {
	Type    MsgType
	Payload []byte
}

func (m *Envelope) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Type))
	if len(m.Payload) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload)
	}
	return b
}

func (m *Envelope) Unmarshal(data []byte) error {
	*m = Envelope{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(typ, b)
			m.Type = MsgType(v)
			return n, err
		case 2:
			v, n, err := consumeBytes(typ, b)
			m.Payload = append([]byte(nil), v...)
			return n, err
		}
		return -1, nil
	})
}

// Wrap serializa msg dentro de um Envelope do tipo t. msg pode ser nil.
func Wrap(t MsgType, msg Message) []byte {
	env := Envelope{Type: t}
	if msg != nil {
		env.Payload = msg.Marshal()
	}
	return env.Marshal()
}

// ---------- STATUS ----------

// ServerStatus é uma notificação do servidor.
type ServerStatus struct {
	Message string
	OK      bool
}

func (m *ServerStatus) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, m.Message)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(m.OK))
	return b
}

func (m *ServerStatus) Unmarshal(data []byte) error {
	*m = ServerStatus{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Message)
		case 2:
			v, n, err := consumeVarint(typ, b)
			m.OK = protowire.DecodeBool(v)
			return n, err
		}
		return -1, nil
	})
}

// ---------- CATÁLOGO ----------

// MoleculeRequest pede uma molécula pelo nome.
type MoleculeRequest struct {
	Name string
}

func (m *MoleculeRequest) Marshal() []byte {
	b := protowire.AppendTag(nil, 1, protowire.BytesType)
	return protowire.AppendString(b, m.Name)
}

func (m *MoleculeRequest) Unmarshal(data []byte) error {
	*m = MoleculeRequest{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Name)
		}
		return -1, nil
	})
}

// MoleculeList lista os nomes disponíveis no catálogo.
type MoleculeList struct {
	Names []string
}

func (m *MoleculeList) Marshal() []byte {
	var b []byte
	for _, name := range m.Names {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, name)
	}
	return b
}

func (m *MoleculeList) Unmarshal(data []byte) error {
	*m = MoleculeList{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			var name string
			n, err := consumeString(typ, b, &name)
			m.Names = append(m.Names, name)
			return n, err
		}
		return -1, nil
	})
}

// MoleculeMessage transporta uma descrição completa.
type MoleculeMessage struct {
	Description *chem.Description
}

func (m *MoleculeMessage) Marshal() []byte {
	d := m.Description
	if d == nil {
		return nil
	}
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, d.Name)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, d.Root)
	for _, e := range d.Entries {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalEntry(e))
	}
	return b
}

func (m *MoleculeMessage) Unmarshal(data []byte) error {
	d := &chem.Description{}
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &d.Name)
		case 2:
			return consumeString(typ, b, &d.Root)
		case 3:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			e, err := unmarshalEntry(v)
			if err != nil {
				return 0, err
			}
			d.Entries = append(d.Entries, e)
			return n, nil
		}
		return -1, nil
	})
	if err != nil {
		return err
	}
	m.Description = d
	return nil
}

// Campos de uma entrada. O deslocamento vai como doubles empacotados.
const (
	entryKind   = 1
	entrySymbol = 2
	entryParent = 3
	entryOffset = 4
	entryA      = 5
	entryB      = 6
	entryBond   = 7
)

func appendSint(b []byte, num protowire.Number, v int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func marshalEntry(e chem.Entry) []byte {
	var b []byte
	b = protowire.AppendTag(b, entryKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Kind))
	b = appendSint(b, entryBond, int(e.Bond))

	switch e.Kind {
	case chem.KindAtomPlacement:
		b = protowire.AppendTag(b, entrySymbol, protowire.BytesType)
		b = protowire.AppendString(b, e.Symbol)
		b = appendSint(b, entryParent, e.Parent)

		packed := make([]byte, 0, 24)
		for _, c := range e.Offset {
			packed = protowire.AppendFixed64(packed, math.Float64bits(c))
		}
		b = protowire.AppendTag(b, entryOffset, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	case chem.KindExtraBond:
		b = appendSint(b, entryA, e.A)
		b = appendSint(b, entryB, e.B)
	}
	return b
}

func unmarshalEntry(data []byte) (chem.Entry, error) {
	var e chem.Entry
	sint := func(typ protowire.Type, b []byte, dst *int) (int, error) {
		v, n, err := consumeVarint(typ, b)
		*dst = int(protowire.DecodeZigZag(v))
		return n, err
	}

	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case entryKind:
			v, n, err := consumeVarint(typ, b)
			e.Kind = chem.EntryKind(v)
			return n, err
		case entrySymbol:
			return consumeString(typ, b, &e.Symbol)
		case entryParent:
			return sint(typ, b, &e.Parent)
		case entryA:
			return sint(typ, b, &e.A)
		case entryB:
			return sint(typ, b, &e.B)
		case entryBond:
			var bond int
			n, err := sint(typ, b, &bond)
			e.Bond = chem.BondType(bond)
			return n, err
		case entryOffset:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			if len(v) != 24 {
				return 0, fmt.Errorf("deslocamento com %d bytes (esperado 24)", len(v))
			}
			var off mgl64.Vec3
			for i := range off {
				bits, m := protowire.ConsumeFixed64(v)
				if m < 0 {
					return 0, protowire.ParseError(m)
				}
				off[i] = math.Float64frombits(bits)
				v = v[m:]
			}
			e.Offset = off
			return n, nil
		}
		return -1, nil
	})
	return e, err
}
