package crypto

import "fmt"

// XorElement constrains the positions of a XorElem. PT is the pointer type
// of T; it carries the in-place operations.
type XorElement[T any] interface {
	*T
	Randomizer
	XorAssign(other T)
	Clone() T
	Equal(other T) bool
}

// XorElem is an element of the direct-sum XOR group over T: a fixed-length
// sequence combined position by position. Every element is its own inverse,
// so addition and subtraction are both XOR and negation is the identity.
//
// Binary operations require operands of equal length. A length mismatch is a
// programming error and panics.
//
// XorElem nests: a XorElem of XorElems is itself a group element, which is
// how MessageVector is built on top of Message.
type XorElem[T any, PT XorElement[T]] struct {
	elems []T
}

// NewXorElem wraps elems without copying it.
func NewXorElem[T any, PT XorElement[T]](elems []T) XorElem[T, PT] {
	return XorElem[T, PT]{elems: elems}
}

// Len returns the number of positions.
func (e XorElem[T, PT]) Len() int {
	return len(e.elems)
}

// Elems returns the underlying sequence. Modifying it modifies e.
func (e XorElem[T, PT]) Elems() []T {
	return e.elems
}

// Clone returns a deep copy of e.
func (e XorElem[T, PT]) Clone() XorElem[T, PT] {
	elems := make([]T, len(e.elems))
	for i := range e.elems {
		elems[i] = PT(&e.elems[i]).Clone()
	}
	return XorElem[T, PT]{elems: elems}
}

// Equal reports whether e and other have the same length and equal positions.
func (e XorElem[T, PT]) Equal(other XorElem[T, PT]) bool {
	if len(e.elems) != len(other.elems) {
		return false
	}
	for i := range e.elems {
		if !PT(&e.elems[i]).Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// XorAssign sets e = e ^ other, position by position.
func (e *XorElem[T, PT]) XorAssign(other XorElem[T, PT]) {
	mustSameLen(len(e.elems), len(other.elems))
	for i := range e.elems {
		PT(&e.elems[i]).XorAssign(other.elems[i])
	}
}

// Xor returns e ^ other without modifying either operand.
func (e XorElem[T, PT]) Xor(other XorElem[T, PT]) XorElem[T, PT] {
	mustSameLen(len(e.elems), len(other.elems))
	res := e.Clone()
	res.XorAssign(other)
	return res
}

// Add returns e + other, which is e ^ other.
func (e XorElem[T, PT]) Add(other XorElem[T, PT]) XorElem[T, PT] {
	return e.Xor(other)
}

// Sub returns e - other, which is e ^ other.
func (e XorElem[T, PT]) Sub(other XorElem[T, PT]) XorElem[T, PT] {
	return e.Xor(other)
}

// AddAssign sets e = e + other.
func (e *XorElem[T, PT]) AddAssign(other XorElem[T, PT]) {
	e.XorAssign(other)
}

// SubAssign sets e = e - other.
func (e *XorElem[T, PT]) SubAssign(other XorElem[T, PT]) {
	e.XorAssign(other)
}

// Neg returns e unchanged.
func (e XorElem[T, PT]) Neg() XorElem[T, PT] {
	return e
}

// Randomize randomizes every position of e independently. Byte positions
// are filled eight at a time from each 64-bit draw.
func (e *XorElem[T, PT]) Randomize(src Source) {
	if bs, ok := any(e.elems).([]Byte); ok {
		randomizeBytes(bs, src)
		return
	}
	RandomizeSlice[T, PT](e.elems, src)
}

// randomizeBytes fills bs from little-endian 64-bit draws, one draw per
// eight bytes.
func randomizeBytes(bs []Byte, src Source) {
	var v uint64
	for i := range bs {
		if i%8 == 0 {
			v = src.Uint64()
		}
		bs[i] = Byte(v)
		v >>= 8
	}
}

func mustSameLen(l, r int) {
	if l != r {
		panic(fmt.Sprintf("xor: operand length mismatch: %d != %d", l, r))
	}
}

// Byte is a single byte as a position of a XOR group element.
type Byte uint8

// XorAssign sets b = b ^ other.
func (b *Byte) XorAssign(other Byte) {
	*b ^= other
}

// Clone returns b.
func (b Byte) Clone() Byte {
	return b
}

// Equal reports whether b == other.
func (b Byte) Equal(other Byte) bool {
	return b == other
}

// Randomize sets b to a byte uniform over all 256 values. A lone byte
// consumes a whole draw; Message fills eight bytes per draw.
func (b *Byte) Randomize(src Source) {
	*b = Byte(src.Uint64())
}

// Message is a raw payload: a XOR group element over bytes.
type Message = XorElem[Byte, *Byte]

// MessageVector is a batch of per-slot payloads: a XOR group element over
// messages.
type MessageVector = XorElem[Message, *Message]

// NewMessage copies data into a new Message.
func NewMessage(data []byte) Message {
	elems := make([]Byte, len(data))
	for i, b := range data {
		elems[i] = Byte(b)
	}
	return NewXorElem[Byte, *Byte](elems)
}

// NewZeroMessage returns the all-zero message of the given size.
func NewZeroMessage(size int) Message {
	return NewXorElem[Byte, *Byte](make([]Byte, size))
}

// MessageBytes copies the payload of m out as a byte slice.
func MessageBytes(m Message) []byte {
	res := make([]byte, m.Len())
	for i, b := range m.Elems() {
		res[i] = byte(b)
	}
	return res
}

// NewMessageVector wraps msgs as a MessageVector.
func NewMessageVector(msgs ...Message) MessageVector {
	return NewXorElem[Message, *Message](msgs)
}

// NewZeroMessageVector returns slots all-zero messages of msgSize bytes each.
func NewZeroMessageVector(slots, msgSize int) MessageVector {
	msgs := make([]Message, slots)
	for i := range msgs {
		msgs[i] = NewZeroMessage(msgSize)
	}
	return NewMessageVector(msgs...)
}

// XorInplace sets l = l ^ r over raw bytes. r must be at least as long as l.
func XorInplace(l []byte, r []byte) {
	for i := range l {
		l[i] ^= r[i]
	}
}
