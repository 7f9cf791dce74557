package runtime

// TypedArrayKind enumerates the integer/float element kinds sharing the
// ArrayBuffer/DataView backing slot, per SPEC_FULL.md §7's typed-array
// supplement.
type TypedArrayKind uint8

const (
	TAInt8 TypedArrayKind = iota
	TAUint8
	TAUint8Clamped
	TAInt16
	TAUint16
	TAInt32
	TAUint32
	TAFloat32
	TAFloat64
	TABigInt64
	TABigUint64
)

// BytesPerElement returns the element width in bytes for kind.
func (k TypedArrayKind) BytesPerElement() int {
	switch k {
	case TAInt8, TAUint8, TAUint8Clamped:
		return 1
	case TAInt16, TAUint16:
		return 2
	case TAInt32, TAUint32, TAFloat32:
		return 4
	case TAFloat64, TABigInt64, TABigUint64:
		return 8
	default:
		return 1
	}
}

// BufferData is the internal slot shared by ArrayBuffer, DataView, and the
// typed-array family (spec.md §3 "typed-array buffer view" internal slot;
// SPEC_FULL.md §7: "share one backing []byte slot with a detached flag").
type BufferData struct {
	Bytes    []byte
	Detached bool

	// Populated only on DataView/TypedArray views; zero on the owning
	// ArrayBuffer itself.
	ByteOffset int
	ByteLength int
	TAKind     TypedArrayKind
	IsView     bool
}

// NewArrayBufferData allocates a zero-filled buffer of n bytes.
func NewArrayBufferData(n int) *BufferData {
	return &BufferData{Bytes: make([]byte, n)}
}

// Detach marks this BufferData as detached, so its Len reports zero. A
// typed-array or DataView view has its own BufferData that shares only the
// Bytes slice; detaching the owning buffer does not set the view's Detached
// flag, and the view's Len still reports the length of the shared bytes.
func (b *BufferData) Detach() { b.Detached = true }

// Len returns the buffer's byte length, 0 once detached.
func (b *BufferData) Len() int {
	if b.Detached {
		return 0
	}
	return len(b.Bytes)
}

// NewArrayBuffer allocates an ArrayBuffer-classed object.
func NewArrayBuffer(proto *Object, byteLength int) *Object {
	o := NewObject(proto)
	o.Class = ClassArrayBuffer
	o.Buffer = NewArrayBufferData(byteLength)
	return o
}

// NewTypedArrayView allocates a TypedArray-classed object viewing owner's
// backing bytes (owner must be an ArrayBuffer-classed object).
func NewTypedArrayView(proto *Object, owner *Object, kind TypedArrayKind, byteOffset, length int) *Object {
	o := NewObject(proto)
	o.Class = ClassTypedArray
	o.Buffer = &BufferData{
		Bytes:      owner.Buffer.Bytes,
		ByteOffset: byteOffset,
		ByteLength: length * kind.BytesPerElement(),
		TAKind:     kind,
		IsView:     true,
	}
	return o
}

// NewDataView allocates a DataView-classed object viewing owner's backing
// bytes.
func NewDataView(proto *Object, owner *Object, byteOffset, byteLength int) *Object {
	o := NewObject(proto)
	o.Class = ClassDataView
	o.Buffer = &BufferData{
		Bytes:      owner.Buffer.Bytes,
		ByteOffset: byteOffset,
		ByteLength: byteLength,
		IsView:     true,
	}
	return o
}
