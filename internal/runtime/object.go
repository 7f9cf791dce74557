package runtime

// ClassTag brands an object for typeof/toString/instanceof purposes, per
// spec.md §3 ("a class tag for typeof/toString branding"). It also selects
// which internal-slot field group on Object is populated.
type ClassTag uint8

const (
	ClassOrdinary ClassTag = iota
	ClassArray
	ClassFunction
	ClassBoundFunction
	ClassError
	ClassBooleanObject
	ClassNumberObject
	ClassStringObject
	ClassSymbolObject
	ClassBigIntObject
	ClassDate
	ClassRegExp
	ClassMap
	ClassSet
	ClassWeakMap
	ClassWeakSet
	ClassPromise
	ClassArrayBuffer
	ClassDataView
	ClassTypedArray
	ClassGenerator
	ClassArguments
	ClassModuleNamespace
)

func (c ClassTag) String() string {
	switch c {
	case ClassArray:
		return "Array"
	case ClassFunction, ClassBoundFunction:
		return "Function"
	case ClassError:
		return "Error"
	case ClassBooleanObject:
		return "Boolean"
	case ClassNumberObject:
		return "Number"
	case ClassStringObject:
		return "String"
	case ClassSymbolObject:
		return "Symbol"
	case ClassBigIntObject:
		return "BigInt"
	case ClassDate:
		return "Date"
	case ClassRegExp:
		return "RegExp"
	case ClassMap:
		return "Map"
	case ClassSet:
		return "Set"
	case ClassWeakMap:
		return "WeakMap"
	case ClassWeakSet:
		return "WeakSet"
	case ClassPromise:
		return "Promise"
	case ClassArrayBuffer:
		return "ArrayBuffer"
	case ClassDataView:
		return "DataView"
	case ClassTypedArray:
		return "TypedArray"
	case ClassGenerator:
		return "Generator"
	case ClassArguments:
		return "Arguments"
	case ClassModuleNamespace:
		return "Module"
	default:
		return "Object"
	}
}

// Object is the sole heap-allocated value kind (spec.md §3): a prototype
// pointer, an insertion-ordered property table, and a grab-bag of optional
// internal slots. Only the slot group matching Class is expected to be
// non-nil; the evaluator reads the slot fields below directly (their types
// live in function.go, array.go, collections.go, promise.go, ...).
type Object struct {
	Proto      *Object
	Class      ClassTag
	Extensible bool

	props map[PropertyKey]*Property
	keys  []PropertyKey

	// Populated when Class == ClassFunction/ClassBoundFunction.
	Function *FunctionData
	// Populated when Class == ClassArray.
	Array *ArrayData
	// Populated when Class == ClassError.
	Err *ErrorData
	// Populated when Class == ClassMap/ClassSet/ClassWeakMap/ClassWeakSet.
	Collection *CollectionData
	// Populated when Class == ClassPromise.
	Promise *PromiseData
	// Populated when Class == ClassRegExp.
	Regexp *RegExpData
	// Populated when Class == ClassArrayBuffer/ClassDataView/ClassTypedArray.
	Buffer *BufferData
	// Populated for primitive wrapper objects (Boolean/Number/String/Symbol/BigInt).
	PrimitiveValue Value
	// Populated when Class == ClassGenerator.
	Generator *GeneratorData
}

// NewObject allocates a plain, extensible object with the given prototype
// (nil for Object.prototype === null).
func NewObject(proto *Object) *Object {
	return &Object{Proto: proto, Class: ClassOrdinary, Extensible: true, props: make(map[PropertyKey]*Property)}
}

// GetOwnProperty returns the property record for key, or nil.
func (o *Object) GetOwnProperty(key PropertyKey) *Property {
	return o.props[key]
}

// HasOwnProperty reports whether key is an own property.
func (o *Object) HasOwnProperty(key PropertyKey) bool {
	_, ok := o.props[key]
	return ok
}

// DefineOwnProperty installs or replaces a property record, recording
// insertion order on first definition. It makes no configurability check,
// and no Object.defineProperty builtin is installed to make one; this is the
// mechanical primitive.
func (o *Object) DefineOwnProperty(key PropertyKey, prop *Property) {
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = prop
}

// DeleteOwnProperty removes key if present, returning true on success.
func (o *Object) DeleteOwnProperty(key PropertyKey) bool {
	if _, exists := o.props[key]; !exists {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys returns all own property keys, string and symbol alike, in
// insertion order; callers that want only one kind filter the result
// (spec.md §4.4: Object.keys et al. exclude symbols).
func (o *Object) OwnKeys() []PropertyKey {
	out := make([]PropertyKey, len(o.keys))
	copy(out, o.keys)
	return out
}

// OwnStringKeys returns own enumerable-or-not string keys in insertion order.
func (o *Object) OwnStringKeys() []string {
	var out []string
	for _, k := range o.keys {
		if !k.IsSymbol() {
			out = append(out, k.String())
		}
	}
	return out
}

// OwnEnumerableStringKeys returns own enumerable string keys in insertion
// order, the iteration order of Object.keys/values/entries (spec.md §4.4).
func (o *Object) OwnEnumerableStringKeys() []string {
	var out []string
	for _, k := range o.keys {
		if k.IsSymbol() {
			continue
		}
		if p := o.props[k]; p != nil && p.Enumerable {
			out = append(out, k.String())
		}
	}
	return out
}

// OwnSymbolKeys returns own symbol keys in insertion order.
func (o *Object) OwnSymbolKeys() []*Symbol {
	var out []*Symbol
	for _, k := range o.keys {
		if k.IsSymbol() {
			out = append(out, k.Symbol())
		}
	}
	return out
}

// Get implements OrdinaryGet: walk own properties, then the prototype
// chain, resolving accessors by invoking Get with the given receiver
// (threaded through so Reflect.get-style receiver substitution works).
// call is the host's function-invocation hook, supplied by the evaluator
// to avoid an import cycle (runtime cannot import evaluator).
func (o *Object) Get(key PropertyKey, receiver Value, call func(fn *Object, this Value, args []Value) (Value, error)) (Value, error) {
	cur := o
	for cur != nil {
		if p, ok := cur.props[key]; ok {
			if p.IsAccessor() {
				if p.Get == nil {
					return Undefined, nil
				}
				return call(p.Get, receiver, nil)
			}
			return p.Value, nil
		}
		cur = cur.Proto
	}
	return Undefined, nil
}

// Set implements a simplified OrdinarySet: own accessor setter wins; own
// writable data property is overwritten; otherwise walks the prototype
// chain for an inherited accessor setter; failing that, defines a new own
// data property on the receiver (spec.md §4.4 property-descriptor rules).
func (o *Object) Set(key PropertyKey, v Value, receiver *Object, call func(fn *Object, this Value, args []Value) (Value, error)) (bool, error) {
	cur := o
	for cur != nil {
		if p, ok := cur.props[key]; ok {
			if p.IsAccessor() {
				if p.Set == nil {
					return false, nil
				}
				_, err := call(p.Set, ObjectValue(receiver), []Value{v})
				return err == nil, err
			}
			if cur == receiver {
				if !p.Writable {
					return false, nil
				}
				p.Value = v
				return true, nil
			}
			break
		}
		cur = cur.Proto
	}
	if !receiver.Extensible {
		return false, nil
	}
	receiver.DefineOwnProperty(key, NewDataProperty(v, true, true, true))
	return true, nil
}
