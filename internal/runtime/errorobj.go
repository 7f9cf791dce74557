package runtime

// ErrorData is the internal slot populated on ClassError objects, holding
// the fields spec.md §3/§4.4 say differ built-in Error subtypes only by:
// their `name` and `message`. `instanceof` on an error walks the prototype
// chain like any other object; NativeName is read only when rendering the
// error as a string.
type ErrorData struct {
	NativeName string // "Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError", ...
	Message    string
	Stack      string // rendered by internal/diag once a stack trace is captured
}

// ErrorToString implements the standard Error.prototype.toString algorithm:
// name + ": " + message, omitting the separator when message is empty.
func ErrorToString(name, message string) string {
	if message == "" {
		return name
	}
	if name == "" {
		return message
	}
	return name + ": " + message
}

// NewError allocates an Error-classed object with the given prototype.
func NewError(proto *Object, nativeName, message string) *Object {
	o := NewObject(proto)
	o.Class = ClassError
	o.Err = &ErrorData{NativeName: nativeName, Message: message}
	o.DefineOwnProperty(StringKey("message"), NewDataProperty(NewString(message), true, false, true))
	o.DefineOwnProperty(StringKey("name"), NewDataProperty(NewString(nativeName), true, false, true))
	return o
}
