//go:build js && wasm

package guest

import (
	"syscall/js"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/wireformat"
)

// throwing wraps a Go function so that an Error it returns is thrown on
// the JS side.
const throwing = `return function() {
	const r = impl.apply(this, arguments);
	if (r instanceof Error) { throw r; }
	return r;
};`

// Main registers the operations on the ttlex global and blocks forever.
func Main() {
	Register(js.Global())
	select {}
}

// Register sets parse_token_tree, find_comments and is_keyword on
// global[GlobalName].
func Register(global js.Value) {
	b := Setup()
	obj := js.Global().Get("Object").New()
	wrap := js.Global().Get("Function").New("impl", throwing)
	for _, op := range boundary.Operations {
		fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
			return call(b, op, args)
		})
		obj.Set(string(op), wrap.Invoke(fn))
	}
	global.Set(GlobalName, obj)
}

func call(b *boundary.Boundary, op boundary.Operation, args []js.Value) any {
	if len(args) != 1 || args[0].Type() != js.TypeString {
		return jsError(string(op) + ": expected a single string argument")
	}
	v, err := b.Call(op, args[0].String())
	if err != nil {
		return jsError(err.Error())
	}
	return toJS(v)
}

// toJS converts v field by field so records keep their key order;
// js.ValueOf on a Go map would not.
func toJS(v wireformat.Value) js.Value {
	switch v.Kind() {
	case wireformat.KindNull:
		return js.Null()
	case wireformat.KindBool:
		return js.ValueOf(v.AsBool())
	case wireformat.KindInt:
		return js.ValueOf(v.AsInt())
	case wireformat.KindFloat:
		return js.ValueOf(v.AsFloat())
	case wireformat.KindString:
		return js.ValueOf(v.AsString())
	case wireformat.KindSeq:
		arr := js.Global().Get("Array").New(v.Len())
		for i, item := range v.Items() {
			arr.SetIndex(i, toJS(item))
		}
		return arr
	default:
		obj := js.Global().Get("Object").New()
		for _, key := range v.Keys() {
			field, _ := v.Get(key)
			obj.Set(key, toJS(field))
		}
		return obj
	}
}

func jsError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}
