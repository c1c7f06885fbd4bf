// Package codec provides the byte encodings a host can request for boundary
// results: JSON (the default, read by the JavaScript printer), MessagePack
// and canonical CBOR.
package codec

import (
	"fmt"
	"sort"

	"github.com/motoko-tools/ttlex/domain/ports"
)

// Default is the codec used when none is configured.
const Default = "json"

var registry = map[string]func() (ports.Codec, error){
	"json":    func() (ports.Codec, error) { return JSON{}, nil },
	"msgpack": func() (ports.Codec, error) { return MsgPack{}, nil },
	"cbor":    func() (ports.Codec, error) { return NewCBOR() },
}

// ByName returns the codec registered under name. An empty name selects Default.
func ByName(name string) (ports.Codec, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (available: %v)", name, Names())
	}
	return ctor()
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
