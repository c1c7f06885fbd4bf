package motoko

var keywords = map[string]struct{}{
	"actor":       {},
	"and":         {},
	"assert":      {},
	"async":       {},
	"async*":      {},
	"await":       {},
	"await*":      {},
	"break":       {},
	"case":        {},
	"catch":       {},
	"class":       {},
	"composite":   {},
	"continue":    {},
	"debug":       {},
	"debug_show":  {},
	"do":          {},
	"else":        {},
	"false":       {},
	"finally":     {},
	"flexible":    {},
	"for":         {},
	"from_candid": {},
	"func":        {},
	"if":          {},
	"ignore":      {},
	"import":      {},
	"in":          {},
	"label":       {},
	"let":         {},
	"loop":        {},
	"module":      {},
	"not":         {},
	"null":        {},
	"object":      {},
	"or":          {},
	"persistent":  {},
	"private":     {},
	"public":      {},
	"query":       {},
	"return":      {},
	"shared":      {},
	"stable":      {},
	"switch":      {},
	"system":      {},
	"throw":       {},
	"to_candid":   {},
	"transient":   {},
	"true":        {},
	"try":         {},
	"type":        {},
	"var":         {},
	"while":       {},
	"with":        {},
}

// isKeyword reports whether ident is reserved. Keywords are case-sensitive.
func isKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}
