package compat

import "strings"

// strictSockets are digit tokens shared with unrelated sockets (LGA1851
// versus e.g. a "1851" fragment of a longer part number). A requirement
// or candidate mentioning one only matches another mentioning the same
// token.
var strictSockets = []string{"1851"}

// exactSockets are families matched by equality once normalized.
var exactSockets = map[string]bool{
	"am4": true,
	"am5": true,
}

// SocketsCompatible decides whether a candidate's socket satisfies a
// required socket. Both strings are normalized first, then:
//  1. if either side carries a strict token, both must carry it;
//  2. identical exact-family sockets (am4, am5) match;
//  3. otherwise either string containing the other is a match, so
//     "1700" accepts "lga1700 (13th/14th gen)".
func SocketsCompatible(required, candidate string) bool {
	req := NormalizeSocket(required)
	cand := NormalizeSocket(candidate)
	if req == "" || cand == "" {
		return false
	}

	for _, token := range strictSockets {
		reqStrict := strings.Contains(req, token)
		candStrict := strings.Contains(cand, token)
		if reqStrict || candStrict {
			return reqStrict && candStrict
		}
	}

	if exactSockets[req] && exactSockets[cand] {
		return req == cand
	}

	return strings.Contains(cand, req) || strings.Contains(req, cand)
}
