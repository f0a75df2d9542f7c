package tutor

import "strings"

// teachingKeywords are the terms that count as real teaching in pal mode,
// both languages mixed since learners code-switch freely.
var teachingKeywords = []string{
	"21 million", "21 millones",
	"decentralized", "descentralizado", "descentralizada",
	"satoshi", "satoshis",
	"blockchain", "cadena de bloques",
	"lightning", "rayo",
	"private key", "clave privada",
	"seed phrase", "frase semilla",
	"wallet", "billetera",
	"mining", "minería", "minar",
	"hash", "nodo", "node",
	"peer to peer", "p2p",
	"digital", "escaso", "scarce",
	"inmutable", "immutable",
}

// isTeaching reports whether the message contains a teaching keyword.
func isTeaching(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range teachingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
