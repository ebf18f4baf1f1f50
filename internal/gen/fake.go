package gen

import (
	"fmt"
	"math/rand"
	"strings"
)

var firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry"}

var lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}

var emailDomains = []string{"example.com", "test.com", "demo.com", "mail.com"}

// FakeName returns a display name drawn from the given stream.
func FakeName(r *rand.Rand) string {
	return Pick(r, firstNames) + " " + Pick(r, lastNames)
}

// FakeEmail returns an address unique per entity index.
func FakeEmail(r *rand.Rand, name string, index int) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s.%d@%s", local, index, Pick(r, emailDomains))
}
