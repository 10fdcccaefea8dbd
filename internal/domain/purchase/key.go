package purchase

import "strings"

// ResolveItemKey returns the canonical identity used to merge demand,
// persisted rows and edits for one item.
//
// Precedence: trimmed item code if non-empty, else the code the catalog
// lookup resolves for the trimmed English name, else the trimmed name
// itself. Two line items with the same display name but different codes stay
// distinct; rows only merge by name when no code is known on either side.
func ResolveItemKey(code, nameEN string, codeByName map[string]string) string {
	if trimmed := strings.TrimSpace(code); trimmed != "" {
		return trimmed
	}
	name := strings.TrimSpace(nameEN)
	if resolved, ok := codeByName[name]; ok && resolved != "" {
		return resolved
	}
	return name
}

// rowKey is ResolveItemKey without the lookup step, for rows that already
// carry their resolved code.
func rowKey(code, nameEN string) string {
	if trimmed := strings.TrimSpace(code); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(nameEN)
}
