package iomigrate

import "strings"

// addrKey is the normalized four-component address tuple used for
// deduplication. Two source records with the same key collapse into
// one address row.
type addrKey struct {
	street     string
	city       string
	province   string
	postalCode string
}

// normalizeAddr builds the canonical key from raw staging components.
// Street, city and province are whitespace-trimmed; postal codes are
// additionally uppercased with all internal whitespace removed, so
// "n2n 1a1" and "N2N1A1" are the same code. ok is false when any
// component ends up empty, in which case the tuple is not an address.
func normalizeAddr(street, city, province, postalCode *string) (addrKey, bool) {
	k := addrKey{
		street:     trimmed(street),
		city:       trimmed(city),
		province:   trimmed(province),
		postalCode: normalizePostal(postalCode),
	}
	if k.street == "" || k.city == "" || k.province == "" || k.postalCode == "" {
		return addrKey{}, false
	}
	return k, true
}

func normalizePostal(s *string) string {
	res := strings.ToUpper(trimmed(s))
	return strings.Join(strings.Fields(res), "")
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
