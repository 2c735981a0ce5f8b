package pairing

// PairTable is the symmetric partner mapping.
// pairs[a] == b holds exactly when pairs[b] == a.
type PairTable struct {
	partners map[string]string
}

func NewPairTable() *PairTable {
	return &PairTable{partners: make(map[string]string)}
}

// Link pairs a with b. Callers must have unlinked both beforehand.
func (p *PairTable) Link(a, b string) {
	p.partners[a] = b
	p.partners[b] = a
}

func (p *PairTable) PartnerOf(id string) (string, bool) {
	partner, ok := p.partners[id]
	return partner, ok
}

// Unlink removes both entries of id's pair and returns the former partner.
func (p *PairTable) Unlink(id string) (string, bool) {
	partner, ok := p.partners[id]
	if !ok {
		return "", false
	}
	delete(p.partners, id)
	if p.partners[partner] == id {
		delete(p.partners, partner)
	}
	return partner, true
}

func (p *PairTable) Contains(id string) bool {
	_, ok := p.partners[id]
	return ok
}

// Pairs is the number of active pairs, half the entry count.
func (p *PairTable) Pairs() int { return len(p.partners) / 2 }
