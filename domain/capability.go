package domain

// AdminCapability is the flat list of addresses allowed to administer the
// sale engine and ledger. Checked explicitly at each gated entry point.
type AdminCapability struct {
	Addresses []Address
}

func (c AdminCapability) Allows(addr Address) bool {
	for _, a := range c.Addresses {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// MinterCapability lists the addresses allowed to mint assets and to append
// immutable properties. The primary-sale engine address is always a member.
type MinterCapability struct {
	Addresses []Address
}

func (c MinterCapability) Allows(addr Address) bool {
	for _, a := range c.Addresses {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}
