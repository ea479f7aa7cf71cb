package ir

// DictionaryMember is one named field of a dictionary.
type DictionaryMember struct {
	Name     string
	Type     TypeRef
	Required bool
	Default  *DefaultValue
}

// clone returns an independent copy of the member.
func (m DictionaryMember) clone() DictionaryMember {
	if m.Default != nil {
		d := *m.Default
		m.Default = &d
	}
	return m
}

// Dictionary is a frozen dictionary declaration: an ordered field list
// accumulated across the base fragment and any partials.
type Dictionary struct {
	declBase
	inherits string
	members  []DictionaryMember
}

// NewDictionary freezes a dictionary declaration. The member list is
// deep-copied in declaration order.
func NewDictionary(id, inherits string, members []DictionaryMember, tr Traits) *Dictionary {
	return &Dictionary{
		declBase: newDeclBase(id, KindDictionary, tr),
		inherits: inherits,
		members:  cloneDictionaryMembers(members),
	}
}

// IsDictionary reports true for this kind.
func (d *Dictionary) IsDictionary() bool { return true }

// Inherits returns the parent dictionary name, or "" for none.
func (d *Dictionary) Inherits() string { return d.inherits }

// Len returns the number of members.
func (d *Dictionary) Len() int { return len(d.members) }

// Members returns an independent copy of the member list.
func (d *Dictionary) Members() []DictionaryMember { return cloneDictionaryMembers(d.members) }

// Member returns the member with the given name.
func (d *Dictionary) Member(name string) (DictionaryMember, bool) {
	for _, m := range d.members {
		if m.Name == name {
			return m.clone(), true
		}
	}
	return DictionaryMember{}, false
}

func cloneDictionaryMembers(members []DictionaryMember) []DictionaryMember {
	if len(members) == 0 {
		return nil
	}
	out := make([]DictionaryMember, len(members))
	for i, m := range members {
		out[i] = m.clone()
	}
	return out
}
