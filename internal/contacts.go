package internal

import "hash/fnv"

// surnames backs pseudonym generation for ids with no contact entry.
var surnames = []string{
	"李", "王", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
	"梁", "宋", "郑", "谢", "韩", "唐", "冯", "于", "董", "萧",
	"程", "曹", "袁", "邓", "许", "傅", "沈", "曾", "彭", "吕",
}

// PseudonymFor maps an account id to a stable placeholder name: an FNV-1a
// hash of the id indexes the surname table and its parity picks the suffix.
// This is non-cryptographic, collision-tolerant pseudonymization for display
// purposes, not an anonymity mechanism.
func PseudonymFor(id string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum64()

	name := surnames[sum%uint64(len(surnames))]
	if sum%2 == 0 {
		return name + "先生"
	}
	return name + "女士"
}

// ContactBook resolves account ids to display names: contact entries first,
// then a pseudonym kept stable for the rest of the run.
type ContactBook struct {
	contacts   map[string]Contact
	pseudonyms map[string]string
}

// NewContactBook wraps a contact map loaded from MicroMsg.db. A nil map is
// fine; every id then resolves to a pseudonym.
func NewContactBook(contacts map[string]Contact) *ContactBook {
	if contacts == nil {
		contacts = make(map[string]Contact)
	}
	return &ContactBook{
		contacts:   contacts,
		pseudonyms: make(map[string]string),
	}
}

// Resolve returns the display name for an id.
func (b *ContactBook) Resolve(id string) string {
	if id == "" {
		return ""
	}
	if c, ok := b.contacts[id]; ok {
		if name := c.DisplayName(); name != "" {
			return name
		}
	}
	if name, ok := b.pseudonyms[id]; ok {
		return name
	}
	name := PseudonymFor(id)
	b.pseudonyms[id] = name
	return name
}

// Known reports whether id has a real contact entry with a usable name.
func (b *ContactBook) Known(id string) bool {
	c, ok := b.contacts[id]
	return ok && c.DisplayName() != ""
}

// Len returns the number of loaded contact entries.
func (b *ContactBook) Len() int {
	return len(b.contacts)
}
