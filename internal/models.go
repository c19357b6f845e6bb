package internal

// MessageRecord is one row of the MSG table as handed to the decoding layer.
// BytesExtra and CompressContent are opaque vendor blobs; the extractors
// pattern-match them rather than parse them against a schema.
type MessageRecord struct {
	CreateTime      int64
	IsSender        bool
	Content         string
	TalkerID        string
	Type            int
	BytesExtra      []byte
	CompressContent []byte
}

// Contact is one row of the MicroMsg Contact table.
type Contact struct {
	UserName string
	Remark   string
	NickName string
	Alias    string
}

// DisplayName picks the best human-readable name: a manual remark wins over
// the nickname, which wins over the alias. Empty when the row has none.
func (c Contact) DisplayName() string {
	switch {
	case c.Remark != "":
		return c.Remark
	case c.NickName != "":
		return c.NickName
	default:
		return c.Alias
	}
}

// Transcript is a fully resolved chat log ready for export.
type Transcript struct {
	Talker  string  `json:"talker" yaml:"talker"`
	IsGroup bool    `json:"is_group" yaml:"is_group"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Entry is one rendered message.
type Entry struct {
	Time    string         `json:"time" yaml:"time"`
	Name    string         `json:"name" yaml:"name"`
	Content string         `json:"content,omitempty" yaml:"content,omitempty"`
	Quote   *QuoteDisplay  `json:"quote,omitempty" yaml:"quote,omitempty"`
}

// QuoteDisplay is a quoted message with its sender resolved to a name.
type QuoteDisplay struct {
	Content string `json:"content" yaml:"content"`
	Sender  string `json:"sender,omitempty" yaml:"sender,omitempty"`
}
