package models

// Category is one of the two mutually exclusive roster partitions.
type Category string

const (
	CategoryLeaders  Category = "leaders"
	CategoryDeputies Category = "deputies"
)

func (c Category) Valid() bool {
	return c == CategoryLeaders || c == CategoryDeputies
}

func (c Category) Opposite() Category {
	if c == CategoryLeaders {
		return CategoryDeputies
	}
	return CategoryLeaders
}

// Warning is a single warning on a person's record. The whole slice is
// cleared when it reaches the configured threshold, atomically with the
// auto-reprimand conversion.
type Warning struct {
	Date     string `json:"date"`
	Reason   string `json:"reason"`
	IssuedBy string `json:"issued_by"`
}

// Reprimand carries a 1-based sequence number unique within the person.
// Numbers grow monotonically and are never reused; reprimands are never
// cleared, only the whole record is deleted on dismissal.
type Reprimand struct {
	Date     string `json:"date"`
	Reason   string `json:"reason"`
	IssuedBy string `json:"issued_by"`
	Number   int    `json:"number"`
}

// Person is a registered leader or deputy. A stored person always has
// fewer than the configured maximum of reprimands: reaching the maximum
// deletes the record instead.
type Person struct {
	Organization string      `json:"organization"`
	Position     string      `json:"position"`
	AppointedAt  string      `json:"appointment_date"`
	AppointedBy  string      `json:"appointed_by"`
	Warnings     []Warning   `json:"warnings"`
	Reprimands   []Reprimand `json:"reprimands"`
	Activity     string      `json:"activity"`
	LastActivity string      `json:"last_activity"`
}

// NewsEntry is immutable once created and removed only by the sweep.
type NewsEntry struct {
	Text      string `json:"text"`
	Date      string `json:"date"`
	Author    string `json:"author"`
	Channel   string `json:"channel"`
	ChannelID int64  `json:"channel_id"`
}

type Settings struct {
	TotalCommands   int     `json:"total_commands"`
	LastNewsCleanup *string `json:"last_news_cleanup"`
	BotStartTime    *string `json:"bot_start_time"`
}

// Document is the root of the persisted JSON store. News is ordered
// newest first (insertion at head), independent of clock timestamps.
type Document struct {
	Leaders  map[string]*Person `json:"leaders"`
	Deputies map[string]*Person `json:"deputies"`
	News     []*NewsEntry       `json:"news"`
	Settings Settings           `json:"settings"`
}

// DefaultDocument is the hard-coded empty shape the store resets to when
// the file is missing or unreadable.
func DefaultDocument() *Document {
	return &Document{
		Leaders:  make(map[string]*Person),
		Deputies: make(map[string]*Person),
		News:     make([]*NewsEntry, 0),
	}
}

// Roster returns the map for the given category. Unknown categories
// resolve to leaders; callers validate first.
func (d *Document) Roster(category Category) map[string]*Person {
	if category == CategoryDeputies {
		return d.Deputies
	}
	return d.Leaders
}

// Normalize fills in nil members after unmarshalling a hand-edited or
// partial document so the rest of the code never nil-checks maps.
func (d *Document) Normalize() {
	if d.Leaders == nil {
		d.Leaders = make(map[string]*Person)
	}
	if d.Deputies == nil {
		d.Deputies = make(map[string]*Person)
	}
	if d.News == nil {
		d.News = make([]*NewsEntry, 0)
	}
}
