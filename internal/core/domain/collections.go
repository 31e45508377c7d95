package domain

import "time"

// ReportSection is one model-maintained section of the estate report.
// The ID is the sole identity key: reusing an ID updates in place.
// Display order is insertion order.
type ReportSection struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a user-supplied correction or fact. Notes are append-only with
// positional identity: removal is by current index, so indices are not
// stable across removals. Callers must re-read the list before computing
// an index.
type Note struct {
	Note    string    `json:"note"`
	AddedAt time.Time `json:"added_at"`
}

// Topic categorises an interview entry.
type Topic string

// Interview topics.
const (
	TopicDeceased   Topic = "deceased"
	TopicFamily     Topic = "family"
	TopicProperties Topic = "properties"
	TopicFinances   Topic = "finances"
	TopicLegal      Topic = "legal"
	TopicAgreements Topic = "agreements"
	TopicOther      Topic = "other"
)

// topicLabels maps topics to display labels.
var topicLabels = map[Topic]string{
	TopicDeceased:   "Deceased",
	TopicFamily:     "Family",
	TopicProperties: "Properties",
	TopicFinances:   "Finances",
	TopicLegal:      "Legal",
	TopicAgreements: "Agreements",
	TopicOther:      "Other",
}

// Label returns the display label for the topic.
func (t Topic) Label() string {
	if label, ok := topicLabels[t]; ok {
		return label
	}
	return string(t)
}

// Topics lists all interview topics in interview order.
func Topics() []Topic {
	return []Topic{
		TopicDeceased,
		TopicFamily,
		TopicProperties,
		TopicFinances,
		TopicLegal,
		TopicAgreements,
		TopicOther,
	}
}

// InterviewEntry is one recorded question/answer pair from the guided
// interview. Entries are append-only with the same positional-identity
// caveat as Note. Interview data is the highest-priority source of truth.
type InterviewEntry struct {
	Topic      Topic     `json:"topic"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation. History is append-only and
// resent to the model in full on every turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CollectionKey identifies one persisted collection. Each collection is
// stored as a whole-document blob; saves replace the entire blob.
type CollectionKey string

// The four persisted collections.
const (
	CollectionChatHistory CollectionKey = "chat_history"
	CollectionReports     CollectionKey = "reports"
	CollectionNotes       CollectionKey = "notes"
	CollectionInterview   CollectionKey = "interview"
)

// Filename returns the blob filename for the collection.
func (k CollectionKey) Filename() string {
	return string(k) + ".json"
}
