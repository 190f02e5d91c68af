package tweetstream

import "encoding/json"

// Status is the canonical streamed event: a message with text and an author.
// Raw carries the full object as received so callers can decode fields this
// struct does not surface.
type Status struct {
	ID        int64           `json:"id"`
	Text      string          `json:"text"`
	Source    string          `json:"source"`
	CreatedAt string          `json:"created_at"`
	User      User            `json:"user"`
	Raw       json.RawMessage `json:"-"`
}

// User is the author embedded in a Status or DirectMessage.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

// DeletionNotice instructs the consumer to discard a previously delivered
// status.
type DeletionNotice struct {
	StatusID int64
	UserID   int64
}

// LimitNotice reports how many matching statuses the server discarded because
// the stream fell behind.
type LimitNotice struct {
	Discarded int64
}

// DirectMessage is a private message delivered on user streams.
type DirectMessage struct {
	ID        int64           `json:"id"`
	Text      string          `json:"text"`
	CreatedAt string          `json:"created_at"`
	Sender    User            `json:"sender"`
	Recipient User            `json:"recipient"`
	Raw       json.RawMessage `json:"-"`
}

type eventKind int

const (
	kindUnrecognized eventKind = iota
	kindStatus
	kindDeletion
	kindLimit
	kindDirectMessage
)

// event is the classification outcome for one decoded item. Exactly one
// payload field matching Kind is set.
type event struct {
	Kind          eventKind
	Status        *Status
	Deletion      *DeletionNotice
	Limit         *LimitNotice
	DirectMessage *DirectMessage
}

type classifierFunc func(raw []byte, obj map[string]json.RawMessage) (event, bool)

// Classification order is significant: the first matching shape wins, even if
// the object also carries fields of a lower-priority shape. A present key
// whose sub-shape does not validate falls through to the next classifier.
var classifiers = []classifierFunc{
	classifyDeletion,
	classifyLimit,
	classifyDirectMessage,
	classifyStatus,
}

func classify(raw []byte, obj map[string]json.RawMessage) event {
	for _, fn := range classifiers {
		if ev, ok := fn(raw, obj); ok {
			return ev
		}
	}
	return event{Kind: kindUnrecognized}
}

func classifyDeletion(_ []byte, obj map[string]json.RawMessage) (event, bool) {
	sub, ok := obj["delete"]
	if !ok {
		return event{}, false
	}
	var env struct {
		Status *struct {
			ID     int64 `json:"id"`
			UserID int64 `json:"user_id"`
		} `json:"status"`
	}
	if err := json.Unmarshal(sub, &env); err != nil || env.Status == nil {
		return event{}, false
	}
	return event{
		Kind:     kindDeletion,
		Deletion: &DeletionNotice{StatusID: env.Status.ID, UserID: env.Status.UserID},
	}, true
}

func classifyLimit(_ []byte, obj map[string]json.RawMessage) (event, bool) {
	sub, ok := obj["limit"]
	if !ok {
		return event{}, false
	}
	var env struct {
		Track *int64 `json:"track"`
	}
	if err := json.Unmarshal(sub, &env); err != nil || env.Track == nil {
		return event{}, false
	}
	return event{Kind: kindLimit, Limit: &LimitNotice{Discarded: *env.Track}}, true
}

func classifyDirectMessage(_ []byte, obj map[string]json.RawMessage) (event, bool) {
	sub, ok := obj["direct_message"]
	if !ok {
		return event{}, false
	}
	var dm DirectMessage
	if err := json.Unmarshal(sub, &dm); err != nil {
		return event{}, false
	}
	dm.Raw = append(json.RawMessage(nil), sub...)
	return event{Kind: kindDirectMessage, DirectMessage: &dm}, true
}

func classifyStatus(raw []byte, obj map[string]json.RawMessage) (event, bool) {
	if _, ok := obj["text"]; !ok {
		return event{}, false
	}
	if _, ok := obj["user"]; !ok {
		return event{}, false
	}
	var st Status
	if err := json.Unmarshal(raw, &st); err != nil {
		return event{}, false
	}
	st.Raw = append(json.RawMessage(nil), raw...)
	return event{Kind: kindStatus, Status: &st}, true
}
