package tweetstream

import (
	"encoding/json"
	"testing"
)

func decodeObject(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	obj, err := defaultDecoder.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return obj
}

func classifyRaw(t *testing.T, raw string) event {
	t.Helper()
	return classify([]byte(raw), decodeObject(t, raw))
}

func TestClassifyPriorityOrder(t *testing.T) {
	t.Run("deletion wins over everything", func(t *testing.T) {
		raw := `{"delete":{"status":{"id":1234,"user_id":3}},"limit":{"track":5},"direct_message":{"id":9},"text":"x","user":{"id":3}}`
		ev := classifyRaw(t, raw)
		if ev.Kind != kindDeletion {
			t.Fatalf("kind: got %v, want deletion", ev.Kind)
		}
		if ev.Deletion.StatusID != 1234 || ev.Deletion.UserID != 3 {
			t.Errorf("deletion ids: got %+v", ev.Deletion)
		}
	})

	t.Run("limit wins over direct message and status", func(t *testing.T) {
		raw := `{"limit":{"track":1234},"direct_message":{"id":9},"text":"x","user":{"id":3}}`
		ev := classifyRaw(t, raw)
		if ev.Kind != kindLimit {
			t.Fatalf("kind: got %v, want limit", ev.Kind)
		}
		if ev.Limit.Discarded != 1234 {
			t.Errorf("discarded: got %d, want 1234", ev.Limit.Discarded)
		}
	})

	t.Run("direct message wins over status", func(t *testing.T) {
		raw := `{"direct_message":{"id":9,"text":"psst","sender":{"screen_name":"alice"}},"text":"x","user":{"id":3}}`
		ev := classifyRaw(t, raw)
		if ev.Kind != kindDirectMessage {
			t.Fatalf("kind: got %v, want direct message", ev.Kind)
		}
		if ev.DirectMessage.Text != "psst" || ev.DirectMessage.Sender.ScreenName != "alice" {
			t.Errorf("direct message: got %+v", ev.DirectMessage)
		}
	})

	t.Run("text plus user is a status", func(t *testing.T) {
		raw := `{"id":7,"text":"hello","user":{"id":3,"screen_name":"gopher"}}`
		ev := classifyRaw(t, raw)
		if ev.Kind != kindStatus {
			t.Fatalf("kind: got %v, want status", ev.Kind)
		}
		if ev.Status.ID != 7 || ev.Status.Text != "hello" || ev.Status.User.ScreenName != "gopher" {
			t.Errorf("status: got %+v", ev.Status)
		}
		if string(ev.Status.Raw) != raw {
			t.Errorf("raw not preserved: %s", ev.Status.Raw)
		}
	})
}

func TestClassifyShapeMismatchFallsThrough(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want eventKind
	}{
		{"delete without status falls to status", `{"delete":{"id":1},"text":"x","user":{"id":3}}`, kindStatus},
		{"delete without status alone", `{"delete":{"id":1}}`, kindUnrecognized},
		{"limit without track", `{"limit":{"other":1}}`, kindUnrecognized},
		{"text without user", `{"text":"x"}`, kindUnrecognized},
		{"user without text", `{"user":{"id":3}}`, kindUnrecognized},
		{"friends list", `{"friends":[1,2,3]}`, kindUnrecognized},
		{"empty object", `{}`, kindUnrecognized},
		{"non-object delete", `{"delete":5}`, kindUnrecognized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyRaw(t, tc.raw).Kind; got != tc.want {
				t.Errorf("kind: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDecoderRejectsNonObjects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"malformed", `{"text":`},
		{"not json at all", `<html>no</html>`},
		{"array", `[1,2,3]`},
		{"string", `"hello"`},
		{"number", `42`},
		{"null", `null`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := defaultDecoder.Decode([]byte(tc.raw)); err == nil {
				t.Errorf("decode %q: expected an error", tc.raw)
			}
		})
	}
}

func TestDecoderAcceptsObjects(t *testing.T) {
	obj, err := defaultDecoder.Decode([]byte(`{"text":"x","user":{}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := obj["text"]; !ok {
		t.Error("missing text key")
	}
}
