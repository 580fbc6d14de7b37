package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foliochat/folio/internal/core/chat"
)

func TestStore_Export(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("writes messages in order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "transcript.json")
		store := New(path)
		store.now = func() time.Time { return now }

		msgs := []chat.Message{
			chat.NewMessage(chat.SenderBot, "Hi! Feel free to ask me anything.", now),
			chat.NewMessage(chat.SenderUser, "Hi", now),
			chat.NewMessage(chat.SenderBot, "Hello", now),
		}

		if err := store.Export("http://localhost:8000", msgs); err != nil {
			t.Fatalf("Export: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}

		var got TranscriptFile
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}

		if len(got.Messages) != 3 {
			t.Fatalf("got %d messages, want 3", len(got.Messages))
		}
		for i, msg := range msgs {
			if got.Messages[i].ID != msg.ID || got.Messages[i].Sender != msg.Sender {
				t.Errorf("message %d: got %+v, want %+v", i, got.Messages[i], msg)
			}
		}
		if !got.ExportedAt.Equal(now) {
			t.Errorf("exported_at: got %v, want %v", got.ExportedAt, now)
		}
		if got.BaseURL != "http://localhost:8000" {
			t.Errorf("base_url: got %q", got.BaseURL)
		}
	})

	t.Run("overwrites previous export", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "transcript.json")
		store := New(path)

		first := []chat.Message{chat.NewMessage(chat.SenderBot, "one", now)}
		if err := store.Export("", first); err != nil {
			t.Fatalf("Export: %v", err)
		}
		if err := store.Export("", nil); err != nil {
			t.Fatalf("Export: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}

		var got TranscriptFile
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if got.Messages == nil || len(got.Messages) != 0 {
			t.Errorf("got %v, want empty list", got.Messages)
		}

		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Errorf("temp file left behind: %v", err)
		}
	})
}
