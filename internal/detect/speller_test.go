package detect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavya/lexis/internal/accuracy"
)

func TestDictionarySpeller_UnknownWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req spellCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Words) == 0 {
			t.Error("expected a word list in the request")
		}
		w.Write([]byte(`{"unknown": [{"word": "recieve", "suggestions": ["receive"]}]}`))
	}))
	defer srv.Close()

	s := NewDictionarySpeller(srv.URL, time.Second, zerolog.Nop())
	c, err := s.Check(context.Background(), testInput("I will recieve the package."))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if c.Source != SourceSpeller {
		t.Errorf("Source = %q", c.Source)
	}
	if c.ErrorCount != 1 {
		t.Fatalf("ErrorCount = %d, want 1", c.ErrorCount)
	}
	e := c.Errors[0]
	if e.Kind != accuracy.KindSpelling || e.Suggestion != "receive" {
		t.Errorf("record = %+v", e)
	}
	// 5 unique words, 1 unknown.
	if c.Score != 80 {
		t.Errorf("Score = %f, want 80", c.Score)
	}
}

func TestDictionarySpeller_AllKnown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"unknown": []}`))
	}))
	defer srv.Close()

	s := NewDictionarySpeller(srv.URL, time.Second, zerolog.Nop())
	c, err := s.Check(context.Background(), testInput("All fine here."))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if c.Score != 100 || c.ErrorCount != 0 {
		t.Errorf("Score = %f, ErrorCount = %d", c.Score, c.ErrorCount)
	}
}

func TestDictionarySpeller_EmptyText(t *testing.T) {
	// No server: empty text must not hit the network.
	s := NewDictionarySpeller("http://127.0.0.1:1", time.Second, zerolog.Nop())
	c, err := s.Check(context.Background(), testInput(""))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if c.Score != 100 {
		t.Errorf("Score = %f, want 100", c.Score)
	}
}

func TestDictionarySpeller_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewDictionarySpeller(srv.URL, time.Second, zerolog.Nop())
	if _, err := s.Check(context.Background(), testInput("hello")); err == nil {
		t.Fatal("expected error for status 502")
	}
}

func TestUniqueLowerWords(t *testing.T) {
	got := uniqueLowerWords("The the THE cat")
	if len(got) != 2 {
		t.Errorf("uniqueLowerWords = %v, want [the cat]", got)
	}
}
