package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := Message{Name: "Al", Email: "a@b.co", Message: "1234567890"}

	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"minimal valid", valid, nil},
		{"message of nine", Message{Name: "Al", Email: "a@b.co", Message: "123456789"}, ErrInvalidMessage},
		{"not an email", Message{Name: "Al", Email: "not-an-email", Message: "1234567890"}, ErrInvalidEmail},
		{"bad email wins over bad message", Message{Name: "Al", Email: "not-an-email", Message: "x"}, ErrInvalidEmail},
		{"one letter name", Message{Name: "A", Email: "a@b.co", Message: "1234567890"}, ErrInvalidName},
		{"name padded with spaces", Message{Name: "  A  ", Email: "a@b.co", Message: "1234567890"}, ErrInvalidName},
		{"message padded with spaces", Message{Name: "Al", Email: "a@b.co", Message: "   12345678   "}, ErrInvalidMessage},
		{"empty everything", Message{}, ErrInvalidName},
		{"accented name", Message{Name: "Íñ", Email: "a@b.co", Message: "mañana sí!"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.msg), tt.want)
			if tt.want == nil {
				assert.NoError(t, Validate(tt.msg))
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last@sub.example.org", "x+y@d.io"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "a@b", "a b@c.de", "a@@b.co", "@b.co", "a@.", "a@b.co ", "not-an-email"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestValidEmail_UnicodeWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"no-break space in local part", "a\u00a0b@c.co"},
		{"em space in domain", "a@b\u2003c.co"},
		{"ideographic space in tld", "a@b.c\u3000o"},
		{"line separator", "a\u2028b@c.co"},
		{"byte order mark", "\ufeffa@b.co"},
		{"vertical tab", "a\vb@c.co"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, ValidEmail(tt.email))
		})
	}

	assert.True(t, ValidEmail("josé@correo.es"), "non-space Unicode is allowed")
}

func TestRules_CountsRunes(t *testing.T) {
	r := Rules{MinName: 2, MinMessage: 10}
	msg := Message{Name: "Zoë", Email: "a@b.co", Message: "ñandú ñandú"}
	assert.NoError(t, r.Validate(msg))

	msg.Message = "\U0001F600\U0001F600\U0001F600\U0001F600\U0001F600"
	assert.ErrorIs(t, r.Validate(msg), ErrInvalidMessage, "five emoji are five characters")
}

func TestRules_Custom(t *testing.T) {
	r := Rules{MinName: 0, MinMessage: 0}
	assert.NoError(t, r.Validate(Message{Email: "a@b.co"}))
}

func TestSimulated_Succeeds(t *testing.T) {
	s := Simulated{Delay: time.Millisecond}
	assert.NoError(t, s.Submit(context.Background(), Message{Name: "Al"}))
}

func TestSimulated_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := Simulated{Delay: time.Hour}
	assert.ErrorIs(t, s.Submit(ctx, Message{}), context.Canceled)
}

func TestHTTPSubmitter(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sub := NewHTTPSubmitter(srv.URL)
	err := sub.Submit(context.Background(), Message{Name: "Al", Email: "a@b.co", Message: "1234567890", Language: "es"})
	require.NoError(t, err)

	assert.Equal(t, "Al", got.Name)
	assert.Equal(t, "es", got.Language)
	assert.NotEmpty(t, got.ID, "an id is assigned before sending")
}

func TestHTTPSubmitter_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := NewHTTPSubmitter(srv.URL).Submit(context.Background(), Message{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "422"), err.Error())
}

func TestHTTPSubmitter_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Error(t, NewHTTPSubmitter(url).Submit(context.Background(), Message{}))
}
