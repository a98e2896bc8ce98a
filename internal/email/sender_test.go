package email

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSender captures sends for assertions.
type recordingSender struct {
	sent []string
	err  error
}

func (s *recordingSender) Send(ctx context.Context, to, subject, body string) error {
	s.sent = append(s.sent, to)
	return s.err
}

func TestCompositeSender_FanOut(t *testing.T) {
	a := &recordingSender{}
	b := &recordingSender{}
	cs := NewCompositeSender(a, b)

	err := cs.Send(context.Background(), "thandi@example.co.za", "Hello", "Body")

	require.NoError(t, err)
	assert.Equal(t, []string{"thandi@example.co.za"}, a.sent)
	assert.Equal(t, []string{"thandi@example.co.za"}, b.sent)
}

func TestCompositeSender_OneFailureDoesNotStopOthers(t *testing.T) {
	failing := &recordingSender{err: errors.New("smtp down")}
	ok := &recordingSender{}
	cs := NewCompositeSender(failing, ok)

	err := cs.Send(context.Background(), "thandi@example.co.za", "Hello", "Body")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Len(t, ok.sent, 1)
}

func TestCompositeSender_NoSenders(t *testing.T) {
	cs := NewCompositeSender()
	assert.Error(t, cs.Send(context.Background(), "a@b.co.za", "s", "b"))
}

func TestCompositeSender_AddSenderIgnoresNil(t *testing.T) {
	cs := NewCompositeSender()
	cs.AddSender(nil)
	assert.Error(t, cs.Send(context.Background(), "a@b.co.za", "s", "b"))

	ok := &recordingSender{}
	cs.AddSender(ok)
	require.NoError(t, cs.Send(context.Background(), "a@b.co.za", "s", "b"))
	assert.Len(t, ok.sent, 1)
}

func TestFileSender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.log")
	s, err := NewFileSender(path)
	require.NoError(t, err)

	require.NoError(t, s.Send(context.Background(), "thandi@example.co.za", "Invoice due", "Please pay."))
	require.NoError(t, s.Send(context.Background(), "sipho@example.co.za", "Welcome", "Hello."))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "To: thandi@example.co.za, Subject: Invoice due")
	assert.Contains(t, content, "Please pay.")
	assert.Contains(t, content, "To: sipho@example.co.za")
}

func TestFileSender_EmptyPath(t *testing.T) {
	_, err := NewFileSender("  ")
	assert.Error(t, err)
}
