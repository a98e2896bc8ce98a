package email

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileSender appends email content to a local file. Enabled via the
// LOG_EMAILS environment variable, mainly for development.
type FileSender struct {
	filePath string
}

func NewFileSender(filePath string) (Sender, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("email log file path cannot be empty")
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for email log file '%s': %w", dir, err)
	}

	return &FileSender{filePath: filePath}, nil
}

func (s *FileSender) Send(ctx context.Context, to, subject, body string) error {
	file, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("FileSender: Failed to open log file '%s': %v", s.filePath, err)
		return fmt.Errorf("failed to open email log file: %w", err)
	}
	defer file.Close()

	entry := fmt.Sprintf("--- Email Logged at %s (To: %s, Subject: %s) ---\n%s\n--- End Logged Email ---\n\n",
		time.Now().Format(time.RFC3339Nano), to, subject, body)

	if _, err := file.WriteString(entry); err != nil {
		log.Printf("FileSender: Failed to write to log file '%s': %v", s.filePath, err)
		return fmt.Errorf("failed to write email to log file: %w", err)
	}

	return nil
}
