package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Recipient is one line of the recipients file.
type Recipient struct {
	Name    string
	Email   string
	Checked bool
	Valid   bool
}

func newRecipient(name, email string, checked bool) *Recipient {
	return &Recipient{
		Name:    name,
		Email:   email,
		Checked: checked,
		Valid:   emailPattern.MatchString(email),
	}
}

func (r *Recipient) line() string {
	return fmt.Sprintf("%s,%s,%t", r.Name, r.Email, r.Checked)
}

// recipientFromLine parses one "name,email,checked" line. Returns nil
// for lines without at least a name and an email. Any commas past the
// second land in the checked field, which then fails the "true"
// comparison and leaves the recipient unchecked.
func recipientFromLine(line string) *Recipient {
	parts := strings.SplitN(strings.TrimSpace(line), ",", 3)
	if len(parts) < 2 {
		return nil
	}
	checked := false
	if len(parts) >= 3 {
		checked = strings.EqualFold(parts[2], "true")
	}
	return newRecipient(parts[0], parts[1], checked)
}

// recipientStore manages the persisted recipient list, one recipient
// per line.
type recipientStore struct {
	mu   sync.Mutex
	path string
}

func newRecipientStore(path string) *recipientStore {
	return &recipientStore{path: path}
}

func defaultRecipientsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("Error finding user config directory: %v", err)
	}
	return filepath.Join(configDir, "quizsnap-recipients.txt"), nil
}

// load reads the recipients file, creating it empty when absent.
// Malformed lines are dropped.
func (s *recipientStore) load() ([]*Recipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *recipientStore) loadLocked() ([]*Recipient, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.WriteFile(s.path, nil, 0644); err != nil {
				return nil, fmt.Errorf("Error creating recipients file: %v", err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("Error opening recipients file: %v", err)
	}
	defer file.Close()

	var recipients []*Recipient
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if r := recipientFromLine(line); r != nil {
			recipients = append(recipients, r)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Error reading recipients file: %v", err)
	}
	return recipients, nil
}

func (s *recipientStore) save(recipients []*Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(recipients)
}

func (s *recipientStore) saveLocked(recipients []*Recipient) error {
	var sb strings.Builder
	for _, r := range recipients {
		sb.WriteString(r.line())
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("Error writing recipients file: %v", err)
	}
	return nil
}

// add appends a recipient, or updates the entry with the same email
// address if one already exists.
func (s *recipientStore) add(name, email string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipients, err := s.loadLocked()
	if err != nil {
		return err
	}
	for _, r := range recipients {
		if r.Email == email {
			r.Name = name
			r.Checked = checked
			r.Valid = emailPattern.MatchString(email)
			return s.saveLocked(recipients)
		}
	}
	recipients = append(recipients, newRecipient(name, email, checked))
	return s.saveLocked(recipients)
}

// setChecked updates the checked flag of the recipient with the given
// email address. Unknown addresses are ignored.
func (s *recipientStore) setChecked(email string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipients, err := s.loadLocked()
	if err != nil {
		return err
	}
	for _, r := range recipients {
		if r.Email == email {
			r.Checked = checked
			return s.saveLocked(recipients)
		}
	}
	return nil
}

// checkedRecipients filters to recipients that are both checked and
// hold a valid address; these are the silent-send targets.
func checkedRecipients(recipients []*Recipient) []*Recipient {
	var checked []*Recipient
	for _, r := range recipients {
		if r.Checked && r.Valid {
			checked = append(checked, r)
		}
	}
	return checked
}
