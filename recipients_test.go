package main

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, content string) *recipientStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return newRecipientStore(path)
}

func TestRecipientFromLine(t *testing.T) {
	r := recipientFromLine("Al,al@x.com,true")
	if r == nil {
		t.Fatal("valid line was rejected")
	}
	if r.Name != "Al" || r.Email != "al@x.com" || !r.Checked || !r.Valid {
		t.Errorf("parsed %+v, want Al/al@x.com checked valid", r)
	}
}

func TestRecipientFromLineMalformed(t *testing.T) {
	for _, line := range []string{"justoneword", ""} {
		if r := recipientFromLine(line); r != nil {
			t.Errorf("recipientFromLine(%q) = %+v, want nil", line, r)
		}
	}

	// two fields is enough, checked defaults to false
	r := recipientFromLine("Bo,bo@x.com")
	if r == nil {
		t.Fatal("name,email line was rejected")
	}
	if r.Checked {
		t.Error("missing checked field should default to false")
	}
}

func TestRecipientFromLineExtraCommas(t *testing.T) {
	// commas past the second field end up in the checked field, which
	// then fails the "true" comparison
	r := recipientFromLine("Al,al@x.com,true,extra")
	if r == nil {
		t.Fatal("line with trailing fields was rejected")
	}
	if r.Email != "al@x.com" {
		t.Errorf("email = %q, want al@x.com", r.Email)
	}
	if r.Checked {
		t.Error("trailing fields should leave the recipient unchecked")
	}
}

func TestRecipientValidation(t *testing.T) {
	if newRecipient("Bo", "not-an-email", true).Valid {
		t.Error("not-an-email passed validation")
	}
	if !newRecipient("Al", "al@x.com", true).Valid {
		t.Error("al@x.com failed validation")
	}
	if newRecipient("Cy", "cy@host", true).Valid {
		t.Error("address without TLD passed validation")
	}
}

func TestCheckedRecipientsFilter(t *testing.T) {
	store := testStore(t, "Al,al@x.com,true\nBo,not-an-email,true\nCy,cy@x.com,false\n")

	recipients, err := store.load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(recipients) != 3 {
		t.Fatalf("loaded %d recipients, want 3", len(recipients))
	}

	checked := checkedRecipients(recipients)
	if len(checked) != 1 {
		t.Fatalf("checkedRecipients returned %d, want 1", len(checked))
	}
	if checked[0].Name != "Al" {
		t.Errorf("checked recipient = %q, want Al", checked[0].Name)
	}
}

func TestStoreSkipsMalformedLines(t *testing.T) {
	store := testStore(t, "garbage\nAl,al@x.com,true\n\n")

	recipients, err := store.load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(recipients) != 1 {
		t.Fatalf("loaded %d recipients, want 1", len(recipients))
	}
}

func TestStoreCreatesMissingFile(t *testing.T) {
	store := testStore(t, "")

	recipients, err := store.load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(recipients) != 0 {
		t.Errorf("loaded %d recipients from a fresh store, want 0", len(recipients))
	}
	if _, err := os.Stat(store.path); err != nil {
		t.Errorf("recipients file was not created: %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := testStore(t, "")

	saved := []*Recipient{
		newRecipient("Al", "al@x.com", true),
		newRecipient("Bo", "bo@x.com", false),
	}
	if err := store.save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d recipients, want 2", len(loaded))
	}
	for i := range saved {
		if loaded[i].Name != saved[i].Name || loaded[i].Email != saved[i].Email || loaded[i].Checked != saved[i].Checked {
			t.Errorf("recipient %d = %+v, want %+v", i, loaded[i], saved[i])
		}
	}
}

func TestStoreAddUpdatesExisting(t *testing.T) {
	store := testStore(t, "Al,al@x.com,false\n")

	if err := store.add("Alfred", "al@x.com", true); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	recipients, err := store.load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(recipients) != 1 {
		t.Fatalf("loaded %d recipients after update, want 1", len(recipients))
	}
	if recipients[0].Name != "Alfred" || !recipients[0].Checked {
		t.Errorf("recipient = %+v, want updated name and checked flag", recipients[0])
	}
}

func TestStoreSetChecked(t *testing.T) {
	store := testStore(t, "Al,al@x.com,false\n")

	if err := store.setChecked("al@x.com", true); err != nil {
		t.Fatalf("setChecked failed: %v", err)
	}
	recipients, err := store.load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !recipients[0].Checked {
		t.Error("checked flag was not persisted")
	}
}
