package main

import (
	"fmt"
	"testing"
)

func TestHistoryIsBounded(t *testing.T) {
	st := newAppStages(nil)

	for i := 0; i < maxHistoryLength+10; i++ {
		st.appendHistory(&analysisResult{UUID: fmt.Sprintf("id-%d", i)})
	}

	history := st.historySnapshot()
	if len(history) != maxHistoryLength {
		t.Fatalf("history length = %d, want %d", len(history), maxHistoryLength)
	}
	if history[0].UUID != "id-10" {
		t.Errorf("oldest entry = %q, want id-10: oldest entries must be dropped first", history[0].UUID)
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	st := newAppStages(nil)
	st.appendHistory(&analysisResult{UUID: "id-0"})

	snapshot := st.historySnapshot()
	snapshot[0] = &analysisResult{UUID: "mutated"}

	if st.historySnapshot()[0].UUID != "id-0" {
		t.Error("mutating the snapshot changed the stored history")
	}
}

func TestSilentEmailFailsWithoutRecipients(t *testing.T) {
	saved := config
	defer func() { config = saved }()
	config = Config{}
	t.Setenv("EMAIL_ADDRESS", "sender@example.com")
	t.Setenv("EMAIL_APP_PASSWORD", "secret")

	// store with only unchecked/invalid entries
	st := newAppStages(testStore(t, "Al,al@x.com,false\nBo,not-an-email,true\n"))

	if st.sendEmailSilently("Q", "A", nil, nil) {
		t.Error("sendEmailSilently started with no checked valid recipients, want immediate failure")
	}
}

func TestSilentEmailFailsWithoutCredentials(t *testing.T) {
	saved := config
	defer func() { config = saved }()
	config = Config{}
	t.Setenv("EMAIL_ADDRESS", "")
	t.Setenv("EMAIL_APP_PASSWORD", "")

	st := newAppStages(testStore(t, "Al,al@x.com,true\n"))

	if st.sendEmailSilently("Q", "A", nil, nil) {
		t.Error("sendEmailSilently started without credentials, want immediate failure")
	}
}

func TestAnalyzeFailsWithoutAPIKey(t *testing.T) {
	saved := config
	defer func() { config = saved }()
	config = Config{}
	t.Setenv("OPENAI_API_KEY", "")

	st := newAppStages(nil)
	if st.analyze("Q", questionTypeShortAnswer, nil) {
		t.Error("analyze started without an API key, want immediate failure")
	}
}
