package main

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const maxHistoryLength = 100

// analysisResult is one completed question/answer pair.
type analysisResult struct {
	UUID     string
	Question string
	Type     string
	Answer   string
}

// appStages is the production collaborator set behind the sequencer:
// robotgo capture, tesseract OCR, OpenAI analysis and SMTP email. The
// per-sequence fields (image, question, answer) are handed from stage
// to stage; the sequencer's state machine guarantees only one stage
// touches them at a time, and every hand-off goes through the run loop
// channel, so they need no locking.
type appStages struct {
	store *recipientStore

	image    []byte
	question string
	qtype    string
	answer   string

	mu      sync.Mutex
	history []*analysisResult
}

func newAppStages(store *recipientStore) *appStages {
	return &appStages{store: store}
}

func (st *appStages) questionText() string  { return st.question }
func (st *appStages) questionType() string  { return st.qtype }
func (st *appStages) answerText() string    { return st.answer }
func (st *appStages) capturedImage() []byte { return st.image }

// capture grabs the screen on a worker goroutine and reports through
// done. Capturing has no synchronous failure mode, so it always
// starts.
func (st *appStages) capture(done func(bool)) bool {
	st.image = nil
	st.question = ""
	st.qtype = ""
	st.answer = ""

	go func() {
		image, err := captureScreen()
		if err != nil {
			log.Printf("Error capturing screen: %v", err)
			st.finish(done, false)
			return
		}
		st.image = image
		st.finish(done, true)
	}()
	return true
}

// extractQuestion runs OCR over the captured image and classifies the
// question. Called synchronously by the sequencer after a successful
// capture.
func (st *appStages) extractQuestion() bool {
	text, err := extractText(st.image)
	if err != nil {
		log.Printf("Error extracting text: %v", err)
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		log.Println("No text found in captured image")
		return false
	}

	st.question = text
	st.qtype = classifyQuestion(text)
	if st.qtype == questionTypeMultipleChoice {
		_, choices := parseQuestion(text)
		log.Printf("Detected multiple choice question with %d options", len(choices))
	}
	return true
}

// analyze sends the question to the model. A missing API key is an
// immediate failure; network errors surface through the completion
// callback.
func (st *appStages) analyze(questionText, questionType string, done func(bool)) bool {
	if _, err := getOpenAIClient(); err != nil {
		log.Printf("Error initializing OpenAI client: %v", err)
		return false
	}

	go func() {
		answer, err := answerQuestion(context.Background(), questionText, questionType)
		if err != nil {
			log.Printf("Error answering question: %v", err)
			st.finish(done, false)
			return
		}
		st.answer = answer
		st.appendHistory(&analysisResult{
			UUID:     uuid.New().String(),
			Question: questionText,
			Type:     questionType,
			Answer:   answer,
		})
		st.finish(done, true)
	}()
	return true
}

// sendEmailSilently mails the question/answer pair to every checked
// valid recipient without any interactive prompt. Missing credentials
// or an empty recipient set fail immediately.
func (st *appStages) sendEmailSilently(questionText, answerText string, image []byte, done func(bool)) bool {
	account, err := senderAccount()
	if err != nil {
		log.Printf("Error preparing email: %v", err)
		return false
	}

	recipients, err := st.store.load()
	if err != nil {
		log.Printf("Error loading recipients: %v", err)
		return false
	}
	checked := checkedRecipients(recipients)
	if len(checked) == 0 {
		log.Println("No checked valid recipients, not sending email")
		return false
	}

	go func() {
		if err := sendQuizAnswer(account, checked, questionText, answerText, image); err != nil {
			log.Printf("Error sending email: %v", err)
			st.finish(done, false)
			return
		}
		st.finish(done, true)
	}()
	return true
}

func (st *appStages) finish(done func(bool), ok bool) {
	if done != nil {
		done(ok)
	}
}

func (st *appStages) appendHistory(entry *analysisResult) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.history = append(st.history, entry)
	if len(st.history) > maxHistoryLength {
		st.history = st.history[len(st.history)-maxHistoryLength:]
	}
}

// historySnapshot returns a copy of the completed analyses.
func (st *appStages) historySnapshot() []*analysisResult {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]*analysisResult(nil), st.history...)
}
