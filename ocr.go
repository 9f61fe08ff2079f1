package main

import (
	"bytes"
	"fmt"
	"image/png"
	"regexp"
	"strings"

	"github.com/otiai10/gosseract"
)

const (
	questionTypeMultipleChoice = "multiple_choice"
	questionTypeShortAnswer    = "short_answer"
)

// option markers that suggest a multiple choice question
var choicePatterns = []string{
	"A)", "B)", "C)", "D)",
	"a)", "b)", "c)", "d)",
	"A.", "B.", "C.", "D.",
	"a.", "b.", "c.", "d.",
	"(A)", "(B)", "(C)", "(D)",
	"(a)", "(b)", "(c)", "(d)",
}

var choiceLinePattern = regexp.MustCompile(`^\(?[A-Da-d][).]`)

// extractText runs tesseract over the captured screenshot, binarizing
// it first, and returns whatever text it finds.
func extractText(imageData []byte) (string, error) {
	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("Error decoding captured image: %v", err)
	}

	processed, err := encodePNG(preprocessForOCR(img))
	if err != nil {
		return "", fmt.Errorf("Error encoding preprocessed image: %v", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(processed); err != nil {
		return "", fmt.Errorf("Error loading image into tesseract: %v", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("Error running OCR: %v", err)
	}
	return text, nil
}

// isMultipleChoice guesses whether text is a multiple choice question.
// Three or more option markers is a strong enough signal.
func isMultipleChoice(text string) bool {
	count := 0
	for _, pattern := range choicePatterns {
		if strings.Contains(text, pattern) {
			count++
		}
	}
	return count >= 3
}

func classifyQuestion(text string) string {
	if isMultipleChoice(text) {
		return questionTypeMultipleChoice
	}
	return questionTypeShortAnswer
}

// parseQuestion separates the question body from the answer options.
// Lines that look like "A)", "b." or "(C)" start an option; everything
// before the first option belongs to the question. Wrapped lines after
// an option are folded into it.
func parseQuestion(text string) (string, []string) {
	var questionLines, choices []string
	inChoices := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if choiceLinePattern.MatchString(line) {
			inChoices = true
			choices = append(choices, line)
			continue
		}
		if inChoices {
			choices[len(choices)-1] += " " + line
			continue
		}
		questionLines = append(questionLines, line)
	}
	return strings.Join(questionLines, " "), choices
}
