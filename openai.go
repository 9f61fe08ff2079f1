package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

const multipleChoicePrompt = "You are helping answer a multiple-choice quiz question. " +
	"Analyze the question carefully, determine the correct answer choice, " +
	"and explain your reasoning. If the answer is clearly one of the provided options, " +
	"indicate which option (A, B, C, D, etc.) is correct at the start of your response."

const shortAnswerPrompt = "You are helping answer a short-answer quiz question. " +
	"Analyze the question carefully and provide a concise but thorough answer. " +
	"Make sure to directly address what the question is asking."

func getOpenAIClient() (*openai.Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = config.OpenAIKey
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is not set")
		}
	}
	return openai.NewClient(apiKey), nil
}

// answerQuestion sends the extracted quiz question to the model and
// returns its answer.
func answerQuestion(ctx context.Context, questionText string, questionType string) (string, error) {
	client, err := getOpenAIClient()
	if err != nil {
		return "", fmt.Errorf("Error initializing OpenAI client: %v", err)
	}

	systemPrompt := shortAnswerPrompt
	if questionType == questionTypeMultipleChoice {
		systemPrompt = multipleChoicePrompt
	}

	req := openai.ChatCompletionRequest{
		Model:     "gpt-4o",
		MaxTokens: 1000,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role:    "user",
				Content: questionText,
			},
		},
	}

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, req)
	log.Printf("Model call took %.2f seconds", time.Since(start).Seconds())

	if err != nil {
		return "", fmt.Errorf("Error sending question request: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("Error answering question: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
