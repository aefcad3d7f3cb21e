package services

import (
	"fmt"
	"strings"

	"moodlog/internal/models/db_models"
)

func buildMoodPrompt(in MoodInput) string {
	var b strings.Builder

	b.WriteString("You are an empathetic journaling companion. Look at the photo and read the caption, ")
	b.WriteString("then describe the writer's emotional state.\n\n")
	fmt.Fprintf(&b, "Caption: %s\n", in.Caption)
	if len(in.Tags) > 0 {
		fmt.Fprintf(&b, "Mood tags chosen by the writer: %s\n", strings.Join(in.Tags, ", "))
	}

	if len(in.Prior) > 0 {
		b.WriteString("\nRecent entries (newest first), for context only:\n")
		for i, p := range in.Prior {
			fmt.Fprintf(&b, "%d. caption=%q mood=%s summary=%q\n", i+1, p.Caption, p.MoodCategory, p.ShortDescription)
		}
	}

	fmt.Fprintf(&b, `
Return JSON only, no markdown, matching exactly:
{
  "description": "3-5 warm sentences addressed to the writer",
  "short_description": "a headline of at most 8 words",
  "scores": {"anxiety": 0, "depression": 0, "stress": 0, "happiness": 0, "energy": 0, "confidence": 0},
  "mood_category": "one of %s"
}
Every score is an integer from %d to %d.
`, moodCategoryList(), db_models.MinTraitScore, db_models.MaxTraitScore)

	return b.String()
}

func buildSuggestionPrompt(recent []db_models.Post) string {
	var b strings.Builder

	b.WriteString("Based on these recent journal entries (newest first), suggest things that could lift or sustain the writer's mood.\n\n")
	for i, p := range recent {
		fmt.Fprintf(&b, "%d. mood=%s: %s\n", i+1, p.MoodCategory, p.Description)
	}

	b.WriteString(`
Return JSON only, no markdown, matching exactly:
{"activities": ["..."], "movies": ["..."], "songs": ["..."], "food": ["..."]}
Give 3 to 5 short items in every list.
`)
	return b.String()
}

func buildChatPrompt(recent []db_models.Post, history []db_models.ChatMessage, message string) string {
	var b strings.Builder

	b.WriteString("You are a kind, supportive wellbeing assistant inside a mood journaling app. ")
	b.WriteString("You are not a therapist; encourage professional help if the user seems at risk. ")
	b.WriteString("Reply in plain text, at most a few short paragraphs.\n")

	if len(recent) > 0 {
		b.WriteString("\nThe user's latest journal entries (newest first):\n")
		for i, p := range recent {
			fmt.Fprintf(&b, "%d. mood=%s: %s\n", i+1, p.MoodCategory, p.ShortDescription)
		}
	}

	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	}

	fmt.Fprintf(&b, "\nuser: %s\nassistant:", message)
	return b.String()
}

func moodCategoryList() string {
	names := make([]string, len(db_models.MoodCategories))
	for i, c := range db_models.MoodCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
