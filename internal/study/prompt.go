package study

import (
	"fmt"
	"strings"
)

const materialSystemPrompt = `You are a study coach turning course material into compact revision aids. Stay faithful to the content and do not invent facts.`

const insightSystemPrompt = `You are a supportive tutor reviewing a student's quiz mistakes.`

const topicSystemPrompt = `You label study material with its main subject.`

const funFactSystemPrompt = `You share short, accurate facts that make people curious.`

const funFactMessage = "Share one amazing, short tech or science fact in one sentence."

func buildMaterialMessage(content string) string {
	var b strings.Builder
	b.WriteString("Analyze the following content and return:\n")
	b.WriteString("- shorthand_notes: concise bullet-point notes\n")
	b.WriteString(`- eli10: a simple "Explain Like I'm 10" paragraph` + "\n")
	b.WriteString("- mnemonic_story: a creative memory story using key concepts\n")
	b.WriteString("- flashcards: term and definition pairs\n")
	b.WriteString("- key_concepts: the 5 most important concepts\n")
	b.WriteString("\nContent:\n")
	b.WriteString(content)
	return b.String()
}

func buildInsightMessage(topic string, mistakes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A student took a quiz on '%s' and struggled with:\n", topic)
	for _, m := range mistakes {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	b.WriteString("\nGive 2-3 lines of constructive feedback:\n")
	b.WriteString("1. Identify the weak sub-topic\n")
	b.WriteString("2. Give an actionable study tip")
	return b.String()
}

func buildTopicMessage(content string) string {
	return "Identify the main subject of this text. Return only the topic name in 2-4 words:\n" + content
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
