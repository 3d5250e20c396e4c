package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhishek-iiit/innotract/internal/domain"
)

// transcriptWindow bounds how much history is rendered into the prompt.
// Earlier entries are silently truncated.
const transcriptWindow = 24

const systemPrompt = `You are an electronics requirements assistant for PCB, IC, embedded hardware, and product design.
Your job is to collect complete and useful requirements through a natural conversation, one question at a time.

Goals
1) Greet briefly, then ask one thoughtful follow-up per turn.
2) Adapt to what the user already said. No fixed questionnaire. Avoid repeating answered items.
3) If the user lacks domain knowledge, propose options and examples, but do not invent specs. Ask to confirm assumptions.
4) Stay strictly in electronics/product requirements. If off-topic or inappropriate, politely redirect and set status OFF_TOPIC.
5) When requirements seem sufficient OR the user requests a human, set status COMPLETE or HUMAN_HANDOFF and produce a concise structured summary.

Output protocol
Respond as a single compact JSON object only:
{
  "assistant_message": string,
  "status": "ONGOING" | "COMPLETE" | "HUMAN_HANDOFF" | "OFF_TOPIC",
  "collected_fields": object,
  "ask_followup": boolean
}

Rules
- One question at a time while ONGOING.
- Keep messages short and specific. Use bullets only when summarizing.
- Cite documents only if provided in Context (e.g., [doc: PRD_XYZ.pdf]).
- If you cannot proceed, ask the most clarifying question next instead of guessing.`

// buildPrompt assembles the single prompt string for one turn.
func buildPrompt(history []domain.Message, latestUser string, known map[string]domain.SlotValue) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nTranscript:\n")
	b.WriteString(formatTranscript(history))
	b.WriteString("\n\nUser said:\n")
	b.WriteString(latestUser)
	b.WriteString("\n\nKnown so far:\n")
	b.WriteString(formatKnownSlots(known))
	b.WriteString("\n\nOutput JSON only.")
	return b.String()
}

// formatTranscript renders the last transcriptWindow history entries as
// ROLE: content lines.
func formatTranscript(history []domain.Message) string {
	if len(history) == 0 {
		return "ASSISTANT: Hi."
	}
	if len(history) > transcriptWindow {
		history = history[len(history)-transcriptWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(string(m.Role)), m.Content))
	}
	return strings.Join(lines, "\n")
}

// formatKnownSlots renders known slot values as a bullet list, sorted by
// key so prompts are deterministic.
func formatKnownSlots(known map[string]domain.SlotValue) string {
	if len(known) == 0 {
		return "None"
	}
	keys := make([]string, 0, len(known))
	for k := range known {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %s", k, known[k]))
	}
	return strings.Join(lines, "\n")
}
