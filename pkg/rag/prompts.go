package rag

import (
	"fmt"
	"strings"
)

// answerPrompt grounds the user's question in the retrieved chunk text. The
// model is told to flag insufficient context rather than invent an answer.
func answerPrompt(question string, chunks []string) string {
	return fmt.Sprintf(`
Context from bill documents:
%s

User question: %s

Please provide a comprehensive answer based on the context provided above. If the context doesn't contain enough information to answer the question, please mention that and provide what information you can based on the available context.
`, strings.Join(chunks, "\n\n"), question)
}

// summaryPrompt asks for a structured summary of the bill content.
func summaryPrompt(billContent string) string {
	return fmt.Sprintf(`
Please provide a comprehensive summary of this parliamentary bill. Include:
1. Main purpose and objectives
2. Key provisions
3. Potential impact
4. Important dates or timelines mentioned
5. Any notable changes or amendments

Bill content:
%s

Provide a well-structured summary that's informative yet accessible.
`, billContent)
}
