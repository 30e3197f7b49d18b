package chat

import (
	"fmt"
	"strings"

	"docchat-backend/internal/documents"
	"docchat-backend/internal/shared/util"
)

// maxContextCharsPerDoc bounds how much of each document's content is
// included in a chat prompt. Every stored document is always included,
// truncated uniformly; no relevance ranking is performed, so coverage per
// document shrinks as the collection grows rather than dropping documents.
const maxContextCharsPerDoc = 5000

// NoDocumentsAnswer is the canned reply for a chat against an empty store.
const NoDocumentsAnswer = "I don't have any documents to read yet. Please upload some files first."

// BuildContext assembles the bounded textual context for a question: a
// fixed-size prefix of each document's content, labeled with a 1-based
// ordinal and the original filename, joined with blank lines in store
// insertion order.
func BuildContext(docs []documents.Document) string {
	parts := make([]string, 0, len(docs))
	for i, doc := range docs {
		preview := util.Truncate(doc.Content, maxContextCharsPerDoc)
		parts = append(parts, fmt.Sprintf("Document %d (%s):\n%s\n...", i+1, doc.Filename, preview))
	}
	return strings.Join(parts, "\n\n")
}

func buildChatPrompt(context, question string) string {
	return fmt.Sprintf(`You are a helpful assistant analyzing the following documents:

%s

User Question: %q

Answer the user's question based ONLY on the provided documents.
If the answer is not in the documents, say "I couldn't find that information in the uploaded documents."
Be concise and helpful. Format your answer with Markdown.`, context, question)
}
