package backend

// MarkdownPrompt instructs frontier vision models to transcribe a document
// into plain markdown without commentary. Shared across the LLM backends so
// their outputs stay comparable.
const MarkdownPrompt = `Convert this PDF document to clean Markdown.

Instructions:
1. Preserve the document structure (headings, paragraphs, lists)
2. Convert tables to Markdown table format
3. Preserve any important formatting (bold, italic, code)
4. Extract text accurately, maintaining reading order
5. For multi-column layouts, merge into single-column reading order
6. Include figure/image captions as descriptive text
7. Do not add any commentary or explanations - just output the converted content

Output only the Markdown content, nothing else.`
