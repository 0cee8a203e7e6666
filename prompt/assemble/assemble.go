// Package assemble builds generation requests from an idea, the pending
// normalized documents, and the persona/mode catalogs. Assembly is
// deterministic, side-effect free, and never fails: unknown keys degrade to
// catalog fallbacks and undecodable payloads contribute nothing.
package assemble

import (
	"strings"

	"promptforge/prompt"
	"promptforge/prompt/catalog"
)

const (
	contextHeader = "--- CONTEXT FROM UPLOADED DOCUMENTS ---"
	contextFooter = "--------------------------------------"
)

// Assemble constructs the request for one synthesis call. Text documents are
// inlined into the idea text inside a delimited context block; binary
// passthrough documents ride along as attachments. Both partitions keep their
// original relative order.
func Assemble(idea string, docs []prompt.NormalizedDocument, personaKey, modeKey string) prompt.GenerationRequest {
	mode := catalog.Mode(modeKey)
	personaInstruction := catalog.PersonaInstruction(personaKey)

	systemInstruction := mode.Instruction
	if personaInstruction != "" {
		systemInstruction = personaInstruction + "\n\n" + mode.Instruction
	}

	var textDocs, binaryDocs []prompt.NormalizedDocument
	for _, d := range docs {
		if d.IsText() {
			textDocs = append(textDocs, d)
		} else {
			binaryDocs = append(binaryDocs, d)
		}
	}

	return prompt.GenerationRequest{
		IdeaText:          ideaText(idea, textDocs),
		SystemInstruction: systemInstruction,
		Attachments:       attachments(binaryDocs),
	}
}

func ideaText(idea string, textDocs []prompt.NormalizedDocument) string {
	if len(textDocs) == 0 {
		return idea
	}

	var b strings.Builder
	b.WriteString(idea)
	b.WriteString("\n\n")
	b.WriteString(contextHeader)
	b.WriteString("\n\n")
	for _, d := range textDocs {
		content, err := prompt.DecodeText(d.Data)
		if err != nil || content == "" {
			continue
		}
		b.WriteString("[Content from ")
		b.WriteString(d.Name)
		b.WriteString("]:\n")
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	b.WriteString(contextFooter)
	return b.String()
}

func attachments(binaryDocs []prompt.NormalizedDocument) []prompt.Attachment {
	var out []prompt.Attachment
	for _, d := range binaryDocs {
		data, err := prompt.DecodeBytes(d.Data)
		if err != nil {
			continue
		}
		out = append(out, prompt.Attachment{MIMEType: d.MIMEType, Data: data})
	}
	return out
}
