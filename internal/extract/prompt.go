// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"text/template"
)

// InstructionPrompt is the fixed task description placed in every row's
// instruction. In English: given the topic of an article, write a
// compelling, well-structured, original news commentary with a title,
// introduction, body, and conclusion, ending with a call to action.
const InstructionPrompt = `
给你一篇文章的主题。 创建一篇引人入胜的文章，对所选主题提供独特的视角。 首先制作一个引人注目的标题，反映内容的本质。
将文章概述为引言、正文和结论部分。 以强有力的开场白开始，深入研究正文的详细分析，最后总结要点。
在适当的情况下加入轶事或视觉效果以确保参与度。 修改您的文章，使其清晰、连贯和正确。 最后以号召性用语来鼓励读者参与。
旨在发表经过充分研究、富有洞察力和原创性的评论，符合新闻标准并引发有意义的讨论。
`

// instructionTmpl combines the prompt and an article topic. Values are
// substituted verbatim; template actions inside a topic are not evaluated.
var instructionTmpl = template.Must(template.New("instruction").Parse(`
命令: {{.Prompt}}

话题: {{.Topic}}

输出文字: 
`))

type instructionData struct {
	Prompt string
	Topic  string
}

// RenderInstruction returns the instruction string for the given topic.
func RenderInstruction(topic string) string {
	var b strings.Builder
	// Writes to a strings.Builder cannot fail.
	_ = instructionTmpl.Execute(&b, instructionData{Prompt: InstructionPrompt, Topic: topic})
	return b.String()
}
