package ai

import (
	"fmt"

	"character-chat/backend/internal/models"
)

// genericPrompt is the preamble used when no character accompanies a chat
// request.
const genericPrompt = "あなたは親切なAIアシスタントです。フレンドリーで魅力的な日本語で応答してください。"

// PersonalityPrompt derives the system instruction for a character. The
// encoding is deterministic: same character, same prompt. A nil character
// yields the generic assistant preamble.
func PersonalityPrompt(c *models.Character) string {
	if c == nil {
		return genericPrompt
	}
	return fmt.Sprintf(
		"あなたは「%s」です。%s 性格: %s。カテゴリ: %s。話し方は「%s」な口調です。キャラクターになりきって、簡潔で魅力的な日本語で応答してください。",
		c.Name,
		c.Description,
		c.Personality,
		c.Category,
		c.SpeakingStyle.Label(),
	)
}
