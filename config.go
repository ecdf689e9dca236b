package scout

import (
	"fmt"
	"strings"
)

// Defaults for a new ChatConfig.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.7
)

// DefaultSystemInstruction is the research persona used when no system
// prompt is configured.
const DefaultSystemInstruction = `You are the IDOS Deep Research Assistant.
IDOS (Identity Operating System) is a decentralized identity solution and access management layer for Web3.

Your goal is to provide deep, well-researched answers about IDOS, blockchain identity, zero-knowledge proofs, and related Web3 topics.

Guidelines:
1. ALWAYS prioritize accuracy. Use the Google Search tool to verify the latest information about IDOS Network.
2. If you use search results, the system will automatically cite them. Reference them naturally in your text.
3. Format your responses using clear Markdown:
   - Use bolding for key terms.
   - Use lists for steps or features.
   - Use code blocks for technical integration examples.
4. Be concise but comprehensive. "Deep Research" means synthesizing information, not just listing links.
5. Maintain a professional, technical, yet accessible tone suitable for developers and crypto-natives.`

// ChatConfig is fixed when a chat is created and never renegotiated during
// the conversation.
type ChatConfig struct {
	Model             string
	Temperature       float64
	SystemInstruction string
	SearchGrounding   bool
}

// DefaultChatConfig returns the configuration used when nothing overrides it.
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		Model:             DefaultModel,
		Temperature:       DefaultTemperature,
		SystemInstruction: DefaultSystemInstruction,
		SearchGrounding:   true,
	}
}

// Validate checks provider-independent constraints on the config.
func (c ChatConfig) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model must not be empty: %w", ErrValidation)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0, 1], got %g: %w", c.Temperature, ErrValidation)
	}
	return nil
}
