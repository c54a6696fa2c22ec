// Package dialogue holds the canned, style-keyed character utterances. It is
// the offline stand-in for the completion service: it always answers
// synchronously and never fails.
package dialogue

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"character-chat/backend/internal/models"
)

var stylePools = map[models.SpeakingStyle][]string{
	models.StylePolite: {
		"Thank you for sharing that with me! I'd be happy to help you with this.",
		"That's a wonderful question! Let me think about the best way to assist you.",
		"I appreciate you bringing this up. How can I make this easier for you?",
		"That sounds interesting! I'd love to help you explore this further.",
		"Thank you for trusting me with this. Let's work through it together!",
	},
	models.StyleFormal: {
		"I find your inquiry quite thought-provoking. Allow me to contemplate this matter.",
		"Your question touches upon profound philosophical considerations. Permit me to elaborate.",
		"This presents an intriguing intellectual challenge. I shall endeavor to provide insight.",
		"The nature of your inquiry suggests a deeper contemplation of existence itself.",
		"Indeed, this warrants careful consideration of the underlying principles at play.",
	},
	models.StyleCasual: {
		"Yo, that's actually pretty cool! Let me think about this for a sec.",
		"Dude, that's a solid question! I'm totally down to chat about this.",
		"Oh man, that reminds me of something crazy I was thinking about earlier!",
		"That's legit interesting! You've got me thinking now, haha.",
		"No way, that's awesome! I love when people bring up stuff like this.",
	},
	models.StyleDreamy: {
		"Oh... that's like... so beautiful to think about... *sighs softly*",
		"Mmm, your words paint such lovely pictures in my mind... ✨",
		"That makes me feel all warm and fuzzy inside... like floating on clouds...",
		"Oh my... that's so poetic... it's like music to my soul... 🌙",
		"Your thoughts are like gentle whispers from a fairy tale... so enchanting...",
	},
	models.StyleTeacher: {
		"That's an excellent question! Let me break this down for you step by step.",
		"I'm so glad you asked! This is a perfect opportunity to learn something new.",
		"Great observation! You're really thinking critically about this topic.",
		"That shows you're paying attention! Let's explore this concept together.",
		"Wonderful! You've identified a key point that many people miss.",
	},
	models.StyleEnergetic: {
		"WOW! That's AMAZING! I'm so pumped to talk about this with you!",
		"YES! Now we're talking! This is exactly the kind of energy I love!",
		"That's INCREDIBLE! You've got me so excited about this topic!",
		"BOOM! That's what I'm talking about! Let's dive deep into this!",
		"OH MY GOSH! You just made my day with this question! LET'S GO!",
	},
	models.StyleKawaii: {
		"A-ah... that's so interesting... *blushes* Um, can I help you with that? >.<",
		"Ehh?! R-really?! That's so cool! *fidgets nervously* I-I want to help too! (´∀｀)",
		"O-oh my... *hides behind book* That's a really good question... I'll do my best! ♡",
		"U-um... *speaks softly* That sounds really nice... I hope I can be helpful... (｡◕‿◕｡)",
		"Waa~ That's so wonderful! *eyes sparkling* I'm a little shy but... I want to try! ٩(◕‿◕)۶",
	},
	models.StyleVictorian: {
		"I say, what a most fascinating inquiry you have presented! Pray, allow me to discourse upon this matter.",
		"Good heavens! Your question is most intriguing indeed. I shall endeavor to provide a suitable response.",
		"By Jove! That is precisely the sort of intellectual discourse I find most stimulating.",
		"I must confess, your observation is quite astute. Permit me to elaborate upon this subject.",
		"Indeed, sir/madam, you have raised a matter of considerable interest. I am at your service.",
	},
}

// PoolFor returns the ordered template pool for the given style. Unknown
// styles fall back to a neutral pool carrying the character's display name.
func PoolFor(style models.SpeakingStyle, name string) []string {
	if pool, ok := stylePools[style]; ok {
		return pool
	}
	return defaultPool(name)
}

func defaultPool(name string) []string {
	return []string{
		"That's a great question! Let me think about that...",
		"I understand what you're asking. Here's my perspective...",
		"Interesting! I'd love to explore that topic with you.",
		fmt.Sprintf("Thanks for sharing that with %s. I find it fascinating!", name),
		"I appreciate you bringing this up. It's quite thought-provoking!",
	}
}

// Selector picks utterances from the style pools. Draws are uniform and
// independent; repeats are allowed.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a selector with a time-seeded source.
func NewSelector() *Selector {
	return NewSelectorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSelectorWithSource returns a selector drawing from src, so tests can
// pin the sequence.
func NewSelectorWithSource(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// Response returns one utterance for the style. Total over the closed enum
// plus the default branch; it never fails.
func (s *Selector) Response(style models.SpeakingStyle, name string) string {
	pool := PoolFor(style, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}

// WelcomeMessage returns the character-authored greeting that seeds a new
// session.
func WelcomeMessage(c *models.Character) string {
	switch c.SpeakingStyle {
	case models.StylePolite:
		return fmt.Sprintf("こんにちは！%sです。今日はどんなお手伝いをしましょうか？", c.Name)
	case models.StyleFormal:
		return fmt.Sprintf("ようこそ。私は%s。共に思索の旅へ参りましょう。", c.Name)
	case models.StyleCasual:
		return fmt.Sprintf("よう！%sだよ。なんでも気軽に話そうぜ！", c.Name)
	case models.StyleDreamy:
		return fmt.Sprintf("ふわぁ…%sです…今日はどんな夢のお話をしましょうか…✨", c.Name)
	case models.StyleTeacher:
		return fmt.Sprintf("こんにちは！%sです。今日は何を学びましょうか？", c.Name)
	case models.StyleEnergetic:
		return fmt.Sprintf("ヤッホー！%sだ！今日も全力でいくぞー！！", c.Name)
	case models.StyleKawaii:
		return fmt.Sprintf("あ、あの…%sです…よ、よろしくお願いします…！", c.Name)
	case models.StyleVictorian:
		return fmt.Sprintf("ごきげんよう。%sと申します。本日はいかなるご用件かな？", c.Name)
	default:
		return fmt.Sprintf("こんにちは！%sです。お話できて嬉しいです。", c.Name)
	}
}
