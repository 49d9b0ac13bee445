package services

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/repository"
)

// WelcomeMessage opens every new conversation with the support bot.
const WelcomeMessage = "Hi there! I'm your friendly mental health companion. How are you feeling today? Remember, you can talk to me about anything - I'm here to listen and support you."

// ChatService is the canned rule-based support companion. Responses come
// from an ordered rule table evaluated top to bottom, first match wins.
type ChatService interface {
	ProcessMessage(userID, message string) (string, error)
	GetChatHistory(userID string) ([]models.ChatMessage, error)
}

// chatRule pairs a keyword predicate with a response builder. The builder
// receives the lowercased input and the user's last recorded context.
type chatRule struct {
	matches func(input string) bool
	respond func(input, lastContext string) string
}

type chatService struct {
	repo  repository.ChatRepository
	rules []chatRule

	mu          sync.Mutex
	lastContext map[string]string // userID -> last unmatched input
}

// NewChatService creates a ChatService persisting transcripts to the given
// repository.
func NewChatService(repo repository.ChatRepository) ChatService {
	return &chatService{
		repo:        repo,
		rules:       defaultChatRules(),
		lastContext: make(map[string]string),
	}
}

// ProcessMessage stores the user's message, generates the bot's reply and
// stores that too. The first message of a conversation also seeds the
// welcome greeting into the transcript.
func (s *chatService) ProcessMessage(userID, message string) (string, error) {
	if userID == "" {
		return "", errors.New("user ID cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return "", errors.New("message cannot be empty")
	}

	history, err := s.repo.GetMessagesByUserID(userID)
	if err != nil {
		return "", err
	}
	if len(history) == 0 {
		if err := s.repo.SaveMessage(models.ChatMessage{
			UserID: userID, Role: "assistant", Content: WelcomeMessage, Timestamp: time.Now(),
		}); err != nil {
			return "", err
		}
	}

	if err := s.repo.SaveMessage(models.ChatMessage{
		UserID: userID, Role: "user", Content: message, Timestamp: time.Now(),
	}); err != nil {
		return "", err
	}

	reply := s.generateResponse(userID, message)

	if err := s.repo.SaveMessage(models.ChatMessage{
		UserID: userID, Role: "assistant", Content: reply, Timestamp: time.Now(),
	}); err != nil {
		return "", err
	}

	log.Printf("INFO: [ChatService] Replied to userID %s (message %.40q).", userID, message)
	return reply, nil
}

// GetChatHistory returns the user's stored transcript.
func (s *chatService) GetChatHistory(userID string) ([]models.ChatMessage, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.repo.GetMessagesByUserID(userID)
}

// generateResponse runs the rule table against the lowercased input. When
// no rule matches, the fallback records the input as conversational context
// for later context-aware rules.
func (s *chatService) generateResponse(userID, message string) string {
	input := strings.ToLower(message)

	s.mu.Lock()
	lastContext := s.lastContext[userID]
	s.mu.Unlock()

	for _, rule := range s.rules {
		if rule.matches(input) {
			return rule.respond(input, lastContext)
		}
	}

	s.mu.Lock()
	s.lastContext[userID] = input
	s.mu.Unlock()
	return "I'm here with you, and I'm listening. Sometimes just sharing our thoughts can help us understand them better. Would you like to tell me more about what's on your mind? We can explore this together at your own pace."
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// defaultChatRules is the full response table. Rule order matters: more
// specific emotional topics come before generic pleasantries, matching how
// the companion is expected to triage.
func defaultChatRules() []chatRule {
	return []chatRule{
		{
			matches: func(in string) bool { return containsAny(in, "anxious", "anxiety") },
			respond: func(in, _ string) string {
				if containsAny(in, "work", "job") {
					return "Work anxiety can be really challenging. I understand how overwhelming deadlines and responsibilities can feel. Would you like to talk about what specific aspects of work are causing you anxiety? We could explore some practical coping strategies together, like breaking tasks into smaller steps or setting healthy boundaries."
				}
				if containsAny(in, "social", "people") {
					return "Social anxiety is something many people experience. It's completely normal to feel nervous in social situations. Can you tell me more about what specific social situations make you feel anxious? Sometimes, starting with small, comfortable social interactions can help build confidence gradually."
				}
				return "I hear that you're feeling anxious, and that's completely valid. Let's work through this together. First, let's try a quick grounding exercise: take a deep breath with me, notice five things you can see around you, and feel your feet firmly on the ground. How about we explore what's causing this anxiety and find some strategies that work for you?"
			},
		},
		{
			matches: func(in string) bool { return containsAny(in, "sad", "depressed", "depression") },
			respond: func(in, _ string) string {
				if containsAny(in, "lonely", "alone") {
					return "Feeling sad and lonely can be really hard. I want you to know that even though it might not feel like it right now, you're not alone in this. Would you like to talk about what's making you feel this way? Sometimes, sharing our feelings can be a first step toward feeling better. What kind of support do you feel would be most helpful right now?"
				}
				if containsAny(in, "hopeless", "give up") {
					return "I'm really glad you're reaching out. When everything feels hopeless, it takes courage to keep going and to talk about it. Your feelings are valid, but please remember that hopelessness is often depression speaking, not reality. Can we talk about what's making you feel this way? There are always options and people who want to help, even when it doesn't feel like it."
				}
				return "I'm here with you, and I'm really listening. Depression can make everything feel heavy and overwhelming, but you don't have to carry this weight alone. Would you like to tell me more about what you're going through? We can take it one small step at a time."
			},
		},
		{
			matches: func(in string) bool { return containsAny(in, "stress", "stressed", "overwhelming") },
			respond: func(in, _ string) string {
				if containsAny(in, "study", "exam", "school") {
					return "Academic stress can feel really intense. It's completely normal to feel overwhelmed with studies. Let's break this down together - what specific aspect is causing you the most stress right now? We can work on creating a manageable study plan and discuss some stress-relief techniques that work while studying."
				}
				if containsAny(in, "family", "relationship") {
					return "Relationship and family stress can be particularly challenging because it affects us so personally. Would you like to talk about what's happening? Sometimes, just expressing our feelings about complex relationships can help us see things more clearly. We can also explore healthy ways to manage these relationships while taking care of your own well-being."
				}
				return "I can hear how stressed you're feeling. Let's pause for a moment and take a deep breath together. Sometimes when everything feels overwhelming, it helps to break things down into smaller pieces. Would you like to tell me what's contributing to your stress? We can work on finding practical ways to manage it together."
			},
		},
		{
			matches: func(in string) bool { return containsAny(in, "tired", "exhausted", "sleep") },
			respond: func(in, _ string) string {
				if containsAny(in, "insomnia", "cant sleep", "can't sleep") {
					return "Sleep troubles can be really frustrating and affect our whole day. Let's talk about your bedtime routine. Have you noticed any patterns that might be affecting your sleep? We could explore some relaxation techniques specifically designed for better sleep, like progressive muscle relaxation or breathing exercises."
				}
				return "Being tired can affect us both physically and emotionally. It sounds like you might be carrying a lot right now. Would you like to explore some energy management strategies or talk about what might be draining your energy? Sometimes, it's not just about sleep, but about finding the right balance in our daily activities."
			},
		},
		{
			matches: func(in string) bool { return containsAny(in, "better", "good", "happy") },
			respond: func(_, lastContext string) string {
				if containsAny(lastContext, "anxiety", "stress") {
					return "I'm so glad you're feeling better! It takes strength to work through anxiety and stress. What do you think helped the most? Understanding what works for you can be really valuable for the future."
				}
				return "It's wonderful to hear you're feeling good! These positive moments are worth celebrating. Would you like to share what's contributing to your good mood? Sometimes reflecting on what makes us feel better can help us build more positive experiences."
			},
		},
		{
			matches: func(in string) bool { return containsAny(in, "help", "support") },
			respond: func(_, _ string) string {
				return "I'm right here with you, and I want to help. Sometimes the first step is just talking about what's on your mind. What kind of support would be most helpful right now? We can work through this together, whether you need someone to listen, want to explore coping strategies, or just need a friendly chat."
			},
		},
		{
			matches: func(in string) bool { return strings.Contains(in, "thank") },
			respond: func(_, _ string) string {
				return "You're very welcome! I'm glad we could talk. Remember, supporting each other is what helps us all grow stronger. I'm here whenever you need someone to talk to. How are you feeling now?"
			},
		},
		{
			matches: func(in string) bool { return containsAny(in, "bye", "goodbye") },
			respond: func(_, _ string) string {
				return "Take good care of yourself! Remember, you're stronger than you think, and it's okay to reach out whenever you need support. I'll be here when you want to talk again. Have a peaceful day!"
			},
		},
		{
			matches: func(in string) bool { return containsAny(in, "hello", "hi", "hey") },
			respond: func(_, _ string) string {
				return "Hi! I'm really glad you're here. How are you feeling today? Remember, there's no right or wrong way to feel - I'm here to listen and support you, whatever you'd like to talk about."
			},
		},
	}
}
