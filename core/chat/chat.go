// Package chat is the canned-response assistant of the portal.
package chat

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const greeting = "Hi! I'm here to help you with any questions about GigLabs internships. How can I assist you today?"

// Message authors
const (
	FromBot  = "bot"
	FromUser = "user"
)

var (
	ErrEmptyMessage = errors.New("message is empty")

	responses = []string{
		"Thanks for your question! Our internships are designed to provide real-world experience with industry mentors.",
		"Great question! You'll work on live projects and get direct industry exposure during your internship.",
		"Our support team is available 24/7 to help you throughout your internship journey.",
		"The certificate you receive is industry-recognized and will add value to your career profile.",
		"Yes, we have tie-ups with various companies and some of our top performers get job opportunities!",
	}

	quickQuestions = []QuickQuestion{
		{
			ID:       "duration",
			Question: "How long does the internship last?",
			Answer:   "Internships last from 1 to 4 months. You pick the duration when you apply.",
		},
		{
			ID:       "modes",
			Question: "Can I do the internship remotely?",
			Answer:   "Yes! You can choose a remote, onsite or hybrid internship.",
		},
		{
			ID:       "certificate",
			Question: "Will I get a certificate?",
			Answer:   "Yes. Once you complete every module of your program you become eligible for an industry-recognized experience certificate.",
		},
		{
			ID:       "pricing",
			Question: "How much does it cost?",
			Answer:   "The price depends on the mode and the duration. Remote internships start at 299 for one month, check the pricing page for every option.",
		},
		{
			ID:       "domains",
			Question: "Which domains can I choose?",
			Answer:   "Frontend Development, Backend Development, Fullstack Development, UI/UX Design and AI/ML.",
		},
		{
			ID:       "mentorship",
			Question: "Will I have a mentor?",
			Answer:   "Yes. You attend live classes and industry meetings, and mentors review the projects you submit.",
		},
	}
)

type (
	QuickQuestion struct {
		ID       string `json:"id"`
		Question string `json:"question"`
		Answer   string `json:"-"`
	}

	Message struct {
		From string `json:"from"`
		Text string `json:"text"`
	}

	// Assistant answers chat messages. It is safe for concurrent use.
	Assistant struct {
		mu  sync.Mutex
		rnd *rand.Rand
	}

	// Conversation is one chat transcript, starting with the greeting.
	Conversation struct {
		Messages []Message `json:"messages"`
	}
)

// NewAssistant returns an Assistant drawing free-text replies from src, or from a time-seeded source when src is nil.
func NewAssistant(src rand.Source) *Assistant {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Assistant{rnd: rand.New(src)}
}

func (a *Assistant) Greeting() string { return greeting }

func (a *Assistant) QuickQuestions() []QuickQuestion {
	qqs := make([]QuickQuestion, len(quickQuestions))
	copy(qqs, quickQuestions)
	return qqs
}

// Responses returns the pool free-text replies are drawn from.
func (a *Assistant) Responses() []string {
	resps := make([]string, len(responses))
	copy(resps, responses)
	return resps
}

// Reply answers text: quick questions get their fixed answer and anything else a random canned response.
func (a *Assistant) Reply(text string) (string, error) {
	normalized := normalize(text)
	if normalized == "" {
		return "", ErrEmptyMessage
	}
	for _, qq := range quickQuestions {
		if normalized == normalize(qq.Question) || normalized == qq.ID {
			return qq.Answer, nil
		}
	}

	a.mu.Lock()
	idx := a.rnd.Intn(len(responses))
	a.mu.Unlock()
	return responses[idx], nil
}

func NewConversation(a *Assistant) *Conversation {
	return &Conversation{Messages: []Message{{From: FromBot, Text: a.Greeting()}}}
}

// Ask appends text and the assistant's reply to the transcript.
func (c *Conversation) Ask(a *Assistant, text string) (string, error) {
	reply, err := a.Reply(text)
	if err != nil {
		return "", err
	}
	c.Messages = append(c.Messages,
		Message{From: FromUser, Text: strings.TrimSpace(text)},
		Message{From: FromBot, Text: reply},
	)
	return reply, nil
}

// normalize lowers s and collapses its whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
