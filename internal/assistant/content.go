package assistant

import (
	"context"
	"fmt"
	"strings"

	"campusEvents/internal/models/domain"
)

// EventDescriptionInput — данные для описания события.
type EventDescriptionInput struct {
	Title            string
	Category         string
	BasicDescription string
	TargetAudience   string
}

// EventDescription пишет описание события.
func (a *Assistant) EventDescription(ctx context.Context, in EventDescriptionInput) domain.GeneratedContent {
	prompt := fmt.Sprintf(`Generate an engaging and professional event description for the following event:

Title: %s
Category: %s
Basic Description: %s
Target Audience: %s

Please create a compelling description that includes:
- An attention-grabbing opening
- Key benefits for attendees
- What makes this event unique
- Call to action for registration

Keep it professional but engaging, around 150-200 words.`,
		in.Title, in.Category, orDefault(in.BasicDescription, "Professional event"), orDefault(in.TargetAudience, "General audience"))

	return a.generate(ctx, "Assistant.EventDescription()", prompt, "Failed to generate event description", func() string {
		return fmt.Sprintf(`Join us for an exciting %[1]s event: "%[2]s"

%[3]s

Our event promises to deliver valuable insights, networking opportunities, and practical takeaways that you can apply immediately.

What makes this event special:
• Expert speakers and industry leaders
• Interactive sessions and hands-on workshops
• Networking opportunities with peers
• Latest trends and best practices in %[1]s

Don't miss this opportunity to be part of something special. Register now to secure your spot and join us for an engaging and informative experience that will leave you inspired and equipped with new knowledge and connections.

Limited seats available - register today!`,
			in.Category, in.Title,
			orDefault(in.BasicDescription, "This carefully curated experience is designed for professionals and enthusiasts looking to expand their knowledge and connect with like-minded individuals."))
	})
}

// ProposalDescriptionInput — данные для описания предложения.
type ProposalDescriptionInput struct {
	Title              string
	Category           string
	TargetAudience     string
	LearningObjectives string
	Justification      string
}

// ProposalDescription пишет описание предложения.
func (a *Assistant) ProposalDescription(ctx context.Context, in ProposalDescriptionInput) domain.GeneratedContent {
	prompt := fmt.Sprintf(`Generate a comprehensive and professional event proposal description for:

Title: %s
Category: %s
Target Audience: %s
Learning Objectives: %s
Justification: %s

Create a detailed proposal description that includes:
- Clear event overview and purpose
- Detailed learning outcomes and benefits
- Target audience analysis
- Value proposition for attendees
- Educational impact and relevance
- Professional tone suitable for administrative review

Keep it comprehensive but concise, around 200-300 words, suitable for proposal submission.`,
		in.Title, in.Category, in.TargetAudience, in.LearningObjectives, in.Justification)

	return a.generate(ctx, "Assistant.ProposalDescription()", prompt, "Failed to generate proposal description", func() string {
		return fmt.Sprintf(`Proposal: %[1]s

This %[2]s event is designed to provide comprehensive learning opportunities for %[3]s. The proposed session aims to deliver significant educational value through structured content delivery and interactive engagement.

Learning Outcomes:
%[4]s

Educational Justification:
%[5]s

The event will feature expert-led sessions, practical demonstrations, and collaborative learning opportunities. Participants will gain valuable insights, develop new skills, and expand their professional network within the %[2]s domain.

Key Benefits:
• Structured learning experience with clear objectives
• Expert knowledge sharing and best practices
• Interactive sessions promoting active participation
• Networking opportunities with industry professionals
• Practical takeaways applicable to real-world scenarios

Expected Impact:
Participants will leave with enhanced understanding, practical skills, and valuable connections that will benefit their academic and professional growth.`,
			in.Title, in.Category, in.TargetAudience, in.LearningObjectives, in.Justification)
	})
}

// Platform — соцсеть для поста.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformFacebook Platform = "facebook"
)

var platformGuidelines = map[Platform]string{
	PlatformTwitter:  "Keep it under 280 characters, use relevant hashtags, make it engaging and shareable",
	PlatformLinkedIn: "Professional tone, 1-2 paragraphs, focus on networking and learning opportunities",
	PlatformFacebook: "Friendly and engaging, can be longer, encourage sharing and tagging friends",
}

// Valid сообщает, поддерживается ли платформа.
func (p Platform) Valid() bool {
	_, ok := platformGuidelines[p]
	return ok
}

// SocialPostInput — данные для поста.
type SocialPostInput struct {
	Title       string
	Description string
	Date        string
	Location    string
	Platform    Platform
}

// SocialPost пишет пост под формат платформы.
func (a *Assistant) SocialPost(ctx context.Context, in SocialPostInput) domain.GeneratedContent {
	if !in.Platform.Valid() {
		return domain.GeneratedContent{Success: false, Error: fmt.Sprintf("unsupported platform %q", in.Platform)}
	}

	prompt := fmt.Sprintf(`Create a %[1]s social media post for this event:

Title: %[2]s
Description: %[3]s
Date: %[4]s
Location: %[5]s

Guidelines for %[1]s: %[6]s

Include relevant hashtags and make it compelling for people to register and share.`,
		in.Platform, in.Title, in.Description, in.Date, in.Location, platformGuidelines[in.Platform])

	return a.generate(ctx, "Assistant.SocialPost()", prompt, "Failed to generate social post", func() string {
		return socialFallback(in)
	})
}

// socialFallback — шаблонный пост для каждой платформы.
func socialFallback(in SocialPostInput) string {
	hashtag := strings.Join(strings.Fields(in.Title), "")

	switch in.Platform {
	case PlatformTwitter:
		return fmt.Sprintf("🎉 Excited to announce: %s!\n\n📅 %s\n📍 %s\n\nJoin us for an amazing experience! Register now 👇\n\n#Event #%s #Networking #Learning",
			in.Title, in.Date, in.Location, hashtag)
	case PlatformLinkedIn:
		excerpt := in.Description
		if r := []rune(excerpt); len(r) > 200 {
			excerpt = string(r[:200])
		}
		return fmt.Sprintf("I'm pleased to share an upcoming professional development opportunity:\n\n%s\n\n📅 Date: %s\n📍 Location: %s\n\n%s...\n\nThis is an excellent opportunity for networking and professional growth. I encourage my network to consider attending.\n\n#ProfessionalDevelopment #Networking #%s",
			in.Title, in.Date, in.Location, excerpt, hashtag)
	default:
		return fmt.Sprintf("🌟 Don't miss out on this amazing event! 🌟\n\n%s\n\nWhen: %s\nWhere: %s\n\n%s\n\nTag your friends who would love this! Let's learn and grow together.\n\nRegister now - link in comments!\n\n#Event #Community #Learning #%s",
			in.Title, in.Date, in.Location, in.Description, hashtag)
	}
}

// SessionSummaryInput — данные сессии для сводки.
type SessionSummaryInput struct {
	Title       string
	Description string
	SpeakerName string
	SessionType string
	KeyPoints   []string
}

// SessionSummary пишет краткую сводку сессии.
func (a *Assistant) SessionSummary(ctx context.Context, in SessionSummaryInput) domain.GeneratedContent {
	keyPoints := "No specific key points provided"
	if len(in.KeyPoints) > 0 {
		keyPoints = "Key points covered: " + strings.Join(in.KeyPoints, ", ")
	}

	prompt := fmt.Sprintf(`Generate a comprehensive session summary for:

Session: %s
Speaker: %s
Type: %s
Description: %s
%s

Create a professional summary that includes:
- Overview of what was covered
- Key takeaways for attendees
- Main insights or learnings
- Any actionable items mentioned

Keep it informative and well-structured, around 200-300 words.`,
		in.Title, in.SpeakerName, in.SessionType, in.Description, keyPoints)

	return a.generate(ctx, "Assistant.SessionSummary()", prompt, "Failed to generate session summary", func() string {
		takeaways := "• Valuable insights shared by the speaker\n• Interactive discussion with attendees\n• Practical applications discussed"
		if len(in.KeyPoints) > 0 {
			takeaways = "• " + strings.Join(in.KeyPoints, "\n• ")
		}

		return fmt.Sprintf(`Session Summary: %[1]s

Speaker: %[2]s
Session Type: %[3]s

Overview:
%[4]s

Key Takeaways:
%[5]s

Main Insights:
The session provided attendees with practical knowledge and actionable insights. %[2]s delivered an engaging %[3]s that covered essential topics and encouraged active participation from the audience.

Actionable Items:
• Apply the concepts discussed in your daily work
• Connect with fellow attendees for continued learning
• Explore additional resources mentioned during the session
• Implement the best practices shared by the speaker`,
			in.Title, in.SpeakerName, in.SessionType, in.Description, takeaways)
	})
}

// FAQInput — вопрос о событии.
type FAQInput struct {
	Question     string
	EventContext string
	EventDetails string
}

// AnswerFAQ отвечает на вопрос о событии.
func (a *Assistant) AnswerFAQ(ctx context.Context, in FAQInput) domain.GeneratedContent {
	prompt := fmt.Sprintf(`You are an AI assistant for an event management platform. Answer this attendee question about an event:

Question: %s
Event Context: %s
Additional Event Details: %s

Provide a helpful, accurate, and friendly response. If you don't have enough information to answer completely, suggest who they should contact for more details.

Keep the response concise but informative, around 100-150 words.`,
		in.Question, in.EventContext, orDefault(in.EventDetails, "No additional details provided"))

	return a.generate(ctx, "Assistant.AnswerFAQ()", prompt, "Failed to generate FAQ answer", func() string {
		details := ""
		if in.EventDetails != "" {
			details = " Here are the key details: " + in.EventDetails
		}

		return fmt.Sprintf(`Thank you for your question about "%s".

Based on the information available, I'd be happy to help you with your inquiry.%s

For the most accurate and up-to-date information regarding your specific question: "%s", I recommend contacting the event organizers directly. They will be able to provide you with detailed answers and any additional information you might need.

You can typically reach the organizers through:
• The event registration page
• The contact information provided in the event details
• The event management platform's messaging system`,
			in.EventContext, details, in.Question)
	})
}
