package services

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/prepmate/prepmate/internal/models"
)

// displayRole formats a slug like "software-engineer" for prompt and
// phrase-bank interpolation.
func displayRole(role string) string {
	role = strings.ReplaceAll(role, "-", " ")
	words := strings.Fields(role)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// openingQuestions is the scripted per-type phrase bank. The opening line is
// local template text, never LLM output; an unrecognized type falls back to
// the general bank.
var openingQuestions = map[models.SessionType][]string{
	models.SessionBehavioral: {
		"Hello! Thank you for joining me today. I'm excited to learn more about you and your experiences. This will be a behavioral interview where we'll discuss how you've handled various situations in the past. Let's start with something to help me understand your background - tell me about a challenging project you worked on.",
		"Hi there! Welcome to your interview. I'm here to understand more about how you approach problems and work with others. Let's begin - can you describe a situation where you had to work with a difficult team member?",
		"Hello and welcome! Thank you for taking the time to speak with me today. In this session, we'll explore your past experiences and how you've navigated different challenges. To start, tell me about a time you failed and what you learned from it.",
	},
	models.SessionTechnical: {
		"Hello! Welcome to your technical interview for the %s position. I'll be asking you some questions to understand your technical knowledge and problem-solving abilities. Let's start by having you explain the key principles and technologies you're most experienced with in this field.",
		"Hi, great to meet you! Today we'll dive into the technical aspects of the %s role. I'd like to start by understanding your technical background - can you describe your experience with the core technologies relevant to this position?",
		"Hello and welcome! I'm looking forward to our technical discussion today. As we explore your qualifications for the %s role, let's begin - how do you stay updated with the latest developments in your field?",
	},
	models.SessionGeneral: {
		"Hello! Thank you for coming in today. This is a general interview where I'd like to get to know you better and understand what drives you professionally. Let's start with a common but important question - why are you interested in this position?",
		"Hi there! Welcome to your interview. I'm excited to learn more about you and your career aspirations. To begin, tell me about yourself - what are your main strengths and areas where you're still growing?",
		"Hello and welcome! Thanks for joining me today. We'll have a friendly conversation about your goals and fit for this role. Where do you see yourself in five years?",
	},
	models.SessionMock: {
		"Hello! Welcome to your mock interview for the %s position. I'll be conducting this session just like a real interview, so feel free to treat it as the real thing. Let's start with a classic opener - please give me a brief introduction about yourself and your background.",
		"Hi there! Thank you for joining this mock interview session. I'm your interviewer today, and I'll be simulating a realistic interview experience for the %s role. Let's begin - can you walk me through your resume and highlight your most relevant experiences?",
	},
}

// initialQuestion picks a scripted opener pseudo-randomly from the bank for
// the session type.
func initialQuestion(sessionType models.SessionType, targetRole string) string {
	bank, ok := openingQuestions[sessionType]
	if !ok {
		bank = openingQuestions[models.SessionGeneral]
	}
	line := bank[rand.Intn(len(bank))]
	if strings.Contains(line, "%s") {
		return fmt.Sprintf(line, displayRole(targetRole))
	}
	return line
}

// fallbackReply is the fixed follow-up used when the AI gateway fails during
// a live turn, so the conversation never visibly breaks.
const fallbackReply = "Thank you for that answer. Can you tell me more about your experience in this field?"

func replyPrompt(recent []models.Message, userMessage string, language models.LanguageMode) string {
	langName := "English"
	if language == models.LanguageBengali {
		langName = "Bengali"
	}

	history, _ := json.Marshal(recent)

	return fmt.Sprintf(`You are an expert %s speaking interviewer.
Previous messages: %s
User's latest response: %q

Respond in %s.
Acknowledge their answer briefly and ask the next relevant interview question.
Keep it professional and conversational.`, langName, history, userMessage, langName)
}

func feedbackPrompt(messages []models.Message, targetRole string) string {
	role := targetRole
	if role == "" {
		role = "general"
	}

	userCount := 0
	for _, m := range messages {
		if m.Role == models.RoleUser {
			userCount++
		}
	}

	transcript, _ := json.Marshal(messages)

	return fmt.Sprintf(`You are a strict, professional interview evaluator. Analyze this interview session for a %s role.

IMPORTANT SCORING GUIDELINES - BE STRICT:
- 90-100: Exceptional - Only for candidates who gave detailed, specific examples with clear context, actions, and results (STAR method). Answers must be comprehensive and demonstrate deep expertise.
- 70-89: Good - Candidate gave solid answers with some specific examples. Showed competence but may have lacked depth in some areas.
- 50-69: Average - Candidate gave acceptable answers but were too brief, generic, or lacked specific examples. Needs improvement.
- 30-49: Below Average - Answers were vague, irrelevant, too short, or showed lack of preparation. Did not properly address questions.
- 0-29: Poor - Candidate gave one-word answers, off-topic responses, or inappropriate replies. Did not engage properly with the interview.

EVALUATION CRITERIA:
1. Content Quality (contentScore): Did they provide specific examples? Were answers relevant to the question? Did they use the STAR method where appropriate?
2. Communication Style (confidenceScore): Were answers well-structured? Did they speak professionally? Was there clarity in expression?
3. Language Proficiency (languageScore): Grammar, vocabulary, articulation. Were sentences complete and professional?

Red flags that should SIGNIFICANTLY lower scores:
- One-word or very short answers (e.g., "yes", "no", "okay", "good")
- Generic answers without specific examples
- Not answering the actual question asked
- Unprofessional language or tone
- Lack of detail or context

Interview Messages: %s
Number of user responses: %d

If the user gave very few responses or very short answers, scores should be LOW (under 40).

Provide HONEST, STRICT feedback in JSON format:
{
  "overallScore": number (0-100, be strict!),
  "contentScore": number (0-100),
  "languageScore": number (0-100),
  "confidenceScore": number (0-100),
  "strengths": ["list up to 3 genuine strengths, or fewer if none evident"],
  "improvements": [
    {
      "category": "category name",
      "description": "specific issue observed",
      "suggestedResponse": "example of a better response",
      "explanation": "why this would be better"
    }
  ],
  "suggestedResources": [
    {
      "type": "article|video",
      "title": "resource title",
      "url": "resource url"
    }
  ]
}

Be honest and constructive. Do not inflate scores to make the candidate feel good - they need accurate feedback to improve.`, role, transcript, userCount)
}

// fallbackFeedback is the fixed low-score report substituted when feedback
// generation or parsing fails.
func fallbackFeedback() *models.Feedback {
	return &models.Feedback{
		OverallScore:    30,
		ContentScore:    30,
		LanguageScore:   30,
		ConfidenceScore: 30,
		Strengths:       []string{"Attempted the interview"},
		Improvements: []models.Improvement{
			{
				Category:          "Response Quality",
				Description:       "Focus on providing detailed, specific answers with examples",
				SuggestedResponse: "Use the STAR method: Situation, Task, Action, Result",
				Explanation:       "Interviewers want to see concrete evidence of your skills and experience",
			},
		},
		SuggestedResources: []models.Resource{},
	}
}

const resumePromptMaxChars = 3000

func resumeAnalysisPrompt(resumeText string) string {
	if len(resumeText) > resumePromptMaxChars {
		resumeText = resumeText[:resumePromptMaxChars]
	}

	return fmt.Sprintf(`Analyze the following resume and provide structured feedback.

Resume:
%s...

Provide analysis in JSON format:
{
  "overallScore": number (0-100),
  "atsScore": number (0-100),
  "missingKeywords": ["list of missing keywords"],
  "improvementSuggestions": [
    {
      "section": "section name",
      "suggestion": "specific suggestion",
      "importance": "high|medium|low"
    }
  ]
}`, resumeText)
}

// fallbackAnalysis is the fixed default substituted when resume analysis
// fails.
func fallbackAnalysis() *models.ResumeAnalysis {
	return &models.ResumeAnalysis{
		OverallScore:    70,
		ATSScore:        65,
		MissingKeywords: []string{"achievements", "metrics", "leadership"},
		ImprovementSuggestions: []models.ImprovementSuggestion{
			{
				Section:    "Summary",
				Suggestion: "Add a compelling summary that highlights your key achievements.",
				Importance: "high",
			},
			{
				Section:    "Experience",
				Suggestion: "Use bullet points with action verbs and quantifiable results.",
				Importance: "medium",
			},
		},
	}
}
