package services

import (
	"strings"
	"testing"

	"github.com/prepmate/prepmate/internal/models"
)

func TestDisplayRole(t *testing.T) {
	cases := map[string]string{
		"software-engineer": "Software Engineer",
		"data-scientist":    "Data Scientist",
		"designer":          "Designer",
		"":                  "",
	}
	for in, want := range cases {
		if got := displayRole(in); got != want {
			t.Fatalf("displayRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitialQuestionDrawsFromBank(t *testing.T) {
	for typ, bank := range openingQuestions {
		for i := 0; i < 20; i++ {
			got := initialQuestion(typ, "software-engineer")
			if got == "" {
				t.Fatalf("initialQuestion(%s) returned empty", typ)
			}
			found := false
			for _, line := range bank {
				expanded := line
				if strings.Contains(line, "%s") {
					expanded = strings.ReplaceAll(line, "%s", "Software Engineer")
				}
				if got == expanded {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("initialQuestion(%s) = %q, not in phrase bank", typ, got)
			}
		}
	}
}

func TestInitialQuestionFallsBackToGeneralBank(t *testing.T) {
	got := initialQuestion(models.SessionType("unknown"), "")
	found := false
	for _, line := range openingQuestions[models.SessionGeneral] {
		if got == line {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("unknown type should draw from the general bank, got %q", got)
	}
}

func TestFeedbackPromptCarriesRubricAndTranscript(t *testing.T) {
	messages := []models.Message{
		{Role: models.RoleAI, Content: "Tell me about a challenge."},
		{Role: models.RoleUser, Content: "I rewrote our billing pipeline."},
	}
	prompt := feedbackPrompt(messages, "backend-engineer")

	for _, fragment := range []string{
		"backend-engineer",
		"90-100: Exceptional",
		"0-29: Poor",
		"scores should be LOW (under 40)",
		"I rewrote our billing pipeline.",
		"Number of user responses: 1",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("feedback prompt missing %q", fragment)
		}
	}
}

func TestResumeAnalysisPromptTruncates(t *testing.T) {
	long := strings.Repeat("x", resumePromptMaxChars+500)
	prompt := resumeAnalysisPrompt(long)
	if strings.Contains(prompt, strings.Repeat("x", resumePromptMaxChars+1)) {
		t.Fatalf("resume text should be truncated to %d characters", resumePromptMaxChars)
	}
}
