package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExperienceItem struct {
	Title       string `bson:"title" json:"title"`
	Company     string `bson:"company" json:"company"`
	Duration    string `bson:"duration" json:"duration"`
	Description string `bson:"description" json:"description"`
}

type EducationItem struct {
	Institution string `bson:"institution" json:"institution"`
	Degree      string `bson:"degree" json:"degree"`
	Year        string `bson:"year" json:"year"`
}

// ParsedSections is populated by the AI analysis step, not by structural PDF
// parsing.
type ParsedSections struct {
	Summary        *string          `bson:"summary,omitempty" json:"summary,omitempty"`
	Experience     []ExperienceItem `bson:"experience" json:"experience"`
	Education      []EducationItem  `bson:"education" json:"education"`
	Skills         []string         `bson:"skills" json:"skills"`
	Certifications []string         `bson:"certifications" json:"certifications"`
}

type ImprovementSuggestion struct {
	Section    string `bson:"section" json:"section"`
	Suggestion string `bson:"suggestion" json:"suggestion"`
	Importance string `bson:"importance" json:"importance"` // high|medium|low
}

type SectionScores struct {
	Impact  int `bson:"impact" json:"impact"`
	Brevity int `bson:"brevity" json:"brevity"`
	Style   int `bson:"style" json:"style"`
	Skills  int `bson:"skills" json:"skills"`
}

type ResumeAnalysis struct {
	OverallScore           int                     `bson:"overall_score" json:"overallScore"`
	ATSScore               int                     `bson:"ats_score" json:"atsScore"`
	SectionScores          *SectionScores          `bson:"section_scores,omitempty" json:"sectionScores,omitempty"`
	MissingKeywords        []string                `bson:"missing_keywords" json:"missingKeywords"`
	ImprovementSuggestions []ImprovementSuggestion `bson:"improvement_suggestions" json:"improvementSuggestions"`
}

// Resume holds an uploaded document's metadata and extracted text. Exactly
// one resume per owner may have IsDefault set; the first upload becomes
// default automatically.
type Resume struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID string             `bson:"owner_id" json:"owner_id"`

	FileName string `bson:"file_name" json:"file_name"`
	FileURL  string `bson:"file_url" json:"file_url"`
	FileSize int64  `bson:"file_size" json:"file_size"`
	MimeType string `bson:"mime_type" json:"mime_type"` // application/pdf only

	ExtractedText  string          `bson:"extracted_text" json:"extracted_text"`
	ParsedSections ParsedSections  `bson:"parsed_sections" json:"parsed_sections"`
	Analysis       *ResumeAnalysis `bson:"analysis,omitempty" json:"analysis,omitempty"`

	IsDefault bool `bson:"is_default" json:"is_default"`

	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	AnalyzedAt *time.Time `bson:"analyzed_at,omitempty" json:"analyzed_at,omitempty"`
}
