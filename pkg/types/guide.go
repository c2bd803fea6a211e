package types

// QuestionnaireAnswers maps the fixed onboarding question keys to the
// free-form option the user picked. Submitted once and consumed once per
// generation request.
type QuestionnaireAnswers struct {
	WorkPreference    string `json:"work_preference" binding:"required"`
	TaskPreference    string `json:"task_preference" binding:"required"`
	LearningStyle     string `json:"learning_style" binding:"required"`
	SocialInteraction string `json:"social_interaction" binding:"required"`
	JobMotivation     string `json:"job_motivation" binding:"required"`
	RiskPreference    string `json:"risk_preference" binding:"required"`
	PressureHandling  string `json:"pressure_handling" binding:"required"`
	WorkEnvironment   string `json:"work_environment" binding:"required"`
	PersonalInterests string `json:"personal_interests"`
}

// GuideDocument is the structured form of a generated career guide. The
// same logical structure backs both the HTML and the PDF artifact; only the
// renderer knows the final byte format.
type GuideDocument struct {
	CareerPaths     []CareerPath    `json:"career_paths"`
	LearningRoadmap LearningRoadmap `json:"learning_roadmap"`
}

type CareerPath struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	RequiredSkills    []string     `json:"required_skills"`
	SalaryRange       string       `json:"salary_range"`
	GrowthOutlook     string       `json:"growth_outlook"`
	EntryRequirements string       `json:"entry_requirements"`
	FreeCourses       []Course     `json:"free_courses"`
	Internships       []Internship `json:"internship_opportunities"`
}

type Course struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

type Internship struct {
	Platform     string `json:"platform"`
	Requirements string `json:"requirements"`
	URL          string `json:"url"`
}

// LearningRoadmap groups roadmap goals by horizon.
type LearningRoadmap struct {
	ShortTerm  []string `json:"short_term"`
	MediumTerm []string `json:"medium_term"`
	LongTerm   []string `json:"long_term"`
}

// Merge folds another document into d. Generation produces the career-path
// section and the roadmap section as separate documents; the renderer works
// on the merged result.
func (d *GuideDocument) Merge(other *GuideDocument) {
	if other == nil {
		return
	}
	if len(other.CareerPaths) > 0 {
		d.CareerPaths = append(d.CareerPaths, other.CareerPaths...)
	}
	if len(other.LearningRoadmap.ShortTerm) > 0 {
		d.LearningRoadmap.ShortTerm = append(d.LearningRoadmap.ShortTerm, other.LearningRoadmap.ShortTerm...)
	}
	if len(other.LearningRoadmap.MediumTerm) > 0 {
		d.LearningRoadmap.MediumTerm = append(d.LearningRoadmap.MediumTerm, other.LearningRoadmap.MediumTerm...)
	}
	if len(other.LearningRoadmap.LongTerm) > 0 {
		d.LearningRoadmap.LongTerm = append(d.LearningRoadmap.LongTerm, other.LearningRoadmap.LongTerm...)
	}
}
