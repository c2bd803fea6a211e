package guide

import (
	"fmt"
	"strings"

	"github.com/careerpilot/backend/pkg/types"
)

func answerLines(a types.QuestionnaireAnswers) string {
	lines := []string{
		"Work Preference: " + a.WorkPreference,
		"Task Preference: " + a.TaskPreference,
		"Learning Style: " + a.LearningStyle,
		"Social Interaction: " + a.SocialInteraction,
		"Job Motivation: " + a.JobMotivation,
		"Risk Preference: " + a.RiskPreference,
		"Pressure Handling: " + a.PressureHandling,
		"Work Environment: " + a.WorkEnvironment,
		"Personal Interests: " + a.PersonalInterests,
	}
	return strings.Join(lines, "\n")
}

const careerPathsIntro = `Based on the following preferences and personal interests, suggest three different career paths (one professional, one entrepreneurial, one alternative):

%s

Consider their personal interests and goals when suggesting career paths. Align the suggestions with their stated interests and provide paths that would allow them to pursue their passions while leveraging their work preferences.

For each career path, provide:
1. Path name and description (incorporating relevant aspects of their interests)
2. Required skills (5-7 key skills)
3. Expected salary range
4. Growth potential
5. Entry requirements
`

const careerPathsHTMLFormat = `
Format EXACTLY as follows (replace text in brackets):
<div class="career-paths-container">
  <div class="career-path">
    <h2 class="path-title">[Career Path Name]</h2>
    <div class="path-details">
      <p class="description">[Clear, concise description]</p>
      <div class="info-grid">
        <div class="info-item">
          <h4>Required Skills</h4>
          <ul><li>[Skill 1]</li><li>[Skill 2]</li></ul>
        </div>
        <div class="info-item"><h4>Salary Range</h4><p>[Entry Level - Experienced]</p></div>
        <div class="info-item"><h4>Growth Potential</h4><p>[Growth prospects and timeline]</p></div>
        <div class="info-item"><h4>Entry Requirements</h4><p>[Education/certification needed]</p></div>
      </div>
    </div>
  </div>
  <!-- Repeat for each career path -->
</div>`

const careerPathsJSONFormat = `
Respond with ONLY a single JSON object and NOTHING ELSE - no commentary, no markdown, no code fences. Use exactly this structure:
{"career_paths":[{"title":"...","description":"...","required_skills":["..."],"salary_range":"...","growth_outlook":"...","entry_requirements":"...","free_courses":[{"name":"...","platform":"...","url":"...","duration":"..."}],"internship_opportunities":[{"platform":"...","requirements":"...","url":"..."}]}]}`

const roadmapIntro = `Create a detailed learning roadmap for the suggested career paths with specific, verifiable resources.
Consider their personal interests and background: %s

Include:
1. Free online courses with actual links (Coursera, edX, etc.) that align with their interests
2. Certification paths relevant to their goals
3. Practical projects that combine career requirements with personal interests
4. Internship search strategies focused on their preferred areas
`

const roadmapHTMLFormat = `
Format EXACTLY as follows:
<div class="learning-roadmap">
  <h2 class="roadmap-title">Learning & Development Roadmap</h2>
  <div class="roadmap-section">
    <h3 class="section-title">Recommended Courses</h3>
    <div class="course-item">
      <h4 class="course-name">[Course Name]</h4>
      <p class="course-provider">Provider: [Platform Name]</p>
      <a href="[Actual Course URL]" class="course-link">View Course</a>
    </div>
  </div>
  <div class="roadmap-section">
    <h3 class="section-title">Certification Path</h3>
    <div class="cert-item"><h4>[Certification Name]</h4><p>[Requirements and Details]</p></div>
  </div>
  <div class="roadmap-section">
    <h3 class="section-title">Practical Projects</h3>
    <ul class="project-list"><li><h4>[Project Name]</h4><p>[Description and Learning Outcomes]</p></li></ul>
  </div>
  <div class="roadmap-section">
    <h3 class="section-title">Internship Resources</h3>
    <ul class="internship-list"><li><h4>[Platform/Company]</h4><p>[Description and Application Tips]</p></li></ul>
  </div>
</div>`

const roadmapJSONFormat = `
Respond with ONLY a single JSON object and NOTHING ELSE - no commentary, no markdown, no code fences. Group goals by horizon, use exactly this structure:
{"learning_roadmap":{"short_term":["..."],"medium_term":["..."],"long_term":["..."]}}`

func careerPathsPrompt(a types.QuestionnaireAnswers, asJSON bool) string {
	p := fmt.Sprintf(careerPathsIntro, answerLines(a))
	if asJSON {
		return p + careerPathsJSONFormat
	}
	return p + careerPathsHTMLFormat
}

func roadmapPrompt(a types.QuestionnaireAnswers, asJSON bool) string {
	p := fmt.Sprintf(roadmapIntro, a.PersonalInterests)
	if asJSON {
		return p + roadmapJSONFormat
	}
	return p + roadmapHTMLFormat
}
