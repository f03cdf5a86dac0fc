package extraction

// State is a pipeline progress marker. States only move forward.
type State string

const (
	StateInitialized             State = "initialized"
	StateTextCleaned             State = "text_cleaned"
	StateEnhanced                State = "enhanced"
	StatePersonalExtracted       State = "personal_extracted"
	StateSkillsExtracted         State = "skills_extracted"
	StateExperienceExtracted     State = "experience_extracted"
	StateEducationExtracted      State = "education_extracted"
	StateCertificationsExtracted State = "certifications_extracted"
	StateProjectsExtracted       State = "projects_extracted"
	StateLanguagesExtracted      State = "languages_extracted"
	StateCompleted               State = "completed"
)

var stateOrder = map[State]int{
	StateInitialized:             0,
	StateTextCleaned:             1,
	StateEnhanced:                2,
	StatePersonalExtracted:       3,
	StateSkillsExtracted:         4,
	StateExperienceExtracted:     5,
	StateEducationExtracted:      6,
	StateCertificationsExtracted: 7,
	StateProjectsExtracted:       8,
	StateLanguagesExtracted:      9,
	StateCompleted:               10,
}

// Stage names one field-extraction step; it prefixes processing_errors entries
type Stage string

const (
	StageClean          Stage = "clean"
	StageEnhance        Stage = "enhance"
	StagePersonal       Stage = "personal"
	StageSkills         Stage = "skills"
	StageExperience     Stage = "experience"
	StageEducation      Stage = "education"
	StageCertifications Stage = "certifications"
	StageProjects       Stage = "projects"
	StageLanguages      Stage = "languages"
	StageValidate       Stage = "validate"
)

// machine tracks the states a run has passed through
type machine struct {
	current State
	history []State
}

func newMachine() *machine {
	return &machine{current: StateInitialized, history: []State{StateInitialized}}
}

// advance moves to next. Skipping optional states is allowed, going back or
// leaving completed is not.
func (m *machine) advance(next State) error {
	if m.current == StateCompleted || stateOrder[next] <= stateOrder[m.current] {
		return &TransitionError{From: m.current, To: next}
	}
	m.current = next
	m.history = append(m.history, next)
	return nil
}
