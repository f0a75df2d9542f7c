package content

// Pack is one language's complete static content: the quiz bank, the
// narrative stories, and the lesson modules.
type Pack struct {
	Language  string     `json:"language"`
	Questions []Question `json:"questions"`
	Stories   []Story    `json:"stories"`
	Lessons   []Lesson   `json:"lessons"`
}

// Question is one multiple-choice quiz question.
type Question struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Story is a short chaptered narrative.
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Character string    `json:"character"`
	Chapters  []Chapter `json:"chapters"`
}

// Chapter is one page of a story.
type Chapter struct {
	Text   string `json:"text"`
	Lesson string `json:"lesson"`
	Emoji  string `json:"emoji"`
}

// Lesson is one static teaching unit. Lessons sharing a Module form a course
// module; completing all of them earns the module bonus.
type Lesson struct {
	ID        string   `json:"id"`
	Module    string   `json:"module"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	KeyPoints []string `json:"key_points"`
}
