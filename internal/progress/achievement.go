package progress

import "github.com/btced/btced/internal/i18n"

// AchievementKey identifies an achievement in the fixed catalog.
type AchievementKey string

const (
	AchFirstLesson    AchievementKey = "ach_first_lesson"
	AchSecurityMaster AchievementKey = "ach_security_master"
	AchQuizChampion   AchievementKey = "ach_quiz_champion"
	AchStoryReader    AchievementKey = "ach_story_reader"
	AchBudgetPro      AchievementKey = "ach_budget_pro"
	AchHolder         AchievementKey = "ach_holder"
	AchGreatTeacher   AchievementKey = "ach_great_teacher"
	AchCompanion      AchievementKey = "ach_companion"
	AchStoryExplorer  AchievementKey = "ach_story_explorer"
)

// Achievement describes one entry in the catalog. The XP bonus is a property
// of the achievement, not a universal constant: budgeting pays more than the
// generic unlocks.
type Achievement struct {
	Key     AchievementKey
	NameKey i18n.Key
	BonusXP int
}

// defaultBonusXP is the bonus for achievements without a specific override.
const defaultBonusXP = 25

var catalog = map[AchievementKey]Achievement{
	AchFirstLesson:    {Key: AchFirstLesson, NameKey: i18n.AchFirstLesson, BonusXP: defaultBonusXP},
	AchSecurityMaster: {Key: AchSecurityMaster, NameKey: i18n.AchSecurityMaster, BonusXP: defaultBonusXP},
	AchQuizChampion:   {Key: AchQuizChampion, NameKey: i18n.AchQuizChampion, BonusXP: defaultBonusXP},
	AchStoryReader:    {Key: AchStoryReader, NameKey: i18n.AchStoryReader, BonusXP: defaultBonusXP},
	AchBudgetPro:      {Key: AchBudgetPro, NameKey: i18n.AchBudgetPro, BonusXP: 50},
	AchHolder:         {Key: AchHolder, NameKey: i18n.AchHolder, BonusXP: defaultBonusXP},
	AchGreatTeacher:   {Key: AchGreatTeacher, NameKey: i18n.AchGreatTeacher, BonusXP: defaultBonusXP},
	AchCompanion:      {Key: AchCompanion, NameKey: i18n.AchCompanion, BonusXP: defaultBonusXP},
	AchStoryExplorer:  {Key: AchStoryExplorer, NameKey: i18n.AchStoryExplorer, BonusXP: defaultBonusXP},
}

// Lookup returns the catalog entry for key.
func Lookup(key AchievementKey) (Achievement, bool) {
	a, ok := catalog[key]
	return a, ok
}

// AllAchievements returns the catalog in display order.
func AllAchievements() []Achievement {
	keys := []AchievementKey{
		AchFirstLesson, AchSecurityMaster, AchQuizChampion, AchStoryReader,
		AchBudgetPro, AchHolder, AchGreatTeacher, AchCompanion, AchStoryExplorer,
	}
	out := make([]Achievement, 0, len(keys))
	for _, k := range keys {
		out = append(out, catalog[k])
	}
	return out
}
