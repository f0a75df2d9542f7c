// Package i18n provides the bilingual message catalog for the learning
// service. Keys form a closed enumeration; both catalogs must define every
// key, which is enforced by tests rather than by runtime fallback.
package i18n

// Language selects a message catalog.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"
)

// Default is the catalog used when no language has been chosen.
// Spanish first: the service targets El Salvador.
const Default = Spanish

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == Spanish || l == English
}

// Key identifies a single translatable message.
type Key string

// Message keys. Grouped by the module that renders them.
const (
	// Achievements.
	AchFirstLesson    Key = "ach_first_lesson"
	AchSecurityMaster Key = "ach_security_master"
	AchQuizChampion   Key = "ach_quiz_champion"
	AchStoryReader    Key = "ach_story_reader"
	AchBudgetPro      Key = "ach_budget_pro"
	AchHolder         Key = "ach_holder"
	AchGreatTeacher   Key = "ach_great_teacher"
	AchCompanion      Key = "ach_companion"
	AchStoryExplorer  Key = "ach_story_explorer"

	// Quiz.
	QuizCorrect   Key = "quiz_correct"
	QuizIncorrect Key = "quiz_incorrect"
	QuizComplete  Key = "quiz_complete"

	// Transaction simulator.
	TxSent                Key = "tx_sent"
	TxReceived            Key = "tx_received"
	TxInsufficientBalance Key = "tx_insufficient_balance"
	TxInvalidAmount       Key = "tx_invalid_amount"

	// Budget evaluator.
	BudgetGood        Key = "budget_good"
	BudgetNeedsReview Key = "budget_needs_review"
	BudgetUnbalanced  Key = "budget_unbalanced"

	// Tutor bridge.
	TutorNotConfigured  Key = "tutor_not_configured"
	TutorError          Key = "tutor_error"
	TutorGreatTeaching  Key = "tutor_great_teaching"
	TutorGuideIntro     Key = "tutor_guide_intro"
	TutorPalIntro       Key = "tutor_pal_intro"
	TutorAdventureIntro Key = "tutor_adventure_intro"

	// Price widget.
	PriceUnavailable Key = "price_unavailable"

	// Progress.
	LevelUp  Key = "level_up"
	XPEarned Key = "xp_earned"
)

var catalogs = map[Language]map[Key]string{
	Spanish: {
		AchFirstLesson:    "🎓 Primera Lección",
		AchSecurityMaster: "🔐 Maestro de Seguridad",
		AchQuizChampion:   "🏆 Campeón del Quiz",
		AchStoryReader:    "📚 Lector de Historias",
		AchBudgetPro:      "💰 Experto en Presupuesto",
		AchHolder:         "💎 HODLer",
		AchGreatTeacher:   "👨‍🏫 Gran Maestro",
		AchCompanion:      "🌙 Amigo de Luna",
		AchStoryExplorer:  "🗺️ Explorador de Historias",

		QuizCorrect:   "✅ ¡Correcto!",
		QuizIncorrect: "❌ Incorrecto. La respuesta correcta era:",
		QuizComplete:  "🎉 ¡Quiz completado!",

		TxSent:                "✅ Transacción enviada con éxito",
		TxReceived:            "✅ Bitcoin recibido",
		TxInsufficientBalance: "¡Saldo insuficiente!",
		TxInvalidAmount:       "La cantidad debe ser mayor que cero.",

		BudgetGood:        "🌟 ¡Excelente presupuesto! Estás ahorrando para el futuro.",
		BudgetNeedsReview: "💡 Intenta ahorrar al menos 20% entre ahorros y emergencias.",
		BudgetUnbalanced:  "⚠️ El total debe sumar 100%.",

		TutorNotConfigured: "⚠️ API de IA no configurada. Configura tu clave API para habilitar el tutor de IA.",
		TutorError:         "❌ Error al conectar con el tutor IA. Intenta de nuevo más tarde.",
		TutorGreatTeaching: "🎉 ¡Excelente enseñanza! ¡Pedrito entendió!",
		TutorGuideIntro:    "¡Hola! Soy Luna 🌙 Mi abuela me enseñó todo sobre Bitcoin cuando los volcanes empezaron a minar. ¿Quieres que te cuente lo que aprendí?",
		TutorPalIntro:       "¡Hola profe! Soy Pedrito 👦 Me dijeron que Bitcoin es como dinero mágico de internet que sale de los volcanes... ¿es verdad? ¿Me puedes enseñar?",
		TutorAdventureIntro: "¡Bienvenido a la Aventura Bitcoin! Acompañarás a Luna en un emocionante viaje por El Salvador aprendiendo sobre Bitcoin.",

		PriceUnavailable: "Precio no disponible",

		LevelUp:  "🎉 ¡Subiste de nivel!",
		XPEarned: "⭐ ¡XP ganados!",
	},
	English: {
		AchFirstLesson:    "🎓 First Lesson",
		AchSecurityMaster: "🔐 Security Master",
		AchQuizChampion:   "🏆 Quiz Champion",
		AchStoryReader:    "📚 Story Reader",
		AchBudgetPro:      "💰 Budget Pro",
		AchHolder:         "💎 HODLer",
		AchGreatTeacher:   "👨‍🏫 Great Teacher",
		AchCompanion:      "🌙 Luna's Friend",
		AchStoryExplorer:  "🗺️ Story Explorer",

		QuizCorrect:   "✅ Correct!",
		QuizIncorrect: "❌ Incorrect. The right answer was:",
		QuizComplete:  "🎉 Quiz complete!",

		TxSent:                "✅ Transaction sent successfully",
		TxReceived:            "✅ Bitcoin received",
		TxInsufficientBalance: "Insufficient balance!",
		TxInvalidAmount:       "Amount must be greater than zero.",

		BudgetGood:        "🌟 Excellent budget! You are saving for the future.",
		BudgetNeedsReview: "💡 Try to put at least 20% into savings and emergencies.",
		BudgetUnbalanced:  "⚠️ The total should add up to 100%.",

		TutorNotConfigured: "⚠️ AI API not configured. Set your API key to enable the AI tutor.",
		TutorError:         "❌ Error connecting to the AI tutor. Please try again later.",
		TutorGreatTeaching: "🎉 Great teaching! Pedrito understood!",
		TutorGuideIntro:    "Hi! I'm Luna 🌙 My grandma taught me all about Bitcoin when the volcanoes started mining. Want to hear what I learned?",
		TutorPalIntro:       "Hi teacher! I'm Pedrito 👦 They told me Bitcoin is like magic internet money that comes out of volcanoes... is that true? Can you teach me?",
		TutorAdventureIntro: "Welcome to the Bitcoin Adventure! You'll join Luna on an exciting journey through El Salvador learning about Bitcoin.",

		PriceUnavailable: "Price unavailable",

		LevelUp:  "🎉 Level up!",
		XPEarned: "⭐ XP earned!",
	},
}

// AllKeys returns every defined message key. Used by the completeness test
// and by tooling that audits the catalogs.
func AllKeys() []Key {
	return []Key{
		AchFirstLesson, AchSecurityMaster, AchQuizChampion, AchStoryReader,
		AchBudgetPro, AchHolder, AchGreatTeacher, AchCompanion, AchStoryExplorer,
		QuizCorrect, QuizIncorrect, QuizComplete,
		TxSent, TxReceived, TxInsufficientBalance, TxInvalidAmount,
		BudgetGood, BudgetNeedsReview, BudgetUnbalanced,
		TutorNotConfigured, TutorError, TutorGreatTeaching,
		TutorGuideIntro, TutorPalIntro, TutorAdventureIntro,
		PriceUnavailable,
		LevelUp, XPEarned,
	}
}

// T returns the message for key in the given language. An unknown language
// resolves through the default catalog. A missing key returns the key itself;
// the completeness test guarantees that never happens for defined keys.
func T(lang Language, key Key) string {
	cat, ok := catalogs[lang]
	if !ok {
		cat = catalogs[Default]
	}
	if msg, ok := cat[key]; ok {
		return msg
	}
	return string(key)
}
