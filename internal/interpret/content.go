package interpret

import "github.com/embrylab/blastograde/internal/models"

// All canned prose lives in this file, keyed by structured values, so the
// control flow never touches raw strings and tests can assert on keys.
// These are content resources, not logic — do not branch on their text.

var parameterNotes = map[models.Parameter]map[models.Tone]string{
	models.ParameterICM: {
		models.TonePositive: "🟢 **ICM:** Good inner cell mass — likely healthy embryoblast.",
		models.ToneNeutral:  "🟡 **ICM:** Moderate ICM — acceptable but not ideal.",
		models.ToneNegative: "🔴 **ICM:** Poor ICM — lower likelihood of successful implantation.",
	},
	models.ParameterTE: {
		models.TonePositive: "🟢 **TE:** Strong trophectoderm — better implantation probability.",
		models.ToneNeutral:  "🟡 **TE:** Average TE — may still be viable.",
		models.ToneNegative: "🔴 **TE:** Weak TE — may reduce implantation chances.",
	},
	models.ParameterExp: {
		models.TonePositive: "🟢 **Expansion:** Well-expanded blastocyst — good development.",
		models.ToneNeutral:  "🟡 **Expansion:** Moderate expansion — monitor carefully.",
		models.ToneNegative: "🔴 **Expansion:** Poor expansion — embryo may be underdeveloped.",
	},
}

var bandSummaries = map[models.QualityBand]string{
	models.BandHigh:   "✅ **Overall:** High-quality blastocyst — strong transfer candidate.",
	models.BandMedium: "⚠️ **Overall:** Medium-quality embryo — possible, but requires clinical judgement.",
	models.BandLow:    "❌ **Overall:** Low-quality blastocyst — poor prognosis.",
}

var strategyBlocks = map[models.QualityBand]models.Recommendation{
	models.BandHigh: {
		Kind:  models.RecommendationStrategy,
		Title: "Overall Strategy",
		Text: "This embryo is a strong candidate for transfer. Prioritize for " +
			"single embryo transfer in the current or next cycle.",
	},
	models.BandMedium: {
		Kind:  models.RecommendationStrategy,
		Title: "Overall Strategy",
		Text: "This embryo is transferable but not optimal. Weigh against other " +
			"available embryos and the patient's clinical history before selection.",
	},
	models.BandLow: {
		Kind:  models.RecommendationStrategy,
		Title: "Overall Strategy",
		Text: "This embryo has a poor prognosis. Consider extended culture, " +
			"re-evaluation, or prioritizing alternative embryos if available.",
	},
}

var concernBlocks = map[models.Parameter]models.Recommendation{
	models.ParameterICM: {
		Kind:      models.RecommendationConcern,
		Parameter: models.ParameterICM,
		Title:     "ICM Concern",
		Text: "Inner cell mass is below the acceptable threshold. Reduced " +
			"embryoblast quality lowers the likelihood of a viable pregnancy.",
	},
	models.ParameterTE: {
		Kind:      models.RecommendationConcern,
		Parameter: models.ParameterTE,
		Title:     "TE Concern",
		Text: "Trophectoderm is below the acceptable threshold. Weak outer " +
			"cell layer development may compromise implantation.",
	},
	models.ParameterExp: {
		Kind:      models.RecommendationConcern,
		Parameter: models.ParameterExp,
		Title:     "Expansion Concern",
		Text: "Expansion is below the acceptable threshold. The blastocyst may " +
			"be developmentally delayed; extended culture can clarify potential.",
	},
}

// followUpBlock is emitted verbatim for every analysis, regardless of input.
var followUpBlock = models.Recommendation{
	Kind:  models.RecommendationFollowUp,
	Title: "Follow-Up Actions",
	Text: "Confirm grading with a second embryologist, document the assessment " +
		"in the cycle record, and review alongside patient age, history, and " +
		"endometrial readiness before any transfer decision.",
}
