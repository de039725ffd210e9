package models

// Текстовые вердикты бинарного скрининга
const (
	DiagnosisPositive = "Positive for EMG pathology"
	DiagnosisNegative = "Negative for EMG pathology"
)

// FinalVerdict итоговый структурированный результат диагностики.
// Сериализуется как есть: форма согласована с клиентами и хранится
// в ml_results исследования.
type FinalVerdict struct {
	FinalDiagnosis      string         `json:"final_diagnosis"`
	ClassificationLevel int            `json:"classification_level"`
	Details             VerdictDetails `json:"details"`
	Explanations        *Explanations  `json:"explanations,omitempty"`
}

type VerdictDetails struct {
	BinaryModelVotes      map[string]int        `json:"binary_model_votes"`
	ClassificationDetails ClassificationDetails `json:"classification_details"`
}

type ClassificationDetails struct {
	WasClassified bool `json:"was_classified"`
	// ModelVotes nil, если классификация не выполнялась (в JSON — null)
	ModelVotes         map[string]int `json:"model_votes"`
	FinalLevelAssigned *int           `json:"final_level_assigned"`
}

// Explanations необязательный блок объяснимости. Либо присутствует
// целиком, либо отсутствует — частично заполненным не бывает.
type Explanations struct {
	BinaryDecisionFactors []ModelExplanation `json:"binary_decision_factors"`
	ClassificationFactors []ModelExplanation `json:"classification_factors"`
	SummaryInsights       SummaryInsights    `json:"summary_insights"`
	Metadata              ExplanationMeta    `json:"metadata"`
}

// ModelExplanation атрибуции признаков для предсказания одной модели
type ModelExplanation struct {
	Model          string   `json:"model"`
	PredictedClass int      `json:"predicted_class"`
	Factors        []Factor `json:"factors"`
}

// Factor вклад одного признака в предсказание
type Factor struct {
	Feature     string  `json:"feature"`
	Attribution float64 `json:"attribution"`
	Status      string  `json:"status"`
	Deviation   float64 `json:"deviation"`
}

// Статусы отклонения значения признака от нормы обучающей выборки
const (
	StatusNormal      = "normal"
	StatusAboveNormal = "above_normal"
	StatusBelowNormal = "below_normal"
)

// SummaryInsights сводка самых влиятельных признаков по всем моделям
type SummaryInsights struct {
	TopFeatures      []TopFeature `json:"top_features"`
	ModelsConsidered int          `json:"models_considered"`
}

type TopFeature struct {
	Feature            string  `json:"feature"`
	MeanAbsAttribution float64 `json:"mean_abs_attribution"`
	Status             string  `json:"status"`
}

type ExplanationMeta struct {
	ExplanationMethod string `json:"explanation_method"`
	ModelsExplained   int    `json:"models_explained"`
	FeaturesRanked    int    `json:"features_ranked"`
}
