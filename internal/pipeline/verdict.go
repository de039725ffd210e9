package pipeline

import (
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/internal/models"
	"github.com/D3XTRO12/miel-ia/pkg/utils"
)

// BuildVerdict собирает итоговый вердикт из решения скрининга,
// результата классификации (если была) и объяснений (если удались).
// Чистая сборка: модели здесь не вызываются, побочных эффектов нет.
func BuildVerdict(gate *GateDecision, refinement *RefinementResult, explanations *models.Explanations) *models.FinalVerdict {
	diagnosis := models.DiagnosisNegative
	if gate.Positive {
		diagnosis = models.DiagnosisPositive
	}

	details := models.ClassificationDetails{WasClassified: false}
	level := 0
	if refinement != nil {
		level = refinement.Class
		assigned := refinement.Class
		votes := make(map[string]int, len(refinement.Votes))
		for i := range refinement.Votes {
			votes[refinement.Votes[i].Model] = refinement.Votes[i].Class
		}
		details = models.ClassificationDetails{
			WasClassified:      true,
			ModelVotes:         votes,
			FinalLevelAssigned: &assigned,
		}
	}

	binaryVotes := make(map[string]int, len(gate.Votes))
	for _, name := range ml.EvaluationOrder {
		binaryVotes[name] = gate.Votes[name]
	}

	return &models.FinalVerdict{
		FinalDiagnosis:      diagnosis,
		ClassificationLevel: level,
		Details: models.VerdictDetails{
			BinaryModelVotes:      binaryVotes,
			ClassificationDetails: details,
		},
		Explanations: explanations,
	}
}

// EnsembleConfidence уверенность ансамбля для залогированного решения:
// уточняющая, если классификация была, иначе скрининговая
func EnsembleConfidence(gate *GateDecision, refinement *RefinementResult) float64 {
	if refinement != nil {
		return utils.SafeFloat(refinement.Confidence)
	}
	return utils.SafeFloat(gate.Confidence)
}
