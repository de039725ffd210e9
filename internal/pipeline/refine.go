package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/pkg/utils"
)

// ClassVote голос одной классификационной модели
type ClassVote struct {
	Model string
	Class int
	Proba []float64
}

// RefinementResult результат уточняющей классификации степени тяжести
type RefinementResult struct {
	// Class победитель голосования большинством
	Class int
	// Votes голоса моделей в порядке ml.EvaluationOrder
	Votes [3]ClassVote
	// Confidence среднее вероятностей, назначенных моделями классу-победителю
	Confidence float64
}

// refine запускает три классификационные модели. Вызывается только при
// положительном решении скрининга.
func (p *Pipeline) refine(ctx context.Context, row features.Row) (*RefinementResult, error) {
	classify := p.registry.Classify()

	var votes [3]ClassVote

	var g errgroup.Group
	for i := range classify {
		i := i
		g.Go(func() error {
			class, proba, err := ml.PredictClass(classify[i], row)
			if err != nil {
				return err
			}
			votes[i] = ClassVote{Model: classify[i].Name(), Class: class, Proba: proba}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	winner := majorityClass(votes)

	winnerProbas := make([]float64, len(votes))
	for i := range votes {
		winnerProbas[i] = votes[i].Proba[winner]
	}

	return &RefinementResult{Class: winner, Votes: votes, Confidence: utils.Mean(winnerProbas)}, nil
}

// majorityClass класс с наибольшим числом голосов. При ничьей (три
// разных класса) побеждает голос первой модели в фиксированном порядке
// обхода — это задокументированное детерминированное правило, а не
// случайность.
func majorityClass(votes [3]ClassVote) int {
	counts := make(map[int]int, len(votes))
	for i := range votes {
		counts[votes[i].Class]++
	}

	winner := votes[0].Class
	best := counts[winner]
	for i := 1; i < len(votes); i++ {
		if counts[votes[i].Class] > best {
			winner = votes[i].Class
			best = counts[winner]
		}
	}
	return winner
}
