package solver

import (
	"fmt"

	"github.com/javipalanca/burrocracia/internal/model"
)

// QuestionKind classifies the entries returned by Questions.
type QuestionKind int

const (
	QuestionProject QuestionKind = iota
	QuestionSpecial
	QuestionNone
)

// Question is one prompt for the request form: a per-project quota
// question, a special-activity daily-minimum question, or the sentinel
// shown when the sheet carries no ordinary project rows. Metadata only;
// it has no allocation effect.
type Question struct {
	Kind    QuestionKind
	Key     model.ProjectKey
	Special model.SpecialActivity
	Prompt  string
}

// Questions derives the request prompts for a sheet: one per distinct
// project key among ordinary-activity rows, in table order, then one
// fixed entry per special activity.
func Questions(ts *model.Timesheet) []Question {
	var qs []Question
	seen := make(map[model.ProjectKey]bool)
	for _, row := range ts.Rows {
		if row.IsSpecial() {
			continue
		}
		key := row.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		var prompt string
		if key.WorkPackage != model.Unconstrained {
			prompt = fmt.Sprintf("Cuantas horas deseas imputar al WP %d del proyecto %s (-1 si no hay mínimo)",
				key.WorkPackage, key.Project)
		} else {
			prompt = fmt.Sprintf("Cuantas horas deseas imputar al proyecto %s (-1 si no hay mínimo)",
				key.Project)
		}
		qs = append(qs, Question{Kind: QuestionProject, Key: key, Prompt: prompt})
	}

	if len(qs) == 0 {
		qs = append(qs, Question{Kind: QuestionNone, Prompt: "No se han encontrado proyectos"})
	}

	for _, act := range model.SpecialOrder() {
		qs = append(qs, Question{
			Kind:    QuestionSpecial,
			Special: act,
			Prompt: fmt.Sprintf("Cuantas horas mínimas al día deseas imputar a la actividad de %s (-1 si no hay mínimo)",
				act.Label()),
		})
	}
	return qs
}
