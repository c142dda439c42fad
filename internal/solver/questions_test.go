package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javipalanca/burrocracia/internal/model"
)

func TestQuestionsForProjectRows(t *testing.T) {
	withWP := projectRow("Proyecto X", 2)
	withoutWP := projectRow("Proyecto Y", model.Unconstrained)
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	ts := newSheet(t, weekFirst, weekLast, withWP, withoutWP, teaching)

	qs := Questions(ts)
	require.Len(t, qs, 6) // 2 projects + 4 special activities

	assert.Equal(t, QuestionProject, qs[0].Kind)
	assert.Equal(t, withWP.Key(), qs[0].Key)
	assert.Contains(t, qs[0].Prompt, "WP 2")
	assert.Contains(t, qs[0].Prompt, "Proyecto X")

	assert.Equal(t, QuestionProject, qs[1].Kind)
	assert.NotContains(t, qs[1].Prompt, "WP")
	assert.Contains(t, qs[1].Prompt, "Proyecto Y")

	for i, act := range model.SpecialOrder() {
		q := qs[2+i]
		assert.Equal(t, QuestionSpecial, q.Kind)
		assert.Equal(t, act, q.Special)
		assert.Contains(t, q.Prompt, act.Label())
	}
}

func TestQuestionsDeduplicatesProjectKeys(t *testing.T) {
	a := projectRow("Proyecto X", 2)
	b := projectRow("Proyecto X", 2)
	ts := newSheet(t, weekFirst, weekLast, a, b)

	var projects int
	for _, q := range Questions(ts) {
		if q.Kind == QuestionProject {
			projects++
		}
	}
	assert.Equal(t, 1, projects)
}

func TestQuestionsSentinelWithoutProjects(t *testing.T) {
	teaching := specialRow(model.ActivityTeaching, "Docencia")
	absence := specialRow(model.ActivityAbsence, "Ausencia")
	ts := newSheet(t, weekFirst, weekLast, teaching, absence)

	qs := Questions(ts)
	require.Len(t, qs, 5) // sentinel + 4 special activities
	assert.Equal(t, QuestionNone, qs[0].Kind)
	assert.Equal(t, "No se han encontrado proyectos", qs[0].Prompt)
}
