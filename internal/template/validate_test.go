package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func TestValidateSchema_ValidSchema(t *testing.T) {
	schema := &Schema{
		Name: "Audit",
		Tasks: []TaskConfig{
			{Subject: "Kickoff", Checklist: []ChecklistConfig{{Item: "Agenda"}}},
			{Subject: "Fieldwork", Previous: "Kickoff"},
			{Subject: "Report", Previous: "Fieldwork"},
		},
	}

	errs := ValidateSchema(schema)
	assert.Empty(t, errs, "valid schema should have no errors")
}

func TestValidateSchema_MissingRequiredFields(t *testing.T) {
	errs := ValidateSchema(&Schema{})

	msgs := errorStrings(errs)
	assert.Contains(t, msgs, "template name is required")
	assert.Contains(t, msgs, "at least one task is required")
}

func TestValidateSchema_TaskErrors(t *testing.T) {
	schema := &Schema{
		Name: "Broken",
		Tasks: []TaskConfig{
			{Subject: "A"},
			{Subject: "A"},
			{Subject: ""},
			{Subject: "B", Previous: "B"},
			{Subject: "C", Previous: "Nowhere"},
			{Subject: "D", Checklist: []ChecklistConfig{{Item: " "}}},
		},
	}

	msgs := errorStrings(ValidateSchema(schema))
	assert.Contains(t, msgs, `task[1]: duplicate subject "A"`)
	assert.Contains(t, msgs, "task[2]: subject is required")
	assert.Contains(t, msgs, `task[3]: "B" cannot follow itself`)
	assert.Contains(t, msgs, `task[4]: previous "Nowhere" is not a task subject`)
	assert.Contains(t, msgs, "task[5].checklist[0]: item is required")
}

func TestValidateSchema_DetectsCycle(t *testing.T) {
	schema := &Schema{
		Name: "Loop",
		Tasks: []TaskConfig{
			{Subject: "Start"},
			{Subject: "A", Previous: "C"},
			{Subject: "B", Previous: "A"},
			{Subject: "C", Previous: "B"},
		},
	}

	errs := ValidateSchema(schema)
	require.Len(t, errs, 1)
	assert.Equal(t, "circular previous chain: A -> C -> B -> A", errs[0].Error())
}

func TestFindCycle_SharedPredecessorIsNotACycle(t *testing.T) {
	tasks := []TaskConfig{
		{Subject: "Plan"},
		{Subject: "Design", Previous: "Plan"},
		{Subject: "Budget", Previous: "Plan"},
		{Subject: "Build", Previous: "Design"},
	}
	assert.Nil(t, findCycle(tasks))
}
