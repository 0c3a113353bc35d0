package template

import (
	"fmt"
	"strings"
)

// ValidateSchema checks a Schema for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(schema *Schema) []error {
	var errs []error

	if strings.TrimSpace(schema.Name) == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if len(schema.Tasks) == 0 {
		errs = append(errs, fmt.Errorf("at least one task is required"))
	}

	subjects := map[string]bool{}
	for i, t := range schema.Tasks {
		if strings.TrimSpace(t.Subject) == "" {
			errs = append(errs, fmt.Errorf("task[%d]: subject is required", i))
			continue
		}
		if subjects[t.Subject] {
			errs = append(errs, fmt.Errorf("task[%d]: duplicate subject %q", i, t.Subject))
		}
		subjects[t.Subject] = true

		for j, c := range t.Checklist {
			if strings.TrimSpace(c.Item) == "" {
				errs = append(errs, fmt.Errorf("task[%d].checklist[%d]: item is required", i, j))
			}
		}
	}

	for i, t := range schema.Tasks {
		if t.Previous == "" {
			continue
		}
		if t.Previous == t.Subject {
			errs = append(errs, fmt.Errorf("task[%d]: %q cannot follow itself", i, t.Subject))
			continue
		}
		if !subjects[t.Previous] {
			errs = append(errs, fmt.Errorf("task[%d]: previous %q is not a task subject", i, t.Previous))
		}
	}

	if cycle := findCycle(schema.Tasks); len(cycle) > 0 {
		errs = append(errs, fmt.Errorf("circular previous chain: %s", strings.Join(cycle, " -> ")))
	}

	return errs
}

// findCycle follows previous links from every task and returns the first
// loop found, starting and ending on the same subject. Each task has at most
// one predecessor so walking the chain is enough.
func findCycle(tasks []TaskConfig) []string {
	previous := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if t.Subject != "" && t.Previous != "" && t.Previous != t.Subject {
			previous[t.Subject] = t.Previous
		}
	}

	done := map[string]bool{}
	for _, t := range tasks {
		if done[t.Subject] {
			continue
		}
		pos := map[string]int{}
		var path []string
		for cur := t.Subject; cur != ""; cur = previous[cur] {
			if done[cur] {
				break
			}
			if i, seen := pos[cur]; seen {
				return append(path[i:], cur)
			}
			pos[cur] = len(path)
			path = append(path, cur)
		}
		for _, s := range path {
			done[s] = true
		}
	}
	return nil
}
