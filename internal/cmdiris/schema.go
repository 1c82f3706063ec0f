package cmdiris

import (
	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/validator"
)

// schemaFor returns the structured-output schema for a task type, or nil
// for tasks (review) whose result is free-form text.
func schemaFor(task agent.TaskType) *validator.Schema {
	switch task {
	case agent.TaskCommitMessage:
		return &validator.Schema{Fields: []validator.Field{
			{Name: "emoji", Type: validator.TString, Nullable: true},
			{Name: "title", Type: validator.TString, Required: true},
			{Name: "message", Type: validator.TString},
		}}
	case agent.TaskPullRequest:
		return &validator.Schema{Fields: []validator.Field{
			{Name: "emoji", Type: validator.TString, Nullable: true},
			{Name: "title", Type: validator.TString, Required: true},
			{Name: "summary", Type: validator.TString, Required: true},
			{Name: "description", Type: validator.TString},
			{Name: "commits", Type: validator.TArray},
			{Name: "breaking_changes", Type: validator.TArray},
			{Name: "testing_notes", Type: validator.TString, Nullable: true},
			{Name: "notes", Type: validator.TString, Nullable: true},
		}}
	case agent.TaskChangelog:
		return &validator.Schema{Fields: []validator.Field{
			{Name: "sections", Type: validator.TObject, Required: true},
			{Name: "breaking_changes", Type: validator.TArray},
			{Name: "metrics", Type: validator.TObject},
		}}
	case agent.TaskReleaseNotes:
		return &validator.Schema{Fields: []validator.Field{
			{Name: "sections", Type: validator.TObject, Required: true},
			{Name: "breaking_changes", Type: validator.TArray},
			{Name: "metrics", Type: validator.TObject},
			{Name: "highlights", Type: validator.TArray},
		}}
	default:
		return nil
	}
}
