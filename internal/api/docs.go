package api

import (
	"net/http"

	"github.com/veridian-labs/regent/internal/config"
	"github.com/veridian-labs/regent/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the mounted API routes.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"RiskLevel": openapi.EnumSchema(
			"Derived risk classification level",
			"needs_review", "not_ai", "minimal_risk", "limited_risk", "high_risk", "prohibited",
		),
		"AISystem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"name":             {Type: "string"},
				"description":      {Type: "string"},
				"lifecycle_status": openapi.EnumSchema("Deployment lifecycle stage", "idea", "pilot", "live", "retired"),
				"vendor_id":        {Type: "string", Format: "uuid"},
				"intake_mode":      openapi.EnumSchema("Intake path used to capture the system", "full", "quick"),
				"profile":          {Type: "object", Description: "Classification-relevant snapshot attributes"},
				"version":          {Type: "integer", Description: "Optimistic concurrency revision"},
				"created_at":       {Type: "string", Format: "date-time"},
				"updated_at":       {Type: "string", Format: "date-time"},
			},
		},
		"Classification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                            {Type: "string", Format: "uuid"},
				"system_id":                     {Type: "string", Format: "uuid"},
				"risk_level":                    openapi.SchemaRef("RiskLevel"),
				"ai_screening_result":           {Type: "string"},
				"prohibited_screening_result":   {Type: "string"},
				"highrisk_screening_result":     {Type: "string"},
				"transparency_screening_result": {Type: "string"},
				"triggered_checks":              {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"rationale":                     {Type: "string"},
				"classified_at":                 {Type: "string", Format: "date-time"},
				"reassess_flagged":              {Type: "boolean"},
				"reassess_reason":               {Type: "string"},
				"reassess_flagged_at":           {Type: "string", Format: "date-time"},
			},
		},
		"Task": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"system_id":   {Type: "string", Format: "uuid"},
				"task_type":   {Type: "string"},
				"title":       {Type: "string"},
				"description": {Type: "string"},
				"priority":    openapi.EnumSchema("Task priority tier", "urgent", "high", "medium", "low"),
				"due_date":    {Type: "string", Format: "date-time"},
				"status":      openapi.EnumSchema("Task lifecycle status", "open", "in_progress", "done", "dismissed"),
				"assignee":    {Type: "string"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"Modification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                      {Type: "string", Format: "uuid"},
				"system_id":               {Type: "string", Format: "uuid"},
				"field":                   {Type: "string"},
				"old_value":               {Type: "string"},
				"new_value":               {Type: "string"},
				"modification_type":       openapi.EnumSchema("Modification category", "model_change", "intended_purpose_change", "substantial_modification"),
				"requires_new_conformity": {Type: "boolean"},
				"status":                  openapi.EnumSchema("Review status", "pending", "in_progress", "complete", "waived"),
				"detected_at":             {Type: "string", Format: "date-time"},
			},
		},
		"EvaluationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"system":         openapi.SchemaRef("AISystem"),
				"classification": openapi.SchemaRef("Classification"),
				"tasks_created":  {Type: "array", Items: openapi.SchemaRef("Task")},
				"modifications":  {Type: "array", Items: openapi.SchemaRef("Modification")},
				"reassessment":   {Type: "object", Description: "Reassessment flag raised by this pass, absent when none"},
			},
		},
		"CreateSystem": {
			Type:     "object",
			Required: []string{"name", "profile"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"profile":     {Type: "object", Description: "Classification-relevant snapshot attributes"},
			},
		},
		"UpdateSystem": {
			Type:     "object",
			Required: []string{"name", "profile", "expected_version"},
			Properties: map[string]*openapi.Schema{
				"name":             {Type: "string"},
				"description":      {Type: "string"},
				"profile":          {Type: "object", Description: "Classification-relevant snapshot attributes"},
				"expected_version": {Type: "integer", Description: "Version the revision was based on"},
			},
		},
		"AssignTask": {
			Type:     "object",
			Required: []string{"assignee"},
			Properties: map[string]*openapi.Schema{
				"assignee": {Type: "string"},
			},
		},
		"UpdateTaskStatus": {
			Type:     "object",
			Required: []string{"status"},
			Properties: map[string]*openapi.Schema{
				"status": openapi.EnumSchema("Target status", "open", "in_progress", "done", "dismissed"),
			},
		},
		"UpdateModificationStatus": {
			Type:     "object",
			Required: []string{"status"},
			Properties: map[string]*openapi.Schema{
				"status": openapi.EnumSchema("Target status", "in_progress", "complete", "waived"),
			},
		},
		"DismissReassessment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"dismissed_by": {Type: "string"},
			},
		},
	})

	addSystemPaths(spec)
	addClassificationPaths(spec)
	addTaskPaths(spec)
	addModificationPaths(spec)

	return spec
}

func addSystemPaths(spec *openapi.Spec) {
	spec.Paths["/systems"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List AI systems",
			Tags:    []string{"systems"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("lifecycle_status", "string", "Filter by lifecycle status", false),
				openapi.QueryParam("intake_mode", "string", "Filter by intake mode", false),
				openapi.QueryParam("vendor_id", "string", "Filter by vendor", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated AI systems", "AISystem"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Register an AI system",
			Description: "Registers a system and runs the first classification pass over its snapshot.",
			Tags:        []string{"systems"},
			RequestBody: openapi.RequestBodyJSON("CreateSystem", true),
			Responses: map[int]*openapi.Response{
				http.StatusCreated:    openapi.ResponseJSON("Evaluation result", "EvaluationResult"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/systems/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find an AI system",
			Tags:       []string{"systems"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "System ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("AI system", "AISystem"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Revise an AI system",
			Description: "Persists a new revision and runs a full engine pass over the old and new snapshots.",
			Tags:        []string{"systems"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "System ID")},
			RequestBody: openapi.RequestBodyJSON("UpdateSystem", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Evaluation result", "EvaluationResult"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
				http.StatusConflict: openapi.ResponseRef("Conflict"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete an AI system",
			Tags:       []string{"systems"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "System ID")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent: {Description: "Deleted"},
				http.StatusNotFound:  openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/systems/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search AI systems",
			Tags:        []string{"systems"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated AI systems", "AISystem"),
			},
		},
	}

	spec.Paths["/systems/{id}/evaluate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Re-evaluate an AI system",
			Description: "Re-runs the engine over the current snapshot and clears any standing reassessment flag.",
			Tags:        []string{"systems"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "System ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Evaluation result", "EvaluationResult"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/systems/evaluate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Re-evaluate all AI systems",
			Tags:    []string{"systems"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Evaluation results", "EvaluationResult"),
			},
		},
	}
}

func addClassificationPaths(spec *openapi.Spec) {
	spec.Paths["/classifications"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List classifications",
			Tags:    []string{"classifications"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("risk_level", "string", "Filter by risk level", false),
				openapi.QueryParam("system_id", "string", "Filter by system", false),
				openapi.QueryParam("reassess_flagged", "string", "Filter by reassessment flag (true/false)", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated classifications", "Classification"),
			},
		},
	}

	spec.Paths["/classifications/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a classification",
			Tags:       []string{"classifications"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Classification ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Classification", "Classification"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/classifications/system/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a system's current classification",
			Tags:       []string{"classifications"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "System ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Classification", "Classification"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/classifications/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search classifications",
			Tags:        []string{"classifications"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated classifications", "Classification"),
			},
		},
	}

	spec.Paths["/classifications/{id}/reassessment/dismiss"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Dismiss a reassessment flag",
			Tags:        []string{"classifications"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Classification ID")},
			RequestBody: openapi.RequestBodyJSON("DismissReassessment", false),
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Classification", "Classification"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
				http.StatusConflict: openapi.ResponseRef("Conflict"),
			},
		},
	}
}

func addTaskPaths(spec *openapi.Spec) {
	spec.Paths["/tasks"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List compliance tasks",
			Tags:    []string{"tasks"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("system_id", "string", "Filter by system", false),
				openapi.QueryParam("task_type", "string", "Filter by task type", false),
				openapi.QueryParam("status", "string", "Filter by status", false),
				openapi.QueryParam("priority", "string", "Filter by priority", false),
				openapi.QueryParam("assignee", "string", "Filter by assignee", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated tasks", "Task"),
			},
		},
	}

	spec.Paths["/tasks/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a task",
			Tags:       []string{"tasks"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Task ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Task", "Task"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/tasks/system/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List a system's tasks",
			Tags:       []string{"tasks"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "System ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Tasks ordered by due date", "Task"),
			},
		},
	}

	spec.Paths["/tasks/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search tasks",
			Tags:        []string{"tasks"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated tasks", "Task"),
			},
		},
	}

	spec.Paths["/tasks/{id}/assign"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Assign a task",
			Tags:        []string{"tasks"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Task ID")},
			RequestBody: openapi.RequestBodyJSON("AssignTask", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Task", "Task"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/tasks/{id}/status"] = &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Advance a task's status",
			Tags:        []string{"tasks"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Task ID")},
			RequestBody: openapi.RequestBodyJSON("UpdateTaskStatus", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:                  openapi.ResponseJSON("Task", "Task"),
				http.StatusNotFound:            openapi.ResponseRef("NotFound"),
				http.StatusUnprocessableEntity: openapi.ResponseRef("Unprocessable"),
			},
		},
	}
}

func addModificationPaths(spec *openapi.Spec) {
	spec.Paths["/modifications"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List modification records",
			Tags:    []string{"modifications"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("system_id", "string", "Filter by system", false),
				openapi.QueryParam("modification_type", "string", "Filter by modification type", false),
				openapi.QueryParam("status", "string", "Filter by review status", false),
				openapi.QueryParam("field", "string", "Filter by changed field", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated modification records", "Modification"),
			},
		},
	}

	spec.Paths["/modifications/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a modification record",
			Tags:       []string{"modifications"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Modification ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Modification record", "Modification"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/modifications/system/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List a system's modification history",
			Tags:       []string{"modifications"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "System ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Modification records, newest first", "Modification"),
			},
		},
	}

	spec.Paths["/modifications/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search modification records",
			Tags:        []string{"modifications"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated modification records", "Modification"),
			},
		},
	}

	spec.Paths["/modifications/{id}/status"] = &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Advance a modification's review status",
			Tags:        []string{"modifications"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Modification ID")},
			RequestBody: openapi.RequestBodyJSON("UpdateModificationStatus", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:                  openapi.ResponseJSON("Modification record", "Modification"),
				http.StatusNotFound:            openapi.ResponseRef("NotFound"),
				http.StatusUnprocessableEntity: openapi.ResponseRef("Unprocessable"),
			},
		},
	}
}
