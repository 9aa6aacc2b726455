package dto

import (
	"time"

	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/services"
	"github.com/google/uuid"
)

// TaskLinkDTO is the minimal view of a task used inside dependency sets.
type TaskLinkDTO struct {
	ID     uuid.UUID         `json:"id"`
	Name   string            `json:"name"`
	Status models.TaskStatus `json:"status"`
}

// TaskAssignmentDTO represents one assignee of a task.
type TaskAssignmentDTO struct {
	User UserProfileDTO `json:"user"`
}

// TaskDTO represents a task in API responses. Completion times are exposed
// in hours; the dependency sets are always present, possibly empty.
type TaskDTO struct {
	ID                           uuid.UUID           `json:"id"`
	ProjectID                    uuid.UUID           `json:"project_id"`
	Name                         string              `json:"name"`
	Description                  string              `json:"description"`
	Priority                     models.TaskPriority `json:"priority"`
	Status                       models.TaskStatus   `json:"status"`
	Budget                       float64             `json:"budget"`
	Expense                      float64             `json:"expense"`
	EstimatedCompletionTimeHours float64             `json:"estimated_completion_time_hours"`
	ActualCompletionTimeHours    *float64            `json:"actual_completion_time_hours"`
	DueDate                      time.Time           `json:"due_date"`
	CompletedOn                  *time.Time          `json:"completed_on"`
	CreatedBy                    uuid.UUID           `json:"created_by"`
	CreatedAt                    time.Time           `json:"created_at"`
	UpdatedAt                    time.Time           `json:"updated_at"`
	Creator                      *UserProfileDTO     `json:"creator,omitempty"`
	Assignments                  []TaskAssignmentDTO `json:"assignments,omitempty"`
	DependsOn                    []TaskLinkDTO       `json:"depends_on"`
	Blocking                     []TaskLinkDTO       `json:"blocking"`
}

// ToTaskLinkDTOs converts tasks to their dependency-set views.
func ToTaskLinkDTOs(tasks []models.Task) []TaskLinkDTO {
	links := make([]TaskLinkDTO, len(tasks))
	for i, t := range tasks {
		links[i] = TaskLinkDTO{
			ID:     t.ID,
			Name:   t.Name,
			Status: t.Status,
		}
	}
	return links
}

// ToTaskDTO converts a task and its dependency sets to the API view.
func ToTaskDTO(task models.Task, dependsOn, blocking []models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                           task.ID,
		ProjectID:                    task.ProjectID,
		Name:                         task.Name,
		Description:                  task.Description,
		Priority:                     task.Priority,
		Status:                       task.Status,
		Budget:                       task.Budget,
		Expense:                      task.Expense,
		EstimatedCompletionTimeHours: task.EstimatedCompletionTime.Hours(),
		DueDate:                      task.DueDate,
		CompletedOn:                  task.CompletedOn,
		CreatedBy:                    task.CreatedBy,
		CreatedAt:                    task.CreatedAt,
		UpdatedAt:                    task.UpdatedAt,
		DependsOn:                    ToTaskLinkDTOs(dependsOn),
		Blocking:                     ToTaskLinkDTOs(blocking),
	}

	if task.ActualCompletionTime != nil {
		hours := task.ActualCompletionTime.Hours()
		dto.ActualCompletionTimeHours = &hours
	}

	// Include creator if preloaded
	if task.Creator.ID != uuid.Nil {
		creator := ToUserProfileDTO(task.Creator)
		dto.Creator = &creator
	}

	// Include assignments if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignments = make([]TaskAssignmentDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignments[i] = TaskAssignmentDTO{
				User: ToUserProfileDTO(assignment.User),
			}
		}
	}

	return dto
}

// ToTaskDTOFromAggregate converts a service-level task aggregate.
func ToTaskDTOFromAggregate(agg services.TaskWithDependencies) TaskDTO {
	return ToTaskDTO(*agg.Task, agg.DependsOn, agg.Blocking)
}

// ToTaskDTOs converts a slice of task aggregates.
func ToTaskDTOs(aggs []services.TaskWithDependencies) []TaskDTO {
	dtos := make([]TaskDTO, len(aggs))
	for i, agg := range aggs {
		dtos[i] = ToTaskDTOFromAggregate(agg)
	}
	return dtos
}

// ToTaskAssignmentDTOs converts assignments (with users preloaded).
func ToTaskAssignmentDTOs(assignments []models.TaskAssignment) []TaskAssignmentDTO {
	dtos := make([]TaskAssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = TaskAssignmentDTO{User: ToUserProfileDTO(a.User)}
	}
	return dtos
}
