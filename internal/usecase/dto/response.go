package dto

import "github.com/geo-engine/internal/domain"

// SlowTaskResponse - ответ 202 на постановку задачи
type SlowTaskResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

// TaskStatusResponse - состояние задачи: result только для SUCCESS, error только для FAILURE
type TaskStatusResponse struct {
	Status domain.TaskStatus `json:"status"`
	Result *string           `json:"result,omitempty"`
	Error  *string           `json:"error,omitempty"`
}

// NewTaskStatusResponse отбрасывает поля, не соответствующие статусу
func NewTaskStatusResponse(task *domain.Task) TaskStatusResponse {
	resp := TaskStatusResponse{Status: task.Status}
	switch task.Status {
	case domain.TaskSuccess:
		resp.Result = task.Result
	case domain.TaskFailure:
		resp.Error = task.Error
	}
	return resp
}

// HealthResponse - состояние зависимостей сервиса
type HealthResponse struct {
	Status           string `json:"status"`
	Store            string `json:"store"`
	Queue            string `json:"queue"`
	ConnectionsInUse int64  `json:"connections_in_use"`
}
