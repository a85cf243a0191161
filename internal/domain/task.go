package domain

// Stream names
const (
	StreamAnalysisTasks = "stream:analysis:tasks"
)

// TaskKeyPrefix - префикс ключа записи о задаче в Redis
const TaskKeyPrefix = "task:"

// TaskStatus - состояние асинхронной задачи
type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskSuccess TaskStatus = "SUCCESS"
	TaskFailure TaskStatus = "FAILURE"
)

// IsTerminal - SUCCESS и FAILURE больше не меняются
func (s TaskStatus) IsTerminal() bool {
	return s == TaskSuccess || s == TaskFailure
}

// Task - запись о задаче в хранилище результатов
type Task struct {
	ID     string     `json:"task_id,omitempty"`
	Status TaskStatus `json:"status"`
	Result *string    `json:"result,omitempty"`
	Error  *string    `json:"error,omitempty"`
}

// TaskKey - ключ записи о задаче
func TaskKey(taskID string) string {
	return TaskKeyPrefix + taskID
}

// AnalysisTaskEvent - сообщение в стриме задач анализа
type AnalysisTaskEvent struct {
	TaskID    string `json:"task_id"`
	InputData string `json:"input_data"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
