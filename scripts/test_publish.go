//go:build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	redisRepo "github.com/geo-engine/internal/repository/redis"
)

// Ставит задачу анализа напрямую в стрим и ждет, пока воркер доведет ее до конечного состояния.
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	input := flag.String("input", "china_rivers.shp", "input_data for the analysis task")
	wait := flag.Duration("wait", 60*time.Second, "how long to wait for the result")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	logger := zap.NewNop()
	tasks := redisRepo.NewTaskRepository(client, logger)
	streams := redisRepo.NewStreamRepository(client, logger)

	taskID := uuid.NewString()
	if err := tasks.CreatePending(ctx, taskID, time.Hour); err != nil {
		log.Fatalf("Failed to register task: %v", err)
	}

	messageID, err := streams.Publish(ctx, domain.StreamAnalysisTasks, 10000, domain.AnalysisTaskEvent{
		TaskID:    taskID,
		InputData: *input,
	})
	if err != nil {
		log.Fatalf("Failed to publish task: %v", err)
	}

	fmt.Printf("Task published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamAnalysisTasks)
	fmt.Printf("   Message ID: %s\n", messageID)
	fmt.Printf("   Task ID: %s\n", taskID)
	fmt.Printf("\nWaiting for %s...\n", domain.TaskKey(taskID))

	timeout := time.After(*wait)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for the worker")
			return
		case <-ticker.C:
			task, err := tasks.Get(ctx, taskID)
			if err != nil {
				log.Fatalf("Failed to poll task: %v", err)
			}
			if !task.Status.IsTerminal() {
				continue
			}

			fmt.Printf("\nStatus: %s\n", task.Status)
			if task.Result != nil {
				fmt.Printf("Result: %s\n", *task.Result)
			}
			if task.Error != nil {
				fmt.Printf("Error: %s\n", *task.Error)
			}
			return
		}
	}
}
