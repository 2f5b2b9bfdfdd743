package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Task is one todo item. Every query on this table is scoped by owner_id;
// a task is only ever visible to the user who created it.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Categories  []string   `json:"category"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const taskColumns = `id, owner_id, title, description, priority, categories, due_date, completed, created_at, updated_at`

// CreateTask inserts a task and fills in its generated fields.
func (s *Store) CreateTask(ctx context.Context, t *Task) error {
	t.ID = uuid.New()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Categories == nil {
		t.Categories = []string{}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, owner_id, title, description, priority, categories, due_date, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.OwnerID, t.Title, t.Description, t.Priority, t.Categories, t.DueDate, t.Completed, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// ListTasks returns all tasks for one owner: incomplete first, then by due
// date with undated tasks last, then newest first.
func (s *Store) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id = $1
		ORDER BY completed ASC, due_date ASC NULLS LAST, created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority,
			&t.Categories, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask fetches one task; a task owned by another user is ErrNotFound.
func (s *Store) GetTask(ctx context.Context, ownerID, id uuid.UUID) (*Task, error) {
	var t Task
	err := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	).Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority,
		&t.Categories, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// UpdateTask rewrites the mutable fields of a task.
func (s *Store) UpdateTask(ctx context.Context, t *Task) error {
	t.UpdatedAt = time.Now().UTC()
	if t.Categories == nil {
		t.Categories = []string{}
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, categories = $4,
		    due_date = $5, completed = $6, updated_at = $7
		WHERE owner_id = $8 AND id = $9`,
		t.Title, t.Description, t.Priority, t.Categories, t.DueDate, t.Completed,
		t.UpdatedAt, t.OwnerID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCompleted flips the completion flag and returns the updated task.
func (s *Store) SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) (*Task, error) {
	var t Task
	err := s.pool.QueryRow(ctx, `
		UPDATE tasks
		SET completed = $1, updated_at = $2
		WHERE owner_id = $3 AND id = $4
		RETURNING `+taskColumns,
		completed, time.Now().UTC(), ownerID, id,
	).Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority,
		&t.Categories, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set completed: %w", err)
	}
	return &t, nil
}

// DeleteTask removes a task owned by ownerID.
func (s *Store) DeleteTask(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
