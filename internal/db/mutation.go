package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/models"
)

// Mutation is one attempted write against the server
type Mutation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	RequestID  string        `gorm:"not null;uniqueIndex" json:"request_id"`
	Kind       string        `gorm:"not null" json:"kind"` // update, create
	TaskID     int64         `json:"task_id"`
	TaskUID    string        `json:"task_uid"`
	TaskName   string        `json:"task_name"`
	FromStatus models.Status `json:"from_status"`
	ToStatus   models.Status `json:"to_status"`
	OK         bool          `json:"ok"`
	Error      string        `json:"error,omitempty"`
}

// Record stores ev. It satisfies board.Recorder.
func (j *Journal) Record(ctx context.Context, ev board.Event) error {
	m := Mutation{
		RequestID:  uuid.NewString(),
		Kind:       string(ev.Kind),
		TaskID:     ev.TaskID,
		TaskUID:    ev.TaskUID,
		TaskName:   ev.TaskName,
		FromStatus: ev.From,
		ToStatus:   ev.To,
		OK:         ev.Err == nil,
	}
	if ev.Err != nil {
		m.Error = ev.Err.Error()
	}
	return j.db.WithContext(ctx).Create(&m).Error
}

// Recent returns up to limit mutations, newest first
func (j *Journal) Recent(ctx context.Context, limit int) ([]Mutation, error) {
	var mutations []Mutation
	q := j.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&mutations).Error; err != nil {
		return nil, err
	}
	return mutations, nil
}

// ForTask returns the mutations recorded for one task, newest first
func (j *Journal) ForTask(ctx context.Context, taskID int64) ([]Mutation, error) {
	var mutations []Mutation
	err := j.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").Order("id DESC").
		Find(&mutations).Error
	if err != nil {
		return nil, err
	}
	return mutations, nil
}
