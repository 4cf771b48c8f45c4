package mark

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/util/log"

	_ "github.com/go-sql-driver/mysql"
)

type IMySQLMapper interface {
	Insert(ctx context.Context, m *Mark) error
	FindByClass(ctx context.Context, classID string) ([]*Mark, error)
}

type MySQLMapper struct {
	db *sql.DB
}

func NewMySQLMapper(dsn string) (*MySQLMapper, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	log.Info("MySQL connection established successfully")
	return &MySQLMapper{db: db}, nil
}

// NewMySQLMapperFromConfig 创建 MySQL 映射器
func NewMySQLMapperFromConfig(config *config.Config) (*MySQLMapper, error) {
	return NewMySQLMapper(config.MySQL.DSN)
}

func (m *MySQLMapper) Close() error {
	return m.db.Close()
}

func (m *MySQLMapper) Insert(ctx context.Context, mk *Mark) error {
	if mk.CreateTime.IsZero() {
		mk.CreateTime = time.Now()
	}
	res, err := m.db.ExecContext(ctx,
		"INSERT INTO marks (class_id, student_id, lesson_id, value, create_time) VALUES (?, ?, ?, ?, ?)",
		mk.ClassID, mk.StudentID, mk.LessonID, mk.Value, mk.CreateTime)
	if err != nil {
		return fmt.Errorf("failed to insert mark: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read mark id: %w", err)
	}
	mk.ID = id
	return nil
}

// FindByClass 获取班级全部成绩, 不分页
func (m *MySQLMapper) FindByClass(ctx context.Context, classID string) ([]*Mark, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, class_id, student_id, lesson_id, value, create_time
		FROM marks
		WHERE class_id = ?
		ORDER BY id ASC
	`, classID)
	if err != nil {
		log.Error("Failed to query marks: %v", err)
		return nil, fmt.Errorf("failed to query marks: %w", err)
	}
	defer rows.Close()

	marks := make([]*Mark, 0)
	for rows.Next() {
		var mk Mark
		if err := rows.Scan(&mk.ID, &mk.ClassID, &mk.StudentID, &mk.LessonID, &mk.Value, &mk.CreateTime); err != nil {
			return nil, fmt.Errorf("failed to scan mark row: %w", err)
		}
		marks = append(marks, &mk)
	}

	if err = rows.Err(); err != nil {
		log.Error("Error iterating over rows: %v", err)
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return marks, nil
}
